package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"taskorganizer/internal/adapter/ai"
	dbadapter "taskorganizer/internal/adapter/db"
	gitadapter "taskorganizer/internal/adapter/git"
	"taskorganizer/internal/app/scheduler"
	"taskorganizer/internal/app/service"
	"taskorganizer/internal/config"
	"taskorganizer/internal/core/domain"
	"taskorganizer/internal/core/ports"
)

const migrateTimeout = 30 * time.Second

// App holds the wired services shared by the server and the CLI.
type App struct {
	Config   *config.Config
	Location *time.Location
	Logger   *zap.Logger

	// Remote is nil when the process runs on the local store only.
	Remote *sqlx.DB
	Local  *sqlx.DB

	TaskRepository   ports.TaskRepository
	ReviewRepository ports.ReviewRepository
	Failovers        []interface{ UsingFallback() bool }

	Analyzer      ports.Analyzer
	TaskService   *service.TaskService
	ReviewService *service.ReviewService
}

type openFunc func(conf *config.Config) (*sqlx.DB, error)

// New opens the stores, runs migrations and builds the services.
func New(ctx context.Context, conf *config.Config, logger *zap.Logger) (*App, error) {
	return newApp(ctx, conf, logger, dbadapter.ConnectDB)
}

func newApp(ctx context.Context, conf *config.Config, logger *zap.Logger, openRemote openFunc) (*App, error) {
	if logger == nil {
		logger = zap.L()
	}

	loc, err := conf.Location()
	if err != nil {
		logger.Warn("unknown timezone, using UTC", zap.String("timezone", conf.AppTimezone), zap.Error(err))
	}

	app := &App{Config: conf, Location: loc, Logger: logger}

	app.Local, err = dbadapter.ConnectLocal(conf.LocalDbPath)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	if err := migrate(ctx, app.Local); err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("migrate local store: %w", err)
	}

	if conf.DbDriver != config.DriverSQLite {
		app.Remote = openRemoteStore(ctx, conf, logger, openRemote)
	}

	localTasks := dbadapter.NewTaskRepository(app.Local)
	localReviews := dbadapter.NewReviewRepository(app.Local)
	if app.Remote == nil {
		app.TaskRepository = localTasks
		app.ReviewRepository = localReviews
	} else {
		tasks := dbadapter.NewFailoverTaskRepository(dbadapter.NewTaskRepository(app.Remote), localTasks, logger)
		reviews := dbadapter.NewFailoverReviewRepository(dbadapter.NewReviewRepository(app.Remote), localReviews, logger)
		app.TaskRepository = tasks
		app.ReviewRepository = reviews
		app.Failovers = append(app.Failovers, tasks, reviews)
	}

	app.Analyzer = newAnalyzer(conf, logger)

	var commits ports.CommitSource
	if conf.GitRepoPath != "" {
		commits = gitadapter.NewLogSource(conf.GitRepoPath)
	}

	app.TaskService = service.NewTaskService(app.TaskRepository, app.Analyzer, commits, loc)
	app.ReviewService = service.NewReviewService(app.TaskRepository, app.ReviewRepository, app.Analyzer, loc, conf.AnalysisTimeout)

	return app, nil
}

// openRemoteStore returns nil when the remote store cannot be reached, so the
// caller runs on the local store.
func openRemoteStore(ctx context.Context, conf *config.Config, logger *zap.Logger, open openFunc) *sqlx.DB {
	remote, err := open(conf)
	if err == nil {
		err = migrate(ctx, remote)
		if err != nil {
			_ = remote.Close()
		}
	}
	if err != nil {
		logger.Warn("remote store unavailable, using local store",
			zap.String("driver", conf.DbDriver),
			zap.String("local_path", conf.LocalDbPath),
			zap.Error(errors.Join(domain.ErrBackendUnavailable, err)),
		)
		return nil
	}

	logger.Info("connected to remote store", zap.String("driver", remote.DriverName()))
	return remote
}

func migrate(ctx context.Context, db *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(ctx, migrateTimeout)
	defer cancel()
	return dbadapter.Migrate(ctx, db)
}

func newAnalyzer(conf *config.Config, logger *zap.Logger) ports.Analyzer {
	if conf.AnthropicAPIKey == "" {
		logger.Info("no analysis API key configured, using deterministic analysis")
		return ai.NewFallbackAnalyzer()
	}
	return ai.NewAnthropicAnalyzer(ai.AnthropicConfig{
		APIKey:  conf.AnthropicAPIKey,
		Model:   conf.AnthropicModel,
		BaseURL: conf.AnthropicBaseURL,
	})
}

// Scheduler builds the daily review scheduler for this app.
func (a *App) Scheduler() *scheduler.DailyReviewScheduler {
	return scheduler.NewDailyReviewScheduler(a.ReviewService, scheduler.Config{
		Hour:     a.Config.ReviewHour,
		Location: a.Location,
	}, a.Logger)
}

// UsingFallback reports whether any repository switched to the local store.
func (a *App) UsingFallback() bool {
	if a.Remote == nil {
		return true
	}
	for _, f := range a.Failovers {
		if f.UsingFallback() {
			return true
		}
	}
	return false
}

func (a *App) Close() error {
	var errs []error
	if a.Remote != nil {
		errs = append(errs, a.Remote.Close())
	}
	if a.Local != nil {
		errs = append(errs, a.Local.Close())
	}
	return errors.Join(errs...)
}
