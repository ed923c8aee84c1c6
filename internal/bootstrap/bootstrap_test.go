package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"taskorganizer/internal/adapter/ai"
	dbadapter "taskorganizer/internal/adapter/db"
	"taskorganizer/internal/config"
	"taskorganizer/internal/core/domain"
)

func testConfig(driver string) *config.Config {
	return &config.Config{
		AppTimezone:     "Asia/Seoul",
		DbDriver:        driver,
		LocalDbPath:     ":memory:",
		AnalysisTimeout: time.Second,
		ReviewHour:      18,
	}
}

func TestNewApp_LocalOnly(t *testing.T) {
	app, err := newApp(context.Background(), testConfig(config.DriverSQLite), zap.NewNop(), func(*config.Config) (*sqlx.DB, error) {
		t.Fatal("remote store must not be opened")
		return nil, nil
	})
	require.NoError(t, err)
	defer app.Close()

	assert.Nil(t, app.Remote)
	assert.NotNil(t, app.Local)
	assert.Equal(t, "Asia/Seoul", app.Location.String())
	assert.IsType(t, &dbadapter.TaskRepository{}, app.TaskRepository)
	assert.IsType(t, ai.FallbackAnalyzer{}, app.Analyzer)
	assert.True(t, app.UsingFallback())
	assert.NotNil(t, app.Scheduler())

	_, err = app.TaskService.ImportCommits(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
}

func TestNewApp_RemoteUnavailableFallsBackToLocal(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	app, err := newApp(context.Background(), testConfig(config.DriverMySQL), zap.New(core), func(*config.Config) (*sqlx.DB, error) {
		return nil, errors.New("dial tcp: connection refused")
	})
	require.NoError(t, err)
	defer app.Close()

	assert.Nil(t, app.Remote)
	assert.True(t, app.UsingFallback())
	assert.Equal(t, 1, logs.FilterMessage("remote store unavailable, using local store").Len())

	task, err := app.TaskService.CreateTask(context.Background(), domain.CreateTaskInput{Title: "offline"})
	require.NoError(t, err)
	got, err := app.TaskService.GetTask(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, "offline", got.Title)
}

func TestNewApp_RemoteWrappedInFailover(t *testing.T) {
	app, err := newApp(context.Background(), testConfig(config.DriverPostgres), zap.NewNop(), func(*config.Config) (*sqlx.DB, error) {
		// A second in-memory database stands in for the remote store.
		return dbadapter.ConnectLocal(":memory:")
	})
	require.NoError(t, err)
	defer app.Close()

	require.NotNil(t, app.Remote)
	assert.IsType(t, &dbadapter.FailoverTaskRepository{}, app.TaskRepository)
	assert.IsType(t, &dbadapter.FailoverReviewRepository{}, app.ReviewRepository)
	assert.Len(t, app.Failovers, 2)
	assert.False(t, app.UsingFallback())

	task, err := app.TaskService.CreateTask(context.Background(), domain.CreateTaskInput{Title: "remote"})
	require.NoError(t, err)

	_, err = dbadapter.NewTaskRepository(app.Remote).GetTask(context.Background(), task.ID)
	require.NoError(t, err)
	_, err = dbadapter.NewTaskRepository(app.Local).GetTask(context.Background(), task.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestNewApp_UnknownTimezoneUsesUTC(t *testing.T) {
	conf := testConfig(config.DriverSQLite)
	conf.AppTimezone = "Mars/Olympus"

	app, err := newApp(context.Background(), conf, zap.NewNop(), nil)
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, time.UTC, app.Location)
}

func TestNewAnalyzer_WithAPIKey(t *testing.T) {
	conf := testConfig(config.DriverSQLite)
	conf.AnthropicAPIKey = "sk-test"

	assert.IsType(t, &ai.AnthropicAnalyzer{}, newAnalyzer(conf, zap.NewNop()))
}
