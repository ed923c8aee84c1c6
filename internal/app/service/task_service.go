package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"taskorganizer/internal/core/domain"
	"taskorganizer/internal/core/ports"
)

const defaultCommitImportLimit = 50

type TaskService struct {
	taskRepository ports.TaskRepository
	analyzer       ports.Analyzer
	commits        ports.CommitSource
	location       *time.Location
	opts           options
}

func NewTaskService(
	taskRepository ports.TaskRepository,
	analyzer ports.Analyzer,
	commits ports.CommitSource,
	location *time.Location,
	opts ...Option,
) *TaskService {
	if location == nil {
		location = time.UTC
	}
	return &TaskService{
		taskRepository: taskRepository,
		analyzer:       analyzer,
		commits:        commits,
		location:       location,
		opts:           buildOptions(opts),
	}
}

func (s *TaskService) now() time.Time {
	return s.opts.now().UTC()
}

func (s *TaskService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return s.taskRepository.ListTasks(ctx)
}

func (s *TaskService) GetTask(ctx context.Context, id string) (domain.Task, error) {
	return s.taskRepository.GetTask(ctx, id)
}

func (s *TaskService) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	task, err := domain.NewTask(input, s.opts.newID(), s.now())
	if err != nil {
		return domain.Task{}, err
	}
	if err := s.taskRepository.InsertTask(ctx, task); err != nil {
		return domain.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, input domain.UpdateTaskInput) (domain.Task, error) {
	return s.mutate(ctx, id, func(task *domain.Task, now time.Time) error {
		return task.Apply(input, now)
	})
}

// DeleteTask is idempotent: deleting an unknown id succeeds.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	return s.taskRepository.DeleteTask(ctx, id)
}

func (s *TaskService) StartTimer(ctx context.Context, id string) (domain.Task, error) {
	return s.mutate(ctx, id, (*domain.Task).StartTimer)
}

func (s *TaskService) PauseTimer(ctx context.Context, id string) (domain.Task, error) {
	return s.mutate(ctx, id, (*domain.Task).PauseTimer)
}

func (s *TaskService) CompleteTask(ctx context.Context, id string) (domain.Task, error) {
	return s.mutate(ctx, id, (*domain.Task).Complete)
}

func (s *TaskService) mutate(ctx context.Context, id string, apply func(*domain.Task, time.Time) error) (domain.Task, error) {
	task, err := s.taskRepository.GetTask(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if err := apply(&task, s.now()); err != nil {
		return domain.Task{}, err
	}
	if err := s.taskRepository.UpdateTask(ctx, task); err != nil {
		return domain.Task{}, fmt.Errorf("update task %s: %w", id, err)
	}
	return task, nil
}

// QuickAdd creates a task from free text, enriched by the analysis backend.
func (s *TaskService) QuickAdd(ctx context.Context, input string) (domain.Task, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		return domain.Task{}, domain.NewValidationError("input", "must not be empty")
	}

	analysis, err := s.analyzer.AnalyzeTask(ctx, text)
	if err != nil {
		zap.L().Warn("task analysis failed, using fallback", zap.Error(err))
		analysis = domain.FallbackTaskAnalysis(text)
	}

	return s.CreateTask(ctx, analysisInput(text, analysis))
}

// ImportCommits turns recent git commits into tasks, skipping commits that
// were imported before.
func (s *TaskService) ImportCommits(ctx context.Context, limit int) ([]domain.Task, error) {
	if s.commits == nil {
		return nil, fmt.Errorf("%w: no commit source configured", domain.ErrBackendUnavailable)
	}
	if limit <= 0 {
		limit = defaultCommitImportLimit
	}

	commits, err := s.commits.RecentCommits(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("read commits: %w", err)
	}

	imported := make([]domain.Task, 0, len(commits))
	for _, commit := range commits {
		_, err := s.taskRepository.GetTaskByCommitSHA(ctx, commit.SHA)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrTaskNotFound) {
			return imported, fmt.Errorf("lookup commit %s: %w", commit.SHA, err)
		}

		analysis, err := s.analyzer.AnalyzeCommit(ctx, commit)
		if err != nil {
			zap.L().Warn("commit analysis failed, using fallback", zap.String("sha", commit.SHA), zap.Error(err))
			analysis = domain.FallbackCommitAnalysis(commit)
		}

		title := firstLine(commit.Message)
		if title == "" {
			title = "Commit " + shortSHA(commit.SHA)
		}
		input := analysisInput(title, analysis)
		input.Source = domain.TaskSourceGit
		input.GitCommitSHA = stringPtr(commit.SHA)
		input.GitCommitMessage = stringPtr(commit.Message)
		if input.Description == nil && commit.Message != title {
			input.Description = stringPtr(commit.Message)
		}

		task, err := s.CreateTask(ctx, input)
		if err != nil {
			return imported, err
		}
		imported = append(imported, task)
	}

	zap.L().Info("imported git commits", zap.Int("commits", len(commits)), zap.Int("tasks", len(imported)))
	return imported, nil
}

func (s *TaskService) Briefing(ctx context.Context) (domain.Briefing, error) {
	tasks, err := s.taskRepository.ListTasks(ctx)
	if err != nil {
		return domain.Briefing{}, err
	}
	return domain.BuildBriefing(tasks, s.now(), s.location), nil
}

func analysisInput(title string, analysis domain.TaskAnalysis) domain.CreateTaskInput {
	input := domain.CreateTaskInput{
		Title:             title,
		Priority:          domain.ParsePriority(string(analysis.Priority)),
		Tags:              analysis.Tags,
		Source:            domain.TaskSourceManual,
		EstimatedDuration: analysis.EstimatedDuration,
		Project:           analysis.Project,
		AIAnalyzed:        !analysis.Heuristic,
	}
	if analysis.Description != "" {
		input.Description = stringPtr(analysis.Description)
	}
	if analysis.Context != "" {
		input.Context = stringPtr(analysis.Context)
	}
	if input.EstimatedDuration != nil && *input.EstimatedDuration < 0 {
		input.EstimatedDuration = nil
	}
	return input
}

func firstLine(message string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(message), "\n")
	return strings.TrimSpace(line)
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func stringPtr(value string) *string {
	return &value
}

var _ ports.TaskService = (*TaskService)(nil)
