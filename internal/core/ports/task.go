package ports

import (
	"context"
	"time"

	"taskorganizer/internal/core/domain"
)

type TaskRepository interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	ListTasksCreatedBetween(ctx context.Context, start, end time.Time) ([]domain.Task, error)
	GetTask(ctx context.Context, id string) (domain.Task, error)
	GetTaskByCommitSHA(ctx context.Context, sha string) (domain.Task, error)
	InsertTask(ctx context.Context, task domain.Task) error
	UpdateTask(ctx context.Context, task domain.Task) error
	DeleteTask(ctx context.Context, id string) error
}

type TaskService interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	GetTask(ctx context.Context, id string) (domain.Task, error)
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, id string, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
	StartTimer(ctx context.Context, id string) (domain.Task, error)
	PauseTimer(ctx context.Context, id string) (domain.Task, error)
	CompleteTask(ctx context.Context, id string) (domain.Task, error)
	QuickAdd(ctx context.Context, input string) (domain.Task, error)
	ImportCommits(ctx context.Context, limit int) ([]domain.Task, error)
	Briefing(ctx context.Context) (domain.Briefing, error)
}
