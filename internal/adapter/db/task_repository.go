package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"taskorganizer/internal/core/domain"
	"taskorganizer/internal/core/ports"
)

const taskColumns = `
  id, title, description, context, project, tags, source, git_commit_sha,
  git_commit_message, status, priority, due_date, estimated_duration,
  actual_duration, is_timer_running, started_at, ended_at, completed_at,
  ai_analyzed, created_at, updated_at`

const listTasksQuery = `SELECT` + taskColumns + `
FROM tasks
ORDER BY created_at DESC, id DESC`

const listTasksCreatedBetweenQuery = `SELECT` + taskColumns + `
FROM tasks
WHERE created_at >= ? AND created_at < ?
ORDER BY created_at DESC, id DESC`

const getTaskQuery = `SELECT` + taskColumns + `
FROM tasks
WHERE id = ?`

const getTaskByCommitSHAQuery = `SELECT` + taskColumns + `
FROM tasks
WHERE git_commit_sha = ?
ORDER BY created_at
LIMIT 1`

const insertTaskQuery = `
INSERT INTO tasks (` + taskColumns + `)
VALUES (
  :id, :title, :description, :context, :project, :tags, :source, :git_commit_sha,
  :git_commit_message, :status, :priority, :due_date, :estimated_duration,
  :actual_duration, :is_timer_running, :started_at, :ended_at, :completed_at,
  :ai_analyzed, :created_at, :updated_at
)`

const updateTaskQuery = `
UPDATE tasks SET
  title = :title,
  description = :description,
  context = :context,
  project = :project,
  tags = :tags,
  source = :source,
  git_commit_sha = :git_commit_sha,
  git_commit_message = :git_commit_message,
  status = :status,
  priority = :priority,
  due_date = :due_date,
  estimated_duration = :estimated_duration,
  actual_duration = :actual_duration,
  is_timer_running = :is_timer_running,
  started_at = :started_at,
  ended_at = :ended_at,
  completed_at = :completed_at,
  ai_analyzed = :ai_analyzed,
  updated_at = :updated_at
WHERE id = :id`

const deleteTaskQuery = `DELETE FROM tasks WHERE id = ?`

type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID                string         `db:"id"`
	Title             string         `db:"title"`
	Description       sql.NullString `db:"description"`
	Context           sql.NullString `db:"context"`
	Project           sql.NullString `db:"project"`
	Tags              stringList     `db:"tags"`
	Source            string         `db:"source"`
	GitCommitSHA      sql.NullString `db:"git_commit_sha"`
	GitCommitMessage  sql.NullString `db:"git_commit_message"`
	Status            string         `db:"status"`
	Priority          string         `db:"priority"`
	DueDate           sql.NullTime   `db:"due_date"`
	EstimatedDuration sql.NullInt64  `db:"estimated_duration"`
	ActualDuration    sql.NullInt64  `db:"actual_duration"`
	IsTimerRunning    bool           `db:"is_timer_running"`
	StartedAt         sql.NullTime   `db:"started_at"`
	EndedAt           sql.NullTime   `db:"ended_at"`
	CompletedAt       sql.NullTime   `db:"completed_at"`
	AIAnalyzed        bool           `db:"ai_analyzed"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return r.selectTasks(ctx, listTasksQuery)
}

func (r *TaskRepository) ListTasksCreatedBetween(ctx context.Context, start, end time.Time) ([]domain.Task, error) {
	return r.selectTasks(ctx, listTasksCreatedBetweenQuery, utc(start), utc(end))
}

func (r *TaskRepository) GetTask(ctx context.Context, id string) (domain.Task, error) {
	return r.getTask(ctx, getTaskQuery, id)
}

func (r *TaskRepository) GetTaskByCommitSHA(ctx context.Context, sha string) (domain.Task, error) {
	return r.getTask(ctx, getTaskByCommitSHAQuery, sha)
}

func (r *TaskRepository) InsertTask(ctx context.Context, task domain.Task) error {
	_, err := r.db.NamedExecContext(ctx, insertTaskQuery, mapDomainTaskToTaskRow(task))
	return err
}

func (r *TaskRepository) UpdateTask(ctx context.Context, task domain.Task) error {
	_, err := r.db.NamedExecContext(ctx, updateTaskQuery, mapDomainTaskToTaskRow(task))
	return err
}

func (r *TaskRepository) DeleteTask(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(deleteTaskQuery), id)
	return err
}

func (r *TaskRepository) selectTasks(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}

	return tasks, nil
}

func (r *TaskRepository) getTask(ctx context.Context, query string, arg any) (domain.Task, error) {
	var row taskRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	return mapTaskRowToDomainTask(row), nil
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:                row.ID,
		Title:             row.Title,
		Description:       nullStringPtr(row.Description),
		Context:           nullStringPtr(row.Context),
		Project:           nullStringPtr(row.Project),
		Tags:              []string(row.Tags),
		Source:            domain.TaskSource(row.Source),
		GitCommitSHA:      nullStringPtr(row.GitCommitSHA),
		GitCommitMessage:  nullStringPtr(row.GitCommitMessage),
		Status:            domain.TaskStatus(row.Status),
		Priority:          domain.TaskPriority(row.Priority),
		DueDate:           nullTimePtr(row.DueDate),
		EstimatedDuration: nullIntPtr(row.EstimatedDuration),
		ActualDuration:    nullIntPtr(row.ActualDuration),
		IsTimerRunning:    row.IsTimerRunning,
		StartedAt:         nullTimePtr(row.StartedAt),
		EndedAt:           nullTimePtr(row.EndedAt),
		CompletedAt:       nullTimePtr(row.CompletedAt),
		AIAnalyzed:        row.AIAnalyzed,
		CreatedAt:         row.CreatedAt.UTC(),
		UpdatedAt:         row.UpdatedAt.UTC(),
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}
	if task.Source == "" {
		task.Source = domain.TaskSourceManual
	}
	return task
}

func mapDomainTaskToTaskRow(task domain.Task) taskRow {
	return taskRow{
		ID:                task.ID,
		Title:             task.Title,
		Description:       toNullString(task.Description),
		Context:           toNullString(task.Context),
		Project:           toNullString(task.Project),
		Tags:              stringList(task.Tags),
		Source:            string(task.Source),
		GitCommitSHA:      toNullString(task.GitCommitSHA),
		GitCommitMessage:  toNullString(task.GitCommitMessage),
		Status:            string(task.Status),
		Priority:          string(task.Priority),
		DueDate:           toNullTime(task.DueDate),
		EstimatedDuration: toNullInt(task.EstimatedDuration),
		ActualDuration:    toNullInt(task.ActualDuration),
		IsTimerRunning:    task.IsTimerRunning,
		StartedAt:         toNullTime(task.StartedAt),
		EndedAt:           toNullTime(task.EndedAt),
		CompletedAt:       toNullTime(task.CompletedAt),
		AIAnalyzed:        task.AIAnalyzed,
		CreatedAt:         utc(task.CreatedAt),
		UpdatedAt:         utc(task.UpdatedAt),
	}
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	s := value.String
	return &s
}

func nullTimePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	t := value.Time.UTC()
	return &t
}

func nullIntPtr(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	i := int(value.Int64)
	return &i
}

func toNullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func toNullTime(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *utcPtr(value), Valid: true}
}

func toNullInt(value *int) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}
