package domain

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusArchived   TaskStatus = "archived"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusArchived:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// ParsePriority maps free text from an analysis backend to a known priority,
// falling back to medium.
func ParsePriority(value string) TaskPriority {
	p := TaskPriority(strings.ToLower(strings.TrimSpace(value)))
	if p.Valid() {
		return p
	}
	return TaskPriorityMedium
}

type TaskSource string

const (
	TaskSourceManual TaskSource = "manual"
	TaskSourceGit    TaskSource = "git"
)

func (s TaskSource) Valid() bool {
	return s == TaskSourceManual || s == TaskSourceGit
}

type Task struct {
	ID                string
	Title             string
	Description       *string
	Context           *string
	Project           *string
	Tags              []string
	Source            TaskSource
	GitCommitSHA      *string
	GitCommitMessage  *string
	Status            TaskStatus
	Priority          TaskPriority
	DueDate           *time.Time
	EstimatedDuration *int
	ActualDuration    *int
	IsTimerRunning    bool
	StartedAt         *time.Time
	EndedAt           *time.Time
	CompletedAt       *time.Time
	AIAnalyzed        bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type CreateTaskInput struct {
	ID                string
	Title             string
	Description       *string
	Context           *string
	Project           *string
	Tags              []string
	Source            TaskSource
	GitCommitSHA      *string
	GitCommitMessage  *string
	Status            TaskStatus
	Priority          TaskPriority
	DueDate           *time.Time
	EstimatedDuration *int
	ActualDuration    *int
	IsTimerRunning    bool
	StartedAt         *time.Time
	AIAnalyzed        bool
	CreatedAt         *time.Time
}

// UpdateTaskInput carries a partial update. Pointer fields are applied when
// non-nil; the *Set flags mark nullable fields that were present in the
// request, so a nil value with the flag set clears the field.
type UpdateTaskInput struct {
	Title                *string
	Description          *string
	DescriptionSet       bool
	Context              *string
	ContextSet           bool
	Project              *string
	ProjectSet           bool
	Tags                 *[]string
	Source               *TaskSource
	Status               *TaskStatus
	Priority             *TaskPriority
	DueDate              *time.Time
	DueDateSet           bool
	EstimatedDuration    *int
	EstimatedDurationSet bool
	ActualDuration       *int
	ActualDurationSet    bool
	IsTimerRunning       *bool
	StartedAt            *time.Time
	StartedAtSet         bool
	EndedAt              *time.Time
	EndedAtSet           bool
	CompletedAt          *time.Time
	CompletedAtSet       bool
	AIAnalyzed           *bool
}

func (in UpdateTaskInput) IsEmpty() bool {
	return in.Title == nil && !in.DescriptionSet && !in.ContextSet && !in.ProjectSet &&
		in.Tags == nil && in.Source == nil && in.Status == nil && in.Priority == nil &&
		!in.DueDateSet && !in.EstimatedDurationSet && !in.ActualDurationSet &&
		in.IsTimerRunning == nil && !in.StartedAtSet && !in.EndedAtSet &&
		!in.CompletedAtSet && in.AIAnalyzed == nil
}

// NewTask builds a task from creation input, applying defaults and the
// timer/status invariants.
func NewTask(in CreateTaskInput, id string, now time.Time) (Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Task{}, NewValidationError("title", "must not be empty")
	}

	task := Task{
		ID:                id,
		Title:             title,
		Description:       in.Description,
		Context:           in.Context,
		Project:           in.Project,
		Tags:              NormalizeTags(in.Tags),
		Source:            in.Source,
		GitCommitSHA:      in.GitCommitSHA,
		GitCommitMessage:  in.GitCommitMessage,
		Status:            in.Status,
		Priority:          in.Priority,
		DueDate:           in.DueDate,
		EstimatedDuration: in.EstimatedDuration,
		ActualDuration:    in.ActualDuration,
		IsTimerRunning:    in.IsTimerRunning,
		StartedAt:         in.StartedAt,
		AIAnalyzed:        in.AIAnalyzed,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if strings.TrimSpace(in.ID) != "" {
		task.ID = strings.TrimSpace(in.ID)
	}
	if in.CreatedAt != nil {
		task.CreatedAt = *in.CreatedAt
		if task.CreatedAt.After(task.UpdatedAt) {
			task.UpdatedAt = task.CreatedAt
		}
	}
	if task.Status == "" {
		task.Status = TaskStatusPending
	}
	if task.Priority == "" {
		task.Priority = TaskPriorityMedium
	}
	if task.Source == "" {
		task.Source = TaskSourceManual
	}

	if err := task.validate(); err != nil {
		return Task{}, err
	}

	task.reconcile(Task{Status: TaskStatusPending}, now, supplied{
		status:         in.Status != "",
		timerRunning:   true,
		startedAt:      in.StartedAt != nil,
		actualDuration: in.ActualDuration != nil,
	})
	return task, nil
}

// Apply merges a partial update into the task, refreshes UpdatedAt and
// re-establishes the invariants relative to the previous state.
func (t *Task) Apply(in UpdateTaskInput, now time.Time) error {
	prev := *t
	next := *t

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return NewValidationError("title", "must not be empty")
		}
		next.Title = title
	}
	if in.DescriptionSet {
		next.Description = in.Description
	}
	if in.ContextSet {
		next.Context = in.Context
	}
	if in.ProjectSet {
		next.Project = in.Project
	}
	if in.Tags != nil {
		next.Tags = NormalizeTags(*in.Tags)
	}
	if in.Source != nil {
		next.Source = *in.Source
	}
	if in.Status != nil {
		next.Status = *in.Status
	}
	if in.Priority != nil {
		next.Priority = *in.Priority
	}
	if in.DueDateSet {
		next.DueDate = in.DueDate
	}
	if in.EstimatedDurationSet {
		next.EstimatedDuration = in.EstimatedDuration
	}
	if in.ActualDurationSet {
		next.ActualDuration = in.ActualDuration
	}
	if in.IsTimerRunning != nil {
		next.IsTimerRunning = *in.IsTimerRunning
	}
	if in.StartedAtSet {
		next.StartedAt = in.StartedAt
	}
	if in.EndedAtSet {
		next.EndedAt = in.EndedAt
	}
	if in.CompletedAtSet {
		next.CompletedAt = in.CompletedAt
	}
	if in.AIAnalyzed != nil {
		next.AIAnalyzed = *in.AIAnalyzed
	}

	if err := next.validate(); err != nil {
		return err
	}

	next.reconcile(prev, now, supplied{
		status:         in.Status != nil,
		timerRunning:   in.IsTimerRunning != nil,
		startedAt:      in.StartedAtSet,
		completedAt:    in.CompletedAtSet,
		actualDuration: in.ActualDurationSet,
	})
	next.UpdatedAt = now
	if next.UpdatedAt.Before(next.CreatedAt) {
		next.UpdatedAt = next.CreatedAt
	}

	*t = next
	return nil
}

func (t Task) validate() error {
	if !t.Status.Valid() {
		return NewValidationError("status", "unknown status "+string(t.Status))
	}
	if !t.Priority.Valid() {
		return NewValidationError("priority", "unknown priority "+string(t.Priority))
	}
	if !t.Source.Valid() {
		return NewValidationError("source", "unknown source "+string(t.Source))
	}
	if t.EstimatedDuration != nil && *t.EstimatedDuration < 0 {
		return NewValidationError("estimated_duration", "must not be negative")
	}
	if t.ActualDuration != nil && *t.ActualDuration < 0 {
		return NewValidationError("actual_duration", "must not be negative")
	}
	return nil
}

// supplied records which invariant-relevant fields the caller set
// explicitly, so reconcile does not override them.
type supplied struct {
	status         bool
	timerRunning   bool
	startedAt      bool
	completedAt    bool
	actualDuration bool
}

// reconcile enforces the timer/status invariants after a merge. When the
// previous state had a running timer that is now stopped, the session is
// added to ActualDuration unless the caller supplied it explicitly.
func (t *Task) reconcile(prev Task, now time.Time, set supplied) {
	if set.status && !set.timerRunning && t.Status != TaskStatusInProgress {
		t.IsTimerRunning = false
	}

	if t.Status == TaskStatusCompleted {
		if t.CompletedAt == nil {
			t.CompletedAt = timePtr(now)
		}
		if prev.Status != TaskStatusCompleted && t.EndedAt == nil {
			t.EndedAt = timePtr(now)
		}
		t.IsTimerRunning = false
	} else if prev.Status == TaskStatusCompleted && !set.completedAt {
		t.CompletedAt = nil
	}

	if t.IsTimerRunning {
		if t.StartedAt == nil || (!prev.IsTimerRunning && !set.startedAt) {
			t.StartedAt = timePtr(now)
		}
		t.Status = TaskStatusInProgress
	}

	if prev.IsTimerRunning && !t.IsTimerRunning && !set.actualDuration {
		t.addSession(prev.StartedAt, now)
	}
}

func (t *Task) addSession(startedAt *time.Time, now time.Time) {
	minutes := elapsedMinutes(startedAt, now)
	total := minutes
	if t.ActualDuration != nil {
		total += *t.ActualDuration
	}
	t.ActualDuration = &total
}

// ElapsedMinutes returns the whole minutes of the current timer session, or
// zero when the timer is not running.
func (t Task) ElapsedMinutes(now time.Time) int {
	if !t.IsTimerRunning {
		return 0
	}
	return elapsedMinutes(t.StartedAt, now)
}

func elapsedMinutes(startedAt *time.Time, now time.Time) int {
	if startedAt == nil || now.Before(*startedAt) {
		return 0
	}
	return int(now.Sub(*startedAt) / time.Minute)
}

// NormalizeTags trims tags, drops empty ones and duplicates, keeping the
// first occurrence order. It never returns nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func timePtr(t time.Time) *time.Time {
	return &t
}
