package mapper

import (
	"time"

	"taskorganizer/internal/adapter/http/dto"
	"taskorganizer/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task, now time.Time, loc *time.Location) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task, now, loc))
	}
	return items
}

// ToTaskItem maps a task and computes the fields that depend on now.
func ToTaskItem(task domain.Task, now time.Time, loc *time.Location) dto.TaskItem {
	item := dto.TaskItem{
		ID:                task.ID,
		Title:             task.Title,
		Description:       copyString(task.Description),
		Context:           copyString(task.Context),
		Project:           copyString(task.Project),
		Tags:              task.Tags,
		Source:            string(task.Source),
		GitCommitSHA:      copyString(task.GitCommitSHA),
		GitCommitMessage:  copyString(task.GitCommitMessage),
		Status:            string(task.Status),
		Priority:          string(task.Priority),
		DueDate:           formatTime(task.DueDate),
		EstimatedDuration: copyInt(task.EstimatedDuration),
		ActualDuration:    copyInt(task.ActualDuration),
		IsTimerRunning:    task.IsTimerRunning,
		StartedAt:         formatTime(task.StartedAt),
		EndedAt:           formatTime(task.EndedAt),
		CompletedAt:       formatTime(task.CompletedAt),
		AIAnalyzed:        task.AIAnalyzed,
		CreatedAt:         task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         task.UpdatedAt.Format(time.RFC3339),
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}

	if task.IsTimerRunning {
		elapsed := task.ElapsedMinutes(now)
		item.ElapsedMinutes = &elapsed
	}

	if task.DueDate != nil {
		dday := domain.DDay(*task.DueDate, now, loc)
		item.DDay = &dday
		status := string(domain.DueStatusOf(*task.DueDate, now, loc))
		item.DueStatus = &status
	}

	return item
}

func ToBriefingItem(b domain.Briefing, now time.Time, loc *time.Location) dto.BriefingItem {
	return dto.BriefingItem{
		Date:       b.Date,
		Total:      b.Total,
		InProgress: b.InProgress,
		Pending:    b.Pending,
		Tasks:      ToTaskItems(b.Tasks, now, loc),
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	value := t.Format(time.RFC3339)
	return &value
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	value := *s
	return &value
}

func copyInt(i *int) *int {
	if i == nil {
		return nil
	}
	value := *i
	return &value
}
