package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"taskorganizer/internal/adapter/http/dto"
	"taskorganizer/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

// Accepted timestamp layouts. Layouts without an offset are read in the
// configured zone.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	domain.DateLayout,
}

func BuildCreateTaskInput(req dto.CreateTaskRequest, raw map[string]json.RawMessage, loc *time.Location) (domain.CreateTaskInput, error) {
	for _, field := range []string{"title", "status", "priority", "source", "tags", "is_timer_running", "ai_analyzed"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			return domain.CreateTaskInput{}, ErrInvalidTaskPayload
		}
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	in := domain.CreateTaskInput{
		Title:             title,
		Description:       req.Description,
		Context:           req.Context,
		Project:           req.Project,
		Tags:              req.Tags,
		EstimatedDuration: req.EstimatedDuration,
		ActualDuration:    req.ActualDuration,
	}
	if req.ID != nil {
		in.ID = *req.ID
	}
	if req.Source != nil {
		in.Source = domain.TaskSource(*req.Source)
	}
	if req.Status != nil {
		in.Status = domain.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		in.Priority = domain.TaskPriority(*req.Priority)
	}
	if req.IsTimerRunning != nil {
		in.IsTimerRunning = *req.IsTimerRunning
	}
	if req.AIAnalyzed != nil {
		in.AIAnalyzed = *req.AIAnalyzed
	}

	var err error
	if in.DueDate, err = parseOptionalTime(req.DueDate, loc); err != nil {
		return domain.CreateTaskInput{}, err
	}
	if in.StartedAt, err = parseOptionalTime(req.StartedAt, loc); err != nil {
		return domain.CreateTaskInput{}, err
	}
	if in.CreatedAt, err = parseOptionalTime(req.CreatedAt, loc); err != nil {
		return domain.CreateTaskInput{}, err
	}

	return in, nil
}

// BuildUpdateTaskInput converts a partial update. Presence in raw decides
// which fields are applied; null clears nullable fields and is rejected for
// the others.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage, loc *time.Location) (domain.UpdateTaskInput, error) {
	for _, field := range []string{"title", "status", "priority", "source", "is_timer_running", "ai_analyzed"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
	}

	in := domain.UpdateTaskInput{
		Description:          req.Description,
		DescriptionSet:       hasJSONField(raw, "description"),
		Context:              req.Context,
		ContextSet:           hasJSONField(raw, "context"),
		Project:              req.Project,
		ProjectSet:           hasJSONField(raw, "project"),
		EstimatedDuration:    req.EstimatedDuration,
		EstimatedDurationSet: hasJSONField(raw, "estimated_duration"),
		ActualDuration:       req.ActualDuration,
		ActualDurationSet:    hasJSONField(raw, "actual_duration"),
		IsTimerRunning:       req.IsTimerRunning,
		AIAnalyzed:           req.AIAnalyzed,
		DueDateSet:           hasJSONField(raw, "due_date"),
		StartedAtSet:         hasJSONField(raw, "started_at"),
		EndedAtSet:           hasJSONField(raw, "ended_at"),
		CompletedAtSet:       hasJSONField(raw, "completed_at"),
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		in.Title = &title
	}
	if hasJSONField(raw, "tags") {
		tags := []string{}
		if req.Tags != nil {
			tags = *req.Tags
		}
		in.Tags = &tags
	}
	if req.Source != nil {
		value := domain.TaskSource(*req.Source)
		in.Source = &value
	}
	if req.Status != nil {
		value := domain.TaskStatus(*req.Status)
		in.Status = &value
	}
	if req.Priority != nil {
		value := domain.TaskPriority(*req.Priority)
		in.Priority = &value
	}

	var err error
	if in.DueDate, err = parseOptionalTime(req.DueDate, loc); err != nil {
		return domain.UpdateTaskInput{}, err
	}
	if in.StartedAt, err = parseOptionalTime(req.StartedAt, loc); err != nil {
		return domain.UpdateTaskInput{}, err
	}
	if in.EndedAt, err = parseOptionalTime(req.EndedAt, loc); err != nil {
		return domain.UpdateTaskInput{}, err
	}
	if in.CompletedAt, err = parseOptionalTime(req.CompletedAt, loc); err != nil {
		return domain.UpdateTaskInput{}, err
	}

	return in, nil
}

// ParseTimestamp accepts RFC 3339 or a local date/time without offset.
func ParseTimestamp(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTaskPayload
}

func parseOptionalTime(value *string, loc *time.Location) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := ParseTimestamp(*value, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
