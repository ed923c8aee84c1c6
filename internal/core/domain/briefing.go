package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type DueStatus string

const (
	DueOverdue DueStatus = "overdue"
	DueUrgent  DueStatus = "urgent"
	DueSoon    DueStatus = "soon"
	DueNormal  DueStatus = "normal"
)

const dueSoonDays = 3

// DaysUntilDue counts calendar days between today and the due date in loc.
func DaysUntilDue(due, now time.Time, loc *time.Location) int {
	dueDay, _ := DayRange(due, loc)
	today, _ := DayRange(now, loc)
	return int(math.Round(dueDay.Sub(today).Hours() / 24))
}

// DDay formats the distance to a due date as D-3, D-Day or D+2.
func DDay(due, now time.Time, loc *time.Location) string {
	diff := DaysUntilDue(due, now, loc)
	switch {
	case diff == 0:
		return "D-Day"
	case diff > 0:
		return fmt.Sprintf("D-%d", diff)
	default:
		return fmt.Sprintf("D+%d", -diff)
	}
}

func DueStatusOf(due, now time.Time, loc *time.Location) DueStatus {
	diff := DaysUntilDue(due, now, loc)
	switch {
	case diff < 0:
		return DueOverdue
	case diff == 0:
		return DueUrgent
	case diff <= dueSoonDays:
		return DueSoon
	default:
		return DueNormal
	}
}

// Briefing lists the open tasks worth looking at in the morning.
type Briefing struct {
	Date       string
	Tasks      []Task
	Total      int
	InProgress int
	Pending    int
}

// BuildBriefing keeps open tasks created today plus any open high or urgent
// task.
func BuildBriefing(tasks []Task, now time.Time, loc *time.Location) Briefing {
	start, end := DayRange(now, loc)
	b := Briefing{Date: start.Format(DateLayout), Tasks: []Task{}}
	for _, task := range tasks {
		if task.Status == TaskStatusCompleted || task.Status == TaskStatusArchived {
			continue
		}
		createdToday := !task.CreatedAt.Before(start) && task.CreatedAt.Before(end)
		important := task.Priority == TaskPriorityHigh || task.Priority == TaskPriorityUrgent
		if !createdToday && !important {
			continue
		}
		b.Tasks = append(b.Tasks, task)
		switch task.Status {
		case TaskStatusInProgress:
			b.InProgress++
		case TaskStatusPending:
			b.Pending++
		}
	}
	b.Total = len(b.Tasks)
	return b
}

// Render converts the briefing to Markdown.
func (b Briefing) Render() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Briefing: %s\n\n", b.Date))
	sb.WriteString(fmt.Sprintf("**Status**: %d total, %d in progress, %d pending\n\n", b.Total, b.InProgress, b.Pending))

	if b.Total == 0 {
		sb.WriteString("No tasks for today. Add some to get started!\n")
		return sb.String()
	}

	sb.WriteString("## Today's Tasks\n\n")
	for _, task := range b.Tasks {
		sb.WriteString(fmt.Sprintf("- [%s] %s (%s)\n", task.Status, task.Title, task.Priority))
	}
	return sb.String()
}
