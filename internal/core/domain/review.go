package domain

import (
	"fmt"
	"math"
	"time"
)

const DateLayout = "2006-01-02"

type ReviewPeriod string

const (
	ReviewPeriodDaily  ReviewPeriod = "daily"
	ReviewPeriodWeekly ReviewPeriod = "weekly"
)

const (
	SuggestionPlanAhead    = "No tasks were recorded for this day. Plan ahead by adding tomorrow's tasks tonight."
	SuggestionBreakDown    = "Less than half of your tasks were completed. Try breaking large tasks down into smaller steps."
	SuggestionAmbitious    = "You completed every task. Consider setting more ambitious goals next time."
	SuggestionTrackTime    = "Your time estimates were far from the time actually spent. Track time more carefully to sharpen future estimates."
	SuggestionPrioritize   = "More than three tasks were marked urgent. Revisit your priorities to focus on what matters most."
	InsightAIDisabled      = "AI analysis is disabled, so this review was generated without it."
	SummaryNoTasks         = "No tasks were recorded for this day."
	urgentTaskLimit        = 3
	estimationErrorLimit   = 0.5
	lowCompletionThreshold = 50.0
)

type DailyReview struct {
	Date           string
	Summary        string
	Insights       []string
	TotalTasks     int
	CompletedTasks int
	TotalTimeSpent int
	TimeByProject  map[string]int
	TimeByTag      map[string]int
	Suggestions    []string
	CreatedAt      time.Time

	// AnalysisFailed is set when the analysis backend returned an error and
	// the fallback narrative was used. Not persisted.
	AnalysisFailed bool
}

type WeeklyReview struct {
	ID             string
	StartDate      string
	EndDate        string
	Summary        string
	Insights       []string
	TotalTasks     int
	CompletedTasks int
	CreatedAt      time.Time
	AnalysisFailed bool
}

// ReviewNarrative is the text an analysis backend produces for a review.
type ReviewNarrative struct {
	Summary  string
	Insights []string
}

// TaskAnalysis is the structured enrichment an analysis backend returns for
// free-text input or a commit.
type TaskAnalysis struct {
	Description       string
	Priority          TaskPriority
	Tags              []string
	Context           string
	Project           *string
	EstimatedDuration *int

	// Heuristic marks an analysis produced without a model.
	Heuristic bool
}

type GitCommit struct {
	SHA          string
	Message      string
	Author       string
	Date         time.Time
	FilesChanged []string
}

// DailyStats are the counters of a review derived from a task snapshot.
type DailyStats struct {
	TotalTasks     int
	CompletedTasks int
	TotalTimeSpent int
	TimeByProject  map[string]int
	TimeByTag      map[string]int
}

func (s DailyStats) CompletionRate() float64 {
	if s.TotalTasks == 0 {
		return 0
	}
	return float64(s.CompletedTasks) / float64(s.TotalTasks) * 100
}

// DayRange returns [start of day, start of next day) for the calendar day of
// t in loc.
func DayRange(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

func ComputeDailyStats(tasks []Task) DailyStats {
	stats := DailyStats{
		TotalTasks:    len(tasks),
		TimeByProject: map[string]int{},
		TimeByTag:     map[string]int{},
	}
	for _, task := range tasks {
		minutes := 0
		if task.ActualDuration != nil {
			minutes = *task.ActualDuration
		}
		if task.Status == TaskStatusCompleted {
			stats.CompletedTasks++
		}
		stats.TotalTimeSpent += minutes
		if task.Project != nil && *task.Project != "" {
			stats.TimeByProject[*task.Project] += minutes
		}
		for _, tag := range task.Tags {
			stats.TimeByTag[tag] += minutes
		}
	}
	return stats
}

// SuggestImprovements derives heuristic recommendations from a day's tasks.
func SuggestImprovements(tasks []Task, stats DailyStats) []string {
	suggestions := make([]string, 0, 4)

	rate := stats.CompletionRate()
	if rate < lowCompletionThreshold {
		suggestions = append(suggestions, SuggestionBreakDown)
	}
	if rate == 100 {
		suggestions = append(suggestions, SuggestionAmbitious)
	}

	if meanError, ok := MeanEstimationError(tasks); ok && meanError > estimationErrorLimit {
		suggestions = append(suggestions, SuggestionTrackTime)
	}

	urgent := 0
	for _, task := range tasks {
		if task.Priority == TaskPriorityUrgent {
			urgent++
		}
	}
	if urgent > urgentTaskLimit {
		suggestions = append(suggestions, SuggestionPrioritize)
	}

	return suggestions
}

// MeanEstimationError averages |estimated-actual|/estimated over tasks that
// carry both durations. Tasks estimated at zero minutes are ignored.
func MeanEstimationError(tasks []Task) (float64, bool) {
	var sum float64
	count := 0
	for _, task := range tasks {
		if task.EstimatedDuration == nil || task.ActualDuration == nil || *task.EstimatedDuration <= 0 {
			continue
		}
		estimated := float64(*task.EstimatedDuration)
		sum += math.Abs(estimated-float64(*task.ActualDuration)) / estimated
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// EmptyDailyReview is the review of a day without tasks.
func EmptyDailyReview(date string, now time.Time) DailyReview {
	return DailyReview{
		Date:          date,
		Summary:       SummaryNoTasks,
		Insights:      []string{},
		TimeByProject: map[string]int{},
		TimeByTag:     map[string]int{},
		Suggestions:   []string{SuggestionPlanAhead},
		CreatedAt:     now,
	}
}

// FallbackTaskAnalysis is the analysis used when no backend answered.
func FallbackTaskAnalysis(input string) TaskAnalysis {
	return TaskAnalysis{
		Description: input,
		Priority:    TaskPriorityMedium,
		Tags:        []string{"unclassified"},
		Context:     "General",
		Heuristic:   true,
	}
}

// FallbackCommitAnalysis is the commit analysis used when no backend answered.
func FallbackCommitAnalysis(commit GitCommit) TaskAnalysis {
	return TaskAnalysis{
		Priority:  TaskPriorityMedium,
		Tags:      []string{"unclassified"},
		Context:   commit.Message,
		Heuristic: true,
	}
}

// FallbackNarrative is the deterministic text used when no analysis backend
// is available.
func FallbackNarrative(tasks []Task) ReviewNarrative {
	completed := 0
	for _, task := range tasks {
		if task.Status == TaskStatusCompleted {
			completed++
		}
	}
	return ReviewNarrative{
		Summary:  fmt.Sprintf("%d tasks completed", completed),
		Insights: []string{InsightAIDisabled},
	}
}
