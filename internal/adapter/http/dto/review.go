package dto

type DailyReviewItem struct {
	Date           string         `json:"date"`
	Summary        string         `json:"summary"`
	Insights       []string       `json:"insights"`
	TotalTasks     int            `json:"total_tasks"`
	CompletedTasks int            `json:"completed_tasks"`
	TotalTimeSpent int            `json:"total_time_spent"`
	TimeByProject  map[string]int `json:"time_by_project"`
	TimeByTag      map[string]int `json:"time_by_tag"`
	Suggestions    []string       `json:"suggestions"`
	CreatedAt      string         `json:"created_at"`
	AnalysisFailed bool           `json:"analysis_failed,omitempty"`
}

type WeeklyReviewItem struct {
	ID             string   `json:"id"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	Summary        string   `json:"summary"`
	Insights       []string `json:"insights"`
	TotalTasks     int      `json:"total_tasks"`
	CompletedTasks int      `json:"completed_tasks"`
	CreatedAt      string   `json:"created_at"`
	AnalysisFailed bool     `json:"analysis_failed,omitempty"`
}

type GenerateDailyReviewRequest struct {
	Date *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

type GenerateWeeklyReviewRequest struct {
	StartDate *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}
