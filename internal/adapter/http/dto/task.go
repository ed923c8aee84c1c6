package dto

type TaskItem struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Description       *string  `json:"description,omitempty"`
	Context           *string  `json:"context,omitempty"`
	Project           *string  `json:"project,omitempty"`
	Tags              []string `json:"tags"`
	Source            string   `json:"source"`
	GitCommitSHA      *string  `json:"git_commit_sha,omitempty"`
	GitCommitMessage  *string  `json:"git_commit_message,omitempty"`
	Status            string   `json:"status"`
	Priority          string   `json:"priority"`
	DueDate           *string  `json:"due_date,omitempty"`
	EstimatedDuration *int     `json:"estimated_duration,omitempty"`
	ActualDuration    *int     `json:"actual_duration,omitempty"`
	IsTimerRunning    bool     `json:"is_timer_running"`
	StartedAt         *string  `json:"started_at,omitempty"`
	EndedAt           *string  `json:"ended_at,omitempty"`
	CompletedAt       *string  `json:"completed_at,omitempty"`
	AIAnalyzed        bool     `json:"ai_analyzed"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`

	// Derived at response time.
	ElapsedMinutes *int    `json:"elapsed_minutes,omitempty"`
	DDay           *string `json:"dday,omitempty"`
	DueStatus      *string `json:"due_status,omitempty"`
}

type CreateTaskRequest struct {
	ID                *string  `json:"id" binding:"omitempty,max=64"`
	Title             string   `json:"title" binding:"required,max=500"`
	Description       *string  `json:"description" binding:"omitempty,max=65535"`
	Context           *string  `json:"context" binding:"omitempty,max=255"`
	Project           *string  `json:"project" binding:"omitempty,max=255"`
	Tags              []string `json:"tags" binding:"omitempty,max=50,dive,max=100"`
	Source            *string  `json:"source" binding:"omitempty,oneof=manual git"`
	Status            *string  `json:"status" binding:"omitempty,oneof=pending in_progress completed archived"`
	Priority          *string  `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	DueDate           *string  `json:"due_date"`
	EstimatedDuration *int     `json:"estimated_duration" binding:"omitempty,gte=0"`
	ActualDuration    *int     `json:"actual_duration" binding:"omitempty,gte=0"`
	IsTimerRunning    *bool    `json:"is_timer_running"`
	StartedAt         *string  `json:"started_at"`
	AIAnalyzed        *bool    `json:"ai_analyzed"`
	CreatedAt         *string  `json:"created_at"`
}

type UpdateTaskRequest struct {
	Title             *string   `json:"title" binding:"omitempty,max=500"`
	Description       *string   `json:"description" binding:"omitempty,max=65535"`
	Context           *string   `json:"context" binding:"omitempty,max=255"`
	Project           *string   `json:"project" binding:"omitempty,max=255"`
	Tags              *[]string `json:"tags" binding:"omitempty,max=50,dive,max=100"`
	Source            *string   `json:"source" binding:"omitempty,oneof=manual git"`
	Status            *string   `json:"status" binding:"omitempty,oneof=pending in_progress completed archived"`
	Priority          *string   `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	DueDate           *string   `json:"due_date"`
	EstimatedDuration *int      `json:"estimated_duration" binding:"omitempty,gte=0"`
	ActualDuration    *int      `json:"actual_duration" binding:"omitempty,gte=0"`
	IsTimerRunning    *bool     `json:"is_timer_running"`
	StartedAt         *string   `json:"started_at"`
	EndedAt           *string   `json:"ended_at"`
	CompletedAt       *string   `json:"completed_at"`
	AIAnalyzed        *bool     `json:"ai_analyzed"`
}

type QuickAddRequest struct {
	Input string `json:"input" binding:"required,max=2000"`
}

type DeleteTaskResponse struct {
	Success bool `json:"success"`
}

type BriefingItem struct {
	Date       string     `json:"date"`
	Total      int        `json:"total"`
	InProgress int        `json:"in_progress"`
	Pending    int        `json:"pending"`
	Tasks      []TaskItem `json:"tasks"`
}
