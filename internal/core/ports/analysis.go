package ports

import (
	"context"
	"time"

	"taskorganizer/internal/core/domain"
)

// Analyzer enriches task input and produces review narratives.
type Analyzer interface {
	AnalyzeTask(ctx context.Context, input string) (domain.TaskAnalysis, error)
	AnalyzeCommit(ctx context.Context, commit domain.GitCommit) (domain.TaskAnalysis, error)
	Review(ctx context.Context, tasks []domain.Task, period domain.ReviewPeriod, start, end time.Time) (domain.ReviewNarrative, error)
}

type CommitSource interface {
	RecentCommits(ctx context.Context, limit int) ([]domain.GitCommit, error)
}
