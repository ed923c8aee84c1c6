package ai

import (
	"context"
	"time"

	"taskorganizer/internal/core/domain"
	"taskorganizer/internal/core/ports"
)

// FallbackAnalyzer answers without any I/O. It is used when no API key is
// configured.
type FallbackAnalyzer struct{}

var _ ports.Analyzer = FallbackAnalyzer{}

func NewFallbackAnalyzer() FallbackAnalyzer {
	return FallbackAnalyzer{}
}

func (FallbackAnalyzer) AnalyzeTask(_ context.Context, input string) (domain.TaskAnalysis, error) {
	return domain.FallbackTaskAnalysis(input), nil
}

func (FallbackAnalyzer) AnalyzeCommit(_ context.Context, commit domain.GitCommit) (domain.TaskAnalysis, error) {
	return domain.FallbackCommitAnalysis(commit), nil
}

func (FallbackAnalyzer) Review(_ context.Context, tasks []domain.Task, _ domain.ReviewPeriod, _, _ time.Time) (domain.ReviewNarrative, error) {
	return domain.FallbackNarrative(tasks), nil
}
