package ports

import (
	"context"
	"time"

	"taskorganizer/internal/core/domain"
)

type ReviewRepository interface {
	UpsertDailyReview(ctx context.Context, review domain.DailyReview) error
	GetDailyReview(ctx context.Context, date string) (domain.DailyReview, error)
	ListDailyReviews(ctx context.Context, limit int) ([]domain.DailyReview, error)
	UpsertWeeklyReview(ctx context.Context, review domain.WeeklyReview) error
	ListWeeklyReviews(ctx context.Context, limit int) ([]domain.WeeklyReview, error)
}

// DailyReviewGenerator is what the scheduler drives.
type DailyReviewGenerator interface {
	GenerateDailyReview(ctx context.Context, day time.Time) (domain.DailyReview, error)
}

type ReviewService interface {
	DailyReviewGenerator
	GenerateWeeklyReview(ctx context.Context, start, end time.Time) (domain.WeeklyReview, error)
	GetDailyReview(ctx context.Context, date string) (domain.DailyReview, error)
	ListDailyReviews(ctx context.Context, limit int) ([]domain.DailyReview, error)
	ListWeeklyReviews(ctx context.Context, limit int) ([]domain.WeeklyReview, error)
}
