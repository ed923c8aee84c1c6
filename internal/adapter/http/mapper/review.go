package mapper

import (
	"time"

	"taskorganizer/internal/adapter/http/dto"
	"taskorganizer/internal/core/domain"
)

func ToDailyReviewItem(review domain.DailyReview) dto.DailyReviewItem {
	item := dto.DailyReviewItem{
		Date:           review.Date,
		Summary:        review.Summary,
		Insights:       nonNilStrings(review.Insights),
		TotalTasks:     review.TotalTasks,
		CompletedTasks: review.CompletedTasks,
		TotalTimeSpent: review.TotalTimeSpent,
		TimeByProject:  nonNilMinutes(review.TimeByProject),
		TimeByTag:      nonNilMinutes(review.TimeByTag),
		Suggestions:    nonNilStrings(review.Suggestions),
		CreatedAt:      review.CreatedAt.Format(time.RFC3339),
		AnalysisFailed: review.AnalysisFailed,
	}
	return item
}

func ToDailyReviewItems(reviews []domain.DailyReview) []dto.DailyReviewItem {
	items := make([]dto.DailyReviewItem, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, ToDailyReviewItem(review))
	}
	return items
}

func ToWeeklyReviewItem(review domain.WeeklyReview) dto.WeeklyReviewItem {
	return dto.WeeklyReviewItem{
		ID:             review.ID,
		StartDate:      review.StartDate,
		EndDate:        review.EndDate,
		Summary:        review.Summary,
		Insights:       nonNilStrings(review.Insights),
		TotalTasks:     review.TotalTasks,
		CompletedTasks: review.CompletedTasks,
		CreatedAt:      review.CreatedAt.Format(time.RFC3339),
		AnalysisFailed: review.AnalysisFailed,
	}
}

func ToWeeklyReviewItems(reviews []domain.WeeklyReview) []dto.WeeklyReviewItem {
	items := make([]dto.WeeklyReviewItem, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, ToWeeklyReviewItem(review))
	}
	return items
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func nonNilMinutes(values map[string]int) map[string]int {
	if values == nil {
		return map[string]int{}
	}
	return values
}
