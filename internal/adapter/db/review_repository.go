package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"taskorganizer/internal/config"
	"taskorganizer/internal/core/domain"
	"taskorganizer/internal/core/ports"
)

const dailyReviewColumns = `
  review_date, summary, insights, total_tasks, completed_tasks,
  total_time_spent, time_by_project, time_by_tag, suggestions,
  created_at, updated_at`

const insertDailyReviewQuery = `
INSERT INTO daily_reviews (` + dailyReviewColumns + `)
VALUES (
  :review_date, :summary, :insights, :total_tasks, :completed_tasks,
  :total_time_spent, :time_by_project, :time_by_tag, :suggestions,
  :created_at, :updated_at
)`

const upsertDailyReviewMySQL = insertDailyReviewQuery + `
ON DUPLICATE KEY UPDATE
  summary = VALUES(summary),
  insights = VALUES(insights),
  total_tasks = VALUES(total_tasks),
  completed_tasks = VALUES(completed_tasks),
  total_time_spent = VALUES(total_time_spent),
  time_by_project = VALUES(time_by_project),
  time_by_tag = VALUES(time_by_tag),
  suggestions = VALUES(suggestions),
  created_at = VALUES(created_at),
  updated_at = VALUES(updated_at)`

const upsertDailyReviewStandard = insertDailyReviewQuery + `
ON CONFLICT (review_date) DO UPDATE SET
  summary = excluded.summary,
  insights = excluded.insights,
  total_tasks = excluded.total_tasks,
  completed_tasks = excluded.completed_tasks,
  total_time_spent = excluded.total_time_spent,
  time_by_project = excluded.time_by_project,
  time_by_tag = excluded.time_by_tag,
  suggestions = excluded.suggestions,
  created_at = excluded.created_at,
  updated_at = excluded.updated_at`

const getDailyReviewQuery = `SELECT` + dailyReviewColumns + `
FROM daily_reviews
WHERE review_date = ?`

const listDailyReviewsQuery = `SELECT` + dailyReviewColumns + `
FROM daily_reviews
ORDER BY review_date DESC
LIMIT ?`

const weeklyReviewColumns = `
  id, start_date, end_date, summary, insights, total_tasks,
  completed_tasks, created_at, updated_at`

const insertWeeklyReviewQuery = `
INSERT INTO weekly_reviews (` + weeklyReviewColumns + `)
VALUES (
  :id, :start_date, :end_date, :summary, :insights, :total_tasks,
  :completed_tasks, :created_at, :updated_at
)`

const upsertWeeklyReviewMySQL = insertWeeklyReviewQuery + `
ON DUPLICATE KEY UPDATE
  summary = VALUES(summary),
  insights = VALUES(insights),
  total_tasks = VALUES(total_tasks),
  completed_tasks = VALUES(completed_tasks),
  updated_at = VALUES(updated_at)`

const upsertWeeklyReviewStandard = insertWeeklyReviewQuery + `
ON CONFLICT (start_date, end_date) DO UPDATE SET
  summary = excluded.summary,
  insights = excluded.insights,
  total_tasks = excluded.total_tasks,
  completed_tasks = excluded.completed_tasks,
  updated_at = excluded.updated_at`

const listWeeklyReviewsQuery = `SELECT` + weeklyReviewColumns + `
FROM weekly_reviews
ORDER BY start_date DESC, end_date DESC
LIMIT ?`

type ReviewRepository struct {
	db *sqlx.DB
}

type dailyReviewRow struct {
	Date           string         `db:"review_date"`
	Summary        string         `db:"summary"`
	Insights       stringList     `db:"insights"`
	TotalTasks     int            `db:"total_tasks"`
	CompletedTasks int            `db:"completed_tasks"`
	TotalTimeSpent int            `db:"total_time_spent"`
	TimeByProject  minutesByLabel `db:"time_by_project"`
	TimeByTag      minutesByLabel `db:"time_by_tag"`
	Suggestions    stringList     `db:"suggestions"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

type weeklyReviewRow struct {
	ID             string     `db:"id"`
	StartDate      string     `db:"start_date"`
	EndDate        string     `db:"end_date"`
	Summary        string     `db:"summary"`
	Insights       stringList `db:"insights"`
	TotalTasks     int        `db:"total_tasks"`
	CompletedTasks int        `db:"completed_tasks"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

var _ ports.ReviewRepository = (*ReviewRepository)(nil)

func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// UpsertDailyReview replaces the whole review stored for the same date.
func (r *ReviewRepository) UpsertDailyReview(ctx context.Context, review domain.DailyReview) error {
	query := upsertDailyReviewStandard
	if r.db.DriverName() == config.DriverMySQL {
		query = upsertDailyReviewMySQL
	}

	row := dailyReviewRow{
		Date:           review.Date,
		Summary:        review.Summary,
		Insights:       stringList(review.Insights),
		TotalTasks:     review.TotalTasks,
		CompletedTasks: review.CompletedTasks,
		TotalTimeSpent: review.TotalTimeSpent,
		TimeByProject:  minutesByLabel(review.TimeByProject),
		TimeByTag:      minutesByLabel(review.TimeByTag),
		Suggestions:    stringList(review.Suggestions),
		CreatedAt:      utc(review.CreatedAt),
		UpdatedAt:      utc(review.CreatedAt),
	}
	_, err := r.db.NamedExecContext(ctx, query, row)
	return err
}

func (r *ReviewRepository) GetDailyReview(ctx context.Context, date string) (domain.DailyReview, error) {
	var row dailyReviewRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(getDailyReviewQuery), date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.DailyReview{}, domain.ErrReviewNotFound
		}
		return domain.DailyReview{}, err
	}
	return mapDailyReviewRow(row), nil
}

func (r *ReviewRepository) ListDailyReviews(ctx context.Context, limit int) ([]domain.DailyReview, error) {
	var rows []dailyReviewRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(listDailyReviewsQuery), limit); err != nil {
		return nil, err
	}

	reviews := make([]domain.DailyReview, 0, len(rows))
	for _, row := range rows {
		reviews = append(reviews, mapDailyReviewRow(row))
	}
	return reviews, nil
}

func (r *ReviewRepository) UpsertWeeklyReview(ctx context.Context, review domain.WeeklyReview) error {
	query := upsertWeeklyReviewStandard
	if r.db.DriverName() == config.DriverMySQL {
		query = upsertWeeklyReviewMySQL
	}

	row := weeklyReviewRow{
		ID:             review.ID,
		StartDate:      review.StartDate,
		EndDate:        review.EndDate,
		Summary:        review.Summary,
		Insights:       stringList(review.Insights),
		TotalTasks:     review.TotalTasks,
		CompletedTasks: review.CompletedTasks,
		CreatedAt:      utc(review.CreatedAt),
		UpdatedAt:      utc(review.CreatedAt),
	}
	_, err := r.db.NamedExecContext(ctx, query, row)
	return err
}

func (r *ReviewRepository) ListWeeklyReviews(ctx context.Context, limit int) ([]domain.WeeklyReview, error) {
	var rows []weeklyReviewRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(listWeeklyReviewsQuery), limit); err != nil {
		return nil, err
	}

	reviews := make([]domain.WeeklyReview, 0, len(rows))
	for _, row := range rows {
		reviews = append(reviews, domain.WeeklyReview{
			ID:             row.ID,
			StartDate:      row.StartDate,
			EndDate:        row.EndDate,
			Summary:        row.Summary,
			Insights:       []string(row.Insights),
			TotalTasks:     row.TotalTasks,
			CompletedTasks: row.CompletedTasks,
			CreatedAt:      row.CreatedAt.UTC(),
		})
	}
	return reviews, nil
}

func mapDailyReviewRow(row dailyReviewRow) domain.DailyReview {
	return domain.DailyReview{
		Date:           row.Date,
		Summary:        row.Summary,
		Insights:       []string(row.Insights),
		TotalTasks:     row.TotalTasks,
		CompletedTasks: row.CompletedTasks,
		TotalTimeSpent: row.TotalTimeSpent,
		TimeByProject:  map[string]int(row.TimeByProject),
		TimeByTag:      map[string]int(row.TimeByTag),
		Suggestions:    []string(row.Suggestions),
		CreatedAt:      row.CreatedAt.UTC(),
	}
}
