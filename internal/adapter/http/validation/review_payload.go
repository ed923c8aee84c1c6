package validation

import (
	"errors"
	"time"

	"taskorganizer/internal/core/domain"
)

var ErrInvalidReviewDate = errors.New("invalid review date")

// ParseReviewDate reads a YYYY-MM-DD date as midnight in loc.
func ParseReviewDate(value string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(domain.DateLayout, value, loc)
	if err != nil {
		return time.Time{}, ErrInvalidReviewDate
	}
	return day, nil
}

// WeeklyRange resolves optional bounds of a weekly review. Missing bounds
// default to the seven days ending today.
func WeeklyRange(start, end *string, now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	today, _ := domain.DayRange(now, loc)

	to := today
	if end != nil {
		parsed, err := ParseReviewDate(*end, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}

	from := to.AddDate(0, 0, -6)
	if start != nil {
		parsed, err := ParseReviewDate(*start, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, ErrInvalidReviewDate
	}
	return from, to, nil
}
