package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskorganizer/internal/adapter/http/dto"
	"taskorganizer/internal/adapter/http/mapper"
	"taskorganizer/internal/adapter/http/validation"
	"taskorganizer/internal/core/domain"
	"taskorganizer/internal/core/ports"
	"taskorganizer/pkg/apierrors"
)

const maxReviewListLimit = 365

type ReviewHandler struct {
	reviewService ports.ReviewService
	location      *time.Location
	now           func() time.Time
}

func NewReviewHandler(reviewService ports.ReviewService, location *time.Location) *ReviewHandler {
	if location == nil {
		location = time.UTC
	}
	return &ReviewHandler{reviewService: reviewService, location: location, now: time.Now}
}

func (h *ReviewHandler) ListDailyReviews(c *gin.Context) {
	limit, ok := h.listLimit(c)
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListDailyReviews(c.Request.Context(), limit)
	if err != nil {
		h.internalError(c, err, apierrors.MsgFailListReviews, "failed to list daily reviews")
		return
	}

	c.JSON(http.StatusOK, mapper.ToDailyReviewItems(reviews))
}

func (h *ReviewHandler) GetDailyReview(c *gin.Context) {
	review, err := h.reviewService.GetDailyReview(c.Request.Context(), c.Param("date"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidReviewDate)
		case errors.Is(err, domain.ErrReviewNotFound):
			abortWithError(c, http.StatusNotFound, apierrors.MsgReviewNotFound)
		default:
			h.internalError(c, err, apierrors.MsgFailListReviews, "failed to get daily review")
		}
		return
	}

	c.JSON(http.StatusOK, mapper.ToDailyReviewItem(review))
}

// GenerateDailyReview runs the aggregator for the given date, today when
// the body is empty.
func (h *ReviewHandler) GenerateDailyReview(c *gin.Context) {
	var req dto.GenerateDailyReviewRequest
	if !h.bindOptional(c, &req) {
		return
	}

	day := h.now().In(h.location)
	if req.Date != nil {
		parsed, err := validation.ParseReviewDate(*req.Date, h.location)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidReviewDate)
			return
		}
		day = parsed
	}

	review, err := h.reviewService.GenerateDailyReview(c.Request.Context(), day)
	if err != nil {
		h.internalError(c, err, apierrors.MsgFailGenerateReview, "failed to generate daily review")
		return
	}

	c.JSON(http.StatusOK, mapper.ToDailyReviewItem(review))
}

func (h *ReviewHandler) ListWeeklyReviews(c *gin.Context) {
	limit, ok := h.listLimit(c)
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListWeeklyReviews(c.Request.Context(), limit)
	if err != nil {
		h.internalError(c, err, apierrors.MsgFailListReviews, "failed to list weekly reviews")
		return
	}

	c.JSON(http.StatusOK, mapper.ToWeeklyReviewItems(reviews))
}

func (h *ReviewHandler) GenerateWeeklyReview(c *gin.Context) {
	var req dto.GenerateWeeklyReviewRequest
	if !h.bindOptional(c, &req) {
		return
	}

	start, end, err := validation.WeeklyRange(req.StartDate, req.EndDate, h.now(), h.location)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidReviewDate)
		return
	}

	review, err := h.reviewService.GenerateWeeklyReview(c.Request.Context(), start, end)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidReviewDate)
			return
		}
		h.internalError(c, err, apierrors.MsgFailGenerateReview, "failed to generate weekly review")
		return
	}

	c.JSON(http.StatusOK, mapper.ToWeeklyReviewItem(review))
}

func (h *ReviewHandler) bindOptional(c *gin.Context, req any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidReviewDate)
		return false
	}
	return true
}

func (h *ReviewHandler) listLimit(c *gin.Context) (int, bool) {
	value := c.Query("limit")
	if value == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(value)
	if err != nil || limit <= 0 || limit > maxReviewListLimit {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidQuery)
		return 0, false
	}
	return limit, true
}

func (h *ReviewHandler) internalError(c *gin.Context, err error, msgKey, logMsg string) {
	zap.L().Error(logMsg, zap.Error(err))
	_ = c.Error(err)
	abortWithError(c, http.StatusInternalServerError, msgKey)
}
