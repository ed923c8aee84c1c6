package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"taskorganizer/internal/adapter/http/dto"
	"taskorganizer/internal/adapter/http/mapper"
	"taskorganizer/internal/adapter/http/validation"
	"taskorganizer/internal/core/domain"
	"taskorganizer/internal/core/ports"
	"taskorganizer/pkg/apierrors"
)

const maxImportLimit = 500

type TaskHandler struct {
	taskService ports.TaskService
	location    *time.Location
	now         func() time.Time
}

func NewTaskHandler(taskService ports.TaskService, location *time.Location) *TaskHandler {
	if location == nil {
		location = time.UTC
	}
	return &TaskHandler{taskService: taskService, location: location, now: time.Now}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context())
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailListTask, "failed to list tasks")
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks, h.now(), h.location))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskService.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailGetTask, "failed to get task")
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task, h.now(), h.location))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	raw, err := bindJSONWithFields(c, &req)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload)
		return
	}

	input, err := validation.BuildCreateTaskInput(req, raw, h.location)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailCreateTask, "failed to create task")
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task, h.now(), h.location))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req dto.UpdateTaskRequest
	raw, err := bindJSONWithFields(c, &req)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload)
		return
	}

	input, err := validation.BuildUpdateTaskInput(req, raw, h.location)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailUpdateTask, "failed to update task")
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task, h.now(), h.location))
}

// DeleteTask succeeds whether or not the task existed.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskService.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		respondTaskError(c, err, apierrors.MsgFailDeleteTask, "failed to delete task")
		return
	}

	c.JSON(http.StatusOK, dto.DeleteTaskResponse{Success: true})
}

func (h *TaskHandler) StartTimer(c *gin.Context) {
	h.timerAction(c, h.taskService.StartTimer, "failed to start timer")
}

func (h *TaskHandler) PauseTimer(c *gin.Context) {
	h.timerAction(c, h.taskService.PauseTimer, "failed to pause timer")
}

func (h *TaskHandler) CompleteTask(c *gin.Context) {
	h.timerAction(c, h.taskService.CompleteTask, "failed to complete task")
}

func (h *TaskHandler) timerAction(c *gin.Context, action func(ctx context.Context, id string) (domain.Task, error), logMsg string) {
	task, err := action(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailUpdateTask, logMsg)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task, h.now(), h.location))
}

func (h *TaskHandler) QuickAdd(c *gin.Context) {
	var req dto.QuickAddRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Input) == "" {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidQuickInput)
		return
	}

	task, err := h.taskService.QuickAdd(c.Request.Context(), req.Input)
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailCreateTask, "failed to quick-add task")
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task, h.now(), h.location))
}

func (h *TaskHandler) ImportCommits(c *gin.Context) {
	limit := 0
	if value := c.Query("limit"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed <= 0 || parsed > maxImportLimit {
			abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidQuery)
			return
		}
		limit = parsed
	}

	tasks, err := h.taskService.ImportCommits(c.Request.Context(), limit)
	if err != nil {
		if errors.Is(err, domain.ErrBackendUnavailable) {
			abortWithError(c, http.StatusServiceUnavailable, apierrors.MsgCommitSourceDisabled)
			return
		}
		zap.L().Error("failed to import commits", zap.Error(err))
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, apierrors.MsgFailImportCommits)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks, h.now(), h.location))
}

func (h *TaskHandler) Briefing(c *gin.Context) {
	briefing, err := h.taskService.Briefing(c.Request.Context())
	if err != nil {
		zap.L().Error("failed to build briefing", zap.Error(err))
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, apierrors.MsgFailBriefing)
		return
	}

	if c.Query("format") == "markdown" {
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(briefing.Render()))
		return
	}
	c.JSON(http.StatusOK, mapper.ToBriefingItem(briefing, h.now(), h.location))
}

// bindJSONWithFields decodes and validates the body into req and also
// returns the raw top-level fields, so callers can tell an absent field from
// an explicit null.
func bindJSONWithFields(c *gin.Context, req any) (map[string]json.RawMessage, error) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if err := binding.JSON.BindBody(body, req); err != nil {
		return nil, err
	}
	return raw, nil
}
