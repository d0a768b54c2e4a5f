package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/scrumscribe-team/scrumscribe/errors"
	taskdto "github.com/scrumscribe-team/scrumscribe/internal/adapter/dto/task"
	"github.com/scrumscribe-team/scrumscribe/internal/usecase/review"
)

// Task handles reviewer endpoints for task drafts
type Task struct {
	service *review.Service
	logger  *zap.Logger
}

// NewTask creates a task handler
func NewTask(service *review.Service, logger *zap.Logger) *Task {
	return &Task{
		service: service,
		logger:  logger,
	}
}

// Update handles PATCH /v1/tasks/:id
// @Summary      Edit a task draft
// @Description  Applies reviewer edits to a task that is still in draft state
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Task ID (UUID)"
// @Param        request  body      task.UpdateRequest  true  "Fields to change"
// @Success      200  {object}  task.Response  "Updated task"
// @Failure      404  {object}  common.ErrorResponse  "Task not found"
// @Failure      409  {object}  common.ErrorResponse  "Task is not in draft state"
// @Router       /tasks/{id} [patch]
func (h *Task) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid task id"))
	}

	var req taskdto.UpdateRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	updated, err := h.service.EditTask(c.Request().Context(), id, review.TaskPatch{
		Summary:     req.Summary,
		Description: req.Description,
		IssueType:   req.IssueType,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
		Labels:      req.Labels,
		StoryPoints: req.StoryPoints,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, taskdto.FromEntity(updated))
}

// Approve handles POST /v1/tasks/approve
// @Summary      Approve and push tasks
// @Description  Approves a batch of draft tasks and pushes them to the tracker; reports per-task outcomes
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        request  body      task.ApproveRequest  true  "Task IDs to approve"
// @Success      200  {object}  push.Result  "Per-task push outcomes"
// @Failure      502  {object}  common.ErrorResponse  "Tracker rejected an issue"
// @Failure      503  {object}  common.ErrorResponse  "Tracker unreachable or unconfigured"
// @Router       /tasks/approve [post]
func (h *Task) Approve(c echo.Context) error {
	var req taskdto.ApproveRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	result, err := h.service.BulkApprove(c.Request().Context(), req.TaskIDs)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, result)
}
