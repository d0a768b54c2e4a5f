package handler

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/scrumscribe-team/scrumscribe/errors"
	"github.com/scrumscribe-team/scrumscribe/internal/adapter/dto/common"
	meetingdto "github.com/scrumscribe-team/scrumscribe/internal/adapter/dto/meeting"
	taskdto "github.com/scrumscribe-team/scrumscribe/internal/adapter/dto/task"
	"github.com/scrumscribe-team/scrumscribe/internal/usecase/meeting"
)

// RecordingStore uploads meeting recordings to blob storage
type RecordingStore interface {
	UploadRecording(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
}

// Meeting handles meeting import and read endpoints
type Meeting struct {
	service *meeting.Service
	store   RecordingStore
	logger  *zap.Logger
}

// NewMeeting creates a meeting handler
func NewMeeting(service *meeting.Service, store RecordingStore, logger *zap.Logger) *Meeting {
	return &Meeting{
		service: service,
		store:   store,
		logger:  logger,
	}
}

// Import handles POST /v1/meetings/import
// @Summary      Import a meeting recording
// @Description  Registers an already-stored recording by URL and queues it for processing
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        request  body      meeting.ImportRequest  true  "Meeting import request"
// @Success      201      {object}  meeting.Response  "Meeting queued"
// @Failure      400      {object}  common.ErrorResponse  "Invalid request or validation failed"
// @Router       /meetings/import [post]
func (h *Meeting) Import(c echo.Context) error {
	var req meetingdto.ImportRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	m, err := h.service.Import(c.Request().Context(), req.Title, req.StartedAt, req.AudioURL, req.OriginalFilename)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, meetingdto.FromEntity(m))
}

// Upload handles POST /v1/meetings/upload
// @Summary      Upload a meeting recording
// @Description  Receives a recording file, stores it in object storage and queues processing
// @Tags         Meetings
// @Accept       multipart/form-data
// @Produce      json
// @Param        file        formData  file    true   "Recording file"
// @Param        title       formData  string  true   "Meeting title"
// @Param        started_at  formData  string  false  "Meeting start time (RFC3339)"
// @Success      201  {object}  meeting.Response  "Meeting queued"
// @Failure      400  {object}  common.ErrorResponse  "Missing title or file"
// @Router       /meetings/upload [post]
func (h *Meeting) Upload(c echo.Context) error {
	title := c.FormValue("title")
	if title == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("title is required"))
	}

	var startedAt *time.Time
	if raw := c.FormValue("started_at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("started_at must be RFC3339"))
		}
		startedAt = &parsed
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("file is required"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("open upload", err))
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := fmt.Sprintf("recordings/%s%s", uuid.New(), filepath.Ext(fileHeader.Filename))
	audioURL, err := h.store.UploadRecording(c.Request().Context(), objectName, src, fileHeader.Size, contentType)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("upload recording", err))
	}

	filename := fileHeader.Filename
	m, err := h.service.Import(c.Request().Context(), title, startedAt, audioURL, &filename)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, meetingdto.FromEntity(m))
}

// Get handles GET /v1/meetings/:id
// @Summary      Get meeting details
// @Description  Gets a meeting with its status, transcript and failure reason
// @Tags         Meetings
// @Produce      json
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  meeting.Response  "Meeting details"
// @Failure      404  {object}  common.ErrorResponse  "Meeting not found"
// @Router       /meetings/{id} [get]
func (h *Meeting) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting id"))
	}

	m, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meetingdto.FromEntity(m))
}

// List handles GET /v1/meetings
// @Summary      List meetings
// @Description  Gets all meetings, newest first
// @Tags         Meetings
// @Produce      json
// @Success      200  {object}  common.ListResponse  "Meetings"
// @Router       /meetings [get]
func (h *Meeting) List(c echo.Context) error {
	meetings, err := h.service.List(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, common.ListResponse{
		Data:  meetingdto.FromEntities(meetings),
		Total: len(meetings),
	})
}

// ListTasks handles GET /v1/meetings/:id/tasks
// @Summary      List extracted tasks
// @Description  Gets the task drafts extracted from a meeting
// @Tags         Meetings
// @Produce      json
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  common.ListResponse  "Task drafts"
// @Failure      404  {object}  common.ErrorResponse  "Meeting not found"
// @Router       /meetings/{id}/tasks [get]
func (h *Meeting) ListTasks(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting id"))
	}

	tasks, err := h.service.ListTasks(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, common.ListResponse{
		Data:  taskdto.FromEntities(tasks),
		Total: len(tasks),
	})
}
