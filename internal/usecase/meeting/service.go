package meeting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scrumscribe-team/scrumscribe/errors"
	"github.com/scrumscribe-team/scrumscribe/internal/domain/entities"
	"github.com/scrumscribe-team/scrumscribe/internal/domain/repositories"
	"github.com/scrumscribe-team/scrumscribe/internal/infrastructure/queue"
)

// Service handles meeting import and read operations
type Service struct {
	meetingRepo repositories.MeetingRepository
	taskRepo    repositories.TaskRepository
	jobQueue    queue.Queue
	logger      *zap.Logger
}

// NewService creates a meeting service
func NewService(meetingRepo repositories.MeetingRepository, taskRepo repositories.TaskRepository, jobQueue queue.Queue, logger *zap.Logger) *Service {
	return &Service{
		meetingRepo: meetingRepo,
		taskRepo:    taskRepo,
		jobQueue:    jobQueue,
		logger:      logger,
	}
}

// Import registers a recording for processing and enqueues the ingestion
// job. Re-importing the same recording creates a new meeting; there is no
// reset of an existing one.
func (s *Service) Import(ctx context.Context, title string, startedAt *time.Time, audioURL string, originalFilename *string) (*entities.Meeting, error) {
	m := entities.NewMeeting(title, startedAt, audioURL)
	m.OriginalFilename = originalFilename

	if err := s.meetingRepo.Create(ctx, m); err != nil {
		return nil, errors.ErrDBFailed(err)
	}

	if err := s.jobQueue.Enqueue(ctx, queue.Job{MeetingID: m.ID, EnqueuedAt: time.Now()}); err != nil {
		// The row stays queued; a stalled-queued watchdog is an operational
		// concern outside this service.
		return nil, errors.ErrQueueFailed("enqueue", err)
	}

	s.logger.Info("📥 Meeting imported",
		zap.String("meeting_id", m.ID.String()),
		zap.String("title", m.Title))

	return m, nil
}

// Get retrieves a meeting by id
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	m, err := s.meetingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.ErrDBFailed(err)
	}
	if m == nil {
		return nil, errors.ErrNotFound("meeting")
	}
	return m, nil
}

// List retrieves all meetings, newest first
func (s *Service) List(ctx context.Context) ([]entities.Meeting, error) {
	meetings, err := s.meetingRepo.List(ctx)
	if err != nil {
		return nil, errors.ErrDBFailed(err)
	}
	return meetings, nil
}

// ListTasks retrieves the task drafts extracted from a meeting
func (s *Service) ListTasks(ctx context.Context, meetingID uuid.UUID) ([]entities.Task, error) {
	m, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return nil, errors.ErrDBFailed(err)
	}
	if m == nil {
		return nil, errors.ErrNotFound("meeting")
	}

	tasks, err := s.taskRepo.ListByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, errors.ErrDBFailed(err)
	}
	return tasks, nil
}
