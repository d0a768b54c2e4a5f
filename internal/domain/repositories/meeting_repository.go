package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/scrumscribe-team/scrumscribe/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create creates a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting by its ID (nil when not found)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// List retrieves meetings, newest first
	List(ctx context.Context) ([]entities.Meeting, error)

	// ClaimForProcessing atomically moves a queued meeting to processing.
	// Returns false when the meeting is not in the queued state, which is the
	// sole guard against duplicate job delivery: the status check and the
	// transition must be one read-modify-write against the stored row.
	ClaimForProcessing(ctx context.Context, id uuid.UUID) (bool, error)

	// CompleteRun persists the transcript, replaces the meeting's task rows
	// with the given set and flips status to completed, all in a single
	// transaction, so a concurrent reader sees either the pre-run state or
	// the fully populated completed state.
	CompleteRun(ctx context.Context, id uuid.UUID, transcript string, tasks []entities.Task) error

	// MarkRunFailed flips a processing meeting to failed with a reason
	MarkRunFailed(ctx context.Context, id uuid.UUID, reason string) error
}
