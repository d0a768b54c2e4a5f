package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/scrumscribe-team/scrumscribe/internal/domain/entities"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// FindByID retrieves a task by its ID (nil when not found)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)

	// ListByMeetingID retrieves all tasks owned by a meeting
	ListByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]entities.Task, error)

	// Update persists reviewer edits to a task
	Update(ctx context.Context, task *entities.Task) error

	// Approve atomically moves a draft task to approved. Returns false when
	// the task was not in draft (already approved, rejected, or gone).
	Approve(ctx context.Context, id uuid.UUID) (bool, error)

	// MarkPushed records the tracker issue reference on a task. The write is
	// guarded on jira_issue_key still being empty; false means another push
	// won the race and the reference must not be overwritten.
	MarkPushed(ctx context.Context, id uuid.UUID, issueKey, issueURL string) (bool, error)
}
