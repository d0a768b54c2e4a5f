package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/scrumscribe-team/scrumscribe/internal/domain/entities"
)

// UserRepository defines the interface for speaker-identity data access.
// The core only reads this mapping; writes come from the voice-sync job,
// except for caching a resolved Jira account id.
type UserRepository interface {
	// FindByID retrieves a user by its ID (nil when not found)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)

	// FindByDisplayName retrieves a user by exact display name (nil when not found)
	FindByDisplayName(ctx context.Context, displayName string) (*entities.User, error)

	// ListWithVoiceSamples retrieves users whose voice profile can be matched
	// against diarized speaker slots
	ListWithVoiceSamples(ctx context.Context) ([]entities.User, error)

	// UpdateJiraAccountID caches a Jira account id resolved during push
	UpdateJiraAccountID(ctx context.Context, id uuid.UUID, accountID string) error
}
