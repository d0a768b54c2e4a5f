package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scrumscribe-team/scrumscribe/internal/domain/entities"
)

// UserRepository handles speaker-identity data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID retrieves a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByDisplayName retrieves a user by exact display name
func (r *UserRepository) FindByDisplayName(ctx context.Context, displayName string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("display_name = ?", displayName).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ListWithVoiceSamples retrieves users that carry a voice profile
func (r *UserRepository) ListWithVoiceSamples(ctx context.Context) ([]entities.User, error) {
	var users []entities.User
	if err := r.db.WithContext(ctx).
		Where("voice_sample_url IS NOT NULL AND voice_sample_url <> ''").
		Order("display_name ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateJiraAccountID caches a Jira account id resolved during push
func (r *UserRepository) UpdateJiraAccountID(ctx context.Context, id uuid.UUID, accountID string) error {
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"jira_account_id": accountID,
			"updated_at":      time.Now(),
		}).Error
}
