package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scrumscribe-team/scrumscribe/internal/domain/entities"
)

// MeetingRepository handles meeting data operations
type MeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// Create creates a new meeting
func (r *MeetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	if meeting == nil {
		return errors.New("meeting cannot be nil")
	}
	return r.db.WithContext(ctx).Create(meeting).Error
}

// FindByID retrieves a meeting by ID
func (r *MeetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&meeting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meeting, nil
}

// List retrieves all meetings, newest first
func (r *MeetingRepository) List(ctx context.Context) ([]entities.Meeting, error) {
	var meetings []entities.Meeting
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

// ClaimForProcessing atomically moves a queued meeting to processing.
// The WHERE clause on the current status makes the check and the transition a
// single read-modify-write: of two concurrently redelivered jobs, exactly one
// sees RowsAffected == 1.
func (r *MeetingRepository) ClaimForProcessing(ctx context.Context, id uuid.UUID) (bool, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ? AND status = ?", id, entities.MeetingStatusQueued).
		Updates(map[string]interface{}{
			"status":                entities.MeetingStatusProcessing,
			"processing_started_at": now,
			"updated_at":            now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CompleteRun persists the transcript, replaces the meeting's task rows and
// flips status to completed inside one transaction. Replace-on-reprocess:
// any tasks from a previous run of the same meeting are dropped first so the
// run never duplicates drafts.
func (r *MeetingRepository) CompleteRun(ctx context.Context, id uuid.UUID, transcript string, tasks []entities.Task) error {
	now := time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", id).Delete(&entities.Task{}).Error; err != nil {
			return err
		}

		if len(tasks) > 0 {
			if err := tx.Create(&tasks).Error; err != nil {
				return err
			}
		}

		result := tx.Model(&entities.Meeting{}).
			Where("id = ? AND status = ?", id, entities.MeetingStatusProcessing).
			Updates(map[string]interface{}{
				"status":       entities.MeetingStatusCompleted,
				"transcript":   transcript,
				"completed_at": now,
				"updated_at":   now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// The run no longer owns the meeting; roll everything back.
			return fmt.Errorf("meeting %s is not in processing state", id)
		}
		return nil
	})
}

// MarkRunFailed flips a processing meeting to failed with a reason
func (r *MeetingRepository) MarkRunFailed(ctx context.Context, id uuid.UUID, reason string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ? AND status = ?", id, entities.MeetingStatusProcessing).
		Updates(map[string]interface{}{
			"status":         entities.MeetingStatusFailed,
			"failure_reason": reason,
			"completed_at":   now,
			"updated_at":     now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("meeting %s is not in processing state", id)
	}
	return nil
}
