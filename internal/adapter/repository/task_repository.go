package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scrumscribe-team/scrumscribe/internal/domain/entities"
)

// TaskRepository handles task data operations
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// FindByID retrieves a task by ID
func (r *TaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	var task entities.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

// ListByMeetingID retrieves all tasks owned by a meeting
func (r *TaskRepository) ListByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]entities.Task, error) {
	var tasks []entities.Task
	if err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update persists reviewer edits to a task
func (r *TaskRepository) Update(ctx context.Context, task *entities.Task) error {
	if task == nil {
		return errors.New("task cannot be nil")
	}
	task.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.Task{}).
		Where("id = ?", task.ID).
		Save(task).Error
}

// Approve atomically moves a draft task to approved. Of two concurrent
// approval requests for the same task, exactly one sees RowsAffected == 1.
func (r *TaskRepository) Approve(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Task{}).
		Where("id = ? AND review_status = ?", id, entities.TaskReviewStatusDraft).
		Updates(map[string]interface{}{
			"review_status": entities.TaskReviewStatusApproved,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkPushed records the tracker issue reference, guarded on the key still
// being empty so a double-submission race cannot overwrite it.
func (r *TaskRepository) MarkPushed(ctx context.Context, id uuid.UUID, issueKey, issueURL string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Task{}).
		Where("id = ? AND (jira_issue_key IS NULL OR jira_issue_key = '')", id).
		Updates(map[string]interface{}{
			"jira_issue_key": issueKey,
			"jira_issue_url": issueURL,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
