package review

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scrumscribe-team/scrumscribe/errors"
	"github.com/scrumscribe-team/scrumscribe/internal/domain/entities"
	"github.com/scrumscribe-team/scrumscribe/internal/domain/repositories"
	"github.com/scrumscribe-team/scrumscribe/internal/usecase/push"
)

// Pusher sends approved tasks to the issue tracker
type Pusher interface {
	Push(ctx context.Context, tasks []entities.Task) (*push.Result, error)
}

// TaskPatch carries reviewer edits; nil fields are left unchanged
type TaskPatch struct {
	Summary     *string
	Description *string
	IssueType   *string
	Priority    *string
	AssigneeID  *uuid.UUID
	Labels      []string
	StoryPoints *int
}

// Service handles reviewer operations on task drafts
type Service struct {
	taskRepo repositories.TaskRepository
	pusher   Pusher
	logger   *zap.Logger
}

// NewService creates a review service
func NewService(taskRepo repositories.TaskRepository, pusher Pusher, logger *zap.Logger) *Service {
	return &Service{
		taskRepo: taskRepo,
		pusher:   pusher,
		logger:   logger,
	}
}

// EditTask applies reviewer edits to a draft. Tasks that already left
// review (approved or rejected) cannot be edited.
func (s *Service) EditTask(ctx context.Context, id uuid.UUID, patch TaskPatch) (*entities.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.ErrDBFailed(err)
	}
	if task == nil {
		return nil, errors.ErrNotFound("task")
	}
	if !task.IsDraft() {
		return nil, errors.ErrStateConflict("task", string(task.ReviewStatus), string(entities.TaskReviewStatusDraft))
	}

	if patch.Summary != nil {
		task.Summary = *patch.Summary
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.IssueType != nil {
		task.IssueType = *patch.IssueType
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.AssigneeID != nil {
		task.AssigneeID = patch.AssigneeID
	}
	if patch.Labels != nil {
		task.Labels = patch.Labels
	}
	if patch.StoryPoints != nil {
		task.StoryPoints = patch.StoryPoints
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, errors.ErrDBFailed(err)
	}

	s.logger.Info("✏️ Task edited", zap.String("task_id", task.ID.String()))
	return task, nil
}

// BulkApprove moves each currently-draft task to approved and pushes
// exactly that set to the tracker. Tasks that are missing or not in draft
// are reported as skipped, never silently dropped. A tracker transport
// failure aborts the push and surfaces as the returned error.
func (s *Service) BulkApprove(ctx context.Context, ids []uuid.UUID) (*push.Result, error) {
	skipped := []push.TaskResult{}
	var toPush []entities.Task

	for _, id := range ids {
		approved, err := s.taskRepo.Approve(ctx, id)
		if err != nil {
			return nil, errors.ErrDBFailed(err)
		}
		if !approved {
			skipped = append(skipped, push.TaskResult{
				TaskID:  id,
				Outcome: push.OutcomeSkipped,
				Message: s.skipReason(ctx, id),
			})
			continue
		}

		task, err := s.taskRepo.FindByID(ctx, id)
		if err != nil {
			return nil, errors.ErrDBFailed(err)
		}
		if task == nil {
			skipped = append(skipped, push.TaskResult{
				TaskID:  id,
				Outcome: push.OutcomeSkipped,
				Message: "task not found",
			})
			continue
		}
		toPush = append(toPush, *task)
	}

	s.logger.Info("👍 Tasks approved",
		zap.Int("approved", len(toPush)),
		zap.Int("skipped", len(skipped)))

	result, err := s.pusher.Push(ctx, toPush)
	if result == nil {
		result = &push.Result{Results: []push.TaskResult{}}
	}
	for _, sk := range skipped {
		result.Add(sk)
	}
	return result, err
}

func (s *Service) skipReason(ctx context.Context, id uuid.UUID) string {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil || task == nil {
		return "task not found"
	}
	return "task is not in draft review state"
}
