package push

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scrumscribe-team/scrumscribe/errors"
	"github.com/scrumscribe-team/scrumscribe/internal/domain/entities"
	"github.com/scrumscribe-team/scrumscribe/internal/domain/repositories"
	"github.com/scrumscribe-team/scrumscribe/pkg/jira"
	"github.com/scrumscribe-team/scrumscribe/pkg/labels"
)

// Outcome is the per-task result of a push attempt
type Outcome string

const (
	OutcomeCreated       Outcome = "created"        // Issue created this call
	OutcomeAlreadyPushed Outcome = "already_pushed" // Task already had an issue key
	OutcomeRejected      Outcome = "rejected"       // Tracker refused the payload
	OutcomeSkipped       Outcome = "skipped"        // Not eligible (not found / not draft)
)

// TaskResult is one task's outcome within a push batch
type TaskResult struct {
	TaskID   uuid.UUID `json:"task_id"`
	Outcome  Outcome   `json:"outcome"`
	IssueKey string    `json:"issue_key,omitempty"`
	IssueURL string    `json:"issue_url,omitempty"`
	Message  string    `json:"message,omitempty"` // tracker rejection text, verbatim
}

// Result aggregates per-task outcomes. A batch with rejections is still a
// successful call; only a transport failure aborts it.
type Result struct {
	Results []TaskResult `json:"results"`
	Total   int          `json:"total"`
	Pushed  int          `json:"pushed"`
	Skipped int          `json:"skipped"`
}

func (r *Result) Add(tr TaskResult) {
	r.Results = append(r.Results, tr)
	r.Total++
	if tr.Outcome == OutcomeCreated {
		r.Pushed++
	} else {
		r.Skipped++
	}
}

// Tracker is the external issue tracker capability
type Tracker interface {
	CreateIssue(ctx context.Context, fields jira.IssueFields) (*jira.Issue, error)
	FindUserAccountID(ctx context.Context, displayName string) (string, error)
}

// Service pushes approved tasks to the issue tracker
type Service struct {
	taskRepo repositories.TaskRepository
	userRepo repositories.UserRepository
	tracker  Tracker
	logger   *zap.Logger
}

// NewService creates a push service
func NewService(taskRepo repositories.TaskRepository, userRepo repositories.UserRepository, tracker Tracker, logger *zap.Logger) *Service {
	return &Service{
		taskRepo: taskRepo,
		userRepo: userRepo,
		tracker:  tracker,
		logger:   logger,
	}
}

// Push creates one tracker issue per task. Idempotent at the task level:
// a task that already carries an issue key reports AlreadyPushed and no
// second tracker call is made. A rejection affects only its task; a
// transport failure returns the partial result alongside the error.
func (s *Service) Push(ctx context.Context, tasks []entities.Task) (*Result, error) {
	result := &Result{Results: []TaskResult{}}

	if s.tracker == nil {
		return result, errors.ErrTrackerUnavailable(stderrors.New("tracker is not configured"))
	}

	for i := range tasks {
		task := &tasks[i]

		if task.IsPushed() {
			result.Add(TaskResult{
				TaskID:   task.ID,
				Outcome:  OutcomeAlreadyPushed,
				IssueKey: *task.JiraIssueKey,
			})
			continue
		}

		fields, err := s.buildFields(ctx, task)
		if err != nil {
			return result, err
		}

		issue, err := s.tracker.CreateIssue(ctx, fields)
		if err != nil {
			var reqErr *jira.RequestError
			if stderrors.As(err, &reqErr) {
				s.logger.Warn("⚠️ Tracker rejected task",
					zap.String("task_id", task.ID.String()),
					zap.Int("status", reqErr.StatusCode))
				result.Add(TaskResult{
					TaskID:  task.ID,
					Outcome: OutcomeRejected,
					Message: reqErr.Message,
				})
				continue
			}
			// Transport failure aborts the batch; outcomes so far stand.
			return result, errors.ErrTrackerUnavailable(err)
		}

		marked, err := s.taskRepo.MarkPushed(ctx, task.ID, issue.Key, issue.URL)
		if err != nil {
			return result, errors.ErrDBFailed(err)
		}
		if !marked {
			// Another push won the race after our IsPushed check.
			result.Add(TaskResult{
				TaskID:  task.ID,
				Outcome: OutcomeAlreadyPushed,
			})
			continue
		}

		s.logger.Info("✅ Task pushed to tracker",
			zap.String("task_id", task.ID.String()),
			zap.String("issue_key", issue.Key))
		result.Add(TaskResult{
			TaskID:   task.ID,
			Outcome:  OutcomeCreated,
			IssueKey: issue.Key,
			IssueURL: issue.URL,
		})
	}

	return result, nil
}

func (s *Service) buildFields(ctx context.Context, task *entities.Task) (jira.IssueFields, error) {
	fields := jira.IssueFields{
		Summary:     task.Summary,
		Description: task.Description,
		IssueType:   task.IssueType,
		Priority:    task.Priority,
		Labels:      labels.Sanitize(task.Labels),
		StoryPoints: task.StoryPoints,
		SourceQuote: firstQuote(task.SourceQuotes),
	}

	if task.AssigneeID != nil {
		accountID, err := s.resolveAccountID(ctx, *task.AssigneeID)
		if err != nil {
			return fields, err
		}
		fields.AssigneeAccountID = accountID
	}

	return fields, nil
}

// resolveAccountID maps an internal user to a tracker account id. The
// cached id wins; otherwise the tracker's user search is consulted and a
// hit is persisted for next time. An unresolvable user simply means the
// issue goes out unassigned.
func (s *Service) resolveAccountID(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", errors.ErrDBFailed(err)
	}
	if user == nil {
		return "", nil
	}

	if user.JiraAccountID != nil && *user.JiraAccountID != "" {
		return *user.JiraAccountID, nil
	}

	accountID, err := s.tracker.FindUserAccountID(ctx, user.DisplayName)
	if err != nil {
		s.logger.Warn("⚠️ Tracker user lookup failed, pushing unassigned",
			zap.String("display_name", user.DisplayName),
			zap.Error(err))
		return "", nil
	}
	if accountID == "" {
		return "", nil
	}

	if err := s.userRepo.UpdateJiraAccountID(ctx, user.ID, accountID); err != nil {
		s.logger.Warn("⚠️ Failed to cache tracker account id",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
	}
	return accountID, nil
}

// firstQuote pulls the first supporting quote out of the stored JSON array
func firstQuote(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var quotes []string
	if err := json.Unmarshal(raw, &quotes); err != nil || len(quotes) == 0 {
		return ""
	}
	return quotes[0]
}
