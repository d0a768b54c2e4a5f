package review

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scrumscribe-team/scrumscribe/errors"
	"github.com/scrumscribe-team/scrumscribe/internal/domain/entities"
	"github.com/scrumscribe-team/scrumscribe/internal/usecase/push"
)

type fakeTaskRepo struct {
	tasks map[uuid.UUID]*entities.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[uuid.UUID]*entities.Task)}
}

func (r *fakeTaskRepo) add(t *entities.Task) { r.tasks[t.ID] = t }

func (r *fakeTaskRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTaskRepo) ListByMeetingID(_ context.Context, _ uuid.UUID) ([]entities.Task, error) {
	return nil, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *entities.Task) error {
	r.tasks[task.ID] = task
	return nil
}

func (r *fakeTaskRepo) Approve(_ context.Context, id uuid.UUID) (bool, error) {
	t, ok := r.tasks[id]
	if !ok || t.ReviewStatus != entities.TaskReviewStatusDraft {
		return false, nil
	}
	t.ReviewStatus = entities.TaskReviewStatusApproved
	return true, nil
}

func (r *fakeTaskRepo) MarkPushed(_ context.Context, id uuid.UUID, key, url string) (bool, error) {
	t, ok := r.tasks[id]
	if !ok || (t.JiraIssueKey != nil && *t.JiraIssueKey != "") {
		return false, nil
	}
	t.JiraIssueKey = &key
	t.JiraIssueURL = &url
	return true, nil
}

type fakePusher struct {
	pushed [][]entities.Task
	result *push.Result
	err    error
}

func (p *fakePusher) Push(_ context.Context, tasks []entities.Task) (*push.Result, error) {
	p.pushed = append(p.pushed, tasks)
	if p.result != nil {
		return p.result, p.err
	}
	result := &push.Result{Results: []push.TaskResult{}}
	for _, t := range tasks {
		result.Add(push.TaskResult{TaskID: t.ID, Outcome: push.OutcomeCreated, IssueKey: "SCRUM-1"})
	}
	return result, p.err
}

func draft(summary string) *entities.Task {
	return entities.NewTask(uuid.New(), summary)
}

func TestEditTask_UpdatesDraftFields(t *testing.T) {
	repo := newFakeTaskRepo()
	task := draft("old summary")
	repo.add(task)

	svc := NewService(repo, &fakePusher{}, zap.NewNop())

	newSummary := "new summary"
	points := 8
	updated, err := svc.EditTask(context.Background(), task.ID, TaskPatch{
		Summary:     &newSummary,
		StoryPoints: &points,
		Labels:      []string{"backend"},
	})
	require.NoError(t, err)

	assert.Equal(t, "new summary", updated.Summary)
	assert.Equal(t, 8, *updated.StoryPoints)
	assert.Equal(t, []string{"backend"}, updated.Labels)
	assert.Equal(t, "old summary", task.Summary, "caller's copy untouched until reload")

	stored, _ := repo.FindByID(context.Background(), task.ID)
	assert.Equal(t, "new summary", stored.Summary)
}

func TestEditTask_NotFound(t *testing.T) {
	svc := NewService(newFakeTaskRepo(), &fakePusher{}, zap.NewNop())

	_, err := svc.EditTask(context.Background(), uuid.New(), TaskPatch{})
	require.Error(t, err)

	var appErr errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.ErrorCode_NOT_FOUND, appErr.Code)
}

func TestEditTask_NonDraftIsStateConflict(t *testing.T) {
	repo := newFakeTaskRepo()
	task := draft("approved already")
	task.ReviewStatus = entities.TaskReviewStatusApproved
	repo.add(task)

	svc := NewService(repo, &fakePusher{}, zap.NewNop())

	summary := "nope"
	_, err := svc.EditTask(context.Background(), task.ID, TaskPatch{Summary: &summary})
	require.Error(t, err)

	var appErr errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.ErrorCode_STATE_CONFLICT, appErr.Code)

	stored, _ := repo.FindByID(context.Background(), task.ID)
	assert.Equal(t, "approved already", stored.Summary)
}

func TestBulkApprove_PushesExactlyTheApprovedSet(t *testing.T) {
	repo := newFakeTaskRepo()
	first := draft("first")
	second := draft("second")
	repo.add(first)
	repo.add(second)

	pusher := &fakePusher{}
	svc := NewService(repo, pusher, zap.NewNop())

	result, err := svc.BulkApprove(context.Background(), []uuid.UUID{first.ID, second.ID})
	require.NoError(t, err)

	require.Len(t, pusher.pushed, 1)
	assert.Len(t, pusher.pushed[0], 2)
	for _, pushed := range pusher.pushed[0] {
		assert.Equal(t, entities.TaskReviewStatusApproved, pushed.ReviewStatus)
	}
	assert.Equal(t, 2, result.Pushed)
	assert.Equal(t, 0, result.Skipped)
}

func TestBulkApprove_ReportsSkippedTasks(t *testing.T) {
	repo := newFakeTaskRepo()
	valid := draft("valid")
	alreadyApproved := draft("already approved")
	alreadyApproved.ReviewStatus = entities.TaskReviewStatusApproved
	repo.add(valid)
	repo.add(alreadyApproved)
	missing := uuid.New()

	pusher := &fakePusher{}
	svc := NewService(repo, pusher, zap.NewNop())

	result, err := svc.BulkApprove(context.Background(), []uuid.UUID{valid.ID, alreadyApproved.ID, missing})
	require.NoError(t, err)

	require.Len(t, pusher.pushed[0], 1, "only the freshly approved task is pushed")
	assert.Equal(t, valid.ID, pusher.pushed[0][0].ID)

	require.Len(t, result.Results, 3)
	outcomes := map[uuid.UUID]push.TaskResult{}
	for _, tr := range result.Results {
		outcomes[tr.TaskID] = tr
	}
	assert.Equal(t, push.OutcomeCreated, outcomes[valid.ID].Outcome)
	assert.Equal(t, push.OutcomeSkipped, outcomes[alreadyApproved.ID].Outcome)
	assert.Contains(t, outcomes[alreadyApproved.ID].Message, "not in draft")
	assert.Equal(t, push.OutcomeSkipped, outcomes[missing].Outcome)
	assert.Contains(t, outcomes[missing].Message, "not found")
}

func TestBulkApprove_TransportFailurePropagates(t *testing.T) {
	repo := newFakeTaskRepo()
	task := draft("doomed")
	repo.add(task)

	pusher := &fakePusher{
		result: &push.Result{Results: []push.TaskResult{}},
		err:    errors.ErrTrackerUnavailable(stderrors.New("connection refused")),
	}
	svc := NewService(repo, pusher, zap.NewNop())

	_, err := svc.BulkApprove(context.Background(), []uuid.UUID{task.ID})
	require.Error(t, err)

	var appErr errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.ErrorCode_TRACKER_UNAVAILABLE, appErr.Code)
}
