package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TaskReviewStatus is the reviewer-controlled lifecycle of a task draft,
// independent of the owning meeting's processing status.
type TaskReviewStatus string

const (
	TaskReviewStatusDraft    TaskReviewStatus = "draft"
	TaskReviewStatusApproved TaskReviewStatus = "approved"
	TaskReviewStatusRejected TaskReviewStatus = "rejected"
)

// Task issue classification, matching the extractor's vocabulary
const (
	IssueTypeStory = "Story"
	IssueTypeTask  = "Task"
	IssueTypeBug   = "Bug"
	IssueTypeSpike = "Spike"
)

// Task priorities, matching the extractor's vocabulary
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Task is a backlog-item draft extracted from a meeting
type Task struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;index"`

	Summary      string         `json:"summary" gorm:"type:varchar(300);not null"`
	Description  string         `json:"description" gorm:"type:text"`
	IssueType    string         `json:"issue_type" gorm:"type:varchar(20);not null;default:'Task'"`
	Priority     string         `json:"priority" gorm:"type:varchar(20);not null;default:'Medium'"`
	AssigneeID   *uuid.UUID     `json:"assignee_id,omitempty" gorm:"type:uuid;index"` // nil until a speaker was matched
	Labels       []string       `json:"labels" gorm:"type:jsonb;serializer:json"`     // raw labels, sanitized only at push time
	StoryPoints  *int           `json:"story_points,omitempty" gorm:"type:integer"`
	Links        []string       `json:"links,omitempty" gorm:"type:jsonb;serializer:json"`
	SourceQuotes datatypes.JSON `json:"source_quotes,omitempty" gorm:"type:jsonb"`

	ReviewStatus TaskReviewStatus `json:"review_status" gorm:"type:varchar(20);not null;index;default:'draft'"`

	// Set once by a successful push, then immutable; re-push is a no-op.
	JiraIssueKey *string `json:"jira_issue_key,omitempty" gorm:"type:varchar(50);index"`
	JiraIssueURL *string `json:"jira_issue_url,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// NewTask creates a task draft owned by a meeting
func NewTask(meetingID uuid.UUID, summary string) *Task {
	return &Task{
		ID:           uuid.New(),
		MeetingID:    meetingID,
		Summary:      summary,
		IssueType:    IssueTypeTask,
		Priority:     PriorityMedium,
		ReviewStatus: TaskReviewStatusDraft,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

// IsDraft reports whether the task is still editable
func (t *Task) IsDraft() bool {
	return t.ReviewStatus == TaskReviewStatusDraft
}

// IsPushed reports whether the task already has a tracker issue
func (t *Task) IsPushed() bool {
	return t.JiraIssueKey != nil && *t.JiraIssueKey != ""
}

// TableName specifies the table name for GORM
func (Task) TableName() string {
	return "tasks"
}

// TaskDraft is the extractor's raw output before it becomes a persisted Task
type TaskDraft struct {
	Summary      string   `json:"summary"`
	Description  string   `json:"description"`
	IssueType    string   `json:"issue_type"`
	AssigneeName *string  `json:"assignee_name"`
	Priority     string   `json:"priority"`
	StoryPoints  *int     `json:"story_points"`
	Labels       []string `json:"labels"`
	Links        []string `json:"links"`
	Quotes       []string `json:"quotes"`
}
