package task

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/scrumscribe-team/scrumscribe/internal/domain/entities"
)

// Response is the client-facing task shape
type Response struct {
	ID           uuid.UUID  `json:"id"`
	MeetingID    uuid.UUID  `json:"meeting_id"`
	Summary      string     `json:"summary"`
	Description  string     `json:"description,omitempty"`
	IssueType    string     `json:"issue_type"`
	Priority     string     `json:"priority"`
	AssigneeID   *uuid.UUID `json:"assignee_id,omitempty"`
	Labels       []string   `json:"labels"`
	StoryPoints  *int       `json:"story_points,omitempty"`
	Links        []string   `json:"links,omitempty"`
	SourceQuotes []string   `json:"source_quotes,omitempty"`
	ReviewStatus string     `json:"review_status"`
	JiraIssueKey *string    `json:"jira_issue_key,omitempty"`
	JiraIssueURL *string    `json:"jira_issue_url,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// FromEntity maps a task entity to its response shape
func FromEntity(t *entities.Task) Response {
	var quotes []string
	if len(t.SourceQuotes) > 0 {
		_ = json.Unmarshal(t.SourceQuotes, &quotes)
	}

	return Response{
		ID:           t.ID,
		MeetingID:    t.MeetingID,
		Summary:      t.Summary,
		Description:  t.Description,
		IssueType:    t.IssueType,
		Priority:     t.Priority,
		AssigneeID:   t.AssigneeID,
		Labels:       t.Labels,
		StoryPoints:  t.StoryPoints,
		Links:        t.Links,
		SourceQuotes: quotes,
		ReviewStatus: string(t.ReviewStatus),
		JiraIssueKey: t.JiraIssueKey,
		JiraIssueURL: t.JiraIssueURL,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// FromEntities maps a task list
func FromEntities(tasks []entities.Task) []Response {
	out := make([]Response, 0, len(tasks))
	for i := range tasks {
		out = append(out, FromEntity(&tasks[i]))
	}
	return out
}
