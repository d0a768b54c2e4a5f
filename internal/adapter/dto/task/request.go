package task

import "github.com/google/uuid"

// UpdateRequest carries reviewer edits to a draft; omitted fields are
// left unchanged
type UpdateRequest struct {
	Summary     *string    `json:"summary,omitempty" validate:"omitempty,min=1,max=300"`
	Description *string    `json:"description,omitempty"`
	IssueType   *string    `json:"issue_type,omitempty" validate:"omitempty,issuetype"`
	Priority    *string    `json:"priority,omitempty" validate:"omitempty,priority"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty"`
	Labels      []string   `json:"labels,omitempty"`
	StoryPoints *int       `json:"story_points,omitempty" validate:"omitempty,min=0,max=100"`
}

// ApproveRequest selects the drafts to approve and push
type ApproveRequest struct {
	TaskIDs []uuid.UUID `json:"task_ids" validate:"required,min=1"`
}
