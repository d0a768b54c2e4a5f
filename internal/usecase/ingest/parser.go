package ingest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/scrumscribe-team/scrumscribe/internal/domain/entities"
)

// Parser handles parsing and validation of extractor responses
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// extractionResult is the extractor's top-level JSON shape
type extractionResult struct {
	Tasks []entities.TaskDraft `json:"tasks"`
}

// ParseDrafts parses the extractor's JSON response into task drafts.
// Unknown enum values are normalized to defaults rather than rejected;
// an empty tasks array is a valid result.
func (p *Parser) ParseDrafts(jsonString string) ([]entities.TaskDraft, error) {
	// Extract JSON from response (the model might wrap it in markdown code blocks)
	jsonString = extractJSON(jsonString)

	var result extractionResult
	if err := json.Unmarshal([]byte(jsonString), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	drafts := make([]entities.TaskDraft, 0, len(result.Tasks))
	for _, draft := range result.Tasks {
		draft.Summary = strings.TrimSpace(draft.Summary)
		if draft.Summary == "" {
			continue
		}
		draft.IssueType = normalizeIssueType(draft.IssueType)
		draft.Priority = normalizePriority(draft.Priority)
		draft.StoryPoints = clampStoryPoints(draft.StoryPoints)
		drafts = append(drafts, draft)
	}

	return drafts, nil
}

func normalizeIssueType(issueType string) string {
	switch strings.TrimSpace(issueType) {
	case entities.IssueTypeStory, entities.IssueTypeTask, entities.IssueTypeBug, entities.IssueTypeSpike:
		return strings.TrimSpace(issueType)
	}
	return entities.IssueTypeTask
}

func normalizePriority(priority string) string {
	switch strings.TrimSpace(priority) {
	case entities.PriorityLow, entities.PriorityMedium, entities.PriorityHigh:
		return strings.TrimSpace(priority)
	}
	return entities.PriorityMedium
}

func clampStoryPoints(points *int) *int {
	if points == nil {
		return nil
	}
	v := *points
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return &v
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
