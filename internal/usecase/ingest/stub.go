package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// StubExtractor is a deterministic Extractor for environments without an
// LLM endpoint. It emits one draft per transcript line containing an
// action marker, with stable fields derived only from the input.
type StubExtractor struct{}

// NewStubExtractor creates a stub extractor
func NewStubExtractor() *StubExtractor {
	return &StubExtractor{}
}

// Model identifies the stub in telemetry records
func (e *StubExtractor) Model() string {
	return "stub"
}

var actionMarkers = []string{"todo", "action item", "we should", "we need to", "follow up"}

// ExtractTasks returns the same drafts for the same transcript, always
func (e *StubExtractor) ExtractTasks(_ context.Context, transcript string) (string, error) {
	type draft struct {
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

	drafts := []draft{}
	for _, line := range strings.Split(transcript, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)
		for _, marker := range actionMarkers {
			if strings.Contains(lower, marker) {
				summary := trimmed
				if idx := strings.Index(trimmed, "]:"); idx != -1 {
					summary = strings.TrimSpace(trimmed[idx+2:])
				}
				drafts = append(drafts, draft{
					Summary:     summary,
					Description: trimmed,
					IssueType:   "Task",
					Priority:    "Medium",
					Labels:      []string{},
					Links:       []string{},
					Quotes:      []string{trimmed},
				})
				break
			}
		}
	}

	b, err := json.Marshal(map[string]interface{}{"tasks": drafts})
	if err != nil {
		return "", fmt.Errorf("stub extractor failed to encode drafts: %w", err)
	}
	return string(b), nil
}
