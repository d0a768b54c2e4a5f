package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDrafts_PlainJSON(t *testing.T) {
	parser := NewParser()

	drafts, err := parser.ParseDrafts(`{
		"tasks": [
			{
				"summary": "Fix login redirect",
				"description": "Redirect loops on staging.",
				"issue_type": "Bug",
				"assignee_name": "Dana",
				"priority": "High",
				"story_points": 3,
				"labels": ["auth"],
				"links": [],
				"quotes": ["the redirect loops forever"]
			}
		]
	}`)
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	assert.Equal(t, "Fix login redirect", drafts[0].Summary)
	assert.Equal(t, "Bug", drafts[0].IssueType)
	assert.Equal(t, "High", drafts[0].Priority)
	require.NotNil(t, drafts[0].AssigneeName)
	assert.Equal(t, "Dana", *drafts[0].AssigneeName)
	require.NotNil(t, drafts[0].StoryPoints)
	assert.Equal(t, 3, *drafts[0].StoryPoints)
}

func TestParseDrafts_MarkdownFence(t *testing.T) {
	parser := NewParser()

	drafts, err := parser.ParseDrafts("```json\n{\"tasks\": [{\"summary\": \"Ship it\"}]}\n```")
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Ship it", drafts[0].Summary)
}

func TestParseDrafts_NormalizesUnknownEnums(t *testing.T) {
	parser := NewParser()

	drafts, err := parser.ParseDrafts(`{"tasks": [{"summary": "x", "issue_type": "Epic", "priority": "Blocker"}]}`)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Task", drafts[0].IssueType)
	assert.Equal(t, "Medium", drafts[0].Priority)
}

func TestParseDrafts_ClampsStoryPoints(t *testing.T) {
	parser := NewParser()

	drafts, err := parser.ParseDrafts(`{"tasks": [
		{"summary": "a", "story_points": -5},
		{"summary": "b", "story_points": 500},
		{"summary": "c", "story_points": null}
	]}`)
	require.NoError(t, err)
	require.Len(t, drafts, 3)
	assert.Equal(t, 0, *drafts[0].StoryPoints)
	assert.Equal(t, 100, *drafts[1].StoryPoints)
	assert.Nil(t, drafts[2].StoryPoints)
}

func TestParseDrafts_SkipsEmptySummaries(t *testing.T) {
	parser := NewParser()

	drafts, err := parser.ParseDrafts(`{"tasks": [{"summary": "   "}, {"summary": "keep"}]}`)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "keep", drafts[0].Summary)
}

func TestParseDrafts_EmptyTasksIsValid(t *testing.T) {
	parser := NewParser()

	drafts, err := parser.ParseDrafts(`{"tasks": []}`)
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestParseDrafts_InvalidJSON(t *testing.T) {
	parser := NewParser()

	_, err := parser.ParseDrafts("here are your tasks!")
	assert.Error(t, err)
}
