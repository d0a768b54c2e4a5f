package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/scrumscribe-team/scrumscribe/pkg/config"
)

// GroqClient is a minimal client for Groq chat completions used for
// task extraction
type GroqClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewGroqClient creates a Groq client using values from the provided config
func NewGroqClient(cfg *config.ExtractionConfig) *GroqClient {
	return &GroqClient{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// Model returns the configured extraction model name
func (g *GroqClient) Model() string {
	return g.model
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model          string              `json:"model,omitempty"`
	Messages       []map[string]string `json:"messages,omitempty"`
	Temperature    float64             `json:"temperature"`
	MaxTokens      int                 `json:"max_tokens,omitempty"`
	ResponseFormat map[string]string   `json:"response_format,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const extractionSystemPrompt = "You are an Agile Product Owner assisting with Jira backlog preparation. " +
	"Extract actionable work items from the meeting transcript. " +
	"For each task, craft a concise summary, detailed description, and include " +
	"supporting direct quotes from the transcript. Only emit JSON of the form " +
	`{"tasks": [{"summary", "description", "issue_type" (Story|Task|Bug|Spike), ` +
	`"assignee_name" (string or null), "priority" (Low|Medium|High), ` +
	`"story_points" (integer 0-100 or null), "labels" (string array), ` +
	`"links" (string array), "quotes" (string array)}]}.`

// ExtractTasks sends the transcript to Groq and returns the assistant
// content, expected to be a JSON document of task drafts
func (g *GroqClient) ExtractTasks(ctx context.Context, transcript string) (string, error) {
	userMessage := fmt.Sprintf("Return Jira tasks for the following meeting transcript.\n\nTranscript:\n%s", transcript)

	reqBody := ChatRequest{
		Model: g.model,
		Messages: []map[string]string{
			{"role": "system", "content": extractionSystemPrompt},
			{"role": "user", "content": userMessage},
		},
		Temperature:    0.1,
		MaxTokens:      8000,
		ResponseFormat: map[string]string{"type": "json_object"},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := g.baseURL + "/openai/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("groq returned status %d", resp.StatusCode)
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from groq")
	}
	return cr.Choices[0].Message.Content, nil
}
