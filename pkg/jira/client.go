package jira

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/scrumscribe-team/scrumscribe/pkg/config"
)

const maxSummaryLength = 254

// RequestError is returned when Jira rejects a request with a 4xx status.
// The tracker's own message is preserved verbatim for the reviewer.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("jira rejected request (status %d): %s", e.StatusCode, e.Message)
}

// Issue is a created tracker issue reference
type Issue struct {
	Key string
	URL string
}

// IssueFields describes one issue to create
type IssueFields struct {
	Summary           string
	Description       string
	IssueType         string
	Priority          string
	Labels            []string
	AssigneeAccountID string
	StoryPoints       *int
	SourceQuote       string
}

// Client is a minimal Jira REST v3 adapter that creates backlog items
// from approved tasks
type Client struct {
	baseURL          string
	projectKey       string
	storyPointsField string
	authHeader       string
	client           *http.Client
}

// NewClient creates a Jira client using the provided config
func NewClient(cfg *config.JiraConfig) *Client {
	token := base64.StdEncoding.EncodeToString([]byte(cfg.Email + ":" + cfg.APIToken))
	return &Client{
		baseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		projectKey:       cfg.ProjectKey,
		storyPointsField: cfg.StoryPointsField,
		authHeader:       "Basic " + token,
		client:           &http.Client{Timeout: 20 * time.Second},
	}
}

// CreateIssue creates a Jira issue and returns its key and browse URL.
// A 4xx response surfaces as *RequestError; transport and 5xx failures
// come back as plain errors.
func (c *Client) CreateIssue(ctx context.Context, fields IssueFields) (*Issue, error) {
	payload := map[string]interface{}{
		"fields": c.buildFields(fields),
	}

	data, err := c.request(ctx, http.MethodPost, "/issue", payload)
	if err != nil {
		return nil, err
	}

	var created struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, fmt.Errorf("failed to decode jira response: %w", err)
	}
	if created.Key == "" {
		return nil, fmt.Errorf("jira response did not include an issue key")
	}

	return &Issue{
		Key: created.Key,
		URL: fmt.Sprintf("%s/browse/%s", c.baseURL, created.Key),
	}, nil
}

// FindUserAccountID looks up a Jira account id by display name.
// Returns empty string when no user matches.
func (c *Client) FindUserAccountID(ctx context.Context, displayName string) (string, error) {
	query := url.Values{}
	query.Set("query", displayName)
	query.Set("maxResults", "1")

	data, err := c.request(ctx, http.MethodGet, "/user/search?"+query.Encode(), nil)
	if err != nil {
		return "", err
	}

	var users []struct {
		AccountID string `json:"accountId"`
	}
	if err := json.Unmarshal(data, &users); err != nil {
		return "", fmt.Errorf("failed to decode jira user search: %w", err)
	}
	if len(users) == 0 {
		return "", nil
	}
	return users[0].AccountID, nil
}

func (c *Client) buildFields(f IssueFields) map[string]interface{} {
	summary := strings.TrimSpace(f.Summary)
	if summary == "" {
		summary = "Untitled task"
	}
	if len(summary) > maxSummaryLength {
		summary = summary[:maxSummaryLength]
	}

	issueType := f.IssueType
	if issueType == "" {
		issueType = "Task"
	}
	priority := f.Priority
	if priority == "" {
		priority = "Medium"
	}

	fields := map[string]interface{}{
		"summary":   summary,
		"project":   map[string]string{"key": c.projectKey},
		"issuetype": map[string]string{"name": issueType},
		"priority":  map[string]string{"name": priority},
	}

	if description := buildDescription(f.Description, f.SourceQuote); description != nil {
		fields["description"] = description
	}
	if len(f.Labels) > 0 {
		fields["labels"] = f.Labels
	}
	if f.AssigneeAccountID != "" {
		fields["assignee"] = map[string]string{"accountId": f.AssigneeAccountID}
	}
	if f.StoryPoints != nil && c.storyPointsField != "" {
		fields[c.storyPointsField] = *f.StoryPoints
	}

	return fields
}

// buildDescription renders the description and supporting quote as an
// Atlassian Document Format body; the quote goes into a blockquote.
func buildDescription(description, sourceQuote string) map[string]interface{} {
	var content []map[string]interface{}

	if text := strings.TrimSpace(description); text != "" {
		for _, line := range strings.Split(text, "\n") {
			content = append(content, paragraph(line))
		}
	}

	if sourceQuote != "" {
		quote := strings.TrimSpace(sourceQuote)
		if quote == "" {
			quote = "Original quote unavailable."
		}
		content = append(content, map[string]interface{}{
			"type":    "blockquote",
			"content": []map[string]interface{}{paragraph(quote)},
		})
	}

	if len(content) == 0 {
		return nil
	}
	return map[string]interface{}{
		"type":    "doc",
		"version": 1,
		"content": content,
	}
}

func paragraph(text string) map[string]interface{} {
	cleaned := strings.TrimSpace(text)
	inner := []map[string]string{}
	if cleaned != "" {
		inner = append(inner, map[string]string{"type": "text", "text": cleaned})
	}
	return map[string]interface{}{
		"type":    "paragraph",
		"content": inner,
	}
}

func (c *Client) request(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal jira payload: %w", err)
		}
		body = bytes.NewReader(b)
	}

	endpoint := c.baseURL + "/rest/api/3" + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach jira: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read jira response: %w", err)
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		message := strings.TrimSpace(string(data))
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return nil, &RequestError{StatusCode: resp.StatusCode, Message: message}
	}
	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("jira returned status %d", resp.StatusCode)
	}

	return data, nil
}
