package jira

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scrumscribe-team/scrumscribe/pkg/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.JiraConfig{
		BaseURL:          baseURL,
		Email:            "bot@example.com",
		APIToken:         "token",
		ProjectKey:       "SCRUM",
		StoryPointsField: "customfield_10016",
	})
}

func TestCreateIssue_Success(t *testing.T) {
	var captured map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if r.URL.Path != "/rest/api/3/issue" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") == "" {
			t.Fatal("missing Authorization header")
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": "10001", "key": "SCRUM-42"})
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	points := 5
	issue, err := client.CreateIssue(context.Background(), IssueFields{
		Summary:     "Fix login redirect",
		Description: "Users bounce back to /login after auth.",
		IssueType:   "Bug",
		Priority:    "High",
		Labels:      []string{"auth"},
		StoryPoints: &points,
		SourceQuote: "the redirect loops forever on staging",
	})
	if err != nil {
		t.Fatalf("create issue failed: %v", err)
	}
	if issue.Key != "SCRUM-42" {
		t.Errorf("unexpected key %s", issue.Key)
	}
	if issue.URL != ts.URL+"/browse/SCRUM-42" {
		t.Errorf("unexpected url %s", issue.URL)
	}

	fields, ok := captured["fields"].(map[string]interface{})
	if !ok {
		t.Fatal("payload missing fields")
	}
	if fields["summary"] != "Fix login redirect" {
		t.Errorf("unexpected summary %v", fields["summary"])
	}
	if _, ok := fields["customfield_10016"]; !ok {
		t.Error("story points field not set")
	}
	if _, ok := fields["description"]; !ok {
		t.Error("description not set")
	}
}

func TestCreateIssue_EmptySummaryFallsBack(t *testing.T) {
	var captured map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(map[string]string{"key": "SCRUM-1"})
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	if _, err := client.CreateIssue(context.Background(), IssueFields{Summary: "   "}); err != nil {
		t.Fatalf("create issue failed: %v", err)
	}

	fields := captured["fields"].(map[string]interface{})
	if fields["summary"] != "Untitled task" {
		t.Errorf("expected fallback summary, got %v", fields["summary"])
	}
	if fields["issuetype"].(map[string]interface{})["name"] != "Task" {
		t.Errorf("expected default issue type Task")
	}
}

func TestCreateIssue_RejectionPreservesMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errorMessages":["Field 'priority' is required."]}`))
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	_, err := client.CreateIssue(context.Background(), IssueFields{Summary: "x"})
	if err == nil {
		t.Fatal("expected error")
	}

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T", err)
	}
	if reqErr.StatusCode != http.StatusBadRequest {
		t.Errorf("unexpected status %d", reqErr.StatusCode)
	}
	if reqErr.Message != `{"errorMessages":["Field 'priority' is required."]}` {
		t.Errorf("rejection message not preserved verbatim: %q", reqErr.Message)
	}
}

func TestCreateIssue_TransportFailureIsNotRejection(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // connection refused

	client := newTestClient(ts.URL)
	_, err := client.CreateIssue(context.Background(), IssueFields{Summary: "x"})
	if err == nil {
		t.Fatal("expected error")
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		t.Fatal("transport failure must not surface as a tracker rejection")
	}
}

func TestCreateIssue_ServerErrorIsNotRejection(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	_, err := client.CreateIssue(context.Background(), IssueFields{Summary: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		t.Fatal("5xx must not surface as a tracker rejection")
	}
}

func TestFindUserAccountID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/api/3/user/search" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("query") != "Dana" {
			t.Fatalf("unexpected query %s", r.URL.Query().Get("query"))
		}
		json.NewEncoder(w).Encode([]map[string]string{{"accountId": "abc-123"}})
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	accountID, err := client.FindUserAccountID(context.Background(), "Dana")
	if err != nil {
		t.Fatalf("user search failed: %v", err)
	}
	if accountID != "abc-123" {
		t.Errorf("unexpected account id %s", accountID)
	}
}

func TestFindUserAccountID_NoMatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]string{})
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	accountID, err := client.FindUserAccountID(context.Background(), "Nobody")
	if err != nil {
		t.Fatalf("user search failed: %v", err)
	}
	if accountID != "" {
		t.Errorf("expected empty account id, got %s", accountID)
	}
}

func TestBuildDescription_QuoteBecomesBlockquote(t *testing.T) {
	doc := buildDescription("Do the thing.", "we said we would do the thing")
	if doc == nil {
		t.Fatal("expected a document")
	}
	content := doc["content"].([]map[string]interface{})
	if len(content) != 2 {
		t.Fatalf("expected paragraph + blockquote, got %d blocks", len(content))
	}
	if content[1]["type"] != "blockquote" {
		t.Errorf("expected blockquote, got %v", content[1]["type"])
	}
}

func TestBuildDescription_EmptyReturnsNil(t *testing.T) {
	if doc := buildDescription("", ""); doc != nil {
		t.Fatalf("expected nil document, got %v", doc)
	}
}
