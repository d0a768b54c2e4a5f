package telemetry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestLogRunDeliversRecord(t *testing.T) {
	var received RunRecord
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("failed to decode record: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	meetingID := uuid.New()

	client.LogRun(context.Background(), RunRecord{
		MeetingID:         meetingID,
		Model:             "llama-3.1-70b-versatile",
		TranscriptExcerpt: "short transcript",
		DraftCount:        3,
		DurationMS:        1200,
	})

	if received.MeetingID != meetingID {
		t.Errorf("expected meeting id %s, got %s", meetingID, received.MeetingID)
	}
	if received.DraftCount != 3 {
		t.Errorf("expected draft count 3, got %d", received.DraftCount)
	}
	if received.RecordedAt.IsZero() {
		t.Error("expected recorded_at to be filled in")
	}
}

func TestLogRunTruncatesExcerpt(t *testing.T) {
	var received RunRecord
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	client.LogRun(context.Background(), RunRecord{
		MeetingID:         uuid.New(),
		TranscriptExcerpt: strings.Repeat("x", 2000),
	})

	if len(received.TranscriptExcerpt) != transcriptExcerpt {
		t.Errorf("expected excerpt truncated to %d, got %d", transcriptExcerpt, len(received.TranscriptExcerpt))
	}
}

func TestLogRunSwallowsSinkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	// Must not panic or surface the failure in any way.
	client.LogRun(context.Background(), RunRecord{MeetingID: uuid.New()})
}

func TestLogRunSwallowsTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, zap.NewNop())
	client.LogRun(context.Background(), RunRecord{MeetingID: uuid.New()})
}

func TestDisabledClientMakesNoCalls(t *testing.T) {
	client := NewClient("", zap.NewNop())
	if client.Enabled() {
		t.Error("client with empty URL must report disabled")
	}
	client.LogRun(context.Background(), RunRecord{MeetingID: uuid.New()})
}
