package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestTimeout    = 5 * time.Second
	transcriptExcerpt = 500
)

// RunRecord describes one completed ingestion run for offline analysis
// of extraction quality.
type RunRecord struct {
	MeetingID         uuid.UUID `json:"meeting_id"`
	Model             string    `json:"model"`
	TranscriptExcerpt string    `json:"transcript_excerpt"`
	DraftCount        int       `json:"draft_count"`
	DurationMS        int64     `json:"duration_ms"`
	RecordedAt        time.Time `json:"recorded_at"`
}

// Client posts run records to an external telemetry sink. Delivery is
// best-effort: failures are logged and swallowed, and never affect the
// outcome of the run that produced the record.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a telemetry client. An empty URL disables the sink.
func NewClient(url string, logger *zap.Logger) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// Enabled reports whether a sink is configured
func (c *Client) Enabled() bool {
	return c.url != ""
}

// LogRun sends a run record to the sink. Fire-and-forget: any error is
// logged at warn level and dropped.
func (c *Client) LogRun(ctx context.Context, record RunRecord) {
	if !c.Enabled() {
		return
	}

	if len(record.TranscriptExcerpt) > transcriptExcerpt {
		record.TranscriptExcerpt = record.TranscriptExcerpt[:transcriptExcerpt]
	}
	if record.RecordedAt.IsZero() {
		record.RecordedAt = time.Now()
	}

	if err := c.post(ctx, record); err != nil {
		c.logger.Warn("telemetry delivery failed",
			zap.String("meeting_id", record.MeetingID.String()),
			zap.Error(err))
	}
}

func (c *Client) post(ctx context.Context, record RunRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("telemetry sink returned status %d", resp.StatusCode)
	}
	return nil
}
