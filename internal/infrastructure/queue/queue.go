package queue

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Job is a unit of ingestion work: one meeting to transcribe and extract.
// The payload carries only the meeting id; workers reload state from the
// database so a redelivered job never acts on stale fields.
type Job struct {
	MeetingID  uuid.UUID `json:"meeting_id"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// Queue is the transport between the import endpoint and the ingestion
// workers. Delivery is at-least-once; consumers must tolerate duplicates.
type Queue interface {
	// Enqueue publishes a job for processing
	Enqueue(ctx context.Context, job Job) error

	// Dequeue blocks until a job is available or the context is cancelled
	Dequeue(ctx context.Context) (Job, error)

	// Close releases the transport
	Close() error
}
