package queue

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMemoryQueueDeliversInOrder(t *testing.T) {
	q := NewMemoryQueue()
	defer q.Close()

	ctx := context.Background()
	first := Job{MeetingID: uuid.New(), EnqueuedAt: time.Now()}
	second := Job{MeetingID: uuid.New(), EnqueuedAt: time.Now()}

	if err := q.Enqueue(ctx, first); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	if err := q.Enqueue(ctx, second); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	got, err := q.Dequeue(ctx)
	if err != nil {
		t.Fatalf("dequeue failed: %v", err)
	}
	if got.MeetingID != first.MeetingID {
		t.Errorf("expected first job %s, got %s", first.MeetingID, got.MeetingID)
	}

	got, err = q.Dequeue(ctx)
	if err != nil {
		t.Fatalf("dequeue failed: %v", err)
	}
	if got.MeetingID != second.MeetingID {
		t.Errorf("expected second job %s, got %s", second.MeetingID, got.MeetingID)
	}
}

func TestMemoryQueueDequeueHonoursContext(t *testing.T) {
	q := NewMemoryQueue()
	defer q.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := q.Dequeue(ctx)
	if err == nil {
		t.Fatal("expected error from cancelled dequeue")
	}
}

func TestMemoryQueueEnqueueAfterClose(t *testing.T) {
	q := NewMemoryQueue()
	if err := q.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	err := q.Enqueue(context.Background(), Job{MeetingID: uuid.New()})
	if err == nil {
		t.Fatal("expected error enqueueing to a closed queue")
	}

	// Double close must be safe.
	if err := q.Close(); err != nil {
		t.Fatalf("second close failed: %v", err)
	}
}

func TestMemoryQueueDrainsAfterClose(t *testing.T) {
	q := NewMemoryQueue()

	job := Job{MeetingID: uuid.New(), EnqueuedAt: time.Now()}
	if err := q.Enqueue(context.Background(), job); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	if err := q.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	got, err := q.Dequeue(context.Background())
	if err != nil {
		t.Fatalf("dequeue of pending job failed: %v", err)
	}
	if got.MeetingID != job.MeetingID {
		t.Errorf("expected job %s, got %s", job.MeetingID, got.MeetingID)
	}

	if _, err := q.Dequeue(context.Background()); err == nil {
		t.Fatal("expected error dequeueing from a drained closed queue")
	}
}
