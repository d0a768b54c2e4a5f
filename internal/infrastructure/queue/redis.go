package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"

	"github.com/scrumscribe-team/scrumscribe/pkg/config"
	"github.com/scrumscribe-team/scrumscribe/pkg/jobcontext"
)

const dequeueBlockTimeout = 5 * time.Second

// RedisQueue is a Redis-list backed job queue (LPUSH producer, BRPOP
// consumer). It lets the API and the ingestion workers run as separate
// processes and keeps jobs across restarts.
type RedisQueue struct {
	client *redis.Client
	key    string
}

// NewRedisQueue creates a Redis-backed queue and verifies the connection
func NewRedisQueue(cfg *config.Config) (*RedisQueue, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisQueue{
		client: client,
		key:    cfg.Worker.QueueName,
	}, nil
}

// Enqueue publishes a job for processing
func (q *RedisQueue) Enqueue(ctx context.Context, job Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue job: %w", err)
	}
	return nil
}

// Dequeue blocks until a job is available or the context is cancelled.
// Transient Redis errors back off exponentially instead of hot-looping.
func (q *RedisQueue) Dequeue(ctx context.Context) (Job, error) {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 0 // block until a job arrives or ctx is cancelled
	policy := backoff.WithContext(bo, ctx)

	var job Job
	operation := func() error {
		result, err := q.client.BRPop(ctx, dequeueBlockTimeout, q.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Poll timeout, nothing queued yet.
				return errors.New("queue empty")
			}
			if jobcontext.IsRetryableError(err) {
				return err
			}
			return backoff.Permanent(err)
		}

		// BRPop returns [key, value]
		if len(result) != 2 {
			return backoff.Permanent(fmt.Errorf("unexpected BRPOP reply length %d", len(result)))
		}
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			// A malformed payload is dropped, not redelivered forever.
			return backoff.Permanent(fmt.Errorf("failed to unmarshal job: %w", err))
		}
		return nil
	}

	if err := backoff.Retry(operation, policy); err != nil {
		if ctx.Err() != nil {
			return Job{}, ctx.Err()
		}
		return Job{}, err
	}
	return job, nil
}

// Close releases the Redis connection
func (q *RedisQueue) Close() error {
	return q.client.Close()
}
