package queue

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const (
	EventQueueKey    = "event_queue"
	EventQueueDLQKey = "event_queue_dlq"
)

type Producer interface {
	Enqueue(ctx context.Context, job Job) error
	EnqueueDead(ctx context.Context, job Job) error
}

type RedisProducer struct {
	Redis *redis.Client
}

func NewProducer(redis *redis.Client) Producer {
	return &RedisProducer{Redis: redis}
}

// Enqueue scores the job by its ready time; the dispatch worker only pops
// jobs whose score is in the past, which is how retry backoff is expressed.
func (p *RedisProducer) Enqueue(ctx context.Context, job Job) error {
	jobBytes, err := json.Marshal(job)
	if err != nil {
		return err
	}

	return p.Redis.ZAdd(ctx, EventQueueKey, redis.Z{
		Score:  float64(job.CreatedAt),
		Member: jobBytes,
	}).Err()
}

// EnqueueDead parks a poison job on the DLQ list for manual inspection; it is
// never retried from there.
func (p *RedisProducer) EnqueueDead(ctx context.Context, job Job) error {
	jobBytes, err := json.Marshal(job)
	if err != nil {
		return err
	}

	return p.Redis.LPush(ctx, EventQueueDLQKey, jobBytes).Err()
}
