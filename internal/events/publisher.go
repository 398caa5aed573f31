package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/teamgrid/teamgrid/internal/queue"
)

// QueuePublisher pushes domain events onto the redis queue the external
// notification service consumes.
type QueuePublisher struct {
	Producer queue.Producer
}

func NewQueuePublisher(producer queue.Producer) Publisher {
	return &QueuePublisher{Producer: producer}
}

func (p *QueuePublisher) Publish(ctx context.Context, eventType string, payload any) error {
	now := time.Now()
	job := queue.Job{
		ID:        uuid.New().String(),
		Type:      eventType,
		Payload:   queue.MustMarshal(payload),
		Retry:     0,
		MaxRetry:  5,
		CreatedAt: now.Unix(),
		ExpireAt:  now.Add(24 * time.Hour).Unix(),
	}
	return p.Producer.Enqueue(ctx, job)
}

// PublishDead routes an undeliverable event onto the DLQ list with the last
// failure recorded, so an operator can inspect or replay it by hand.
func (p *QueuePublisher) PublishDead(ctx context.Context, eventType string, payload any, reason string) error {
	now := time.Now()
	job := queue.Job{
		ID:        uuid.New().String(),
		Type:      eventType,
		Payload:   queue.MustMarshal(payload),
		ErrorMsg:  reason,
		CreatedAt: now.Unix(),
	}
	return p.Producer.EnqueueDead(ctx, job)
}
