package worker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/teamgrid/teamgrid/internal/entity"
	"github.com/teamgrid/teamgrid/internal/events"
	outbox_repo "github.com/teamgrid/teamgrid/internal/repo/outbox"
)

const (
	batchSize = 100
	// maxDispatchAttempts caps redelivery of a failing event before it is
	// parked on the DLQ; below the cap the row is simply re-polled.
	maxDispatchAttempts = 5
)

// DispatcherPool drains the outbox and publishes each event onto the bus.
// An event is only marked dispatched after a successful publish, so a crash
// between publish and mark re-delivers it on the next poll: at-least-once,
// never best-effort-dropped. Events that keep failing are dead-lettered
// after maxDispatchAttempts instead of poisoning the poll loop forever.
type DispatcherPool struct {
	Outbox       outbox_repo.OutboxRepoContract
	Publisher    events.Publisher
	WorkerNum    int
	PollInterval time.Duration
	EventChannel chan entity.OutboxEvent
	now          func() time.Time
	wg           sync.WaitGroup

	attemptsMu sync.Mutex
	attempts   map[uuid.UUID]int
}

func NewDispatcherPool(outbox outbox_repo.OutboxRepoContract, publisher events.Publisher, workerNum int, pollInterval time.Duration) *DispatcherPool {
	return &DispatcherPool{
		Outbox:       outbox,
		Publisher:    publisher,
		WorkerNum:    workerNum,
		PollInterval: pollInterval,
		EventChannel: make(chan entity.OutboxEvent, batchSize),
		now:          time.Now,
		attempts:     make(map[uuid.UUID]int),
	}
}

func (dp *DispatcherPool) Start(ctx context.Context) {
	log.Info().Msgf("Starting dispatcher pool with %d workers", dp.WorkerNum)

	for i := 0; i < dp.WorkerNum; i++ {
		dp.wg.Add(1)
		go dp.worker(ctx, i)
	}

	go func() {
		defer close(dp.EventChannel)
		ticker := time.NewTicker(dp.PollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("Stopping dispatcher pool")
				return
			case <-ticker.C:
				rows, err := dp.Outbox.FindUndispatched(ctx, batchSize)
				if err != nil {
					log.Error().Err(err).Msg("Dispatcher: failed to poll outbox")
					continue
				}
				for _, row := range rows {
					select {
					case <-ctx.Done():
						return
					case dp.EventChannel <- row:
					}
				}
			}
		}
	}()
}

func (dp *DispatcherPool) worker(ctx context.Context, id int) {
	defer dp.wg.Done()
	log.Info().Msgf("Dispatch worker %d started", id)

	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("Dispatch worker %d stopping", id)
			return
		case event, ok := <-dp.EventChannel:
			if !ok {
				return
			}

			if err := dp.Publisher.Publish(ctx, event.EventType, event.Payload); err != nil {
				if dp.recordFailure(event.ID) < maxDispatchAttempts {
					// Row stays undispatched and is retried on a later poll.
					log.Warn().Err(err).Str("event_id", event.ID.String()).Str("type", event.EventType).Msg("Dispatcher: publish failed")
					continue
				}
				dp.deadLetter(ctx, event, err)
				continue
			}
			dp.clearFailures(event.ID)

			if err := dp.Outbox.MarkDispatched(ctx, event.ID, dp.now()); err != nil {
				// Publish already happened; the duplicate on redelivery is
				// tolerated by the external notifier.
				log.Warn().Err(err).Str("event_id", event.ID.String()).Msg("Dispatcher: failed to mark event dispatched")
			}
		}
	}
}

func (dp *DispatcherPool) recordFailure(id uuid.UUID) int {
	dp.attemptsMu.Lock()
	defer dp.attemptsMu.Unlock()
	dp.attempts[id]++
	return dp.attempts[id]
}

func (dp *DispatcherPool) clearFailures(id uuid.UUID) {
	dp.attemptsMu.Lock()
	defer dp.attemptsMu.Unlock()
	delete(dp.attempts, id)
}

// deadLetter parks a poison event on the DLQ and marks its row dispatched so
// the poll loop stops re-delivering it; the payload survives on the list for
// manual replay.
func (dp *DispatcherPool) deadLetter(ctx context.Context, event entity.OutboxEvent, cause error) {
	log.Error().Err(cause).Str("event_id", event.ID.String()).Str("type", event.EventType).Msg("Dispatcher: delivery attempts exhausted, dead-lettering event")

	if err := dp.Publisher.PublishDead(ctx, event.EventType, event.Payload, cause.Error()); err != nil {
		// DLQ write failed too; leave the row undispatched so nothing is
		// silently lost, and let a later poll try the whole path again.
		log.Error().Err(err).Str("event_id", event.ID.String()).Msg("Dispatcher: failed to dead-letter event")
		return
	}
	dp.clearFailures(event.ID)

	if err := dp.Outbox.MarkDispatched(ctx, event.ID, dp.now()); err != nil {
		log.Warn().Err(err).Str("event_id", event.ID.String()).Msg("Dispatcher: failed to mark dead-lettered event")
	}
}

func (dp *DispatcherPool) Wait() {
	dp.wg.Wait()
	log.Info().Msg("All dispatch workers have stopped")
}
