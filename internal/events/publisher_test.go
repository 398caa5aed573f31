package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamgrid/teamgrid/internal/queue"
)

func TestQueuePublisher_EnqueuesJob(t *testing.T) {
	mockRedis := miniredis.RunT(t)
	defer mockRedis.Close()

	client := redis.NewClient(&redis.Options{Addr: mockRedis.Addr()})
	defer client.Close()

	publisher := NewQueuePublisher(queue.NewProducer(client))

	booked := MeetingBooked{
		MeetingID:      uuid.New(),
		Title:          "Sprint planning",
		StartUTC:       time.Date(2025, 2, 17, 14, 0, 0, 0, time.UTC),
		EndUTC:         time.Date(2025, 2, 17, 15, 0, 0, 0, time.UTC),
		OrganizerEmail: "maya.ortiz@example.com",
		AttendeeEmails: []string{"li.park@example.com"},
		OccurredAt:     time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, publisher.Publish(context.Background(), TypeMeetingBooked, booked))

	members, err := client.ZRange(context.Background(), queue.EventQueueKey, 0, -1).Result()
	require.NoError(t, err)
	require.Len(t, members, 1)

	var job queue.Job
	require.NoError(t, json.Unmarshal([]byte(members[0]), &job))
	assert.Equal(t, TypeMeetingBooked, job.Type)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, 5, job.MaxRetry)
	assert.Greater(t, job.ExpireAt, job.CreatedAt)

	var payload MeetingBooked
	require.NoError(t, json.Unmarshal(job.Payload, &payload))
	assert.Equal(t, booked.MeetingID, payload.MeetingID)
	assert.Equal(t, "Sprint planning", payload.Title)
	assert.Equal(t, []string{"li.park@example.com"}, payload.AttendeeEmails)
}

func TestQueuePublisher_PublishDeadParksOnDLQ(t *testing.T) {
	mockRedis := miniredis.RunT(t)
	defer mockRedis.Close()

	client := redis.NewClient(&redis.Options{Addr: mockRedis.Addr()})
	defer client.Close()

	publisher := NewQueuePublisher(queue.NewProducer(client))

	cancelled := MeetingCancelled{MeetingID: uuid.New(), Title: "Doomed"}
	require.NoError(t, publisher.PublishDead(context.Background(), TypeMeetingCancelled, cancelled, "broker unavailable"))

	members, err := client.LRange(context.Background(), queue.EventQueueDLQKey, 0, -1).Result()
	require.NoError(t, err)
	require.Len(t, members, 1)

	var job queue.Job
	require.NoError(t, json.Unmarshal([]byte(members[0]), &job))
	assert.Equal(t, TypeMeetingCancelled, job.Type)
	assert.Equal(t, "broker unavailable", job.ErrorMsg)

	queued, err := client.ZCard(context.Background(), queue.EventQueueKey).Result()
	require.NoError(t, err)
	assert.Zero(t, queued, "dead events never re-enter the delivery queue")
}
