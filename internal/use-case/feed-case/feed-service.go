package feed_service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/teamgrid/teamgrid/internal/dtos/feed_dto"
	"github.com/teamgrid/teamgrid/internal/entity"
	app_error "github.com/teamgrid/teamgrid/internal/errors"
	conversation_repo "github.com/teamgrid/teamgrid/internal/repo/conversation"
	directory_service "github.com/teamgrid/teamgrid/internal/use-case/directory-case"
	meeting_service "github.com/teamgrid/teamgrid/internal/use-case/meeting-case"
	"github.com/teamgrid/teamgrid/state"
)

const (
	summaryLimit = 80
	iconMessage  = "message-circle"
	iconMeeting  = "calendar"
)

// FeedService is a read-only aggregator over the messaging and scheduling
// query surfaces; it mutates nothing.
type FeedService struct {
	AppState      *state.AppState
	Conversations conversation_repo.ConversationRepoContract
	Meetings      meeting_service.MeetingServiceContract
	Directory     directory_service.DirectoryServiceContract
}

func NewFeedService(appState *state.AppState) FeedServiceContract {
	return &FeedService{
		AppState:      appState,
		Conversations: conversation_repo.NewConversationRepo(appState),
		Meetings:      meeting_service.NewMeetingService(appState),
		Directory:     directory_service.NewDirectoryService(appState),
	}
}

func (s *FeedService) GetActivityFeed(ctx context.Context, employeeID uuid.UUID, count int) ([]feed_dto.ActivityItem, *app_error.AppError) {
	if count <= 0 {
		return []feed_dto.ActivityItem{}, nil
	}

	messages, err := s.Conversations.FindRecentMessagesForEmployee(ctx, employeeID, count)
	if err != nil {
		return nil, err
	}

	senderIDs := lo.Map(messages, func(m entity.ConversationMessage, _ int) uuid.UUID {
		return m.SenderEmployeeID
	})
	senders, err := s.Directory.GetEmployeeBatch(ctx, senderIDs)
	if err != nil {
		return nil, err
	}

	meetings, err := s.Meetings.GetUpcomingMeetings(ctx, count)
	if err != nil {
		return nil, err
	}

	items := make([]feed_dto.ActivityItem, 0, len(messages)+len(meetings))
	for _, message := range messages {
		senderName := "Unknown"
		if sender, ok := senders[message.SenderEmployeeID]; ok {
			senderName = sender.DisplayName()
		}
		items = append(items, feed_dto.ActivityItem{
			ID:         message.ID.String(),
			Kind:       feed_dto.KindMessage,
			Icon:       iconMessage,
			Title:      senderName,
			Summary:    truncateSummary(message.Content),
			OccurredAt: message.SentAt,
		})
	}
	for _, meeting := range meetings {
		items = append(items, feed_dto.ActivityItem{
			ID:         meeting.ID,
			Kind:       feed_dto.KindMeeting,
			Icon:       iconMeeting,
			Title:      meeting.Title,
			Summary:    meetingSummary(meeting.StartUTC, len(meeting.Attendees)),
			OccurredAt: meeting.StartUTC,
		})
	}

	// Merge the two streams newest-first and cut to the requested size.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].OccurredAt.After(items[j].OccurredAt)
	})
	if len(items) > count {
		items = items[:count]
	}
	return items, nil
}

// truncateSummary caps message previews at 80 runes with a trailing
// ellipsis, counting runes rather than bytes so multibyte text is not cut
// mid-character.
func truncateSummary(content string) string {
	runes := []rune(content)
	if len(runes) <= summaryLimit {
		return content
	}
	return string(runes[:summaryLimit]) + "…"
}

func meetingSummary(start time.Time, attendeeCount int) string {
	return fmt.Sprintf("Starts %s · %d attendees", start.UTC().Format("Jan 2 15:04 MST"), attendeeCount)
}
