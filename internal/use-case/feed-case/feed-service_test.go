package feed_service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamgrid/teamgrid/internal/dtos/directory_dto"
	"github.com/teamgrid/teamgrid/internal/dtos/feed_dto"
	"github.com/teamgrid/teamgrid/internal/dtos/meeting_dto"
	"github.com/teamgrid/teamgrid/internal/entity"
	app_error "github.com/teamgrid/teamgrid/internal/errors"
)

// fakeMessageSource serves canned recent messages; the feed only ever reads.
type fakeMessageSource struct {
	messages []entity.ConversationMessage
}

func (f *fakeMessageSource) CreateConversation(context.Context, entity.Conversation, []entity.ConversationParticipant, *entity.ConversationMessage) *app_error.AppError {
	return nil
}

func (f *fakeMessageSource) FindConversationByID(context.Context, uuid.UUID) (*entity.Conversation, *app_error.AppError) {
	return nil, nil
}

func (f *fakeMessageSource) FindConversationsForEmployee(context.Context, uuid.UUID) ([]entity.Conversation, *app_error.AppError) {
	return nil, nil
}

func (f *fakeMessageSource) FindParticipant(context.Context, uuid.UUID, uuid.UUID) (*entity.ConversationParticipant, *app_error.AppError) {
	return nil, nil
}

func (f *fakeMessageSource) FindMessages(context.Context, uuid.UUID) ([]entity.ConversationMessage, *app_error.AppError) {
	return nil, nil
}

func (f *fakeMessageSource) FindRecentMessagesForEmployee(_ context.Context, _ uuid.UUID, limit int) ([]entity.ConversationMessage, *app_error.AppError) {
	if len(f.messages) > limit {
		return f.messages[:limit], nil
	}
	return f.messages, nil
}

func (f *fakeMessageSource) AppendMessage(context.Context, entity.ConversationMessage) *app_error.AppError {
	return nil
}

func (f *fakeMessageSource) CountUnread(context.Context, uuid.UUID, uuid.UUID, *time.Time) (int64, *app_error.AppError) {
	return 0, nil
}

func (f *fakeMessageSource) UpsertReceipt(context.Context, entity.ChannelReadReceipt) *app_error.AppError {
	return nil
}

func (f *fakeMessageSource) FindReceipts(context.Context, uuid.UUID, []uuid.UUID) ([]entity.ChannelReadReceipt, *app_error.AppError) {
	return nil, nil
}

// fakeMeetingSource serves canned upcoming meetings.
type fakeMeetingSource struct {
	upcoming []meeting_dto.MeetingResponse
}

func (f *fakeMeetingSource) CreateMeeting(context.Context, meeting_dto.CreateMeetingRequest) (*meeting_dto.MeetingResponse, *app_error.AppError) {
	return nil, nil
}

func (f *fakeMeetingSource) GetMeeting(context.Context, uuid.UUID) (*meeting_dto.MeetingResponse, *app_error.AppError) {
	return nil, nil
}

func (f *fakeMeetingSource) UpdateMeeting(context.Context, uuid.UUID, meeting_dto.UpdateMeetingRequest) (*meeting_dto.MeetingResponse, *app_error.AppError) {
	return nil, nil
}

func (f *fakeMeetingSource) RespondToMeeting(context.Context, uuid.UUID, meeting_dto.RespondToMeetingRequest) (*meeting_dto.MeetingResponse, *app_error.AppError) {
	return nil, nil
}

func (f *fakeMeetingSource) CancelMeeting(context.Context, uuid.UUID) *app_error.AppError {
	return nil
}

func (f *fakeMeetingSource) GetCalendarEvents(context.Context, meeting_dto.CalendarRangeRequest) ([]meeting_dto.CalendarEventResponse, *app_error.AppError) {
	return nil, nil
}

func (f *fakeMeetingSource) GetUpcomingMeetings(_ context.Context, count int) ([]meeting_dto.MeetingResponse, *app_error.AppError) {
	if len(f.upcoming) > count {
		return f.upcoming[:count], nil
	}
	return f.upcoming, nil
}

func (f *fakeMeetingSource) ExportICal(context.Context, uuid.UUID) (string, *app_error.AppError) {
	return "", nil
}

// fakeDirectory resolves employees straight from a map.
type fakeDirectory struct {
	employees map[uuid.UUID]entity.Employee
}

func newFakeDirectory(employees ...entity.Employee) *fakeDirectory {
	d := &fakeDirectory{employees: make(map[uuid.UUID]entity.Employee)}
	for _, e := range employees {
		d.employees[e.ID] = e
	}
	return d
}

func (d *fakeDirectory) ListEmployees(context.Context, *string) ([]directory_dto.EmployeeResponse, *app_error.AppError) {
	return nil, nil
}

func (d *fakeDirectory) GetEmployee(context.Context, uuid.UUID) (*directory_dto.EmployeeResponse, *app_error.AppError) {
	return nil, nil
}

func (d *fakeDirectory) GetEmployeeBatch(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.Employee, *app_error.AppError) {
	resolved := make(map[uuid.UUID]entity.Employee)
	for _, id := range ids {
		if e, ok := d.employees[id]; ok {
			resolved[id] = e
		}
	}
	return resolved, nil
}

func (d *fakeDirectory) CreateEmployee(context.Context, directory_dto.CreateEmployeeRequest) (*directory_dto.EmployeeResponse, *app_error.AppError) {
	return nil, nil
}

func (d *fakeDirectory) UpdateEmployee(context.Context, uuid.UUID, directory_dto.UpdateEmployeeRequest) (*directory_dto.EmployeeResponse, *app_error.AppError) {
	return nil, nil
}

func (d *fakeDirectory) UpdatePresence(context.Context, uuid.UUID, string) (*directory_dto.EmployeeResponse, *app_error.AppError) {
	return nil, nil
}

func (d *fakeDirectory) GetPresence(context.Context, uuid.UUID) (*directory_dto.EmployeeResponse, *app_error.AppError) {
	return nil, nil
}

func messageAt(sender uuid.UUID, content string, at time.Time) entity.ConversationMessage {
	return entity.ConversationMessage{
		ID:               uuid.New(),
		ConversationID:   uuid.New(),
		SenderEmployeeID: sender,
		Content:          content,
		SentAt:           at,
	}
}

func meetingAt(title string, start time.Time, attendeeCount int) meeting_dto.MeetingResponse {
	attendees := make([]meeting_dto.AttendeeView, attendeeCount)
	return meeting_dto.MeetingResponse{
		ID:        uuid.New().String(),
		Title:     title,
		StartUTC:  start,
		EndUTC:    start.Add(time.Hour),
		Status:    string(entity.MeetingScheduled),
		Attendees: attendees,
	}
}

func TestGetActivityFeed_MergesNewestFirst(t *testing.T) {
	sender := entity.Employee{ID: uuid.New(), FirstName: "Alice", LastName: "Nguyen", Email: "alice.nguyen@example.com"}
	base := time.Date(2025, 2, 17, 9, 0, 0, 0, time.UTC)

	svc := &FeedService{
		Conversations: &fakeMessageSource{messages: []entity.ConversationMessage{
			messageAt(sender.ID, "newest message", base.Add(2*time.Hour)),
			messageAt(sender.ID, "older message", base),
		}},
		Meetings:  &fakeMeetingSource{upcoming: []meeting_dto.MeetingResponse{meetingAt("Standup", base.Add(time.Hour), 3)}},
		Directory: newFakeDirectory(sender),
	}

	items, err := svc.GetActivityFeed(context.Background(), uuid.New(), 10)

	require.Nil(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "newest message", items[0].Summary)
	assert.Equal(t, feed_dto.KindMeeting, items[1].Kind)
	assert.Equal(t, "older message", items[2].Summary)
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].OccurredAt.After(items[i-1].OccurredAt), "feed must be newest-first")
	}
}

func TestGetActivityFeed_TruncatesToCount(t *testing.T) {
	sender := entity.Employee{ID: uuid.New(), FirstName: "Alice", LastName: "Nguyen", Email: "alice.nguyen@example.com"}
	base := time.Date(2025, 2, 17, 9, 0, 0, 0, time.UTC)

	var messages []entity.ConversationMessage
	for i := 0; i < 5; i++ {
		messages = append(messages, messageAt(sender.ID, "msg", base.Add(time.Duration(i)*time.Minute)))
	}

	svc := &FeedService{
		Conversations: &fakeMessageSource{messages: messages},
		Meetings:      &fakeMeetingSource{upcoming: []meeting_dto.MeetingResponse{meetingAt("Standup", base.Add(time.Hour), 1)}},
		Directory:     newFakeDirectory(sender),
	}

	items, err := svc.GetActivityFeed(context.Background(), uuid.New(), 3)

	require.Nil(t, err)
	assert.Len(t, items, 3)
}

func TestGetActivityFeed_ZeroCountEmpty(t *testing.T) {
	svc := &FeedService{
		Conversations: &fakeMessageSource{},
		Meetings:      &fakeMeetingSource{},
		Directory:     newFakeDirectory(),
	}

	items, err := svc.GetActivityFeed(context.Background(), uuid.New(), 0)

	require.Nil(t, err)
	assert.Empty(t, items)
}

func TestGetActivityFeed_MessageProjection(t *testing.T) {
	sender := entity.Employee{ID: uuid.New(), FirstName: "Alice", LastName: "Nguyen", Email: "alice.nguyen@example.com"}
	base := time.Date(2025, 2, 17, 9, 0, 0, 0, time.UTC)

	long := strings.Repeat("a", 100)
	svc := &FeedService{
		Conversations: &fakeMessageSource{messages: []entity.ConversationMessage{
			messageAt(sender.ID, long, base),
		}},
		Meetings:  &fakeMeetingSource{},
		Directory: newFakeDirectory(sender),
	}

	items, err := svc.GetActivityFeed(context.Background(), uuid.New(), 10)

	require.Nil(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, feed_dto.KindMessage, items[0].Kind)
	assert.Equal(t, "message-circle", items[0].Icon)
	assert.Equal(t, "Alice Nguyen", items[0].Title)
	assert.Equal(t, strings.Repeat("a", 80)+"…", items[0].Summary)
}

func TestGetActivityFeed_UnknownSenderFallsBack(t *testing.T) {
	base := time.Date(2025, 2, 17, 9, 0, 0, 0, time.UTC)
	svc := &FeedService{
		Conversations: &fakeMessageSource{messages: []entity.ConversationMessage{
			messageAt(uuid.New(), "ghost", base),
		}},
		Meetings:  &fakeMeetingSource{},
		Directory: newFakeDirectory(),
	}

	items, err := svc.GetActivityFeed(context.Background(), uuid.New(), 10)

	require.Nil(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Unknown", items[0].Title)
}

func TestGetActivityFeed_MeetingProjection(t *testing.T) {
	base := time.Date(2025, 2, 17, 14, 0, 0, 0, time.UTC)
	svc := &FeedService{
		Conversations: &fakeMessageSource{},
		Meetings:      &fakeMeetingSource{upcoming: []meeting_dto.MeetingResponse{meetingAt("Sprint planning", base, 4)}},
		Directory:     newFakeDirectory(),
	}

	items, err := svc.GetActivityFeed(context.Background(), uuid.New(), 10)

	require.Nil(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, feed_dto.KindMeeting, items[0].Kind)
	assert.Equal(t, "calendar", items[0].Icon)
	assert.Equal(t, "Sprint planning", items[0].Title)
	assert.Equal(t, "Starts Feb 17 14:00 UTC · 4 attendees", items[0].Summary)
	assert.Equal(t, base, items[0].OccurredAt)
}

func TestTruncateSummary_RuneSafe(t *testing.T) {
	// 81 multibyte runes must be cut at 80 runes, not 80 bytes.
	content := strings.Repeat("é", 81)
	got := truncateSummary(content)
	assert.Equal(t, strings.Repeat("é", 80)+"…", got)

	// At or under the limit the content is untouched.
	exact := strings.Repeat("é", 80)
	assert.Equal(t, exact, truncateSummary(exact))
}
