package chat_service

import (
	"context"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamgrid/teamgrid/internal/dtos/chat_dto"
	"github.com/teamgrid/teamgrid/internal/dtos/directory_dto"
	"github.com/teamgrid/teamgrid/internal/entity"
	app_error "github.com/teamgrid/teamgrid/internal/errors"
)

type receiptKey struct {
	conversationID uuid.UUID
	employeeID     uuid.UUID
}

// fakeConversationRepo keeps everything in memory and mirrors the real
// repo's receipt and unread semantics.
type fakeConversationRepo struct {
	conversations map[uuid.UUID]entity.Conversation
	participants  map[uuid.UUID][]entity.ConversationParticipant
	messages      map[uuid.UUID][]entity.ConversationMessage
	receipts      map[receiptKey]entity.ChannelReadReceipt
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		conversations: make(map[uuid.UUID]entity.Conversation),
		participants:  make(map[uuid.UUID][]entity.ConversationParticipant),
		messages:      make(map[uuid.UUID][]entity.ConversationMessage),
		receipts:      make(map[receiptKey]entity.ChannelReadReceipt),
	}
}

func (f *fakeConversationRepo) CreateConversation(_ context.Context, conversation entity.Conversation, participants []entity.ConversationParticipant, seed *entity.ConversationMessage) *app_error.AppError {
	f.conversations[conversation.ID] = conversation
	f.participants[conversation.ID] = participants
	if seed != nil {
		f.messages[conversation.ID] = append(f.messages[conversation.ID], *seed)
	}
	return nil
}

func (f *fakeConversationRepo) FindConversationByID(_ context.Context, id uuid.UUID) (*entity.Conversation, *app_error.AppError) {
	c, ok := f.conversations[id]
	if !ok {
		return nil, app_error.NotFound("conversation not found", "id")
	}
	return &c, nil
}

func (f *fakeConversationRepo) FindConversationsForEmployee(_ context.Context, employeeID uuid.UUID) ([]entity.Conversation, *app_error.AppError) {
	var result []entity.Conversation
	for id, participants := range f.participants {
		for _, p := range participants {
			if p.EmployeeID == employeeID {
				result = append(result, f.conversations[id])
				break
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (f *fakeConversationRepo) FindParticipant(_ context.Context, conversationID, employeeID uuid.UUID) (*entity.ConversationParticipant, *app_error.AppError) {
	for _, p := range f.participants[conversationID] {
		if p.EmployeeID == employeeID {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeConversationRepo) FindMessages(_ context.Context, conversationID uuid.UUID) ([]entity.ConversationMessage, *app_error.AppError) {
	return f.messages[conversationID], nil
}

func (f *fakeConversationRepo) FindRecentMessagesForEmployee(_ context.Context, employeeID uuid.UUID, limit int) ([]entity.ConversationMessage, *app_error.AppError) {
	var result []entity.ConversationMessage
	for conversationID, participants := range f.participants {
		for _, p := range participants {
			if p.EmployeeID == employeeID {
				result = append(result, f.messages[conversationID]...)
				break
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SentAt.After(result[j].SentAt) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeConversationRepo) AppendMessage(_ context.Context, message entity.ConversationMessage) *app_error.AppError {
	f.messages[message.ConversationID] = append(f.messages[message.ConversationID], message)
	c := f.conversations[message.ConversationID]
	sentAt := message.SentAt
	c.LastMessageAt = &sentAt
	f.conversations[message.ConversationID] = c
	return nil
}

func (f *fakeConversationRepo) CountUnread(_ context.Context, conversationID, employeeID uuid.UUID, after *time.Time) (int64, *app_error.AppError) {
	var count int64
	for _, m := range f.messages[conversationID] {
		if m.SenderEmployeeID == employeeID {
			continue
		}
		if after != nil && !m.SentAt.After(*after) {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeConversationRepo) UpsertReceipt(_ context.Context, receipt entity.ChannelReadReceipt) *app_error.AppError {
	key := receiptKey{conversationID: receipt.ConversationID, employeeID: receipt.EmployeeID}
	// The bookmark only ever moves forward.
	if existing, ok := f.receipts[key]; ok && existing.LastReadAt.After(receipt.LastReadAt) {
		return nil
	}
	f.receipts[key] = receipt
	return nil
}

func (f *fakeConversationRepo) FindReceipts(_ context.Context, employeeID uuid.UUID, conversationIDs []uuid.UUID) ([]entity.ChannelReadReceipt, *app_error.AppError) {
	var result []entity.ChannelReadReceipt
	for _, id := range conversationIDs {
		if r, ok := f.receipts[receiptKey{conversationID: id, employeeID: employeeID}]; ok {
			result = append(result, r)
		}
	}
	return result, nil
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

func (d *fakeDirectory) GetEmployee(_ context.Context, id uuid.UUID) (*directory_dto.EmployeeResponse, *app_error.AppError) {
	e, ok := d.employees[id]
	if !ok {
		return nil, app_error.NotFound("employee not found", "id")
	}
	resp := directory_dto.FromEmployee(e)
	return &resp, nil
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

func chatEmployee(first, last, email string) entity.Employee {
	return entity.Employee{
		ID:        uuid.New(),
		Email:     email,
		FirstName: first,
		LastName:  last,
		Timezone:  "UTC",
		Status:    entity.EmployeeActive,
		Presence:  entity.PresenceOffline,
	}
}

type chatFixture struct {
	svc   *ChatService
	repo  *fakeConversationRepo
	clock *time.Time
}

func newChatFixture(employees ...entity.Employee) *chatFixture {
	start := time.Date(2025, 2, 17, 9, 0, 0, 0, time.UTC)
	clock := &start
	repo := newFakeConversationRepo()
	return &chatFixture{
		svc: &ChatService{
			Repo:      repo,
			Directory: newFakeDirectory(employees...),
			Now:       func() time.Time { return *clock },
		},
		repo:  repo,
		clock: clock,
	}
}

func (f *chatFixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}

func TestUnreadLifecycle(t *testing.T) {
	alice := chatEmployee("Alice", "Nguyen", "alice.nguyen@example.com")
	bob := chatEmployee("Bob", "Sato", "bob.sato@example.com")
	fx := newChatFixture(alice, bob)
	ctx := context.Background()

	channel, err := fx.svc.CreateChannel(ctx, chat_dto.CreateChannelRequest{
		Name:           "general",
		ChannelType:    "public",
		CreatorID:      alice.ID,
		ParticipantIDs: []uuid.UUID{bob.ID},
	})
	require.Nil(t, err)
	channelID := uuid.MustParse(channel.ID)

	// No activity yet: zero unread for Bob.
	channels, err := fx.svc.GetChannelsForEmployee(ctx, bob.ID)
	require.Nil(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, int64(0), channels[0].UnreadCount)

	// Alice sends two messages; both count against Bob.
	fx.advance(time.Minute)
	_, err = fx.svc.SendMessage(ctx, channelID, chat_dto.SendMessageRequest{SenderID: alice.ID, Content: "morning"})
	require.Nil(t, err)
	fx.advance(time.Minute)
	_, err = fx.svc.SendMessage(ctx, channelID, chat_dto.SendMessageRequest{SenderID: alice.ID, Content: "standup in 5"})
	require.Nil(t, err)

	channels, err = fx.svc.GetChannelsForEmployee(ctx, bob.ID)
	require.Nil(t, err)
	assert.Equal(t, int64(2), channels[0].UnreadCount)

	// Alice's own view never counts her messages.
	channels, err = fx.svc.GetChannelsForEmployee(ctx, alice.ID)
	require.Nil(t, err)
	assert.Equal(t, int64(0), channels[0].UnreadCount)

	// Bob reads; his unread drops to zero.
	fx.advance(time.Minute)
	require.Nil(t, fx.svc.MarkAsRead(ctx, channelID, bob.ID))

	channels, err = fx.svc.GetChannelsForEmployee(ctx, bob.ID)
	require.Nil(t, err)
	assert.Equal(t, int64(0), channels[0].UnreadCount)

	// The next message after the read bookmark counts again.
	fx.advance(time.Minute)
	_, err = fx.svc.SendMessage(ctx, channelID, chat_dto.SendMessageRequest{SenderID: alice.ID, Content: "ping"})
	require.Nil(t, err)

	channels, err = fx.svc.GetChannelsForEmployee(ctx, bob.ID)
	require.Nil(t, err)
	assert.Equal(t, int64(1), channels[0].UnreadCount)
}

func TestMarkAsRead_IsIdempotent(t *testing.T) {
	alice := chatEmployee("Alice", "Nguyen", "alice.nguyen@example.com")
	bob := chatEmployee("Bob", "Sato", "bob.sato@example.com")
	fx := newChatFixture(alice, bob)
	ctx := context.Background()

	channel, err := fx.svc.CreateChannel(ctx, chat_dto.CreateChannelRequest{
		Name:           "general",
		ChannelType:    "public",
		CreatorID:      alice.ID,
		ParticipantIDs: []uuid.UUID{bob.ID},
	})
	require.Nil(t, err)
	channelID := uuid.MustParse(channel.ID)

	fx.advance(time.Minute)
	_, err = fx.svc.SendMessage(ctx, channelID, chat_dto.SendMessageRequest{SenderID: alice.ID, Content: "hello"})
	require.Nil(t, err)

	fx.advance(time.Minute)
	require.Nil(t, fx.svc.MarkAsRead(ctx, channelID, bob.ID))
	require.Nil(t, fx.svc.MarkAsRead(ctx, channelID, bob.ID))

	channels, err := fx.svc.GetChannelsForEmployee(ctx, bob.ID)
	require.Nil(t, err)
	assert.Equal(t, int64(0), channels[0].UnreadCount)
}

func TestSendMessage_NonParticipantForbidden(t *testing.T) {
	alice := chatEmployee("Alice", "Nguyen", "alice.nguyen@example.com")
	mallory := chatEmployee("Mallory", "Vane", "mallory.vane@example.com")
	fx := newChatFixture(alice, mallory)
	ctx := context.Background()

	channel, err := fx.svc.CreateChannel(ctx, chat_dto.CreateChannelRequest{
		Name:        "private",
		ChannelType: "public",
		CreatorID:   alice.ID,
	})
	require.Nil(t, err)

	_, sendErr := fx.svc.SendMessage(ctx, uuid.MustParse(channel.ID), chat_dto.SendMessageRequest{
		SenderID: mallory.ID,
		Content:  "let me in",
	})

	require.NotNil(t, sendErr)
	assert.Equal(t, http.StatusForbidden, sendErr.Code)

	readErr := fx.svc.MarkAsRead(ctx, uuid.MustParse(channel.ID), mallory.ID)
	require.NotNil(t, readErr)
	assert.Equal(t, http.StatusForbidden, readErr.Code)
}

func TestCreateChannel_UnknownTypeRejected(t *testing.T) {
	alice := chatEmployee("Alice", "Nguyen", "alice.nguyen@example.com")
	fx := newChatFixture(alice)

	_, err := fx.svc.CreateChannel(context.Background(), chat_dto.CreateChannelRequest{
		Name:        "broken",
		ChannelType: "secret",
		CreatorID:   alice.ID,
	})

	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Code)
}

func TestCreateConversation_CreatorAlwaysParticipant(t *testing.T) {
	alice := chatEmployee("Alice", "Nguyen", "alice.nguyen@example.com")
	bob := chatEmployee("Bob", "Sato", "bob.sato@example.com")
	fx := newChatFixture(alice, bob)
	ctx := context.Background()

	// The creator is not in the participant list, and Bob is listed twice.
	conversation, err := fx.svc.CreateConversation(ctx, chat_dto.CreateConversationRequest{
		Subject:        "Lunch plans",
		CreatorID:      alice.ID,
		ParticipantIDs: []uuid.UUID{bob.ID, bob.ID},
	})
	require.Nil(t, err)

	participants := fx.repo.participants[uuid.MustParse(conversation.ID)]
	require.Len(t, participants, 2)
	assert.Equal(t, alice.ID, participants[0].EmployeeID)
	assert.Equal(t, bob.ID, participants[1].EmployeeID)
	assert.Equal(t, string(entity.ChannelAdHoc), conversation.ChannelType)
}

func TestCreateConversation_SeedMessageSetsLastMessageAt(t *testing.T) {
	alice := chatEmployee("Alice", "Nguyen", "alice.nguyen@example.com")
	fx := newChatFixture(alice)
	ctx := context.Background()

	seed := "kicking this off"
	conversation, err := fx.svc.CreateConversation(ctx, chat_dto.CreateConversationRequest{
		Subject:        "Project kickoff",
		CreatorID:      alice.ID,
		InitialMessage: &seed,
	})
	require.Nil(t, err)
	require.NotNil(t, conversation.LastMessageAt)

	messages, err := fx.svc.GetMessages(ctx, uuid.MustParse(conversation.ID))
	require.Nil(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "kicking this off", messages[0].Content)
	assert.Equal(t, "Alice Nguyen", messages[0].SenderName)
}

func TestGetMessages_ResolvesSenderNames(t *testing.T) {
	alice := chatEmployee("Alice", "Nguyen", "alice.nguyen@example.com")
	bob := chatEmployee("Bob", "Sato", "bob.sato@example.com")
	fx := newChatFixture(alice, bob)
	ctx := context.Background()

	channel, err := fx.svc.CreateChannel(ctx, chat_dto.CreateChannelRequest{
		Name:           "general",
		ChannelType:    "public",
		CreatorID:      alice.ID,
		ParticipantIDs: []uuid.UUID{bob.ID},
	})
	require.Nil(t, err)
	channelID := uuid.MustParse(channel.ID)

	fx.advance(time.Minute)
	_, err = fx.svc.SendMessage(ctx, channelID, chat_dto.SendMessageRequest{SenderID: alice.ID, Content: "hi"})
	require.Nil(t, err)
	fx.advance(time.Minute)
	_, err = fx.svc.SendMessage(ctx, channelID, chat_dto.SendMessageRequest{SenderID: bob.ID, Content: "hey"})
	require.Nil(t, err)

	messages, err := fx.svc.GetMessages(ctx, channelID)
	require.Nil(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "Alice Nguyen", messages[0].SenderName)
	assert.Equal(t, "Bob Sato", messages[1].SenderName)
}

func TestGetChannel_ReturnsSingleChannel(t *testing.T) {
	alice := chatEmployee("Alice", "Nguyen", "alice.nguyen@example.com")
	fx := newChatFixture(alice)
	ctx := context.Background()

	channel, err := fx.svc.CreateChannel(ctx, chat_dto.CreateChannelRequest{
		Name:        "general",
		ChannelType: "public",
		CreatorID:   alice.ID,
	})
	require.Nil(t, err)

	got, err := fx.svc.GetChannel(ctx, uuid.MustParse(channel.ID))
	require.Nil(t, err)
	assert.Equal(t, channel.ID, got.ID)
	assert.Equal(t, "general", got.Subject)
	assert.Equal(t, "public", got.ChannelType)
	assert.Equal(t, alice.ID.String(), got.CreatedBy)
}

func TestGetChannel_UnknownIDNotFound(t *testing.T) {
	fx := newChatFixture()

	got, err := fx.svc.GetChannel(context.Background(), uuid.New())

	assert.Nil(t, got)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusNotFound, err.Code)
}
