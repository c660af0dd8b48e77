package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kawerify-tech/flo-orders-app-sub000/chat/domain"
	"github.com/kawerify-tech/flo-orders-app-sub000/logger"
	loggerMocks "github.com/kawerify-tech/flo-orders-app-sub000/logger/mocks"
)

// fakeChat is an in-memory stand-in for the realtime database.
type fakeChat struct {
	mu       sync.Mutex
	presence map[string]*domain.PresenceRecord
	messages map[string][]*domain.Message

	nextID int
}

func newFakeChat() *fakeChat {
	return &fakeChat{
		presence: map[string]*domain.PresenceRecord{},
		messages: map[string][]*domain.Message{},
	}
}

func (f *fakeChat) SetPresence(ctx context.Context, userID string, record *domain.PresenceRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.presence[userID] = record

	return nil
}

func (f *fakeChat) GetPresence(ctx context.Context, userID string) (*domain.PresenceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.presence[userID]
	if !ok {
		return &domain.PresenceRecord{Status: domain.PresenceOffline}, nil
	}

	return record, nil
}

func (f *fakeChat) ListPresence(ctx context.Context) (map[string]*domain.PresenceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]*domain.PresenceRecord, len(f.presence))
	for k, v := range f.presence {
		out[k] = v
	}

	return out, nil
}

func (f *fakeChat) PushMessage(ctx context.Context, msg *domain.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	msg.ID = string(rune('a' + f.nextID))
	f.messages[msg.ChatID] = append(f.messages[msg.ChatID], msg)

	return nil
}

func (f *fakeChat) ListMessages(ctx context.Context, chatID string) ([]*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*domain.Message, len(f.messages[chatID]))
	copy(out, f.messages[chatID])

	return out, nil
}

func (f *fakeChat) UpgradeMessageStatus(ctx context.Context, chatID, messageID string, to domain.MessageStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, msg := range f.messages[chatID] {
		if msg.ID == messageID && to.Rank() > msg.Status.Rank() {
			msg.Status = to
		}
	}

	return nil
}

func newTestService(fake *fakeChat, heartbeat, deliveryDelay time.Duration) *service {
	return &service{
		loggerProvider: func(ctx context.Context) logger.ILogger {
			return &loggerMocks.ILogger{}
		},
		chatDAL:       fake,
		heartbeat:     heartbeat,
		deliveryDelay: deliveryDelay,
		cacheDir:      "",
		sessions:      map[string]context.CancelFunc{},
	}
}

func TestChatID(t *testing.T) {
	assert.Equal(t, "alice_bob", domain.ChatID("bob", "alice"))
	assert.Equal(t, "alice_bob", domain.ChatID("alice", "bob"))
}

func TestService_PresenceSession(t *testing.T) {
	ctx := context.Background()
	fake := newFakeChat()
	s := newTestService(fake, 10*time.Millisecond, 0)
	s.cacheDir = t.TempDir()

	assert.NoError(t, s.Establish(ctx, "alice"))

	record, err := s.Presence(ctx, "alice")
	assert.NoError(t, err)
	assert.Equal(t, domain.PresenceOnline, record.Status)

	// the heartbeat keeps lastSeen fresh while the session is alive
	first := record.LastSeen

	assert.Eventually(t, func() bool {
		record, err := s.Presence(ctx, "alice")
		return err == nil && record.LastSeen > first
	}, time.Second, 5*time.Millisecond)

	assert.NoError(t, s.Terminate(ctx, "alice"))

	record, err = s.Presence(ctx, "alice")
	assert.NoError(t, err)
	assert.Equal(t, domain.PresenceOffline, record.Status)
}

func TestService_SweepMarksStaleSessionsOffline(t *testing.T) {
	ctx := context.Background()
	fake := newFakeChat()
	s := newTestService(fake, 50*time.Millisecond, 0)

	stale := time.Now().Add(-time.Second).UnixMilli()

	_ = fake.SetPresence(ctx, "alice", &domain.PresenceRecord{Status: domain.PresenceOnline, LastSeen: stale})
	_ = fake.SetPresence(ctx, "bob", &domain.PresenceRecord{Status: domain.PresenceOnline, LastSeen: time.Now().UnixMilli()})

	s.sweep(ctx)

	alice, _ := s.Presence(ctx, "alice")
	assert.Equal(t, domain.PresenceOffline, alice.Status)
	assert.Equal(t, stale, alice.LastSeen)

	bob, _ := s.Presence(ctx, "bob")
	assert.Equal(t, domain.PresenceOnline, bob.Status)
}

func TestService_MessageReceipts(t *testing.T) {
	ctx := context.Background()
	fake := newFakeChat()
	s := newTestService(fake, time.Minute, time.Millisecond)
	s.cacheDir = t.TempDir()

	msg, err := s.SendMessage(ctx, "alice", "bob", "pump 3 is free")
	assert.NoError(t, err)
	assert.Equal(t, domain.MessageSent, msg.Status)
	assert.Equal(t, "alice_bob", msg.ChatID)

	// delivered after the delivery delay
	assert.Eventually(t, func() bool {
		msgs, err := fake.ListMessages(ctx, msg.ChatID)
		return err == nil && len(msgs) == 1 && msgs[0].Status == domain.MessageDelivered
	}, time.Second, 5*time.Millisecond)

	// the sender reading back does not mark their own message read
	msgs, err := s.GetMessages(ctx, "alice", "bob")
	assert.NoError(t, err)
	assert.Equal(t, domain.MessageDelivered, msgs[0].Status)

	// the recipient fetching marks it read
	msgs, err = s.GetMessages(ctx, "bob", "alice")
	assert.NoError(t, err)
	assert.Equal(t, domain.MessageRead, msgs[0].Status)

	stored, _ := fake.ListMessages(ctx, msg.ChatID)
	assert.Equal(t, domain.MessageRead, stored[0].Status)
}

func TestService_ReadReceiptNeverDowngrades(t *testing.T) {
	ctx := context.Background()
	fake := newFakeChat()
	s := newTestService(fake, time.Minute, 20*time.Millisecond)
	s.cacheDir = t.TempDir()

	msg, err := s.SendMessage(ctx, "alice", "bob", "hello")
	assert.NoError(t, err)

	// bob reads before the delivery receipt fires
	_, err = s.GetMessages(ctx, "bob", "alice")
	assert.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	stored, _ := fake.ListMessages(ctx, msg.ChatID)
	assert.Equal(t, domain.MessageRead, stored[0].Status)
}

func TestService_CacheServesWhenBackendFails(t *testing.T) {
	ctx := context.Background()
	fake := newFakeChat()
	s := newTestService(fake, time.Minute, time.Minute)
	s.cacheDir = t.TempDir()

	_, err := s.SendMessage(ctx, "alice", "bob", "cached line")
	assert.NoError(t, err)

	// a successful fetch fills the cache
	msgs, err := s.GetMessages(ctx, "bob", "alice")
	assert.NoError(t, err)
	assert.Len(t, msgs, 1)

	cached, err := s.readCache(domain.ChatID("alice", "bob"))
	assert.NoError(t, err)
	assert.Len(t, cached, 1)
	assert.Equal(t, "cached line", cached[0].Text)
}
