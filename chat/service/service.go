package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/kawerify-tech/flo-orders-app-sub000/chat/dal"
	"github.com/kawerify-tech/flo-orders-app-sub000/chat/dal/iface"
	"github.com/kawerify-tech/flo-orders-app-sub000/chat/domain"
	"github.com/kawerify-tech/flo-orders-app-sub000/common"
	"github.com/kawerify-tech/flo-orders-app-sub000/framework/connection"
	"github.com/kawerify-tech/flo-orders-app-sub000/logger"
)

const (
	defaultHeartbeat     = 30 * time.Second
	defaultDeliveryDelay = 2 * time.Second

	cacheLimit = 500
)

//go:generate mockery --name ChatService --output ./mocks
type ChatService interface {
	Establish(ctx context.Context, userID string) error
	Terminate(ctx context.Context, userID string) error
	Presence(ctx context.Context, userID string) (*domain.PresenceRecord, error)
	SendMessage(ctx context.Context, senderID, recipientID, text string) (*domain.Message, error)
	GetMessages(ctx context.Context, userID, peerID string) ([]*domain.Message, error)
	RunSweeper(ctx context.Context)
}

type service struct {
	loggerProvider logger.Provider
	chatDAL        iface.Chat

	heartbeat     time.Duration
	deliveryDelay time.Duration
	cacheDir      string

	mu       sync.Mutex
	sessions map[string]context.CancelFunc
}

func NewService(log logger.Provider, conn *connection.Connection) ChatService {
	return &service{
		loggerProvider: log,
		chatDAL:        dal.NewChatRTDB(conn.RealtimeDB),
		heartbeat:      durationEnv("FLO_CHAT_HEARTBEAT", defaultHeartbeat),
		deliveryDelay:  durationEnv("FLO_CHAT_DELIVERY_DELAY", defaultDeliveryDelay),
		cacheDir:       os.TempDir(),
		sessions:       map[string]context.CancelFunc{},
	}
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(common.GetEnv(key, fallback.String()))
	if err != nil {
		return fallback
	}

	return d
}

// Establish marks the user online and starts a heartbeat that refreshes
// lastSeen every cycle. A session that stops heartbeating is swept offline;
// establishing again replaces any previous session.
func (s *service) Establish(ctx context.Context, userID string) error {
	if err := s.chatDAL.SetPresence(ctx, userID, &domain.PresenceRecord{
		Status:   domain.PresenceOnline,
		LastSeen: time.Now().UnixMilli(),
	}); err != nil {
		return err
	}

	// The heartbeat outlives the request, so it runs on its own context.
	sessionCtx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	if prev, ok := s.sessions[userID]; ok {
		prev()
	}

	s.sessions[userID] = cancel
	s.mu.Unlock()

	go s.beat(sessionCtx, userID)

	return nil
}

func (s *service) beat(ctx context.Context, userID string) {
	ticker := time.NewTicker(s.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.chatDAL.SetPresence(ctx, userID, &domain.PresenceRecord{
				Status:   domain.PresenceOnline,
				LastSeen: time.Now().UnixMilli(),
			}); err != nil {
				s.loggerProvider(ctx).Errorf("presence heartbeat for %s: %v", userID, err)
			}
		}
	}
}

// Terminate stops the user's heartbeat and marks them offline.
func (s *service) Terminate(ctx context.Context, userID string) error {
	s.mu.Lock()
	if cancel, ok := s.sessions[userID]; ok {
		cancel()
		delete(s.sessions, userID)
	}
	s.mu.Unlock()

	return s.chatDAL.SetPresence(ctx, userID, &domain.PresenceRecord{
		Status:   domain.PresenceOffline,
		LastSeen: time.Now().UnixMilli(),
	})
}

func (s *service) Presence(ctx context.Context, userID string) (*domain.PresenceRecord, error) {
	return s.chatDAL.GetPresence(ctx, userID)
}

// RunSweeper marks users offline once their lastSeen lapses a heartbeat
// cycle. It blocks until ctx is cancelled.
func (s *service) RunSweeper(ctx context.Context) {
	ticker := time.NewTicker(s.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *service) sweep(ctx context.Context) {
	records, err := s.chatDAL.ListPresence(ctx)
	if err != nil {
		s.loggerProvider(ctx).Errorf("presence sweep: %v", err)
		return
	}

	cutoff := time.Now().Add(-s.heartbeat).UnixMilli()

	for userID, record := range records {
		if record.Status != domain.PresenceOnline || record.LastSeen >= cutoff {
			continue
		}

		if err := s.chatDAL.SetPresence(ctx, userID, &domain.PresenceRecord{
			Status:   domain.PresenceOffline,
			LastSeen: record.LastSeen,
		}); err != nil {
			s.loggerProvider(ctx).Errorf("presence sweep for %s: %v", userID, err)
		}
	}
}

// SendMessage appends a message with a sent receipt and schedules the upgrade
// to delivered after the delivery delay. The upgrade is best effort and never
// downgrades a message the recipient already read.
func (s *service) SendMessage(ctx context.Context, senderID, recipientID, text string) (*domain.Message, error) {
	msg := &domain.Message{
		ChatID:    domain.ChatID(senderID, recipientID),
		SenderID:  senderID,
		Text:      text,
		Status:    domain.MessageSent,
		Timestamp: time.Now().UnixMilli(),
	}

	if err := s.chatDAL.PushMessage(ctx, msg); err != nil {
		return nil, err
	}

	log := s.loggerProvider(ctx)

	time.AfterFunc(s.deliveryDelay, func() {
		ctx := context.Background()

		if err := s.chatDAL.UpgradeMessageStatus(ctx, msg.ChatID, msg.ID, domain.MessageDelivered); err != nil {
			log.Errorf("delivery receipt for %s: %v", msg.ID, err)
		}
	})

	return msg, nil
}

// GetMessages returns the conversation between userID and peerID, oldest
// first. Messages the caller did not author are marked read. When the
// realtime database is unreachable the local cache is served instead.
func (s *service) GetMessages(ctx context.Context, userID, peerID string) ([]*domain.Message, error) {
	chatID := domain.ChatID(userID, peerID)

	messages, err := s.chatDAL.ListMessages(ctx, chatID)
	if err != nil {
		if cached, cerr := s.readCache(chatID); cerr == nil {
			return cached, nil
		}

		return nil, err
	}

	for _, msg := range messages {
		if msg.SenderID == userID || msg.Status == domain.MessageRead {
			continue
		}

		if err := s.chatDAL.UpgradeMessageStatus(ctx, chatID, msg.ID, domain.MessageRead); err != nil {
			s.loggerProvider(ctx).Errorf("read receipt for %s: %v", msg.ID, err)
			continue
		}

		msg.Status = domain.MessageRead
	}

	s.writeCache(ctx, chatID, messages)

	return messages, nil
}

func (s *service) cachePath(chatID string) string {
	return filepath.Join(s.cacheDir, fmt.Sprintf("chat_cache:%s", chatID))
}

func (s *service) writeCache(ctx context.Context, chatID string, messages []*domain.Message) {
	if len(messages) > cacheLimit {
		messages = messages[len(messages)-cacheLimit:]
	}

	data, err := json.Marshal(messages)
	if err == nil {
		err = os.WriteFile(s.cachePath(chatID), data, 0o644)
	}

	if err != nil {
		s.loggerProvider(ctx).Warningf("chat cache write for %s: %v", chatID, err)
	}
}

func (s *service) readCache(chatID string) ([]*domain.Message, error) {
	data, err := os.ReadFile(s.cachePath(chatID))
	if err != nil {
		return nil, err
	}

	var messages []*domain.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}
