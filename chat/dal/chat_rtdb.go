package dal

import (
	"context"
	"fmt"
	"sort"

	"firebase.google.com/go/v4/db"

	"github.com/kawerify-tech/flo-orders-app-sub000/chat/domain"
	"github.com/kawerify-tech/flo-orders-app-sub000/framework/connection"
)

const (
	statusPath = "status"
	chatsPath  = "chats"
)

// ChatRTDB stores presence records and chat messages in the firebase
// realtime database.
type ChatRTDB struct {
	rtdbClientFun connection.RealtimeDBFromContextFun
}

// NewChatRTDB returns a new ChatRTDB using given client.
func NewChatRTDB(fun connection.RealtimeDBFromContextFun) *ChatRTDB {
	return &ChatRTDB{
		rtdbClientFun: fun,
	}
}

func (d *ChatRTDB) presenceRef(ctx context.Context, userID string) *db.Ref {
	return d.rtdbClientFun(ctx).NewRef(fmt.Sprintf("%s/%s", statusPath, userID))
}

func (d *ChatRTDB) messagesRef(ctx context.Context, chatID string) *db.Ref {
	return d.rtdbClientFun(ctx).NewRef(fmt.Sprintf("%s/%s/messages", chatsPath, chatID))
}

// SetPresence overwrites the user's presence record.
func (d *ChatRTDB) SetPresence(ctx context.Context, userID string, record *domain.PresenceRecord) error {
	return d.presenceRef(ctx, userID).Set(ctx, record)
}

// GetPresence returns the user's presence record. A user with no record yet
// reads as offline.
func (d *ChatRTDB) GetPresence(ctx context.Context, userID string) (*domain.PresenceRecord, error) {
	var record domain.PresenceRecord

	if err := d.presenceRef(ctx, userID).Get(ctx, &record); err != nil {
		return nil, err
	}

	if record.Status == "" {
		record.Status = domain.PresenceOffline
	}

	return &record, nil
}

// ListPresence returns every presence record, keyed by user id.
func (d *ChatRTDB) ListPresence(ctx context.Context) (map[string]*domain.PresenceRecord, error) {
	var records map[string]*domain.PresenceRecord

	if err := d.rtdbClientFun(ctx).NewRef(statusPath).Get(ctx, &records); err != nil {
		return nil, err
	}

	return records, nil
}

// PushMessage appends the message to its chat and fills in the generated id.
func (d *ChatRTDB) PushMessage(ctx context.Context, msg *domain.Message) error {
	ref, err := d.messagesRef(ctx, msg.ChatID).Push(ctx, nil)
	if err != nil {
		return err
	}

	msg.ID = ref.Key

	return ref.Set(ctx, msg)
}

// ListMessages returns the chat's messages ordered by send time.
func (d *ChatRTDB) ListMessages(ctx context.Context, chatID string) ([]*domain.Message, error) {
	var raw map[string]*domain.Message

	if err := d.messagesRef(ctx, chatID).Get(ctx, &raw); err != nil {
		return nil, err
	}

	messages := make([]*domain.Message, 0, len(raw))

	for id, msg := range raw {
		msg.ID = id
		messages = append(messages, msg)
	}

	sort.Slice(messages, func(i, j int) bool {
		return messages[i].Timestamp < messages[j].Timestamp
	})

	return messages, nil
}

// UpgradeMessageStatus raises a message's receipt status. Downgrades are
// silently ignored, so a late delivery receipt cannot undo a read one.
func (d *ChatRTDB) UpgradeMessageStatus(ctx context.Context, chatID, messageID string, to domain.MessageStatus) error {
	ref := d.messagesRef(ctx, chatID).Child(messageID)

	return ref.Transaction(ctx, func(node db.TransactionNode) (interface{}, error) {
		var msg domain.Message
		if err := node.Unmarshal(&msg); err != nil {
			return nil, err
		}

		if to.Rank() > msg.Status.Rank() {
			msg.Status = to
		}

		return &msg, nil
	})
}
