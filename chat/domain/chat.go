package domain

import (
	"sort"
	"strings"
	"time"
)

type MessageStatus string

// Receipt progression: sent -> delivered -> read. Upgrades only, a read
// message never drops back to delivered.
const (
	MessageSent      MessageStatus = "sent"
	MessageDelivered MessageStatus = "delivered"
	MessageRead      MessageStatus = "read"
)

// Rank orders receipt statuses so upgrades can be compared.
func (s MessageStatus) Rank() int {
	switch s {
	case MessageSent:
		return 1
	case MessageDelivered:
		return 2
	case MessageRead:
		return 3
	default:
		return 0
	}
}

// Message is a chat message stored in the realtime database under
// chats/{chatID}/messages.
type Message struct {
	ID        string        `json:"id"`
	ChatID    string        `json:"chatId"`
	SenderID  string        `json:"senderId"`
	Text      string        `json:"text"`
	Status    MessageStatus `json:"status"`
	Timestamp int64         `json:"timestamp"`
}

// SentAt returns the message timestamp as a time.
func (m *Message) SentAt() time.Time {
	return time.UnixMilli(m.Timestamp)
}

type PresenceStatus string

const (
	PresenceOnline  PresenceStatus = "online"
	PresenceOffline PresenceStatus = "offline"
)

// PresenceRecord lives at status/{userID} in the realtime database. LastSeen
// is epoch milliseconds, refreshed by the session heartbeat.
type PresenceRecord struct {
	Status   PresenceStatus `json:"status"`
	LastSeen int64          `json:"lastSeen"`
}

// ChatID derives the conversation key for two participants. The uids are
// sorted so both sides compute the same key regardless of who opens the chat.
func ChatID(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)

	return strings.Join(ids, "_")
}
