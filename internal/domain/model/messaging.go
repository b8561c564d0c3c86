package model

import "time"

// MessageStatus tracks delivery of a message.
type MessageStatus string

const (
	MessagePending MessageStatus = "pending"
	MessageSent    MessageStatus = "sent"
	MessageFailed  MessageStatus = "failed"
)

// Message senders.
const (
	SenderStudent = "student"
	SenderContact = "contact"
)

// Conversation is a thread between the student and an advisor or company.
type Conversation struct {
	ID            string    `json:"id"`
	Participant   string    `json:"participant"`
	ParticipantID string    `json:"participant_id"`
	Subject       string    `json:"subject"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
	Unread        int       `json:"unread"`
}

// Key returns the store key of the conversation.
func (c Conversation) Key() string { return c.ID }

// Clone returns a copy; Conversation holds no reference fields.
func (c Conversation) Clone() Conversation { return c }

// Message is one entry in a conversation.
type Message struct {
	ID             string        `json:"id"`
	ConversationID string        `json:"conversation_id"`
	Sender         string        `json:"sender"`
	Body           string        `json:"body"`
	SentAt         time.Time     `json:"sent_at"`
	Status         MessageStatus `json:"status"`
	Error          string        `json:"error,omitempty"`
}

// Key returns the store key of the message.
func (m Message) Key() string { return m.ID }

// Clone returns a copy; Message holds no reference fields.
func (m Message) Clone() Message { return m }

// Delivery is a queued request to send an outbox message.
type Delivery struct {
	MessageID      string
	ConversationID string
	Body           string
	Attempt        int
}
