package model

import "time"

// MessageDirection distinguishes inbound from outbound messages.
type MessageDirection string

// Message directions.
const (
	DirectionIncoming MessageDirection = "incoming"
	DirectionOutgoing MessageDirection = "outgoing"
)

// MessageType describes what an outbound message carries.
type MessageType string

// Message types.
const (
	MessageTypeText    MessageType = "text"
	MessageTypeImage   MessageType = "image"
	MessageTypeExpense MessageType = "expense"
	MessageTypeReport  MessageType = "report"
	MessageTypeOther   MessageType = "other"
)

// Message is one entry in the per-contact conversation audit trail.
type Message struct {
	Timestamp time.Time
	ID        string
	Content   string
	ContactID string
	Direction MessageDirection
	Type      MessageType
}
