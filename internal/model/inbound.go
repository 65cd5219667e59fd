package model

import "time"

// InboundMessage is one text message received from the transport.
type InboundMessage struct {
	Timestamp  time.Time
	Text       string
	SenderID   string
	SenderName string
}
