package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finzap/finzap/internal/common"
	"github.com/finzap/finzap/internal/model"
)

// ErrUnsupportedMessage indicates a webhook event that is not a plain text
// message (status updates, media, group events).
var ErrUnsupportedMessage = errors.New("unsupported message type")

// webhookEnvelope mirrors the Evolution API messages.upsert payload.
type webhookEnvelope struct {
	Event string `json:"event"`
	Data  struct {
		Key struct {
			RemoteJID string `json:"remoteJid"`
			FromMe    bool   `json:"fromMe"`
		} `json:"key"`
		PushName    string `json:"pushName"`
		MessageType string `json:"messageType"`
		Message     struct {
			Conversation        string `json:"conversation"`
			ExtendedTextMessage struct {
				Text string `json:"text"`
			} `json:"extendedTextMessage"`
		} `json:"message"`
		MessageTimestamp int64 `json:"messageTimestamp"`
	} `json:"data"`
}

// ParseWebhook decodes an Evolution API webhook body into an inbound
// message. Events that are not inbound text messages return
// ErrUnsupportedMessage so callers can acknowledge and drop them.
func ParseWebhook(body []byte) (*model.InboundMessage, error) {
	var envelope webhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidWebhook, err)
	}

	data := envelope.Data
	if data.Key.FromMe {
		return nil, ErrUnsupportedMessage
	}

	var text string
	switch data.MessageType {
	case "conversation":
		text = data.Message.Conversation
	case "extendedTextMessage":
		text = data.Message.ExtendedTextMessage.Text
	default:
		return nil, ErrUnsupportedMessage
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrUnsupportedMessage
	}

	sender := data.Key.RemoteJID
	if idx := strings.IndexByte(sender, '@'); idx >= 0 {
		sender = sender[:idx]
	}
	if sender == "" {
		return nil, fmt.Errorf("%w: missing sender", common.ErrInvalidWebhook)
	}

	ts := time.Now()
	if data.MessageTimestamp > 0 {
		ts = time.Unix(data.MessageTimestamp, 0)
	}

	return &model.InboundMessage{
		SenderID:   sender,
		SenderName: data.PushName,
		Text:       text,
		Timestamp:  ts,
	}, nil
}
