package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already normalized", input: "5511999990000", want: "5511999990000"},
		{name: "strips formatting", input: "+55 (11) 99999-0000", want: "5511999990000"},
		{name: "adds country code", input: "11999990000", want: "5511999990000"},
		{name: "empty", input: "", want: "55"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.input))
		})
	}
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient("", "key", "instance")
	assert.Error(t, err)

	_, err = NewClient("http://localhost", "", "instance")
	assert.Error(t, err)

	client, err := NewClient("http://localhost/", "key", "instance")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost", client.baseURL)
}

func TestSendText(t *testing.T) {
	var gotPath, gotKey string
	var gotBody sendTextRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("apikey")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "secret", "my-instance")
	require.NoError(t, err)

	err = client.SendText(context.Background(), "11 99999-0000", "olá")
	require.NoError(t, err)

	assert.Equal(t, "/message/sendText/my-instance", gotPath)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "5511999990000", gotBody.Number)
	assert.Equal(t, "olá", gotBody.TextMessage.Text)
}

func TestSendTextClientErrorDoesNotRetry(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "secret", "my-instance")
	require.NoError(t, err)

	err = client.SendText(context.Background(), "5511999990000", "olá")
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestConnectionState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/instance/connectionState/my-instance", r.URL.Path)
		_, _ = w.Write([]byte(`{"instance":{"state":"open"}}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "secret", "my-instance")
	require.NoError(t, err)

	state, err := client.ConnectionState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "open", state)
}

func TestParseWebhook(t *testing.T) {
	t.Run("conversation message", func(t *testing.T) {
		body := []byte(`{
			"event": "messages.upsert",
			"data": {
				"key": {"remoteJid": "5511999990000@s.whatsapp.net", "fromMe": false},
				"pushName": "Maria",
				"messageType": "conversation",
				"message": {"conversation": "camisa 110"},
				"messageTimestamp": 1741791600
			}
		}`)

		in, err := ParseWebhook(body)
		require.NoError(t, err)
		assert.Equal(t, "5511999990000", in.SenderID)
		assert.Equal(t, "Maria", in.SenderName)
		assert.Equal(t, "camisa 110", in.Text)
		assert.Equal(t, time.Unix(1741791600, 0), in.Timestamp)
	})

	t.Run("extended text message", func(t *testing.T) {
		body := []byte(`{
			"data": {
				"key": {"remoteJid": "5511999990000@s.whatsapp.net"},
				"messageType": "extendedTextMessage",
				"message": {"extendedTextMessage": {"text": "quanto gastei esse mês?"}},
				"messageTimestamp": 1741791600
			}
		}`)

		in, err := ParseWebhook(body)
		require.NoError(t, err)
		assert.Equal(t, "quanto gastei esse mês?", in.Text)
	})

	t.Run("own message is dropped", func(t *testing.T) {
		body := []byte(`{
			"data": {
				"key": {"remoteJid": "5511999990000@s.whatsapp.net", "fromMe": true},
				"messageType": "conversation",
				"message": {"conversation": "oi"}
			}
		}`)

		_, err := ParseWebhook(body)
		assert.ErrorIs(t, err, ErrUnsupportedMessage)
	})

	t.Run("media message is dropped", func(t *testing.T) {
		body := []byte(`{
			"data": {
				"key": {"remoteJid": "5511999990000@s.whatsapp.net"},
				"messageType": "imageMessage"
			}
		}`)

		_, err := ParseWebhook(body)
		assert.ErrorIs(t, err, ErrUnsupportedMessage)
	})

	t.Run("empty text is dropped", func(t *testing.T) {
		body := []byte(`{
			"data": {
				"key": {"remoteJid": "5511999990000@s.whatsapp.net"},
				"messageType": "conversation",
				"message": {"conversation": "   "}
			}
		}`)

		_, err := ParseWebhook(body)
		assert.ErrorIs(t, err, ErrUnsupportedMessage)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := ParseWebhook([]byte("not json"))
		assert.Error(t, err)
	})
}
