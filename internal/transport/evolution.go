// Package transport implements the Evolution API client used to exchange
// WhatsApp messages, and the decoding of its webhook payloads.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/finzap/finzap/internal/common"
)

// Client talks to an Evolution API instance.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	instanceID string
}

// NewClient creates an Evolution API client.
func NewClient(baseURL, apiKey, instanceID string) (*Client, error) {
	if baseURL == "" || apiKey == "" || instanceID == "" {
		return nil, fmt.Errorf("%w: evolution url, api key and instance id are required", common.ErrMissingConfig)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		instanceID: instanceID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type textMessage struct {
	Text string `json:"text"`
}

type sendTextRequest struct {
	Number      string      `json:"number"`
	TextMessage textMessage `json:"textMessage"`
}

type mediaMessage struct {
	MediaType string `json:"mediaType"`
	FileName  string `json:"fileName"`
	Caption   string `json:"caption"`
	Media     string `json:"media"`
}

type sendMediaRequest struct {
	Number       string       `json:"number"`
	MediaMessage mediaMessage `json:"mediaMessage"`
}

// SendText delivers a text message to a phone number. Transient failures
// are retried with backoff; a final failure is returned for logging but
// carries no state to roll back.
func (c *Client) SendText(ctx context.Context, recipient, text string) error {
	payload := sendTextRequest{
		Number:      NormalizePhone(recipient),
		TextMessage: textMessage{Text: text},
	}
	url := fmt.Sprintf("%s/message/sendText/%s", c.baseURL, c.instanceID)
	return c.post(ctx, url, payload)
}

// SendImage delivers an image message with a caption.
func (c *Client) SendImage(ctx context.Context, recipient, imageURL, caption string) error {
	payload := sendMediaRequest{
		Number: NormalizePhone(recipient),
		MediaMessage: mediaMessage{
			MediaType: "image",
			FileName:  fmt.Sprintf("chart-%d.jpg", time.Now().UnixMilli()),
			Caption:   caption,
			Media:     imageURL,
		},
	}
	url := fmt.Sprintf("%s/message/sendMedia/%s", c.baseURL, c.instanceID)
	return c.post(ctx, url, payload)
}

// ConnectionState reports the WhatsApp instance connection state.
func (c *Client) ConnectionState(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/instance/connectionState/%s", c.baseURL, c.instanceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrTransportFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status %d: %s", common.ErrTransportFailed, resp.StatusCode, string(body))
	}

	var state struct {
		Instance struct {
			State string `json:"state"`
		} `json:"instance"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return "", fmt.Errorf("failed to decode connection state: %w", err)
	}
	return state.Instance.State, nil
}

func (c *Client) post(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	return common.WithRetry(ctx, func() error {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if reqErr != nil {
			return &common.RetryableError{Err: reqErr, Retryable: false}
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("apikey", c.apiKey)

		resp, doErr := c.httpClient.Do(req)
		if doErr != nil {
			return fmt.Errorf("%w: %v", common.ErrTransportFailed, doErr)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("%w: status %d", common.ErrTransportFailed, resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
			respBody, _ := io.ReadAll(resp.Body)
			return &common.RetryableError{
				Err:       fmt.Errorf("%w: status %d: %s", common.ErrTransportFailed, resp.StatusCode, string(respBody)),
				Retryable: false,
			}
		}
		return nil
	}, common.RetryOptions{MaxAttempts: 3})
}

// NormalizePhone strips everything but digits and ensures the Brazilian
// country code prefix.
func NormalizePhone(phoneNumber string) string {
	var b strings.Builder
	for _, r := range phoneNumber {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if !strings.HasPrefix(cleaned, "55") {
		cleaned = "55" + cleaned
	}
	return cleaned
}
