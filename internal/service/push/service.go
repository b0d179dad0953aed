package push

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultSendTimeout = 10 * time.Second

// Message is one push payload: title/body are shown by the platform, Data is
// an opaque key-value payload for the receiving client (deep links etc).
type Message struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// DeliveryOutcome is the discriminated result of a single send attempt. A
// sender never returns a raw error past its boundary; callers inspect the
// outcome and decide what to log.
type DeliveryOutcome struct {
	Delivered bool
	MessageID string
	Err       error
}

// Sender performs one external push-delivery attempt. Stateless; no retries.
type Sender interface {
	Send(ctx context.Context, token string, msg Message) DeliveryOutcome
}

type expoRequest struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
	Sound string            `json:"sound,omitempty"`
}

type expoResponse struct {
	Data struct {
		Status  string `json:"status"`
		ID      string `json:"id"`
		Message string `json:"message"`
	} `json:"data"`
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// ExpoSender delivers to an Expo-compatible push endpoint over HTTP.
type ExpoSender struct {
	client      *resty.Client
	endpoint    string
	accessToken string
}

func NewExpoSender(endpoint, accessToken string, timeout time.Duration) (*ExpoSender, error) {
	client := resty.New()
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	client.SetTimeout(timeout)
	client.SetRetryCount(0)

	return NewExpoSenderWithClient(endpoint, accessToken, client)
}

func NewExpoSenderWithClient(endpoint, accessToken string, client *resty.Client) (*ExpoSender, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, fmt.Errorf("push endpoint is required")
	}
	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return nil, fmt.Errorf("invalid push endpoint: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("resty client is required")
	}

	return &ExpoSender{
		client:      client,
		endpoint:    trimmed,
		accessToken: accessToken,
	}, nil
}

func (s *ExpoSender) Send(ctx context.Context, token string, msg Message) DeliveryOutcome {
	if strings.TrimSpace(token) == "" {
		return DeliveryOutcome{Err: fmt.Errorf("push token is empty")}
	}

	reqBody := expoRequest{
		To:    token,
		Title: msg.Title,
		Body:  msg.Body,
		Data:  msg.Data,
		Sound: "default",
	}

	req := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody)
	if s.accessToken != "" {
		req.SetHeader("Authorization", "Bearer "+s.accessToken)
	}

	response, err := req.Post(s.endpoint)
	if err != nil {
		return DeliveryOutcome{Err: fmt.Errorf("push request failed: %w", err)}
	}

	statusCode := response.StatusCode()
	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return DeliveryOutcome{Err: fmt.Errorf("push endpoint returned status %d: %s", statusCode, strings.TrimSpace(response.String()))}
	}

	var parsed expoResponse
	if err := json.Unmarshal(response.Body(), &parsed); err != nil {
		return DeliveryOutcome{Err: fmt.Errorf("unexpected push response: %w", err)}
	}
	if len(parsed.Errors) > 0 {
		return DeliveryOutcome{Err: fmt.Errorf("push rejected: %s: %s", parsed.Errors[0].Code, parsed.Errors[0].Message)}
	}
	if parsed.Data.Status != "" && parsed.Data.Status != "ok" {
		return DeliveryOutcome{Err: fmt.Errorf("push rejected: %s", parsed.Data.Message)}
	}

	return DeliveryOutcome{
		Delivered: true,
		MessageID: parsed.Data.ID,
	}
}
