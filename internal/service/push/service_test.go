package push_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-feed/internal/service/push"
)

func newSenderForServer(t *testing.T, server *httptest.Server, accessToken string) *push.ExpoSender {
	t.Helper()
	sender, err := push.NewExpoSenderWithClient(server.URL, accessToken, resty.New())
	require.NoError(t, err)
	return sender
}

func TestExpoSender_Send(t *testing.T) {
	ctx := context.Background()
	msg := push.Message{
		Title: "New Like",
		Body:  "Bima liked your post",
		Data:  map[string]string{"type": "POST_LIKE"},
	}

	t.Run("Success", func(t *testing.T) {
		var received map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data":{"status":"ok","id":"ticket-123"}}`))
		}))
		defer server.Close()

		outcome := newSenderForServer(t, server, "").Send(ctx, "ExponentPushToken[abc]", msg)

		assert.True(t, outcome.Delivered)
		assert.Equal(t, "ticket-123", outcome.MessageID)
		assert.NoError(t, outcome.Err)
		assert.Equal(t, "ExponentPushToken[abc]", received["to"])
		assert.Equal(t, "default", received["sound"])
	})

	t.Run("Access Token Header", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
			w.Write([]byte(`{"data":{"status":"ok","id":"ticket-1"}}`))
		}))
		defer server.Close()

		outcome := newSenderForServer(t, server, "secret-token").Send(ctx, "ExponentPushToken[abc]", msg)

		assert.True(t, outcome.Delivered)
	})

	t.Run("Empty Token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected for an empty token")
		}))
		defer server.Close()

		outcome := newSenderForServer(t, server, "").Send(ctx, "  ", msg)

		assert.False(t, outcome.Delivered)
		assert.Error(t, outcome.Err)
	})

	t.Run("Non-2xx Status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("upstream unavailable"))
		}))
		defer server.Close()

		outcome := newSenderForServer(t, server, "").Send(ctx, "ExponentPushToken[abc]", msg)

		assert.False(t, outcome.Delivered)
		assert.ErrorContains(t, outcome.Err, "status 502")
	})

	t.Run("Rejected Ticket", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"status":"error","message":"\"ExponentPushToken[abc]\" is not a registered push notification recipient"}}`))
		}))
		defer server.Close()

		outcome := newSenderForServer(t, server, "").Send(ctx, "ExponentPushToken[abc]", msg)

		assert.False(t, outcome.Delivered)
		assert.ErrorContains(t, outcome.Err, "push rejected")
	})

	t.Run("Request-Level Errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"errors":[{"code":"PUSH_TOO_MANY_EXPERIENCE_IDS","message":"tokens belong to different apps"}]}`))
		}))
		defer server.Close()

		outcome := newSenderForServer(t, server, "").Send(ctx, "ExponentPushToken[abc]", msg)

		assert.False(t, outcome.Delivered)
		assert.ErrorContains(t, outcome.Err, "PUSH_TOO_MANY_EXPERIENCE_IDS")
	})

	t.Run("Malformed Response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		outcome := newSenderForServer(t, server, "").Send(ctx, "ExponentPushToken[abc]", msg)

		assert.False(t, outcome.Delivered)
		assert.Error(t, outcome.Err)
	})
}

func TestNewExpoSenderValidation(t *testing.T) {
	t.Run("Empty Endpoint", func(t *testing.T) {
		_, err := push.NewExpoSenderWithClient("", "", resty.New())
		assert.Error(t, err)
	})

	t.Run("Invalid Endpoint", func(t *testing.T) {
		_, err := push.NewExpoSenderWithClient("not a url", "", resty.New())
		assert.Error(t, err)
	})

	t.Run("Nil Client", func(t *testing.T) {
		_, err := push.NewExpoSenderWithClient("https://exp.host/--/api/v2/push/send", "", nil)
		assert.Error(t, err)
	})
}
