package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"craftlab/careers/internal/models"
	"craftlab/careers/internal/services"
)

func TestMessageHandler_Send(t *testing.T) {
	env := newTestEnv(t)
	conversation, sender := uuid.New(), uuid.New()

	resp, body := env.do(t, http.MethodPost, "/api/v1/messages", models.MessageRequest{
		ConversationID: conversation.String(),
		SenderID:       sender.String(),
		Body:           "Is the placement paid?",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	msg := decode[models.Message](t, body)
	assert.NotEqual(t, uuid.Nil, msg.ID)
	require.Len(t, env.messaging.sent, 1)
	assert.Equal(t, conversation, env.messaging.sent[0].ConversationID)
	assert.Equal(t, sender, env.messaging.sent[0].SenderID)
}

func TestMessageHandler_SendErrors(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodPost, "/api/v1/messages", models.MessageRequest{
		ConversationID: "c",
		SenderID:       uuid.NewString(),
		Body:           "hi",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	env.messaging.sendErr = fmt.Errorf("%w: body is required", services.ErrInvalidMessage)
	resp, body := env.do(t, http.MethodPost, "/api/v1/messages", models.MessageRequest{
		ConversationID: uuid.NewString(),
		SenderID:       uuid.NewString(),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "body is required")

	env.messaging.sendErr = errors.New("database unavailable")
	resp, _ = env.do(t, http.MethodPost, "/api/v1/messages", models.MessageRequest{
		ConversationID: uuid.NewString(),
		SenderID:       uuid.NewString(),
		Body:           "hi",
	})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestMessageHandler_History(t *testing.T) {
	env := newTestEnv(t)
	conversation := uuid.New()
	env.messaging.history = []models.Message{{ID: uuid.New(), ConversationID: conversation, Body: "first"}}

	resp, body := env.do(t, http.MethodGet, "/api/v1/conversations/"+conversation.String()+"/messages", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]models.Message](t, body), 1)
	assert.Equal(t, defaultHistoryLimit, env.messaging.lastLimit)

	env.do(t, http.MethodGet, "/api/v1/conversations/"+conversation.String()+"/messages?limit=10", nil)
	assert.Equal(t, 10, env.messaging.lastLimit)

	env.do(t, http.MethodGet, "/api/v1/conversations/"+conversation.String()+"/messages?limit=100000", nil)
	assert.Equal(t, defaultHistoryLimit, env.messaging.lastLimit)

	env.messaging.history = nil
	_, body = env.do(t, http.MethodGet, "/api/v1/conversations/"+conversation.String()+"/messages", nil)
	assert.JSONEq(t, `[]`, string(body))
}

func TestMessageHandler_Stream(t *testing.T) {
	env := newTestEnv(t)
	conversation := uuid.New()

	first := models.Message{ID: uuid.New(), ConversationID: conversation, Body: "hello"}
	second := models.Message{ID: uuid.New(), ConversationID: conversation, Body: "still there?"}

	env.messaging.stream = make(chan models.Message, 2)
	env.messaging.stream <- first
	env.messaging.stream <- second
	close(env.messaging.stream)

	resp, body := env.do(t, http.MethodGet, "/api/v1/conversations/"+conversation.String()+"/stream", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	out := string(body)
	assert.Contains(t, out, "id: "+first.ID.String()+"\nevent: message\ndata: {")
	assert.Contains(t, out, `"body":"hello"`)
	assert.Contains(t, out, `"body":"still there?"`)
	assert.Less(t, strings.Index(out, "hello"), strings.Index(out, "still there?"))

	require.NotNil(t, env.messaging.subCtx)
	assert.Eventually(t, func() bool { return env.messaging.subCtx.Err() != nil }, time.Second, 10*time.Millisecond)
}

func TestMessageHandler_StreamErrors(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodGet, "/api/v1/conversations/nope/stream", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	env.messaging.subErr = errors.New("redis down")
	resp, body := env.do(t, http.MethodGet, "/api/v1/conversations/"+uuid.NewString()+"/stream", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error": "Failed to open message stream"}`, string(body))
}
