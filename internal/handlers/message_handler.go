package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"craftlab/careers/internal/models"
	"craftlab/careers/internal/services"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
	streamKeepAlive     = 15 * time.Second
)

type MessageHandler struct {
	messagingService services.MessagingService
	keepAlive        time.Duration
	logger           *zap.Logger
}

func NewMessageHandler(messagingService services.MessagingService, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{
		messagingService: messagingService,
		keepAlive:        streamKeepAlive,
		logger:           logger.Named("messages"),
	}
}

// HandleSend handles POST /messages
func (h *MessageHandler) HandleSend(c *fiber.Ctx) error {
	var req models.MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	conversationID, err := uuid.Parse(req.ConversationID)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid conversation_id format")
	}

	senderID, err := uuid.Parse(req.SenderID)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid sender_id format")
	}

	msg := &models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           req.Body,
	}

	if err := h.messagingService.Send(c.UserContext(), msg); err != nil {
		if errors.Is(err, services.ErrInvalidMessage) {
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		}
		return repositoryError(c, h.logger, err, "Conversation not found", "Failed to send message")
	}

	return c.Status(fiber.StatusCreated).JSON(msg)
}

// HandleHistory handles GET /conversations/:id/messages?limit=
func (h *MessageHandler) HandleHistory(c *fiber.Ctx) error {
	conversationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid conversation ID format")
	}

	limit := c.QueryInt("limit", defaultHistoryLimit)
	if limit <= 0 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}

	msgs, err := h.messagingService.History(c.UserContext(), conversationID, limit)
	if err != nil {
		return repositoryError(c, h.logger, err, "Conversation not found", "Failed to load messages")
	}
	if msgs == nil {
		msgs = []models.Message{}
	}

	return c.JSON(msgs)
}

// HandleStream handles GET /conversations/:id/stream as server-sent events.
// Every new message is one "message" event; comment lines keep idle
// connections open.
func (h *MessageHandler) HandleStream(c *fiber.Ctx) error {
	conversationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid conversation ID format")
	}

	// the stream outlives the handler, so it cannot use the request context
	ctx, cancel := context.WithCancel(context.Background())

	stream, err := h.messagingService.Subscribe(ctx, conversationID)
	if err != nil {
		cancel()
		h.logger.Error("failed to subscribe", zap.String("conversation_id", conversationID.String()), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to open message stream")
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	log := h.logger.With(zap.String("conversation_id", conversationID.String()))
	keepAlive := h.keepAlive

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		ticker := time.NewTicker(keepAlive)
		defer ticker.Stop()

		for {
			select {
			case msg, ok := <-stream:
				if !ok {
					return
				}
				data, err := json.Marshal(msg)
				if err != nil {
					log.Warn("failed to encode message", zap.Error(err))
					continue
				}
				fmt.Fprintf(w, "id: %s\nevent: message\ndata: %s\n\n", msg.ID, data)
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
			}

			if err := w.Flush(); err != nil {
				log.Debug("stream client disconnected", zap.Error(err))
				return
			}
		}
	}))

	return nil
}
