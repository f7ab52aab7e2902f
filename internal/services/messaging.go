package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"craftlab/careers/internal/models"
	"craftlab/careers/internal/repositories"
)

const (
	conversationChannelPrefix = "conversation:"
	subscriberBuffer          = 16
	maxMessageLength          = 4000
)

// ErrInvalidMessage wraps every rejection of a message's content.
var ErrInvalidMessage = errors.New("invalid message")

type MessagingService interface {
	Send(ctx context.Context, msg *models.Message) error
	History(ctx context.Context, conversationID uuid.UUID, limit int) ([]models.Message, error)
	Subscribe(ctx context.Context, conversationID uuid.UUID) (<-chan models.Message, error)
}

type messagingService struct {
	messageRepo repositories.MessageRepository
	redis       *redis.Client
	logger      *zap.Logger
}

func NewMessagingService(messageRepo repositories.MessageRepository, client *redis.Client, logger *zap.Logger) MessagingService {
	return &messagingService{
		messageRepo: messageRepo,
		redis:       client,
		logger:      logger.Named("messaging"),
	}
}

// Send stores the message, then publishes it to live subscribers. A failed
// publish is logged; the message is still in history.
func (s *messagingService) Send(ctx context.Context, msg *models.Message) error {
	msg.Body = strings.TrimSpace(msg.Body)
	if msg.Body == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidMessage)
	}
	if len(msg.Body) > maxMessageLength {
		return fmt.Errorf("%w: body exceeds %d characters", ErrInvalidMessage, maxMessageLength)
	}

	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return err
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	if err := s.redis.Publish(ctx, channelName(msg.ConversationID), data).Err(); err != nil {
		s.logger.Warn("failed to publish message",
			zap.String("conversation_id", msg.ConversationID.String()),
			zap.Error(err),
		)
	}

	return nil
}

func (s *messagingService) History(ctx context.Context, conversationID uuid.UUID, limit int) ([]models.Message, error) {
	return s.messageRepo.FindConversation(ctx, conversationID, limit)
}

// Subscribe streams new messages of a conversation until ctx is done, then
// closes the returned channel.
func (s *messagingService) Subscribe(ctx context.Context, conversationID uuid.UUID) (<-chan models.Message, error) {
	pubsub := s.redis.Subscribe(ctx, channelName(conversationID))

	// wait for the subscription to be confirmed so no publish is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	out := make(chan models.Message, subscriberBuffer)
	go func() {
		defer close(out)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case raw, ok := <-ch:
				if !ok {
					return
				}
				var msg models.Message
				if err := json.Unmarshal([]byte(raw.Payload), &msg); err != nil {
					s.logger.Warn("dropping malformed message", zap.String("channel", raw.Channel), zap.Error(err))
					continue
				}
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func channelName(conversationID uuid.UUID) string {
	return conversationChannelPrefix + conversationID.String()
}
