package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/thebiblebus/biblebus-backend/internal/config"
	"github.com/thebiblebus/biblebus-backend/internal/model"
	"github.com/thebiblebus/biblebus-backend/internal/repository"
)

// NotifyJob is the queue payload handed to the notification worker.
type NotifyJob struct {
	MessageID int `json:"message_id"`
}

// MessageService handles admin announcements and their delivery fan-out.
type MessageService struct {
	messageRepo *repository.MessageRepository
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewMessageService creates a new MessageService.
func NewMessageService(messageRepo *repository.MessageRepository, rdb *redis.Client, log zerolog.Logger) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		rdb:         rdb,
		log:         log.With().Str("component", "message_service").Logger(),
	}
}

// Create stores an announcement and enqueues it for delivery. A failed
// enqueue is logged, not returned: the announcement itself is already saved
// and remains visible in the app.
func (s *MessageService) Create(ctx context.Context, m *model.Message) error {
	if err := s.messageRepo.Create(ctx, m); err != nil {
		return err
	}

	payload, err := json.Marshal(NotifyJob{MessageID: m.ID})
	if err != nil {
		return err
	}
	if err := s.rdb.RPush(ctx, config.WorkerKey.NotifyQueue, payload).Err(); err != nil {
		s.log.Warn().Err(err).Int("message_id", m.ID).Msg("Enqueue notify job failed")
	}
	return nil
}

// GetByID retrieves one announcement, or nil when missing.
func (s *MessageService) GetByID(ctx context.Context, id int) (*model.Message, error) {
	return s.messageRepo.GetByID(ctx, id)
}

// List retrieves all announcements.
func (s *MessageService) List(ctx context.Context) ([]model.Message, error) {
	return s.messageRepo.List(ctx)
}

// ListForGroup retrieves the announcements a group's members can see.
func (s *MessageService) ListForGroup(ctx context.Context, groupID int) ([]model.Message, error) {
	return s.messageRepo.ListForGroup(ctx, groupID)
}
