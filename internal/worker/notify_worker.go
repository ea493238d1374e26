package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/thebiblebus/biblebus-backend/internal/config"
	"github.com/thebiblebus/biblebus-backend/internal/mailer"
	"github.com/thebiblebus/biblebus-backend/internal/model"
	"github.com/thebiblebus/biblebus-backend/internal/repository"
	"github.com/thebiblebus/biblebus-backend/internal/service"
)

const NotifyPollTimeout = 1 * time.Second

// NotifyWorker drains the notification queue and fans announcements out to
// their recipients through the configured mailer.
type NotifyWorker struct {
	messageRepo *repository.MessageRepository
	userRepo    *repository.UserRepository
	rdb         *redis.Client
	mail        mailer.Mailer
	log         zerolog.Logger
}

func NewNotifyWorker(
	messageRepo *repository.MessageRepository,
	userRepo *repository.UserRepository,
	rdb *redis.Client,
	mail mailer.Mailer,
	log zerolog.Logger,
) *NotifyWorker {
	return &NotifyWorker{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		rdb:         rdb,
		mail:        mail,
		log:         log.With().Str("component", "notify_worker").Logger(),
	}
}

func (w *NotifyWorker) Start(ctx context.Context) {
	w.log.Info().Msg("NotifyWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested")
			return

		default:
			item, err := w.rdb.BLPop(ctx, NotifyPollTimeout, config.WorkerKey.NotifyQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var job service.NotifyJob
			if err := json.Unmarshal([]byte(item[1]), &job); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			if err := w.deliver(ctx, &job); err != nil {
				w.log.Error().Err(err).Int("message_id", job.MessageID).Msg("Delivery failed, requeueing")
				w.rdb.RPush(ctx, config.WorkerKey.NotifyQueue, item[1])
			}
		}
	}
}

// deliver resolves the announcement's recipient list and sends one mail.
// A message that no longer exists is dropped without error.
func (w *NotifyWorker) deliver(ctx context.Context, job *service.NotifyJob) error {
	msg, err := w.messageRepo.GetByID(ctx, job.MessageID)
	if err != nil {
		return err
	}
	if msg == nil {
		w.log.Warn().Int("message_id", job.MessageID).Msg("Message gone, dropping job")
		return nil
	}

	var recipients []string
	if msg.Audience == model.AudienceGroup && msg.GroupID != nil {
		recipients, err = w.userRepo.ListEmailsByGroup(ctx, *msg.GroupID)
	} else {
		recipients, err = w.userRepo.ListAllEmails(ctx)
	}
	if err != nil {
		return err
	}

	if len(recipients) == 0 {
		w.log.Info().Int("message_id", msg.ID).Msg("No recipients, skipping delivery")
		return nil
	}

	if err := w.mail.Send(ctx, recipients, msg.Subject, msg.Body); err != nil {
		return err
	}

	w.log.Info().
		Int("message_id", msg.ID).
		Int("recipients", len(recipients)).
		Str("audience", string(msg.Audience)).
		Msg("Announcement delivered")
	return nil
}
