package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/thebiblebus/biblebus-backend/internal/model"
)

// MessageRepository handles announcement data access.
type MessageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

// Create inserts a new announcement.
func (r *MessageRepository) Create(ctx context.Context, m *model.Message) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO messages (sender_id, subject, body, audience, group_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		m.SenderID, m.Subject, m.Body, m.Audience, m.GroupID,
	).Scan(&m.ID, &m.CreatedAt)
}

// GetByID retrieves one announcement, or nil when missing.
func (r *MessageRepository) GetByID(ctx context.Context, id int) (*model.Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, sender_id, subject, body, audience, group_id, created_at
		 FROM messages WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages, err := collectMessages(rows)
	if err != nil || len(messages) == 0 {
		return nil, err
	}
	return &messages[0], nil
}

// List retrieves all announcements, newest first.
func (r *MessageRepository) List(ctx context.Context) ([]model.Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, sender_id, subject, body, audience, group_id, created_at
		 FROM messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMessages(rows)
}

// ListForGroup retrieves announcements visible to one group's members:
// everything addressed to all users plus the group's own announcements.
func (r *MessageRepository) ListForGroup(ctx context.Context, groupID int) ([]model.Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, sender_id, subject, body, audience, group_id, created_at
		 FROM messages
		 WHERE audience = 'all' OR group_id = $1
		 ORDER BY created_at DESC`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMessages(rows)
}

func collectMessages(rows pgx.Rows) ([]model.Message, error) {
	var messages []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.Subject, &m.Body, &m.Audience,
			&m.GroupID, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
