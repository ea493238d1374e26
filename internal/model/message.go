package model

import "time"

// MessageAudience selects who receives an announcement.
type MessageAudience string

const (
	AudienceAll   MessageAudience = "all"
	AudienceGroup MessageAudience = "group"
)

// Message is an admin announcement, delivered to everyone or to one group.
type Message struct {
	ID        int             `json:"id"`
	SenderID  int             `json:"sender_id"`
	Subject   string          `json:"subject"`
	Body      string          `json:"body"`
	Audience  MessageAudience `json:"audience"`
	GroupID   *int            `json:"group_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
