package model

import "time"

// Trip is a planned outing, optionally tied to one reading group.
type Trip struct {
	ID        int       `json:"id"`
	GroupID   *int      `json:"group_id,omitempty"`
	Title     string    `json:"title"`
	Location  string    `json:"location"`
	DepartsOn time.Time `json:"departs_on"`
	ReturnsOn time.Time `json:"returns_on"`
	Capacity  int       `json:"capacity"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
