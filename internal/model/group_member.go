package model

import (
	"errors"
	"time"
)

// Errors surfaced by membership writes. They live here so both the service
// and repository layers can match on them without importing each other.
var (
	// ErrGroupCapacity is returned when an insert would push the group past
	// max_members.
	ErrGroupCapacity = errors.New("group is at capacity")
	// ErrMemberExists is returned when the user already holds an active
	// membership in the group.
	ErrMemberExists = errors.New("active membership already exists")
)

// MemberStatus is the state of a group membership row.
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "active"
	MemberStatusInactive MemberStatus = "inactive"
)

// GroupMember links a user to a reading group.
type GroupMember struct {
	ID        int          `json:"id"`
	GroupID   int          `json:"group_id"`
	UserID    int          `json:"user_id"`
	JoinDate  time.Time    `json:"join_date"`
	Status    MemberStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}

// GroupMemberDetail is a membership row joined with the member's user record,
// as shown on the admin roster.
type GroupMemberDetail struct {
	GroupMember
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}
