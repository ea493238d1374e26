package model

import "time"

// GroupStatus is the lifecycle state of a reading group.
type GroupStatus string

const (
	GroupStatusUpcoming  GroupStatus = "upcoming"
	GroupStatusActive    GroupStatus = "active"
	GroupStatusClosed    GroupStatus = "closed"
	GroupStatusCompleted GroupStatus = "completed"
)

// DefaultMaxMembers is the capacity applied when a group is created without
// an explicit limit.
const DefaultMaxMembers = 50

// Group is a quarterly reading group. StartDate is always the first day of a
// calendar quarter; EndDate and RegistrationDeadline are derived from it.
type Group struct {
	ID                   int         `json:"id"`
	Name                 string      `json:"name"`
	StartDate            time.Time   `json:"start_date"`
	EndDate              time.Time   `json:"end_date"`
	RegistrationDeadline time.Time   `json:"registration_deadline"`
	MaxMembers           int         `json:"max_members"`
	Status               GroupStatus `json:"status"`
	CreatedAt            time.Time   `json:"created_at"`
}

// GroupWithCount pairs a group with its active member count for admin listings.
type GroupWithCount struct {
	Group
	MemberCount int `json:"member_count"`
}
