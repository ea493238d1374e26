package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/thebiblebus/biblebus-backend/internal/events"
	"github.com/thebiblebus/biblebus-backend/internal/model"
)

// ErrAnotherGroupOpen rejects activating a group while a different group is
// still open for registration.
var ErrAnotherGroupOpen = errors.New("another group is still open for registration")

// GroupStore is the persistence contract the lifecycle manager runs against.
// Lookups return (nil, nil) when no row matches. AddMember must enforce the
// capacity ceiling and active-membership uniqueness atomically, reporting
// violations as model.ErrGroupCapacity and model.ErrMemberExists.
type GroupStore interface {
	CreateGroup(ctx context.Context, g *model.Group) error
	GroupByID(ctx context.Context, id int) (*model.Group, error)
	CurrentOpenGroup(ctx context.Context, today time.Time) (*model.Group, error)
	NextUpcomingGroup(ctx context.Context) (*model.Group, error)
	LatestStartedGroup(ctx context.Context) (*model.Group, error)
	ListGroups(ctx context.Context) ([]model.Group, error)
	ListGroupsWithCounts(ctx context.Context) ([]model.GroupWithCount, error)
	UpdateGroupStatus(ctx context.Context, id int, status model.GroupStatus) error
	RewriteGroupSchedule(ctx context.Context, id int, name string, start, end, deadline time.Time) error
	CountActiveMembers(ctx context.Context, groupID int) (int, error)
	HasActiveMember(ctx context.Context, groupID, userID int) (bool, error)
	AddMember(ctx context.Context, m *model.GroupMember) error
	ListMembers(ctx context.Context, groupID int) ([]model.GroupMemberDetail, error)
	MemberGroup(ctx context.Context, userID int) (*model.Group, error)
}

// AssignResult reports the outcome of assigning a user to a group.
type AssignResult struct {
	Success bool   `json:"success"`
	GroupID int    `json:"group_id,omitempty"`
	Message string `json:"message"`
}

// TransitionCounts reports how many groups each lifecycle step touched.
type TransitionCounts struct {
	Activated int `json:"activated"`
	Closed    int `json:"closed"`
	Completed int `json:"completed"`
}

// GroupService owns group creation, quarterly date alignment, status
// transitions, and membership assignment.
type GroupService struct {
	store  GroupStore
	events events.Publisher
	log    zerolog.Logger
	now    func() time.Time
	epoch  time.Time
}

// NewGroupService creates a GroupService. epoch anchors the very first group
// when the store holds none; it is aligned to its quarter on use.
func NewGroupService(store GroupStore, pub events.Publisher, log zerolog.Logger, epoch time.Time) *GroupService {
	return &GroupService{
		store:  store,
		events: pub,
		log:    log.With().Str("component", "group_service").Logger(),
		now:    time.Now,
		epoch:  epoch,
	}
}

// WithClock replaces the wall clock. Tests use this to simulate arbitrary
// dates deterministically.
func (s *GroupService) WithClock(now func() time.Time) *GroupService {
	s.now = now
	return s
}

// Today returns the current UTC calendar date at midnight.
func (s *GroupService) Today() time.Time {
	year, month, day := s.now().UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CurrentActiveGroup returns the group new registrants should be assigned to:
// the earliest-starting upcoming or active group whose registration deadline
// has not passed. Returns nil when no group is accepting registrations.
func (s *GroupService) CurrentActiveGroup(ctx context.Context) (*model.Group, error) {
	return s.store.CurrentOpenGroup(ctx, s.Today())
}

// NextUpcomingGroup returns the earliest-starting group still in upcoming
// status, or nil when no successor group exists yet.
func (s *GroupService) NextUpcomingGroup(ctx context.Context) (*model.Group, error) {
	return s.store.NextUpcomingGroup(ctx)
}

// GroupByID returns one group, or nil when it does not exist.
func (s *GroupService) GroupByID(ctx context.Context, id int) (*model.Group, error) {
	return s.store.GroupByID(ctx, id)
}

// AllGroupsWithMemberCounts lists every group with its active member count.
func (s *GroupService) AllGroupsWithMemberCounts(ctx context.Context) ([]model.GroupWithCount, error) {
	return s.store.ListGroupsWithCounts(ctx)
}

// GroupMembers lists the roster of one group.
func (s *GroupService) GroupMembers(ctx context.Context, groupID int) ([]model.GroupMemberDetail, error) {
	return s.store.ListMembers(ctx, groupID)
}

// GroupForUser returns the group the user actively belongs to, or nil.
func (s *GroupService) GroupForUser(ctx context.Context, userID int) (*model.Group, error) {
	return s.store.MemberGroup(ctx, userID)
}

// CreateGroupWithStart creates a group anchored at the quarter containing
// start. Zero values select the defaults: max_members 50, status upcoming,
// derived display name.
func (s *GroupService) CreateGroupWithStart(ctx context.Context, start time.Time, maxMembers int, status model.GroupStatus, name string) (*model.Group, error) {
	aligned := AlignToQuarterStart(start)
	endDate, deadline := DerivedDates(aligned)

	if maxMembers <= 0 {
		maxMembers = model.DefaultMaxMembers
	}
	if status == "" {
		status = model.GroupStatusUpcoming
	}

	g := &model.Group{
		Name:                 GroupName(aligned, name),
		StartDate:            aligned,
		EndDate:              endDate,
		RegistrationDeadline: deadline,
		MaxMembers:           maxMembers,
		Status:               status,
	}
	if err := s.store.CreateGroup(ctx, g); err != nil {
		return nil, err
	}

	s.log.Info().
		Int("group_id", g.ID).
		Str("start_date", FormatDate(g.StartDate)).
		Str("name", g.Name).
		Msg("Group created")
	s.events.Publish(ctx, events.Event{
		Type:       events.TypeGroupCreated,
		GroupID:    g.ID,
		GroupName:  g.Name,
		Status:     string(g.Status),
		OccurredAt: s.now().UTC(),
	})
	return g, nil
}

// CreateNextQuarterlyGroup creates at most one successor group per call.
// With an empty store it bootstraps from the configured epoch. Otherwise it
// takes the most recently started group plus three months, and only creates
// the group when that date is strictly in the future; a nil group with a nil
// error means nothing needed creating.
func (s *GroupService) CreateNextQuarterlyGroup(ctx context.Context) (*model.Group, error) {
	last, err := s.store.LatestStartedGroup(ctx)
	if err != nil {
		return nil, err
	}

	start := s.epoch
	if last != nil {
		start = last.StartDate.AddDate(0, 3, 0)
		if !start.After(s.Today()) {
			return nil, nil
		}
	}
	return s.CreateGroupWithStart(ctx, start, 0, "", "")
}

// UpdateGroupStatuses runs the date-driven batch transition over all groups:
// upcoming groups whose start has arrived become active, active groups past
// their registration deadline become closed, and active or closed groups past
// their end date become completed. The steps apply in that order within a
// single pass, so a stale group can cascade through several states in one
// call. Statuses never move backward.
func (s *GroupService) UpdateGroupStatuses(ctx context.Context) (TransitionCounts, error) {
	var counts TransitionCounts

	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		return counts, err
	}

	today := s.Today()
	for i := range groups {
		g := &groups[i]
		prev := g.Status

		if g.Status == model.GroupStatusUpcoming && !g.StartDate.After(today) {
			g.Status = model.GroupStatusActive
			counts.Activated++
		}
		if g.Status == model.GroupStatusActive && g.RegistrationDeadline.Before(today) {
			g.Status = model.GroupStatusClosed
			counts.Closed++
		}
		if (g.Status == model.GroupStatusActive || g.Status == model.GroupStatusClosed) && g.EndDate.Before(today) {
			g.Status = model.GroupStatusCompleted
			counts.Completed++
		}

		if g.Status == prev {
			continue
		}
		if err := s.store.UpdateGroupStatus(ctx, g.ID, g.Status); err != nil {
			return counts, err
		}
		s.log.Info().
			Int("group_id", g.ID).
			Str("from", string(prev)).
			Str("to", string(g.Status)).
			Msg("Group status transitioned")
		s.events.Publish(ctx, events.Event{
			Type:       events.TypeStatusChanged,
			GroupID:    g.ID,
			GroupName:  g.Name,
			Status:     string(g.Status),
			Detail:     string(prev),
			OccurredAt: s.now().UTC(),
		})
	}
	return counts, nil
}

// ActivateGroup moves one group to active status. It refuses while a
// different group is still open for registration, keeping at most one group
// accepting registrations at a time. Returns nil when the group is missing.
func (s *GroupService) ActivateGroup(ctx context.Context, id int) (*model.Group, error) {
	g, err := s.store.GroupByID(ctx, id)
	if err != nil || g == nil {
		return nil, err
	}

	open, err := s.store.CurrentOpenGroup(ctx, s.Today())
	if err != nil {
		return nil, err
	}
	if open != nil && open.ID != g.ID {
		return nil, ErrAnotherGroupOpen
	}

	if g.Status != model.GroupStatusActive {
		if err := s.store.UpdateGroupStatus(ctx, g.ID, model.GroupStatusActive); err != nil {
			return nil, err
		}
		g.Status = model.GroupStatusActive
		s.events.Publish(ctx, events.Event{
			Type:       events.TypeStatusChanged,
			GroupID:    g.ID,
			GroupName:  g.Name,
			Status:     string(g.Status),
			OccurredAt: s.now().UTC(),
		})
	}
	return g, nil
}

// AssignUserToGroup places a user in the group currently open for
// registration, creating and activating the next quarterly group when none
// is open. The capacity ceiling is hard; re-assigning an existing member
// succeeds without inserting a duplicate row.
func (s *GroupService) AssignUserToGroup(ctx context.Context, userID int) (AssignResult, error) {
	group, err := s.store.CurrentOpenGroup(ctx, s.Today())
	if err != nil {
		return AssignResult{}, err
	}

	if group == nil {
		created, errCreate := s.CreateNextQuarterlyGroup(ctx)
		if errCreate != nil {
			return AssignResult{}, errCreate
		}
		if created == nil {
			return AssignResult{Message: "no groups are currently accepting registrations"}, nil
		}
		if err := s.store.UpdateGroupStatus(ctx, created.ID, model.GroupStatusActive); err != nil {
			return AssignResult{}, err
		}
		created.Status = model.GroupStatusActive
		if err := s.addMember(ctx, created, userID); err != nil {
			return s.assignFailure(created, err)
		}
		return AssignResult{
			Success: true,
			GroupID: created.ID,
			Message: fmt.Sprintf("assigned to new group %q", created.Name),
		}, nil
	}

	count, err := s.store.CountActiveMembers(ctx, group.ID)
	if err != nil {
		return AssignResult{}, err
	}
	if count >= group.MaxMembers {
		return AssignResult{Message: fmt.Sprintf("group %q is full", group.Name)}, nil
	}

	member, err := s.store.HasActiveMember(ctx, group.ID, userID)
	if err != nil {
		return AssignResult{}, err
	}
	if member {
		return AssignResult{
			Success: true,
			GroupID: group.ID,
			Message: fmt.Sprintf("already a member of %q", group.Name),
		}, nil
	}

	if err := s.addMember(ctx, group, userID); err != nil {
		return s.assignFailure(group, err)
	}
	return AssignResult{
		Success: true,
		GroupID: group.ID,
		Message: fmt.Sprintf("assigned to %q", group.Name),
	}, nil
}

// addMember inserts the membership row dated today and publishes the event.
func (s *GroupService) addMember(ctx context.Context, group *model.Group, userID int) error {
	m := &model.GroupMember{
		GroupID:  group.ID,
		UserID:   userID,
		JoinDate: s.Today(),
		Status:   model.MemberStatusActive,
	}
	if err := s.store.AddMember(ctx, m); err != nil {
		return err
	}
	s.events.Publish(ctx, events.Event{
		Type:       events.TypeMemberAssigned,
		GroupID:    group.ID,
		GroupName:  group.Name,
		UserID:     userID,
		OccurredAt: s.now().UTC(),
	})
	return nil
}

// assignFailure maps store-level assignment errors onto the structured
// result. Concurrent racers losing to the transactional capacity recheck or
// the active-membership unique index land here rather than erroring out.
func (s *GroupService) assignFailure(group *model.Group, err error) (AssignResult, error) {
	switch {
	case errors.Is(err, model.ErrGroupCapacity):
		return AssignResult{Message: fmt.Sprintf("group %q is full", group.Name)}, nil
	case errors.Is(err, model.ErrMemberExists):
		return AssignResult{
			Success: true,
			GroupID: group.ID,
			Message: fmt.Sprintf("already a member of %q", group.Name),
		}, nil
	default:
		return AssignResult{}, err
	}
}

// NormalizeAllGroups is the idempotent repair pass: every group whose stored
// name, start, end, or registration deadline disagrees with the values
// recomputed from its aligned start date gets all four rewritten. Status and
// max_members are never touched. Returns the number of groups updated.
func (s *GroupService) NormalizeAllGroups(ctx context.Context) (int, error) {
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range groups {
		g := &groups[i]
		aligned := AlignToQuarterStart(g.StartDate)
		endDate, deadline := DerivedDates(aligned)
		name := GroupName(aligned, "")

		if g.Name == name &&
			g.StartDate.Equal(aligned) &&
			g.EndDate.Equal(endDate) &&
			g.RegistrationDeadline.Equal(deadline) {
			continue
		}

		if err := s.store.RewriteGroupSchedule(ctx, g.ID, name, aligned, endDate, deadline); err != nil {
			return updated, err
		}
		updated++
		s.log.Info().
			Int("group_id", g.ID).
			Str("start_date", FormatDate(aligned)).
			Msg("Group schedule normalized")
	}

	if updated > 0 {
		s.events.Publish(ctx, events.Event{
			Type:       events.TypeGroupsNormalized,
			Detail:     fmt.Sprintf("%d groups updated", updated),
			OccurredAt: s.now().UTC(),
		})
	}
	return updated, nil
}
