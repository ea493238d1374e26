package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thebiblebus/biblebus-backend/internal/events"
	"github.com/thebiblebus/biblebus-backend/internal/model"
)

// fakeStore is an in-memory GroupStore with the same contract as the real
// repository: (nil, nil) lookups and atomic capacity/uniqueness enforcement
// in AddMember.
type fakeStore struct {
	groups       []*model.Group
	members      []*model.GroupMember
	nextGroupID  int
	nextMemberID int
	// addMemberErr, when set, overrides AddMember to simulate a lost race.
	addMemberErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextGroupID: 1, nextMemberID: 1}
}

func (f *fakeStore) CreateGroup(_ context.Context, g *model.Group) error {
	g.ID = f.nextGroupID
	f.nextGroupID++
	g.CreatedAt = time.Now().UTC()
	cp := *g
	f.groups = append(f.groups, &cp)
	return nil
}

func (f *fakeStore) GroupByID(_ context.Context, id int) (*model.Group, error) {
	for _, g := range f.groups {
		if g.ID == id {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CurrentOpenGroup(_ context.Context, today time.Time) (*model.Group, error) {
	var best *model.Group
	for _, g := range f.groups {
		if g.Status != model.GroupStatusUpcoming && g.Status != model.GroupStatusActive {
			continue
		}
		if g.RegistrationDeadline.Before(today) {
			continue
		}
		if best == nil || g.StartDate.Before(best.StartDate) {
			best = g
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (f *fakeStore) NextUpcomingGroup(_ context.Context) (*model.Group, error) {
	var best *model.Group
	for _, g := range f.groups {
		if g.Status != model.GroupStatusUpcoming {
			continue
		}
		if best == nil || g.StartDate.Before(best.StartDate) {
			best = g
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (f *fakeStore) LatestStartedGroup(_ context.Context) (*model.Group, error) {
	var best *model.Group
	for _, g := range f.groups {
		if best == nil || g.StartDate.After(best.StartDate) {
			best = g
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (f *fakeStore) ListGroups(_ context.Context) ([]model.Group, error) {
	out := make([]model.Group, 0, len(f.groups))
	for _, g := range f.groups {
		out = append(out, *g)
	}
	return out, nil
}

func (f *fakeStore) ListGroupsWithCounts(ctx context.Context) ([]model.GroupWithCount, error) {
	out := make([]model.GroupWithCount, 0, len(f.groups))
	for _, g := range f.groups {
		count, _ := f.CountActiveMembers(ctx, g.ID)
		out = append(out, model.GroupWithCount{Group: *g, MemberCount: count})
	}
	return out, nil
}

func (f *fakeStore) UpdateGroupStatus(_ context.Context, id int, status model.GroupStatus) error {
	for _, g := range f.groups {
		if g.ID == id {
			g.Status = status
			return nil
		}
	}
	return errors.New("group not found")
}

func (f *fakeStore) RewriteGroupSchedule(_ context.Context, id int, name string, start, end, deadline time.Time) error {
	for _, g := range f.groups {
		if g.ID == id {
			g.Name = name
			g.StartDate = start
			g.EndDate = end
			g.RegistrationDeadline = deadline
			return nil
		}
	}
	return errors.New("group not found")
}

func (f *fakeStore) CountActiveMembers(_ context.Context, groupID int) (int, error) {
	count := 0
	for _, m := range f.members {
		if m.GroupID == groupID && m.Status == model.MemberStatusActive {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) HasActiveMember(_ context.Context, groupID, userID int) (bool, error) {
	for _, m := range f.members {
		if m.GroupID == groupID && m.UserID == userID && m.Status == model.MemberStatusActive {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) AddMember(ctx context.Context, m *model.GroupMember) error {
	if f.addMemberErr != nil {
		return f.addMemberErr
	}
	if exists, _ := f.HasActiveMember(ctx, m.GroupID, m.UserID); exists {
		return model.ErrMemberExists
	}
	g, _ := f.GroupByID(ctx, m.GroupID)
	if g == nil {
		return errors.New("group not found")
	}
	count, _ := f.CountActiveMembers(ctx, m.GroupID)
	if count >= g.MaxMembers {
		return model.ErrGroupCapacity
	}
	m.ID = f.nextMemberID
	f.nextMemberID++
	m.CreatedAt = time.Now().UTC()
	cp := *m
	f.members = append(f.members, &cp)
	return nil
}

func (f *fakeStore) ListMembers(_ context.Context, groupID int) ([]model.GroupMemberDetail, error) {
	var out []model.GroupMemberDetail
	for _, m := range f.members {
		if m.GroupID == groupID {
			out = append(out, model.GroupMemberDetail{GroupMember: *m})
		}
	}
	return out, nil
}

func (f *fakeStore) MemberGroup(ctx context.Context, userID int) (*model.Group, error) {
	var best *model.Group
	for _, m := range f.members {
		if m.UserID != userID || m.Status != model.MemberStatusActive {
			continue
		}
		g, _ := f.GroupByID(ctx, m.GroupID)
		if g == nil {
			continue
		}
		if best == nil || g.StartDate.After(best.StartDate) {
			best = g
		}
	}
	return best, nil
}

// recorder captures published events for assertions.
type recorder struct {
	events []events.Event
}

func (r *recorder) Publish(_ context.Context, ev events.Event) {
	r.events = append(r.events, ev)
}

var testEpoch = date(2025, time.January, 1)

func newTestService(store GroupStore, today time.Time) *GroupService {
	return NewGroupService(store, events.NopPublisher{}, zerolog.Nop(), testEpoch).
		WithClock(func() time.Time { return today })
}

func seedGroup(t *testing.T, s *GroupService, start time.Time, status model.GroupStatus) *model.Group {
	t.Helper()
	g, err := s.CreateGroupWithStart(context.Background(), start, 0, status, "")
	if err != nil {
		t.Fatalf("seed group: %v", err)
	}
	return g
}

func TestCreateGroupWithStart(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestService(store, date(2026, time.May, 10))

	g, err := svc.CreateGroupWithStart(ctx, date(2026, time.May, 10), 0, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !g.StartDate.Equal(date(2026, time.April, 1)) {
		t.Errorf("start not aligned: %s", FormatDate(g.StartDate))
	}
	if !g.EndDate.Equal(date(2027, time.March, 31)) {
		t.Errorf("end date: %s", FormatDate(g.EndDate))
	}
	if !g.RegistrationDeadline.Equal(date(2026, time.April, 18)) {
		t.Errorf("deadline: %s", FormatDate(g.RegistrationDeadline))
	}
	if g.MaxMembers != model.DefaultMaxMembers {
		t.Errorf("max members: %d", g.MaxMembers)
	}
	if g.Status != model.GroupStatusUpcoming {
		t.Errorf("status: %s", g.Status)
	}
	if g.Name != "Bible Bus April 2026 Travelers" {
		t.Errorf("name: %q", g.Name)
	}
}

func TestCreateNextQuarterlyGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("BootstrapsFromEpoch", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, date(2026, time.May, 10))

		g, err := svc.CreateNextQuarterlyGroup(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if g == nil {
			t.Fatal("expected bootstrap group")
		}
		if !g.StartDate.Equal(testEpoch) {
			t.Fatalf("start %s, want epoch %s", FormatDate(g.StartDate), FormatDate(testEpoch))
		}
	})

	t.Run("CreatesStrictlyFutureSuccessor", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, date(2026, time.May, 10))
		seedGroup(t, svc, date(2026, time.April, 1), model.GroupStatusActive)

		g, err := svc.CreateNextQuarterlyGroup(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if g == nil {
			t.Fatal("expected successor group")
		}
		if !g.StartDate.Equal(date(2026, time.July, 1)) {
			t.Fatalf("start %s, want 2026-07-01", FormatDate(g.StartDate))
		}
	})

	t.Run("NothingDueWhenSuccessorNotFuture", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, date(2026, time.July, 1))
		seedGroup(t, svc, date(2026, time.April, 1), model.GroupStatusActive)

		// Successor would start today, which is not strictly future.
		g, err := svc.CreateNextQuarterlyGroup(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if g != nil {
			t.Fatalf("expected nil group, got start %s", FormatDate(g.StartDate))
		}
	})

	t.Run("OnlyOnePerCall", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, date(2026, time.May, 10))
		// Last group started over a year ago; still only one successor appears.
		seedGroup(t, svc, date(2025, time.January, 1), model.GroupStatusCompleted)

		g, err := svc.CreateNextQuarterlyGroup(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if g != nil {
			t.Fatalf("successor for 2025-04-01 is in the past, expected nil, got %s", FormatDate(g.StartDate))
		}
		if len(store.groups) != 1 {
			t.Fatalf("group count %d", len(store.groups))
		}
	})
}

func TestUpdateGroupStatuses(t *testing.T) {
	ctx := context.Background()

	t.Run("Transitions", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, date(2026, time.July, 5))

		upcoming := seedGroup(t, svc, date(2026, time.October, 1), model.GroupStatusUpcoming)
		activating := seedGroup(t, svc, date(2026, time.July, 1), model.GroupStatusUpcoming)
		closing := seedGroup(t, svc, date(2026, time.April, 1), model.GroupStatusActive)
		completing := seedGroup(t, svc, date(2025, time.April, 1), model.GroupStatusClosed)

		counts, err := svc.UpdateGroupStatuses(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if counts.Activated != 1 || counts.Closed != 1 || counts.Completed != 1 {
			t.Fatalf("counts %+v", counts)
		}

		assertStatus := func(id int, want model.GroupStatus) {
			t.Helper()
			g, _ := store.GroupByID(ctx, id)
			if g.Status != want {
				t.Errorf("group %d status %s, want %s", id, g.Status, want)
			}
		}
		assertStatus(upcoming.ID, model.GroupStatusUpcoming)
		assertStatus(activating.ID, model.GroupStatusActive)
		assertStatus(closing.ID, model.GroupStatusClosed)
		assertStatus(completing.ID, model.GroupStatusCompleted)
	})

	t.Run("StaleGroupCascadesInOnePass", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, date(2027, time.June, 1))
		stale := seedGroup(t, svc, date(2026, time.January, 1), model.GroupStatusUpcoming)

		counts, err := svc.UpdateGroupStatuses(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		g, _ := store.GroupByID(ctx, stale.ID)
		if g.Status != model.GroupStatusCompleted {
			t.Fatalf("status %s, want completed", g.Status)
		}
		if counts.Activated != 1 || counts.Closed != 1 || counts.Completed != 1 {
			t.Fatalf("cascade counts %+v", counts)
		}
	})

	t.Run("NeverMovesBackward", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, date(2026, time.July, 5))
		done := seedGroup(t, svc, date(2026, time.July, 1), model.GroupStatusCompleted)

		counts, err := svc.UpdateGroupStatuses(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if counts != (TransitionCounts{}) {
			t.Fatalf("counts %+v", counts)
		}
		g, _ := store.GroupByID(ctx, done.ID)
		if g.Status != model.GroupStatusCompleted {
			t.Fatalf("status %s", g.Status)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, date(2026, time.July, 5))
		seedGroup(t, svc, date(2026, time.July, 1), model.GroupStatusUpcoming)

		if _, err := svc.UpdateGroupStatuses(ctx); err != nil {
			t.Fatalf("first pass: %v", err)
		}
		counts, err := svc.UpdateGroupStatuses(ctx)
		if err != nil {
			t.Fatalf("second pass: %v", err)
		}
		if counts != (TransitionCounts{}) {
			t.Fatalf("second pass counts %+v", counts)
		}
	})

	t.Run("PublishesStatusChanges", func(t *testing.T) {
		store := newFakeStore()
		rec := &recorder{}
		svc := NewGroupService(store, rec, zerolog.Nop(), testEpoch).
			WithClock(func() time.Time { return date(2026, time.July, 5) })
		seedGroup(t, svc, date(2026, time.July, 1), model.GroupStatusUpcoming)

		rec.events = nil
		if _, err := svc.UpdateGroupStatuses(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rec.events) != 1 || rec.events[0].Type != events.TypeStatusChanged {
			t.Fatalf("events %+v", rec.events)
		}
		if rec.events[0].Status != string(model.GroupStatusActive) {
			t.Fatalf("event status %s", rec.events[0].Status)
		}
	})
}

func TestActivateGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("Activates", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, date(2026, time.July, 5))
		g := seedGroup(t, svc, date(2026, time.July, 1), model.GroupStatusUpcoming)

		got, err := svc.ActivateGroup(ctx, g.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != model.GroupStatusActive {
			t.Fatalf("status %s", got.Status)
		}
	})

	t.Run("RefusesWhileAnotherGroupOpen", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, date(2026, time.July, 5))
		seedGroup(t, svc, date(2026, time.July, 1), model.GroupStatusActive)
		next := seedGroup(t, svc, date(2026, time.October, 1), model.GroupStatusUpcoming)

		if _, err := svc.ActivateGroup(ctx, next.ID); !errors.Is(err, ErrAnotherGroupOpen) {
			t.Fatalf("want ErrAnotherGroupOpen, got %v", err)
		}
	})

	t.Run("RefusesWhileUpcomingGroupStillOpen", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, date(2026, time.June, 20))
		earlier := seedGroup(t, svc, date(2026, time.July, 1), model.GroupStatusUpcoming)
		later := seedGroup(t, svc, date(2026, time.October, 1), model.GroupStatusUpcoming)

		// The earlier group has not started yet but its registration window
		// is open, so it still blocks activating any other group.
		if _, err := svc.ActivateGroup(ctx, later.ID); !errors.Is(err, ErrAnotherGroupOpen) {
			t.Fatalf("want ErrAnotherGroupOpen, got %v", err)
		}
		if g, _ := store.GroupByID(ctx, later.ID); g.Status != model.GroupStatusUpcoming {
			t.Fatalf("status %s", g.Status)
		}
		if g, _ := store.GroupByID(ctx, earlier.ID); g.Status != model.GroupStatusUpcoming {
			t.Fatalf("status %s", g.Status)
		}
	})

	t.Run("MissingGroup", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, date(2026, time.July, 5))

		got, err := svc.ActivateGroup(ctx, 42)
		if err != nil || got != nil {
			t.Fatalf("got %v, %v", got, err)
		}
	})
}

func TestAssignUserToGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("AssignsToOpenGroup", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, date(2026, time.July, 5))
		g := seedGroup(t, svc, date(2026, time.July, 1), model.GroupStatusActive)

		res, err := svc.AssignUserToGroup(ctx, 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Success || res.GroupID != g.ID {
			t.Fatalf("result %+v", res)
		}
		if count, _ := store.CountActiveMembers(ctx, g.ID); count != 1 {
			t.Fatalf("member count %d", count)
		}
		members, _ := store.ListMembers(ctx, g.ID)
		if !members[0].JoinDate.Equal(date(2026, time.July, 5)) {
			t.Fatalf("join date %s", FormatDate(members[0].JoinDate))
		}
	})

	t.Run("IdempotentForExistingMember", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, date(2026, time.July, 5))
		g := seedGroup(t, svc, date(2026, time.July, 1), model.GroupStatusActive)

		if _, err := svc.AssignUserToGroup(ctx, 7); err != nil {
			t.Fatalf("first assign: %v", err)
		}
		res, err := svc.AssignUserToGroup(ctx, 7)
		if err != nil {
			t.Fatalf("second assign: %v", err)
		}
		if !res.Success || res.GroupID != g.ID {
			t.Fatalf("result %+v", res)
		}
		if count, _ := store.CountActiveMembers(ctx, g.ID); count != 1 {
			t.Fatalf("member count %d after re-assign", count)
		}
	})

	t.Run("FullGroupFailsWithoutError", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, date(2026, time.July, 5))
		g, err := svc.CreateGroupWithStart(ctx, date(2026, time.July, 1), 2, model.GroupStatusActive, "")
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		for user := 1; user <= 2; user++ {
			if _, err := svc.AssignUserToGroup(ctx, user); err != nil {
				t.Fatalf("fill assign %d: %v", user, err)
			}
		}

		res, err := svc.AssignUserToGroup(ctx, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Success {
			t.Fatalf("expected failure result, got %+v", res)
		}
		if count, _ := store.CountActiveMembers(ctx, g.ID); count != 2 {
			t.Fatalf("capacity breached: %d members", count)
		}
	})

	t.Run("LostCapacityRaceFailsWithoutError", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, date(2026, time.July, 5))
		seedGroup(t, svc, date(2026, time.July, 1), model.GroupStatusActive)
		store.addMemberErr = model.ErrGroupCapacity

		res, err := svc.AssignUserToGroup(ctx, 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Success {
			t.Fatalf("result %+v", res)
		}
	})

	t.Run("LostUniquenessRaceReportsSuccess", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, date(2026, time.July, 5))
		g := seedGroup(t, svc, date(2026, time.July, 1), model.GroupStatusActive)
		store.addMemberErr = model.ErrMemberExists

		res, err := svc.AssignUserToGroup(ctx, 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Success || res.GroupID != g.ID {
			t.Fatalf("result %+v", res)
		}
	})

	t.Run("CreatesAndActivatesNextGroupWhenNoneOpen", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, date(2026, time.May, 10))
		// Registration closed April 18; no open group remains.
		seedGroup(t, svc, date(2026, time.April, 1), model.GroupStatusClosed)

		res, err := svc.AssignUserToGroup(ctx, 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Success {
			t.Fatalf("result %+v", res)
		}
		created, _ := store.GroupByID(ctx, res.GroupID)
		if created == nil {
			t.Fatal("created group not stored")
		}
		if !created.StartDate.Equal(date(2026, time.July, 1)) {
			t.Fatalf("created start %s", FormatDate(created.StartDate))
		}
		if created.Status != model.GroupStatusActive {
			t.Fatalf("created status %s", created.Status)
		}
		if count, _ := store.CountActiveMembers(ctx, created.ID); count != 1 {
			t.Fatalf("member count %d", count)
		}
	})

	t.Run("NoGroupDueReportsFailure", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, date(2026, time.July, 1))
		// Deadline 2026-04-18 passed and the successor would start today,
		// which is not strictly future, so nothing can be created.
		seedGroup(t, svc, date(2026, time.April, 1), model.GroupStatusClosed)

		res, err := svc.AssignUserToGroup(ctx, 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Success {
			t.Fatalf("result %+v", res)
		}
		if res.Message == "" {
			t.Fatal("expected explanatory message")
		}
	})
}

func TestNormalizeAllGroups(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestService(store, date(2026, time.July, 5))

	aligned := seedGroup(t, svc, date(2026, time.July, 1), model.GroupStatusActive)

	// Hand-edited row: mid-quarter start, wrong derived dates, stale name.
	broken := &model.Group{
		Name:                 "Old Name",
		StartDate:            date(2026, time.February, 15),
		EndDate:              date(2026, time.December, 1),
		RegistrationDeadline: date(2026, time.March, 1),
		MaxMembers:           25,
		Status:               model.GroupStatusCompleted,
	}
	if err := store.CreateGroup(ctx, broken); err != nil {
		t.Fatalf("seed broken: %v", err)
	}

	updated, err := svc.NormalizeAllGroups(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != 1 {
		t.Fatalf("updated %d, want 1", updated)
	}

	g, _ := store.GroupByID(ctx, broken.ID)
	if !g.StartDate.Equal(date(2026, time.January, 1)) {
		t.Errorf("start %s", FormatDate(g.StartDate))
	}
	if !g.EndDate.Equal(date(2026, time.December, 31)) {
		t.Errorf("end %s", FormatDate(g.EndDate))
	}
	if !g.RegistrationDeadline.Equal(date(2026, time.January, 18)) {
		t.Errorf("deadline %s", FormatDate(g.RegistrationDeadline))
	}
	if g.Name != "Bible Bus January 2026 Travelers" {
		t.Errorf("name %q", g.Name)
	}
	if g.Status != model.GroupStatusCompleted || g.MaxMembers != 25 {
		t.Errorf("status/max touched: %s %d", g.Status, g.MaxMembers)
	}

	untouched, _ := store.GroupByID(ctx, aligned.ID)
	if untouched.Name != aligned.Name || !untouched.StartDate.Equal(aligned.StartDate) {
		t.Errorf("aligned group modified: %+v", untouched)
	}

	// Second pass finds nothing left to fix.
	updated, err = svc.NormalizeAllGroups(ctx)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if updated != 0 {
		t.Fatalf("second pass updated %d", updated)
	}
}

func TestGroupForUser(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestService(store, date(2026, time.July, 5))
	g := seedGroup(t, svc, date(2026, time.July, 1), model.GroupStatusActive)

	if _, err := svc.AssignUserToGroup(ctx, 7); err != nil {
		t.Fatalf("assign: %v", err)
	}

	got, err := svc.GroupForUser(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.ID != g.ID {
		t.Fatalf("got %+v", got)
	}

	none, err := svc.GroupForUser(ctx, 99)
	if err != nil || none != nil {
		t.Fatalf("got %v, %v", none, err)
	}
}
