package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/thebiblebus/biblebus-backend/internal/model"
)

const groupColumns = `id, name, start_date, end_date, registration_deadline, max_members, status, created_at`

// GroupRepository handles group and membership data access. It implements
// service.GroupStore.
type GroupRepository struct {
	pool *pgxpool.Pool
}

// NewGroupRepository creates a new GroupRepository.
func NewGroupRepository(pool *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{pool: pool}
}

func scanGroup(row pgx.Row) (*model.Group, error) {
	g := &model.Group{}
	err := row.Scan(&g.ID, &g.Name, &g.StartDate, &g.EndDate, &g.RegistrationDeadline,
		&g.MaxMembers, &g.Status, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return g, nil
}

// CreateGroup inserts a new group and fills in its assigned ID.
func (r *GroupRepository) CreateGroup(ctx context.Context, g *model.Group) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO groups (name, start_date, end_date, registration_deadline, max_members, status)
		 VALUES ($1, $2::date, $3::date, $4::date, $5, $6)
		 RETURNING id, created_at`,
		g.Name, g.StartDate, g.EndDate, g.RegistrationDeadline, g.MaxMembers, g.Status,
	).Scan(&g.ID, &g.CreatedAt)
}

// GroupByID retrieves a group by its ID, or nil when it does not exist.
func (r *GroupRepository) GroupByID(ctx context.Context, id int) (*model.Group, error) {
	return scanGroup(r.pool.QueryRow(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE id = $1`, id))
}

// CurrentOpenGroup returns the earliest-starting upcoming or active group
// whose registration deadline is on or after today.
func (r *GroupRepository) CurrentOpenGroup(ctx context.Context, today time.Time) (*model.Group, error) {
	return scanGroup(r.pool.QueryRow(ctx,
		`SELECT `+groupColumns+`
		 FROM groups
		 WHERE status IN ('upcoming', 'active') AND registration_deadline >= $1::date
		 ORDER BY start_date ASC
		 LIMIT 1`, today))
}

// NextUpcomingGroup returns the earliest-starting group in upcoming status.
func (r *GroupRepository) NextUpcomingGroup(ctx context.Context) (*model.Group, error) {
	return scanGroup(r.pool.QueryRow(ctx,
		`SELECT `+groupColumns+`
		 FROM groups
		 WHERE status = 'upcoming'
		 ORDER BY start_date ASC
		 LIMIT 1`))
}

// LatestStartedGroup returns the most recently started group of any status.
func (r *GroupRepository) LatestStartedGroup(ctx context.Context) (*model.Group, error) {
	return scanGroup(r.pool.QueryRow(ctx,
		`SELECT `+groupColumns+`
		 FROM groups
		 ORDER BY start_date DESC
		 LIMIT 1`))
}

// ListGroups retrieves all groups ordered by start date.
func (r *GroupRepository) ListGroups(ctx context.Context) ([]model.Group, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+groupColumns+` FROM groups ORDER BY start_date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []model.Group
	for rows.Next() {
		var g model.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.StartDate, &g.EndDate, &g.RegistrationDeadline,
			&g.MaxMembers, &g.Status, &g.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// ListGroupsWithCounts retrieves all groups with their active member counts.
func (r *GroupRepository) ListGroupsWithCounts(ctx context.Context) ([]model.GroupWithCount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT g.id, g.name, g.start_date, g.end_date, g.registration_deadline,
		        g.max_members, g.status, g.created_at,
		        COUNT(m.id) FILTER (WHERE m.status = 'active') AS member_count
		 FROM groups g
		 LEFT JOIN group_members m ON m.group_id = g.id
		 GROUP BY g.id
		 ORDER BY g.start_date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []model.GroupWithCount
	for rows.Next() {
		var g model.GroupWithCount
		if err := rows.Scan(&g.ID, &g.Name, &g.StartDate, &g.EndDate, &g.RegistrationDeadline,
			&g.MaxMembers, &g.Status, &g.CreatedAt, &g.MemberCount); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// UpdateGroupStatus sets a group's lifecycle status.
func (r *GroupRepository) UpdateGroupStatus(ctx context.Context, id int, status model.GroupStatus) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE groups SET status = $1 WHERE id = $2`, status, id)
	return err
}

// RewriteGroupSchedule overwrites a group's name and all three schedule
// dates in one statement. Used by the normalization repair pass.
func (r *GroupRepository) RewriteGroupSchedule(ctx context.Context, id int, name string, start, end, deadline time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE groups
		 SET name = $1, start_date = $2::date, end_date = $3::date, registration_deadline = $4::date
		 WHERE id = $5`,
		name, start, end, deadline, id)
	return err
}

// CountActiveMembers counts a group's active memberships.
func (r *GroupRepository) CountActiveMembers(ctx context.Context, groupID int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM group_members WHERE group_id = $1 AND status = 'active'`,
		groupID,
	).Scan(&count)
	return count, err
}

// HasActiveMember reports whether the user already holds an active
// membership in the group.
func (r *GroupRepository) HasActiveMember(ctx context.Context, groupID, userID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM group_members
		   WHERE group_id = $1 AND user_id = $2 AND status = 'active'
		 )`, groupID, userID,
	).Scan(&exists)
	return exists, err
}

// AddMember inserts an active membership inside a transaction that locks the
// group row and rechecks capacity, so two racing assignments cannot push the
// group past max_members. A duplicate active membership surfaces as
// model.ErrMemberExists via the partial unique index.
func (r *GroupRepository) AddMember(ctx context.Context, m *model.GroupMember) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var maxMembers int
	if err := tx.QueryRow(ctx,
		`SELECT max_members FROM groups WHERE id = $1 FOR UPDATE`, m.GroupID,
	).Scan(&maxMembers); err != nil {
		return err
	}

	var count int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM group_members WHERE group_id = $1 AND status = 'active'`,
		m.GroupID,
	).Scan(&count); err != nil {
		return err
	}
	if count >= maxMembers {
		return model.ErrGroupCapacity
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO group_members (group_id, user_id, join_date, status)
		 VALUES ($1, $2, $3::date, $4)
		 RETURNING id, created_at`,
		m.GroupID, m.UserID, m.JoinDate, m.Status,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrMemberExists
		}
		return err
	}

	return tx.Commit(ctx)
}

// ListMembers retrieves a group's roster joined with user details.
func (r *GroupRepository) ListMembers(ctx context.Context, groupID int) ([]model.GroupMemberDetail, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT m.id, m.group_id, m.user_id, m.join_date, m.status, m.created_at,
		        u.full_name, u.email
		 FROM group_members m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.group_id = $1
		 ORDER BY m.join_date ASC, m.id ASC`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []model.GroupMemberDetail
	for rows.Next() {
		var m model.GroupMemberDetail
		if err := rows.Scan(&m.ID, &m.GroupID, &m.UserID, &m.JoinDate, &m.Status, &m.CreatedAt,
			&m.FullName, &m.Email); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// MemberGroup returns the group a user currently actively belongs to, or nil.
func (r *GroupRepository) MemberGroup(ctx context.Context, userID int) (*model.Group, error) {
	return scanGroup(r.pool.QueryRow(ctx,
		`SELECT g.id, g.name, g.start_date, g.end_date, g.registration_deadline,
		        g.max_members, g.status, g.created_at
		 FROM groups g
		 JOIN group_members m ON m.group_id = g.id
		 WHERE m.user_id = $1 AND m.status = 'active'
		 ORDER BY g.start_date DESC
		 LIMIT 1`, userID))
}
