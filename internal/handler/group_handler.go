package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thebiblebus/biblebus-backend/internal/middleware"
	"github.com/thebiblebus/biblebus-backend/internal/model"
	"github.com/thebiblebus/biblebus-backend/internal/response"
	"github.com/thebiblebus/biblebus-backend/internal/service"
)

// GroupHandler handles member- and public-facing group routes.
type GroupHandler struct {
	groupService *service.GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// groupView renders a group with calendar dates in YYYY-MM-DD form.
func groupView(g *model.Group) gin.H {
	return gin.H{
		"id":                    g.ID,
		"name":                  g.Name,
		"start_date":            service.FormatDate(g.StartDate),
		"end_date":              service.FormatDate(g.EndDate),
		"registration_deadline": service.FormatDate(g.RegistrationDeadline),
		"max_members":           g.MaxMembers,
		"status":                g.Status,
		"created_at":            g.CreatedAt,
	}
}

func memberView(m *model.GroupMemberDetail) gin.H {
	return gin.H{
		"id":        m.ID,
		"group_id":  m.GroupID,
		"user_id":   m.UserID,
		"full_name": m.FullName,
		"email":     m.Email,
		"join_date": service.FormatDate(m.JoinDate),
		"status":    m.Status,
	}
}

// CurrentGroup godoc
// GET /api/v1/public/groups/current
// Returns the group currently accepting registrations, 404 when none is.
func (h *GroupHandler) CurrentGroup(c *gin.Context) {
	group, err := h.groupService.CurrentActiveGroup(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if group == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNoOpenGroup)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"group": groupView(group)})
}

// MyGroup godoc
// GET /api/v1/member/group
// Returns the caller's group and its roster.
func (h *GroupHandler) MyGroup(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	group, err := h.groupService.GroupForUser(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if group == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	members, err := h.groupService.GroupMembers(c.Request.Context(), group.ID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	roster := make([]gin.H, 0, len(members))
	for i := range members {
		roster = append(roster, memberView(&members[i]))
	}

	response.Success(c, http.StatusOK, gin.H{
		"group":   groupView(group),
		"members": roster,
	})
}

// Join godoc
// POST /api/v1/member/group/join
// Assigns the caller to the group currently open for registration.
func (h *GroupHandler) Join(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	result, err := h.groupService.AssignUserToGroup(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if !result.Success {
		response.Success(c, http.StatusBadRequest, gin.H{"assignment": result})
		return
	}

	response.Success(c, http.StatusOK, gin.H{"assignment": result})
}
