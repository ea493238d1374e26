package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/thebiblebus/biblebus-backend/internal/model"
	"github.com/thebiblebus/biblebus-backend/internal/response"
	"github.com/thebiblebus/biblebus-backend/internal/service"
	"github.com/thebiblebus/biblebus-backend/internal/validator"
)

// AdminGroupHandler handles admin-facing group lifecycle management.
type AdminGroupHandler struct {
	groupService *service.GroupService
	log          zerolog.Logger
}

// NewAdminGroupHandler creates a new AdminGroupHandler.
func NewAdminGroupHandler(groupService *service.GroupService, log zerolog.Logger) *AdminGroupHandler {
	return &AdminGroupHandler{
		groupService: groupService,
		log:          log.With().Str("component", "admin_group_handler").Logger(),
	}
}

// ListGroups godoc
// GET /api/v1/admin/groups
// Lists all groups with their active member counts.
func (h *AdminGroupHandler) ListGroups(c *gin.Context) {
	groups, err := h.groupService.AllGroupsWithMemberCounts(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	views := make([]gin.H, 0, len(groups))
	for i := range groups {
		view := groupView(&groups[i].Group)
		view["member_count"] = groups[i].MemberCount
		views = append(views, view)
	}

	response.Success(c, http.StatusOK, gin.H{"groups": views})
}

// CreateGroupRequest is the payload for creating a group. StartDate is
// aligned to its quarter; the rest are optional overrides.
type CreateGroupRequest struct {
	StartDate  string `json:"start_date" binding:"required"`
	MaxMembers int    `json:"max_members" binding:"omitempty,min=1"`
	Status     string `json:"status" binding:"omitempty,oneof=upcoming active closed completed"`
	Name       string `json:"name" binding:"omitempty,max=200"`
}

// CreateGroup godoc
// POST /api/v1/admin/groups
func (h *AdminGroupHandler) CreateGroup(c *gin.Context) {
	var req CreateGroupRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	start, err := service.ParseDate(req.StartDate)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrMalformedDate)
		return
	}

	group, err := h.groupService.CreateGroupWithStart(
		c.Request.Context(), start, req.MaxMembers, model.GroupStatus(req.Status), req.Name)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"group": groupView(group)})
}

// GetGroup godoc
// GET /api/v1/admin/groups/:id
func (h *AdminGroupHandler) GetGroup(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	group, err := h.groupService.GroupByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if group == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"group": groupView(group)})
}

// GetGroupMembers godoc
// GET /api/v1/admin/groups/:id/members
func (h *AdminGroupHandler) GetGroupMembers(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	group, err := h.groupService.GroupByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if group == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	members, err := h.groupService.GroupMembers(c.Request.Context(), id)
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

// ActivateGroup godoc
// POST /api/v1/admin/groups/:id/activate
// Refused while a different group is still open for registration.
func (h *AdminGroupHandler) ActivateGroup(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	group, err := h.groupService.ActivateGroup(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAnotherGroupOpen) {
			response.Fail(c, http.StatusConflict, response.ErrGroupAlreadyOpen)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if group == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"group": groupView(group)})
}

// RunLifecycle godoc
// POST /api/v1/admin/groups/lifecycle/run
// On-demand version of the periodic sweep: transition statuses, then create
// the next quarterly group if one is due.
func (h *AdminGroupHandler) RunLifecycle(c *gin.Context) {
	counts, err := h.groupService.UpdateGroupStatuses(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	created, err := h.groupService.CreateNextQuarterlyGroup(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	result := gin.H{"transitions": counts}
	if created != nil {
		result["created"] = groupView(created)
	}
	response.Success(c, http.StatusOK, result)
}

// NormalizeGroups godoc
// POST /api/v1/admin/groups/normalize
// Repairs groups whose dates or names drifted from their aligned values.
func (h *AdminGroupHandler) NormalizeGroups(c *gin.Context) {
	updated, err := h.groupService.NormalizeAllGroups(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": updated})
}

// AssignUser godoc
// POST /api/v1/admin/users/:id/assign
// Places a user in the group currently open for registration.
func (h *AdminGroupHandler) AssignUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	result, err := h.groupService.AssignUserToGroup(c.Request.Context(), userID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	response.Success(c, status, gin.H{"assignment": result})
}
