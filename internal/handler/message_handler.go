package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thebiblebus/biblebus-backend/internal/middleware"
	"github.com/thebiblebus/biblebus-backend/internal/model"
	"github.com/thebiblebus/biblebus-backend/internal/response"
	"github.com/thebiblebus/biblebus-backend/internal/service"
	"github.com/thebiblebus/biblebus-backend/internal/validator"
)

// MessageHandler handles admin announcements.
type MessageHandler struct {
	messageService *service.MessageService
	groupService   *service.GroupService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService *service.MessageService, groupService *service.GroupService) *MessageHandler {
	return &MessageHandler{messageService: messageService, groupService: groupService}
}

// CreateMessageRequest is the payload for posting an announcement.
type CreateMessageRequest struct {
	Subject  string `json:"subject" binding:"required,min=1,max=200"`
	Body     string `json:"body" binding:"required,min=1"`
	Audience string `json:"audience" binding:"required,oneof=all group"`
	GroupID  *int   `json:"group_id" binding:"omitempty,min=1"`
}

// CreateMessage godoc
// POST /api/v1/admin/messages
// Stores the announcement and queues it for delivery.
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req CreateMessageRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if req.Audience == string(model.AudienceGroup) && req.GroupID == nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"group_id": "group_id is required for a group announcement"})
		return
	}

	msg := &model.Message{
		SenderID: claims.UserID,
		Subject:  req.Subject,
		Body:     req.Body,
		Audience: model.MessageAudience(req.Audience),
		GroupID:  req.GroupID,
	}
	if err := h.messageService.Create(c.Request.Context(), msg); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": msg})
}

// ListMessages godoc
// GET /api/v1/admin/messages
func (h *MessageHandler) ListMessages(c *gin.Context) {
	messages, err := h.messageService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"messages": messages})
}

// ListMyMessages godoc
// GET /api/v1/member/messages
// Returns announcements for everyone plus the caller's group.
func (h *MessageHandler) ListMyMessages(c *gin.Context) {
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

	groupID := 0
	if group != nil {
		groupID = group.ID
	}

	messages, err := h.messageService.ListForGroup(c.Request.Context(), groupID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"messages": messages})
}
