package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"adminhub/console/internal/models"
)

func (h HandlerSet) AdminListUsers(c *gin.Context) {
	page := 1
	size := 10

	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 && v <= 100 {
		size = v
	}

	envelope := h.svc.ListUsers(c.Request.Context(), page, size)
	relay(c, envelope)
}

type approveRequest struct {
	UserID int64  `json:"user_id" binding:"required"`
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

func (h HandlerSet) AdminApproveUser(c *gin.Context) {
	var req approveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if req.Status == string(models.UserStatusApproved) {
		relay(c, h.svc.ApproveUser(c.Request.Context(), req.UserID))
		return
	}
	relay(c, h.svc.RejectUser(c.Request.Context(), req.UserID))
}
