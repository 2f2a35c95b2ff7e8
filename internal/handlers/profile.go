package handlers

import (
	"github.com/gin-gonic/gin"

	"adminhub/console/internal/models"
)

func (h HandlerSet) Profile(c *gin.Context) {
	envelope := h.svc.Profile(c.Request.Context())
	relay(c, envelope)
}

func (h HandlerSet) UpdateProfile(c *gin.Context) {
	var update models.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, err)
		return
	}

	envelope := h.svc.UpdateProfile(c.Request.Context(), update)
	if envelope.Success {
		// Keep the cached user consistent with the backend's canonical copy.
		h.ctrl.RefreshUser(c.Request.Context())
	}
	relay(c, envelope)
}

func (h HandlerSet) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		badRequest(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		badRequest(c, err)
		return
	}
	defer file.Close()

	envelope := h.svc.UploadAvatar(c.Request.Context(), fileHeader.Filename, file)
	if envelope.Success {
		h.ctrl.RefreshUser(c.Request.Context())
	}
	relay(c, envelope)
}
