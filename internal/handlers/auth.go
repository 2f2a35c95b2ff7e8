package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adminhub/console/internal/models"
)

func (h HandlerSet) SignIn(c *gin.Context) {
	var credentials models.Credentials
	if err := c.ShouldBindJSON(&credentials); err != nil {
		badRequest(c, err)
		return
	}

	envelope := h.ctrl.Login(c.Request.Context(), credentials)
	relay(c, envelope)
}

func (h HandlerSet) SignUp(c *gin.Context) {
	var input models.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	envelope := h.ctrl.Register(c.Request.Context(), input)
	relay(c, envelope)
}

func (h HandlerSet) SignOut(c *gin.Context) {
	h.ctrl.Logout(c.Request.Context())
	c.Status(http.StatusNoContent)
}

type sessionResponse struct {
	User            *models.UserInfo `json:"user"`
	IsAuthenticated bool             `json:"is_authenticated"`
	IsAdmin         bool             `json:"is_admin"`
	IsApproved      bool             `json:"is_approved"`
	IsLoading       bool             `json:"is_loading"`
}

func (h HandlerSet) Session(c *gin.Context) {
	snap := h.ctrl.Snapshot()

	c.JSON(http.StatusOK, sessionResponse{
		User:            snap.User,
		IsAuthenticated: snap.IsAuthenticated(),
		IsAdmin:         snap.IsAdmin(),
		IsApproved:      snap.IsApproved(),
		IsLoading:       snap.Loading,
	})
}

// RefreshSession is the manual refresh affordance shown on the pending
// approval screen.
func (h HandlerSet) RefreshSession(c *gin.Context) {
	h.ctrl.RefreshUser(c.Request.Context())
	h.Session(c)
}
