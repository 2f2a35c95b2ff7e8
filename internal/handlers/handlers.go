package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"adminhub/console/internal/api"
	"adminhub/console/internal/config"
	"adminhub/console/internal/guard"
	"adminhub/console/internal/service"
	"adminhub/console/internal/session"
)

// HandlerSet is the thin view-glue surface. Handlers validate input, call
// into the session controller or auth service, and relay the backend
// envelope; no auth decision is made here.
type HandlerSet struct {
	log  zerolog.Logger
	cfg  *config.AppConfig
	ctrl *session.Controller
	svc  *service.AuthService
}

func NewHandlerSet(log zerolog.Logger, cfg *config.AppConfig, ctrl *session.Controller, svc *service.AuthService) HandlerSet {
	return HandlerSet{
		log:  log,
		cfg:  cfg,
		ctrl: ctrl,
		svc:  svc,
	}
}

func (h HandlerSet) Routes(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	router.POST("/signin", h.SignIn)
	router.POST("/signup", h.SignUp)
	router.POST("/signout", h.SignOut)

	router.GET("/session", h.Session)
	router.POST("/session/refresh", h.RefreshSession)

	protected := router.Group("/")
	protected.Use(guard.Protect(h.ctrl, guard.Default()))
	protected.GET("/profile", h.Profile)
	protected.PUT("/profile", h.UpdateProfile)
	protected.POST("/profile/avatar", h.UploadAvatar)

	admin := router.Group("/admin")
	admin.Use(guard.ProtectAdmin(h.ctrl))
	admin.GET("/users", h.AdminListUsers)
	admin.POST("/users/approve", h.AdminApproveUser)
}

// relay writes a backend envelope to the browser, mapping the envelope's own
// code onto the HTTP status where it makes sense.
func relay(c *gin.Context, envelope api.Envelope) {
	status := http.StatusOK
	if !envelope.Success {
		if envelope.Code >= 400 && envelope.Code < 600 {
			status = envelope.Code
		} else {
			status = http.StatusBadGateway
		}
	}
	c.JSON(status, envelope)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
