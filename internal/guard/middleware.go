package guard

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"adminhub/console/internal/session"
)

const (
	signInPath  = "/signin"
	landingPath = "/"
)

// SnapshotSource is the slice of the session controller the guards need.
type SnapshotSource interface {
	Snapshot() session.Snapshot
}

// Protect turns guard decisions into gateway behavior for one route group.
func Protect(src SnapshotSource, req Requirements) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := src.Snapshot()

		switch Evaluate(snap, req) {
		case DecisionLoading:
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"state": "loading",
			})
		case DecisionSignIn:
			from := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, signInPath+"?from="+from)
			c.Abort()
		case DecisionDowngrade:
			c.Redirect(http.StatusFound, landingPath)
			c.Abort()
		case DecisionPending:
			// Blocking interstitial, not a redirect. The payload names the
			// manual refresh affordance the UI offers on this screen.
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"state":   "pending_approval",
				"message": "your account is awaiting administrator approval",
				"refresh": "/session/refresh",
			})
		case DecisionAllow:
			c.Next()
		}
	}
}

// ProtectAdmin is the admin-only specialization of Protect.
func ProtectAdmin(src SnapshotSource) gin.HandlerFunc {
	return Protect(src, Admin())
}
