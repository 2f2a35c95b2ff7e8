// Package guard gates navigation on session capabilities. Evaluation is a
// pure function over a session snapshot so it can be reasoned about and
// tested without HTTP; the gin adapter in middleware.go applies its
// decisions to gateway routes.
package guard

import "adminhub/console/internal/session"

// Requirements configures a guard. The zero value is NOT the default guard;
// use Default() to get the approved-required baseline.
type Requirements struct {
	RequireAdmin    bool
	RequireApproved bool
}

// Default requires an approved account but no admin role.
func Default() Requirements {
	return Requirements{RequireAdmin: false, RequireApproved: true}
}

// Admin requires the admin role on top of the defaults.
func Admin() Requirements {
	return Requirements{RequireAdmin: true, RequireApproved: true}
}

type Decision int

const (
	// DecisionLoading: session still resolving, show a placeholder only.
	DecisionLoading Decision = iota
	// DecisionSignIn: not authenticated, redirect to sign-in carrying the
	// requested location.
	DecisionSignIn
	// DecisionDowngrade: admin required but missing, silently send the user
	// to the default landing page instead of erroring.
	DecisionDowngrade
	// DecisionPending: approval required but the account is not approved,
	// show the blocking pending interstitial.
	DecisionPending
	// DecisionAllow: render the requested content.
	DecisionAllow
)

// Evaluate applies the checks in order, first match wins.
func Evaluate(snap session.Snapshot, req Requirements) Decision {
	switch {
	case snap.Loading:
		return DecisionLoading
	case !snap.IsAuthenticated():
		return DecisionSignIn
	case req.RequireAdmin && !snap.IsAdmin():
		return DecisionDowngrade
	case req.RequireApproved && !snap.IsApproved():
		return DecisionPending
	default:
		return DecisionAllow
	}
}
