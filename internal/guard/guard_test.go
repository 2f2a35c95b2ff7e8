package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"adminhub/console/internal/models"
	"adminhub/console/internal/session"
)

func snapshot(user *models.UserInfo, token string, loading bool) session.Snapshot {
	return session.Snapshot{User: user, Token: token, Loading: loading}
}

func user(role models.UserRole, status models.UserStatus) *models.UserInfo {
	return &models.UserInfo{ID: 1, Role: role, Status: status}
}

func TestEvaluateOrder(t *testing.T) {
	approvedUser := user(models.UserRoleUser, models.UserStatusApproved)
	pendingUser := user(models.UserRoleUser, models.UserStatusPending)
	pendingAdmin := user(models.UserRoleAdmin, models.UserStatusPending)
	admin := user(models.UserRoleAdmin, models.UserStatusApproved)

	tests := []struct {
		name string
		snap session.Snapshot
		req  Requirements
		want Decision
	}{
		{"loading wins over everything", snapshot(admin, "abc", true), Admin(), DecisionLoading},
		{"anonymous goes to sign-in", snapshot(nil, "", false), Default(), DecisionSignIn},
		{"anonymous beats admin check", snapshot(nil, "", false), Admin(), DecisionSignIn},
		{"non-admin downgraded", snapshot(approvedUser, "abc", false), Admin(), DecisionDowngrade},
		{"downgrade checked before approval", snapshot(pendingUser, "abc", false), Admin(), DecisionDowngrade},
		{"pending blocked", snapshot(pendingUser, "abc", false), Default(), DecisionPending},
		{"pending admin still blocked on approval", snapshot(pendingAdmin, "abc", false), Admin(), DecisionPending},
		{"approved user allowed", snapshot(approvedUser, "abc", false), Default(), DecisionAllow},
		{"admin allowed", snapshot(admin, "abc", false), Admin(), DecisionAllow},
		{"approval not required", snapshot(pendingUser, "abc", false), Requirements{}, DecisionAllow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.snap, tt.req))
		})
	}
}

func TestDefaultRequiresApprovalOnly(t *testing.T) {
	req := Default()
	assert.False(t, req.RequireAdmin)
	assert.True(t, req.RequireApproved)
}
