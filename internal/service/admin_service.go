package service

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"adminhub/console/internal/api"
	"adminhub/console/internal/models"
)

type approveUserRequest struct {
	UserID int64             `json:"user_id"`
	Status models.UserStatus `json:"status"`
}

// ListUsers fetches a page of the admin user listing.
func (s *AuthService) ListUsers(ctx context.Context, page, size int) api.Envelope {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	return s.client.Get(ctx, "/auth/admin/users", query)
}

func (s *AuthService) ApproveUser(ctx context.Context, userID int64) api.Envelope {
	return s.setUserStatus(ctx, userID, models.UserStatusApproved)
}

func (s *AuthService) RejectUser(ctx context.Context, userID int64) api.Envelope {
	return s.setUserStatus(ctx, userID, models.UserStatusRejected)
}

func (s *AuthService) setUserStatus(ctx context.Context, userID int64, status models.UserStatus) api.Envelope {
	return s.client.Do(ctx, http.MethodPost, "/auth/admin/approve-user", approveUserRequest{
		UserID: userID,
		Status: status,
	})
}
