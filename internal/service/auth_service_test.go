package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adminhub/console/internal/api"
	"adminhub/console/internal/models"
	"adminhub/console/internal/store"
)

func newService(t *testing.T, handler http.Handler) (*AuthService, store.Store) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	fileStore, err := store.NewFileStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	client := api.NewClient(srv.URL, 2*time.Second, func(ctx context.Context) string {
		token, _ := fileStore.Load(ctx)
		return token
	}, zerolog.Nop())

	return NewAuthService(client, fileStore, zerolog.Nop()), fileStore
}

func okJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"success": true, "code": 200, "message": "ok", "data": data})
}

func TestPredicatesConsultPersistedStore(t *testing.T) {
	ctx := context.Background()
	svc, sessionStore := newService(t, http.NotFoundHandler())

	assert.False(t, svc.IsAuthenticated(ctx))
	assert.False(t, svc.IsAdmin(ctx))
	assert.False(t, svc.IsApproved(ctx))

	admin := &models.UserInfo{ID: 1, Role: models.UserRoleAdmin, Status: models.UserStatusApproved}
	require.NoError(t, sessionStore.Save(ctx, "abc", admin))

	assert.True(t, svc.IsAuthenticated(ctx))
	assert.True(t, svc.IsAdmin(ctx))
	assert.True(t, svc.IsApproved(ctx))

	pending := &models.UserInfo{ID: 2, Role: models.UserRoleUser, Status: models.UserStatusPending}
	require.NoError(t, sessionStore.Save(ctx, "abc", pending))

	assert.True(t, svc.IsAuthenticated(ctx))
	assert.False(t, svc.IsAdmin(ctx))
	assert.False(t, svc.IsApproved(ctx))
}

func TestPredicatesSurviveCorruptUserEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	fileStore, err := store.NewFileStore(dir, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, fileStore.Save(ctx, "abc", &models.UserInfo{ID: 1, Role: models.UserRoleAdmin, Status: models.UserStatusApproved}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user_info.json"), []byte("{broken"), 0o600))

	client := api.NewClient("http://127.0.0.1:0", time.Second, nil, zerolog.Nop())
	svc := NewAuthService(client, fileStore, zerolog.Nop())

	// Token survives, capabilities degrade without panicking.
	assert.True(t, svc.IsAuthenticated(ctx))
	assert.False(t, svc.IsAdmin(ctx))
	assert.False(t, svc.IsApproved(ctx))
}

func TestUpdateProfileUsesPut(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		okJSON(w, nil)
	}))

	nickname := "ada"
	envelope := svc.UpdateProfile(context.Background(), models.ProfileUpdate{Nickname: &nickname})

	require.True(t, envelope.Success)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/auth/profile", gotPath)
	assert.Equal(t, map[string]any{"nickname": "ada"}, gotBody)
}

func TestUploadAvatarPostsMultipart(t *testing.T) {
	var gotContentType string
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_, header, err := r.FormFile("avatar")
		require.NoError(t, err)
		assert.Equal(t, "me.png", header.Filename)
		okJSON(w, nil)
	}))

	envelope := svc.UploadAvatar(context.Background(), "me.png", strings.NewReader("pngbytes"))

	require.True(t, envelope.Success)
	assert.Contains(t, gotContentType, "multipart/form-data")
}

func TestListUsersPagination(t *testing.T) {
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/admin/users", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("size"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"code":    200,
			"message": "ok",
			"data": []map[string]any{
				{"id": 1, "first_name": "Ada", "role": "user", "status": "pending"},
			},
			"pagination": map[string]any{
				"page": 2, "size": 10, "total": 11, "pages": 2, "has_next": false, "has_prev": true,
			},
		})
	}))

	envelope := svc.ListUsers(context.Background(), 2, 10)

	require.True(t, envelope.Success)
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, 2, envelope.Pagination.Page)
	assert.True(t, envelope.Pagination.HasPrev)

	var users []models.UserInfo
	require.NoError(t, envelope.DecodeData(&users))
	require.Len(t, users, 1)
	assert.Equal(t, models.UserStatusPending, users[0].Status)
}

func TestApproveAndRejectUser(t *testing.T) {
	var bodies []map[string]any
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/admin/approve-user", r.URL.Path)

		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		bodies = append(bodies, body)
		okJSON(w, nil)
	}))

	require.True(t, svc.ApproveUser(context.Background(), 42).Success)
	require.True(t, svc.RejectUser(context.Background(), 43).Success)

	require.Len(t, bodies, 2)
	assert.Equal(t, map[string]any{"user_id": float64(42), "status": "approved"}, bodies[0])
	assert.Equal(t, map[string]any{"user_id": float64(43), "status": "rejected"}, bodies[1])
}
