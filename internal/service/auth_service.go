package service

import (
	"context"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"adminhub/console/internal/api"
	"adminhub/console/internal/models"
	"adminhub/console/internal/store"
)

// AuthService is a stateless facade over the backend's auth endpoints. It
// holds no session of its own; the predicates at the bottom consult the last
// persisted store contents, which the session controller keeps fresh.
type AuthService struct {
	client *api.Client
	store  store.Store
	log    zerolog.Logger
}

func NewAuthService(client *api.Client, sessionStore store.Store, log zerolog.Logger) *AuthService {
	return &AuthService{
		client: client,
		store:  sessionStore,
		log:    log,
	}
}

func (s *AuthService) Register(ctx context.Context, input models.RegisterInput) api.Envelope {
	return s.client.Do(ctx, http.MethodPost, "/auth/register", input)
}

func (s *AuthService) Login(ctx context.Context, credentials models.Credentials) api.Envelope {
	return s.client.Do(ctx, http.MethodPost, "/auth/login", credentials)
}

func (s *AuthService) Profile(ctx context.Context) api.Envelope {
	return s.client.Do(ctx, http.MethodGet, "/auth/profile", nil)
}

func (s *AuthService) UpdateProfile(ctx context.Context, update models.ProfileUpdate) api.Envelope {
	return s.client.Do(ctx, http.MethodPut, "/auth/profile", update)
}

func (s *AuthService) UploadAvatar(ctx context.Context, filename string, file io.Reader) api.Envelope {
	return s.client.Upload(ctx, "/auth/profile/avatar", "avatar", filename, file)
}

// IsAuthenticated reports whether a token is currently persisted.
func (s *AuthService) IsAuthenticated(ctx context.Context) bool {
	token, _ := s.store.Load(ctx)
	return token != ""
}

func (s *AuthService) IsAdmin(ctx context.Context) bool {
	_, user := s.store.Load(ctx)
	return user.IsAdmin()
}

func (s *AuthService) IsApproved(ctx context.Context) bool {
	_, user := s.store.Load(ctx)
	return user.IsApproved()
}
