package store

import (
	"context"

	"adminhub/console/internal/models"
)

// Store persists the session's two entries, the bearer token and the
// serialized user record. They are always written together and cleared
// together; the session controller is the only expected writer.
type Store interface {
	Save(ctx context.Context, token string, user *models.UserInfo) error
	// Load returns whatever survives on disk. A corrupt user entry is
	// discarded silently and reported as a nil user.
	Load(ctx context.Context) (token string, user *models.UserInfo)
	Clear(ctx context.Context) error
}
