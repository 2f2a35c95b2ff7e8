package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"adminhub/console/internal/models"
)

const (
	tokenFile = "access_token"
	userFile  = "user_info.json"
)

// FileStore keeps the session under a state directory, one file per entry.
type FileStore struct {
	dir string
	log zerolog.Logger
}

func NewFileStore(dir string, log zerolog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, log: log}, nil
}

func (s *FileStore) Save(_ context.Context, token string, user *models.UserInfo) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, userFile), data, 0o600)
}

func (s *FileStore) Load(_ context.Context) (string, *models.UserInfo) {
	var token string
	if raw, err := os.ReadFile(filepath.Join(s.dir, tokenFile)); err == nil {
		token = strings.TrimSpace(string(raw))
	}

	raw, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return token, nil
	}

	var user models.UserInfo
	if err := json.Unmarshal(raw, &user); err != nil {
		// Corrupt entry: drop it and carry on with the token alone.
		s.log.Warn().Err(err).Msg("discarding corrupt persisted user")
		_ = os.Remove(filepath.Join(s.dir, userFile))
		return token, nil
	}
	return token, &user
}

func (s *FileStore) Clear(_ context.Context) error {
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}
