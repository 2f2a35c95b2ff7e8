package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"adminhub/console/internal/session"
)

// Scheduler periodically re-fetches the profile so the cached user (and its
// approval status) tracks the backend's canonical copy between manual
// refreshes. It never establishes a session, it only refreshes one that is
// already authenticated.
type Scheduler struct {
	cron *cron.Cron
	ctrl *session.Controller
	spec string
	log  zerolog.Logger
}

func NewScheduler(ctrl *session.Controller, spec string, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron: c,
		ctrl: ctrl,
		spec: spec,
		log:  log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.refreshProfile); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for a running refresh to finish, up to a short grace period.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) refreshProfile() {
	if !s.ctrl.Snapshot().IsAuthenticated() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.log.Debug().Msg("scheduled profile refresh")
	s.ctrl.RefreshUser(ctx)
}
