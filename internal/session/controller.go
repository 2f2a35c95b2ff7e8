package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"adminhub/console/internal/api"
	"adminhub/console/internal/models"
	"adminhub/console/internal/service"
	"adminhub/console/internal/store"
)

// Snapshot is an atomically consistent view of the session. The capability
// predicates are always computed from the snapshot's own fields, so they can
// never drift from the user they were derived from.
type Snapshot struct {
	User    *models.UserInfo
	Token   string
	Loading bool
}

func (s Snapshot) IsAuthenticated() bool { return s.Token != "" }
func (s Snapshot) IsAdmin() bool         { return s.User.IsAdmin() }
func (s Snapshot) IsApproved() bool      { return s.User.IsApproved() }

// Controller owns the current session. It is the single writer of the
// session store; everything else reads through Snapshot or Subscribe.
// Construct one per process and inject it, there is no package-level
// instance.
type Controller struct {
	svc   *service.AuthService
	store store.Store
	log   zerolog.Logger

	mu      sync.Mutex
	user    *models.UserInfo
	token   string
	loading bool
	seq     uint64
	subs    map[int]chan Snapshot
	nextSub int
}

func NewController(svc *service.AuthService, sessionStore store.Store, log zerolog.Logger) *Controller {
	return &Controller{
		svc:   svc,
		store: sessionStore,
		log:   log,
		// The session starts unresolved; Initialize settles it.
		loading: true,
		subs:    make(map[int]chan Snapshot),
	}
}

// Snapshot returns the current state. Readers never observe a half-applied
// transition.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers a listener for committed state transitions. Slow
// listeners miss intermediate snapshots rather than blocking the controller.
func (c *Controller) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 8)

	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		if _, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(ch)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}

// Initialize resolves the persisted session once at startup. A stored token
// is only trusted after the profile fetch for it succeeds; anything else
// tears the session down so memory is never authenticated with unverifiable
// data.
func (c *Controller) Initialize(ctx context.Context) {
	token, _ := c.store.Load(ctx)
	if token == "" {
		c.mu.Lock()
		c.seq++
		c.applyAnonymousLocked()
		c.mu.Unlock()
		return
	}

	seq := c.begin()
	c.resolveProfile(ctx, seq, token)
}

// Login authenticates against the backend. On success the returned token and
// user are persisted and applied exactly as the server sent them, without a
// second round trip. On failure the prior state is restored and the server's
// envelope is returned untouched so callers can surface its message.
func (c *Controller) Login(ctx context.Context, credentials models.Credentials) api.Envelope {
	seq := c.begin()

	envelope := c.svc.Login(ctx, credentials)
	if !envelope.Success {
		c.settle(seq)
		return envelope
	}

	var data models.LoginData
	if err := envelope.DecodeData(&data); err != nil || data.AccessToken == "" {
		c.log.Error().Err(err).Msg("login succeeded with unusable payload")
		c.settle(seq)
		return api.Envelope{Success: false, Message: "unexpected response from server"}
	}

	// Persist and apply under the same lock so a superseded call can neither
	// touch the store nor the in-memory state.
	c.mu.Lock()
	if seq == c.seq {
		if err := c.store.Save(ctx, data.AccessToken, &data.User); err != nil {
			c.log.Error().Err(err).Msg("persist session failed")
		}
		user := data.User
		c.user = &user
		c.token = data.AccessToken
		c.loading = false
		c.notifyLocked()
	}
	c.mu.Unlock()

	return envelope
}

// Register is a pass-through: new accounts start pending, so a successful
// registration does not establish a session.
func (c *Controller) Register(ctx context.Context, input models.RegisterInput) api.Envelope {
	seq := c.begin()
	envelope := c.svc.Register(ctx, input)
	c.settle(seq)
	return envelope
}

// Logout clears the store and resets to anonymous synchronously. The backend
// is never called; token expiry is the only server-side revocation. Safe to
// call when already anonymous.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	c.seq++
	if err := c.store.Clear(ctx); err != nil {
		c.log.Warn().Err(err).Msg("clear session store failed")
	}
	c.applyAnonymousLocked()
	c.mu.Unlock()
}

// RefreshUser re-fetches the canonical profile and re-persists it. Any
// failure is treated as an invalid session and tears it down; there is no
// retry.
func (c *Controller) RefreshUser(ctx context.Context) {
	token, _ := c.store.Load(ctx)
	seq := c.begin()
	c.resolveProfile(ctx, seq, token)
}

func (c *Controller) resolveProfile(ctx context.Context, seq uint64, token string) {
	envelope := c.svc.Profile(ctx)

	var user models.UserInfo
	ok := token != "" && envelope.Success
	if ok {
		if err := envelope.DecodeData(&user); err != nil || user.ID == 0 {
			c.log.Warn().Err(err).Msg("profile payload undecodable")
			ok = false
		}
	}

	if !ok {
		c.log.Info().Int("code", envelope.Code).Msg("session not resolvable, tearing down")
		c.mu.Lock()
		if seq == c.seq {
			if err := c.store.Clear(ctx); err != nil {
				c.log.Warn().Err(err).Msg("clear session store failed")
			}
			c.applyAnonymousLocked()
		}
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	if seq == c.seq {
		// The persisted copy may be stale; overwrite it with the fresh user.
		if err := c.store.Save(ctx, token, &user); err != nil {
			c.log.Error().Err(err).Msg("persist session failed")
		}
		c.user = &user
		c.token = token
		c.loading = false
		c.notifyLocked()
	}
	c.mu.Unlock()
}

// begin marks a mutating call in flight. The returned sequence number lets
// the call detect that a later one superseded it, in which case its result
// is discarded (last writer wins).
func (c *Controller) begin() uint64 {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.loading = true
	c.notifyLocked()
	c.mu.Unlock()
	return seq
}

// settle ends a mutating call that leaves user and token untouched.
func (c *Controller) settle(seq uint64) {
	c.mu.Lock()
	if seq == c.seq {
		c.loading = false
		c.notifyLocked()
	}
	c.mu.Unlock()
}

func (c *Controller) applyAnonymousLocked() {
	c.user = nil
	c.token = ""
	c.loading = false
	c.notifyLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		User:    c.user,
		Token:   c.token,
		Loading: c.loading,
	}
}

func (c *Controller) notifyLocked() {
	snap := c.snapshotLocked()
	for _, ch := range c.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}
