// Package session owns the authentication lifecycle: the bearer credential,
// its storage tier, validity checking, and the background refresh scheduler
// that renews the token before expiry and tears the session down on failure.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/dinebridge/dinebridge/internal/client/models"
	"github.com/dinebridge/dinebridge/internal/client/nav"
	"github.com/dinebridge/dinebridge/internal/client/storage"
	"github.com/dinebridge/dinebridge/internal/common"
	"github.com/dinebridge/dinebridge/internal/logging"
	"golang.org/x/sync/singleflight"
)

// State is the session lifecycle state.
type State string

const (
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
	StateRefreshing    State = "refreshing"
)

// refreshBuffer is how long before expiry the credential is renewed. When
// less than twice the buffer remains, refresh happens at the midpoint of
// the remaining lifetime instead.
const refreshBuffer = 5 * time.Minute

// AuthAPI is the slice of the backend the session manager depends on.
//
// Contract:
//   - Login: authenticate with email/password, returning user and token.
//   - Refresh: renew the current credential (ambient credential only).
//   - Logout: fire-and-forget server-side session invalidation.
//
// All methods must honor context cancellation/timeouts.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	Refresh(ctx context.Context) (*models.RefreshResponse, error)
	Logout(ctx context.Context) error
}

// stopTimer is the subset of *time.Timer the manager needs; swapped out in
// tests.
type stopTimer interface {
	Stop() bool
}

// Manager owns the credential and its refresh schedule. Construct one at
// the composition root and share it by reference; it is safe for
// concurrent use.
type Manager struct {
	api       AuthAPI
	durable   storage.Store
	ephemeral storage.Store
	navigator nav.Navigator
	logger    logging.Logger

	mu       sync.Mutex
	state    State
	token    string
	user     *models.User
	remember bool
	timer    stopTimer

	// refreshGroup collapses concurrent Refresh callers (timer-fired and
	// 401-triggered) into a single in-flight call.
	refreshGroup singleflight.Group

	// test seams
	now        func() time.Time
	startTimer func(d time.Duration, fn func()) stopTimer

	// locate supplies the "return to" hint used when a dead session
	// forces navigation back to login.
	locate func() string
}

// NewManager wires a session manager to its collaborators. durable holds
// the credential when the user asked to be remembered; ephemeral otherwise.
func NewManager(api AuthAPI, durable, ephemeral storage.Store, navigator nav.Navigator, logger logging.Logger) *Manager {
	if navigator == nil {
		navigator = nav.Nop{}
	}
	return &Manager{
		api:       api,
		durable:   durable,
		ephemeral: ephemeral,
		navigator: navigator,
		logger:    logger.With("component", "session"),
		state:     StateAnonymous,
		now:       time.Now,
		startTimer: func(d time.Duration, fn func()) stopTimer {
			return time.AfterFunc(d, fn)
		},
		locate: func() string { return "" },
	}
}

// SetLocationProvider installs the callback producing the current location
// hint carried through a forced re-login.
func (m *Manager) SetLocationProvider(fn func() string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if fn != nil {
		m.locate = fn
	}
}

// Restore loads a previously persisted session from the storage tiers,
// ephemeral first, and the last explicitly chosen storage preference from
// the durable tier. It is called once at startup; an expired or absent
// credential leaves the manager anonymous.
func (m *Manager) Restore(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, fromDurable, err := m.loadToken(ctx)
	if err != nil {
		return fmt.Errorf("restoring session: %w", err)
	}
	if token == "" {
		return nil
	}

	m.token = token
	m.remember = m.loadRemember(ctx, fromDurable)
	// The user record sits next to the token, which may be in the other
	// tier than the restored preference points at.
	if fromDurable {
		m.user = m.loadUser(ctx, m.durable)
	} else {
		m.user = m.loadUser(ctx, m.ephemeral)
	}

	if exp, ok := tokenExpiry(token); !ok || !exp.After(m.now()) {
		// Stale leftovers are not an error, just not a session.
		m.token = ""
		m.user = nil
		return nil
	}

	m.state = StateAuthenticated
	m.scheduleRefreshLocked()
	m.logger.Info(ctx, "session restored", "remember", m.remember)
	return nil
}

func (m *Manager) loadToken(ctx context.Context) (token string, remember bool, err error) {
	if value, ok, err := m.ephemeral.Get(ctx, storage.KeyToken); err != nil {
		return "", false, err
	} else if ok {
		return value, false, nil
	}
	if value, ok, err := m.durable.Get(ctx, storage.KeyToken); err != nil {
		return "", false, err
	} else if ok {
		return value, true, nil
	}
	return "", false, nil
}

// loadRemember reads the persisted storage preference. tierHint, the tier
// the token was actually found in, is the fallback when no preference was
// ever written or the stored value is mangled.
func (m *Manager) loadRemember(ctx context.Context, tierHint bool) bool {
	raw, ok, err := m.durable.Get(ctx, storage.KeyRemember)
	if err != nil || !ok {
		return tierHint
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return tierHint
	}
	return value
}

func (m *Manager) loadUser(ctx context.Context, store storage.Store) *models.User {
	raw, ok, err := store.Get(ctx, storage.KeyUser)
	if err != nil || !ok {
		return nil
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	return &user
}

// Login authenticates against the backend and, on success, stores the
// credential in the tier selected by remember and arms the refresh timer.
func (m *Manager) Login(ctx context.Context, email, password string, remember bool) (*models.User, error) {
	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.remember = remember
	m.token = resp.Token
	m.user = &resp.User
	m.state = StateAuthenticated

	if err := m.persistSessionLocked(ctx); err != nil {
		m.logger.Error(ctx, "persisting session failed", "error", err)
	}
	m.scheduleRefreshLocked()

	m.logger.Info(ctx, "logged in", "user", resp.User.Email, "remember", remember)
	return m.user, nil
}

func (m *Manager) persistSessionLocked(ctx context.Context) error {
	userJSON, err := json.Marshal(m.user)
	if err != nil {
		return err
	}
	if err := m.activeStoreLocked().SetMany(ctx, map[string]string{
		storage.KeyToken: m.token,
		storage.KeyUser:  string(userJSON),
	}); err != nil {
		return err
	}
	// The preference itself always lives in the durable tier.
	return m.durable.Set(ctx, storage.KeyRemember, strconv.FormatBool(m.remember))
}

// activeStoreLocked returns the tier matching the current preference.
// Switching the preference does not migrate a token already held by the
// other tier; that is intended behavior, not an oversight.
func (m *Manager) activeStoreLocked() storage.Store {
	if m.remember {
		return m.durable
	}
	return m.ephemeral
}

// Logout tears the session down. The server is notified best-effort first
// (while the credential is still attached); local teardown then proceeds
// unconditionally, clearing BOTH tiers so no stale token survives whatever
// the current preference is.
func (m *Manager) Logout(ctx context.Context) {
	if _, ok := m.Token(); ok {
		if err := m.api.Logout(ctx); err != nil {
			m.logger.Warn(ctx, "server logout failed", "error", err)
		}
	}

	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.token = ""
	m.user = nil
	m.state = StateAnonymous
	m.mu.Unlock()

	if err := m.durable.Clear(ctx); err != nil {
		m.logger.Warn(ctx, "clearing durable tier failed", "error", err)
	}
	if err := m.ephemeral.Clear(ctx); err != nil {
		m.logger.Warn(ctx, "clearing ephemeral tier failed", "error", err)
	}

	m.logger.Info(ctx, "logged out")
}

// Token implements api.CredentialSource.
func (m *Manager) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return "", false
	}
	return m.token, true
}

// IsValid reports whether a structurally valid, unexpired credential is
// held. Malformed tokens count as invalid, never as an error.
func (m *Manager) IsValid() bool {
	token, ok := m.Token()
	if !ok {
		return false
	}
	exp, ok := tokenExpiry(token)
	return ok && exp.After(m.now())
}

// IsAuthenticated is the route-guard view of the session.
func (m *Manager) IsAuthenticated() bool { return m.IsValid() }

// CurrentUser returns the logged-in user, or nil when anonymous.
func (m *Manager) CurrentUser() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	user := *m.user
	return &user
}

// CurrentState returns the lifecycle state.
func (m *Manager) CurrentState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// RefreshDelay computes how long to wait before renewing a credential with
// timeUntilExpiry remaining: the buffer is 5 minutes, or half the remaining
// lifetime when less than 10 minutes remain. Never negative.
func RefreshDelay(timeUntilExpiry time.Duration) time.Duration {
	if timeUntilExpiry <= 0 {
		return 0
	}
	buffer := timeUntilExpiry / 2
	if buffer > refreshBuffer {
		buffer = refreshBuffer
	}
	return timeUntilExpiry - buffer
}

// ScheduleRefresh (re)arms the one-shot refresh timer. Any previously armed
// timer is cancelled first, so at most one is ever pending. Without a
// decodable expiry this is a no-op.
func (m *Manager) ScheduleRefresh() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scheduleRefreshLocked()
}

func (m *Manager) scheduleRefreshLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}

	exp, ok := tokenExpiry(m.token)
	if !ok {
		return
	}

	delay := RefreshDelay(exp.Sub(m.now()))
	m.timer = m.startTimer(delay, func() {
		_ = m.Refresh(context.Background())
	})
}

// Refresh renews the credential. Concurrent callers (the timer and the
// 401 path) share a single in-flight attempt. On success the credential is
// replaced in the active tier and the timer re-armed; on any failure the
// session is torn down and the user sent back to login with a return-to
// hint.
func (m *Manager) Refresh(ctx context.Context) error {
	_, err, _ := m.refreshGroup.Do("refresh", func() (any, error) {
		return nil, m.doRefresh(ctx)
	})
	return err
}

func (m *Manager) doRefresh(ctx context.Context) error {
	m.mu.Lock()
	if m.token == "" {
		m.mu.Unlock()
		return common.ErrUnauthorized
	}
	m.state = StateRefreshing
	m.mu.Unlock()

	resp, err := m.api.Refresh(ctx)
	if err != nil {
		m.logger.Warn(ctx, "token refresh failed", "error", err)
		returnTo := m.locateHint()
		m.Logout(ctx)
		m.navigator.ToLogin(returnTo)
		return fmt.Errorf("refreshing session: %w", err)
	}

	m.mu.Lock()
	m.token = resp.Token
	m.state = StateAuthenticated
	if storeErr := m.activeStoreLocked().Set(ctx, storage.KeyToken, m.token); storeErr != nil {
		m.logger.Error(ctx, "persisting refreshed token failed", "error", storeErr)
	}
	m.scheduleRefreshLocked()
	m.mu.Unlock()

	m.logger.Debug(ctx, "token refreshed")
	return nil
}

// HandleUnauthorized is the API client's 401 hook: it attempts a refresh
// (Refresh handles teardown and navigation on failure) or, with no
// credential at all, goes straight back to login.
//
// While a refresh attempt is already in flight the hook is a no-op: a 401
// surfacing then comes from the refresh (or logout) call itself, and
// re-entering Refresh here would join the singleflight key and wait on the
// very call that invoked the hook. The in-flight attempt's failure path
// performs the teardown.
func (m *Manager) HandleUnauthorized(ctx context.Context) {
	if m.CurrentState() == StateRefreshing {
		return
	}
	if _, ok := m.Token(); !ok {
		m.navigator.ToLogin(m.locateHint())
		return
	}
	_ = m.Refresh(ctx)
}

func (m *Manager) locateHint() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locate()
}
