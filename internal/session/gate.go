// Package session tracks whether the user is authenticated and gates
// every other operation on that flag.
package session

import (
	"errors"

	"go.uber.org/zap"
)

// ErrNotAuthenticated is returned when an operation requires an
// authenticated session and there is none.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// Gate owns the authenticated flag. All other components treat an
// unauthenticated gate as a hard precondition and refuse to start
// operations.
type Gate struct {
	store         Store
	log           *zap.Logger
	authenticated bool
	onLogout      []func()
}

// NewGate creates a gate backed by store. The persisted flag is read
// once at construction; a truthy value restores the session without
// contacting any remote service.
func NewGate(store Store, log *zap.Logger) *Gate {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Gate{store: store, log: log}
	authed, err := store.Get()
	if err != nil {
		g.log.Warn("reading persisted session failed", zap.Error(err))
		return g
	}
	g.authenticated = authed
	return g
}

// Authenticated reports whether the session is authenticated.
func (g *Gate) Authenticated() bool {
	return g.authenticated
}

// Login marks the session authenticated and persists the flag.
// Idempotent.
func (g *Gate) Login() {
	g.authenticated = true
	if err := g.store.Set(true); err != nil {
		g.log.Warn("persisting session failed", zap.Error(err))
	}
	g.log.Info("session authenticated")
}

// Logout clears the session, removes the persisted flag and runs the
// registered reset hooks. Idempotent.
func (g *Gate) Logout() {
	g.authenticated = false
	if err := g.store.Remove(); err != nil {
		g.log.Warn("removing persisted session failed", zap.Error(err))
	}
	for _, fn := range g.onLogout {
		fn()
	}
	g.log.Info("session cleared")
}

// OnLogout registers fn to run on every Logout. Components use this to
// discard state that must not survive the session, such as the current
// search outcome.
func (g *Gate) OnLogout(fn func()) {
	g.onLogout = append(g.onLogout, fn)
}
