// Package inflight rejects a second concurrent submission of the same action.
package inflight

import (
	"sync"

	apperrors "github.com/jrsteele09/speet-admin/internal/errors"
)

type Guard struct {
	mu      sync.Mutex
	running map[string]struct{}
}

func New() *Guard {
	return &Guard{running: make(map[string]struct{})}
}

// Begin marks key as in progress. The returned release must be called once the
// operation settles; it is safe to call more than once.
func (g *Guard) Begin(key string) (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.running[key]; busy {
		return func() {}, apperrors.ErrInProgress
	}
	g.running[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.running, key)
			g.mu.Unlock()
		})
	}, nil
}

// Run executes fn under key, always releasing the key when fn returns or panics.
func (g *Guard) Run(key string, fn func() error) error {
	release, err := g.Begin(key)
	if err != nil {
		return err
	}
	defer release()
	return fn()
}

func (g *Guard) InProgress(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.running[key]
	return busy
}

// Key joins the owner (session or form identity) and the action name.
func Key(owner, action string) string {
	return owner + "/" + action
}
