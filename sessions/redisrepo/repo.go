// Package redisrepo stores admin sessions in redis so they survive restarts
// and can be shared between dashboard instances.
package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/jrsteele09/speet-admin/internal/errors"
	"github.com/jrsteele09/speet-admin/sessions"
	"github.com/redis/go-redis/v9"
)

type Repo struct {
	client redis.Cmdable
	prefix string
	now    func() time.Time
}

var _ sessions.Repo = (*Repo)(nil)

func New(client redis.Cmdable, prefix string) *Repo {
	return &Repo{client: client, prefix: prefix, now: time.Now}
}

func (r *Repo) key(sessionID string) string {
	return r.prefix + ":session:" + sessionID
}

// Upsert writes the session with a TTL matching its remaining lifetime.
func (r *Repo) Upsert(ctx context.Context, session sessions.Session) error {
	if session.ID == "" {
		return fmt.Errorf("session ID is required")
	}
	ttl := session.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return apperrors.ErrSessionExpired
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := r.client.Set(ctx, r.key(session.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, sessionID string) (sessions.Session, error) {
	if sessionID == "" {
		return sessions.Session{}, apperrors.ErrSessionNotFound
	}
	data, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return sessions.Session{}, apperrors.ErrSessionNotFound
	}
	if err != nil {
		return sessions.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var session sessions.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return sessions.Session{}, fmt.Errorf("decoding session %s: %w", sessionID, err)
	}
	if session.Expired(r.now()) {
		return sessions.Session{}, apperrors.ErrSessionExpired
	}
	return session, nil
}

func (r *Repo) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
