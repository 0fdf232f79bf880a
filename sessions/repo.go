package sessions

import "context"

// Repo stores sessions by ID. Implementations return apperrors.ErrSessionNotFound
// for unknown IDs and apperrors.ErrSessionExpired once ExpiresAt has passed.
type Repo interface {
	Upsert(ctx context.Context, session Session) error
	Get(ctx context.Context, sessionID string) (Session, error)
	// Delete is a no-op for unknown IDs
	Delete(ctx context.Context, sessionID string) error
}
