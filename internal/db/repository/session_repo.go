package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ficotempo/competency-exam/internal/db/queries"
)

type sessionStore interface {
	GetLatestSessionByUser(ctx context.Context, userID uuid.UUID) (queries.TestSession, error)
	InsertSession(ctx context.Context, sessionID, userID uuid.UUID) (queries.TestSession, error)
	CompleteSession(ctx context.Context, sessionID, userID uuid.UUID) (int64, error)
	GetLatestCompletedSession(ctx context.Context, userID uuid.UUID) (queries.TestSession, error)
}

// SessionRepository contains DB helpers for exam attempt sessions.
type SessionRepository struct {
	store sessionStore
}

// NewSessionRepository constructs a new session repository.
func NewSessionRepository(store sessionStore) *SessionRepository {
	return &SessionRepository{store: store}
}

// Latest returns the most recently started session for a user, regardless of
// status. This row is authoritative for NEW/RESUME/COMPLETED gating.
func (r *SessionRepository) Latest(ctx context.Context, userID uuid.UUID) (queries.TestSession, error) {
	return r.store.GetLatestSessionByUser(ctx, userID)
}

// Create inserts a fresh START session.
func (r *SessionRepository) Create(ctx context.Context, sessionID, userID uuid.UUID) (queries.TestSession, error) {
	return r.store.InsertSession(ctx, sessionID, userID)
}

// Complete transitions START to COMPLETE, returning how many rows changed.
// Zero means the session was already complete (or unknown).
func (r *SessionRepository) Complete(ctx context.Context, sessionID, userID uuid.UUID) (int64, error) {
	return r.store.CompleteSession(ctx, sessionID, userID)
}

// LatestCompleted returns the newest COMPLETE session for the results view.
func (r *SessionRepository) LatestCompleted(ctx context.Context, userID uuid.UUID) (queries.TestSession, error) {
	return r.store.GetLatestCompletedSession(ctx, userID)
}
