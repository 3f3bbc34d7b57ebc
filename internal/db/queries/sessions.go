package queries

import (
	"context"

	"github.com/google/uuid"
)

const getLatestSessionByUser = `
SELECT user_test_id, user_id, test_status, started_at, completed_at
FROM user_test
WHERE user_id = $1
ORDER BY started_at DESC
LIMIT 1
`

func (q *Queries) GetLatestSessionByUser(ctx context.Context, userID uuid.UUID) (TestSession, error) {
	row := q.db.QueryRow(ctx, getLatestSessionByUser, userID)
	var s TestSession
	err := row.Scan(&s.SessionID, &s.UserID, &s.Status, &s.StartedAt, &s.CompletedAt)
	return s, err
}

const insertSession = `
INSERT INTO user_test (user_test_id, user_id, test_status, started_at)
VALUES ($1, $2, 'START', now())
RETURNING user_test_id, user_id, test_status, started_at, completed_at
`

func (q *Queries) InsertSession(ctx context.Context, sessionID, userID uuid.UUID) (TestSession, error) {
	row := q.db.QueryRow(ctx, insertSession, sessionID, userID)
	var s TestSession
	err := row.Scan(&s.SessionID, &s.UserID, &s.Status, &s.StartedAt, &s.CompletedAt)
	return s, err
}

// The status guard keeps the transition idempotent: a repeated finalize
// matches zero rows and completed_at is never re-stamped.
const completeSession = `
UPDATE user_test
SET test_status = 'COMPLETE', completed_at = now()
WHERE user_test_id = $1 AND user_id = $2 AND test_status = 'START'
`

func (q *Queries) CompleteSession(ctx context.Context, sessionID, userID uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, completeSession, sessionID, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const getLatestCompletedSession = `
SELECT user_test_id, user_id, test_status, started_at, completed_at
FROM user_test
WHERE user_id = $1 AND test_status = 'COMPLETE'
ORDER BY completed_at DESC
LIMIT 1
`

func (q *Queries) GetLatestCompletedSession(ctx context.Context, userID uuid.UUID) (TestSession, error) {
	row := q.db.QueryRow(ctx, getLatestCompletedSession, userID)
	var s TestSession
	err := row.Scan(&s.SessionID, &s.UserID, &s.Status, &s.StartedAt, &s.CompletedAt)
	return s, err
}

const countCompletedUsers = `
SELECT COUNT(DISTINCT user_id) FROM user_test WHERE test_status = 'COMPLETE'
`

func (q *Queries) CountCompletedUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countCompletedUsers).Scan(&n)
	return n, err
}
