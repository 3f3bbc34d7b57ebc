package queries

import (
	"context"

	"github.com/google/uuid"
)

const createUser = `
INSERT INTO users_data (user_id, username, password_hash, nama_lengkap, email, no_telp, user_role_as)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING user_id, username, password_hash, nama_lengkap, email, no_telp, user_role_as, created_at
`

// CreateUserParams carries an admin-provisioned account.
type CreateUserParams struct {
	UserID       uuid.UUID
	Username     string
	PasswordHash string
	FullName     string
	Email        *string
	Phone        *string
	Role         string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser,
		arg.UserID, arg.Username, arg.PasswordHash, arg.FullName, arg.Email, arg.Phone, arg.Role)
	var u User
	err := row.Scan(&u.UserID, &u.Username, &u.PasswordHash, &u.FullName, &u.Email, &u.Phone, &u.Role, &u.CreatedAt)
	return u, err
}

const getUserByUsername = `
SELECT user_id, username, password_hash, nama_lengkap, email, no_telp, user_role_as, created_at
FROM users_data
WHERE username = $1
`

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByUsername, username)
	var u User
	err := row.Scan(&u.UserID, &u.Username, &u.PasswordHash, &u.FullName, &u.Email, &u.Phone, &u.Role, &u.CreatedAt)
	return u, err
}

const getUserByID = `
SELECT user_id, username, password_hash, nama_lengkap, email, no_telp, user_role_as, created_at
FROM users_data
WHERE user_id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, userID uuid.UUID) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, userID)
	var u User
	err := row.Scan(&u.UserID, &u.Username, &u.PasswordHash, &u.FullName, &u.Email, &u.Phone, &u.Role, &u.CreatedAt)
	return u, err
}

const countRegularUsers = `
SELECT COUNT(*) FROM users_data WHERE user_role_as = 'regular'
`

func (q *Queries) CountRegularUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countRegularUsers).Scan(&n)
	return n, err
}

const listParticipatedUsers = `
SELECT u.user_id, u.nama_lengkap, u.email, u.no_telp, t.user_test_id, t.completed_at,
       COALESCE((SELECT SUM(score_value) FROM user_answers WHERE user_id = u.user_id), 0) AS total_score
FROM users_data u
JOIN user_test t ON u.user_id = t.user_id
WHERE t.test_status = 'COMPLETE' AND u.user_role_as = 'regular'
ORDER BY t.completed_at DESC
`

func (q *Queries) ListParticipatedUsers(ctx context.Context) ([]ParticipantRow, error) {
	rows, err := q.db.Query(ctx, listParticipatedUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ParticipantRow
	for rows.Next() {
		var p ParticipantRow
		if err := rows.Scan(&p.UserID, &p.FullName, &p.Email, &p.Phone, &p.SessionID, &p.CompletedAt, &p.TotalScore); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

const listPendingUsers = `
SELECT user_id, nama_lengkap, email, no_telp
FROM users_data
WHERE user_role_as = 'regular'
  AND user_id NOT IN (SELECT user_id FROM user_test WHERE test_status = 'COMPLETE')
ORDER BY nama_lengkap
`

func (q *Queries) ListPendingUsers(ctx context.Context) ([]PendingUserRow, error) {
	rows, err := q.db.Query(ctx, listPendingUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PendingUserRow
	for rows.Next() {
		var p PendingUserRow
		if err := rows.Scan(&p.UserID, &p.FullName, &p.Email, &p.Phone); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
