package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ficotempo/competency-exam/internal/db/queries"
)

type mockSessionStore struct {
	mock.Mock
}

func (m *mockSessionStore) GetLatestSessionByUser(ctx context.Context, userID uuid.UUID) (queries.TestSession, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(queries.TestSession), args.Error(1)
}

func (m *mockSessionStore) InsertSession(ctx context.Context, sessionID, userID uuid.UUID) (queries.TestSession, error) {
	args := m.Called(ctx, sessionID, userID)
	return args.Get(0).(queries.TestSession), args.Error(1)
}

func (m *mockSessionStore) CompleteSession(ctx context.Context, sessionID, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, sessionID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSessionStore) GetLatestCompletedSession(ctx context.Context, userID uuid.UUID) (queries.TestSession, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(queries.TestSession), args.Error(1)
}

func TestSessionRepository_Latest(t *testing.T) {
	store := new(mockSessionStore)
	repo := NewSessionRepository(store)

	userID := uuidFromByte(1)
	expect := queries.TestSession{
		SessionID: uuidFromByte(2),
		UserID:    userID,
		Status:    "START",
		StartedAt: time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC),
	}

	store.On("GetLatestSessionByUser", mock.Anything, userID).Return(expect, nil)

	got, err := repo.Latest(context.Background(), userID)

	assert.NoError(t, err)
	assert.Equal(t, expect, got)
	store.AssertExpectations(t)
}

func TestSessionRepository_LatestNoRows(t *testing.T) {
	store := new(mockSessionStore)
	repo := NewSessionRepository(store)

	store.On("GetLatestSessionByUser", mock.Anything, mock.Anything).Return(queries.TestSession{}, pgx.ErrNoRows)

	_, err := repo.Latest(context.Background(), uuidFromByte(1))

	assert.ErrorIs(t, err, pgx.ErrNoRows)
	store.AssertExpectations(t)
}

func TestSessionRepository_Complete(t *testing.T) {
	store := new(mockSessionStore)
	repo := NewSessionRepository(store)

	sessionID := uuidFromByte(3)
	userID := uuidFromByte(4)

	store.On("CompleteSession", mock.Anything, sessionID, userID).Return(int64(1), nil)

	changed, err := repo.Complete(context.Background(), sessionID, userID)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), changed)
	store.AssertExpectations(t)
}
