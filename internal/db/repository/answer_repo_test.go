package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ficotempo/competency-exam/internal/db/queries"
)

type mockAnswerStore struct {
	mock.Mock
}

func (m *mockAnswerStore) UpsertRecordedAnswer(ctx context.Context, arg queries.UpsertRecordedAnswerParams) error {
	return m.Called(ctx, arg).Error(0)
}

func (m *mockAnswerStore) ListCategoryScoreRows(ctx context.Context, userID uuid.UUID) ([]queries.CategoryScoreRow, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]queries.CategoryScoreRow), args.Error(1)
}

func (m *mockAnswerStore) SumScoreByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func TestAnswerRepository_Record(t *testing.T) {
	store := new(mockAnswerStore)
	repo := NewAnswerRepository(store)

	params := queries.UpsertRecordedAnswerParams{
		UserID:     uuidFromByte(1),
		QuestionID: uuidFromByte(2),
		AnswerID:   uuidFromByte(3),
		ScoreValue: 20,
	}

	store.On("UpsertRecordedAnswer", mock.Anything, params).Return(nil)

	err := repo.Record(context.Background(), params)

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestAnswerRepository_CategoryScores(t *testing.T) {
	store := new(mockAnswerStore)
	repo := NewAnswerRepository(store)

	userID := uuidFromByte(4)
	expect := []queries.CategoryScoreRow{
		{CategoryID: uuidFromByte(5), CategoryLabel: "Keselamatan", UserScore: 10, MaxScore: 20},
	}

	store.On("ListCategoryScoreRows", mock.Anything, userID).Return(expect, nil)

	got, err := repo.CategoryScores(context.Background(), userID)

	assert.NoError(t, err)
	assert.Equal(t, expect, got)
	store.AssertExpectations(t)
}

func TestAnswerRepository_TotalScore(t *testing.T) {
	store := new(mockAnswerStore)
	repo := NewAnswerRepository(store)

	userID := uuidFromByte(6)

	store.On("SumScoreByUser", mock.Anything, userID).Return(int64(85), nil)

	got, err := repo.TotalScore(context.Background(), userID)

	assert.NoError(t, err)
	assert.Equal(t, int64(85), got)
	store.AssertExpectations(t)
}
