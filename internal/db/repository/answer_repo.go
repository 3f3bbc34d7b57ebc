package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ficotempo/competency-exam/internal/db/queries"
)

type answerStore interface {
	UpsertRecordedAnswer(ctx context.Context, arg queries.UpsertRecordedAnswerParams) error
	ListCategoryScoreRows(ctx context.Context, userID uuid.UUID) ([]queries.CategoryScoreRow, error)
	SumScoreByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// AnswerRepository persists and reads recorded answers.
type AnswerRepository struct {
	store answerStore
}

func NewAnswerRepository(store answerStore) *AnswerRepository {
	return &AnswerRepository{store: store}
}

// Record upserts the user's choice for one question.
func (r *AnswerRepository) Record(ctx context.Context, params queries.UpsertRecordedAnswerParams) error {
	return r.store.UpsertRecordedAnswer(ctx, params)
}

// CategoryScores returns every recorded answer joined to its category
// mappings, one row per (answer, category) pair.
func (r *AnswerRepository) CategoryScores(ctx context.Context, userID uuid.UUID) ([]queries.CategoryScoreRow, error) {
	return r.store.ListCategoryScoreRows(ctx, userID)
}

// TotalScore sums the user's recorded scores across all questions.
func (r *AnswerRepository) TotalScore(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.store.SumScoreByUser(ctx, userID)
}
