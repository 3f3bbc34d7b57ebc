package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ficotempo/competency-exam/internal/db/queries"
)

type questionStore interface {
	ListScoredQuestionsRandomized(ctx context.Context) ([]queries.Question, error)
	ListOptionsByQuestion(ctx context.Context, questionID uuid.UUID) ([]queries.AnswerOption, error)
	GetOptionScore(ctx context.Context, answerID uuid.UUID) (int32, error)
}

// QuestionRepository wraps the read side of the question bank used by exam
// delivery.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// ListScored retrieves the active scored question set in randomized order.
func (r *QuestionRepository) ListScored(ctx context.Context) ([]queries.Question, error) {
	return r.store.ListScoredQuestionsRandomized(ctx)
}

// OptionsFor fetches a question's options ordered by sort_order. Rows still
// carry the answer key; callers serving exam takers must strip it.
func (r *QuestionRepository) OptionsFor(ctx context.Context, questionID uuid.UUID) ([]queries.AnswerOption, error) {
	return r.store.ListOptionsByQuestion(ctx, questionID)
}

// ScoreFor resolves an option's score from the server-held answer key.
func (r *QuestionRepository) ScoreFor(ctx context.Context, answerID uuid.UUID) (int32, error) {
	return r.store.GetOptionScore(ctx, answerID)
}
