package admin

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/ficotempo/competency-exam/internal/db/queries"
)

// ErrQuestionNotFound is returned when an edit targets a question id that is
// not in the bank.
var ErrQuestionNotFound = errors.New("question not found")

type adminStore interface {
	ListTypes(ctx context.Context) ([]queries.QuestionType, error)
	ListCategories(ctx context.Context) ([]queries.Category, error)
	ListQuestionsWithMeta(ctx context.Context) ([]queries.QuestionWithMeta, error)
	GetQuestion(ctx context.Context, questionID uuid.UUID) (queries.Question, error)
	ListOptionsByQuestion(ctx context.Context, questionID uuid.UUID) ([]queries.AnswerOption, error)
	ListCategoriesByQuestion(ctx context.Context, questionID uuid.UUID) ([]queries.Category, error)
	CountRegularUsers(ctx context.Context) (int64, error)
	CountCompletedUsers(ctx context.Context) (int64, error)
	AvgTotalScore(ctx context.Context) (float64, error)
	CountQuestionsByType(ctx context.Context) ([]queries.TypeCountRow, error)
	ListParticipatedUsers(ctx context.Context) ([]queries.ParticipantRow, error)
	ListPendingUsers(ctx context.Context) ([]queries.PendingUserRow, error)
}

type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// RefCache holds Redis-backed caches for reference data and dashboard stats.
type RefCache interface {
	GetReference(ctx context.Context) (*ReferenceData, error)
	SetReference(ctx context.Context, data ReferenceData) error
	GetStats(ctx context.Context) (*DashboardStats, error)
	SetStats(ctx context.Context, stats DashboardStats) error
}

// Service covers question authoring and the admin dashboard.
type Service struct {
	store  adminStore
	db     txBeginner
	cache  RefCache
	logger zerolog.Logger
}

// NewService constructs the admin service. db is used only for the
// transactional authoring paths; cache may be nil to disable caching.
func NewService(store adminStore, db txBeginner, cache RefCache, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		db:     db,
		cache:  cache,
		logger: logger.With().Str("component", "admin_service").Logger(),
	}
}

// Reference returns question types and categories for the authoring form.
func (s *Service) Reference(ctx context.Context) (ReferenceData, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetReference(ctx); err == nil && cached != nil {
			return *cached, nil
		}
	}

	types, err := s.store.ListTypes(ctx)
	if err != nil {
		return ReferenceData{}, fmt.Errorf("list types: %w", err)
	}
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return ReferenceData{}, fmt.Errorf("list categories: %w", err)
	}

	data := ReferenceData{Types: types, Categories: categories}
	if s.cache != nil {
		_ = s.cache.SetReference(ctx, data)
	}
	return data, nil
}

// ListQuestions returns the authoring table rows.
func (s *Service) ListQuestions(ctx context.Context) ([]queries.QuestionWithMeta, error) {
	return s.store.ListQuestionsWithMeta(ctx)
}

// QuestionDetail loads one question with its answer key and categories.
// Returns nil when the question does not exist.
func (s *Service) QuestionDetail(ctx context.Context, questionID uuid.UUID) (*QuestionDetail, error) {
	question, err := s.store.GetQuestion(ctx, questionID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}

	answers, err := s.store.ListOptionsByQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("list options: %w", err)
	}
	categories, err := s.store.ListCategoriesByQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return &QuestionDetail{Question: question, Answers: answers, Categories: categories}, nil
}

// SaveQuestion creates or updates a question in one transaction. On edit,
// options and category mappings are replaced wholesale; partially applied
// authoring must never be visible to a running exam.
func (s *Service) SaveQuestion(ctx context.Context, input SaveQuestionInput) (uuid.UUID, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	q := queries.New(tx)

	questionID := uuid.New()
	params := queries.UpsertQuestionParams{
		QuestionID: questionID,
		Text:       input.Text,
		ImageURL:   input.ImageURL,
		TypeID:     input.TypeID,
		IsScored:   input.IsScored,
	}

	if input.QuestionID != nil {
		questionID = *input.QuestionID
		params.QuestionID = questionID
		changed, err := q.UpdateQuestion(ctx, params)
		if err != nil {
			return uuid.Nil, fmt.Errorf("update question: %w", err)
		}
		if changed == 0 {
			return uuid.Nil, ErrQuestionNotFound
		}
		if err := q.DeleteCategoryMapByQuestion(ctx, questionID); err != nil {
			return uuid.Nil, fmt.Errorf("clear category map: %w", err)
		}
		if err := q.DeleteOptionsByQuestion(ctx, questionID); err != nil {
			return uuid.Nil, fmt.Errorf("clear options: %w", err)
		}
	} else {
		if err := q.InsertQuestion(ctx, params); err != nil {
			return uuid.Nil, fmt.Errorf("insert question: %w", err)
		}
	}

	for _, categoryID := range input.CategoryIDs {
		if err := q.InsertCategoryMap(ctx, questionID, categoryID); err != nil {
			return uuid.Nil, fmt.Errorf("insert category map: %w", err)
		}
	}

	for _, opt := range input.Options {
		err := q.InsertOption(ctx, queries.InsertOptionParams{
			AnswerID:   uuid.New(),
			QuestionID: questionID,
			Text:       opt.Text,
			IsCorrect:  opt.IsCorrect,
			ScoreValue: opt.ScoreValue,
			SortOrder:  opt.SortOrder,
		})
		if err != nil {
			return uuid.Nil, fmt.Errorf("insert option: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("commit: %w", err)
	}

	s.logger.Info().Str("question_id", questionID.String()).Msg("question saved")
	return questionID, nil
}

// DeleteQuestion removes a question and its children in one transaction.
func (s *Service) DeleteQuestion(ctx context.Context, questionID uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	q := queries.New(tx)
	if err := q.DeleteCategoryMapByQuestion(ctx, questionID); err != nil {
		return fmt.Errorf("delete category map: %w", err)
	}
	if err := q.DeleteOptionsByQuestion(ctx, questionID); err != nil {
		return fmt.Errorf("delete options: %w", err)
	}
	if err := q.DeleteQuestion(ctx, questionID); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	s.logger.Info().Str("question_id", questionID.String()).Msg("question deleted")
	return nil
}

// Stats assembles the dashboard cards, served from cache when warm.
func (s *Service) Stats(ctx context.Context) (DashboardStats, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetStats(ctx); err == nil && cached != nil {
			return *cached, nil
		}
	}
	return s.RefreshStats(ctx)
}

// RefreshStats recomputes the dashboard stats and rewrites the cache. Called
// by the periodic worker and on cache miss.
func (s *Service) RefreshStats(ctx context.Context) (DashboardStats, error) {
	totalUsers, err := s.store.CountRegularUsers(ctx)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("count users: %w", err)
	}
	taken, err := s.store.CountCompletedUsers(ctx)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("count completed: %w", err)
	}
	avg, err := s.store.AvgTotalScore(ctx)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("avg score: %w", err)
	}

	stats := DashboardStats{
		TotalUsers:    totalUsers,
		TakenCount:    taken,
		NotTakenCount: totalUsers - taken,
		AvgScore:      int64(math.Round(avg)),
	}
	if s.cache != nil {
		_ = s.cache.SetStats(ctx, stats)
	}
	return stats, nil
}

// QuestionCountByType returns question totals per type for the dashboard.
func (s *Service) QuestionCountByType(ctx context.Context) ([]queries.TypeCountRow, error) {
	return s.store.CountQuestionsByType(ctx)
}

// Participants lists regular users with a completed attempt, newest first.
func (s *Service) Participants(ctx context.Context) ([]queries.ParticipantRow, error) {
	return s.store.ListParticipatedUsers(ctx)
}

// PendingUsers lists regular users who have not completed the exam.
func (s *Service) PendingUsers(ctx context.Context) ([]queries.PendingUserRow, error) {
	return s.store.ListPendingUsers(ctx)
}
