package exam

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/ficotempo/competency-exam/internal/db/queries"
	"github.com/ficotempo/competency-exam/internal/db/repository"
	"github.com/ficotempo/competency-exam/internal/metrics"
)

// Service drives the exam-taking pipeline: session gating, question
// delivery, answer recording and finalization.
type Service struct {
	sessions  *repository.SessionRepository
	questions *repository.QuestionRepository
	answers   *repository.AnswerRepository
	policy    InvalidAnswerPolicy
	logger    zerolog.Logger
}

// ServiceOptions configures the exam service.
type ServiceOptions struct {
	InvalidAnswerPolicy InvalidAnswerPolicy
}

// NewService wires the exam pipeline over its repositories.
func NewService(sessions *repository.SessionRepository, questions *repository.QuestionRepository, answers *repository.AnswerRepository, opts ServiceOptions, logger zerolog.Logger) *Service {
	policy := opts.InvalidAnswerPolicy
	if policy == "" {
		policy = PolicyZeroScore
	}
	return &Service{
		sessions:  sessions,
		questions: questions,
		answers:   answers,
		policy:    policy,
		logger:    logger.With().Str("component", "exam_service").Logger(),
	}
}

// Initiate looks up the user's most recent attempt and decides entry:
// no session yet starts a new one, an open session resumes, a completed one
// blocks re-entry. Only the NEW branch writes.
func (s *Service) Initiate(ctx context.Context, userID uuid.UUID) (InitiateResult, error) {
	latest, err := s.sessions.Latest(ctx, userID)
	switch {
	case err == nil:
		if latest.Status == SessionComplete {
			return InitiateResult{Status: StatusCompleted, SessionID: latest.SessionID}, nil
		}
		return InitiateResult{Status: StatusResume, SessionID: latest.SessionID}, nil
	case errors.Is(err, pgx.ErrNoRows):
		// first attempt, fall through to create
	default:
		return InitiateResult{}, fmt.Errorf("lookup latest session: %w", err)
	}

	created, err := s.sessions.Create(ctx, uuid.New(), userID)
	if err != nil {
		return InitiateResult{}, fmt.Errorf("create session: %w", err)
	}

	metrics.SessionsStarted.Inc()
	s.logger.Info().
		Str("user_id", userID.String()).
		Str("session_id", created.SessionID.String()).
		Msg("exam session started")

	return InitiateResult{Status: StatusNew, SessionID: created.SessionID}, nil
}

// Questions returns the scored question set in a fresh random order, options
// sorted by sort_order with the answer key stripped. An empty set is valid
// and means no exam is configured.
func (s *Service) Questions(ctx context.Context) ([]Question, error) {
	rows, err := s.questions.ListScored(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scored questions: %w", err)
	}

	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		options, err := s.questions.OptionsFor(ctx, row.QuestionID)
		if err != nil {
			return nil, fmt.Errorf("list options for %s: %w", row.QuestionID, err)
		}
		out = append(out, Question{
			ID:       row.QuestionID,
			Text:     row.Text,
			ImageURL: row.ImageURL,
			Options:  stripOptions(options),
		})
	}
	return out, nil
}

func stripOptions(rows []queries.AnswerOption) []Option {
	out := make([]Option, 0, len(rows))
	for _, row := range rows {
		out = append(out, Option{ID: row.AnswerID, Text: row.Text})
	}
	return out
}

// SubmitAnswer resolves the option's score server-side and upserts the
// recorded answer keyed by (user, question). Resubmitting the same question
// overwrites the earlier choice, which makes client retries safe.
func (s *Service) SubmitAnswer(ctx context.Context, userID, questionID, answerID uuid.UUID) error {
	score, err := s.questions.ScoreFor(ctx, answerID)
	switch {
	case err == nil:
	case errors.Is(err, pgx.ErrNoRows):
		s.logger.Warn().
			Str("user_id", userID.String()).
			Str("question_id", questionID.String()).
			Str("answer_id", answerID.String()).
			Str("policy", string(s.policy)).
			Msg("submitted answer id not found in answer key")
		if s.policy == PolicyReject {
			return ErrUnknownAnswer
		}
		score = 0
	default:
		return fmt.Errorf("resolve answer score: %w", err)
	}

	err = s.answers.Record(ctx, queries.UpsertRecordedAnswerParams{
		UserID:     userID,
		QuestionID: questionID,
		AnswerID:   answerID,
		ScoreValue: score,
	})
	if err != nil {
		return fmt.Errorf("record answer: %w", err)
	}

	metrics.AnswersRecorded.Inc()
	return nil
}

// Finalize transitions the session START -> COMPLETE and stamps completion
// time. Repeating the call is a no-op, not an error, so a client that crashed
// between its last answer and finalize can resume and re-finalize.
func (s *Service) Finalize(ctx context.Context, userID, sessionID uuid.UUID) error {
	changed, err := s.sessions.Complete(ctx, sessionID, userID)
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	if changed > 0 {
		metrics.ExamsCompleted.Inc()
		s.logger.Info().
			Str("user_id", userID.String()).
			Str("session_id", sessionID.String()).
			Msg("exam finalized")
	}
	return nil
}
