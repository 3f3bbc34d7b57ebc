package exam

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ficotempo/competency-exam/internal/db/queries"
	"github.com/ficotempo/competency-exam/internal/db/repository"
)

type stubSessionStore struct {
	latest    func(ctx context.Context, userID uuid.UUID) (queries.TestSession, error)
	inserted  []queries.TestSession
	completes int
	completed map[uuid.UUID]bool
}

func (s *stubSessionStore) GetLatestSessionByUser(ctx context.Context, userID uuid.UUID) (queries.TestSession, error) {
	return s.latest(ctx, userID)
}

func (s *stubSessionStore) InsertSession(_ context.Context, sessionID, userID uuid.UUID) (queries.TestSession, error) {
	session := queries.TestSession{SessionID: sessionID, UserID: userID, Status: SessionStart, StartedAt: time.Now()}
	s.inserted = append(s.inserted, session)
	return session, nil
}

func (s *stubSessionStore) CompleteSession(_ context.Context, sessionID, _ uuid.UUID) (int64, error) {
	s.completes++
	if s.completed == nil {
		s.completed = map[uuid.UUID]bool{}
	}
	if s.completed[sessionID] {
		return 0, nil
	}
	s.completed[sessionID] = true
	return 1, nil
}

func (s *stubSessionStore) GetLatestCompletedSession(ctx context.Context, userID uuid.UUID) (queries.TestSession, error) {
	return queries.TestSession{}, pgx.ErrNoRows
}

type stubQuestionStore struct {
	questions []queries.Question
	options   map[uuid.UUID][]queries.AnswerOption
	scores    map[uuid.UUID]int32
}

func (s *stubQuestionStore) ListScoredQuestionsRandomized(context.Context) ([]queries.Question, error) {
	return s.questions, nil
}

func (s *stubQuestionStore) ListOptionsByQuestion(_ context.Context, questionID uuid.UUID) ([]queries.AnswerOption, error) {
	return s.options[questionID], nil
}

func (s *stubQuestionStore) GetOptionScore(_ context.Context, answerID uuid.UUID) (int32, error) {
	score, ok := s.scores[answerID]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	return score, nil
}

type answerKey struct {
	user     uuid.UUID
	question uuid.UUID
}

type stubAnswerStore struct {
	recorded map[answerKey]queries.UpsertRecordedAnswerParams
}

func (s *stubAnswerStore) UpsertRecordedAnswer(_ context.Context, arg queries.UpsertRecordedAnswerParams) error {
	if s.recorded == nil {
		s.recorded = map[answerKey]queries.UpsertRecordedAnswerParams{}
	}
	s.recorded[answerKey{arg.UserID, arg.QuestionID}] = arg
	return nil
}

func (s *stubAnswerStore) ListCategoryScoreRows(context.Context, uuid.UUID) ([]queries.CategoryScoreRow, error) {
	return nil, nil
}

func (s *stubAnswerStore) SumScoreByUser(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}

func newTestService(sessions *stubSessionStore, questions *stubQuestionStore, answers *stubAnswerStore, policy InvalidAnswerPolicy) *Service {
	if sessions == nil {
		sessions = &stubSessionStore{latest: func(context.Context, uuid.UUID) (queries.TestSession, error) {
			return queries.TestSession{}, pgx.ErrNoRows
		}}
	}
	if questions == nil {
		questions = &stubQuestionStore{}
	}
	if answers == nil {
		answers = &stubAnswerStore{}
	}
	return NewService(
		repository.NewSessionRepository(sessions),
		repository.NewQuestionRepository(questions),
		repository.NewAnswerRepository(answers),
		ServiceOptions{InvalidAnswerPolicy: policy},
		zerolog.New(io.Discard),
	)
}

func TestInitiateCreatesNewSession(t *testing.T) {
	sessions := &stubSessionStore{latest: func(context.Context, uuid.UUID) (queries.TestSession, error) {
		return queries.TestSession{}, pgx.ErrNoRows
	}}
	svc := newTestService(sessions, nil, nil, "")

	result, err := svc.Initiate(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Equal(t, StatusNew, result.Status)
	assert.NotEqual(t, uuid.Nil, result.SessionID)
	assert.Len(t, sessions.inserted, 1, "only the NEW branch inserts")
}

func TestInitiateResumesOpenSession(t *testing.T) {
	existing := uuid.New()
	sessions := &stubSessionStore{latest: func(context.Context, uuid.UUID) (queries.TestSession, error) {
		return queries.TestSession{SessionID: existing, Status: SessionStart}, nil
	}}
	svc := newTestService(sessions, nil, nil, "")

	result, err := svc.Initiate(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Equal(t, StatusResume, result.Status)
	assert.Equal(t, existing, result.SessionID)
	assert.Empty(t, sessions.inserted)
}

func TestInitiateBlocksCompletedAttempt(t *testing.T) {
	existing := uuid.New()
	sessions := &stubSessionStore{latest: func(context.Context, uuid.UUID) (queries.TestSession, error) {
		return queries.TestSession{SessionID: existing, Status: SessionComplete}, nil
	}}
	svc := newTestService(sessions, nil, nil, "")

	result, err := svc.Initiate(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, existing, result.SessionID)
	assert.Empty(t, sessions.inserted, "no new session after completion")
}

func TestInitiateSurfacesLookupFailure(t *testing.T) {
	sessions := &stubSessionStore{latest: func(context.Context, uuid.UUID) (queries.TestSession, error) {
		return queries.TestSession{}, errors.New("db down")
	}}
	svc := newTestService(sessions, nil, nil, "")

	_, err := svc.Initiate(context.Background(), uuid.New())

	assert.Error(t, err)
	assert.Empty(t, sessions.inserted)
}

func TestQuestionsStripAnswerKey(t *testing.T) {
	questionID := uuid.New()
	questions := &stubQuestionStore{
		questions: []queries.Question{{QuestionID: questionID, Text: "Berapa batas kecepatan di tol?", IsScored: true}},
		options: map[uuid.UUID][]queries.AnswerOption{
			questionID: {
				{AnswerID: uuid.New(), QuestionID: questionID, Text: "80 km/jam", IsCorrect: true, ScoreValue: 20, SortOrder: 1},
				{AnswerID: uuid.New(), QuestionID: questionID, Text: "120 km/jam", IsCorrect: false, ScoreValue: 0, SortOrder: 2},
			},
		},
	}
	svc := newTestService(nil, questions, nil, "")

	got, err := svc.Questions(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Options, 2)
	// Option carries only id and text; the key never leaves the server.
	assert.Equal(t, "80 km/jam", got[0].Options[0].Text)
	assert.Equal(t, "120 km/jam", got[0].Options[1].Text)
}

func TestQuestionsEmptySetIsValid(t *testing.T) {
	svc := newTestService(nil, &stubQuestionStore{}, nil, "")

	got, err := svc.Questions(context.Background())

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSubmitAnswerLastWriteWins(t *testing.T) {
	userID := uuid.New()
	questionID := uuid.New()
	firstAnswer := uuid.New()
	secondAnswer := uuid.New()

	questions := &stubQuestionStore{scores: map[uuid.UUID]int32{firstAnswer: 10, secondAnswer: 20}}
	answers := &stubAnswerStore{}
	svc := newTestService(nil, questions, answers, "")

	require.NoError(t, svc.SubmitAnswer(context.Background(), userID, questionID, firstAnswer))
	require.NoError(t, svc.SubmitAnswer(context.Background(), userID, questionID, secondAnswer))

	require.Len(t, answers.recorded, 1, "upsert keeps one row per (user, question)")
	got := answers.recorded[answerKey{userID, questionID}]
	assert.Equal(t, secondAnswer, got.AnswerID)
	assert.Equal(t, int32(20), got.ScoreValue)
}

func TestSubmitAnswerUnknownOptionScoresZero(t *testing.T) {
	userID := uuid.New()
	questionID := uuid.New()
	answers := &stubAnswerStore{}
	svc := newTestService(nil, &stubQuestionStore{}, answers, PolicyZeroScore)

	err := svc.SubmitAnswer(context.Background(), userID, questionID, uuid.New())

	require.NoError(t, err)
	got := answers.recorded[answerKey{userID, questionID}]
	assert.Equal(t, int32(0), got.ScoreValue)
}

func TestSubmitAnswerUnknownOptionRejected(t *testing.T) {
	answers := &stubAnswerStore{}
	svc := newTestService(nil, &stubQuestionStore{}, answers, PolicyReject)

	err := svc.SubmitAnswer(context.Background(), uuid.New(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, ErrUnknownAnswer)
	assert.Empty(t, answers.recorded)
}

func TestFinalizeIsIdempotent(t *testing.T) {
	userID := uuid.New()
	sessionID := uuid.New()
	sessions := &stubSessionStore{latest: func(context.Context, uuid.UUID) (queries.TestSession, error) {
		return queries.TestSession{}, pgx.ErrNoRows
	}}
	svc := newTestService(sessions, nil, nil, "")

	require.NoError(t, svc.Finalize(context.Background(), userID, sessionID))
	require.NoError(t, svc.Finalize(context.Background(), userID, sessionID), "second finalize is a no-op, not an error")
	assert.Equal(t, 2, sessions.completes)
}
