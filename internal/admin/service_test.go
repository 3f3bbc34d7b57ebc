package admin

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ficotempo/competency-exam/internal/db/queries"
)

type stubAdminStore struct {
	types      []queries.QuestionType
	categories []queries.Category
	listCalls  int

	totalUsers int64
	completed  int64
	avgScore   float64
	statCalls  int
}

func (s *stubAdminStore) ListTypes(context.Context) ([]queries.QuestionType, error) {
	s.listCalls++
	return s.types, nil
}

func (s *stubAdminStore) ListCategories(context.Context) ([]queries.Category, error) {
	return s.categories, nil
}

func (s *stubAdminStore) ListQuestionsWithMeta(context.Context) ([]queries.QuestionWithMeta, error) {
	return nil, nil
}

func (s *stubAdminStore) GetQuestion(context.Context, uuid.UUID) (queries.Question, error) {
	return queries.Question{}, pgx.ErrNoRows
}

func (s *stubAdminStore) ListOptionsByQuestion(context.Context, uuid.UUID) ([]queries.AnswerOption, error) {
	return nil, nil
}

func (s *stubAdminStore) ListCategoriesByQuestion(context.Context, uuid.UUID) ([]queries.Category, error) {
	return nil, nil
}

func (s *stubAdminStore) CountRegularUsers(context.Context) (int64, error) {
	s.statCalls++
	return s.totalUsers, nil
}

func (s *stubAdminStore) CountCompletedUsers(context.Context) (int64, error) {
	return s.completed, nil
}

func (s *stubAdminStore) AvgTotalScore(context.Context) (float64, error) {
	return s.avgScore, nil
}

func (s *stubAdminStore) CountQuestionsByType(context.Context) ([]queries.TypeCountRow, error) {
	return nil, nil
}

func (s *stubAdminStore) ListParticipatedUsers(context.Context) ([]queries.ParticipantRow, error) {
	return nil, nil
}

func (s *stubAdminStore) ListPendingUsers(context.Context) ([]queries.PendingUserRow, error) {
	return nil, nil
}

type memoryCache struct {
	reference *ReferenceData
	stats     *DashboardStats
}

func (c *memoryCache) GetReference(context.Context) (*ReferenceData, error) { return c.reference, nil }

func (c *memoryCache) SetReference(_ context.Context, data ReferenceData) error {
	c.reference = &data
	return nil
}

func (c *memoryCache) GetStats(context.Context) (*DashboardStats, error) { return c.stats, nil }

func (c *memoryCache) SetStats(_ context.Context, stats DashboardStats) error {
	c.stats = &stats
	return nil
}

func TestReferenceCachesAfterFirstLoad(t *testing.T) {
	store := &stubAdminStore{
		types:      []queries.QuestionType{{TypeID: uuid.New(), TypeName: "Pilihan Ganda"}},
		categories: []queries.Category{{CategoryID: uuid.New(), Label: "Keselamatan"}},
	}
	cache := &memoryCache{}
	svc := NewService(store, nil, cache, zerolog.New(io.Discard))

	first, err := svc.Reference(context.Background())
	require.NoError(t, err)
	second, err := svc.Reference(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.listCalls, "second call is served from cache")
}

func TestReferenceWorksWithoutCache(t *testing.T) {
	store := &stubAdminStore{types: []queries.QuestionType{{TypeID: uuid.New(), TypeName: "Esai"}}}
	svc := NewService(store, nil, nil, zerolog.New(io.Discard))

	data, err := svc.Reference(context.Background())

	require.NoError(t, err)
	assert.Len(t, data.Types, 1)
}

func TestStatsComputesNotTakenAndRoundsAverage(t *testing.T) {
	store := &stubAdminStore{totalUsers: 40, completed: 25, avgScore: 72.6}
	svc := NewService(store, nil, &memoryCache{}, zerolog.New(io.Discard))

	stats, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(40), stats.TotalUsers)
	assert.Equal(t, int64(25), stats.TakenCount)
	assert.Equal(t, int64(15), stats.NotTakenCount)
	assert.Equal(t, int64(73), stats.AvgScore)
}

func TestStatsServedFromCacheWhenWarm(t *testing.T) {
	store := &stubAdminStore{totalUsers: 40, completed: 25}
	cache := &memoryCache{stats: &DashboardStats{TotalUsers: 99}}
	svc := NewService(store, nil, cache, zerolog.New(io.Discard))

	stats, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(99), stats.TotalUsers)
	assert.Equal(t, 0, store.statCalls)
}

func TestRefreshStatsRewritesCache(t *testing.T) {
	store := &stubAdminStore{totalUsers: 10, completed: 4, avgScore: 81}
	cache := &memoryCache{stats: &DashboardStats{TotalUsers: 99}}
	svc := NewService(store, nil, cache, zerolog.New(io.Discard))

	stats, err := svc.RefreshStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.TotalUsers)
	require.NotNil(t, cache.stats)
	assert.Equal(t, int64(10), cache.stats.TotalUsers, "worker refresh overwrites stale cache")
}

// fakeTx records the statements the authoring transactions issue. Updates to
// question_list report updateRows; everything else reports one row.
type fakeTx struct {
	execs      []string
	updateRows int64
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Begin(context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.rolledBack = true
	return nil
}

func (t *fakeTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *fakeTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }

func (t *fakeTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *fakeTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *fakeTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	t.execs = append(t.execs, sql)
	if strings.HasPrefix(strings.TrimSpace(sql), "UPDATE question_list") {
		return pgconn.NewCommandTag(fmt.Sprintf("UPDATE %d", t.updateRows)), nil
	}
	return pgconn.NewCommandTag("DELETE 1"), nil
}

func (t *fakeTx) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }

func (t *fakeTx) QueryRow(context.Context, string, ...any) pgx.Row { return nil }

func (t *fakeTx) Conn() *pgx.Conn { return nil }

type fakeDB struct {
	tx *fakeTx
}

func (d *fakeDB) Begin(context.Context) (pgx.Tx, error) { return d.tx, nil }

func TestDeleteQuestionLeavesRecordedAnswers(t *testing.T) {
	tx := &fakeTx{}
	svc := NewService(&stubAdminStore{}, &fakeDB{tx: tx}, nil, zerolog.New(io.Discard))

	err := svc.DeleteQuestion(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.True(t, tx.committed)

	issued := strings.Join(tx.execs, "\n")
	assert.Contains(t, issued, "DELETE FROM question_category_map")
	assert.Contains(t, issued, "DELETE FROM question_answer")
	assert.Contains(t, issued, "DELETE FROM question_list")
	// Recorded answers are history; deleting a question a user already
	// answered must not touch them.
	assert.NotContains(t, issued, "user_answers")
}

func TestSaveQuestionUpdateReplacesChildren(t *testing.T) {
	tx := &fakeTx{updateRows: 1}
	svc := NewService(&stubAdminStore{}, &fakeDB{tx: tx}, nil, zerolog.New(io.Discard))

	existing := uuid.New()
	got, err := svc.SaveQuestion(context.Background(), SaveQuestionInput{
		QuestionID:  &existing,
		Text:        "Apa arti rambu segitiga merah?",
		IsScored:    true,
		CategoryIDs: []uuid.UUID{uuid.New()},
		Options:     []OptionInput{{Text: "Peringatan", IsCorrect: true, ScoreValue: 10, SortOrder: 1}},
	})

	require.NoError(t, err)
	assert.Equal(t, existing, got)
	assert.True(t, tx.committed)

	issued := strings.Join(tx.execs, "\n")
	assert.Contains(t, issued, "UPDATE question_list")
	assert.Contains(t, issued, "DELETE FROM question_category_map")
	assert.Contains(t, issued, "DELETE FROM question_answer")
	assert.Contains(t, issued, "INSERT INTO question_category_map")
	assert.Contains(t, issued, "INSERT INTO question_answer")
}

func TestSaveQuestionUpdateMissingQuestion(t *testing.T) {
	tx := &fakeTx{updateRows: 0}
	svc := NewService(&stubAdminStore{}, &fakeDB{tx: tx}, nil, zerolog.New(io.Discard))

	missing := uuid.New()
	_, err := svc.SaveQuestion(context.Background(), SaveQuestionInput{
		QuestionID: &missing,
		Text:       "Apa arti rambu segitiga merah?",
		Options:    []OptionInput{{Text: "Peringatan"}},
	})

	assert.ErrorIs(t, err, ErrQuestionNotFound)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}

func TestQuestionDetailMissingReturnsNil(t *testing.T) {
	svc := NewService(&stubAdminStore{}, nil, nil, zerolog.New(io.Discard))

	detail, err := svc.QuestionDetail(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Nil(t, detail)
}
