package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ficotempo/competency-exam/internal/db/repository"
)

// CategoryScore is one competency dimension normalized to 0-100.
type CategoryScore struct {
	CategoryID uuid.UUID `json:"category_id"`
	Label      string    `json:"category"`
	Score      int       `json:"score"`
	FullMark   int       `json:"full_mark"`
}

// Result is the aggregated outcome of a completed attempt.
type Result struct {
	TestDate   *time.Time      `json:"test_date"`
	FinalScore int             `json:"final_score"`
	Categories []CategoryScore `json:"categories"`
	Summary    string          `json:"summary"`
}

// Aggregator computes per-category normalized scores from recorded answers.
// It reads recorded rows only; session state just gates whether a result
// exists at all.
type Aggregator struct {
	sessions *repository.SessionRepository
	answers  *repository.AnswerRepository
}

// NewAggregator constructs the score aggregator.
func NewAggregator(sessions *repository.SessionRepository, answers *repository.AnswerRepository) *Aggregator {
	return &Aggregator{sessions: sessions, answers: answers}
}

// ComputeResult returns nil (no error) when the user has no completed
// session; the caller redirects away from the results view.
//
// Per category: sum of recorded scores over sum of each question's maximum
// attainable score, rounded to a percentage. A question mapped to several
// categories contributes its full score to each. The final score is the
// unweighted mean of category percentages, so a category covered by two
// questions weighs the same as one covered by twenty.
func (a *Aggregator) ComputeResult(ctx context.Context, userID uuid.UUID) (*Result, error) {
	session, err := a.sessions.LatestCompleted(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup completed session: %w", err)
	}

	rows, err := a.answers.CategoryScores(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load category scores: %w", err)
	}

	type accum struct {
		label   string
		current int64
		max     int64
	}
	stats := make(map[uuid.UUID]*accum)
	for _, row := range rows {
		acc, ok := stats[row.CategoryID]
		if !ok {
			acc = &accum{label: row.CategoryLabel}
			stats[row.CategoryID] = acc
		}
		acc.current += int64(row.UserScore)
		acc.max += int64(row.MaxScore)
	}

	categories := make([]CategoryScore, 0, len(stats))
	for id, acc := range stats {
		score := 0
		if acc.max > 0 {
			score = int(math.Round(100 * float64(acc.current) / float64(acc.max)))
		}
		categories = append(categories, CategoryScore{
			CategoryID: id,
			// result sheets print labels in caps
			Label:    strings.ToUpper(acc.label),
			Score:    score,
			FullMark: 100,
		})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Label < categories[j].Label })

	final := 0
	if len(categories) > 0 {
		sum := 0
		for _, c := range categories {
			sum += c.Score
		}
		final = int(math.Round(float64(sum) / float64(len(categories))))
	}

	return &Result{
		TestDate:   session.CompletedAt,
		FinalScore: final,
		Categories: categories,
		Summary:    Summary(final),
	}, nil
}

// Summary maps a final score onto the fixed competency tiers.
func Summary(score int) string {
	switch {
	case score >= 90:
		return "Luar Biasa! Anda memiliki kompetensi sangat tinggi."
	case score >= 75:
		return "Kompeten. Pertahankan kinerja Anda."
	case score >= 60:
		return "Cukup Baik, namun perlu peningkatan di beberapa aspek."
	default:
		return "Perlu Perhatian Khusus. Disarankan mengikuti pelatihan ulang."
	}
}
