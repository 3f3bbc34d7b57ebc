package queries

import (
	"context"

	"github.com/google/uuid"
)

const upsertRecordedAnswer = `
INSERT INTO user_answers (user_id, question_id, answer_id, score_value, answered_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (user_id, question_id)
DO UPDATE SET answer_id = EXCLUDED.answer_id, score_value = EXCLUDED.score_value, answered_at = EXCLUDED.answered_at
`

// UpsertRecordedAnswerParams keys on (user, question); a resubmission
// overwrites the earlier choice instead of adding a row.
type UpsertRecordedAnswerParams struct {
	UserID     uuid.UUID
	QuestionID uuid.UUID
	AnswerID   uuid.UUID
	ScoreValue int32
}

func (q *Queries) UpsertRecordedAnswer(ctx context.Context, arg UpsertRecordedAnswerParams) error {
	_, err := q.db.Exec(ctx, upsertRecordedAnswer, arg.UserID, arg.QuestionID, arg.AnswerID, arg.ScoreValue)
	return err
}

// The recorded score_value is authoritative here; the live answer key is only
// consulted for the per-question maximum.
const listCategoryScoreRows = `
SELECT qcm.category_id,
       qc.category_label,
       ua.score_value AS user_score,
       (SELECT COALESCE(MAX(score_value), 0) FROM question_answer WHERE question_id = ua.question_id) AS max_possible_score
FROM user_answers ua
JOIN question_category_map qcm ON ua.question_id = qcm.question_id
JOIN question_category qc ON qcm.category_id = qc.category_id
WHERE ua.user_id = $1
`

func (q *Queries) ListCategoryScoreRows(ctx context.Context, userID uuid.UUID) ([]CategoryScoreRow, error) {
	rows, err := q.db.Query(ctx, listCategoryScoreRows, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CategoryScoreRow
	for rows.Next() {
		var r CategoryScoreRow
		if err := rows.Scan(&r.CategoryID, &r.CategoryLabel, &r.UserScore, &r.MaxScore); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const sumScoreByUser = `
SELECT COALESCE(SUM(score_value), 0) FROM user_answers WHERE user_id = $1
`

func (q *Queries) SumScoreByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := q.db.QueryRow(ctx, sumScoreByUser, userID).Scan(&total)
	return total, err
}

const avgTotalScore = `
WITH user_scores AS (
    SELECT user_id, SUM(score_value) AS total_score
    FROM user_answers
    GROUP BY user_id
)
SELECT COALESCE(AVG(total_score), 0) FROM user_scores
`

func (q *Queries) AvgTotalScore(ctx context.Context) (float64, error) {
	var avg float64
	err := q.db.QueryRow(ctx, avgTotalScore).Scan(&avg)
	return avg, err
}
