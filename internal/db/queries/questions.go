package queries

import (
	"context"

	"github.com/google/uuid"
)

// ORDER BY RANDOM() gives every exam entry its own question order; the order
// is deliberately not reproducible.
const listScoredQuestionsRandomized = `
SELECT question_id, question_text, question_image_url, type_id, is_scored, created_at
FROM question_list
WHERE is_scored = true
ORDER BY RANDOM()
`

func (q *Queries) ListScoredQuestionsRandomized(ctx context.Context) ([]Question, error) {
	rows, err := q.db.Query(ctx, listScoredQuestionsRandomized)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Question
	for rows.Next() {
		var item Question
		if err := rows.Scan(&item.QuestionID, &item.Text, &item.ImageURL, &item.TypeID, &item.IsScored, &item.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

const listOptionsByQuestion = `
SELECT answer_id, question_id, answer_text, is_correct, score_value, sort_order
FROM question_answer
WHERE question_id = $1
ORDER BY sort_order ASC
`

func (q *Queries) ListOptionsByQuestion(ctx context.Context, questionID uuid.UUID) ([]AnswerOption, error) {
	rows, err := q.db.Query(ctx, listOptionsByQuestion, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AnswerOption
	for rows.Next() {
		var item AnswerOption
		if err := rows.Scan(&item.AnswerID, &item.QuestionID, &item.Text, &item.IsCorrect, &item.ScoreValue, &item.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

const getOptionScore = `
SELECT score_value FROM question_answer WHERE answer_id = $1
`

func (q *Queries) GetOptionScore(ctx context.Context, answerID uuid.UUID) (int32, error) {
	var score int32
	err := q.db.QueryRow(ctx, getOptionScore, answerID).Scan(&score)
	return score, err
}

const getQuestion = `
SELECT question_id, question_text, question_image_url, type_id, is_scored, created_at
FROM question_list
WHERE question_id = $1
`

func (q *Queries) GetQuestion(ctx context.Context, questionID uuid.UUID) (Question, error) {
	row := q.db.QueryRow(ctx, getQuestion, questionID)
	var item Question
	err := row.Scan(&item.QuestionID, &item.Text, &item.ImageURL, &item.TypeID, &item.IsScored, &item.CreatedAt)
	return item, err
}

const listQuestionsWithMeta = `
SELECT q.question_id, q.question_text, q.question_image_url, q.type_id, q.is_scored, q.created_at,
       qt.type_name,
       (SELECT COUNT(*) FROM question_category_map qcm WHERE qcm.question_id = q.question_id) AS category_count
FROM question_list q
LEFT JOIN question_type qt ON q.type_id = qt.type_id
ORDER BY q.created_at DESC
`

func (q *Queries) ListQuestionsWithMeta(ctx context.Context) ([]QuestionWithMeta, error) {
	rows, err := q.db.Query(ctx, listQuestionsWithMeta)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []QuestionWithMeta
	for rows.Next() {
		var item QuestionWithMeta
		if err := rows.Scan(&item.QuestionID, &item.Text, &item.ImageURL, &item.TypeID, &item.IsScored, &item.CreatedAt,
			&item.TypeName, &item.CategoryCount); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

const insertQuestion = `
INSERT INTO question_list (question_id, question_text, question_image_url, type_id, is_scored)
VALUES ($1, $2, $3, $4, $5)
`

// UpsertQuestionParams covers both authoring insert and update.
type UpsertQuestionParams struct {
	QuestionID uuid.UUID
	Text       string
	ImageURL   *string
	TypeID     *uuid.UUID
	IsScored   bool
}

func (q *Queries) InsertQuestion(ctx context.Context, arg UpsertQuestionParams) error {
	_, err := q.db.Exec(ctx, insertQuestion, arg.QuestionID, arg.Text, arg.ImageURL, arg.TypeID, arg.IsScored)
	return err
}

const updateQuestion = `
UPDATE question_list
SET question_text = $2, question_image_url = $3, type_id = $4, is_scored = $5
WHERE question_id = $1
`

func (q *Queries) UpdateQuestion(ctx context.Context, arg UpsertQuestionParams) (int64, error) {
	tag, err := q.db.Exec(ctx, updateQuestion, arg.QuestionID, arg.Text, arg.ImageURL, arg.TypeID, arg.IsScored)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteQuestion = `
DELETE FROM question_list WHERE question_id = $1
`

func (q *Queries) DeleteQuestion(ctx context.Context, questionID uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteQuestion, questionID)
	return err
}

const deleteOptionsByQuestion = `
DELETE FROM question_answer WHERE question_id = $1
`

func (q *Queries) DeleteOptionsByQuestion(ctx context.Context, questionID uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteOptionsByQuestion, questionID)
	return err
}

const insertOption = `
INSERT INTO question_answer (answer_id, question_id, answer_text, is_correct, score_value, sort_order)
VALUES ($1, $2, $3, $4, $5, $6)
`

// InsertOptionParams is one authored answer option.
type InsertOptionParams struct {
	AnswerID   uuid.UUID
	QuestionID uuid.UUID
	Text       string
	IsCorrect  bool
	ScoreValue int32
	SortOrder  int32
}

func (q *Queries) InsertOption(ctx context.Context, arg InsertOptionParams) error {
	_, err := q.db.Exec(ctx, insertOption, arg.AnswerID, arg.QuestionID, arg.Text, arg.IsCorrect, arg.ScoreValue, arg.SortOrder)
	return err
}

const deleteCategoryMapByQuestion = `
DELETE FROM question_category_map WHERE question_id = $1
`

func (q *Queries) DeleteCategoryMapByQuestion(ctx context.Context, questionID uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteCategoryMapByQuestion, questionID)
	return err
}

const insertCategoryMap = `
INSERT INTO question_category_map (question_id, category_id) VALUES ($1, $2)
`

func (q *Queries) InsertCategoryMap(ctx context.Context, questionID, categoryID uuid.UUID) error {
	_, err := q.db.Exec(ctx, insertCategoryMap, questionID, categoryID)
	return err
}

const listCategoriesByQuestion = `
SELECT qc.category_id, qc.category_label
FROM question_category_map qcm
JOIN question_category qc ON qcm.category_id = qc.category_id
WHERE qcm.question_id = $1
`

func (q *Queries) ListCategoriesByQuestion(ctx context.Context, questionID uuid.UUID) ([]Category, error) {
	rows, err := q.db.Query(ctx, listCategoriesByQuestion, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.CategoryID, &c.Label); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const listTypes = `
SELECT type_id, type_name FROM question_type ORDER BY type_name
`

func (q *Queries) ListTypes(ctx context.Context) ([]QuestionType, error) {
	rows, err := q.db.Query(ctx, listTypes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []QuestionType
	for rows.Next() {
		var t QuestionType
		if err := rows.Scan(&t.TypeID, &t.TypeName); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

const listCategories = `
SELECT category_id, category_label FROM question_category ORDER BY category_label
`

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.Query(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.CategoryID, &c.Label); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const countQuestionsByType = `
SELECT qt.type_name, COUNT(q.question_id) AS total
FROM question_type qt
LEFT JOIN question_list q ON qt.type_id = q.type_id
GROUP BY qt.type_name
ORDER BY qt.type_name
`

func (q *Queries) CountQuestionsByType(ctx context.Context) ([]TypeCountRow, error) {
	rows, err := q.db.Query(ctx, countQuestionsByType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TypeCountRow
	for rows.Next() {
		var t TypeCountRow
		if err := rows.Scan(&t.TypeName, &t.Total); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
