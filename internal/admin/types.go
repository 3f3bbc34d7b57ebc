package admin

import (
	"github.com/google/uuid"

	"github.com/ficotempo/competency-exam/internal/db/queries"
)

// ReferenceData backs the authoring form dropdowns.
type ReferenceData struct {
	Types      []queries.QuestionType `json:"types"`
	Categories []queries.Category     `json:"categories"`
}

// DashboardStats are the admin landing-page cards.
type DashboardStats struct {
	TotalUsers    int64 `json:"total_users"`
	TakenCount    int64 `json:"taken_count"`
	NotTakenCount int64 `json:"not_taken_count"`
	AvgScore      int64 `json:"avg_score"`
}

// OptionInput is one authored answer option.
type OptionInput struct {
	Text       string `json:"answer_text" validate:"required"`
	IsCorrect  bool   `json:"is_correct"`
	ScoreValue int32  `json:"score_value" validate:"gte=0"`
	SortOrder  int32  `json:"sort_order"`
}

// SaveQuestionInput covers create (nil QuestionID) and edit.
type SaveQuestionInput struct {
	QuestionID  *uuid.UUID    `json:"question_id,omitempty"`
	Text        string        `json:"question_text" validate:"required"`
	ImageURL    *string       `json:"question_image_url,omitempty"`
	TypeID      *uuid.UUID    `json:"type_id,omitempty"`
	IsScored    bool          `json:"is_scored"`
	CategoryIDs []uuid.UUID   `json:"category_ids"`
	Options     []OptionInput `json:"answers" validate:"required,min=1,dive"`
}

// QuestionDetail is the full authoring view of one question, answer key
// included. Admin-only; never served on exam routes.
type QuestionDetail struct {
	queries.Question
	Answers    []queries.AnswerOption `json:"answers"`
	Categories []queries.Category     `json:"categories"`
}
