package queries

import (
	"time"

	"github.com/google/uuid"
)

// User maps a row of users_data.
type User struct {
	UserID       uuid.UUID
	Username     string
	PasswordHash string
	FullName     string
	Email        *string
	Phone        *string
	Role         string
	CreatedAt    time.Time
}

// QuestionType maps a row of question_type.
type QuestionType struct {
	TypeID   uuid.UUID
	TypeName string
}

// Question maps a row of question_list.
type Question struct {
	QuestionID uuid.UUID
	Text       string
	ImageURL   *string
	TypeID     *uuid.UUID
	IsScored   bool
	CreatedAt  time.Time
}

// QuestionWithMeta is the admin listing row: question plus type name and the
// number of mapped categories.
type QuestionWithMeta struct {
	Question
	TypeName      *string
	CategoryCount int64
}

// AnswerOption maps a row of question_answer. Carries the answer key; must be
// stripped before leaving the server on exam routes.
type AnswerOption struct {
	AnswerID   uuid.UUID
	QuestionID uuid.UUID
	Text       string
	IsCorrect  bool
	ScoreValue int32
	SortOrder  int32
}

// Category maps a row of question_category.
type Category struct {
	CategoryID uuid.UUID
	Label      string
}

// TestSession maps a row of user_test.
type TestSession struct {
	SessionID   uuid.UUID
	UserID      uuid.UUID
	Status      string
	StartedAt   time.Time
	CompletedAt *time.Time
}

// RecordedAnswer maps a row of user_answers.
type RecordedAnswer struct {
	UserID     uuid.UUID
	QuestionID uuid.UUID
	AnswerID   uuid.UUID
	ScoreValue int32
	AnsweredAt time.Time
}

// CategoryScoreRow is one recorded answer joined to one of its question's
// category mappings, with the question's maximum attainable score alongside.
type CategoryScoreRow struct {
	CategoryID    uuid.UUID
	CategoryLabel string
	UserScore     int32
	MaxScore      int32
}

// ParticipantRow is an admin listing of a user who finished the exam.
type ParticipantRow struct {
	UserID      uuid.UUID
	FullName    string
	Email       *string
	Phone       *string
	SessionID   uuid.UUID
	CompletedAt *time.Time
	TotalScore  int64
}

// PendingUserRow is a regular user with no completed session yet.
type PendingUserRow struct {
	UserID   uuid.UUID
	FullName string
	Email    *string
	Phone    *string
}

// TypeCountRow counts questions per question type.
type TypeCountRow struct {
	TypeName string
	Total    int64
}
