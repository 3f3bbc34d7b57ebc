package exam

import (
	"errors"

	"github.com/google/uuid"
)

// Session statuses as stored in user_test.
const (
	SessionStart    = "START"
	SessionComplete = "COMPLETE"
)

// Initiate outcomes.
const (
	StatusNew       = "NEW"
	StatusResume    = "RESUME"
	StatusCompleted = "COMPLETED"
)

// InvalidAnswerPolicy decides what happens when a submitted answer id does
// not resolve against the answer key.
type InvalidAnswerPolicy string

const (
	// PolicyZeroScore records the answer with score 0. Matches the legacy
	// behavior of favoring availability over strict validation.
	PolicyZeroScore InvalidAnswerPolicy = "zero"
	// PolicyReject refuses the submission.
	PolicyReject InvalidAnswerPolicy = "reject"
)

// ErrUnknownAnswer is returned under PolicyReject for an unresolvable option.
var ErrUnknownAnswer = errors.New("answer id does not resolve to a score")

// InitiateResult tells the caller whether the user enters a fresh exam,
// resumes an interrupted one, or is blocked because a completed attempt
// already exists.
type InitiateResult struct {
	Status    string    `json:"status"`
	SessionID uuid.UUID `json:"session_id"`
}

// Option is an answer choice as delivered to exam takers: no is_correct, no
// score_value. The key stays on the server.
type Option struct {
	ID   uuid.UUID `json:"answer_id"`
	Text string    `json:"answer_text"`
}

// Question is one exam prompt with its stripped option list.
type Question struct {
	ID       uuid.UUID `json:"question_id"`
	Text     string    `json:"question_text"`
	ImageURL *string   `json:"question_image_url,omitempty"`
	Options  []Option  `json:"options"`
}
