package exam

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ficotempo/competency-exam/internal/auth"
	"github.com/ficotempo/competency-exam/internal/exam/scoring"
	httperrors "github.com/ficotempo/competency-exam/pkg/http/errors"
)

// HTTPHandlers exposes the exam pipeline to the UI layer.
type HTTPHandlers struct {
	svc        *Service
	aggregator *scoring.Aggregator
	logger     zerolog.Logger
}

// NewHTTPHandlers constructs the exam HTTP surface.
func NewHTTPHandlers(svc *Service, aggregator *scoring.Aggregator, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		svc:        svc,
		aggregator: aggregator,
		logger:     logger.With().Str("component", "exam_http").Logger(),
	}
}

// InitiateSession handles POST /v1/exam/session
func (h *HTTPHandlers) InitiateSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	result, err := h.svc.Initiate(r.Context(), claims.UserID)
	if err != nil {
		h.logger.Error().Err(err).Msg("session initiation failed")
		httperrors.RespondInternalError(w, "Could not start exam session, please retry")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// Questions handles GET /v1/exam/questions
func (h *HTTPHandlers) Questions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	questions, err := h.svc.Questions(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("question fetch failed")
		httperrors.RespondInternalError(w, "Could not load exam questions")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"questions": questions,
		"count":     len(questions),
	})
}

type submitAnswerRequest struct {
	QuestionID uuid.UUID `json:"question_id"`
	AnswerID   uuid.UUID `json:"answer_id"`
}

// SubmitAnswer handles POST /v1/exam/answers
func (h *HTTPHandlers) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	var req submitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.QuestionID == uuid.Nil || req.AnswerID == uuid.Nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeValidationFailed, "question_id and answer_id are required")
		return
	}

	if err := h.svc.SubmitAnswer(r.Context(), claims.UserID, req.QuestionID, req.AnswerID); err != nil {
		if errors.Is(err, ErrUnknownAnswer) {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeUnknownAnswer, "Submitted answer does not exist")
			return
		}
		h.logger.Error().Err(err).Msg("answer submission failed")
		httperrors.RespondInternalError(w, "Could not record answer, please retry")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type finalizeRequest struct {
	SessionID uuid.UUID `json:"session_id"`
}

// Finalize handles POST /v1/exam/finalize
func (h *HTTPHandlers) Finalize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	var req finalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.SessionID == uuid.Nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeValidationFailed, "session_id is required")
		return
	}

	if err := h.svc.Finalize(r.Context(), claims.UserID, req.SessionID); err != nil {
		h.logger.Error().Err(err).Msg("finalize failed")
		httperrors.RespondInternalError(w, "Could not finalize exam, please retry")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Result handles GET /v1/exam/result
func (h *HTTPHandlers) Result(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	result, err := h.aggregator.ComputeResult(r.Context(), claims.UserID)
	if err != nil {
		h.logger.Error().Err(err).Msg("result aggregation failed")
		httperrors.RespondInternalError(w, "Could not compute result")
		return
	}
	if result == nil {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNoResult, "No completed exam attempt")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("response encoding failed")
	}
}
