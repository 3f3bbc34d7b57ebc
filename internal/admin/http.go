package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ficotempo/competency-exam/internal/db/repository"
	"github.com/ficotempo/competency-exam/internal/exam/scoring"
	"github.com/ficotempo/competency-exam/internal/report"
	httperrors "github.com/ficotempo/competency-exam/pkg/http/errors"
)

// HTTPHandlers exposes the admin surface: authoring, dashboard, reports.
type HTTPHandlers struct {
	svc        *Service
	users      *repository.UserRepository
	aggregator *scoring.Aggregator
	pdf        *report.Generator
	validate   *validator.Validate
	logger     zerolog.Logger
}

// NewHTTPHandlers constructs the admin HTTP surface. pdf may be nil when
// report rendering is disabled.
func NewHTTPHandlers(svc *Service, users *repository.UserRepository, aggregator *scoring.Aggregator, pdf *report.Generator, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		svc:        svc,
		users:      users,
		aggregator: aggregator,
		pdf:        pdf,
		validate:   validator.New(),
		logger:     logger.With().Str("component", "admin_http").Logger(),
	}
}

// Questions handles GET (list) and POST (create) /v1/admin/questions
func (h *HTTPHandlers) Questions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		rows, err := h.svc.ListQuestions(r.Context())
		if err != nil {
			h.logger.Error().Err(err).Msg("question listing failed")
			httperrors.RespondInternalError(w, "Could not list questions")
			return
		}
		h.respondJSON(w, http.StatusOK, map[string]interface{}{"questions": rows, "count": len(rows)})

	case http.MethodPost:
		var input SaveQuestionInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
			return
		}
		input.QuestionID = nil
		h.saveQuestion(w, r, input)

	default:
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
	}
}

// QuestionByID handles GET/PUT/DELETE /v1/admin/questions/{id}
func (h *HTTPHandlers) QuestionByID(w http.ResponseWriter, r *http.Request) {
	questionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid question id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		detail, err := h.svc.QuestionDetail(r.Context(), questionID)
		if err != nil {
			h.logger.Error().Err(err).Msg("question detail failed")
			httperrors.RespondInternalError(w, "Could not load question")
			return
		}
		if detail == nil {
			httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Question not found")
			return
		}
		h.respondJSON(w, http.StatusOK, detail)

	case http.MethodPut:
		var input SaveQuestionInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
			return
		}
		input.QuestionID = &questionID
		h.saveQuestion(w, r, input)

	case http.MethodDelete:
		if err := h.svc.DeleteQuestion(r.Context(), questionID); err != nil {
			h.logger.Error().Err(err).Msg("question delete failed")
			httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeQuestionDeleteFailed, "Could not delete question")
			return
		}
		h.respondJSON(w, http.StatusOK, map[string]bool{"success": true})

	default:
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
	}
}

func (h *HTTPHandlers) saveQuestion(w http.ResponseWriter, r *http.Request, input SaveQuestionInput) {
	if err := h.validate.Struct(input); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeValidationFailed, err.Error())
		return
	}

	questionID, err := h.svc.SaveQuestion(r.Context(), input)
	if err != nil {
		if errors.Is(err, ErrQuestionNotFound) {
			httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Question not found")
			return
		}
		h.logger.Error().Err(err).Msg("question save failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeQuestionSaveFailed, "Could not save question")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "question_id": questionID})
}

// Reference handles GET /v1/admin/reference
func (h *HTTPHandlers) Reference(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	data, err := h.svc.Reference(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("reference fetch failed")
		httperrors.RespondInternalError(w, "Could not load reference data")
		return
	}
	h.respondJSON(w, http.StatusOK, data)
}

// Stats handles GET /v1/admin/stats
func (h *HTTPHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("stats fetch failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeStatsFailed, "Could not load stats")
		return
	}

	byType, err := h.svc.QuestionCountByType(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("type counts failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeStatsFailed, "Could not load stats")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"stats":             stats,
		"questions_by_type": byType,
	})
}

// Participants handles GET /v1/admin/participants and
// GET /v1/admin/participants/pending
func (h *HTTPHandlers) Participants(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	rows, err := h.svc.Participants(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("participant listing failed")
		httperrors.RespondInternalError(w, "Could not list participants")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"participants": rows, "count": len(rows)})
}

// PendingParticipants handles GET /v1/admin/participants/pending
func (h *HTTPHandlers) PendingParticipants(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	rows, err := h.svc.PendingUsers(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("pending listing failed")
		httperrors.RespondInternalError(w, "Could not list pending users")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"pending": rows, "count": len(rows)})
}

// ParticipantReport handles GET /v1/admin/participants/{id}/report.pdf
func (h *HTTPHandlers) ParticipantReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}
	if h.pdf == nil {
		httperrors.RespondError(w, http.StatusServiceUnavailable, httperrors.ErrCodeReportFailed, "Report rendering disabled")
		return
	}

	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid user id")
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "User not found")
		return
	}

	result, err := h.aggregator.ComputeResult(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Msg("result aggregation failed")
		httperrors.RespondInternalError(w, "Could not compute result")
		return
	}
	if result == nil {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNoResult, "User has no completed exam attempt")
		return
	}

	contact := ""
	if user.Email != nil {
		contact = *user.Email
	} else if user.Phone != nil {
		contact = *user.Phone
	}

	pdf, err := h.pdf.Render(r.Context(), user.FullName, contact, *result)
	if err != nil {
		h.logger.Error().Err(err).Msg("report rendering failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeReportFailed, "Could not render report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "Hasil_Quiz_"+user.Username+".pdf"))
	_, _ = w.Write(pdf)
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("response encoding failed")
	}
}
