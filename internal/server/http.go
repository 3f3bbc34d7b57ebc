package server

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ficotempo/competency-exam/internal/admin"
	"github.com/ficotempo/competency-exam/internal/auth"
	"github.com/ficotempo/competency-exam/internal/config"
	"github.com/ficotempo/competency-exam/internal/exam"
)

// Handlers groups the route handlers wired by the app bootstrap.
type Handlers struct {
	Auth  *auth.HTTPHandlers
	Exam  *exam.HTTPHandlers
	Admin *admin.HTTPHandlers
}

// NewHTTPServer wires all routes for the API service.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, rdb *redis.Client, authSvc *auth.Service, h Handlers) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := pingDependencies(r.Context(), pool, rdb); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	// Public
	mux.HandleFunc("/v1/auth/login", h.Auth.Login)

	// Authenticated
	protected := func(fn http.HandlerFunc) http.Handler {
		return auth.RequireAuth(fn)
	}
	mux.Handle("/v1/users/me", protected(h.Auth.Me))
	mux.Handle("/v1/exam/session", protected(h.Exam.InitiateSession))
	mux.Handle("/v1/exam/questions", protected(h.Exam.Questions))
	mux.Handle("/v1/exam/answers", protected(h.Exam.SubmitAnswer))
	mux.Handle("/v1/exam/finalize", protected(h.Exam.Finalize))
	mux.Handle("/v1/exam/result", protected(h.Exam.Result))

	// Admin only
	adminOnly := func(fn http.HandlerFunc) http.Handler {
		return auth.RequireAdmin(fn)
	}
	mux.Handle("/v1/admin/users", adminOnly(h.Auth.CreateUser))
	mux.Handle("/v1/admin/questions", adminOnly(h.Admin.Questions))
	mux.Handle("/v1/admin/questions/{id}", adminOnly(h.Admin.QuestionByID))
	mux.Handle("/v1/admin/reference", adminOnly(h.Admin.Reference))
	mux.Handle("/v1/admin/stats", adminOnly(h.Admin.Stats))
	mux.Handle("/v1/admin/participants", adminOnly(h.Admin.Participants))
	mux.Handle("/v1/admin/participants/pending", adminOnly(h.Admin.PendingParticipants))
	mux.Handle("/v1/admin/participants/{id}/report.pdf", adminOnly(h.Admin.ParticipantReport))

	handler := auth.Middleware(authSvc, logger)(mux)

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler,
	}
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, rdb *redis.Client) error {
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	if rdb != nil {
		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
	}
	return nil
}
