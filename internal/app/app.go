package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ficotempo/competency-exam/internal/admin"
	"github.com/ficotempo/competency-exam/internal/auth"
	"github.com/ficotempo/competency-exam/internal/auth/jwt"
	"github.com/ficotempo/competency-exam/internal/config"
	"github.com/ficotempo/competency-exam/internal/db/queries"
	"github.com/ficotempo/competency-exam/internal/db/repository"
	"github.com/ficotempo/competency-exam/internal/exam"
	"github.com/ficotempo/competency-exam/internal/exam/scoring"
	"github.com/ficotempo/competency-exam/internal/logging"
	"github.com/ficotempo/competency-exam/internal/report"
	"github.com/ficotempo/competency-exam/internal/server"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server

	statsWorker *admin.StatsWorker
	bgCancels   []context.CancelFunc
}

// New bootstraps config, logger, Postgres, Redis and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	connString := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=10",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.SSLMode)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	q := queries.New(pool)

	userRepo := repository.NewUserRepository(q)
	sessionRepo := repository.NewSessionRepository(q)
	questionRepo := repository.NewQuestionRepository(q)
	answerRepo := repository.NewAnswerRepository(q)

	if cfg.Security.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be configured")
	}

	authSvc := auth.NewService(userRepo, auth.ServiceOptions{
		TokenConfig: jwt.TokenConfig{
			AccessSecret:  []byte(cfg.Security.JWTSecret),
			RefreshSecret: []byte(cfg.Security.JWTSecret + "_refresh"),
			Issuer:        cfg.Name,
		},
	}, logger)
	authHandlers := auth.NewHTTPHandlers(authSvc, logger)

	examSvc := exam.NewService(sessionRepo, questionRepo, answerRepo, exam.ServiceOptions{
		InvalidAnswerPolicy: exam.InvalidAnswerPolicy(cfg.Exam.InvalidAnswerPolicy),
	}, logger)
	aggregator := scoring.NewAggregator(sessionRepo, answerRepo)
	examHandlers := exam.NewHTTPHandlers(examSvc, aggregator, logger)

	adminCache := admin.NewCache(redisClient, cfg.Admin.ReferenceTTL, cfg.Admin.StatsTTL)
	adminSvc := admin.NewService(q, pool, adminCache, logger)

	var pdfGen *report.Generator
	if cfg.Report.Enabled {
		pdfGen, err = report.NewGenerator(cfg.Report.Timeout, logger)
		if err != nil {
			return nil, fmt.Errorf("init report generator: %w", err)
		}
	} else {
		logger.Warn().Msg("PDF report rendering disabled")
	}

	adminHandlers := admin.NewHTTPHandlers(adminSvc, userRepo, aggregator, pdfGen, logger)

	var statsWorker *admin.StatsWorker
	if interval := cfg.Admin.StatsRefreshInterval; interval > 0 {
		statsWorker = admin.NewStatsWorker(adminSvc, interval, logger)
	}

	apiServer := server.NewHTTPServer(cfg, logger, pool, redisClient, authSvc, server.Handlers{
		Auth:  authHandlers,
		Exam:  examHandlers,
		Admin: adminHandlers,
	})

	return &Application{
		cfg:         cfg,
		logger:      logger,
		pool:        pool,
		redis:       redisClient,
		http:        apiServer,
		statsWorker: statsWorker,
		bgCancels:   make([]context.CancelFunc, 0, 1),
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	for _, cancel := range a.bgCancels {
		cancel()
	}

	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.statsWorker != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.statsWorker.Run(bgCtx); err != nil && err != context.Canceled {
				a.logger.Warn().Err(err).Msg("stats worker stopped")
			}
		}()
	}
}
