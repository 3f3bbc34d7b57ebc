package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/ficotempo/competency-exam/internal/auth/jwt"
	"github.com/ficotempo/competency-exam/internal/db/queries"
	"github.com/ficotempo/competency-exam/internal/db/repository"
)

// ErrInvalidCredentials hides whether the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service handles authentication and account provisioning.
type Service struct {
	userRepo *repository.UserRepository
	tokenMgr *jwt.Manager
	logger   zerolog.Logger
}

// ServiceOptions configures the auth service.
type ServiceOptions struct {
	TokenConfig jwt.TokenConfig
}

// NewService creates an authentication service.
func NewService(userRepo *repository.UserRepository, opts ServiceOptions, logger zerolog.Logger) *Service {
	return &Service{
		userRepo: userRepo,
		tokenMgr: jwt.NewManager(opts.TokenConfig),
		logger:   logger.With().Str("component", "auth_service").Logger(),
	}
}

// Login authenticates username/password and issues a token pair.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*User, *TokenPair, error) {
	row, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := VerifyPassword(row.PasswordHash, req.Password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	user := toUser(row)
	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, fmt.Errorf("issue tokens: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Str("role", user.Role).Msg("user logged in")
	return &user, tokens, nil
}

// CreateUser provisions a new account. Accounts are admin-created; there is
// no self-registration.
func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	row, err := s.userRepo.Create(ctx, queries.CreateUserParams{
		UserID:       uuid.New(),
		Username:     req.Username,
		PasswordHash: hash,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         req.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	user := toUser(row)
	s.logger.Info().Str("user_id", user.ID.String()).Str("role", user.Role).Msg("user provisioned")
	return &user, nil
}

// GetUser fetches an account by id.
func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	row, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user := toUser(row)
	return &user, nil
}

// ValidateToken verifies an access token and returns its claims.
func (s *Service) ValidateToken(token string) (*jwt.Claims, error) {
	return s.tokenMgr.ValidateAccessToken(token)
}

func (s *Service) issueTokens(user User) (*TokenPair, error) {
	id := jwt.Identity{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
	}

	access, err := s.tokenMgr.GenerateAccessToken(id)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokenMgr.GenerateRefreshToken(id)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64((8 * time.Hour).Seconds()),
	}, nil
}

func toUser(row queries.User) User {
	return User{
		ID:        row.UserID,
		Username:  row.Username,
		FullName:  row.FullName,
		Email:     row.Email,
		Phone:     row.Phone,
		Role:      row.Role,
		CreatedAt: row.CreatedAt,
	}
}
