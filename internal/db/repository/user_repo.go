package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ficotempo/competency-exam/internal/db/queries"
)

type userStore interface {
	CreateUser(ctx context.Context, arg queries.CreateUserParams) (queries.User, error)
	GetUserByUsername(ctx context.Context, username string) (queries.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (queries.User, error)
}

// UserRepository exposes typed DB operations required by auth flows.
type UserRepository struct {
	store userStore
}

// NewUserRepository wraps the query layer for user-specific operations.
func NewUserRepository(store userStore) *UserRepository {
	return &UserRepository{store: store}
}

// Create inserts an admin-provisioned account.
func (r *UserRepository) Create(ctx context.Context, params queries.CreateUserParams) (queries.User, error) {
	return r.store.CreateUser(ctx, params)
}

// GetByUsername fetches a user by login name.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (queries.User, error) {
	return r.store.GetUserByUsername(ctx, username)
}

// GetByID fetches a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (queries.User, error) {
	return r.store.GetUserByID(ctx, userID)
}
