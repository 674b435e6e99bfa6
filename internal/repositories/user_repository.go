package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"taskmasters/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository exposes user lookup for handlers.
type UserRepository interface {
	GetUser(ctx context.Context, userID int) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	SearchUsers(ctx context.Context, query string, excludeID int, limit int) ([]models.UserSummary, error)
}

// UserRepo is a sqlx-backed repository.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo constructs a UserRepo.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetUser fetches a user by id.
func (r *UserRepo) GetUser(ctx context.Context, userID int) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT id, username, email FROM users WHERE id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// GetUserByUsername fetches a user by exact username.
func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT id, username, email FROM users WHERE username=$1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// SearchUsers returns users whose username starts with the query, excluding
// the caller.
func (r *UserRepo) SearchUsers(ctx context.Context, query string, excludeID int, limit int) ([]models.UserSummary, error) {
	results := []models.UserSummary{}
	err := r.db.SelectContext(ctx, &results,
		`SELECT id, username FROM users WHERE username ILIKE $1 || '%' AND id <> $2 ORDER BY username ASC LIMIT $3`,
		query, excludeID, limit)
	return results, err
}
