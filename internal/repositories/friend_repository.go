package repositories

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"taskmasters/internal/models"
)

var ErrFriendshipNotFound = errors.New("friendship not found")

// FriendRepository abstracts confirmed-friendship persistence.
type FriendRepository interface {
	ListFriends(ctx context.Context, userID int) ([]models.Friend, error)
	AreFriends(ctx context.Context, userID int, friendID int) (bool, error)
	RemoveFriendship(ctx context.Context, userID int, friendID int) error
}

// FriendRepo is a sqlx implementation of FriendRepository.
type FriendRepo struct {
	db *sqlx.DB
}

// NewFriendRepo constructs a FriendRepo.
func NewFriendRepo(db *sqlx.DB) *FriendRepo {
	return &FriendRepo{db: db}
}

// ListFriends returns the user's confirmed friends ordered by username.
func (r *FriendRepo) ListFriends(ctx context.Context, userID int) ([]models.Friend, error) {
	query := `SELECT u.id, u.username, f.created_at AS friends_since
        FROM friendships f
        JOIN users u ON u.id = CASE WHEN f.user1_id=$1 THEN f.user2_id ELSE f.user1_id END
        WHERE f.user1_id=$1 OR f.user2_id=$1
        ORDER BY u.username ASC`
	friends := []models.Friend{}
	err := r.db.SelectContext(ctx, &friends, query, userID)
	return friends, err
}

// AreFriends checks whether a confirmed friendship exists between two users.
func (r *FriendRepo) AreFriends(ctx context.Context, userID int, friendID int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM friendships WHERE user1_id=LEAST($1::int,$2::int) AND user2_id=GREATEST($1::int,$2::int))`,
		userID, friendID)
	return exists, err
}

// RemoveFriendship deletes the relation for both parties.
func (r *FriendRepo) RemoveFriendship(ctx context.Context, userID int, friendID int) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM friendships WHERE user1_id=LEAST($1::int,$2::int) AND user2_id=GREATEST($1::int,$2::int)`,
		userID, friendID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrFriendshipNotFound
	}
	return nil
}
