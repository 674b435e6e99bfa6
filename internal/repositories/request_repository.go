package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"taskmasters/internal/models"
)

var (
	ErrRequestNotFound  = errors.New("friend request not found")
	ErrDuplicateRequest = errors.New("friend request already exists")
)

// RequestRepository abstracts friend-request persistence. Accepting a request
// is transactional: the pending row is removed and the friendship created in
// one unit, so a request id can never resolve twice.
type RequestRepository interface {
	CreateRequest(ctx context.Context, senderID int, receiverID int) (models.FriendRequest, error)
	IncomingRequests(ctx context.Context, userID int) ([]models.FriendRequest, error)
	OutgoingRequests(ctx context.Context, userID int) ([]models.FriendRequest, error)
	GetRequest(ctx context.Context, requestID int) (models.FriendRequest, error)
	AcceptRequest(ctx context.Context, requestID int) (models.Friendship, error)
	DeleteRequest(ctx context.Context, requestID int) error
	HasPendingBetween(ctx context.Context, userID int, otherID int) (bool, error)
}

// RequestRepo is a sqlx implementation of RequestRepository.
type RequestRepo struct {
	db *sqlx.DB
}

// NewRequestRepo constructs a RequestRepo.
func NewRequestRepo(db *sqlx.DB) *RequestRepo {
	return &RequestRepo{db: db}
}

// CreateRequest stores a pending request.
func (r *RequestRepo) CreateRequest(ctx context.Context, senderID int, receiverID int) (models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO friend_requests (sender_id, receiver_id) VALUES ($1, $2) RETURNING id, sender_id, receiver_id, created_at`,
		senderID, receiverID).
		Scan(&req.ID, &req.SenderID, &req.ReceiverID, &req.CreatedAt)
	return req, err
}

// IncomingRequests returns pending requests addressed to the user.
func (r *RequestRepo) IncomingRequests(ctx context.Context, userID int) ([]models.FriendRequest, error) {
	query := `SELECT fr.id, fr.sender_id, u.username AS sender_username, fr.created_at
        FROM friend_requests fr
        JOIN users u ON u.id = fr.sender_id
        WHERE fr.receiver_id=$1
        ORDER BY fr.created_at ASC`
	requests := []models.FriendRequest{}
	err := r.db.SelectContext(ctx, &requests, query, userID)
	return requests, err
}

// OutgoingRequests returns pending requests sent by the user.
func (r *RequestRepo) OutgoingRequests(ctx context.Context, userID int) ([]models.FriendRequest, error) {
	query := `SELECT fr.id, fr.receiver_id, u.username AS receiver_username, fr.created_at
        FROM friend_requests fr
        JOIN users u ON u.id = fr.receiver_id
        WHERE fr.sender_id=$1
        ORDER BY fr.created_at ASC`
	requests := []models.FriendRequest{}
	err := r.db.SelectContext(ctx, &requests, query, userID)
	return requests, err
}

// GetRequest fetches a pending request by id.
func (r *RequestRepo) GetRequest(ctx context.Context, requestID int) (models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.QueryRowxContext(ctx,
		`SELECT id, sender_id, receiver_id, created_at FROM friend_requests WHERE id=$1`, requestID).
		Scan(&req.ID, &req.SenderID, &req.ReceiverID, &req.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FriendRequest{}, ErrRequestNotFound
	}
	return req, err
}

// AcceptRequest removes the pending request and creates the friendship in one
// transaction.
func (r *RequestRepo) AcceptRequest(ctx context.Context, requestID int) (models.Friendship, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Friendship{}, err
	}
	defer tx.Rollback()

	var req models.FriendRequest
	err = tx.QueryRowxContext(ctx,
		`DELETE FROM friend_requests WHERE id=$1 RETURNING id, sender_id, receiver_id, created_at`, requestID).
		Scan(&req.ID, &req.SenderID, &req.ReceiverID, &req.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Friendship{}, ErrRequestNotFound
	}
	if err != nil {
		return models.Friendship{}, err
	}

	var friendship models.Friendship
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO friendships (user1_id, user2_id) VALUES (LEAST($1::int,$2::int), GREATEST($1::int,$2::int))
         RETURNING id, user1_id, user2_id, created_at`,
		req.SenderID, req.ReceiverID).
		Scan(&friendship.ID, &friendship.User1ID, &friendship.User2ID, &friendship.CreatedAt)
	if err != nil {
		return models.Friendship{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Friendship{}, err
	}
	return friendship, nil
}

// DeleteRequest removes a pending request without creating a friendship.
// Serves both decline (receiver) and cancellation (sender).
func (r *RequestRepo) DeleteRequest(ctx context.Context, requestID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM friend_requests WHERE id=$1`, requestID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// HasPendingBetween reports whether a pending request exists in either
// direction between two users.
func (r *RequestRepo) HasPendingBetween(ctx context.Context, userID int, otherID int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM friend_requests
            WHERE (sender_id=$1 AND receiver_id=$2) OR (sender_id=$2 AND receiver_id=$1))`,
		userID, otherID)
	return exists, err
}
