package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"taskmasters/internal/models"
)

// MessageRepository defines interactions for direct messages.
type MessageRepository interface {
	CreateMessage(ctx context.Context, senderID int, receiverID int, body string) (models.Message, error)
	ListMessagesBetween(ctx context.Context, userID int, friendID int) ([]models.Message, error)
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// CreateMessage stores a message; id and timestamp are assigned here.
func (r *MessageRepo) CreateMessage(ctx context.Context, senderID int, receiverID int, body string) (models.Message, error) {
	var msg models.Message
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO messages (sender_id, receiver_id, body) VALUES ($1, $2, $3)
         RETURNING id, sender_id, receiver_id, body, created_at`,
		senderID, receiverID, body).
		Scan(&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.Body, &msg.Timestamp)
	return msg, err
}

// ListMessagesBetween returns the full conversation between two users in
// chronological order.
func (r *MessageRepo) ListMessagesBetween(ctx context.Context, userID int, friendID int) ([]models.Message, error) {
	query := `SELECT id, sender_id, receiver_id, body, created_at
        FROM messages
        WHERE (sender_id=$1 AND receiver_id=$2) OR (sender_id=$2 AND receiver_id=$1)
        ORDER BY created_at ASC, id ASC`
	msgs := []models.Message{}
	err := r.db.SelectContext(ctx, &msgs, query, userID, friendID)
	return msgs, err
}
