package models

import "time"

const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusDeclined = "declined"
)

// Friendship is the raw persisted relation between two users.
type Friendship struct {
	ID        int       `db:"id" json:"id"`
	User1ID   int       `db:"user1_id" json:"user1_id"`
	User2ID   int       `db:"user2_id" json:"user2_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Friend is the per-user view of a confirmed friendship.
type Friend struct {
	ID           int       `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	FriendsSince time.Time `db:"friends_since" json:"friendsSince"`
}

// FriendRequest is a pending directional proposal. SenderUsername is filled
// for incoming views, ReceiverUsername for outgoing views.
type FriendRequest struct {
	ID               int       `db:"id" json:"id"`
	SenderID         int       `db:"sender_id" json:"sender_id,omitempty"`
	SenderUsername   string    `db:"sender_username" json:"sender_username,omitempty"`
	ReceiverID       int       `db:"receiver_id" json:"receiver_id,omitempty"`
	ReceiverUsername string    `db:"receiver_username" json:"receiver_username,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}
