package models

import "time"

// Message is a direct message between two users. ID and Timestamp are
// assigned by the server on insert; clients never fabricate them.
type Message struct {
	ID         int       `db:"id" json:"id"`
	SenderID   int       `db:"sender_id" json:"sender_id"`
	ReceiverID int       `db:"receiver_id" json:"receiver_id"`
	Body       string    `db:"body" json:"message"`
	Timestamp  time.Time `db:"created_at" json:"timestamp"`
}
