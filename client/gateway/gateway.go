// Package gateway is the sole component performing network I/O on behalf of
// the client core. Transport errors and non-2xx responses are normalized into
// one uniform failure; callers only ever distinguish success from failure.
package gateway

import (
	"context"
	"errors"

	"taskmasters/internal/models"
)

// ErrRequestFailed wraps every transport error and non-2xx response.
var ErrRequestFailed = errors.New("request failed")

// Gateway issues backend requests for friends, requests, messages, and tasks.
type Gateway interface {
	Friends(ctx context.Context, userID int) ([]models.Friend, error)
	IncomingRequests(ctx context.Context, userID int) ([]models.FriendRequest, error)
	OutgoingRequests(ctx context.Context, userID int) ([]models.FriendRequest, error)
	SearchUsers(ctx context.Context, username string) ([]models.UserSummary, error)
	CreateRequest(ctx context.Context, senderID int, receiverID int) (models.FriendRequest, error)
	AcceptRequest(ctx context.Context, requestID int) error
	DeclineRequest(ctx context.Context, requestID int) error
	RemoveFriend(ctx context.Context, userID int, friendID int) error
	Messages(ctx context.Context, userID int, friendID int) ([]models.Message, error)
	SendMessage(ctx context.Context, senderID int, receiverID int, body string) (models.Message, error)
	Tasks(ctx context.Context, userID int) ([]models.Task, error)
	SharedTasks(ctx context.Context, userID int) ([]models.SharedTask, error)
	CreateTask(ctx context.Context, userID int, task models.Task) (models.Task, error)
	UpdateTask(ctx context.Context, userID int, task models.Task) (models.Task, error)
	DeleteTask(ctx context.Context, userID int, taskID int) error
}
