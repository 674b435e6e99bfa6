package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"taskmasters/client/notify"
	"taskmasters/internal/models"
)

// GatewayMock stands in for the client core's remote data gateway.
type GatewayMock struct {
	mock.Mock
}

func (m *GatewayMock) Friends(ctx context.Context, userID int) ([]models.Friend, error) {
	args := m.Called(ctx, userID)
	var friends []models.Friend
	if val := args.Get(0); val != nil {
		friends = val.([]models.Friend)
	}
	return friends, args.Error(1)
}

func (m *GatewayMock) IncomingRequests(ctx context.Context, userID int) ([]models.FriendRequest, error) {
	args := m.Called(ctx, userID)
	var requests []models.FriendRequest
	if val := args.Get(0); val != nil {
		requests = val.([]models.FriendRequest)
	}
	return requests, args.Error(1)
}

func (m *GatewayMock) OutgoingRequests(ctx context.Context, userID int) ([]models.FriendRequest, error) {
	args := m.Called(ctx, userID)
	var requests []models.FriendRequest
	if val := args.Get(0); val != nil {
		requests = val.([]models.FriendRequest)
	}
	return requests, args.Error(1)
}

func (m *GatewayMock) SearchUsers(ctx context.Context, username string) ([]models.UserSummary, error) {
	args := m.Called(ctx, username)
	var results []models.UserSummary
	if val := args.Get(0); val != nil {
		results = val.([]models.UserSummary)
	}
	return results, args.Error(1)
}

func (m *GatewayMock) CreateRequest(ctx context.Context, senderID int, receiverID int) (models.FriendRequest, error) {
	args := m.Called(ctx, senderID, receiverID)
	var req models.FriendRequest
	if val := args.Get(0); val != nil {
		req = val.(models.FriendRequest)
	}
	return req, args.Error(1)
}

func (m *GatewayMock) AcceptRequest(ctx context.Context, requestID int) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}

func (m *GatewayMock) DeclineRequest(ctx context.Context, requestID int) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}

func (m *GatewayMock) RemoveFriend(ctx context.Context, userID int, friendID int) error {
	args := m.Called(ctx, userID, friendID)
	return args.Error(0)
}

func (m *GatewayMock) Messages(ctx context.Context, userID int, friendID int) ([]models.Message, error) {
	args := m.Called(ctx, userID, friendID)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *GatewayMock) SendMessage(ctx context.Context, senderID int, receiverID int, body string) (models.Message, error) {
	args := m.Called(ctx, senderID, receiverID, body)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *GatewayMock) Tasks(ctx context.Context, userID int) ([]models.Task, error) {
	args := m.Called(ctx, userID)
	var tasks []models.Task
	if val := args.Get(0); val != nil {
		tasks = val.([]models.Task)
	}
	return tasks, args.Error(1)
}

func (m *GatewayMock) SharedTasks(ctx context.Context, userID int) ([]models.SharedTask, error) {
	args := m.Called(ctx, userID)
	var tasks []models.SharedTask
	if val := args.Get(0); val != nil {
		tasks = val.([]models.SharedTask)
	}
	return tasks, args.Error(1)
}

func (m *GatewayMock) CreateTask(ctx context.Context, userID int, task models.Task) (models.Task, error) {
	args := m.Called(ctx, userID, task)
	var created models.Task
	if val := args.Get(0); val != nil {
		created = val.(models.Task)
	}
	return created, args.Error(1)
}

func (m *GatewayMock) UpdateTask(ctx context.Context, userID int, task models.Task) (models.Task, error) {
	args := m.Called(ctx, userID, task)
	var updated models.Task
	if val := args.Get(0); val != nil {
		updated = val.(models.Task)
	}
	return updated, args.Error(1)
}

func (m *GatewayMock) DeleteTask(ctx context.Context, userID int, taskID int) error {
	args := m.Called(ctx, userID, taskID)
	return args.Error(0)
}

// NotifierMock records banner notifications.
type NotifierMock struct {
	mock.Mock
}

func (m *NotifierMock) Notify(level notify.Level, text string) {
	m.Called(level, text)
}
