package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"taskmasters/internal/models"
)

type FriendRepositoryMock struct {
	mock.Mock
}

func (m *FriendRepositoryMock) ListFriends(ctx context.Context, userID int) ([]models.Friend, error) {
	args := m.Called(ctx, userID)
	var friends []models.Friend
	if val := args.Get(0); val != nil {
		friends = val.([]models.Friend)
	}
	return friends, args.Error(1)
}

func (m *FriendRepositoryMock) AreFriends(ctx context.Context, userID int, friendID int) (bool, error) {
	args := m.Called(ctx, userID, friendID)
	return args.Bool(0), args.Error(1)
}

func (m *FriendRepositoryMock) RemoveFriendship(ctx context.Context, userID int, friendID int) error {
	args := m.Called(ctx, userID, friendID)
	return args.Error(0)
}

type RequestRepositoryMock struct {
	mock.Mock
}

func (m *RequestRepositoryMock) CreateRequest(ctx context.Context, senderID int, receiverID int) (models.FriendRequest, error) {
	args := m.Called(ctx, senderID, receiverID)
	var req models.FriendRequest
	if val := args.Get(0); val != nil {
		req = val.(models.FriendRequest)
	}
	return req, args.Error(1)
}

func (m *RequestRepositoryMock) IncomingRequests(ctx context.Context, userID int) ([]models.FriendRequest, error) {
	args := m.Called(ctx, userID)
	var requests []models.FriendRequest
	if val := args.Get(0); val != nil {
		requests = val.([]models.FriendRequest)
	}
	return requests, args.Error(1)
}

func (m *RequestRepositoryMock) OutgoingRequests(ctx context.Context, userID int) ([]models.FriendRequest, error) {
	args := m.Called(ctx, userID)
	var requests []models.FriendRequest
	if val := args.Get(0); val != nil {
		requests = val.([]models.FriendRequest)
	}
	return requests, args.Error(1)
}

func (m *RequestRepositoryMock) GetRequest(ctx context.Context, requestID int) (models.FriendRequest, error) {
	args := m.Called(ctx, requestID)
	var req models.FriendRequest
	if val := args.Get(0); val != nil {
		req = val.(models.FriendRequest)
	}
	return req, args.Error(1)
}

func (m *RequestRepositoryMock) AcceptRequest(ctx context.Context, requestID int) (models.Friendship, error) {
	args := m.Called(ctx, requestID)
	var friendship models.Friendship
	if val := args.Get(0); val != nil {
		friendship = val.(models.Friendship)
	}
	return friendship, args.Error(1)
}

func (m *RequestRepositoryMock) DeleteRequest(ctx context.Context, requestID int) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}

func (m *RequestRepositoryMock) HasPendingBetween(ctx context.Context, userID int, otherID int) (bool, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Bool(0), args.Error(1)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) CreateMessage(ctx context.Context, senderID int, receiverID int, body string) (models.Message, error) {
	args := m.Called(ctx, senderID, receiverID, body)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) ListMessagesBetween(ctx context.Context, userID int, friendID int) ([]models.Message, error) {
	args := m.Called(ctx, userID, friendID)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) GetUser(ctx context.Context, userID int) (models.User, error) {
	args := m.Called(ctx, userID)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	args := m.Called(ctx, username)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) SearchUsers(ctx context.Context, query string, excludeID int, limit int) ([]models.UserSummary, error) {
	args := m.Called(ctx, query, excludeID, limit)
	var results []models.UserSummary
	if val := args.Get(0); val != nil {
		results = val.([]models.UserSummary)
	}
	return results, args.Error(1)
}

type TaskRepositoryMock struct {
	mock.Mock
}

func (m *TaskRepositoryMock) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	args := m.Called(ctx, task)
	var created models.Task
	if val := args.Get(0); val != nil {
		created = val.(models.Task)
	}
	return created, args.Error(1)
}

func (m *TaskRepositoryMock) ListTasks(ctx context.Context, ownerID int) ([]models.Task, error) {
	args := m.Called(ctx, ownerID)
	var tasks []models.Task
	if val := args.Get(0); val != nil {
		tasks = val.([]models.Task)
	}
	return tasks, args.Error(1)
}

func (m *TaskRepositoryMock) GetTask(ctx context.Context, taskID int) (models.Task, error) {
	args := m.Called(ctx, taskID)
	var task models.Task
	if val := args.Get(0); val != nil {
		task = val.(models.Task)
	}
	return task, args.Error(1)
}

func (m *TaskRepositoryMock) UpdateTask(ctx context.Context, task models.Task) (models.Task, error) {
	args := m.Called(ctx, task)
	var updated models.Task
	if val := args.Get(0); val != nil {
		updated = val.(models.Task)
	}
	return updated, args.Error(1)
}

func (m *TaskRepositoryMock) DeleteTask(ctx context.Context, taskID int, ownerID int) error {
	args := m.Called(ctx, taskID, ownerID)
	return args.Error(0)
}

func (m *TaskRepositoryMock) ShareTask(ctx context.Context, taskID int, userID int) error {
	args := m.Called(ctx, taskID, userID)
	return args.Error(0)
}

func (m *TaskRepositoryMock) ListSharedTasks(ctx context.Context, userID int) ([]models.SharedTask, error) {
	args := m.Called(ctx, userID)
	var tasks []models.SharedTask
	if val := args.Get(0); val != nil {
		tasks = val.([]models.SharedTask)
	}
	return tasks, args.Error(1)
}
