package friendgraph

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskmasters/client/notify"
	"taskmasters/internal/mocks"
	"taskmasters/internal/models"
)

var testUser = models.User{ID: 1, Username: "alice"}

func seedManager(t *testing.T, gw *mocks.GatewayMock, friends []models.Friend, incoming, outgoing []models.FriendRequest) *Manager {
	t.Helper()
	gw.On("Friends", mock.Anything, testUser.ID).Return(friends, nil).Once()
	gw.On("IncomingRequests", mock.Anything, testUser.ID).Return(incoming, nil).Once()
	gw.On("OutgoingRequests", mock.Anything, testUser.ID).Return(outgoing, nil).Once()

	m := NewManager(testUser, gw, nil)
	m.LoadAll(context.Background())
	return m
}

func TestLoadAllPopulatesCollections(t *testing.T) {
	gw := new(mocks.GatewayMock)
	m := seedManager(t, gw,
		[]models.Friend{{ID: 2, Username: "bob", FriendsSince: time.Now()}},
		[]models.FriendRequest{{ID: 10, SenderID: 3, SenderUsername: "carol", ReceiverID: 1}},
		[]models.FriendRequest{{ID: 11, SenderID: 1, ReceiverID: 4, ReceiverUsername: "dave"}},
	)

	require.Len(t, m.Friends(), 1)
	require.Len(t, m.Incoming(), 1)
	require.Len(t, m.Outgoing(), 1)
	assert.Equal(t, "bob", m.Friends()[0].Username)
	gw.AssertExpectations(t)
}

func TestLoadAllPartialFailureKeepsOthers(t *testing.T) {
	gw := new(mocks.GatewayMock)
	gw.On("Friends", mock.Anything, 1).Return([]models.Friend{{ID: 2, Username: "bob"}}, nil).Once()
	gw.On("IncomingRequests", mock.Anything, 1).Return(nil, errors.New("boom")).Once()
	gw.On("OutgoingRequests", mock.Anything, 1).Return([]models.FriendRequest{{ID: 11, ReceiverID: 4}}, nil).Once()

	notifier := new(mocks.NotifierMock)
	notifier.On("Notify", notify.LevelError, "Failed to load friend requests").Once()

	m := NewManager(testUser, gw, notifier)
	m.LoadAll(context.Background())

	assert.Len(t, m.Friends(), 1)
	assert.Empty(t, m.Incoming())
	assert.Len(t, m.Outgoing(), 1)
	notifier.AssertExpectations(t)
	gw.AssertExpectations(t)
}

func TestSendRequestEmptyQuery(t *testing.T) {
	gw := new(mocks.GatewayMock)
	m := NewManager(testUser, gw, nil)

	err := m.SendRequest(context.Background(), "   ")

	require.ErrorIs(t, err, ErrEmptyQuery)
	gw.AssertNotCalled(t, "SearchUsers", mock.Anything, mock.Anything)
}

func TestSendRequestNoExactMatch(t *testing.T) {
	gw := new(mocks.GatewayMock)
	m := seedManager(t, gw, nil, nil, nil)
	gw.On("SearchUsers", mock.Anything, "bo").
		Return([]models.UserSummary{{ID: 2, Username: "bob"}}, nil).Once()

	err := m.SendRequest(context.Background(), "bo")

	require.ErrorIs(t, err, ErrNotFound)
	gw.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendRequestDuplicateAgainstFriends(t *testing.T) {
	gw := new(mocks.GatewayMock)
	m := seedManager(t, gw, []models.Friend{{ID: 2, Username: "bob"}}, nil, nil)
	gw.On("SearchUsers", mock.Anything, "bob").
		Return([]models.UserSummary{{ID: 2, Username: "bob"}}, nil).Once()

	err := m.SendRequest(context.Background(), "bob")

	require.ErrorIs(t, err, ErrDuplicateRequest)
	gw.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendRequestDuplicateAgainstOutgoing(t *testing.T) {
	gw := new(mocks.GatewayMock)
	m := seedManager(t, gw, nil, nil, []models.FriendRequest{{ID: 11, SenderID: 1, ReceiverID: 4}})
	gw.On("SearchUsers", mock.Anything, "dave").
		Return([]models.UserSummary{{ID: 4, Username: "dave"}}, nil).Once()

	err := m.SendRequest(context.Background(), "dave")

	require.ErrorIs(t, err, ErrDuplicateRequest)
}

func TestSendRequestSuccess(t *testing.T) {
	gw := new(mocks.GatewayMock)
	m := seedManager(t, gw, nil, nil, nil)
	gw.On("SearchUsers", mock.Anything, "dave").
		Return([]models.UserSummary{{ID: 4, Username: "dave"}}, nil).Once()
	gw.On("CreateRequest", mock.Anything, 1, 4).
		Return(models.FriendRequest{ID: 11, SenderID: 1, ReceiverID: 4}, nil).Once()

	require.NoError(t, m.SendRequest(context.Background(), "dave"))

	// New outgoing entry only shows up on the next reload.
	assert.Empty(t, m.Outgoing())
	gw.AssertExpectations(t)
}

func TestAcceptRequestIdempotent(t *testing.T) {
	gw := new(mocks.GatewayMock)
	m := seedManager(t, gw, nil, []models.FriendRequest{{ID: 10, SenderID: 3, ReceiverID: 1}}, nil)
	gw.On("AcceptRequest", mock.Anything, 10).Return(nil).Once()

	require.NoError(t, m.AcceptRequest(context.Background(), 10))
	assert.Empty(t, m.Incoming())

	// Second accept of the same id is a no-op with no network call.
	require.NoError(t, m.AcceptRequest(context.Background(), 10))
	gw.AssertExpectations(t)
}

func TestAcceptRequestFailureKeepsEntry(t *testing.T) {
	gw := new(mocks.GatewayMock)
	m := seedManager(t, gw, nil, []models.FriendRequest{{ID: 10, SenderID: 3, ReceiverID: 1}}, nil)
	gw.On("AcceptRequest", mock.Anything, 10).Return(errors.New("boom")).Once()

	require.Error(t, m.AcceptRequest(context.Background(), 10))
	assert.Len(t, m.Incoming(), 1)
}

func TestDeclineRequestRemovesIncoming(t *testing.T) {
	gw := new(mocks.GatewayMock)
	m := seedManager(t, gw, nil, []models.FriendRequest{{ID: 10, SenderID: 3, ReceiverID: 1}}, nil)
	gw.On("DeclineRequest", mock.Anything, 10).Return(nil).Once()

	require.NoError(t, m.DeclineRequest(context.Background(), 10))
	assert.Empty(t, m.Incoming())

	require.NoError(t, m.DeclineRequest(context.Background(), 10))
	gw.AssertExpectations(t)
}

func TestCancelRequestRemovesOutgoing(t *testing.T) {
	gw := new(mocks.GatewayMock)
	m := seedManager(t, gw, nil, nil, []models.FriendRequest{{ID: 11, SenderID: 1, ReceiverID: 4}})
	gw.On("DeclineRequest", mock.Anything, 11).Return(nil).Once()

	require.NoError(t, m.CancelRequest(context.Background(), 11))
	assert.Empty(t, m.Outgoing())

	require.NoError(t, m.CancelRequest(context.Background(), 11))
	gw.AssertExpectations(t)
}

func TestRemoveFriendConfirmRejected(t *testing.T) {
	gw := new(mocks.GatewayMock)
	m := seedManager(t, gw, []models.Friend{{ID: 2, Username: "bob"}}, nil, nil)
	m.ConfirmRemoval = func(models.Friend) bool { return false }

	require.NoError(t, m.RemoveFriend(context.Background(), 2))

	assert.Len(t, m.Friends(), 1)
	gw.AssertNotCalled(t, "RemoveFriend", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveFriendSuccess(t *testing.T) {
	gw := new(mocks.GatewayMock)
	m := seedManager(t, gw, []models.Friend{{ID: 2, Username: "bob"}}, nil, nil)
	m.ConfirmRemoval = func(f models.Friend) bool {
		assert.Equal(t, "bob", f.Username)
		return true
	}
	gw.On("RemoveFriend", mock.Anything, 1, 2).Return(nil).Once()

	require.NoError(t, m.RemoveFriend(context.Background(), 2))

	assert.Empty(t, m.Friends())
	gw.AssertExpectations(t)
}

func TestRemoveFriendUnknownIDIsNoop(t *testing.T) {
	gw := new(mocks.GatewayMock)
	m := seedManager(t, gw, []models.Friend{{ID: 2, Username: "bob"}}, nil, nil)

	require.NoError(t, m.RemoveFriend(context.Background(), 99))
	assert.Len(t, m.Friends(), 1)
}

func TestCollectionsStayDisjoint(t *testing.T) {
	gw := new(mocks.GatewayMock)
	m := seedManager(t, gw,
		[]models.Friend{{ID: 2, Username: "bob"}},
		[]models.FriendRequest{{ID: 10, SenderID: 3, ReceiverID: 1}},
		[]models.FriendRequest{{ID: 11, SenderID: 1, ReceiverID: 4}},
	)
	gw.On("AcceptRequest", mock.Anything, 10).Return(nil).Once()
	gw.On("DeclineRequest", mock.Anything, 11).Return(nil).Once()

	require.NoError(t, m.AcceptRequest(context.Background(), 10))
	require.NoError(t, m.CancelRequest(context.Background(), 11))

	seen := map[int]bool{}
	for _, f := range m.Friends() {
		require.False(t, seen[f.ID])
		seen[f.ID] = true
	}
	for _, r := range m.Incoming() {
		require.False(t, seen[r.SenderID])
		seen[r.SenderID] = true
	}
	for _, r := range m.Outgoing() {
		require.False(t, seen[r.ReceiverID])
		seen[r.ReceiverID] = true
	}
}

func TestCloseDiscardsLateLoad(t *testing.T) {
	gw := new(mocks.GatewayMock)
	m := NewManager(testUser, gw, nil)

	gw.On("Friends", mock.Anything, 1).Return([]models.Friend{{ID: 2, Username: "bob"}}, nil).Once()
	gw.On("IncomingRequests", mock.Anything, 1).Return([]models.FriendRequest{{ID: 10}}, nil).Once()
	gw.On("OutgoingRequests", mock.Anything, 1).Return([]models.FriendRequest{{ID: 11}}, nil).Once()

	// Fetch results landing after Close must not mutate the collections.
	m.Close()
	m.LoadAll(context.Background())

	assert.Empty(t, m.Friends())
	assert.Empty(t, m.Incoming())
	assert.Empty(t, m.Outgoing())
}
