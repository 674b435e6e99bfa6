package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmasters/internal/models"
)

func TestFriendsDecodesResponse(t *testing.T) {
	since := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/friends/1", r.URL.Path)
		json.NewEncoder(w).Encode([]models.Friend{
			{ID: 2, Username: "friend1", FriendsSince: since},
		})
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, "token", nil)
	friends, err := gw.Friends(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, "friend1", friends[0].Username)
	assert.True(t, friends[0].FriendsSince.Equal(since))
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Message{ID: 1})
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, "secret-token", nil)
	_, err := gw.SendMessage(context.Background(), 1, 2, "hello")

	require.NoError(t, err)
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "Bearer secret-token", got.Get("Authorization"))
	assert.NotEmpty(t, got.Get("X-Request-Id"))
}

func TestSendMessagePostsWireFormat(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/messages", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Message{ID: 3, SenderID: 1, ReceiverID: 2, Body: "hello"})
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, "", nil)
	msg, err := gw.SendMessage(context.Background(), 1, 2, "hello")

	require.NoError(t, err)
	assert.Equal(t, 3, msg.ID)
	assert.Equal(t, float64(1), body["sender_id"])
	assert.Equal(t, float64(2), body["receiver_id"])
	assert.Equal(t, "hello", body["message"])
}

func TestNonTwoHundredIsRequestFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, "", nil)
	_, err := gw.Friends(context.Background(), 1)

	require.ErrorIs(t, err, ErrRequestFailed)
}

func TestConflictIsRequestFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "request already pending"})
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, "", nil)
	_, err := gw.CreateRequest(context.Background(), 1, 2)

	require.ErrorIs(t, err, ErrRequestFailed)
}

func TestTransportErrorIsRequestFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	gw := NewHTTPGateway(srv.URL, "", nil)
	_, err := gw.Messages(context.Background(), 1, 2)

	require.ErrorIs(t, err, ErrRequestFailed)
}

func TestMessagesQueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "1", r.URL.Query().Get("user"))
		require.Equal(t, "2", r.URL.Query().Get("friend"))
		json.NewEncoder(w).Encode([]models.Message{})
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, "", nil)
	msgs, err := gw.Messages(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestRemoveFriendEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/friends/1/2", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, "", nil)
	require.NoError(t, gw.RemoveFriend(context.Background(), 1, 2))
}
