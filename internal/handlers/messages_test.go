package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskmasters/internal/mocks"
	"taskmasters/internal/models"
)

func setupMessageRouter(handler *MessageHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.GET("/messages", handler.ListMessages)
	r.POST("/messages", handler.PostMessage)
	return r
}

func TestListMessagesSuccess(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	handler := NewMessageHandler(messageRepo, nil, nil, nil)
	router := setupMessageRouter(handler)

	ts := time.Date(2025, 7, 4, 10, 0, 0, 0, time.UTC)
	messageRepo.On("ListMessagesBetween", mock.Anything, 1, 2).Return([]models.Message{
		{ID: 1, SenderID: 1, ReceiverID: 2, Body: "Hello", Timestamp: ts},
		{ID: 2, SenderID: 2, ReceiverID: 1, Body: "Hi", Timestamp: ts.Add(time.Minute)},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/messages?user=1&friend=2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var msgs []models.Message
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&msgs))
	require.Len(t, msgs, 2)
	assert.Equal(t, "Hello", msgs[0].Body)
	assert.Equal(t, "Hi", msgs[1].Body)
	messageRepo.AssertExpectations(t)
}

func TestListMessagesMissingParams(t *testing.T) {
	handler := NewMessageHandler(new(mocks.MessageRepositoryMock), nil, nil, nil)
	router := setupMessageRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/messages?user=1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostMessageSuccess(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	friendRepo := new(mocks.FriendRepositoryMock)
	publisher := new(mocks.PublisherMock)
	handler := NewMessageHandler(messageRepo, friendRepo, publisher, nil)
	router := setupMessageRouter(handler)

	created := models.Message{ID: 3, SenderID: 1, ReceiverID: 2, Body: "New Message", Timestamp: time.Now().UTC()}
	friendRepo.On("AreFriends", mock.Anything, 1, 2).Return(true, nil).Once()
	messageRepo.On("CreateMessage", mock.Anything, 1, 2, "New Message").Return(created, nil).Once()
	publisher.On("Publish", mock.Anything, EventMessageCreated, mock.Anything).Return(nil).Once()

	body := bytes.NewBufferString(`{"sender_id":1,"receiver_id":2,"message":"New Message"}`)
	req := httptest.NewRequest(http.MethodPost, "/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var msg models.Message
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&msg))
	assert.Equal(t, 3, msg.ID)
	assert.Equal(t, "New Message", msg.Body)
	messageRepo.AssertExpectations(t)
	friendRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestPostMessageNotFriends(t *testing.T) {
	friendRepo := new(mocks.FriendRepositoryMock)
	handler := NewMessageHandler(new(mocks.MessageRepositoryMock), friendRepo, nil, nil)
	router := setupMessageRouter(handler)

	friendRepo.On("AreFriends", mock.Anything, 1, 9).Return(false, nil).Once()

	body := bytes.NewBufferString(`{"sender_id":1,"receiver_id":9,"message":"hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	friendRepo.AssertExpectations(t)
}

func TestPostMessageBlankBody(t *testing.T) {
	handler := NewMessageHandler(new(mocks.MessageRepositoryMock), new(mocks.FriendRepositoryMock), nil, nil)
	router := setupMessageRouter(handler)

	body := bytes.NewBufferString(`{"sender_id":1,"receiver_id":2,"message":"   "}`)
	req := httptest.NewRequest(http.MethodPost, "/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostMessageSenderMismatch(t *testing.T) {
	handler := NewMessageHandler(new(mocks.MessageRepositoryMock), new(mocks.FriendRepositoryMock), nil, nil)
	router := setupMessageRouter(handler)

	body := bytes.NewBufferString(`{"sender_id":7,"receiver_id":2,"message":"hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}
