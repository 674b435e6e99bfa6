package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"taskmasters/internal/models"
	"taskmasters/internal/observability"
)

const defaultTimeout = 10 * time.Second

// HTTPGateway talks JSON over HTTP to the TaskMasters backend.
type HTTPGateway struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPGateway builds a gateway against baseURL. A nil client gets a
// default with a request timeout.
func NewHTTPGateway(baseURL, token string, client *http.Client) *HTTPGateway {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &HTTPGateway{baseURL: baseURL, token: token, client: client}
}

// do performs one request and decodes a 2xx JSON body into out. Any other
// outcome collapses into ErrRequestFailed.
func (g *HTTPGateway) do(ctx context.Context, op, method, path string, query url.Values, body any, out any) error {
	u := g.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			observability.IncGatewayRequest(op, "failure")
			return fmt.Errorf("%s %s: encode body: %w", method, path, ErrRequestFailed)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		observability.IncGatewayRequest(op, "failure")
		return fmt.Errorf("%s %s: %w", method, path, ErrRequestFailed)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		observability.IncGatewayRequest(op, "failure")
		return fmt.Errorf("%s %s: %w", method, path, ErrRequestFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		observability.IncGatewayRequest(op, "failure")
		return fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, ErrRequestFailed)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			observability.IncGatewayRequest(op, "failure")
			return fmt.Errorf("%s %s: decode body: %w", method, path, ErrRequestFailed)
		}
	}

	observability.IncGatewayRequest(op, "success")
	return nil
}

func (g *HTTPGateway) Friends(ctx context.Context, userID int) ([]models.Friend, error) {
	var friends []models.Friend
	err := g.do(ctx, "friends", http.MethodGet, "/friends/"+strconv.Itoa(userID), nil, nil, &friends)
	return friends, err
}

func (g *HTTPGateway) IncomingRequests(ctx context.Context, userID int) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := g.do(ctx, "incoming_requests", http.MethodGet, "/requests/incoming/"+strconv.Itoa(userID), nil, nil, &requests)
	return requests, err
}

func (g *HTTPGateway) OutgoingRequests(ctx context.Context, userID int) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := g.do(ctx, "outgoing_requests", http.MethodGet, "/requests/outgoing/"+strconv.Itoa(userID), nil, nil, &requests)
	return requests, err
}

func (g *HTTPGateway) SearchUsers(ctx context.Context, username string) ([]models.UserSummary, error) {
	query := url.Values{"username": []string{username}}
	var results []models.UserSummary
	err := g.do(ctx, "search_users", http.MethodGet, "/users/search", query, nil, &results)
	return results, err
}

func (g *HTTPGateway) CreateRequest(ctx context.Context, senderID int, receiverID int) (models.FriendRequest, error) {
	body := map[string]int{"sender_id": senderID, "receiver_id": receiverID}
	var created models.FriendRequest
	err := g.do(ctx, "create_request", http.MethodPost, "/requests", nil, body, &created)
	return created, err
}

func (g *HTTPGateway) AcceptRequest(ctx context.Context, requestID int) error {
	return g.do(ctx, "accept_request", http.MethodPost, "/requests/"+strconv.Itoa(requestID)+"/accept", nil, nil, nil)
}

func (g *HTTPGateway) DeclineRequest(ctx context.Context, requestID int) error {
	return g.do(ctx, "decline_request", http.MethodPost, "/requests/"+strconv.Itoa(requestID)+"/decline", nil, nil, nil)
}

func (g *HTTPGateway) RemoveFriend(ctx context.Context, userID int, friendID int) error {
	return g.do(ctx, "remove_friend", http.MethodDelete, "/friends/"+strconv.Itoa(userID)+"/"+strconv.Itoa(friendID), nil, nil, nil)
}

func (g *HTTPGateway) Messages(ctx context.Context, userID int, friendID int) ([]models.Message, error) {
	query := url.Values{
		"user":   []string{strconv.Itoa(userID)},
		"friend": []string{strconv.Itoa(friendID)},
	}
	var msgs []models.Message
	err := g.do(ctx, "messages", http.MethodGet, "/messages", query, nil, &msgs)
	return msgs, err
}

func (g *HTTPGateway) SendMessage(ctx context.Context, senderID int, receiverID int, body string) (models.Message, error) {
	payload := map[string]any{
		"sender_id":   senderID,
		"receiver_id": receiverID,
		"message":     body,
	}
	var msg models.Message
	err := g.do(ctx, "send_message", http.MethodPost, "/messages", nil, payload, &msg)
	return msg, err
}

func (g *HTTPGateway) Tasks(ctx context.Context, userID int) ([]models.Task, error) {
	var tasks []models.Task
	err := g.do(ctx, "tasks", http.MethodGet, "/tasks/"+strconv.Itoa(userID), nil, nil, &tasks)
	return tasks, err
}

func (g *HTTPGateway) SharedTasks(ctx context.Context, userID int) ([]models.SharedTask, error) {
	var tasks []models.SharedTask
	err := g.do(ctx, "shared_tasks", http.MethodGet, "/tasks/shared/"+strconv.Itoa(userID), nil, nil, &tasks)
	return tasks, err
}

func (g *HTTPGateway) CreateTask(ctx context.Context, userID int, task models.Task) (models.Task, error) {
	var created models.Task
	err := g.do(ctx, "create_task", http.MethodPost, "/tasks/"+strconv.Itoa(userID), nil, task, &created)
	return created, err
}

func (g *HTTPGateway) UpdateTask(ctx context.Context, userID int, task models.Task) (models.Task, error) {
	var updated models.Task
	path := "/tasks/" + strconv.Itoa(userID) + "/" + strconv.Itoa(task.ID)
	err := g.do(ctx, "update_task", http.MethodPut, path, nil, task, &updated)
	return updated, err
}

func (g *HTTPGateway) DeleteTask(ctx context.Context, userID int, taskID int) error {
	path := "/tasks/" + strconv.Itoa(userID) + "/" + strconv.Itoa(taskID)
	return g.do(ctx, "delete_task", http.MethodDelete, path, nil, nil, nil)
}
