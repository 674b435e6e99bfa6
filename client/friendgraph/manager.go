// Package friendgraph owns the authoritative client-side view of confirmed
// friends, incoming requests, and outgoing requests.
package friendgraph

import (
	"context"
	"errors"
	"strings"
	"sync"

	"taskmasters/client/gateway"
	"taskmasters/client/notify"
	"taskmasters/internal/models"
)

var (
	ErrEmptyQuery       = errors.New("search term is empty")
	ErrNotFound         = errors.New("no user matches that username")
	ErrDuplicateRequest = errors.New("request already pending or already friends")
	ErrClosed           = errors.New("manager is closed")
)

// Manager mediates friend-graph operations for one user. Collections are
// mutated only when an operation completes; second-order effects (the peer's
// view, the new friend entry after an accept) arrive on the next LoadAll.
type Manager struct {
	user     models.User
	gw       gateway.Gateway
	notifier notify.Notifier

	// ConfirmRemoval guards the destructive friend removal. When set and
	// returning false, RemoveFriend aborts before any network call.
	ConfirmRemoval func(models.Friend) bool

	mu       sync.Mutex
	closed   bool
	friends  []models.Friend
	incoming []models.FriendRequest
	outgoing []models.FriendRequest
}

// NewManager builds a Manager for the given user with injected dependencies.
func NewManager(user models.User, gw gateway.Gateway, notifier notify.Notifier) *Manager {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &Manager{
		user:     user,
		gw:       gw,
		notifier: notifier,
	}
}

// LoadAll issues the three collection fetches concurrently. A failed fetch
// keeps that collection at its previous value and is reported through the
// notifier; the other collections still apply. Results arriving after Close
// are discarded.
func (m *Manager) LoadAll(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		friends, err := m.gw.Friends(ctx, m.user.ID)
		if err != nil {
			m.notifier.Notify(notify.LevelError, "Failed to load friends")
			return
		}
		m.mu.Lock()
		if !m.closed {
			m.friends = friends
		}
		m.mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		requests, err := m.gw.IncomingRequests(ctx, m.user.ID)
		if err != nil {
			m.notifier.Notify(notify.LevelError, "Failed to load friend requests")
			return
		}
		m.mu.Lock()
		if !m.closed {
			m.incoming = requests
		}
		m.mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		requests, err := m.gw.OutgoingRequests(ctx, m.user.ID)
		if err != nil {
			m.notifier.Notify(notify.LevelError, "Failed to load sent requests")
			return
		}
		m.mu.Lock()
		if !m.closed {
			m.outgoing = requests
		}
		m.mu.Unlock()
	}()

	wg.Wait()
}

// SendRequest looks up the target by exact username and creates a request.
// The new outgoing entry becomes visible on the next LoadAll.
func (m *Manager) SendRequest(ctx context.Context, targetUsername string) error {
	targetUsername = strings.TrimSpace(targetUsername)
	if targetUsername == "" {
		return ErrEmptyQuery
	}

	results, err := m.gw.SearchUsers(ctx, targetUsername)
	if err != nil {
		m.notifier.Notify(notify.LevelError, "Failed to search users")
		return err
	}

	var target *models.UserSummary
	for i := range results {
		if results[i].Username == targetUsername {
			target = &results[i]
			break
		}
	}
	if target == nil {
		m.notifier.Notify(notify.LevelError, "User not found")
		return ErrNotFound
	}

	if err := m.checkDuplicate(*target); err != nil {
		m.notifier.Notify(notify.LevelError, "Friend request already exists")
		return err
	}

	if _, err := m.gw.CreateRequest(ctx, m.user.ID, target.ID); err != nil {
		m.notifier.Notify(notify.LevelError, "Failed to send friend request")
		return err
	}

	m.notifier.Notify(notify.LevelSuccess, "Friend request sent!")
	return nil
}

func (m *Manager) checkDuplicate(target models.UserSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	for _, f := range m.friends {
		if f.ID == target.ID {
			return ErrDuplicateRequest
		}
	}
	for _, r := range m.incoming {
		if r.SenderID == target.ID {
			return ErrDuplicateRequest
		}
	}
	for _, r := range m.outgoing {
		if r.ReceiverID == target.ID {
			return ErrDuplicateRequest
		}
	}
	return nil
}

// AcceptRequest resolves an incoming request. Accepting an id that is no
// longer in the incoming collection is a no-op, so a second click never
// errors or re-issues the call.
func (m *Manager) AcceptRequest(ctx context.Context, requestID int) error {
	if !m.hasIncoming(requestID) {
		return nil
	}

	if err := m.gw.AcceptRequest(ctx, requestID); err != nil {
		m.notifier.Notify(notify.LevelError, "Failed to accept friend request")
		return err
	}

	m.removeIncoming(requestID)
	m.notifier.Notify(notify.LevelSuccess, "Friend request accepted!")
	return nil
}

// DeclineRequest removes an incoming request without creating a friend.
// Same idempotency as AcceptRequest.
func (m *Manager) DeclineRequest(ctx context.Context, requestID int) error {
	if !m.hasIncoming(requestID) {
		return nil
	}

	if err := m.gw.DeclineRequest(ctx, requestID); err != nil {
		m.notifier.Notify(notify.LevelError, "Failed to decline friend request")
		return err
	}

	m.removeIncoming(requestID)
	m.notifier.Notify(notify.LevelSuccess, "Friend request declined")
	return nil
}

// CancelRequest withdraws one of the user's own outgoing requests.
func (m *Manager) CancelRequest(ctx context.Context, requestID int) error {
	m.mu.Lock()
	found := false
	for _, r := range m.outgoing {
		if r.ID == requestID {
			found = true
			break
		}
	}
	m.mu.Unlock()
	if !found {
		return nil
	}

	if err := m.gw.DeclineRequest(ctx, requestID); err != nil {
		m.notifier.Notify(notify.LevelError, "Failed to cancel friend request")
		return err
	}

	m.mu.Lock()
	if !m.closed {
		m.outgoing = withoutRequest(m.outgoing, requestID)
	}
	m.mu.Unlock()
	m.notifier.Notify(notify.LevelSuccess, "Friend request cancelled")
	return nil
}

// RemoveFriend deletes the friendship for both parties.
func (m *Manager) RemoveFriend(ctx context.Context, friendID int) error {
	m.mu.Lock()
	var friend *models.Friend
	for i := range m.friends {
		if m.friends[i].ID == friendID {
			friend = &m.friends[i]
			break
		}
	}
	m.mu.Unlock()
	if friend == nil {
		return nil
	}

	if m.ConfirmRemoval != nil && !m.ConfirmRemoval(*friend) {
		return nil
	}

	if err := m.gw.RemoveFriend(ctx, m.user.ID, friendID); err != nil {
		m.notifier.Notify(notify.LevelError, "Failed to remove friend")
		return err
	}

	m.mu.Lock()
	if !m.closed {
		kept := m.friends[:0]
		for _, f := range m.friends {
			if f.ID != friendID {
				kept = append(kept, f)
			}
		}
		m.friends = kept
	}
	m.mu.Unlock()
	m.notifier.Notify(notify.LevelSuccess, "Friend removed")
	return nil
}

// Close marks the manager disposed. Late fetch results are discarded instead
// of mutating state.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
}

// Friends returns a copy of the confirmed-friends collection.
func (m *Manager) Friends() []models.Friend {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Friend(nil), m.friends...)
}

// Incoming returns a copy of the incoming-requests collection.
func (m *Manager) Incoming() []models.FriendRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.FriendRequest(nil), m.incoming...)
}

// Outgoing returns a copy of the outgoing-requests collection.
func (m *Manager) Outgoing() []models.FriendRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.FriendRequest(nil), m.outgoing...)
}

func (m *Manager) hasIncoming(requestID int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false
	}
	for _, r := range m.incoming {
		if r.ID == requestID {
			return true
		}
	}
	return false
}

func (m *Manager) removeIncoming(requestID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.incoming = withoutRequest(m.incoming, requestID)
}

func withoutRequest(requests []models.FriendRequest, requestID int) []models.FriendRequest {
	kept := requests[:0]
	for _, r := range requests {
		if r.ID != requestID {
			kept = append(kept, r)
		}
	}
	return kept
}
