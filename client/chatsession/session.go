// Package chatsession manages the client-local state of one open
// conversation. Sessions are independent; nothing is shared between two
// Session values.
package chatsession

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
	ErrAlreadyOpen  = errors.New("session is already open")
	ErrNotOpen      = errors.New("session is not open")
	ErrEmptyMessage = errors.New("message body is empty")
)

// State is the session lifecycle flag. The only transitions are
// Closed→Open (user opens the chat) and Open→Closed (user closes it).
type State int

const (
	StateClosed State = iota
	StateOpen
)

// Session holds the message history, draft input, and participants of one
// conversation. The epoch counter ties every in-flight network result to the
// open that issued it, so a response landing after Close (or after a reopen)
// is discarded instead of mutating disposed state.
type Session struct {
	gw       gateway.Gateway
	notifier notify.Notifier

	mu       sync.Mutex
	state    State
	epoch    int
	user     models.User
	friend   models.Friend
	messages []models.Message
	draft    string
}

// NewSession builds a closed session with injected dependencies.
func NewSession(gw gateway.Gateway, notifier notify.Notifier) *Session {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &Session{gw: gw, notifier: notifier}
}

// Open transitions Closed→Open and loads the conversation history. The
// history replaces the local sequence wholesale; it is fetched once per open.
// A failed load leaves the session open with an empty transcript and reports
// through the notifier.
func (s *Session) Open(ctx context.Context, user models.User, friend models.Friend) error {
	s.mu.Lock()
	if s.state == StateOpen {
		s.mu.Unlock()
		return ErrAlreadyOpen
	}
	s.state = StateOpen
	s.epoch++
	epoch := s.epoch
	s.user = user
	s.friend = friend
	s.messages = nil
	s.mu.Unlock()

	history, err := s.gw.Messages(ctx, user.ID, friend.ID)
	if err != nil {
		s.notifier.Notify(notify.LevelError, "Failed to load messages")
		return nil
	}

	s.mu.Lock()
	if s.state == StateOpen && s.epoch == epoch {
		s.messages = history
	}
	s.mu.Unlock()
	return nil
}

// UpdateDraft replaces the pending input text.
func (s *Session) UpdateDraft(text string) {
	s.mu.Lock()
	s.draft = text
	s.mu.Unlock()
}

// Draft returns the pending input text.
func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// CanSend reports whether the send control should be enabled: the session is
// open and the draft is not blank.
func (s *Session) CanSend() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateOpen && strings.TrimSpace(s.draft) != ""
}

// Send submits the current draft. A blank draft never reaches the network.
// The message is appended and the draft cleared only on confirmed success;
// on failure the draft is preserved so the user can retry.
func (s *Session) Send(ctx context.Context) (models.Message, error) {
	s.mu.Lock()
	if s.state != StateOpen {
		s.mu.Unlock()
		return models.Message{}, ErrNotOpen
	}
	if strings.TrimSpace(s.draft) == "" {
		s.mu.Unlock()
		return models.Message{}, ErrEmptyMessage
	}
	epoch := s.epoch
	senderID := s.user.ID
	receiverID := s.friend.ID
	body := s.draft
	s.mu.Unlock()

	msg, err := s.gw.SendMessage(ctx, senderID, receiverID, body)
	if err != nil {
		s.notifier.Notify(notify.LevelError, "Failed to send message")
		return models.Message{}, err
	}

	s.mu.Lock()
	if s.state == StateOpen && s.epoch == epoch {
		s.messages = append(s.messages, msg)
		s.draft = ""
	}
	s.mu.Unlock()
	return msg, nil
}

// Close transitions Open→Closed and discards the transcript. Nothing is
// persisted; the next Open re-fetches from scratch.
func (s *Session) Close() {
	s.mu.Lock()
	s.state = StateClosed
	s.epoch++
	s.messages = nil
	s.draft = ""
	s.mu.Unlock()
}

// State returns the lifecycle flag.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Friend returns the peer of the conversation.
func (s *Session) Friend() models.Friend {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.friend
}

// Messages returns a copy of the transcript in append order, so rendering
// the last element is always rendering the newest message.
func (s *Session) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Message(nil), s.messages...)
}
