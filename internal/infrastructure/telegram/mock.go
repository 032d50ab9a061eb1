package telegram

import (
	"context"
	"sync"
)

// SentMessage records one SendText call on the mock.
type SentMessage struct {
	ChatID   string
	ThreadID int
	Text     string
}

// ForwardedMessage records one ForwardMessage call on the mock.
type ForwardedMessage struct {
	ToChatID   string
	FromChatID string
	MessageID  int
}

// DeletedMessage records one DeleteMessage call on the mock.
type DeletedMessage struct {
	ChatID    string
	MessageID int
}

// MockMessenger is an in-memory Messenger for testing.
type MockMessenger struct {
	mu        sync.Mutex
	Sent      []SentMessage
	Forwarded []ForwardedMessage
	Deleted   []DeletedMessage

	// Error injection for testing failure paths.
	SendErr    error
	ForwardErr error
	DeleteErr  error

	nextMessageID int
}

var _ Messenger = (*MockMessenger)(nil)

// NewMockMessenger creates an empty mock messenger.
func NewMockMessenger() *MockMessenger {
	return &MockMessenger{nextMessageID: 1}
}

// SendText records the message and returns a synthetic message ID.
func (m *MockMessenger) SendText(_ context.Context, chatID string, threadID int, text string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return 0, m.SendErr
	}
	m.Sent = append(m.Sent, SentMessage{ChatID: chatID, ThreadID: threadID, Text: text})
	id := m.nextMessageID
	m.nextMessageID++
	return id, nil
}

// ForwardMessage records the forward.
func (m *MockMessenger) ForwardMessage(_ context.Context, toChatID, fromChatID string, messageID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForwardErr != nil {
		return m.ForwardErr
	}
	m.Forwarded = append(m.Forwarded, ForwardedMessage{ToChatID: toChatID, FromChatID: fromChatID, MessageID: messageID})
	return nil
}

// DeleteMessage records the deletion.
func (m *MockMessenger) DeleteMessage(_ context.Context, chatID string, messageID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.Deleted = append(m.Deleted, DeletedMessage{ChatID: chatID, MessageID: messageID})
	return nil
}

// LastSent returns the most recent SendText call, or a zero value.
func (m *MockMessenger) LastSent() SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return SentMessage{}
	}
	return m.Sent[len(m.Sent)-1]
}
