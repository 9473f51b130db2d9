package mqtt

import (
	"fmt"
	"sync"
	"time"
)

// MockNotifier is a simple notifier used in tests.
type MockNotifier struct {
	Messages   map[string]string // topic key -> mission id
	FailIDs    map[string]bool
	AckResults map[string]bool
	mu         sync.Mutex
}

// NewMockNotifier creates a new MockNotifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{
		Messages:   make(map[string]string),
		FailIDs:    make(map[string]bool),
		AckResults: make(map[string]bool),
	}
}

// NotifyAssignment records the message or returns an error if configured to fail.
func (m *MockNotifier) NotifyAssignment(kind, entityID, missionID, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailIDs[entityID] {
		return "", fmt.Errorf("publish failed")
	}
	key := fmt.Sprintf("%s/%s", kind, entityID)
	m.Messages[key] = missionID
	commandID := fmt.Sprintf("cmd-%s", entityID)
	m.AckResults[commandID] = true
	return commandID, nil
}

// WaitForAck simulates an immediate acknowledgment based on the stored result.
func (m *MockNotifier) WaitForAck(commandID string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	ok, exists := m.AckResults[commandID]
	m.mu.Unlock()
	if !exists {
		return false, fmt.Errorf("unknown command")
	}
	return ok, nil
}

// Disconnect is a no-op.
func (m *MockNotifier) Disconnect() {}
