package service

import (
	"context"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/battleship/game/engine"
)

// reloadingSessions hands out a freshly loaded engine on every Get, the way
// the session manager does after a session was evicted and read back from disk
type reloadingSessions struct {
	id    string
	loads int
	last  *Session
}

func (m *reloadingSessions) Create(id, configID string, config *engine.GameConfig) (*Session, error) {
	return nil, ErrSessionNotFound
}

func (m *reloadingSessions) Get(id string) (*Session, error) {
	if !strings.EqualFold(id, m.id) {
		return nil, ErrSessionNotFound
	}
	m.loads++
	m.last = &Session{ID: m.id, Engine: engine.NewEngineWithDefaults()}
	return m.last, nil
}

func (m *reloadingSessions) List() []*Session {
	if m.last == nil {
		return nil
	}
	return []*Session{m.last}
}

func (m *reloadingSessions) Delete(id string) error             { return nil }
func (m *reloadingSessions) UpdateLastAccessed(id string) error { return nil }
func (m *reloadingSessions) Save(id string) error               { return nil }

type countingNotifier struct {
	calls int
}

func (n *countingNotifier) NotifyStateChange(sessionID string, phase engine.Phase, wasRefresh bool) {
	n.calls++
}

func TestEnsureSubscribed_ReloadedEngines(t *testing.T) {
	sessions := &reloadingSessions{id: "ab12"}
	notifier := &countingNotifier{}
	svc := NewGameService(sessions, nil, WithNotifier(notifier)).(*gameServiceImpl)
	ctx := context.Background()

	var previous *engine.GameEngine
	for i := 0; i < 50; i++ {
		if _, err := svc.SetFleetCount(ctx, "AB12", 2); err != nil {
			t.Fatalf("SetFleetCount %d failed: %v", i, err)
		}
		if previous != nil {
			// the listener on the replaced engine is gone
			previous.SetFleetCount(3)
		}
		previous = sessions.last.Engine
	}

	if len(svc.subscribed) != 1 {
		t.Errorf("Expected 1 subscribed session, got %d", len(svc.subscribed))
	}
	if notifier.calls != 50 {
		t.Errorf("Expected 50 notifications, got %d", notifier.calls)
	}

	if err := svc.DeleteSession(ctx, "ab12"); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if len(svc.subscribed) != 0 {
		t.Errorf("Expected no subscriptions after delete, got %d", len(svc.subscribed))
	}
}
