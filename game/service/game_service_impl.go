package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wricardo/mcp-training/battleship/game/engine"
)

// Option configures the game service
type Option func(*gameServiceImpl)

// WithNotifier forwards every engine change to n
func WithNotifier(n Notifier) Option {
	return func(s *gameServiceImpl) {
		s.notifier = n
	}
}

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	notifier Notifier

	// notifier listener per session, keyed by lower-case session ID
	subscribed map[string]subscription

	mu sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager, opts ...Option) GameService {
	s := &gameServiceImpl{
		sessions:   sessions,
		configs:    configs,
		subscribed: make(map[string]subscription),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	configID := strings.TrimSuffix(configName, ".json")
	if configID != "" {
		config, err = s.configs.LoadConfig(configID)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, configName, configIDs)
				}
				return nil, fmt.Errorf("%w: '%s'. Use /api/configs to list available configurations", ErrConfigNotFound, configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
		configID = s.getConfigID(config.Name)
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", configID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.ensureSubscribed(sess)

	log.Printf("Created session %s (%s) with config %s", sess.ID, sess.Label, configID)
	return sessionInfo(sess), nil
}

// getConfigID returns the config_id for a given display name
func (s *gameServiceImpl) getConfigID(displayName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == displayName {
				return cfg.ConfigID
			}
		}
	}
	if displayName == "" {
		return "default"
	}
	return displayName
}

// GetSession retrieves session information.
// It takes the write lock because it touches the access time.
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.unsubscribe(sessionID)
	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}
	return nil
}

// SetFleetCount chooses the number of ships per player
func (s *gameServiceImpl) SetFleetCount(ctx context.Context, sessionID string, n int) (*CommandResult, error) {
	return s.command(sessionID, func(sess *Session) (*CommandResult, error) {
		e := sess.Engine
		if !e.SetFleetCount(n) {
			msg := fmt.Sprintf("Fleet count %d ignored: choose %d to %d ships before setup starts",
				n, engine.MinFleetCount, engine.MaxFleetCount)
			if e.Phase() != engine.ChoosingNumberOfShips {
				msg = fmt.Sprintf("Fleet count is locked at %d", e.FleetCount())
			}
			return &CommandResult{Success: false, Message: msg}, nil
		}
		msg := fmt.Sprintf("Each player will place %d ships", n)
		return &CommandResult{
			Success: true,
			Message: msg,
			Events:  []GameEvent{newEvent("fleet_count", msg, e)},
		}, nil
	})
}

// PlaceShip places a ship on the current player's board
func (s *gameServiceImpl) PlaceShip(ctx context.Context, sessionID string, shipType engine.ShipType, a, b engine.Coord) (*CommandResult, error) {
	return s.command(sessionID, func(sess *Session) (*CommandResult, error) {
		e := sess.Engine
		player := e.CurrentPlayer()
		if err := e.PlaceShip(shipType, a, b); err != nil {
			return nil, err
		}
		msg := fmt.Sprintf("%s placed a %s ship from %s to %s (%d/%d)",
			e.PlayerDisplayName(player), shipType, a.Label(), b.Label(), len(e.Fleet(player)), e.FleetCount())
		event := newEvent("ship_placed", msg, e)
		event.Player = player
		return &CommandResult{Success: true, Message: msg, Events: []GameEvent{event}}, nil
	})
}

// FireMissile fires at the current opponent's board
func (s *gameServiceImpl) FireMissile(ctx context.Context, sessionID string, target engine.Coord) (*CommandResult, error) {
	return s.command(sessionID, func(sess *Session) (*CommandResult, error) {
		e := sess.Engine
		player := e.CurrentPlayer()
		hit, err := e.FireMissile(target)
		if err != nil {
			return nil, err
		}

		result := &CommandResult{Success: true, Hit: hit}
		t := target
		if !hit {
			result.Message = fmt.Sprintf("%s fired at %s: miss", e.PlayerDisplayName(player), target.Label())
			event := newEvent("miss", result.Message, e)
			event.Player, event.Target = player, &t
			result.Events = append(result.Events, event)
			return result, nil
		}

		result.Message = fmt.Sprintf("%s fired at %s: hit", e.PlayerDisplayName(player), target.Label())
		event := newEvent("hit", result.Message, e)
		event.Player, event.Target = player, &t
		result.Events = append(result.Events, event)

		if last := e.LastAction(); last != nil && last.Sunk {
			result.Sunk = true
			result.Message += ", ship sunk!"
			sunk := newEvent("sunk", fmt.Sprintf("%s sank a ship at %s", e.PlayerDisplayName(player), target.Label()), e)
			sunk.Player, sunk.Target = player, &t
			result.Events = append(result.Events, sunk)
		}
		return result, nil
	})
}

// AdvancePhase moves the session's game to its next phase
func (s *gameServiceImpl) AdvancePhase(ctx context.Context, sessionID string) (*CommandResult, error) {
	return s.command(sessionID, func(sess *Session) (*CommandResult, error) {
		e := sess.Engine
		from := e.Phase()
		if err := e.AdvancePhase(); err != nil {
			return nil, err
		}

		msg := fmt.Sprintf("Phase changed from %s to %s", from, e.Phase())
		events := []GameEvent{newEvent("phase_change", msg, e)}
		if winner, ok := e.Winner(); ok {
			msg = fmt.Sprintf("%s won!", e.PlayerDisplayName(winner))
			victory := newEvent("victory", msg, e)
			victory.Player = winner
			events = append(events, victory)
		}
		return &CommandResult{Success: true, Message: msg, Events: events}, nil
	})
}

// Reset restarts the session's game from the fleet size choice
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*GameView, error) {
	result, err := s.command(sessionID, func(sess *Session) (*CommandResult, error) {
		sess.Engine.Reset()
		return &CommandResult{Success: true, Message: "Game reset"}, nil
	})
	if err != nil {
		return nil, err
	}
	return result.View, nil
}

// command runs fn against a session under the write lock, then attaches the
// view and saves the session when fn succeeded
func (s *gameServiceImpl) command(sessionID string, fn func(sess *Session) (*CommandResult, error)) (*CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	s.ensureSubscribed(sess)
	s.sessions.UpdateLastAccessed(sessionID)

	result, err := fn(sess)
	if err != nil {
		return nil, err
	}
	result.View = buildView(sess)
	if result.Events == nil {
		result.Events = []GameEvent{}
	}

	if result.Success {
		// Auto-save session after every accepted command
		if err := s.sessions.Save(sess.ID); err != nil {
			log.Printf("Warning: Failed to persist session %s: %v", sess.ID, err)
		}
	}
	return result, nil
}

// GetGameState returns the view for the player holding the device
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*GameView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return buildView(sess), nil
}

// GetScoreboard returns both players' scores
func (s *gameServiceImpl) GetScoreboard(ctx context.Context, sessionID string) (*Scoreboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return buildScoreboard(sess), nil
}

// GetHistory returns paginated action history
func (s *gameServiceImpl) GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.History()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	actions := []engine.ActionEntry{}
	if start < total {
		if opts.Order == "desc" {
			// Most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				actions = append(actions, history[i])
			}
		} else {
			actions = append(actions, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Actions:      actions,
		TotalActions: total,
		Page:         opts.Page,
		PageSize:     opts.Limit,
		TotalPages:   totalPages,
		HasNext:      opts.Page < totalPages,
		HasPrevious:  opts.Page > 1,
	}, nil
}

// ListConfigs returns available rule sets
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific rule set
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	config, err := s.configs.LoadConfig(configName)
	if err != nil && strings.Contains(err.Error(), "configuration not found") {
		return nil, fmt.Errorf("%w: %v", ErrConfigNotFound, err)
	}
	return config, err
}

// SaveConfig saves a rule set to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}
	return sess, nil
}

// subscription is the notifier listener attached to one session's engine
type subscription struct {
	engine *engine.GameEngine
	id     engine.Subscription
}

// ensureSubscribed attaches the notifier to a session's engine once.
// A session reloaded from disk has a new engine; its entry is replaced and
// the listener on the old engine removed.
func (s *gameServiceImpl) ensureSubscribed(sess *Session) {
	if s.notifier == nil {
		return
	}
	key := strings.ToLower(sess.ID)
	if current, ok := s.subscribed[key]; ok && current.engine == sess.Engine {
		return
	}
	s.unsubscribe(key)

	id := sess.ID
	notifier := s.notifier
	sub := sess.Engine.OnChange(func(phase engine.Phase, wasRefresh bool) {
		notifier.NotifyStateChange(id, phase, wasRefresh)
	})
	s.subscribed[key] = subscription{engine: sess.Engine, id: sub}
}

// unsubscribe drops the notifier listener of a session, if any.
// The caller holds the write lock.
func (s *gameServiceImpl) unsubscribe(sessionID string) {
	key := strings.ToLower(sessionID)
	if current, ok := s.subscribed[key]; ok {
		current.engine.Unsubscribe(current.id)
		delete(s.subscribed, key)
	}
}

func newEvent(eventType, message string, e *engine.GameEngine) GameEvent {
	return GameEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Phase:     e.Phase(),
		Timestamp: time.Now(),
	}
}

func sessionInfo(sess *Session) *SessionInfo {
	e := sess.Engine
	winner, _ := e.Winner()
	return &SessionInfo{
		ID:             sess.ID,
		Label:          sess.Label,
		ConfigName:     sess.ConfigID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Phase:          e.Phase(),
		FleetCount:     e.FleetCount(),
		CurrentPlayer:  e.CurrentPlayer(),
		Winner:         winner,
		GameConfig:     sess.Config,
	}
}
