// Package service provides the business logic layer for hot-seat Battleship.
//
// The service package implements:
//   - Multi-session game management
//   - The hot-seat view of whichever player holds the device
//   - Command orchestration with events and autosave
//   - Paginated action history and scoreboards
//
// Core Interfaces:
//
// GameService is the main service interface used by the REST and MCP
// transports. SessionManager stores sessions, ConfigManager loads rule sets,
// and Notifier receives every engine change so transports can tell clients
// to refresh.
//
// Information Hiding:
//
// GetGameState only returns the current player's own board and the fogged
// view of the opponent's board. While the phase is PromptPlayerChange both
// boards are withheld. Notifications carry the phase only, never boards.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr, service.WithNotifier(hub))
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	result, err := gameService.SetFleetCount(ctx, info.ID, 3)
//	result, err = gameService.AdvancePhase(ctx, info.ID)
//
// Engine errors are returned wrapped, so callers classify them with
// errors.Is against engine.ErrInvalidPlacement, engine.ErrInvalidMissile and
// engine.ErrInvalidAdvance.
package service
