// Package engine provides the core game logic for hot-seat Battleship.
//
// Two players share one device. Each owns a 9x9 board, places between one and
// five straight ships (one of each length from 1x1 up to the chosen count),
// then the players take turns firing a single missile at the other board. A
// PromptPlayerChange phase sits between every hand-over so the device can be
// passed without revealing the next player's board.
//
// Core Types:
//
// The Engine interface defines the main contract, implemented by GameEngine.
// Board is a fixed array of cells, so views returned by OwnBoard and
// OpponentBoard are independent copies. GameState is a complete snapshot used
// for persistence, while GameConfig carries display names, an optional
// pre-selected fleet size and per-phase instructions.
//
// Usage:
//
//	e := engine.NewEngineWithDefaults()
//	e.OnChange(func(phase engine.Phase, wasRefresh bool) {
//		log.Printf("phase=%s refresh=%v", phase, wasRefresh)
//	})
//
//	e.SetFleetCount(1)
//	_ = e.AdvancePhase() // prompt player one
//	_ = e.AdvancePhase() // player one setup
//	err := e.PlaceShip(engine.Ship1x1, engine.Coord{Row: 0, Col: 0}, engine.Coord{Row: 0, Col: 0})
//
// Errors:
//
// Commands fail with errors wrapping ErrInvalidPlacement, ErrInvalidMissile
// or ErrInvalidAdvance; classify them with errors.Is. Every check runs before
// any write, so a failed command leaves the engine untouched.
package engine
