// Package session provides session management for hot-seat Battleship.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Short random session IDs plus a readable petname label
//   - File persistence of engine snapshots
//   - Session cleanup and expiration
//
// Session Identifiers:
//
// Sessions use 4-character hexadecimal IDs for easy reference and are looked
// up case-insensitively. Each session also gets a two-word label such as
// "brave-otter" for display in listings.
//
// Persistence:
//
// FilePersistence writes sessions/<id>.json holding the config ID and the
// engine's GameState. Loading rebuilds an engine from the rule set and
// restores the snapshot through engine.SetState, which validates it.
//
// Usage:
//
//	persistence, _ := session.NewFilePersistence("sessions", configMgr)
//	manager := session.NewManagerWithPersistence(persistence)
//	manager.LoadPersistedSessions()
//
//	sess, err := manager.Create("", "classic", config)
//	sess, err = manager.Get(sess.ID)
package session
