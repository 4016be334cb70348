// Package api provides the HTTP REST API for hot-seat battleship sessions.
//
// Endpoints:
//
// Sessions:
//   - POST /api/sessions - Create a session ({"config_id": "quick"}, empty for the default)
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Session summary, no boards
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game state:
//   - GET /api/sessions/{id}/state - View for the player holding the device
//   - GET /api/sessions/{id}/scoreboard - Hits, accuracy and progress for both players
//   - GET /api/sessions/{id}/history - Paginated action history (?page=&limit=&order=)
//
// Game commands:
//   - POST /api/sessions/{id}/fleet-count - {"count": 3}
//   - POST /api/sessions/{id}/ships - {"type": "1x3", "a": "A1", "b": "C1"}
//   - POST /api/sessions/{id}/fire - {"target": "C4"}
//   - POST /api/sessions/{id}/advance - Move to the next phase
//   - POST /api/sessions/{id}/reset - Start over from the fleet size choice
//
// Coordinates are either labels ("C4" is column C, row 4) or objects
// such as {"row": 3, "col": 2}.
//
// Configuration:
//   - GET /api/configs - List rule sets
//   - GET /api/configs/{name} - Get a rule set
//   - POST /api/configs - Save a rule set
//
// Other:
//   - GET /api/health - Health check
//   - GET /ws?session={id} - WebSocket change notifications
//
// Error responses are {"error": "..."}. Unknown sessions and configs map to
// 404, rejected placements and missiles to 422, a premature phase advance
// to 409, and malformed bodies to 400.
package api
