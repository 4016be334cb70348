// Package mcp exposes hot-seat battleship to Model Context Protocol clients.
//
// The Client is a thin proxy: every tool call becomes a request against the
// REST API, and responses are rendered as plain text with the boards drawn
// as labelled grids. Running it as a separate process (stdio-mcp mode) lets
// an assistant play while a browser watches the same session over
// WebSocket.
//
// Tools:
//   - create_session, get_session, list_sessions
//   - game_state, scoreboard, action_history
//   - set_fleet_count, place_ship, fire_missile, advance_phase, reset_game
//   - list_configs, game_instructions, describe_cell
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
