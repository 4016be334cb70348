// Package websocket pushes session change notifications to browser and
// tool clients.
//
// A central Hub owns every connection. Each client watches one session and
// is served by a read pump and a write pump goroutine. The Hub implements
// service.Notifier, so the game service can call NotifyStateChange while
// holding its own lock; the call only enqueues and never blocks.
//
// Outgoing messages are JSON:
//
//	{"session_id": "abc123", "event": "state_change", "data": {"phase": "player_turn", "was_refresh": false}}
//
// Boards are never pushed. Both players may watch the same session, so
// clients re-fetch the view over HTTP, which hides the opponent's ships.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	svc := service.NewGameService(sessions, configs, service.WithNotifier(hub))
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
package websocket
