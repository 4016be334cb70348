package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/wricardo/mcp-training/battleship/api"
	"github.com/wricardo/mcp-training/battleship/game/engine"
	"github.com/wricardo/mcp-training/battleship/game/service"
	"github.com/wricardo/mcp-training/battleship/game/session"
	"github.com/wricardo/mcp-training/battleship/transport/mcp"
	"github.com/wricardo/mcp-training/battleship/transport/websocket"
)

// withDirs points the config and sessions flags at test directories
func withDirs(t *testing.T, configs string) {
	t.Helper()
	originalConfigDir, originalSessionsDir := *configDir, *sessionsDir
	*configDir = configs
	*sessionsDir = filepath.Join(t.TempDir(), "sessions")
	t.Cleanup(func() {
		*configDir = originalConfigDir
		*sessionsDir = originalSessionsDir
	})
}

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName != "Hot-Seat Battleship Server" {
		t.Errorf("Expected app name Hot-Seat Battleship Server, got %s", AppName)
	}
}

func TestFlagDefaults(t *testing.T) {
	if *port <= 0 || *port > 65535 {
		t.Errorf("Invalid default port: %d", *port)
	}
	if *host == "" {
		t.Error("Host should have a default value")
	}
	if *configDir == "" {
		t.Error("Config directory should have a default value")
	}
	if *sessionsDir == "" {
		t.Error("Sessions directory should have a default value")
	}
}

func TestEnvDefault(t *testing.T) {
	t.Setenv("BATTLESHIP_TEST_DIR", "/tmp/elsewhere")
	if got := envDefault("BATTLESHIP_TEST_DIR", "configs"); got != "/tmp/elsewhere" {
		t.Errorf("Expected env value, got %s", got)
	}
	if got := envDefault("BATTLESHIP_TEST_UNSET", "configs"); got != "configs" {
		t.Errorf("Expected fallback, got %s", got)
	}
}

func TestInitializeServices(t *testing.T) {
	if _, err := os.Stat("configs"); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}
	withDirs(t, "configs")

	gameService, manager, err := initializeServices(nil)
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	if gameService == nil || manager == nil {
		t.Fatal("Expected game service and session manager to be initialized")
	}
	if _, err := os.Stat(*sessionsDir); err != nil {
		t.Errorf("Expected sessions directory to be created: %v", err)
	}
}

func TestInitializeServices_DefaultConfig(t *testing.T) {
	withDirs(t, "configs")
	original := *defaultRules
	t.Cleanup(func() { *defaultRules = original })

	*defaultRules = "quick"
	gameService, _, err := initializeServices(nil)
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	info, err := gameService.CreateSession(context.Background(), "")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if info.ConfigName != "quick" || info.FleetCount != 2 {
		t.Errorf("Expected quick rules with 2 ships, got %s/%d", info.ConfigName, info.FleetCount)
	}

	*defaultRules = "missing"
	if _, _, err := initializeServices(nil); err == nil {
		t.Error("Expected error for an unknown default config")
	}
}

func TestInitializeServices_InvalidConfigDir(t *testing.T) {
	withDirs(t, "/non/existent/path")

	if _, _, err := initializeServices(nil); err == nil {
		t.Error("Expected error for non-existent config directory")
	}
}

func TestPruneOrphanedSessions(t *testing.T) {
	withDirs(t, "configs")

	_, manager, err := initializeServices(nil)
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}

	sess, err := manager.Create("", "classic", engine.DefaultGameConfig())
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if pruned := pruneOrphanedSessions(manager, nil); pruned != 0 {
		t.Errorf("Expected nothing pruned without persistence, got %d", pruned)
	}

	persistence, err := session.NewFilePersistence(*sessionsDir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := persistence.Delete(sess.ID); err != nil {
		t.Fatalf("Failed to delete session file: %v", err)
	}

	if pruned := pruneOrphanedSessions(manager, persistence); pruned != 1 {
		t.Errorf("Expected 1 pruned session, got %d", pruned)
	}
	if manager.Count() != 0 {
		t.Errorf("Expected no sessions in memory, got %d", manager.Count())
	}
}

func TestMCPEndpointRejectsGet(t *testing.T) {
	router := newRouter(http.NotFoundHandler(), mcp.NewClient("http://localhost:0"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/mcp", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}

// TestFullGameOverHTTP plays a one-ship game through the real stack
func TestFullGameOverHTTP(t *testing.T) {
	withDirs(t, "configs")

	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Stop()

	gameService, _, err := initializeServices(hub)
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	httpServer := httptest.NewServer(api.NewServer(gameService, hub))
	defer httpServer.Close()

	post := func(path string, body interface{}, target interface{}) {
		t.Helper()
		data, _ := json.Marshal(body)
		resp, err := http.Post(httpServer.URL+path, "application/json", bytes.NewReader(data))
		if err != nil {
			t.Fatalf("POST %s failed: %v", path, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 300 {
			t.Fatalf("POST %s returned %d", path, resp.StatusCode)
		}
		if target != nil {
			if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
				t.Fatalf("Failed to decode %s response: %v", path, err)
			}
		}
	}

	var info service.SessionInfo
	post("/api/sessions", map[string]string{"config_id": "classic"}, &info)
	base := "/api/sessions/" + info.ID

	post(base+"/fleet-count", map[string]int{"count": 1}, nil)
	post(base+"/advance", nil, nil) // prompt
	post(base+"/advance", nil, nil) // player one setup
	post(base+"/ships", map[string]string{"type": "1x1", "a": "A1", "b": "A1"}, nil)
	post(base+"/advance", nil, nil) // prompt
	post(base+"/advance", nil, nil) // player two setup
	post(base+"/ships", map[string]string{"type": "1x1", "a": "E5", "b": "E5"}, nil)
	post(base+"/advance", nil, nil) // prompt
	post(base+"/advance", nil, nil) // player one turn

	var shot service.CommandResult
	post(base+"/fire", map[string]string{"target": "E5"}, &shot)
	if !shot.Hit || !shot.Sunk {
		t.Fatalf("Expected hit and sunk, got %+v", shot)
	}

	var final service.CommandResult
	post(base+"/advance", nil, &final)
	if final.View.Phase != engine.PlayerVictory {
		t.Fatalf("Expected %s, got %s", engine.PlayerVictory, final.View.Phase)
	}
	if final.View.Winner != engine.PlayerOne {
		t.Errorf("Expected player one to win, got %s", final.View.Winner)
	}

	if _, err := os.Stat(filepath.Join(*sessionsDir, info.ID+".json")); err != nil {
		t.Errorf("Expected session file to be saved: %v", err)
	}
}
