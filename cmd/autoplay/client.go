package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wricardo/mcp-training/battleship/game/engine"
	"github.com/wricardo/mcp-training/battleship/game/service"
)

// Client drives one session over the HTTP API
type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// do sends a request and decodes a 2xx JSON response into out
func (c *Client) do(method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s failed: %s - %s", method, path, resp.Status, apiErr.Error)
		}
		return fmt.Errorf("%s %s failed: %s - %s", method, path, resp.Status, string(raw))
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}

func (c *Client) sessionPath(suffix string) string {
	return "/api/sessions/" + c.sessionID + suffix
}

func (c *Client) CreateSession(configID string) (*service.SessionInfo, error) {
	var body interface{}
	if configID != "" {
		body = map[string]string{"config_id": configID}
	}
	var info service.SessionInfo
	if err := c.do(http.MethodPost, "/api/sessions", body, &info); err != nil {
		return nil, err
	}
	c.sessionID = info.ID
	return &info, nil
}

func (c *Client) GetState() (*service.GameView, error) {
	var view service.GameView
	if err := c.do(http.MethodGet, c.sessionPath("/state"), nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *Client) SetFleetCount(n int) (*service.CommandResult, error) {
	var result service.CommandResult
	err := c.do(http.MethodPost, c.sessionPath("/fleet-count"), map[string]int{"count": n}, &result)
	return &result, err
}

func (c *Client) PlaceShip(t engine.ShipType, a, b engine.Coord) (*service.CommandResult, error) {
	req := map[string]string{"type": t.String(), "a": a.Label(), "b": b.Label()}
	var result service.CommandResult
	err := c.do(http.MethodPost, c.sessionPath("/ships"), req, &result)
	return &result, err
}

func (c *Client) Fire(target engine.Coord) (*service.CommandResult, error) {
	var result service.CommandResult
	err := c.do(http.MethodPost, c.sessionPath("/fire"), map[string]string{"target": target.Label()}, &result)
	return &result, err
}

func (c *Client) Advance() (*service.CommandResult, error) {
	var result service.CommandResult
	err := c.do(http.MethodPost, c.sessionPath("/advance"), nil, &result)
	return &result, err
}

func (c *Client) Reset() (*service.GameView, error) {
	var resp struct {
		State *service.GameView `json:"state"`
	}
	if err := c.do(http.MethodPost, c.sessionPath("/reset"), nil, &resp); err != nil {
		return nil, err
	}
	return resp.State, nil
}

func (c *Client) GetScoreboard() (*service.Scoreboard, error) {
	var scoreboard service.Scoreboard
	if err := c.do(http.MethodGet, c.sessionPath("/scoreboard"), nil, &scoreboard); err != nil {
		return nil, err
	}
	return &scoreboard, nil
}
