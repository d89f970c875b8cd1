package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type GameState struct {
	Width          int      `json:"width"`
	Height         int      `json:"height"`
	Layout         []string `json:"layout"`
	PlayerPos      Position `json:"player_pos"`
	PlayerAlive    bool     `json:"player_alive"`
	Score          int      `json:"score"`
	GameOver       bool     `json:"game_over"`
	Victory        bool     `json:"victory"`
	BasicCollected int      `json:"basic_collected"`
	BasicToCollect int      `json:"basic_to_collect"`
	Ticks          int64    `json:"ticks"`
	Message        string   `json:"message"`
	ConfigName     string   `json:"config_name"`
}

type SessionResponse struct {
	ID         string     `json:"id"`
	ConfigName string     `json:"config_name"`
	GameState  *GameState `json:"game_state"`
}

type TickRequest struct {
	Direction  string   `json:"direction,omitempty"`
	Directions []string `json:"directions,omitempty"`
	Reset      bool     `json:"reset,omitempty"`
}

type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateSession(configID string) (*GameState, error) {
	var reqBody []byte
	var err error

	if configID != "" {
		reqBody, err = json.Marshal(map[string]string{"config_id": configID})
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	resp, err := c.client.Post(c.baseURL+"/api/sessions", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create session failed: %s - %s", resp.Status, string(body))
	}

	var session SessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("parse session response: %w", err)
	}

	c.sessionID = session.ID
	return session.GameState, nil
}

func (c *Client) GetState() (*GameState, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/state", c.baseURL, c.sessionID)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	defer resp.Body.Close()

	var state GameState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}

	return &state, nil
}

type TickResponse struct {
	Applied   bool       `json:"applied"`
	Moved     bool       `json:"moved"`
	GameState *GameState `json:"game_state"`
	Message   string     `json:"message"`
}

func (c *Client) Tick(direction string) (*GameState, error) {
	body, err := json.Marshal(TickRequest{Direction: direction})
	if err != nil {
		return nil, fmt.Errorf("marshal tick: %w", err)
	}

	url := fmt.Sprintf("%s/api/sessions/%s/tick", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("execute tick: %w", err)
	}
	defer resp.Body.Close()

	var tickResp TickResponse
	if err := json.NewDecoder(resp.Body).Decode(&tickResp); err != nil {
		return nil, fmt.Errorf("parse tick response: %w", err)
	}

	if tickResp.GameState == nil {
		return nil, fmt.Errorf("tick failed: %s", tickResp.Message)
	}

	return tickResp.GameState, nil
}

type ResetResponse struct {
	Message string     `json:"message"`
	State   *GameState `json:"state"`
}

func (c *Client) Reset() (*GameState, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/reset", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", nil)
	if err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	defer resp.Body.Close()

	var resetResp ResetResponse
	if err := json.NewDecoder(resp.Body).Decode(&resetResp); err != nil {
		return nil, fmt.Errorf("parse reset response: %w", err)
	}

	return resetResp.State, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	configID := flag.String("config", "", "Arena configuration ID (classic, arena)")
	continueSession := flag.String("continue", "", "Resume playing an existing session by ID")
	maxTicks := flag.Int("max-ticks", 2000, "Maximum ticks per attempt")
	maxAttempts := flag.Int("max-attempts", 50, "Maximum attempts before giving up")
	verbose := flag.Bool("v", false, "Verbose output")
	delayMs := flag.Int("delay", 0, "Delay between ticks in milliseconds (0 = no delay)")
	flag.Parse()

	log.Printf("Connecting to game server at %s", *serverURL)
	client := NewClient(*serverURL)

	var state *GameState
	var err error

	// Check for saved session ID
	sessionFile := ".session"
	savedSessionID := ""

	if *continueSession != "" {
		savedSessionID = *continueSession
	} else {
		if data, err := os.ReadFile(sessionFile); err == nil {
			savedSessionID = string(bytes.TrimSpace(data))
		}
	}

	if savedSessionID != "" {
		// Resume existing session
		client.sessionID = savedSessionID
		log.Printf("🔄 Resuming session: %s", client.sessionID)
		state, err = client.GetState()
		if err != nil {
			log.Printf("⚠️  Failed to resume session (may be expired): %v", err)
			log.Printf("Creating new session...")
			savedSessionID = ""
		} else {
			log.Printf("Session resumed - Arena: %dx%d, Rewards: %d/%d, Score: %d",
				state.Width, state.Height, state.BasicCollected, state.BasicToCollect, state.Score)
		}
	}

	if savedSessionID == "" {
		state, err = client.CreateSession(*configID)
		if err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
		log.Printf("✨ Session created: %s", client.sessionID)
		log.Printf("Arena: %dx%d, Rewards to collect: %d",
			state.Width, state.Height, state.BasicToCollect)

		// Save session ID for next run
		if err := os.WriteFile(sessionFile, []byte(client.sessionID), 0644); err != nil {
			log.Printf("Warning: Failed to save session ID: %v", err)
		}
	}

	// Reset the game state at the beginning of each run
	log.Printf("🔄 Resetting game state...")
	state, err = client.Reset()
	if err != nil {
		log.Fatalf("Failed to reset game: %v", err)
	}
	log.Printf("Game reset - Position: (%d,%d), Score: %d",
		state.PlayerPos.Row, state.PlayerPos.Col, state.Score)

	strategy := NewRaidStrategy(state)

	// Keep trying until victory or max attempts
	attemptNum := 0
	for attemptNum < *maxAttempts {
		attemptNum++

		if attemptNum > 1 {
			state, err = client.Reset()
			if err != nil {
				log.Printf("Failed to reset: %v", err)
				break
			}
			strategy.Reset()
		}

		log.Printf("\n=== 🎮 Attempt %d/%d ===", attemptNum, *maxAttempts)

		tickCount := 0
		for !state.Victory && !state.GameOver && tickCount < *maxTicks {
			if *verbose && tickCount%50 == 0 {
				log.Printf("Position: (%d,%d), Score: %d, Rewards: %d/%d",
					state.PlayerPos.Row, state.PlayerPos.Col,
					state.Score, state.BasicCollected, state.BasicToCollect)
			}

			direction := strategy.NextMove(state)
			if direction == "" {
				log.Printf("⚠️  No valid moves available")
				break
			}

			newState, err := client.Tick(direction)
			if err != nil {
				if *verbose {
					log.Printf("Tick failed: %v", err)
				}
				continue
			}
			state = newState
			tickCount++

			if *delayMs > 0 {
				time.Sleep(time.Duration(*delayMs) * time.Millisecond)
			}
		}

		log.Printf("Attempt %d: Ticks=%d, Rewards=%d/%d, Score=%d",
			attemptNum, tickCount, state.BasicCollected, state.BasicToCollect, state.Score)

		if state.Victory {
			log.Printf("\n🎉 VICTORY! Raid completed in attempt %d with %d ticks, score %d!",
				attemptNum, tickCount, state.Score)
			log.Printf("Session: %s", client.sessionID)
			os.Exit(0)
		}
	}

	// Failed to win after all attempts
	log.Printf("\n❌ Failed to win after %d attempts", attemptNum)
	log.Printf("Session: %s", client.sessionID)
	os.Exit(1)
}
