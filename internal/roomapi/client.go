// Package roomapi is the HTTP half of the server contract: one request to
// create a room, returning its gameId.
package roomapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var ErrCreateGame = errors.New("create game failed")

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type createGameRequest struct {
	StartingBidderIndex int         `json:"startingBidderIndex"`
	First4Hands         [4][]string `json:"first4Hands"`
}

type createGameResponse struct {
	GameID string `json:"gameId"`
}

// CreateGame posts the starting bidder and the four initial 4-card hands.
// On a non-2xx response the server's detail message is surfaced when it can
// be parsed, with a generic fallback otherwise. A failure here is form-level,
// not fatal to the page.
func (c *Client) CreateGame(ctx context.Context, startingBidder int, first4Hands [4][]string) (string, error) {
	body, err := json.Marshal(createGameRequest{
		StartingBidderIndex: startingBidder,
		First4Hands:         first4Hands,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCreateGame, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/games", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCreateGame, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCreateGame, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var detail struct {
			Detail string `json:"detail"`
		}
		if json.NewDecoder(resp.Body).Decode(&detail) == nil && detail.Detail != "" {
			return "", fmt.Errorf("%w: %s", ErrCreateGame, detail.Detail)
		}
		return "", fmt.Errorf("%w: server returned status %d", ErrCreateGame, resp.StatusCode)
	}

	var out createGameResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: bad response body: %v", ErrCreateGame, err)
	}
	if out.GameID == "" {
		return "", fmt.Errorf("%w: response missing gameId", ErrCreateGame)
	}
	return out.GameID, nil
}
