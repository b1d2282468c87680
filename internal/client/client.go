// internal/client/client.go
//
// HTTP implementation of game.Backend: the client side of the three game
// routes. Error kinds survive the wire: a 404 comes back as
// store.ErrNotFound, a 503 as store.ErrUnavailable, and a 502 as
// cardsource.ErrUnavailable, so the session machine reacts the same way
// it would against an in-process backend.

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/robalobadob/blackjack/go-server/internal/blackjack"
	"github.com/robalobadob/blackjack/go-server/internal/cardsource"
	"github.com/robalobadob/blackjack/go-server/internal/game"
	"github.com/robalobadob/blackjack/go-server/internal/store"
)

// Client talks to a running blackjack server.
type Client struct {
	Base string
	HTTP *http.Client
}

// New builds a Client for base (e.g. "http://localhost:5185").
// Passing nil uses a default client with a 15s timeout.
func New(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{Base: strings.TrimRight(base, "/"), HTTP: hc}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		body := strings.TrimSpace(string(b))
		switch resp.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", store.ErrNotFound, body)
		case http.StatusServiceUnavailable:
			return fmt.Errorf("%w: %s", store.ErrUnavailable, body)
		case http.StatusBadGateway:
			return fmt.Errorf("%w: %s", cardsource.ErrUnavailable, body)
		}
		return fmt.Errorf("GET %s: status=%d body=%s", path, resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) GetOrCreate(ctx context.Context, name string) (*game.Snapshot, error) {
	var snap game.Snapshot
	if err := c.get(ctx, "/game/"+url.PathEscape(name)+"/getOrCreate", &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) Draw(ctx context.Context, deckID string, role blackjack.Role) (game.Pile, error) {
	var res struct {
		Cards game.Pile `json:"cards"`
	}
	path := "/game/" + url.PathEscape(deckID) + "/draw/" + string(role)
	if err := c.get(ctx, path, &res); err != nil {
		return nil, err
	}
	return res.Cards, nil
}

func (c *Client) EndGame(ctx context.Context, name string, winner blackjack.Role) (*game.Snapshot, error) {
	var snap game.Snapshot
	path := "/game/" + url.PathEscape(name) + "/endGame/" + string(winner)
	if err := c.get(ctx, path, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
