// internal/cardsource/http.go
//
// HTTP client for a deck-of-cards oracle (deckofcardsapi.com-compatible
// surface). All endpoints are GET; failures of transport, status, or
// payload shape are wrapped as ErrUnavailable.

package cardsource

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
)

// Client talks to a remote deck-of-cards API.
type Client struct {
	Base string
	HTTP *http.Client
}

// NewClient builds a Client for base (e.g. "https://deckofcardsapi.com/api").
// Passing nil uses a default client with a 10s timeout.
func NewClient(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{Base: strings.TrimRight(base, "/"), HTTP: hc}
}

// apiResponse is the union of fields the oracle returns across endpoints.
type apiResponse struct {
	Success bool   `json:"success"`
	DeckID  string `json:"deck_id"`
	Cards   []Card `json:"cards"`
	Piles   map[string]struct {
		Cards []Card `json:"cards"`
	} `json:"piles"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*apiResponse, error) {
	u := c.Base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status=%d body=%s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	if !payload.Success {
		return nil, fmt.Errorf("%w: oracle reported failure", ErrUnavailable)
	}
	return &payload, nil
}

func (c *Client) NewDeck(ctx context.Context) (string, error) {
	payload, err := c.get(ctx, "/deck/new/shuffle/", url.Values{"deck_count": {"1"}})
	if err != nil {
		return "", err
	}
	if payload.DeckID == "" {
		return "", fmt.Errorf("%w: empty deck_id", ErrUnavailable)
	}
	return payload.DeckID, nil
}

func (c *Client) DrawOne(ctx context.Context, deckID string) (Card, error) {
	payload, err := c.get(ctx, "/deck/"+url.PathEscape(deckID)+"/draw/", url.Values{"count": {"1"}})
	if err != nil {
		return Card{}, err
	}
	if len(payload.Cards) == 0 {
		return Card{}, fmt.Errorf("%w: draw returned no cards", ErrUnavailable)
	}
	return payload.Cards[0], nil
}

func (c *Client) AddToPile(ctx context.Context, deckID string, role blackjack.Role, card Card) error {
	path := "/deck/" + url.PathEscape(deckID) + "/pile/" + string(role) + "/add/"
	_, err := c.get(ctx, path, url.Values{"cards": {card.Code}})
	return err
}

func (c *Client) ListPile(ctx context.Context, deckID string, role blackjack.Role) ([]Card, error) {
	path := "/deck/" + url.PathEscape(deckID) + "/pile/" + string(role) + "/list/"
	payload, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	pile, ok := payload.Piles[string(role)]
	if !ok {
		return []Card{}, nil
	}
	return pile.Cards, nil
}
