package cardsource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/robalobadob/blackjack/go-server/internal/blackjack"
)

// fakeOracle serves the subset of the deck API surface the client uses.
func fakeOracle(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/deck/new/shuffle/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"deck_id":"abc123","remaining":52}`))
	})
	mux.HandleFunc("/deck/abc123/draw/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"deck_id":"abc123","cards":[{"code":"0H","value":"0","suit":"HEARTS"}]}`))
	})
	mux.HandleFunc("/deck/abc123/pile/player/add/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cards") != "0H" {
			http.Error(w, `{"success":false}`, http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	mux.HandleFunc("/deck/abc123/pile/player/list/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"piles":{"player":{"cards":[{"code":"0H","value":"0","suit":"HEARTS"}]}}}`))
	})
	return httptest.NewServer(mux)
}

func TestClientRoundTrip(t *testing.T) {
	ts := fakeOracle(t)
	defer ts.Close()
	ctx := context.Background()
	c := NewClient(ts.URL, ts.Client())

	deckID, err := c.NewDeck(ctx)
	if err != nil {
		t.Fatalf("NewDeck: %v", err)
	}
	if deckID != "abc123" {
		t.Fatalf("deckID = %q", deckID)
	}

	card, err := c.DrawOne(ctx, deckID)
	if err != nil {
		t.Fatalf("DrawOne: %v", err)
	}
	if card.Value != "0" || card.Suit != "HEARTS" {
		t.Fatalf("card = %+v", card)
	}

	if err := c.AddToPile(ctx, deckID, blackjack.RolePlayer, card); err != nil {
		t.Fatalf("AddToPile: %v", err)
	}

	pile, err := c.ListPile(ctx, deckID, blackjack.RolePlayer)
	if err != nil {
		t.Fatalf("ListPile: %v", err)
	}
	if len(pile) != 1 || pile[0].Code != "0H" {
		t.Fatalf("pile = %+v", pile)
	}
}

func TestClientMapsFailuresToUnavailable(t *testing.T) {
	ctx := context.Background()

	// Connection refused.
	down := NewClient("http://127.0.0.1:1", nil)
	if _, err := down.NewDeck(ctx); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("transport failure: %v", err)
	}

	// Non-2xx status.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()
	c := NewClient(ts.URL, ts.Client())
	if _, err := c.NewDeck(ctx); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("status failure: %v", err)
	}

	// success=false payload.
	ts2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	defer ts2.Close()
	c2 := NewClient(ts2.URL, ts2.Client())
	if _, err := c2.NewDeck(ctx); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("oracle failure: %v", err)
	}
}
