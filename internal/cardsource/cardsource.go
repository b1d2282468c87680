// internal/cardsource/cardsource.go
//
// Card source abstraction. The game treats shuffling and drawing as an
// opaque oracle: given a deck reference it can mint a fresh shuffled
// deck, draw one card, file cards into named piles, and list a pile.
// Implementations: Client (remote deck-of-cards HTTP API) and Local
// (in-process decks for offline dev and tests).

package cardsource

import (
	"context"
	"errors"

	"github.com/robalobadob/blackjack/go-server/internal/blackjack"
)

// ErrUnavailable wraps any transport or oracle failure so callers can
// map it to a distinct response without knowing the implementation.
var ErrUnavailable = errors.New("card source unavailable")

// Card is the oracle's wire shape for a single card. Value carries the
// oracle's encoding: "2".."9", "0" or "10" for tens, and the named court
// cards "JACK"/"QUEEN"/"KING"/"ACE".
type Card struct {
	Code  string `json:"code"`
	Value string `json:"value"`
	Suit  string `json:"suit"`
}

// Source is the oracle contract consumed by the server proxy.
type Source interface {
	// NewDeck mints a freshly shuffled deck and returns its reference.
	NewDeck(ctx context.Context) (string, error)

	// DrawOne removes the top card from the deck.
	DrawOne(ctx context.Context, deckID string) (Card, error)

	// AddToPile files a drawn card into the pile for role.
	AddToPile(ctx context.Context, deckID string, role blackjack.Role, card Card) error

	// ListPile returns the pile's cards in draw order.
	ListPile(ctx context.Context, deckID string, role blackjack.Role) ([]Card, error)
}
