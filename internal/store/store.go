// internal/store/store.go
//
// Session store contract: one row per game name holding the current deck
// reference and the cumulative win/loss counters. Implementations may be
// backed by memory (tests) or SQLite (production).

package store

import (
	"context"
	"errors"

	"github.com/robalobadob/blackjack/go-server/internal/blackjack"
)

// ErrNotFound is returned by Find for unknown game names.
var ErrNotFound = errors.New("game not found")

// ErrUnavailable wraps backend failures (driver/IO) so handlers can map
// them to a distinct response from a plain missing row.
var ErrUnavailable = errors.New("store unavailable")

// Game is the persisted aggregate: name, current deck binding, counters,
// and the owner (a user or an anonymous cookie id). Piles and scores are
// never persisted; they are derived from the card source.
type Game struct {
	Name        string `json:"gameName"`
	DeckID      string `json:"deckId"`
	GamesWon    int    `json:"gamesWon"`
	GamesLost   int    `json:"gamesLost"`
	UserID      string `json:"-"`
	AnonymousID string `json:"-"`
}

// Store defines the persistence interface for game rows.
type Store interface {
	// Find looks up a game by its unique name. Returns ErrNotFound for
	// unknown names.
	Find(ctx context.Context, name string) (*Game, error)

	// Create inserts a new row with zero counters.
	Create(ctx context.Context, g *Game) error

	// Update rebinds the deck and increments exactly one counter:
	// GamesWon when winner is the player, GamesLost otherwise.
	Update(ctx context.Context, name, deckID string, winner blackjack.Role) error

	// ClaimAnonGames transfers anonymous games to a user account.
	ClaimAnonGames(ctx context.Context, anonID, userID string) error

	// FindByOwner lists a user's games, most recently created first.
	FindByOwner(ctx context.Context, userID string) ([]*Game, error)
}
