// internal/game/backend.go
//
// Backend is the session machine's view of the server proxy: the three
// operations the HTTP surface exposes. Implementations: the in-process
// adapter used by tests, and internal/client.Client over HTTP.

package game

import (
	"context"

	"github.com/robalobadob/blackjack/go-server/internal/blackjack"
)

// Backend exposes the game server's three operations to a session.
type Backend interface {
	// GetOrCreate fetches the game by name, creating it with a fresh deck
	// and a dealt opening hand if absent.
	GetOrCreate(ctx context.Context, name string) (*Snapshot, error)

	// Draw requests one card into role's pile and returns the updated pile.
	Draw(ctx context.Context, deckID string, role blackjack.Role) (Pile, error)

	// EndGame records the round winner, binds a fresh deck with a fresh
	// opening hand, and returns the new snapshot.
	EndGame(ctx context.Context, name string, winner blackjack.Role) (*Snapshot, error)
}
