// internal/game/types.go
//
// Core type definitions for the game session machine.
// Defines:
//   - State: where a session is in the round lifecycle.
//   - Snapshot: the server's full view of a game (row + piles).
//   - View: what a renderer sees (snapshot + derived scores + state).

package game

import (
	"github.com/robalobadob/blackjack/go-server/internal/blackjack"
	"github.com/robalobadob/blackjack/go-server/internal/cardsource"
)

// State is a session's position in the round lifecycle.
type State string

const (
	// AwaitingEntry: no game joined yet.
	AwaitingEntry State = "awaiting_entry"
	// PlayerTurn: the player may hit or stand.
	PlayerTurn State = "player_turn"
	// DealerTurn: the dealer auto-draw loop is running.
	DealerTurn State = "dealer_turn"
	// RoundResolved: a winner has been declared; next step is a new round.
	RoundResolved State = "round_resolved"
)

// Pile is an ordered, append-only hand of cards.
type Pile []cardsource.Card

// Values extracts the oracle wire values for scoring.
func (p Pile) Values() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Value
	}
	return out
}

// Score totals the pile with the blackjack engine.
func (p Pile) Score() int { return blackjack.ScoreValues(p.Values()) }

// Snapshot is the server's full view of one game: the persisted row plus
// the current piles. Scores are derived; every consumer recomputes them
// from the piles, they are carried here for display only.
type Snapshot struct {
	GameName   string         `json:"gameName"`
	DeckID     string         `json:"deckId"`
	GamesWon   int            `json:"gamesWon"`
	GamesLost  int            `json:"gamesLost"`
	PlayerPile Pile           `json:"playerPile"`
	DealerPile Pile           `json:"dealerPile"`
	Scores     map[string]int `json:"scores,omitempty"`
}

// View is handed to renderers and notifiers after each state mutation.
type View struct {
	State       State
	Snapshot    Snapshot
	PlayerScore int
	DealerScore int
}
