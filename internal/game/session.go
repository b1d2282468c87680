// internal/game/session.go
//
// Session is the game state machine: it sequences one player's turns,
// talks to the server through a Backend, recomputes scores after every
// pile mutation, and decides round outcomes.
//
// Transition rules:
//   - AwaitingEntry → PlayerTurn on Enter (wholesale snapshot replace).
//   - PlayerTurn → PlayerTurn on Hit; the bust / twenty-one check runs as
//     a post-render hook so the drawn card is displayed before the
//     outcome notification fires.
//   - PlayerTurn → DealerTurn → RoundResolved on Stand: the dealer draws
//     serially while its score is below the stand threshold, each card
//     rendered before the next request.
//   - RoundResolved → PlayerTurn on NextRound (end-game round-trip,
//     fresh deck, fresh opening hand).
//
// Any Backend failure aborts the in-progress transition and leaves the
// session in its prior state; no partial mutation is applied. Exactly one
// Notifier call happens per RoundResolved entry.

package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/blackjack/go-server/internal/blackjack"
)

// ErrWrongState is returned when an action is not legal in the session's
// current state.
var ErrWrongState = errors.New("action not allowed in current state")

// Renderer receives the session view after every state mutation.
type Renderer interface {
	Render(v View)
}

// Notifier receives exactly one outcome call per resolved round, after
// the final render of that round has completed.
type Notifier interface {
	Outcome(winner blackjack.Role, v View)
}

// Session drives one game for one player. Not safe for concurrent use;
// one session belongs to one caller, mirroring one browser tab.
type Session struct {
	backend  Backend
	renderer Renderer
	notifier Notifier
	rules    blackjack.Rules

	state       State
	snap        Snapshot
	playerScore int
	dealerScore int
	winner      blackjack.Role // valid only in RoundResolved
}

// NewSession constructs a session in AwaitingEntry. renderer and notifier
// may be nil for headless use.
func NewSession(b Backend, rules blackjack.Rules, renderer Renderer, notifier Notifier) *Session {
	return &Session{
		backend:  b,
		renderer: renderer,
		notifier: notifier,
		rules:    rules,
		state:    AwaitingEntry,
	}
}

// State reports the session's current state.
func (s *Session) State() State { return s.state }

// View builds the current renderable view.
func (s *Session) View() View {
	return View{
		State:       s.state,
		Snapshot:    s.snap,
		PlayerScore: s.playerScore,
		DealerScore: s.dealerScore,
	}
}

// Winner reports the resolved round's winner; ok is false outside
// RoundResolved.
func (s *Session) Winner() (winner blackjack.Role, ok bool) {
	return s.winner, s.state == RoundResolved
}

// Enter joins (or creates) the named game and starts the first round.
func (s *Session) Enter(ctx context.Context, name string) error {
	if s.state != AwaitingEntry {
		return fmt.Errorf("%w: enter from %s", ErrWrongState, s.state)
	}
	snap, err := s.backend.GetOrCreate(ctx, name)
	if err != nil {
		return err
	}
	s.replace(*snap)
	s.state = PlayerTurn
	log.Debug().Str("game", name).Str("deck", s.snap.DeckID).Msg("entered game")
	s.render()
	return nil
}

// Hit draws one card for the player. After the card is rendered, the
// post-render check may resolve the round: a bust hands the win to the
// dealer, an exact twenty-one to the player.
func (s *Session) Hit(ctx context.Context) error {
	if s.state != PlayerTurn {
		return fmt.Errorf("%w: hit from %s", ErrWrongState, s.state)
	}
	pile, err := s.backend.Draw(ctx, s.snap.DeckID, blackjack.RolePlayer)
	if err != nil {
		return err
	}
	s.snap.PlayerPile = pile
	s.playerScore = pile.Score()
	s.render()

	switch {
	case blackjack.Bust(s.playerScore):
		s.finishRound(blackjack.RoleDealer)
	case s.playerScore == 21:
		s.finishRound(blackjack.RolePlayer)
	}
	return nil
}

// Stand ends the player's turn and runs the dealer auto-draw loop: one
// card at a time, each fully applied and rendered before the next
// request, until the dealer reaches the stand threshold. The round then
// resolves; the dealer wins unless it busts or finishes below the player.
func (s *Session) Stand(ctx context.Context) error {
	if s.state != PlayerTurn {
		return fmt.Errorf("%w: stand from %s", ErrWrongState, s.state)
	}
	prev := s.checkpoint()
	s.state = DealerTurn
	for s.rules.DealerDraws(s.dealerScore) {
		pile, err := s.backend.Draw(ctx, s.snap.DeckID, blackjack.RoleDealer)
		if err != nil {
			s.restore(prev)
			return err
		}
		s.snap.DealerPile = pile
		s.dealerScore = pile.Score()
		s.render()
	}
	s.finishRound(s.rules.Resolve(s.playerScore, s.dealerScore))
	return nil
}

// NextRound clears the displayed piles, records the winner server-side
// (incrementing one counter and binding a fresh deck with a fresh
// opening), and starts the next round from the new snapshot.
func (s *Session) NextRound(ctx context.Context) error {
	if s.state != RoundResolved {
		return fmt.Errorf("%w: next round from %s", ErrWrongState, s.state)
	}
	prev := s.checkpoint()
	s.snap.PlayerPile, s.snap.DealerPile = nil, nil
	s.snap.Scores = nil
	s.playerScore, s.dealerScore = 0, 0
	s.render()

	snap, err := s.backend.EndGame(ctx, s.snap.GameName, s.winner)
	if err != nil {
		// Prior state, stale (cleared) display; the caller may retry.
		s.restore(prev)
		return err
	}
	s.replace(*snap)
	s.state = PlayerTurn
	log.Debug().Str("game", s.snap.GameName).Str("deck", s.snap.DeckID).
		Int("won", s.snap.GamesWon).Int("lost", s.snap.GamesLost).Msg("new round")
	s.render()
	return nil
}

// replace applies a server snapshot wholesale and recomputes both scores.
func (s *Session) replace(snap Snapshot) {
	s.snap = snap
	s.playerScore = snap.PlayerPile.Score()
	s.dealerScore = snap.DealerPile.Score()
}

// finishRound enters RoundResolved and fires the single outcome
// notification, after a final render of the finished round.
func (s *Session) finishRound(winner blackjack.Role) {
	s.state = RoundResolved
	s.winner = winner
	s.render()
	if s.notifier != nil {
		s.notifier.Outcome(winner, s.View())
	}
}

func (s *Session) render() {
	if s.renderer != nil {
		s.renderer.Render(s.View())
	}
}

// sessionCheckpoint captures everything a failed transition must restore.
type sessionCheckpoint struct {
	state                    State
	snap                     Snapshot
	playerScore, dealerScore int
	winner                   blackjack.Role
}

func (s *Session) checkpoint() sessionCheckpoint {
	return sessionCheckpoint{
		state:       s.state,
		snap:        s.snap,
		playerScore: s.playerScore,
		dealerScore: s.dealerScore,
		winner:      s.winner,
	}
}

func (s *Session) restore(c sessionCheckpoint) {
	s.state = c.state
	s.snap = c.snap
	s.playerScore = c.playerScore
	s.dealerScore = c.dealerScore
	s.winner = c.winner
}
