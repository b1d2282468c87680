// internal/httpserver/routes_game.go
//
// HTTP routes for the blackjack game proxy. The server owns no game
// logic beyond snapshot assembly: it fetches/creates the persisted row,
// forwards draw requests to the card source, and records round results.
//
// Surface (all GET, JSON):
//   - GET /game/{gameRef}/getOrCreate    → full game snapshot (creates
//     the row with a fresh deck and a dealt opening hand if absent).
//   - GET /game/{gameRef}/draw/{role}    → updated pile snapshot; here
//     gameRef is the deck reference, not the game name.
//   - GET /game/{gameRef}/endGame/{winner} → snapshot with one counter
//     incremented, a fresh deck, and a fresh opening hand. 404 for
//     unknown names (this lookup never creates).

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/blackjack/go-server/internal/blackjack"
	"github.com/robalobadob/blackjack/go-server/internal/cardsource"
	"github.com/robalobadob/blackjack/go-server/internal/game"
	"github.com/robalobadob/blackjack/go-server/internal/store"
)

// mountGame registers the game proxy routes.
func (s *Server) mountGame(r chi.Router) {
	r.Route("/game/{gameRef}", func(r chi.Router) {
		r.Get("/getOrCreate", s.handleGetOrCreate)
		r.Get("/draw/{role}", s.handleDraw)
		r.Get("/endGame/{winner}", s.handleEndGame)
	})
}

// handleGetOrCreate looks up the game by name; on first request for a
// name it mints a deck, deals the opening hands, and inserts the row
// with zero counters, owned by the current user or anonymous cookie.
func (s *Server) handleGetOrCreate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "gameRef")
	if name == "" {
		http.Error(w, `{"error":"missing_game_name"}`, http.StatusBadRequest)
		return
	}

	g, err := s.store.Find(r.Context(), name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		g, err = s.createGame(w, r, name)
		if err != nil {
			writeGameErr(w, err)
			return
		}
	case err != nil:
		writeGameErr(w, err)
		return
	}

	snap, err := s.snapshot(r.Context(), g)
	if err != nil {
		writeGameErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(snap)
}

// createGame mints a deck, deals the opening, and inserts the row.
func (s *Server) createGame(w http.ResponseWriter, r *http.Request, name string) (*store.Game, error) {
	deckID, err := s.cards.NewDeck(r.Context())
	if err != nil {
		return nil, err
	}
	if err := s.dealOpening(r.Context(), deckID); err != nil {
		return nil, err
	}
	g := &store.Game{Name: name, DeckID: deckID}
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		g.UserID = me.ID
	} else {
		g.AnonymousID = s.ensureAnonID(w, r)
	}
	if err := s.store.Create(r.Context(), g); err != nil {
		return nil, err
	}
	log.Info().Str("game", name).Str("deck", deckID).Msg("created game")
	return g, nil
}

// pileRes is the /draw response payload.
type pileRes struct {
	Role  blackjack.Role    `json:"role"`
	Cards []cardsource.Card `json:"cards"`
	Score int               `json:"score"`
}

// handleDraw draws one card from the deck into role's pile and returns
// the updated pile. The path's gameRef segment carries the deck id.
func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "gameRef")
	role, err := blackjack.ParseRole(chi.URLParam(r, "role"))
	if err != nil {
		http.Error(w, `{"error":"invalid_role"}`, http.StatusBadRequest)
		return
	}

	card, err := s.cards.DrawOne(r.Context(), deckID)
	if err != nil {
		writeGameErr(w, err)
		return
	}
	if err := s.cards.AddToPile(r.Context(), deckID, role, card); err != nil {
		writeGameErr(w, err)
		return
	}
	pile, err := s.cards.ListPile(r.Context(), deckID, role)
	if err != nil {
		writeGameErr(w, err)
		return
	}

	log.Debug().Str("deck", deckID).Str("role", string(role)).Str("card", card.Code).Msg("drew card")
	_ = json.NewEncoder(w).Encode(pileRes{Role: role, Cards: pile, Score: game.Pile(pile).Score()})
}

// handleEndGame records the round winner for an existing game: exactly
// one counter is incremented, the old deck is abandoned, and a fresh
// deck with a fresh opening is bound to the row.
func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "gameRef")
	winner, err := blackjack.ParseRole(chi.URLParam(r, "winner"))
	if err != nil {
		http.Error(w, `{"error":"invalid_winner"}`, http.StatusBadRequest)
		return
	}

	// Non-creating lookup: unknown names are a 404 here.
	if _, err := s.store.Find(r.Context(), name); err != nil {
		writeGameErr(w, err)
		return
	}

	deckID, err := s.cards.NewDeck(r.Context())
	if err != nil {
		writeGameErr(w, err)
		return
	}
	if err := s.dealOpening(r.Context(), deckID); err != nil {
		writeGameErr(w, err)
		return
	}
	if err := s.store.Update(r.Context(), name, deckID, winner); err != nil {
		writeGameErr(w, err)
		return
	}
	g, err := s.store.Find(r.Context(), name)
	if err != nil {
		writeGameErr(w, err)
		return
	}

	snap, err := s.snapshot(r.Context(), g)
	if err != nil {
		writeGameErr(w, err)
		return
	}
	log.Info().Str("game", name).Str("winner", string(winner)).
		Int("won", g.GamesWon).Int("lost", g.GamesLost).Msg("round recorded")
	_ = json.NewEncoder(w).Encode(snap)
}

// dealOpening deals the opening hands: two cards each, strictly
// alternating player, dealer, player, dealer.
func (s *Server) dealOpening(ctx context.Context, deckID string) error {
	order := []blackjack.Role{
		blackjack.RolePlayer, blackjack.RoleDealer,
		blackjack.RolePlayer, blackjack.RoleDealer,
	}
	for _, role := range order {
		card, err := s.cards.DrawOne(ctx, deckID)
		if err != nil {
			return err
		}
		if err := s.cards.AddToPile(ctx, deckID, role, card); err != nil {
			return err
		}
	}
	return nil
}

// snapshot assembles the full game view: row, current piles, and scores
// recomputed from the piles (never read from storage).
func (s *Server) snapshot(ctx context.Context, g *store.Game) (*game.Snapshot, error) {
	player, err := s.cards.ListPile(ctx, g.DeckID, blackjack.RolePlayer)
	if err != nil {
		return nil, err
	}
	dealer, err := s.cards.ListPile(ctx, g.DeckID, blackjack.RoleDealer)
	if err != nil {
		return nil, err
	}
	snap := &game.Snapshot{
		GameName:   g.Name,
		DeckID:     g.DeckID,
		GamesWon:   g.GamesWon,
		GamesLost:  g.GamesLost,
		PlayerPile: game.Pile(player),
		DealerPile: game.Pile(dealer),
	}
	snap.Scores = map[string]int{
		string(blackjack.RolePlayer): snap.PlayerPile.Score(),
		string(blackjack.RoleDealer): snap.DealerPile.Score(),
	}
	return snap, nil
}

// writeGameErr maps domain errors onto the HTTP surface.
func writeGameErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
	case errors.Is(err, store.ErrUnavailable):
		log.Error().Err(err).Msg("store unavailable")
		http.Error(w, `{"error":"store_unavailable"}`, http.StatusServiceUnavailable)
	case errors.Is(err, cardsource.ErrUnavailable):
		log.Error().Err(err).Msg("card source unavailable")
		http.Error(w, `{"error":"card_source_unavailable"}`, http.StatusBadGateway)
	default:
		log.Error().Err(err).Msg("unhandled game error")
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
	}
}
