package game

import (
	"context"
	"errors"
	"testing"

	"github.com/robalobadob/blackjack/go-server/internal/blackjack"
	"github.com/robalobadob/blackjack/go-server/internal/cardsource"
)

func card(value string) cardsource.Card {
	return cardsource.Card{Code: value + "S", Value: value, Suit: "SPADES"}
}

func pileOf(values ...string) Pile {
	p := make(Pile, 0, len(values))
	for _, v := range values {
		p = append(p, card(v))
	}
	return p
}

// fakeBackend serves scripted draws and records calls.
type fakeBackend struct {
	snap        Snapshot
	playerDraws []cardsource.Card
	dealerDraws []cardsource.Card
	player      Pile
	dealer      Pile
	endSnap     *Snapshot
	endWinner   blackjack.Role
	endCalls    int
	failDraw    bool
	failAfter   int // fail once this many draws have succeeded
	draws       int
}

var errBackend = errors.New("backend down")

func (f *fakeBackend) GetOrCreate(ctx context.Context, name string) (*Snapshot, error) {
	cp := f.snap
	return &cp, nil
}

func (f *fakeBackend) Draw(ctx context.Context, deckID string, role blackjack.Role) (Pile, error) {
	if f.failDraw && f.draws >= f.failAfter {
		return nil, errBackend
	}
	f.draws++
	if role == blackjack.RolePlayer {
		f.player = append(f.player, f.playerDraws[0])
		f.playerDraws = f.playerDraws[1:]
		return append(Pile(nil), f.player...), nil
	}
	f.dealer = append(f.dealer, f.dealerDraws[0])
	f.dealerDraws = f.dealerDraws[1:]
	return append(Pile(nil), f.dealer...), nil
}

func (f *fakeBackend) EndGame(ctx context.Context, name string, winner blackjack.Role) (*Snapshot, error) {
	f.endCalls++
	f.endWinner = winner
	if f.endSnap == nil {
		return nil, errBackend
	}
	cp := *f.endSnap
	return &cp, nil
}

// recorder captures render/notify calls in order.
type recorder struct {
	events  []string // "render" / "outcome"
	views   []View
	winners []blackjack.Role
}

func (r *recorder) Render(v View) {
	r.events = append(r.events, "render")
	r.views = append(r.views, v)
}

func (r *recorder) Outcome(w blackjack.Role, v View) {
	r.events = append(r.events, "outcome")
	r.winners = append(r.winners, w)
}

func newTestSession(fb *fakeBackend) (*Session, *recorder) {
	rec := &recorder{}
	s := NewSession(fb, blackjack.DefaultRules(), rec, rec)
	return s, rec
}

func opening(player, dealer Pile) Snapshot {
	return Snapshot{GameName: "tester", DeckID: "deck-1", PlayerPile: player, DealerPile: dealer}
}

func TestEnterComputesScores(t *testing.T) {
	ctx := context.Background()
	fb := &fakeBackend{snap: opening(pileOf("KING", "ACE"), pileOf("9", "5"))}
	s, rec := newTestSession(fb)

	if err := s.Enter(ctx, "tester"); err != nil {
		t.Fatalf("enter: %v", err)
	}
	if s.State() != PlayerTurn {
		t.Fatalf("state = %s", s.State())
	}
	v := s.View()
	if v.PlayerScore != 21 || v.DealerScore != 14 {
		t.Fatalf("scores = %d/%d", v.PlayerScore, v.DealerScore)
	}
	if len(rec.events) != 1 || rec.events[0] != "render" {
		t.Fatalf("events = %v", rec.events)
	}
}

func TestEnterOnlyFromAwaitingEntry(t *testing.T) {
	ctx := context.Background()
	fb := &fakeBackend{snap: opening(pileOf("2", "3"), pileOf("4", "5"))}
	s, _ := newTestSession(fb)
	_ = s.Enter(ctx, "tester")
	if err := s.Enter(ctx, "tester"); !errors.Is(err, ErrWrongState) {
		t.Fatalf("double enter: %v", err)
	}
}

func TestHitKeepsPlaying(t *testing.T) {
	ctx := context.Background()
	fb := &fakeBackend{
		snap:        opening(pileOf("2", "3"), pileOf("10", "9")),
		player:      pileOf("2", "3"),
		playerDraws: []cardsource.Card{card("5")},
	}
	s, rec := newTestSession(fb)
	_ = s.Enter(ctx, "tester")

	if err := s.Hit(ctx); err != nil {
		t.Fatalf("hit: %v", err)
	}
	if s.State() != PlayerTurn {
		t.Fatalf("state = %s", s.State())
	}
	if v := s.View(); v.PlayerScore != 10 || len(v.Snapshot.PlayerPile) != 3 {
		t.Fatalf("view = %+v", v)
	}
	if len(rec.winners) != 0 {
		t.Fatalf("unexpected outcome %v", rec.winners)
	}
}

func TestHitBustNotifiesAfterRender(t *testing.T) {
	ctx := context.Background()
	fb := &fakeBackend{
		snap:        opening(pileOf("KING", "9"), pileOf("10", "9")),
		player:      pileOf("KING", "9"),
		playerDraws: []cardsource.Card{card("5")},
	}
	s, rec := newTestSession(fb)
	_ = s.Enter(ctx, "tester")
	if err := s.Hit(ctx); err != nil {
		t.Fatalf("hit: %v", err)
	}
	if s.State() != RoundResolved {
		t.Fatalf("state = %s", s.State())
	}
	if w, ok := s.Winner(); !ok || w != blackjack.RoleDealer {
		t.Fatalf("winner = %v %v", w, ok)
	}
	// The bust card must be rendered before the outcome fires.
	last := rec.events[len(rec.events)-1]
	prev := rec.events[len(rec.events)-2]
	if last != "outcome" || prev != "render" {
		t.Fatalf("events = %v", rec.events)
	}
	if len(rec.winners) != 1 {
		t.Fatalf("outcome fired %d times", len(rec.winners))
	}
}

func TestHitToTwentyOneWinsRound(t *testing.T) {
	ctx := context.Background()
	fb := &fakeBackend{
		snap:        opening(pileOf("KING", "6"), pileOf("10", "9")),
		player:      pileOf("KING", "6"),
		playerDraws: []cardsource.Card{card("5")},
	}
	s, rec := newTestSession(fb)
	_ = s.Enter(ctx, "tester")
	if err := s.Hit(ctx); err != nil {
		t.Fatalf("hit: %v", err)
	}
	if w, ok := s.Winner(); !ok || w != blackjack.RolePlayer {
		t.Fatalf("winner = %v %v", w, ok)
	}
	if len(rec.winners) != 1 || rec.winners[0] != blackjack.RolePlayer {
		t.Fatalf("winners = %v", rec.winners)
	}
}

func TestStandDealerDrawsToThreshold(t *testing.T) {
	ctx := context.Background()
	fb := &fakeBackend{
		snap:        opening(pileOf("KING", "9"), pileOf("2", "3")),
		dealer:      pileOf("2", "3"),
		dealerDraws: []cardsource.Card{card("4"), card("5"), card("6")}, // 5→9→14→20
	}
	s, rec := newTestSession(fb)
	_ = s.Enter(ctx, "tester")
	if err := s.Stand(ctx); err != nil {
		t.Fatalf("stand: %v", err)
	}
	if s.State() != RoundResolved {
		t.Fatalf("state = %s", s.State())
	}
	v := s.View()
	if v.DealerScore < 17 {
		t.Fatalf("dealer stopped at %d", v.DealerScore)
	}
	if v.DealerScore != 20 || len(v.Snapshot.DealerPile) != 5 {
		t.Fatalf("view = %+v", v)
	}
	// Dealer 20 beats player 19.
	if w, _ := s.Winner(); w != blackjack.RoleDealer {
		t.Fatalf("winner = %v", w)
	}
	// One render per dealer card, each before the next draw completes.
	renders := 0
	for _, e := range rec.events {
		if e == "render" {
			renders++
		}
	}
	if renders < 4 { // enter + 3 dealer cards (+ resolve render)
		t.Fatalf("renders = %d, events = %v", renders, rec.events)
	}
}

func TestStandTieGoesToDealer(t *testing.T) {
	ctx := context.Background()
	fb := &fakeBackend{
		snap:        opening(pileOf("KING", "8"), pileOf("10", "4")),
		dealer:      pileOf("10", "4"),
		dealerDraws: []cardsource.Card{card("4")}, // 14 → 18, ties player's 18
	}
	s, _ := newTestSession(fb)
	_ = s.Enter(ctx, "tester")
	if err := s.Stand(ctx); err != nil {
		t.Fatalf("stand: %v", err)
	}
	if w, _ := s.Winner(); w != blackjack.RoleDealer {
		t.Fatalf("tie resolved to %v, want dealer", w)
	}
}

func TestStandDealerBustPlayerWins(t *testing.T) {
	ctx := context.Background()
	fb := &fakeBackend{
		snap:        opening(pileOf("2", "3"), pileOf("10", "6")),
		dealer:      pileOf("10", "6"),
		dealerDraws: []cardsource.Card{card("KING")}, // 16 → 26 bust
	}
	s, _ := newTestSession(fb)
	_ = s.Enter(ctx, "tester")
	if err := s.Stand(ctx); err != nil {
		t.Fatalf("stand: %v", err)
	}
	if w, _ := s.Winner(); w != blackjack.RolePlayer {
		t.Fatalf("winner = %v, want player after dealer bust", w)
	}
}

func TestHitFailureLeavesStateIntact(t *testing.T) {
	ctx := context.Background()
	fb := &fakeBackend{
		snap:     opening(pileOf("2", "3"), pileOf("10", "9")),
		player:   pileOf("2", "3"),
		failDraw: true,
	}
	s, rec := newTestSession(fb)
	_ = s.Enter(ctx, "tester")
	before := s.View()

	if err := s.Hit(ctx); !errors.Is(err, errBackend) {
		t.Fatalf("hit error = %v", err)
	}
	after := s.View()
	if after.State != before.State || after.PlayerScore != before.PlayerScore ||
		len(after.Snapshot.PlayerPile) != len(before.Snapshot.PlayerPile) {
		t.Fatalf("state mutated on failure: %+v vs %+v", after, before)
	}
	if len(rec.winners) != 0 {
		t.Fatalf("outcome fired on failure")
	}
}

func TestStandFailureMidLoopRestores(t *testing.T) {
	ctx := context.Background()
	fb := &fakeBackend{
		snap:        opening(pileOf("KING", "9"), pileOf("2", "3")),
		dealer:      pileOf("2", "3"),
		dealerDraws: []cardsource.Card{card("4"), card("5")},
		failDraw:    true,
		failAfter:   1, // one dealer card lands, then the backend dies
	}
	s, rec := newTestSession(fb)
	_ = s.Enter(ctx, "tester")
	before := s.View()

	if err := s.Stand(ctx); !errors.Is(err, errBackend) {
		t.Fatalf("stand error = %v", err)
	}
	after := s.View()
	if after.State != PlayerTurn {
		t.Fatalf("state = %s, want player_turn", after.State)
	}
	if len(after.Snapshot.DealerPile) != len(before.Snapshot.DealerPile) ||
		after.DealerScore != before.DealerScore {
		t.Fatalf("dealer pile not restored: %+v", after)
	}
	if len(rec.winners) != 0 {
		t.Fatalf("outcome fired on failure")
	}
}

func TestNextRoundReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	next := opening(pileOf("4", "5"), pileOf("6", "7"))
	next.DeckID = "deck-2"
	next.GamesWon = 1
	fb := &fakeBackend{
		snap:        opening(pileOf("KING", "6"), pileOf("10", "9")),
		player:      pileOf("KING", "6"),
		playerDraws: []cardsource.Card{card("5")}, // hit to 21, player wins
		endSnap:     &next,
	}
	s, rec := newTestSession(fb)
	_ = s.Enter(ctx, "tester")
	_ = s.Hit(ctx)
	if s.State() != RoundResolved {
		t.Fatalf("state = %s", s.State())
	}

	if err := s.NextRound(ctx); err != nil {
		t.Fatalf("next round: %v", err)
	}
	if fb.endCalls != 1 || fb.endWinner != blackjack.RolePlayer {
		t.Fatalf("end game calls = %d winner = %v", fb.endCalls, fb.endWinner)
	}
	v := s.View()
	if v.State != PlayerTurn || v.Snapshot.DeckID != "deck-2" || v.Snapshot.GamesWon != 1 {
		t.Fatalf("view = %+v", v)
	}
	if len(v.Snapshot.PlayerPile) != 2 || len(v.Snapshot.DealerPile) != 2 {
		t.Fatalf("piles not redealt: %+v", v.Snapshot)
	}
	if v.PlayerScore != 9 || v.DealerScore != 13 {
		t.Fatalf("scores = %d/%d", v.PlayerScore, v.DealerScore)
	}
	if len(rec.winners) != 1 {
		t.Fatalf("outcome count = %d, want exactly one per round", len(rec.winners))
	}
}

func TestNextRoundFailureKeepsResolvedState(t *testing.T) {
	ctx := context.Background()
	fb := &fakeBackend{
		snap:        opening(pileOf("KING", "9"), pileOf("10", "5")),
		player:      pileOf("KING", "9"),
		playerDraws: []cardsource.Card{card("5")}, // bust
		endSnap:     nil,                          // EndGame fails
	}
	s, _ := newTestSession(fb)
	_ = s.Enter(ctx, "tester")
	_ = s.Hit(ctx)
	winnerBefore, _ := s.Winner()

	if err := s.NextRound(ctx); !errors.Is(err, errBackend) {
		t.Fatalf("next round error = %v", err)
	}
	if s.State() != RoundResolved {
		t.Fatalf("state = %s, want round_resolved", s.State())
	}
	if w, ok := s.Winner(); !ok || w != winnerBefore {
		t.Fatalf("winner lost on failure: %v %v", w, ok)
	}
}

func TestActionGuards(t *testing.T) {
	ctx := context.Background()
	fb := &fakeBackend{snap: opening(pileOf("2", "3"), pileOf("4", "5"))}
	s, _ := newTestSession(fb)

	if err := s.Hit(ctx); !errors.Is(err, ErrWrongState) {
		t.Fatalf("hit before enter: %v", err)
	}
	if err := s.Stand(ctx); !errors.Is(err, ErrWrongState) {
		t.Fatalf("stand before enter: %v", err)
	}
	if err := s.NextRound(ctx); !errors.Is(err, ErrWrongState) {
		t.Fatalf("next round before enter: %v", err)
	}
}
