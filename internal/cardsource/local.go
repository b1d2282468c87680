// internal/cardsource/local.go
//
// In-process card source. Used when CARD_SOURCE_URL is unset (offline
// development) and throughout the tests. Decks are full shuffled 52-card
// decks keyed by a uuid; piles live alongside the deck they were drawn
// from. Concurrency-safe via RWMutex.

package cardsource

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/robalobadob/blackjack/go-server/internal/blackjack"
)

var (
	localValues = []string{"ACE", "2", "3", "4", "5", "6", "7", "8", "9", "0", "JACK", "QUEEN", "KING"}
	localSuits  = []string{"SPADES", "HEARTS", "DIAMONDS", "CLUBS"}
)

type localDeck struct {
	remaining []Card
	piles     map[blackjack.Role][]Card
}

// Local is an in-memory Source implementation.
type Local struct {
	mu    sync.RWMutex
	rng   *rand.Rand
	decks map[string]*localDeck
}

// NewLocal constructs a Local source. seed fixes the shuffle order for
// tests; pass 0 for a randomly seeded source.
func NewLocal(seed int64) *Local {
	if seed == 0 {
		seed = rand.Int63()
	}
	return &Local{
		rng:   rand.New(rand.NewSource(seed)),
		decks: make(map[string]*localDeck),
	}
}

func cardCode(value, suit string) string {
	v := value
	if v == "10" {
		v = "0"
	}
	if len(v) > 1 {
		v = v[:1]
	}
	return v + suit[:1]
}

// NewDeck shuffles a fresh 52-card deck and returns its uuid reference.
func (l *Local) NewDeck(ctx context.Context) (string, error) {
	cards := make([]Card, 0, 52)
	for _, s := range localSuits {
		for _, v := range localValues {
			cards = append(cards, Card{Code: cardCode(v, s), Value: v, Suit: s})
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	id := uuid.NewString()
	l.decks[id] = &localDeck{remaining: cards, piles: make(map[blackjack.Role][]Card)}
	return id, nil
}

// DrawOne pops the top card of the deck.
func (l *Local) DrawOne(ctx context.Context, deckID string) (Card, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	d, ok := l.decks[deckID]
	if !ok {
		return Card{}, fmt.Errorf("%w: unknown deck %s", ErrUnavailable, deckID)
	}
	if len(d.remaining) == 0 {
		return Card{}, fmt.Errorf("%w: deck %s exhausted", ErrUnavailable, deckID)
	}
	card := d.remaining[0]
	d.remaining = d.remaining[1:]
	return card, nil
}

// AddToPile appends a drawn card to the role's pile.
func (l *Local) AddToPile(ctx context.Context, deckID string, role blackjack.Role, card Card) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	d, ok := l.decks[deckID]
	if !ok {
		return fmt.Errorf("%w: unknown deck %s", ErrUnavailable, deckID)
	}
	d.piles[role] = append(d.piles[role], card)
	return nil
}

// ListPile returns a copy of the role's pile in draw order.
func (l *Local) ListPile(ctx context.Context, deckID string, role blackjack.Role) ([]Card, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	d, ok := l.decks[deckID]
	if !ok {
		return nil, fmt.Errorf("%w: unknown deck %s", ErrUnavailable, deckID)
	}
	return append([]Card(nil), d.piles[role]...), nil
}
