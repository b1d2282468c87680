// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used in tests and when durability is not required.
//
// Characteristics:
//   - Stores *Game rows keyed by name in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"

	"github.com/robalobadob/blackjack/go-server/internal/blackjack"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex // guards games map
	games map[string]*Game
	order []string // insertion order, newest last
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*Game)}
}

func (m *memory) Find(ctx context.Context, name string) (*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[name]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Create(ctx context.Context, g *Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *g
	cp.GamesWon, cp.GamesLost = 0, 0
	m.games[g.Name] = &cp
	m.order = append(m.order, g.Name)
	return nil
}

func (m *memory) Update(ctx context.Context, name, deckID string, winner blackjack.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[name]
	if !ok {
		return ErrNotFound
	}
	g.DeckID = deckID
	if winner == blackjack.RolePlayer {
		g.GamesWon++
	} else {
		g.GamesLost++
	}
	return nil
}

func (m *memory) ClaimAnonGames(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.games {
		if g.AnonymousID == anonID {
			g.UserID = userID
			g.AnonymousID = ""
		}
	}
	return nil
}

func (m *memory) FindByOwner(ctx context.Context, userID string) ([]*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*Game{}
	for i := len(m.order) - 1; i >= 0; i-- {
		if g, ok := m.games[m.order[i]]; ok && g.UserID == userID {
			cp := *g
			out = append(out, &cp)
		}
	}
	return out, nil
}
