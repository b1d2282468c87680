// internal/store/sqlite.go
//
// SQLite-backed Store. One row per game name, shape
// (game_name UNIQUE, deck_id, games_won, games_lost, user_id, anonymous_id).
// Driver errors are wrapped as ErrUnavailable; a missing row is ErrNotFound.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/robalobadob/blackjack/go-server/internal/blackjack"
)

// SQLite implements Store over a *sql.DB opened by the caller (which is
// also responsible for running migrations).
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an opened database handle.
func NewSQLite(db *sql.DB) *SQLite { return &SQLite{db: db} }

func (s *SQLite) Find(ctx context.Context, name string) (*Game, error) {
	var g Game
	var userID, anonID sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT game_name, deck_id, games_won, games_lost, user_id, anonymous_id
		 FROM games WHERE game_name=?`, name,
	).Scan(&g.Name, &g.DeckID, &g.GamesWon, &g.GamesLost, &userID, &anonID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find %s: %v", ErrUnavailable, name, err)
	}
	g.UserID, g.AnonymousID = userID.String, anonID.String
	return &g, nil
}

func (s *SQLite) Create(ctx context.Context, g *Game) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games (game_name, deck_id, games_won, games_lost, user_id, anonymous_id)
		 VALUES (?,?,0,0,?,?)`,
		g.Name, g.DeckID, nullable(g.UserID), nullable(g.AnonymousID))
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrUnavailable, g.Name, err)
	}
	return nil
}

func (s *SQLite) Update(ctx context.Context, name, deckID string, winner blackjack.Role) error {
	col := "games_lost"
	if winner == blackjack.RolePlayer {
		col = "games_won"
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE games SET deck_id=?, `+col+` = `+col+` + 1 WHERE game_name=?`,
		deckID, name)
	if err != nil {
		return fmt.Errorf("%w: update %s: %v", ErrUnavailable, name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) ClaimAnonGames(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" {
		return nil
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE games SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`,
		userID, anonID); err != nil {
		return fmt.Errorf("%w: claim anon games: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *SQLite) FindByOwner(ctx context.Context, userID string) ([]*Game, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_name, deck_id, games_won, games_lost
		 FROM games WHERE user_id=? ORDER BY rowid DESC LIMIT 50`, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: games by owner: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	out := []*Game{}
	for rows.Next() {
		var g Game
		if err := rows.Scan(&g.Name, &g.DeckID, &g.GamesWon, &g.GamesLost); err != nil {
			return nil, fmt.Errorf("%w: scan game row: %v", ErrUnavailable, err)
		}
		g.UserID = userID
		out = append(out, &g)
	}
	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
