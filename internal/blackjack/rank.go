// internal/blackjack/rank.go
//
// Card rank vocabulary for the blackjack engine.
// Ranks form a closed set: Two..Ten, Jack, Queen, King, Ace. The external
// card oracle transmits tens with a value of "0" (a quirk of its wire
// format); ParseRank folds that case into Ten so the rest of the engine
// never sees it.

package blackjack

import (
	"fmt"
	"strconv"
	"strings"
)

// Rank identifies one of the thirteen card ranks.
type Rank int8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Role identifies which hand a card or action belongs to.
type Role string

const (
	RolePlayer Role = "player"
	RoleDealer Role = "dealer"
)

// ParseRole validates a role string from a URL or payload.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RolePlayer:
		return RolePlayer, nil
	case RoleDealer:
		return RoleDealer, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// ParseRank converts an oracle card value into a Rank.
// Accepts "2".."10", "0" (the oracle's encoding of ten), and the named
// face values "JACK", "QUEEN", "KING", "ACE" (case-insensitive).
func ParseRank(value string) (Rank, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "JACK":
		return Jack, nil
	case "QUEEN":
		return Queen, nil
	case "KING":
		return King, nil
	case "ACE":
		return Ace, nil
	case "0", "10":
		return Ten, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 2 || n > 10 {
		return 0, fmt.Errorf("unknown card value %q", value)
	}
	return Rank(n), nil
}

// Points reports the rank's base point value: face value for Two..Ten,
// 10 for court cards, 11 for a soft Ace. Ace demotion to 1 happens in
// Score, not here.
func (r Rank) Points() int {
	switch {
	case r >= Two && r <= Ten:
		return int(r)
	case r == Jack || r == Queen || r == King:
		return 10
	case r == Ace:
		return 11
	}
	return 0
}

// String renders the rank the way the oracle transmits it ("2".."10",
// "JACK", ...), which keeps logs consistent with wire payloads.
func (r Rank) String() string {
	switch r {
	case Jack:
		return "JACK"
	case Queen:
		return "QUEEN"
	case King:
		return "KING"
	case Ace:
		return "ACE"
	}
	if r >= Two && r <= Ten {
		return strconv.Itoa(int(r))
	}
	return fmt.Sprintf("Rank(%d)", int8(r))
}
