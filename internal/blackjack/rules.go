// internal/blackjack/rules.go
//
// House rules and round resolution. The stand threshold and the
// dealer-wins-ties behavior are table configuration, not constants baked
// into the state machine.

package blackjack

// Rules captures the configurable house rules.
type Rules struct {
	// DealerStandMin is the score at which the dealer stops drawing.
	DealerStandMin int
	// TieGoesToDealer resolves equal, non-busted totals as a dealer win.
	TieGoesToDealer bool
}

// DefaultRules returns the classic table: dealer draws to 16, stands on
// 17, and pushes resolve in the house's favor.
func DefaultRules() Rules {
	return Rules{DealerStandMin: 17, TieGoesToDealer: true}
}

// DealerDraws reports whether the dealer keeps drawing at the given score.
func (r Rules) DealerDraws(dealerScore int) bool {
	return dealerScore < r.DealerStandMin
}

// Resolve decides a finished round. The dealer wins unless it busts or
// finishes strictly below the player; with TieGoesToDealer unset, a push
// goes to the player instead.
//
// Callers must have already handled a player bust (the round ends before
// the dealer draws in that case).
func (r Rules) Resolve(playerScore, dealerScore int) Role {
	if Bust(dealerScore) {
		return RolePlayer
	}
	if dealerScore < playerScore {
		return RolePlayer
	}
	if dealerScore == playerScore && !r.TieGoesToDealer {
		return RolePlayer
	}
	return RoleDealer
}
