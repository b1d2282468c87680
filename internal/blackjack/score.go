// internal/blackjack/score.go
//
// Pure hand scoring. Score is the only arithmetic in the game with real
// semantics: aces count 11 until the hand would bust, then demote to 1
// one at a time. The demotion loop makes the result independent of card
// order even though the scan is sequential.

package blackjack

// Score totals a hand. Empty hands score 0. The returned total is the
// highest value ≤ 21 reachable for the hand's multiset of ranks, or the
// minimum possible total when every choice busts.
func Score(hand []Rank) int {
	total, aces := 0, 0
	for _, r := range hand {
		total += r.Points()
		if r == Ace {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// ScoreValues totals a hand given oracle wire values ("2".."10", "0",
// "KING", ...). Unknown values are skipped; the proxy validates cards on
// the way in, so a skip here indicates a corrupt pile, not user input.
func ScoreValues(values []string) int {
	hand := make([]Rank, 0, len(values))
	for _, v := range values {
		if r, err := ParseRank(v); err == nil {
			hand = append(hand, r)
		}
	}
	return Score(hand)
}

// Bust reports whether a total exceeds 21.
func Bust(total int) bool { return total > 21 }
