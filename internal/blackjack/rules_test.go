package blackjack

import "testing"

func TestResolve(t *testing.T) {
	rules := DefaultRules()
	cases := []struct {
		name           string
		player, dealer int
		want           Role
	}{
		{"dealer busts", 18, 22, RolePlayer},
		{"dealer under player", 20, 18, RolePlayer},
		{"dealer over player", 18, 20, RoleDealer},
		{"push goes to dealer", 19, 19, RoleDealer},
		{"push at twenty-one goes to dealer", 21, 21, RoleDealer},
		{"dealer seventeen beats sixteen", 16, 17, RoleDealer},
	}
	for _, c := range cases {
		if got := rules.Resolve(c.player, c.dealer); got != c.want {
			t.Errorf("%s: Resolve(%d, %d) = %s, want %s", c.name, c.player, c.dealer, got, c.want)
		}
	}
}

func TestResolvePlayerFriendlyPush(t *testing.T) {
	rules := Rules{DealerStandMin: 17, TieGoesToDealer: false}
	if got := rules.Resolve(19, 19); got != RolePlayer {
		t.Fatalf("push with TieGoesToDealer=false = %s, want player", got)
	}
}

func TestDealerDraws(t *testing.T) {
	rules := DefaultRules()
	for score := 0; score <= 30; score++ {
		want := score < 17
		if got := rules.DealerDraws(score); got != want {
			t.Errorf("DealerDraws(%d) = %v, want %v", score, got, want)
		}
	}
}

func TestParseRole(t *testing.T) {
	if r, err := ParseRole("Player"); err != nil || r != RolePlayer {
		t.Fatalf("ParseRole(Player) = %v, %v", r, err)
	}
	if r, err := ParseRole("dealer"); err != nil || r != RoleDealer {
		t.Fatalf("ParseRole(dealer) = %v, %v", r, err)
	}
	if _, err := ParseRole("house"); err == nil {
		t.Fatal("ParseRole(house): expected error")
	}
}
