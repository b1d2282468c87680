// cmd/blackjack-cli/main.go
//
// Interactive terminal client for the blackjack server. Drives a
// game.Session over HTTP and renders each state change with pterm.

package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/robalobadob/blackjack/go-server/internal/blackjack"
	"github.com/robalobadob/blackjack/go-server/internal/client"
	"github.com/robalobadob/blackjack/go-server/internal/game"
)

var suitSymbols = map[string]string{
	"SPADES":   "♠",
	"HEARTS":   "♥",
	"DIAMONDS": "♦",
	"CLUBS":    "♣",
}

func formatPile(p game.Pile) string {
	if len(p) == 0 {
		return pterm.Gray("—")
	}
	out := make([]string, len(p))
	for i, c := range p {
		v := c.Value
		switch v {
		case "0":
			v = "10"
		case "JACK", "QUEEN", "KING", "ACE":
			v = v[:1]
		}
		out[i] = v + suitSymbols[c.Suit]
	}
	return strings.Join(out, "  ")
}

// termUI renders session views and announces round outcomes.
type termUI struct{}

func (termUI) Render(v game.View) {
	box := pterm.DefaultBox.WithLeftPadding(2).WithRightPadding(2)
	dealer := box.WithTitle("Dealer " + pterm.Sprintf("(%d)", v.DealerScore)).
		Sprint(formatPile(v.Snapshot.DealerPile))
	player := box.WithTitle("You " + pterm.Sprintf("(%d)", v.PlayerScore)).
		Sprint(formatPile(v.Snapshot.PlayerPile))
	panels := pterm.Panels{
		{{Data: dealer}},
		{{Data: player}},
	}
	_ = pterm.DefaultPanel.WithPanels(panels).Render()
	pterm.Printfln("Won %d · Lost %d", v.Snapshot.GamesWon, v.Snapshot.GamesLost)
}

func (termUI) Outcome(winner blackjack.Role, v game.View) {
	if winner == blackjack.RolePlayer {
		pterm.Success.Printfln("You win this round! (%d vs %d)", v.PlayerScore, v.DealerScore)
	} else {
		pterm.Error.Printfln("Dealer takes it. (%d vs %d)", v.DealerScore, v.PlayerScore)
	}
}

func main() {
	server := flag.String("server", "http://localhost:5185", "blackjack server base URL")
	flag.Parse()
	ctx := context.Background()

	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Black", pterm.FgLightWhite.ToStyle()),
		putils.LettersFromStringWithStyle("jack", pterm.FgRed.ToStyle()),
	).Srender()
	if err == nil {
		pterm.Print(title)
	}

	name, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Enter a game name").Show()
	name = strings.TrimSpace(name)
	if name == "" {
		pterm.Error.Println("a game name is required")
		os.Exit(1)
	}

	ui := termUI{}
	s := game.NewSession(client.New(*server, nil), blackjack.DefaultRules(), ui, ui)
	if err := s.Enter(ctx, name); err != nil {
		pterm.Error.Printfln("could not join game: %v", err)
		os.Exit(1)
	}

	for {
		switch s.State() {
		case game.PlayerTurn:
			action, _ := pterm.DefaultInteractiveSelect.
				WithOptions([]string{"Hit", "Stand", "Quit"}).
				Show("Your move")
			switch action {
			case "Hit":
				if err := s.Hit(ctx); err != nil {
					pterm.Error.Printfln("hit failed: %v", err)
				}
			case "Stand":
				if err := s.Stand(ctx); err != nil {
					pterm.Error.Printfln("stand failed: %v", err)
				}
			default:
				return
			}
		case game.RoundResolved:
			again, _ := pterm.DefaultInteractiveConfirm.
				WithDefaultValue(true).
				Show("Play another round?")
			if !again {
				return
			}
			if err := s.NextRound(ctx); err != nil {
				pterm.Error.Printfln("could not start next round: %v", err)
				return
			}
		default:
			return
		}
	}
}
