package bot

import (
	"fmt"
	"strings"

	"prisonjack/internal/game"
	"prisonjack/internal/history"
)

func playerName(i int) string {
	return fmt.Sprintf("Player %d", i+1)
}

func formatYears(n int) string {
	if n == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", n)
}

func formatSeat(i int, p game.PlayerState) string {
	line := fmt.Sprintf("%s: %s", playerName(i), formatYears(p.Score))
	if p.Status != game.StatusPlaying {
		line += fmt.Sprintf(" (%s)", strings.ToUpper(p.Status.String()))
	}
	return line
}

func formatBoard(s game.State) string {
	var sb strings.Builder
	sb.WriteString("⚖️ Prison Blackjack ⚖️\n")
	sb.WriteString(fmt.Sprintf("🎯 Target: %s\n\n", formatYears(game.TargetScore)))

	for i, p := range s.Players {
		sb.WriteString(formatSeat(i, p))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if s.Phase == game.PhaseFinished {
		sb.WriteString("🏁 Game over")
	} else {
		sb.WriteString(fmt.Sprintf("👉 Turn: %s\n🃏 Cards left: %d", playerName(s.Current), s.Remaining()))
	}
	return sb.String()
}

// formatReveal is shown as a callback alert, like a verdict popup.
func formatReveal(p game.CardRevealedPayload) string {
	return fmt.Sprintf("%s\n\nSentence: %s", p.Entry.Name, formatYears(p.Entry.Years))
}

func formatBust(p game.PlayerBustedPayload) string {
	return fmt.Sprintf("💥 Bust! %s went over %s with %s.",
		playerName(p.Player), formatYears(game.TargetScore), formatYears(p.Score))
}

func formatResult(r game.Result) string {
	var verdict string
	switch {
	case r.BothBusted:
		verdict = "💥 Both players busted. It's a tie!"
	case r.IsTie():
		verdict = "🤝 It's a tie!"
	default:
		verdict = fmt.Sprintf("🎉 %s wins!", playerName(r.Winner))
	}

	return fmt.Sprintf("🏁 Result\n%s: %s\n%s: %s\n\n%s",
		playerName(0), formatYears(r.Scores[0]),
		playerName(1), formatYears(r.Scores[1]),
		verdict)
}

func formatStats(s *history.Summary, recent []history.Match) string {
	if s.Games == 0 {
		return "🏆 No games finished at this table yet!"
	}

	var sb strings.Builder
	sb.WriteString("🏆 Table record\n\n")
	sb.WriteString(fmt.Sprintf("🎮 Games: %d\n", s.Games))
	for i := 0; i < game.Players; i++ {
		sb.WriteString(fmt.Sprintf("✅ %s wins: %d (busts: %d)\n", playerName(i), s.Wins[i], s.Busts[i]))
	}
	sb.WriteString(fmt.Sprintf("🤝 Ties: %d\n", s.Ties))

	if len(recent) > 0 {
		sb.WriteString("\n🕘 Recent:\n")
		for _, m := range recent {
			outcome := "tie"
			if !m.IsTie() {
				outcome = playerName(m.Winner)
			}
			sb.WriteString(fmt.Sprintf("• %d – %d · %s\n", m.Scores[0], m.Scores[1], outcome))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}
