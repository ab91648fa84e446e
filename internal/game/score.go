package game

import "prisonjack/internal/catalog"

// TargetScore is the sentence players try to reach without going over.
const TargetScore = 21

func CalculateScore(entries []catalog.Entry) int {
	score := 0
	for _, e := range entries {
		score += e.Years
	}
	return score
}

func IsBust(score int) bool {
	return score > TargetScore
}

// Resolve decides the outcome for two closed hands. Busting loses outright;
// two busts are a tie flagged BothBusted rather than a score comparison.
func Resolve(players [Players]PlayerState) Result {
	r := Result{
		Winner: NoWinner,
		Scores: [Players]int{players[0].Score, players[1].Score},
	}

	aBust := players[0].Status == StatusBusted
	bBust := players[1].Status == StatusBusted

	switch {
	case aBust && bBust:
		r.BothBusted = true
	case aBust:
		r.Winner = 1
	case bBust:
		r.Winner = 0
	case r.Scores[0] > r.Scores[1]:
		r.Winner = 0
	case r.Scores[1] > r.Scores[0]:
		r.Winner = 1
	}

	return r
}
