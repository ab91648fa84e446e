package history

import (
	"testing"
	"time"

	"prisonjack/internal/catalog"
	"prisonjack/internal/database"
	"prisonjack/internal/game"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.DB)
}

func TestRecordAssignsID(t *testing.T) {
	repo := newTestRepo(t)

	m := &Match{ChatID: 1, Scores: [game.Players]int{10, 13}, Statuses: [game.Players]string{"stood", "stood"}, Winner: 1}
	if err := repo.Record(m); err != nil {
		t.Fatalf("record error: %v", err)
	}
	if m.ID == "" {
		t.Fatalf("record did not assign an id")
	}
	if m.FinishedAt.IsZero() {
		t.Fatalf("record did not stamp finished_at")
	}
}

func TestSummaryCountsPerChat(t *testing.T) {
	repo := newTestRepo(t)

	matches := []*Match{
		{ChatID: 1, Scores: [game.Players]int{10, 13}, Statuses: [game.Players]string{"stood", "stood"}, Winner: 1},
		{ChatID: 1, Scores: [game.Players]int{25, 0}, Statuses: [game.Players]string{"bust", "stood"}, Winner: 1},
		{ChatID: 1, Scores: [game.Players]int{15, 15}, Statuses: [game.Players]string{"stood", "stood"}, Winner: game.NoWinner},
		{ChatID: 1, Scores: [game.Players]int{20, 22}, Statuses: [game.Players]string{"stood", "bust"}, Winner: 0},
		{ChatID: 2, Scores: [game.Players]int{18, 3}, Statuses: [game.Players]string{"stood", "stood"}, Winner: 0},
	}
	for _, m := range matches {
		if err := repo.Record(m); err != nil {
			t.Fatalf("record error: %v", err)
		}
	}

	s, err := repo.Summary(1)
	if err != nil {
		t.Fatalf("summary error: %v", err)
	}
	if s.Games != 4 {
		t.Fatalf("games = %d, want 4", s.Games)
	}
	if s.Wins != [game.Players]int{1, 2} {
		t.Fatalf("wins = %v, want [1 2]", s.Wins)
	}
	if s.Ties != 1 {
		t.Fatalf("ties = %d, want 1", s.Ties)
	}
	if s.Busts != [game.Players]int{1, 1} {
		t.Fatalf("busts = %v, want [1 1]", s.Busts)
	}

	empty, err := repo.Summary(99)
	if err != nil {
		t.Fatalf("summary error: %v", err)
	}
	if empty.Games != 0 {
		t.Fatalf("games = %d, want 0", empty.Games)
	}
}

func TestRecentNewestFirst(t *testing.T) {
	repo := newTestRepo(t)

	base := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		m := &Match{
			ChatID:     5,
			Scores:     [game.Players]int{i, 0},
			Statuses:   [game.Players]string{"stood", "stood"},
			Winner:     0,
			FinishedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Record(m); err != nil {
			t.Fatalf("record error: %v", err)
		}
	}

	recent, err := repo.Recent(5, 3)
	if err != nil {
		t.Fatalf("recent error: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("len = %d, want 3", len(recent))
	}
	for i, want := range []int{3, 2, 1} {
		if recent[i].Scores[0] != want {
			t.Fatalf("recent[%d] score = %d, want %d", i, recent[i].Scores[0], want)
		}
	}
	if !recent[0].FinishedAt.Equal(base.Add(3 * time.Minute)) {
		t.Fatalf("finished_at = %v", recent[0].FinishedAt)
	}
}

func TestFromResult(t *testing.T) {
	g, _, err := game.NewGame([]catalog.Entry{{Name: "Treason", Years: 20}, {Name: "Arson", Years: 10}}, nil)
	if err != nil {
		t.Fatalf("new game error: %v", err)
	}
	g.RevealCard(0)
	evs, err := g.RevealCard(1)
	if err != nil {
		t.Fatalf("reveal error: %v", err)
	}

	var result *game.Result
	for _, ev := range evs {
		if ev.Kind == game.EventGameFinished {
			r := ev.Payload.(game.Result)
			result = &r
		}
	}
	if result == nil {
		t.Fatalf("expected game to finish on bust")
	}

	m := FromResult(9, *result, g.State())
	if m.ChatID != 9 || m.Winner != 1 || m.Scores != [game.Players]int{30, 0} {
		t.Fatalf("match = %+v", m)
	}
	if m.Statuses != [game.Players]string{"bust", "stood"} {
		t.Fatalf("statuses = %v", m.Statuses)
	}
	if m.IsTie() {
		t.Fatalf("bust result should not be a tie")
	}
}
