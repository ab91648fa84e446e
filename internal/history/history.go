package history

import (
	"database/sql"
	"fmt"
	"time"

	"prisonjack/internal/game"

	"github.com/google/uuid"
)

// Match is one finished game at a chat's table.
type Match struct {
	ID         string
	ChatID     int64
	Scores     [game.Players]int
	Statuses   [game.Players]string
	Winner     int
	BothBusted bool
	FinishedAt time.Time
}

func (m *Match) IsTie() bool {
	return m.Winner == game.NoWinner
}

type Summary struct {
	ChatID int64
	Games  int
	Wins   [game.Players]int
	Ties   int
	Busts  [game.Players]int
}

type Repository interface {
	Record(m *Match) error
	Summary(chatID int64) (*Summary, error)
	Recent(chatID int64, limit int) ([]Match, error)
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// FromResult builds the record of a finished game.
func FromResult(chatID int64, r game.Result, s game.State) *Match {
	m := &Match{
		ChatID:     chatID,
		Scores:     r.Scores,
		Winner:     r.Winner,
		BothBusted: r.BothBusted,
		FinishedAt: time.Now().UTC(),
	}
	for i, p := range s.Players {
		m.Statuses[i] = p.Status.String()
	}
	return m
}

func (r *SQLiteRepository) Record(m *Match) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.FinishedAt.IsZero() {
		m.FinishedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(`
		INSERT INTO matches (id, chat_id, p1_score, p2_score, p1_status, p2_status, winner, both_busted, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.ChatID, m.Scores[0], m.Scores[1], m.Statuses[0], m.Statuses[1],
		m.Winner, m.BothBusted, m.FinishedAt)

	if err != nil {
		return fmt.Errorf("failed to record match: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Summary(chatID int64) (*Summary, error) {
	s := &Summary{ChatID: chatID}

	err := r.db.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(winner = 0), 0),
			COALESCE(SUM(winner = 1), 0),
			COALESCE(SUM(winner = -1), 0),
			COALESCE(SUM(p1_status = 'bust'), 0),
			COALESCE(SUM(p2_status = 'bust'), 0)
		FROM matches WHERE chat_id = ?
	`, chatID).Scan(
		&s.Games, &s.Wins[0], &s.Wins[1],
		&s.Ties, &s.Busts[0], &s.Busts[1],
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load summary: %w", err)
	}

	return s, nil
}

func (r *SQLiteRepository) Recent(chatID int64, limit int) ([]Match, error) {
	rows, err := r.db.Query(`
		SELECT id, p1_score, p2_score, p1_status, p2_status, winner, both_busted, finished_at
		FROM matches
		WHERE chat_id = ?
		ORDER BY finished_at DESC, rowid DESC
		LIMIT ?
	`, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		m := Match{ChatID: chatID}
		if err := rows.Scan(&m.ID, &m.Scores[0], &m.Scores[1], &m.Statuses[0], &m.Statuses[1],
			&m.Winner, &m.BothBusted, &m.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}

	return matches, rows.Err()
}
