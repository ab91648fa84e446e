package game

import (
	"errors"
	"sync"

	"prisonjack/internal/catalog"
)

// Players is fixed: the table always seats two.
const Players = 2

// NoWinner marks a tied Result.
const NoWinner = -1

// Status is where a seat stands in the current game.
type Status int

const (
	StatusPlaying Status = iota
	StatusStood
	StatusBusted
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusStood:
		return "stood"
	case StatusBusted:
		return "bust"
	default:
		return "unknown"
	}
}

// Phase is InProgress until winner determination runs.
type Phase int

const (
	PhaseInProgress Phase = iota
	PhaseFinished
)

func (p Phase) String() string {
	if p == PhaseFinished {
		return "finished"
	}
	return "in_progress"
}

// PlayerState is one seat's sentence. Cards lists the entries the player
// revealed, in order.
type PlayerState struct {
	Score  int
	Status Status
	Cards  []catalog.Entry
}

// Result is the outcome of a finished game. Winner is a seat index or
// NoWinner.
type Result struct {
	Winner     int
	Scores     [Players]int
	BothBusted bool
}

func (r Result) IsTie() bool {
	return r.Winner == NoWinner
}

// State is a snapshot of a game. It shares no memory with the Game.
type State struct {
	Cards   []Card
	Players [Players]PlayerState
	Current int
	Phase   Phase
	Result  *Result
}

// RevealedCount counts face-up cards.
func (s State) RevealedCount() int {
	n := 0
	for _, c := range s.Cards {
		if c.Revealed {
			n++
		}
	}
	return n
}

// Remaining counts face-down cards.
func (s State) Remaining() int {
	return len(s.Cards) - s.RevealedCount()
}

// Game owns all mutable state of one table. It is not safe for concurrent
// use; see Manager.
type Game struct {
	rng     Shuffler
	deck    *Deck
	players [Players]PlayerState
	current int
	phase   Phase
	result  *Result
}

// NewGame starts a game on a shuffled copy of entries. A nil rng uses
// NewRand.
func NewGame(entries []catalog.Entry, rng Shuffler) (*Game, []Event, error) {
	if rng == nil {
		rng = NewRand()
	}
	g := &Game{rng: rng}

	evs, err := g.Start(entries)
	if err != nil {
		return nil, nil, err
	}
	return g, evs, nil
}

// Start discards any previous game and deals a fresh one. On error the
// previous game is left as it was.
func (g *Game) Start(entries []catalog.Entry) ([]Event, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}
	if g.rng == nil {
		g.rng = NewRand()
	}

	g.deck = NewDeck(entries, g.rng)
	g.players = [Players]PlayerState{}
	g.current = 0
	g.phase = PhaseInProgress
	g.result = nil

	return []Event{{Kind: EventGameStarted, Payload: GameStartedPayload{Cards: g.deck.Len()}}}, nil
}

// RevealCard adds the card at index to the current player's sentence.
// Going over TargetScore busts the player and ends the game.
func (g *Game) RevealCard(index int) ([]Event, error) {
	if err := g.checkActor(); err != nil {
		return nil, err
	}

	entry, err := g.deck.Reveal(index)
	if err != nil {
		return nil, err
	}

	p := &g.players[g.current]
	p.Cards = append(p.Cards, entry)
	p.Score = CalculateScore(p.Cards)

	evs := []Event{{
		Kind: EventCardRevealed,
		Payload: CardRevealedPayload{
			Player: g.current,
			Index:  index,
			Entry:  entry,
			Score:  p.Score,
		},
	}}

	if IsBust(p.Score) {
		p.Status = StatusBusted
		evs = append(evs, Event{
			Kind:    EventPlayerBusted,
			Payload: PlayerBustedPayload{Player: g.current, Score: p.Score},
		})
		evs = append(evs, g.finish()...)
	}

	return evs, nil
}

// EndTurn stands the current player and passes the turn.
func (g *Game) EndTurn() ([]Event, error) {
	if err := g.checkActor(); err != nil {
		return nil, err
	}

	prev := g.current
	g.players[prev].Status = StatusStood
	g.current = 1 - prev

	evs := []Event{{
		Kind:    EventTurnEnded,
		Payload: TurnEndedPayload{Player: prev, Next: g.current},
	}}

	if g.players[g.current].Status != StatusPlaying {
		evs = append(evs, g.finish()...)
	}
	return evs, nil
}

func (g *Game) checkActor() error {
	if g.deck == nil {
		return ErrNotStarted
	}
	if g.phase == PhaseFinished {
		return ErrGameFinished
	}
	if g.players[g.current].Status != StatusPlaying {
		return ErrPlayerNotActive
	}
	return nil
}

// finish runs once per game. Seats still playing are closed as stood.
func (g *Game) finish() []Event {
	if g.phase == PhaseFinished {
		return nil
	}
	g.phase = PhaseFinished

	for i := range g.players {
		if g.players[i].Status == StatusPlaying {
			g.players[i].Status = StatusStood
		}
	}

	r := Resolve(g.players)
	g.result = &r

	return []Event{{Kind: EventGameFinished, Payload: r}}
}

func (g *Game) State() State {
	s := State{
		Current: g.current,
		Phase:   g.phase,
	}
	if g.deck != nil {
		s.Cards = g.deck.Cards()
	}
	for i, p := range g.players {
		s.Players[i] = PlayerState{
			Score:  p.Score,
			Status: p.Status,
			Cards:  append([]catalog.Entry(nil), p.Cards...),
		}
	}
	if g.result != nil {
		r := *g.result
		s.Result = &r
	}
	return s
}

func (g *Game) Phase() Phase {
	return g.phase
}

var ErrNoGame = errors.New("no game at this table")

// table pairs a game with the message that displays it.
type table struct {
	mu    sync.Mutex
	game  *Game
	board int
}

// Manager keeps one table per chat. Updates arrive concurrently, so every
// mutation of a table goes through Do.
type Manager struct {
	tables map[int64]*table
	mu     sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		tables: make(map[int64]*table),
	}
}

// Board returns the message ID of the chat's board, or 0 without a table.
func (m *Manager) Board(chatID int64) int {
	m.mu.RLock()
	t := m.tables[chatID]
	m.mu.RUnlock()
	if t == nil {
		return 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.board
}

// Set seats g at the chat's table, drawn on message board. It returns the
// board the table used before, or 0.
func (m *Manager) Set(chatID int64, g *Game, board int) int {
	m.mu.Lock()
	t, ok := m.tables[chatID]
	if !ok {
		t = &table{}
		m.tables[chatID] = t
	}
	m.mu.Unlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	prev := t.board
	t.game = g
	t.board = board
	return prev
}

func (m *Manager) Delete(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tables, chatID)
}

// Do runs fn with exclusive access to the chat's game. A non-zero board
// must match the table's board, so buttons on an older message cannot act
// on a newer deal.
func (m *Manager) Do(chatID int64, board int, fn func(g *Game) error) error {
	m.mu.RLock()
	t := m.tables[chatID]
	m.mu.RUnlock()
	if t == nil {
		return ErrNoGame
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.game == nil {
		return ErrNoGame
	}
	if board != 0 && board != t.board {
		return ErrStaleBoard
	}
	return fn(t.game)
}
