package game

import "prisonjack/internal/catalog"

// EventKind identifies a state change the presentation layer should render.
type EventKind string

const (
	EventGameStarted  EventKind = "game_started"
	EventCardRevealed EventKind = "card_revealed"
	EventPlayerBusted EventKind = "player_busted"
	EventTurnEnded    EventKind = "turn_ended"
	EventGameFinished EventKind = "game_finished"
)

type Event struct {
	Kind    EventKind
	Payload any
}

type GameStartedPayload struct {
	Cards int
}

type CardRevealedPayload struct {
	Player int
	Index  int
	Entry  catalog.Entry
	Score  int
}

type PlayerBustedPayload struct {
	Player int
	Score  int
}

type TurnEndedPayload struct {
	Player int
	Next   int
}

// GameFinished events carry a Result as payload.
