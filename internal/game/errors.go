package game

import (
	"errors"
	"fmt"
)

var ErrEmptyCatalog = errors.New("empty catalog")

// ErrInvalidAction is wrapped by every rejected in-game action. Rejected
// actions never change state, so callers may ignore them.
var ErrInvalidAction = errors.New("invalid action")

var (
	ErrNotStarted      = fmt.Errorf("%w: game not started", ErrInvalidAction)
	ErrGameFinished    = fmt.Errorf("%w: game finished", ErrInvalidAction)
	ErrPlayerNotActive = fmt.Errorf("%w: current player is not playing", ErrInvalidAction)
	ErrCardOutOfRange  = fmt.Errorf("%w: card index out of range", ErrInvalidAction)
	ErrCardRevealed    = fmt.Errorf("%w: card already revealed", ErrInvalidAction)
	ErrStaleBoard      = fmt.Errorf("%w: board was redealt", ErrInvalidAction)
)
