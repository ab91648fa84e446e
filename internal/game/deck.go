package game

import (
	"math/rand"
	"time"

	"prisonjack/internal/catalog"
)

// Shuffler produces a permutation of n items through swap. *rand.Rand
// satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a time-seeded source for production tables.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Card is a catalog entry placed on the table.
type Card struct {
	catalog.Entry
	Revealed bool
}

type Deck struct {
	cards []Card
}

// NewDeck copies entries into a new deck and shuffles it. The input slice
// is never reordered.
func NewDeck(entries []catalog.Entry, rng Shuffler) *Deck {
	d := &Deck{
		cards: make([]Card, 0, len(entries)),
	}

	for _, e := range entries {
		d.cards = append(d.cards, Card{Entry: e})
	}

	d.Shuffle(rng)
	return d
}

func (d *Deck) Shuffle(rng Shuffler) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Reveal turns the card at index face up and returns its entry.
func (d *Deck) Reveal(index int) (catalog.Entry, error) {
	if index < 0 || index >= len(d.cards) {
		return catalog.Entry{}, ErrCardOutOfRange
	}
	if d.cards[index].Revealed {
		return catalog.Entry{}, ErrCardRevealed
	}

	d.cards[index].Revealed = true
	return d.cards[index].Entry, nil
}

func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the deck in table order.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
