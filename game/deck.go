package game

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// Entry is a card and its number of copies in a deck.
type Entry struct {
	Card  Card `yaml:"name" json:"name"`
	Count int  `yaml:"count" json:"count"`
}

// Composition is the multiset of cards a deck is built from.
type Composition []Entry

// DefaultComposition returns the 18 card draw pile of the encounter.
func DefaultComposition() Composition {
	return Composition{
		{Card: Defend, Count: 3},
		{Card: DaggerThrow, Count: 1},
		{Card: WellLaidPlans, Count: 1},
		{Card: CripplingCloud, Count: 1},
		{Card: HeelHook, Count: 1},
		{Card: LegSweep, Count: 1},
		{Card: Expertise, Count: 1},
		{Card: Cost1Attack, Count: 2},
		{Card: Neutralize, Count: 1},
		{Card: Apparition, Count: 1},
		{Card: PiercingWail, Count: 1},
		{Card: Slimed, Count: 1},
		{Card: Unplayable, Count: 2},
		{Card: Void, Count: 1},
	}
}

func (c Composition) Size() int {
	size := 0
	for _, e := range c {
		size += e.Count
	}
	return size
}

// Validate rejects unknown cards and counts that do not fit a Key.
func (c Composition) Validate() error {
	var counts [NumCards]int
	for _, e := range c {
		if !e.Card.Valid() {
			return fmt.Errorf("invalid card %d in composition", int(e.Card))
		}
		if e.Count < 0 {
			return fmt.Errorf("negative count %d for %s", e.Count, e.Card)
		}
		counts[e.Card] += e.Count
		if counts[e.Card] > math.MaxUint8 {
			return fmt.Errorf("%d copies of %s, at most %d allowed", counts[e.Card], e.Card, math.MaxUint8)
		}
	}
	return nil
}

// Deck is an ordered draw pile. The top of the deck is the last element.
type Deck []Card

// NewDeck lays out the composition and shuffles it uniformly.
func NewDeck(c Composition, rng *rand.Rand) Deck {
	deck := make(Deck, 0, c.Size())
	for _, e := range c {
		for i := 0; i < e.Count; i++ {
			deck = append(deck, e.Card)
		}
	}
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// pop removes the top card.
func (d *Deck) pop() (Card, bool) {
	n := len(*d)
	if n == 0 {
		return 0, false
	}
	card := (*d)[n-1]
	*d = (*d)[:n-1]
	return card, true
}

// Counts returns the number of copies of each card type.
func (d Deck) Counts() [NumCards]uint8 {
	return countCards(d)
}

func countCards(cards []Card) [NumCards]uint8 {
	var counts [NumCards]uint8
	for _, c := range cards {
		counts[c]++
	}
	return counts
}
