package game

import "fmt"

type Card int

const (
	Defend Card = iota
	DaggerThrow
	WellLaidPlans
	CripplingCloud
	HeelHook
	LegSweep
	Expertise
	Cost1Attack
	Neutralize
	Apparition
	PiercingWail
	Slimed
	Unplayable
	Void
)

// NumCards is the number of card types in the catalog
const NumCards = int(Void) + 1

// Attributes are the fixed, per-type properties of a card
type Attributes struct {
	Name     string
	Cost     int
	Playable bool // Unplayable cards have no cost
	Block    int
	Attack   bool
	Weak     int
	Keep     int // Discard keeps the highest scores
}

// Discard is very situational and the keep scores are sometimes a bad ordering.
var catalog = [NumCards]Attributes{
	Defend:         {Name: "Defend", Cost: 1, Playable: true, Block: 9, Keep: 50},
	DaggerThrow:    {Name: "DaggerThrow", Cost: 1, Playable: true, Attack: true, Keep: 40},
	WellLaidPlans:  {Name: "WellLaidPlans", Cost: 1, Playable: true, Keep: 20},
	CripplingCloud: {Name: "CripplingCloud", Cost: 2, Playable: true, Weak: 2, Keep: 30},
	HeelHook:       {Name: "HeelHook", Cost: 1, Playable: true, Attack: true, Keep: 10},
	LegSweep:       {Name: "LegSweep", Cost: 2, Playable: true, Block: 13, Weak: 2, Keep: 70},
	Expertise:      {Name: "Expertise", Cost: 1, Playable: true, Keep: 20},
	Cost1Attack:    {Name: "Cost1Attack", Cost: 1, Playable: true, Attack: true, Keep: 5},
	Neutralize:     {Name: "Neutralize", Cost: 0, Playable: true, Attack: true, Weak: 1, Keep: 25},
	Apparition:     {Name: "Apparition", Cost: 1, Playable: true, Keep: 100},
	PiercingWail:   {Name: "PiercingWail", Cost: 1, Playable: true, Keep: 15},
	Slimed:         {Name: "Slimed", Cost: 1, Playable: true, Keep: 2},
	Unplayable:     {Name: "Unplayable", Keep: 1},
	Void:           {Name: "Void", Keep: 3},
}

// Lookup returns the catalog attributes of a card type
func (c Card) Lookup() Attributes {
	return catalog[c]
}

// Cost returns the energy cost and false if the card cannot be played
func (c Card) Cost() (int, bool) {
	a := catalog[c]
	return a.Cost, a.Playable
}

func (c Card) Block() int {
	return catalog[c].Block
}

func (c Card) IsAttack() bool {
	return catalog[c].Attack
}

func (c Card) Weak() int {
	return catalog[c].Weak
}

func (c Card) KeepScore() int {
	return catalog[c].Keep
}

func (c Card) Valid() bool {
	return c >= 0 && int(c) < NumCards
}

func (c Card) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Card(%d)", int(c))
	}
	return catalog[c].Name
}

// ParseCard resolves a catalog name to its card type.
func ParseCard(name string) (Card, error) {
	for i := range catalog {
		if catalog[i].Name == name {
			return Card(i), nil
		}
	}
	return 0, fmt.Errorf("unknown card %q", name)
}

// MarshalText encodes a card by its catalog name.
func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid card %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a card from its catalog name.
func (c *Card) UnmarshalText(text []byte) error {
	card, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = card
	return nil
}
