package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Scenario describes how a turn opens.
type Scenario struct {
	Name           string `yaml:"name" json:"name"`
	Life           int    `yaml:"life" json:"life"`
	Energy         int    `yaml:"energy" json:"energy"`
	Draws          int    `yaml:"draws" json:"draws"`
	IncomingDamage int    `yaml:"incomingDamage" json:"incomingDamage"`
}

// Dash opens after spending two energy on a dash, with a four card hand.
func (r Rules) Dash() Scenario {
	return Scenario{
		Name:           "dash",
		Life:           51,
		Energy:         r.StartingEnergy - DashCost,
		Draws:          4,
		IncomingDamage: DefaultIncomingDamage,
	}
}

// Gamble opens at full energy with a redrawn five card hand but less life.
func (r Rules) Gamble() Scenario {
	return Scenario{
		Name:           "gamble",
		Life:           40,
		Energy:         r.StartingEnergy,
		Draws:          5,
		IncomingDamage: DefaultIncomingDamage,
	}
}

// Scenarios returns the built-in openings under these rules.
func (r Rules) Scenarios() []Scenario {
	return []Scenario{r.Dash(), r.Gamble()}
}

// Dash is the dash opening under the standard rules.
func Dash() Scenario {
	return NewStandardRules().Dash()
}

// Gamble is the gamble opening under the standard rules.
func Gamble() Scenario {
	return NewStandardRules().Gamble()
}

func (s Scenario) Validate(c Composition) error {
	if s.Energy < 0 {
		return fmt.Errorf("scenario %s: negative energy %d", s.Name, s.Energy)
	}
	if s.Draws < 0 || s.Draws > c.Size() {
		return fmt.Errorf("scenario %s: cannot draw %d from a deck of %d", s.Name, s.Draws, c.Size())
	}
	return nil
}

// Deal shuffles a fresh deck and draws the opening hand.
func (s Scenario) Deal(c Composition, rng *rand.Rand) (*State, error) {
	state := &State{
		Life:           s.Life,
		Energy:         s.Energy,
		Hand:           make([]Card, 0, HandCap+2),
		Deck:           NewDeck(c, rng),
		IncomingDamage: s.IncomingDamage,
	}
	for i := 0; i < s.Draws; i++ {
		if err := state.Draw(); err != nil {
			return nil, fmt.Errorf("failed to deal scenario %s: %w", s.Name, err)
		}
	}
	return state, nil
}
