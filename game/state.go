package game

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// State is the mutable combat state of one episode. It is owned by a single
// goroutine from the deal until the survival check.
type State struct {
	Life           int // HP plus block
	Weak           int // Stacks of weak on the enemy
	Energy         int
	Hand           []Card
	Deck           Deck
	Intangible     bool
	IncomingDamage int // Damage of the end-of-turn hit before modifiers
	AttackChain    int // Attacks played towards the next chain bonus
}

// Copy returns a deep copy of the state.
func (s *State) Copy() *State {
	c := *s
	c.Hand = slices.Clone(s.Hand)
	c.Deck = slices.Clone(s.Deck)
	return &c
}

// LegalActions returns the hand indices of every card that can be paid for.
// Passing is always allowed in addition to these.
func (s *State) LegalActions() []int {
	actions := make([]int, 0, len(s.Hand))
	for i, card := range s.Hand {
		if cost, ok := card.Cost(); ok && cost <= s.Energy {
			actions = append(actions, i)
		}
	}
	return actions
}

// Play plays the card at hand index i and resolves its effects in order.
func (s *State) Play(i int) error {
	if i < 0 || i >= len(s.Hand) {
		return fmt.Errorf("cannot play card %d of %d: %w", i, len(s.Hand), ErrInvalidAction)
	}
	card := s.Hand[i]
	cost, ok := card.Cost()
	if !ok {
		return fmt.Errorf("cannot play %s: %w", card, ErrUnplayable)
	}
	if cost > s.Energy {
		return fmt.Errorf("cannot play %s costing %d with %d energy: %w", card, cost, s.Energy, ErrInsufficientEnergy)
	}
	s.removeFromHand(i)

	s.Energy -= cost
	if card == Apparition {
		s.Intangible = true
	}
	if !s.Intangible {
		s.Life -= AmbientLoss
	}
	s.Life += card.Block()
	if card.IsAttack() {
		s.AttackChain++
		if s.AttackChain == ChainLength {
			s.AttackChain = 0
			s.Life += ChainBonus
		}
	}
	s.Weak += card.Weak()

	switch card {
	case HeelHook:
		if s.Weak > 0 {
			s.Energy++
			if err := s.Draw(); err != nil {
				return fmt.Errorf("failed to resolve %s: %w", card, err)
			}
		}
	case PiercingWail:
		s.IncomingDamage -= WailReduction
	case Expertise:
		for len(s.Hand) < HandCap {
			if err := s.Draw(); err != nil {
				return fmt.Errorf("failed to resolve %s: %w", card, err)
			}
		}
	case DaggerThrow:
		if err := s.Draw(); err != nil {
			return fmt.Errorf("failed to resolve %s: %w", card, err)
		}
		if err := s.Discard(); err != nil {
			return fmt.Errorf("failed to resolve %s: %w", card, err)
		}
	}
	return nil
}

// Draw moves the top card of the deck into the hand. Drawing Void costs one
// energy if there is any left.
func (s *State) Draw() error {
	card, ok := s.Deck.pop()
	if !ok {
		return ErrEmptyDeck
	}
	if card == Void {
		s.Energy = max(0, s.Energy-1)
	}
	s.Hand = append(s.Hand, card)
	return nil
}

// Discard removes the hand card with the lowest keep score. Ties go to the
// card that comes first in the catalog.
func (s *State) Discard() error {
	if len(s.Hand) == 0 {
		return ErrEmptyHand
	}
	worst := 0
	for i, card := range s.Hand[1:] {
		if less(card, s.Hand[worst]) {
			worst = i + 1
		}
	}
	s.removeFromHand(worst)
	return nil
}

func less(a, b Card) bool {
	if a.KeepScore() != b.KeepScore() {
		return a.KeepScore() < b.KeepScore()
	}
	return a < b
}

// removeFromHand swaps the last card into slot i. Hand order carries no meaning.
func (s *State) removeFromHand(i int) {
	last := len(s.Hand) - 1
	s.Hand[i] = s.Hand[last]
	s.Hand = s.Hand[:last]
}

// ModifiedDamage is the end-of-turn hit after the damage and weak multipliers.
// Multiplication happens in float32 and truncates once at the end.
func (s *State) ModifiedDamage() int {
	dmg := float32(s.IncomingDamage) * DamageMultiplier
	if s.Weak > 0 {
		dmg *= WeakMultiplier
	}
	return int(dmg)
}

// LifeAfterHit returns the life left once the turn ends. It may be negative.
func (s *State) LifeAfterHit() int {
	if s.Intangible {
		return s.Life - 1
	}
	return s.Life - s.ModifiedDamage()
}

// Survive reports the remaining life and whether it is positive.
func (s *State) Survive() (int, bool) {
	life := s.LifeAfterHit()
	if life > 0 {
		return life, true
	}
	return 0, false
}

// Count returns the number of copies of card in hand.
func (s *State) Count(card Card) int {
	n := 0
	for _, c := range s.Hand {
		if c == card {
			n++
		}
	}
	return n
}

// InHand returns the index of the first copy of card in hand.
func (s *State) InHand(card Card) (int, bool) {
	i := slices.Index(s.Hand, card)
	return i, i >= 0
}

// SortHand puts the hand into catalog order. It has no effect on play.
func (s *State) SortHand() {
	slices.Sort(s.Hand)
}

func (s *State) String() string {
	return fmt.Sprintf("life=%d weak=%d energy=%d intangible=%t damage=%d chain=%d hand=%v deck=%d",
		s.Life, s.Weak, s.Energy, s.Intangible, s.IncomingDamage, s.AttackChain, s.Hand, len(s.Deck))
}
