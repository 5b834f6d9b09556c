package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newState(hand []Card, deck Deck) *State {
	return &State{
		Life:           51,
		Energy:         3,
		Hand:           hand,
		Deck:           deck,
		IncomingDamage: DefaultIncomingDamage,
	}
}

func TestLegalActions(t *testing.T) {
	t.Run("only affordable playable cards", func(t *testing.T) {
		s := newState([]Card{Unplayable, Defend, LegSweep, Void, Neutralize}, nil)
		s.Energy = 1

		require.Equal(t, []int{1, 4}, s.LegalActions())
	})

	t.Run("zero cost cards with no energy", func(t *testing.T) {
		s := newState([]Card{Defend, Neutralize}, nil)
		s.Energy = 0

		require.Equal(t, []int{1}, s.LegalActions())
	})

	t.Run("empty hand", func(t *testing.T) {
		s := newState(nil, nil)

		require.Empty(t, s.LegalActions())
	})
}

func TestDraw(t *testing.T) {
	t.Run("moves top card into hand", func(t *testing.T) {
		s := newState([]Card{Defend}, Deck{Slimed, LegSweep})

		require.NoError(t, s.Draw())

		require.Equal(t, []Card{Defend, LegSweep}, s.Hand)
		require.Equal(t, Deck{Slimed}, s.Deck)
		require.Equal(t, 3, s.Energy, "Drawing a normal card should not cost energy")
	})

	t.Run("void costs one energy", func(t *testing.T) {
		s := newState(nil, Deck{Void})

		require.NoError(t, s.Draw())

		require.Equal(t, 2, s.Energy)
	})

	t.Run("void energy loss floors at zero", func(t *testing.T) {
		s := newState(nil, Deck{Void})
		s.Energy = 0

		require.NoError(t, s.Draw())

		require.Equal(t, 0, s.Energy)
	})

	t.Run("empty deck", func(t *testing.T) {
		s := newState([]Card{Defend}, Deck{})

		err := s.Draw()

		require.ErrorIs(t, err, ErrEmptyDeck)
		require.Len(t, s.Hand, 1, "Hand should not change")
	})

	t.Run("sizes change by exactly one", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		s := newState(nil, NewDeck(DefaultComposition(), rng))
		for len(s.Deck) > 0 {
			hand, deck, energy := len(s.Hand), len(s.Deck), s.Energy
			top := s.Deck[len(s.Deck)-1]

			require.NoError(t, s.Draw())

			require.Equal(t, hand+1, len(s.Hand))
			require.Equal(t, deck-1, len(s.Deck))
			if top == Void {
				require.Equal(t, max(0, energy-1), s.Energy)
			} else {
				require.Equal(t, energy, s.Energy)
			}
		}
	})
}

func TestDiscard(t *testing.T) {
	t.Run("lowest keep score", func(t *testing.T) {
		s := newState([]Card{Defend, Void, Apparition, Unplayable, Slimed}, nil)

		require.NoError(t, s.Discard())

		require.ElementsMatch(t, []Card{Defend, Void, Apparition, Slimed}, s.Hand)
	})

	t.Run("ties go to catalog order", func(t *testing.T) {
		s := newState([]Card{Expertise, LegSweep, WellLaidPlans}, nil)

		require.NoError(t, s.Discard())

		require.ElementsMatch(t, []Card{Expertise, LegSweep}, s.Hand)
	})

	t.Run("empty hand", func(t *testing.T) {
		s := newState(nil, nil)

		require.ErrorIs(t, s.Discard(), ErrEmptyHand)
	})
}

func TestPlay(t *testing.T) {
	t.Run("block card", func(t *testing.T) {
		s := newState([]Card{Slimed, Defend}, nil)

		require.NoError(t, s.Play(1))

		require.Equal(t, []Card{Slimed}, s.Hand)
		require.Equal(t, 2, s.Energy)
		require.Equal(t, 51-AmbientLoss+9, s.Life)
	})

	t.Run("weak card", func(t *testing.T) {
		s := newState([]Card{LegSweep}, nil)

		require.NoError(t, s.Play(0))

		require.Equal(t, 1, s.Energy)
		require.Equal(t, 51-AmbientLoss+13, s.Life)
		require.Equal(t, 2, s.Weak)
		require.Zero(t, s.AttackChain, "Skills should not count towards the chain")
	})

	t.Run("apparition prevents ambient loss", func(t *testing.T) {
		s := newState([]Card{Apparition, Defend}, nil)

		require.NoError(t, s.Play(0))
		require.True(t, s.Intangible)
		require.Equal(t, 51, s.Life)

		require.NoError(t, s.Play(0))
		require.True(t, s.Intangible)
		require.Equal(t, 60, s.Life)
	})

	t.Run("third attack grants chain bonus", func(t *testing.T) {
		s := newState([]Card{Cost1Attack, Cost1Attack, Neutralize}, nil)

		require.NoError(t, s.Play(2))
		require.NoError(t, s.Play(0))
		require.Equal(t, 2, s.AttackChain)
		require.Equal(t, 49, s.Life)

		require.NoError(t, s.Play(0))
		require.Zero(t, s.AttackChain)
		require.Equal(t, 49-AmbientLoss+ChainBonus, s.Life)
		require.Equal(t, 1, s.Energy)
	})

	t.Run("heel hook without weak", func(t *testing.T) {
		s := newState([]Card{HeelHook}, Deck{Defend})

		require.NoError(t, s.Play(0))

		require.Equal(t, 2, s.Energy)
		require.Empty(t, s.Hand)
		require.Len(t, s.Deck, 1)
	})

	t.Run("heel hook with weak refunds and draws", func(t *testing.T) {
		s := newState([]Card{HeelHook}, Deck{Defend})
		s.Weak = 1

		require.NoError(t, s.Play(0))

		require.Equal(t, 3, s.Energy)
		require.Equal(t, []Card{Defend}, s.Hand)
		require.Empty(t, s.Deck)
	})

	t.Run("neutralize enables heel hook in the same turn", func(t *testing.T) {
		s := newState([]Card{Neutralize, HeelHook}, Deck{Slimed})

		require.NoError(t, s.Play(0))
		require.NoError(t, s.Play(0))

		require.Equal(t, 3, s.Energy)
		require.Equal(t, []Card{Slimed}, s.Hand)
	})

	t.Run("piercing wail lowers incoming damage", func(t *testing.T) {
		s := newState([]Card{PiercingWail}, nil)

		require.NoError(t, s.Play(0))

		require.Equal(t, DefaultIncomingDamage-WailReduction, s.IncomingDamage)
	})

	t.Run("expertise refills the hand", func(t *testing.T) {
		deck := Deck{Defend, Defend, Defend, Slimed, Slimed, Slimed, Slimed}
		s := newState([]Card{Expertise, LegSweep}, deck)

		require.NoError(t, s.Play(0))

		require.Len(t, s.Hand, HandCap)
		require.Len(t, s.Deck, 2)
	})

	t.Run("dagger throw draws then discards", func(t *testing.T) {
		s := newState([]Card{DaggerThrow, Defend}, Deck{Slimed})

		require.NoError(t, s.Play(0))

		require.Equal(t, []Card{Defend}, s.Hand)
		require.Empty(t, s.Deck)
		require.Equal(t, 1, s.AttackChain)
	})

	t.Run("insufficient energy", func(t *testing.T) {
		s := newState([]Card{LegSweep}, nil)
		s.Energy = 1

		err := s.Play(0)

		require.ErrorIs(t, err, ErrInsufficientEnergy)
		require.Equal(t, []Card{LegSweep}, s.Hand, "State should not change")
		require.Equal(t, 1, s.Energy)
	})

	t.Run("unplayable", func(t *testing.T) {
		s := newState([]Card{Void}, nil)

		require.ErrorIs(t, s.Play(0), ErrUnplayable)
	})

	t.Run("index out of range", func(t *testing.T) {
		s := newState([]Card{Defend}, nil)

		require.ErrorIs(t, s.Play(1), ErrInvalidAction)
		require.ErrorIs(t, s.Play(-1), ErrInvalidAction)
	})

	t.Run("draw from empty deck", func(t *testing.T) {
		s := newState([]Card{DaggerThrow}, Deck{})

		require.ErrorIs(t, s.Play(0), ErrEmptyDeck)
	})
}

func TestSurvive(t *testing.T) {
	tests := []struct {
		name       string
		life       int
		weak       int
		intangible bool
		damage     int
		wantLife   int
		wantOK     bool
	}{
		{name: "unmodified damage kills", life: 51, damage: 46, wantOK: false},
		{name: "unmodified damage survived", life: 70, damage: 46, wantLife: 1, wantOK: true},
		{name: "weak damage exactly lethal", life: 51, weak: 1, damage: 46, wantOK: false},
		{name: "weak damage survived", life: 52, weak: 1, damage: 46, wantLife: 1, wantOK: true},
		{name: "weak stacks do not compound", life: 52, weak: 4, damage: 46, wantLife: 1, wantOK: true},
		{name: "intangible ignores damage", life: 10, weak: 0, intangible: true, damage: 46, wantLife: 9, wantOK: true},
		{name: "intangible ignores weak", life: 10, weak: 3, intangible: true, damage: 1000, wantLife: 9, wantOK: true},
		{name: "intangible at one life", life: 1, intangible: true, damage: 46, wantOK: false},
		{name: "wailed damage", life: 61, damage: 40, wantLife: 1, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &State{Life: tt.life, Weak: tt.weak, Intangible: tt.intangible, IncomingDamage: tt.damage}

			life, ok := s.Survive()

			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.wantLife, life)
		})
	}

	t.Run("modified damage truncates", func(t *testing.T) {
		s := &State{IncomingDamage: 46}
		require.Equal(t, 69, s.ModifiedDamage())

		s.Weak = 1
		require.Equal(t, 51, s.ModifiedDamage())

		s.IncomingDamage = 7
		require.Equal(t, 7, s.ModifiedDamage(), "7*1.5*0.75=7.875 should truncate")
	})

	t.Run("has no side effects", func(t *testing.T) {
		s := newState([]Card{Defend, Void}, Deck{Slimed})
		s.Weak = 1
		before := s.Copy()

		life1, ok1 := s.Survive()
		life2, ok2 := s.Survive()

		require.Equal(t, life1, life2)
		require.Equal(t, ok1, ok2)
		require.Equal(t, before, s)
	})
}

func TestEnergyNeverNegative(t *testing.T) {
	for _, scenario := range []Scenario{Dash(), Gamble()} {
		t.Run(scenario.Name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))
			for episode := 0; episode < 500; episode++ {
				s, err := scenario.Deal(DefaultComposition(), rng)
				require.NoError(t, err)
				require.GreaterOrEqual(t, s.Energy, 0)

				for {
					actions := s.LegalActions()
					pick := rng.Intn(len(actions) + 1)
					if pick == len(actions) {
						break
					}
					require.NoError(t, s.Play(actions[pick]))
					require.GreaterOrEqual(t, s.Energy, 0, "state: %s", s)
				}
			}
		})
	}
}

func TestCopy(t *testing.T) {
	s := newState([]Card{Defend, Slimed}, Deck{Void})
	c := s.Copy()

	require.NoError(t, c.Play(0))
	require.NoError(t, c.Draw())

	require.Equal(t, []Card{Defend, Slimed}, s.Hand, "Original hand should not change")
	require.Equal(t, Deck{Void}, s.Deck, "Original deck should not change")
}

func TestQueries(t *testing.T) {
	s := newState([]Card{Slimed, Defend, Void, Defend}, nil)

	require.Equal(t, 2, s.Count(Defend))
	require.Equal(t, 0, s.Count(LegSweep))

	i, ok := s.InHand(Defend)
	require.True(t, ok)
	require.Equal(t, 1, i)

	_, ok = s.InHand(Apparition)
	require.False(t, ok)
}
