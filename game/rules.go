package game

// Fixed rules of the encounter
const (
	AmbientLoss      = 1    // Life lost per card played while not intangible
	ChainLength      = 3    // Attacks needed to complete a chain
	ChainBonus       = 4    // Life gained when a chain completes
	WailReduction    = 6    // Incoming damage removed by PiercingWail
	HandCap          = 6    // Expertise draws up to this hand size
	MaxHandFeature   = 6    // Largest hand size with its own feature
	DamageMultiplier = 1.5  // Applied to incoming damage at end of turn
	WeakMultiplier   = 0.75 // Applied on top when weak stacks are present
)

const (
	DefaultStartingEnergy = 5
	DefaultIncomingDamage = 46
	DashCost              = 2 // Energy spent before the dash opening
)

// Rules holds the overridable constants of the encounter.
type Rules struct {
	StartingEnergy int `yaml:"startingEnergy" json:"startingEnergy"`
}

func NewStandardRules() Rules {
	return Rules{StartingEnergy: DefaultStartingEnergy}
}
