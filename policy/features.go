package policy

import "heart/game"

// LifeScale normalises the predicted life feature.
const LifeScale = 30.0

// NumFeatures returns the length of a feature vector for the given starting energy.
func NumFeatures(startingEnergy int) int {
	return 2 + // life after hit, bias
		startingEnergy + 1 +
		game.MaxHandFeature + 1 +
		2 + // intangible
		game.ChainLength + // attack chain 0..2
		2 // weak applied
}

// Features encodes a state for the linear policy. Values outside a one-hot
// range encode as all zeros.
func Features(s *game.State, startingEnergy int) []float64 {
	features := make([]float64, 0, NumFeatures(startingEnergy))
	features = append(features, float64(s.LifeAfterHit())/LifeScale)
	features = append(features, 1)
	features = oneHot(features, s.Energy, startingEnergy)
	features = oneHot(features, len(s.Hand), game.MaxHandFeature)
	features = oneHot(features, boolToInt(s.Intangible), 1)
	features = oneHot(features, s.AttackChain, game.ChainLength-1)
	features = oneHot(features, boolToInt(s.Weak > 0), 1)
	return features
}

func oneHot(features []float64, value, limit int) []float64 {
	for i := 0; i <= limit; i++ {
		if i == value {
			features = append(features, 1)
		} else {
			features = append(features, 0)
		}
	}
	return features
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
