package game

import (
	"encoding/binary"
	"hash/fnv"
)

// Key is the canonical form of a State. Hand and deck are reduced to their
// per-card counts, so states that differ only in card order share a key.
// Remaining deck order is discarded too, which makes learned values an
// average over future draw orders.
type Key struct {
	Life           int32
	Weak           int32
	Energy         int32
	IncomingDamage int32
	AttackChain    int8
	Intangible     bool
	Hand           [NumCards]uint8
	Deck           [NumCards]uint8
}

// Key returns the canonical key of the state.
func (s *State) Key() Key {
	return Key{
		Life:           int32(s.Life),
		Weak:           int32(s.Weak),
		Energy:         int32(s.Energy),
		IncomingDamage: int32(s.IncomingDamage),
		AttackChain:    int8(s.AttackChain),
		Intangible:     s.Intangible,
		Hand:           countCards(s.Hand),
		Deck:           s.Deck.Counts(),
	}
}

// Hash digests the key with FNV-1a.
func (k Key) Hash() StateHash {
	hasher := fnv.New64a()

	var buf [4]byte
	for _, v := range []int32{k.Life, k.Weak, k.Energy, k.IncomingDamage} {
		binary.LittleEndian.PutUint32(buf[:], uint32(v))
		hasher.Write(buf[:])
	}
	flags := byte(k.AttackChain)
	if k.Intangible {
		flags |= 1 << 7
	}
	hasher.Write([]byte{flags})
	hasher.Write(k.Hand[:])
	hasher.Write(k.Deck[:])

	return StateHash(hasher.Sum64())
}
