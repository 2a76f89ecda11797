package gen

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator draws the suffixes that keep container and edge identifiers
// apart when display names repeat.
type IDGenerator interface {
	NewID() string
}

// Defaults of the random generator.
const (
	DefaultIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	DefaultIDLength   = 6
)

// RandomGenerator draws fixed-length suffixes from an alphabet.
type RandomGenerator struct {
	alphabet []rune
	length   int
	rnd      *rand.Rand // nil uses the global source
}

// NewRandomGenerator returns a generator drawing length runes from alphabet.
func NewRandomGenerator(length int, alphabet string) (*RandomGenerator, error) {
	if length <= 0 {
		return nil, NewConfigError("IDLength", length, "length must be positive")
	}
	runes := []rune(alphabet)
	if len(runes) < 2 {
		return nil, NewConfigError("IDAlphabet", alphabet, "alphabet needs at least two symbols")
	}
	return &RandomGenerator{alphabet: runes, length: length}, nil
}

// NewSeededGenerator returns a default-shaped random generator with a fixed
// seed, so that a run can be reproduced.
func NewSeededGenerator(seed uint64) *RandomGenerator {
	return &RandomGenerator{
		alphabet: []rune(DefaultIDAlphabet),
		length:   DefaultIDLength,
		rnd:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// NewID implements IDGenerator.
func (g *RandomGenerator) NewID() string {
	var b strings.Builder
	b.Grow(g.length)
	for range g.length {
		var i int
		if g.rnd != nil {
			i = g.rnd.IntN(len(g.alphabet))
		} else {
			i = rand.IntN(len(g.alphabet))
		}
		b.WriteRune(g.alphabet[i])
	}
	return b.String()
}

// SequenceGenerator issues 1, 2, 3... Combined with the entity name this
// gives deterministic, collision-free identifiers.
type SequenceGenerator struct {
	n atomic.Uint64
}

// NewID implements IDGenerator.
func (g *SequenceGenerator) NewID() string {
	return strconv.FormatUint(g.n.Add(1), 10)
}

// UUIDGenerator issues random (version 4) UUIDs without dashes.
type UUIDGenerator struct{}

// NewID implements IDGenerator.
func (UUIDGenerator) NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewIDGenerator returns the generator registered under name:
// "random", "sequence" or "uuid".
func NewIDGenerator(name string) (IDGenerator, error) {
	switch name {
	case "", "random":
		return NewRandomGenerator(DefaultIDLength, DefaultIDAlphabet)
	case "sequence":
		return &SequenceGenerator{}, nil
	case "uuid":
		return UUIDGenerator{}, nil
	default:
		return nil, NewConfigError("IDs", name, "unknown generator; use random, sequence or uuid")
	}
}
