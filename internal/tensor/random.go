package tensor

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Source is an explicitly owned random source for random factories and
// weight initialisers. Two sources created with the same seed produce the
// same sequence, so initialisation is reproducible without process-wide state.
//
// A Source is not safe for concurrent use.
type Source struct {
	src rand.Source
}

// NewSource creates a deterministic random source from seed.
func NewSource(seed uint64) *Source {
	return &Source{src: rand.NewSource(seed)}
}

// Seed resets the source to the sequence determined by seed.
func (s *Source) Seed(seed uint64) {
	s.src.Seed(seed)
}

func (s *Source) uniform(lo, hi float64) distuv.Uniform {
	s.mustBeSet()
	return distuv.Uniform{Min: lo, Max: hi, Src: s.src}
}

func (s *Source) normal(mean, std float64) distuv.Normal {
	s.mustBeSet()
	return distuv.Normal{Mu: mean, Sigma: std, Src: s.src}
}

func (s *Source) mustBeSet() {
	if s == nil || s.src == nil {
		panic("tensor: nil random Source (use tensor.NewSource)")
	}
}
