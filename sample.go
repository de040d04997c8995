package fa

import (
	"iter"
	"math/rand/v2"
)

// Sampler draws random strings from the language of a DFA. It works on the pruned automaton, so
// every state it visits has a path to an accept state and each walk ends with probability 1.
type Sampler struct {
	dfa *DFA
	rng *rand.Rand
}

// NewSampler prepares sampling from d with randomness drawn from rng. It fails with
// ErrNoAcceptingPath when d accepts nothing.
func NewSampler(d *DFA, rng *rand.Rand) (*Sampler, error) {
	pruned := Prune(d)
	if pruned.accept.None() {
		return nil, ErrNoAcceptingPath
	}
	return &Sampler{dfa: pruned, rng: rng}, nil
}

// NewNFASampler samples from the language of n through its subset construction. opts are passed
// to Determinize.
func NewNFASampler(n *NFA, rng *rand.Rand, opts ...Option) (*Sampler, error) {
	d, err := Determinize(n, opts...)
	if err != nil {
		return nil, err
	}
	return NewSampler(d, rng)
}

// Sample walks from q0, taking a uniformly random leaving transition at each step, until it
// reaches an accept state. The symbols are returned in the order they were read.
func (s *Sampler) Sample() []Symbol {
	state := s.dfa.start
	var word []Symbol
	for !s.dfa.IsAccept(state) {
		ts := s.dfa.out[state]
		t := ts[s.rng.IntN(len(ts))]
		word = append(word, t.Symbol)
		state = t.Dest
	}
	return word
}

// Strings returns an infinite sequence of independent samples. Each range over it starts afresh;
// duplicates are expected.
func (s *Sampler) Strings() iter.Seq[[]Symbol] {
	return func(yield func([]Symbol) bool) {
		for {
			if !yield(s.Sample()) {
				return
			}
		}
	}
}

// SampleString returns one random string accepted by d.
func SampleString(d *DFA, rng *rand.Rand) ([]Symbol, error) {
	s, err := NewSampler(d, rng)
	if err != nil {
		return nil, err
	}
	return s.Sample(), nil
}

// SampleStrings returns an infinite sequence of random strings accepted by d.
func SampleStrings(d *DFA, rng *rand.Rand) (iter.Seq[[]Symbol], error) {
	s, err := NewSampler(d, rng)
	if err != nil {
		return nil, err
	}
	return s.Strings(), nil
}
