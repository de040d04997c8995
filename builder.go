package fa

import (
	"maps"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// MaxState is the largest state id a Builder accepts. State sets are bitsets indexed by id, so
// ids should stay dense.
const MaxState State = 1<<20 - 1

type stateSymbol struct {
	state  State
	symbol Symbol
}

// Builder collects states, symbols and transitions, then validates them into a DFA or an NFA.
// Nothing is checked until DFA, NFA or Build is called. Transition symbols are added to the alphabet
// automatically; states are not, so a transition to an undeclared state is reported as dangling.
type Builder struct {
	states      *bitset.BitSet
	alphabet    []Symbol
	starts      []State
	accept      map[State]bool
	transitions []Transition

	// First invalid declaration, reported by validate.
	err error
}

func NewBuilder() *Builder {
	return &Builder{
		states: bitset.New(0),
		accept: make(map[State]bool),
	}
}

// AddState declares states as members of Q. Ids must lie in [0, MaxState].
func (b *Builder) AddState(states ...State) *Builder {
	for _, s := range states {
		if s < 0 {
			b.fail(malformed("negative state id %d", s))
			continue
		}
		if s > MaxState {
			b.fail(malformed("state id %d out of range", s))
			continue
		}
		b.states.Set(uint(s))
	}
	return b
}

// AddSymbol declares alphabet symbols, including ones no transition reads.
func (b *Builder) AddSymbol(symbols ...Symbol) *Builder {
	for _, c := range symbols {
		if c == Epsilon {
			b.fail(malformed("epsilon cannot be an alphabet symbol"))
			continue
		}
		b.alphabet = append(b.alphabet, c)
	}
	return b
}

// SetStart adds states to the set of start states.
func (b *Builder) SetStart(states ...State) *Builder {
	b.starts = append(b.starts, states...)
	return b
}

// SetAccept marks state as accepting, or clears the mark.
func (b *Builder) SetAccept(state State, accept bool) *Builder {
	if accept {
		b.accept[state] = true
	} else {
		delete(b.accept, state)
	}
	return b
}

// AddTransition adds source -symbol-> dest. Use Epsilon for an epsilon transition.
func (b *Builder) AddTransition(source State, symbol Symbol, dest State) *Builder {
	b.transitions = append(b.transitions, Transition{Source: source, Symbol: symbol, Dest: dest})
	return b
}

// Classify reports KindNFA if any transition reads Epsilon or any (state, symbol) pair has more
// than one destination, KindDFA otherwise.
func (b *Builder) Classify() Kind {
	seen := make(map[stateSymbol]State, len(b.transitions))
	for _, t := range b.transitions {
		if t.Symbol == Epsilon {
			return KindNFA
		}
		k := stateSymbol{t.Source, t.Symbol}
		if d, ok := seen[k]; ok && d != t.Dest {
			return KindNFA
		}
		seen[k] = t.Dest
	}
	return KindDFA
}

// Build classifies the definition and builds the matching variant.
func (b *Builder) Build() (Automaton, error) {
	if b.Classify() == KindNFA {
		return b.NFA()
	}
	return b.DFA()
}

// DFA validates the definition as a DFA: exactly one start state, no epsilon transitions, at most
// one destination per (state, symbol).
func (b *Builder) DFA() (*DFA, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	starts := slices.Compact(slices.Sorted(slices.Values(b.starts)))
	if len(starts) != 1 {
		return nil, malformed("a DFA needs exactly one start state, got %d", len(starts))
	}

	out := make(map[State][]Transition)
	seen := make(map[stateSymbol]State, len(b.transitions))
	for _, t := range b.transitions {
		if t.Symbol == Epsilon {
			return nil, malformed("epsilon transition %v in a DFA", t)
		}
		k := stateSymbol{t.Source, t.Symbol}
		if d, ok := seen[k]; ok {
			if d != t.Dest {
				return nil, malformed("state %d has more than one transition on %q", t.Source, t.Symbol)
			}
			continue
		}
		seen[k] = t.Dest
		out[t.Source] = append(out[t.Source], t)
	}
	return newDFA(b.states.Clone(), b.symbols(), out, starts[0], b.acceptSet()), nil
}

// NFA validates the definition as an NFA. Any number of start states is allowed, including none.
func (b *Builder) NFA() (*NFA, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	out := make(map[State][]Transition)
	for _, t := range b.transitions {
		out[t.Source] = append(out[t.Source], t)
	}
	starts := bitset.New(0)
	for _, s := range b.starts {
		starts.Set(uint(s))
	}
	return newNFA(b.states.Clone(), b.symbols(), out, starts, b.acceptSet()), nil
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Builder) has(s State) bool {
	return s >= 0 && b.states.Test(uint(s))
}

func (b *Builder) validate() error {
	if b.err != nil {
		return b.err
	}
	for _, s := range b.starts {
		if !b.has(s) {
			return malformed("start state %d not in states", s)
		}
	}
	for _, s := range slices.Sorted(maps.Keys(b.accept)) {
		if !b.has(s) {
			return malformed("accept state %d not in states", s)
		}
	}
	for i, t := range b.transitions {
		if !b.has(t.Source) {
			return malformed("transition %d: from state %d not in states", i, t.Source)
		}
		if !b.has(t.Dest) {
			return malformed("transition %d: to state %d not in states", i, t.Dest)
		}
	}
	return nil
}

func (b *Builder) symbols() []Symbol {
	symbols := slices.Clone(b.alphabet)
	for _, t := range b.transitions {
		symbols = append(symbols, t.Symbol)
	}
	return symbols
}

func (b *Builder) acceptSet() *bitset.BitSet {
	accept := bitset.New(0)
	for s := range b.accept {
		accept.Set(uint(s))
	}
	return accept
}
