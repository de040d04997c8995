package fa

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Determinize converts n into an equivalent DFA with the subset construction. Only subsets
// reachable from the epsilon closure of Q0 are materialized; DFA states are numbered in discovery
// order, so state 0 is the start. Empty successor sets are left out, so the result may be partial.
// Worst case complexity: exponential in the number of states; WithWorkLimit bounds the number of
// subsets and fails with ErrTooComplexToDeterminize beyond it.
func Determinize(n *NFA, opts ...Option) (*DFA, error) {
	o := newOptions(opts...)

	closures := make(map[State]*bitset.BitSet, n.NumStates())
	for s, ok := n.states.NextSet(0); ok; s, ok = n.states.NextSet(s + 1) {
		closures[State(s)] = EpsilonClosure(n, bitset.New(s+1).Set(s))
	}
	closeSet := func(set *bitset.BitSet) *bitset.BitSet {
		closure := bitset.New(0)
		for s, ok := set.NextSet(0); ok; s, ok = set.NextSet(s + 1) {
			closure.InPlaceUnion(closures[State(s)])
		}
		return closure
	}

	index := newSubsetIndex(16)
	lookup := func(set *bitset.BitSet) (State, error) {
		key := newFrozenStateSet(set)
		if id, ok := index.lookup(key); ok {
			return id, nil
		}
		if o.workLimit > 0 && index.size() >= o.workLimit {
			return -1, fmt.Errorf("%w: more than %d subsets", ErrTooComplexToDeterminize, o.workLimit)
		}
		return index.add(key), nil
	}

	if _, err := lookup(closeSet(n.starts)); err != nil {
		return nil, err
	}

	out := make(map[State][]Transition)
	accept := bitset.New(0)
	// The index doubles as the work list: every id from i on is discovered but not yet expanded.
	for i := 0; i < index.size(); i++ {
		from := State(i)
		set := index.subset(from).bits
		if set.IntersectionCardinality(n.accept) > 0 {
			accept.Set(uint(i))
		}
		for _, c := range n.alphabet {
			next := move(n, set, c)
			if next.None() {
				continue
			}
			dest, err := lookup(closeSet(next))
			if err != nil {
				return nil, err
			}
			out[from] = append(out[from], Transition{Source: from, Symbol: c, Dest: dest})
		}
	}

	states := bitset.New(uint(index.size()))
	for i := range index.size() {
		states.Set(uint(i))
	}
	o.logger.Debug("determinized automaton", "nfaStates", n.NumStates(), "dfaStates", index.size())
	return newDFA(states, n.alphabet, out, 0, accept), nil
}
