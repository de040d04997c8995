package fa

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// AsNFA returns d as an NFA with the single start state q0.
func AsNFA(d *DFA) *NFA {
	return toNFA(d)
}

func toNFA(a Automaton) *NFA {
	if n, ok := a.(*NFA); ok {
		return n
	}
	return shifted(a, 0)
}

// shifted copies a with every state renumbered by offset.
func shifted(a Automaton, offset int) *NFA {
	states := bitset.New(0)
	out := make(map[State][]Transition)
	src := a.stateSet()
	for s, ok := src.NextSet(0); ok; s, ok = src.NextSet(s + 1) {
		from := State(s) + offset
		states.Set(uint(from))
		for _, t := range a.edges(State(s)) {
			out[from] = append(out[from], Transition{Source: from, Symbol: t.Symbol, Dest: t.Dest + offset})
		}
	}
	return newNFA(states, a.Alphabet(), out, shiftSet(a.initial(), offset), shiftSet(a.finals(), offset))
}

func shiftSet(set *bitset.BitSet, offset int) *bitset.BitSet {
	res := bitset.New(0)
	for s, ok := set.NextSet(0); ok; s, ok = set.NextSet(s + 1) {
		res.Set(s + uint(offset))
	}
	return res
}

// Reverse returns an NFA for the reversal of L(a): every transition flipped, the accept states
// becoming start states and the start states becoming accept states.
func Reverse(a Automaton) *NFA {
	out := make(map[State][]Transition)
	states := a.stateSet()
	for s, ok := states.NextSet(0); ok; s, ok = states.NextSet(s + 1) {
		for _, t := range a.edges(State(s)) {
			out[t.Dest] = append(out[t.Dest], Transition{Source: t.Dest, Symbol: t.Symbol, Dest: t.Source})
		}
	}
	return newNFA(states.Clone(), a.Alphabet(), out, a.finals().Clone(), a.initial().Clone())
}

// Alternate returns an NFA for L(a) ∪ L(b). States of b are renumbered past those of a.
func Alternate(a, b Automaton) *NFA {
	left := toNFA(a)
	right := shifted(b, maxState(a.stateSet())+1)
	return newNFA(
		left.states.Union(right.states),
		slices.Concat(left.alphabet, right.alphabet),
		mergeTransitions(left.out, right.out),
		left.starts.Union(right.starts),
		left.accept.Union(right.accept),
	)
}

// Concatenate returns an NFA for L(a)·L(b): an epsilon transition links every accept state of a
// to every start state of b. States of b are renumbered past those of a.
func Concatenate(a, b Automaton) *NFA {
	left := toNFA(a)
	right := shifted(b, maxState(a.stateSet())+1)
	out := mergeTransitions(left.out, right.out)
	for f, ok := left.accept.NextSet(0); ok; f, ok = left.accept.NextSet(f + 1) {
		for s, ok := right.starts.NextSet(0); ok; s, ok = right.starts.NextSet(s + 1) {
			out[State(f)] = append(out[State(f)], Transition{Source: State(f), Symbol: Epsilon, Dest: State(s)})
		}
	}
	return newNFA(
		left.states.Union(right.states),
		slices.Concat(left.alphabet, right.alphabet),
		out,
		left.starts.Clone(),
		right.accept.Clone(),
	)
}

// Star returns an NFA for L(a)*. A new accepting start state, numbered past the states of a,
// has epsilon transitions to the old start states, and every accept state has one back to it.
func Star(a Automaton) *NFA {
	n := toNFA(a)
	start := maxState(n.states) + 1
	out := mergeTransitions(n.out)
	for s, ok := n.starts.NextSet(0); ok; s, ok = n.starts.NextSet(s + 1) {
		out[start] = append(out[start], Transition{Source: start, Symbol: Epsilon, Dest: State(s)})
	}
	for f, ok := n.accept.NextSet(0); ok; f, ok = n.accept.NextSet(f + 1) {
		out[State(f)] = append(out[State(f)], Transition{Source: State(f), Symbol: Epsilon, Dest: start})
	}
	return newNFA(
		n.states.Clone().Set(uint(start)),
		n.alphabet,
		out,
		bitset.New(uint(start)+1).Set(uint(start)),
		n.accept.Clone().Set(uint(start)),
	)
}

// mergeTransitions copies the transition lists of several automata with disjoint states.
func mergeTransitions(outs ...map[State][]Transition) map[State][]Transition {
	merged := make(map[State][]Transition)
	for _, out := range outs {
		for s, ts := range out {
			merged[s] = append(merged[s], ts...)
		}
	}
	return merged
}
