package fa

import (
	"github.com/bits-and-blooms/bitset"
)

// ForwardReachable returns the states reachable from the start state(s) through any transition,
// epsilon transitions included. The start states themselves are always reachable.
func ForwardReachable(a Automaton) *bitset.BitSet {
	live := a.initial().Clone()
	workList := members(live)
	for len(workList) > 0 {
		s := workList[len(workList)-1]
		workList = workList[:len(workList)-1]
		for _, t := range a.edges(s) {
			if !live.Test(uint(t.Dest)) {
				live.Set(uint(t.Dest))
				workList = append(workList, t.Dest)
			}
		}
	}
	return live
}

// BackwardReachable returns the states from which some accept state can be reached, found by
// walking the reversed transition relation from F.
func BackwardReachable(a Automaton) *bitset.BitSet {
	prev := predecessors(a)
	live := a.finals().Clone()
	workList := members(live)
	for len(workList) > 0 {
		s := workList[len(workList)-1]
		workList = workList[:len(workList)-1]
		for _, p := range prev[s] {
			if !live.Test(uint(p)) {
				live.Set(uint(p))
				workList = append(workList, p)
			}
		}
	}
	return live
}

// The transition relation as an unlabeled graph with every edge reversed.
func predecessors(a Automaton) map[State][]State {
	prev := make(map[State][]State)
	states := a.stateSet()
	for s, ok := states.NextSet(0); ok; s, ok = states.NextSet(s + 1) {
		for _, t := range a.edges(State(s)) {
			prev[t.Dest] = append(prev[t.Dest], t.Source)
		}
	}
	return prev
}

// EpsilonClosure returns the states reachable from set using only epsilon transitions, set
// included.
func EpsilonClosure(n *NFA, set *bitset.BitSet) *bitset.BitSet {
	closure := set.Clone()
	stack := members(set)
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		// Epsilon sorts first.
		for _, t := range n.out[s] {
			if t.Symbol != Epsilon {
				break
			}
			if !closure.Test(uint(t.Dest)) {
				closure.Set(uint(t.Dest))
				stack = append(stack, t.Dest)
			}
		}
	}
	return closure
}

// move returns the union of δ(s, symbol) over s in set, without closing it.
func move(n *NFA, set *bitset.BitSet, symbol Symbol) *bitset.BitSet {
	next := bitset.New(0)
	for s, ok := set.NextSet(0); ok; s, ok = set.NextSet(s + 1) {
		for _, d := range n.Successors(State(s), symbol) {
			next.Set(uint(d))
		}
	}
	return next
}

// Prune removes every state that is unreachable from q0 or cannot reach an accept state, with the
// transitions touching them. q0 is always kept. The alphabet is recomputed from the transitions
// that remain. Prune is idempotent.
func Prune(d *DFA) *DFA {
	live := ForwardReachable(d)
	live.InPlaceIntersection(BackwardReachable(d))

	kept := live.Clone()
	kept.Set(uint(d.start))

	out := make(map[State][]Transition)
	var alphabet []Symbol
	for s, ok := live.NextSet(0); ok; s, ok = live.NextSet(s + 1) {
		// filter out transitions to dead states:
		for _, t := range d.out[State(s)] {
			if live.Test(uint(t.Dest)) {
				out[t.Source] = append(out[t.Source], t)
				alphabet = append(alphabet, t.Symbol)
			}
		}
	}
	return newDFA(kept, alphabet, out, d.start, d.accept.Intersection(kept))
}

// restrict keeps the states in kept and the transitions between them. The alphabet is unchanged.
func restrict(d *DFA, kept *bitset.BitSet) *DFA {
	out := make(map[State][]Transition)
	for s, ok := kept.NextSet(0); ok; s, ok = kept.NextSet(s + 1) {
		for _, t := range d.out[State(s)] {
			if kept.Test(uint(t.Dest)) {
				out[t.Source] = append(out[t.Source], t)
			}
		}
	}
	return newDFA(kept.Clone(), d.alphabet, out, d.start, d.accept.Intersection(kept))
}

// RemoveUnreachable drops the states that cannot be reached from q0.
func RemoveUnreachable(d *DFA) *DFA {
	return restrict(d, ForwardReachable(d))
}

// IsEmpty returns true if the given automaton accepts no strings.
func IsEmpty(a Automaton) bool {
	return ForwardReachable(a).IntersectionCardinality(a.finals()) == 0
}

// IsFinite reports whether d accepts finitely many strings, that is whether no cycle lies on a
// path from q0 to an accept state.
func IsFinite(d *DFA) bool {
	p := Prune(d)
	if p.accept.None() {
		return true
	}
	return isFinite(p, p.start, bitset.New(0), bitset.New(0))
}

// Checks whether there is a loop containing state. This is sufficient since a pruned automaton has
// no transitions to dead states.
// TODO: recursion depth grows with the longest simple path; switch to an explicit stack if
// automata with very long chains show up.
func isFinite(d *DFA, state State, path, visited *bitset.BitSet) bool {
	path.Set(uint(state))
	for _, t := range d.out[state] {
		if path.Test(uint(t.Dest)) || (!visited.Test(uint(t.Dest)) && !isFinite(d, t.Dest, path, visited)) {
			return false
		}
	}
	path.Clear(uint(state))
	visited.Set(uint(state))
	return true
}
