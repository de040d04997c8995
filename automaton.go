// Package fa implements deterministic and nondeterministic finite automata: simulation, pruning,
// minimization, determinization and the boolean algebra of regular languages.
//
// Automata are immutable once built. Every operation returns a new value and never modifies its
// arguments, so a single automaton may be shared freely between goroutines.
package fa

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Symbol is an element of an alphabet.
type Symbol string

// Epsilon labels transitions taken without reading input. It is only valid in an NFA and is never
// part of an alphabet.
const Epsilon Symbol = ""

// State identifies a state. States are non-negative and carry no meaning beyond identity.
type State = int

// Kind tells the two automaton shapes apart.
type Kind int

const (
	KindDFA Kind = iota
	KindNFA
)

func (k Kind) String() string {
	switch k {
	case KindDFA:
		return "DFA"
	case KindNFA:
		return "NFA"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Transition is a single labelled edge.
type Transition struct {
	Source State
	Symbol Symbol
	Dest   State
}

func (t Transition) String() string {
	if t.Symbol == Epsilon {
		return fmt.Sprintf("%d -ε-> %d", t.Source, t.Dest)
	}
	return fmt.Sprintf("%d -%s-> %d", t.Source, t.Symbol, t.Dest)
}

// Automaton is either a *DFA or an *NFA.
type Automaton interface {
	Kind() Kind
	States() []State
	Alphabet() []Symbol
	IsAccept(state State) bool
	NumStates() int

	stateSet() *bitset.BitSet
	initial() *bitset.BitSet
	finals() *bitset.BitSet
	edges(state State) []Transition
}

var (
	_ Automaton = &DFA{}
	_ Automaton = &NFA{}
)

// DFA is a deterministic finite automaton (Q, Σ, δ, q0, F). δ may be partial; a missing
// transition rejects.
type DFA struct {
	states   *bitset.BitSet
	alphabet []Symbol
	// Leaving transitions per state, sorted by symbol.
	out    map[State][]Transition
	start  State
	accept *bitset.BitSet
}

// newDFA assumes the invariants already hold; out is sorted in place.
func newDFA(states *bitset.BitSet, alphabet []Symbol, out map[State][]Transition, start State, accept *bitset.BitSet) *DFA {
	for _, ts := range out {
		sortTransitions(ts)
	}
	return &DFA{
		states:   states,
		alphabet: normalizeAlphabet(alphabet),
		out:      out,
		start:    start,
		accept:   accept,
	}
}

func (d *DFA) Kind() Kind { return KindDFA }

// States returns the states in ascending order.
func (d *DFA) States() []State { return members(d.states) }

// Alphabet returns the sorted alphabet.
func (d *DFA) Alphabet() []Symbol { return slices.Clone(d.alphabet) }

func (d *DFA) Start() State { return d.start }

// HasState reports whether state is in Q.
func (d *DFA) HasState(state State) bool { return state >= 0 && d.states.Test(uint(state)) }

// IsAccept Returns true if this state is an accept state.
func (d *DFA) IsAccept(state State) bool { return state >= 0 && d.accept.Test(uint(state)) }

// AcceptStates returns F in ascending order.
func (d *DFA) AcceptStates() []State { return members(d.accept) }

// NumStates How many states this automaton has.
func (d *DFA) NumStates() int { return int(d.states.Count()) }

// NumTransitions How many transitions this automaton has.
func (d *DFA) NumTransitions() int {
	n := 0
	for _, ts := range d.out {
		n += len(ts)
	}
	return n
}

// Step returns δ(state, symbol). Since transitions are sorted, it binary searches the leaving
// transitions of state.
func (d *DFA) Step(state State, symbol Symbol) (State, bool) {
	ts := d.out[state]
	low, high := 0, len(ts)-1
	for low <= high {
		mid := (low + high) >> 1
		switch t := ts[mid]; {
		case t.Symbol > symbol:
			high = mid - 1
		case t.Symbol < symbol:
			low = mid + 1
		default:
			return t.Dest, true
		}
	}
	return -1, false
}

// Transitions returns the transitions leaving state, sorted by symbol.
func (d *DFA) Transitions(state State) []Transition { return slices.Clone(d.out[state]) }

// AllTransitions returns every transition sorted by source, then symbol.
func (d *DFA) AllTransitions() []Transition { return allTransitions(d.states, d.out) }

// IsComplete reports whether δ is total over Q × Σ.
func (d *DFA) IsComplete() bool {
	_, _, ok := d.firstMissing()
	return ok
}

func (d *DFA) firstMissing() (State, Symbol, bool) {
	for s, ok := d.states.NextSet(0); ok; s, ok = d.states.NextSet(s + 1) {
		ts := d.out[State(s)]
		if len(ts) == len(d.alphabet) {
			continue
		}
		for _, c := range d.alphabet {
			if _, found := d.Step(State(s), c); !found {
				return State(s), c, false
			}
		}
	}
	return 0, "", true
}

// Equal reports whether d and o are the same automaton, state for state.
func (d *DFA) Equal(o *DFA) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.start == o.start &&
		sameSet(d.states, o.states) &&
		sameSet(d.accept, o.accept) &&
		slices.Equal(d.alphabet, o.alphabet) &&
		slices.Equal(d.AllTransitions(), o.AllTransitions())
}

func (d *DFA) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "DFA states=%v alphabet=%v start=%d accept=%v\n",
		d.States(), d.alphabet, d.start, d.AcceptStates())
	for _, t := range d.AllTransitions() {
		sb.WriteString("  ")
		sb.WriteString(t.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (d *DFA) stateSet() *bitset.BitSet { return d.states }

func (d *DFA) initial() *bitset.BitSet {
	return bitset.New(uint(d.start) + 1).Set(uint(d.start))
}

func (d *DFA) finals() *bitset.BitSet { return d.accept }

func (d *DFA) edges(state State) []Transition { return d.out[state] }

// NFA is a nondeterministic finite automaton (Q, Σ, δ, Q0, F) whose transitions may read Epsilon.
type NFA struct {
	states   *bitset.BitSet
	alphabet []Symbol
	// Leaving transitions per state, sorted by symbol then dest. Epsilon sorts first.
	out    map[State][]Transition
	starts *bitset.BitSet
	accept *bitset.BitSet
}

func newNFA(states *bitset.BitSet, alphabet []Symbol, out map[State][]Transition, starts, accept *bitset.BitSet) *NFA {
	for s, ts := range out {
		sortTransitions(ts)
		out[s] = slices.Compact(ts)
	}
	return &NFA{
		states:   states,
		alphabet: normalizeAlphabet(alphabet),
		out:      out,
		starts:   starts,
		accept:   accept,
	}
}

func (n *NFA) Kind() Kind { return KindNFA }

// States returns the states in ascending order.
func (n *NFA) States() []State { return members(n.states) }

// Alphabet returns the sorted alphabet. Epsilon is never included.
func (n *NFA) Alphabet() []Symbol { return slices.Clone(n.alphabet) }

// Starts returns Q0 in ascending order.
func (n *NFA) Starts() []State { return members(n.starts) }

func (n *NFA) HasState(state State) bool { return state >= 0 && n.states.Test(uint(state)) }

func (n *NFA) IsAccept(state State) bool { return state >= 0 && n.accept.Test(uint(state)) }

func (n *NFA) AcceptStates() []State { return members(n.accept) }

func (n *NFA) NumStates() int { return int(n.states.Count()) }

func (n *NFA) NumTransitions() int {
	c := 0
	for _, ts := range n.out {
		c += len(ts)
	}
	return c
}

// Successors returns δ(state, symbol) in ascending order. Passing Epsilon returns the direct
// epsilon successors, not the closure.
func (n *NFA) Successors(state State, symbol Symbol) []State {
	ts := n.out[state]
	i, _ := slices.BinarySearchFunc(ts, symbol, func(t Transition, c Symbol) int {
		return cmp.Compare(t.Symbol, c)
	})
	var dests []State
	for ; i < len(ts) && ts[i].Symbol == symbol; i++ {
		dests = append(dests, ts[i].Dest)
	}
	return dests
}

// Transitions returns the transitions leaving state.
func (n *NFA) Transitions(state State) []Transition { return slices.Clone(n.out[state]) }

// AllTransitions returns every transition sorted by source, symbol and dest.
func (n *NFA) AllTransitions() []Transition { return allTransitions(n.states, n.out) }

// Equal reports whether n and o are the same automaton, state for state.
func (n *NFA) Equal(o *NFA) bool {
	if n == nil || o == nil {
		return n == o
	}
	return sameSet(n.states, o.states) &&
		sameSet(n.starts, o.starts) &&
		sameSet(n.accept, o.accept) &&
		slices.Equal(n.alphabet, o.alphabet) &&
		slices.Equal(n.AllTransitions(), o.AllTransitions())
}

func (n *NFA) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "NFA states=%v alphabet=%v starts=%v accept=%v\n",
		n.States(), n.alphabet, n.Starts(), n.AcceptStates())
	for _, t := range n.AllTransitions() {
		sb.WriteString("  ")
		sb.WriteString(t.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (n *NFA) stateSet() *bitset.BitSet { return n.states }

func (n *NFA) initial() *bitset.BitSet { return n.starts }

func (n *NFA) finals() *bitset.BitSet { return n.accept }

func (n *NFA) edges(state State) []Transition { return n.out[state] }

// Sorts transitions by symbol, ascending, then dest ascending.
func sortTransitions(ts []Transition) {
	slices.SortFunc(ts, func(a, b Transition) int {
		if c := cmp.Compare(a.Symbol, b.Symbol); c != 0 {
			return c
		}
		return cmp.Compare(a.Dest, b.Dest)
	})
}

func allTransitions(states *bitset.BitSet, out map[State][]Transition) []Transition {
	var all []Transition
	for s, ok := states.NextSet(0); ok; s, ok = states.NextSet(s + 1) {
		all = append(all, out[State(s)]...)
	}
	return all
}

func normalizeAlphabet(alphabet []Symbol) []Symbol {
	res := make([]Symbol, 0, len(alphabet))
	for _, c := range alphabet {
		if c != Epsilon {
			res = append(res, c)
		}
	}
	slices.Sort(res)
	return slices.Compact(res)
}

// members returns the set bits of b in ascending order.
func members(b *bitset.BitSet) []State {
	res := make([]State, 0, b.Count())
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		res = append(res, State(i))
	}
	return res
}

// sameSet compares by content; bitset.Equal also compares lengths.
func sameSet(a, b *bitset.BitSet) bool {
	return a.SymmetricDifferenceCardinality(b) == 0
}

func maxState(states *bitset.BitSet) State {
	m := -1
	for s, ok := states.NextSet(0); ok; s, ok = states.NextSet(s + 1) {
		m = State(s)
	}
	return m
}
