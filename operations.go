package fa

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// OptionalState is a state that may be absent. An absent state stands for the implicit reject
// sink behind a missing transition.
type OptionalState struct {
	State State
	Valid bool
}

func presentState(s State) OptionalState {
	return OptionalState{State: s, Valid: true}
}

func (o OptionalState) String() string {
	if !o.Valid {
		return "⊥"
	}
	return fmt.Sprint(o.State)
}

type statePair struct {
	x, y OptionalState
}

// Product is the synchronous product of two DFAs without accept states. Derived operators pick the
// accept states with Accepting.
type Product struct {
	a, b  *DFA
	pairs []statePair
	dfa   *DFA
}

// NewProduct builds the product of a and b over Σa ∪ Σb, starting at (q0a, q0b). Every pair in
// Qa × Qb is a state. A transition ((x,y), c) -> (δa(x,c), δb(y,c)) is kept only when include
// holds on the two destinations, either of which may be absent; pairs with an absent side become
// states when a kept transition reaches them.
func NewProduct(a, b *DFA, include func(x, y OptionalState) bool) *Product {
	sigma := normalizeAlphabet(append(a.Alphabet(), b.alphabet...))

	ids := make(map[statePair]State)
	var pairs []statePair
	intern := func(p statePair) State {
		if id, ok := ids[p]; ok {
			return id
		}
		id := State(len(pairs))
		ids[p] = id
		pairs = append(pairs, p)
		return id
	}
	for _, x := range a.States() {
		for _, y := range b.States() {
			intern(statePair{presentState(x), presentState(y)})
		}
	}

	out := make(map[State][]Transition)
	// pairs grows while one-sided pairs are discovered.
	for i := 0; i < len(pairs); i++ {
		p := pairs[i]
		from := State(i)
		for _, c := range sigma {
			x, y := stepOptional(a, p.x, c), stepOptional(b, p.y, c)
			if !include(x, y) {
				continue
			}
			out[from] = append(out[from], Transition{Source: from, Symbol: c, Dest: intern(statePair{x, y})})
		}
	}

	states := bitset.New(uint(len(pairs)))
	for i := range pairs {
		states.Set(uint(i))
	}
	start := ids[statePair{presentState(a.start), presentState(b.start)}]
	return &Product{
		a:     a,
		b:     b,
		pairs: pairs,
		dfa:   newDFA(states, sigma, out, start, bitset.New(0)),
	}
}

func stepOptional(d *DFA, s OptionalState, c Symbol) OptionalState {
	if !s.Valid {
		return OptionalState{}
	}
	dest, ok := d.Step(s.State, c)
	return OptionalState{State: dest, Valid: ok}
}

// DFA returns the product automaton, which has no accept states.
func (p *Product) DFA() *DFA { return p.dfa }

// Pair returns the component states of product state s.
func (p *Product) Pair(s State) (OptionalState, OptionalState) {
	if s < 0 || s >= len(p.pairs) {
		return OptionalState{}, OptionalState{}
	}
	return p.pairs[s].x, p.pairs[s].y
}

// Accepting returns the product DFA whose accept states are the pairs satisfying accept.
func (p *Product) Accepting(accept func(x, y OptionalState) bool) *DFA {
	acc := bitset.New(uint(len(p.pairs)))
	for i, pr := range p.pairs {
		if accept(pr.x, pr.y) {
			acc.Set(uint(i))
		}
	}
	return &DFA{
		states:   p.dfa.states,
		alphabet: p.dfa.alphabet,
		out:      p.dfa.out,
		start:    p.dfa.start,
		accept:   acc,
	}
}

func bothPresent(x, y OptionalState) bool { return x.Valid && y.Valid }

func eitherPresent(x, y OptionalState) bool { return x.Valid || y.Valid }

func accepts(d *DFA, s OptionalState) bool { return s.Valid && d.IsAccept(s.State) }

// Intersection returns a DFA for L(a) ∩ L(b).
func Intersection(a, b *DFA) *DFA {
	return NewProduct(a, b, bothPresent).Accepting(func(x, y OptionalState) bool {
		return accepts(a, x) && accepts(b, y)
	})
}

// Union returns a DFA for L(a) ∪ L(b).
func Union(a, b *DFA) *DFA {
	return NewProduct(a, b, eitherPresent).Accepting(func(x, y OptionalState) bool {
		return accepts(a, x) || accepts(b, y)
	})
}

// Difference returns a DFA for L(a) \ L(b).
func Difference(a, b *DFA) *DFA {
	return NewProduct(a, b, eitherPresent).Accepting(func(x, y OptionalState) bool {
		return accepts(a, x) && !accepts(b, y)
	})
}

// Complement returns a DFA for Σ* \ L(d) by flipping the accept states. d must be complete; the
// error wraps ErrIncompleteForComplement otherwise.
func Complement(d *DFA) (*DFA, error) {
	if s, c, ok := d.firstMissing(); !ok {
		return nil, fmt.Errorf("%w: no transition from state %d on %q", ErrIncompleteForComplement, s, c)
	}
	return &DFA{
		states:   d.states,
		alphabet: d.alphabet,
		out:      d.out,
		start:    d.start,
		accept:   d.states.Difference(d.accept),
	}, nil
}

// Totalize returns a complete DFA for the same language: a new sink state, numbered one past the
// largest state, absorbs every missing transition. A complete d is returned as is.
func Totalize(d *DFA) *DFA {
	if d.IsComplete() {
		return d
	}
	deadState := maxState(d.states) + 1
	states := d.states.Clone().Set(uint(deadState))

	out := make(map[State][]Transition, len(d.out)+1)
	for s, ok := states.NextSet(0); ok; s, ok = states.NextSet(s + 1) {
		from := State(s)
		ts := make([]Transition, 0, len(d.alphabet))
		for _, c := range d.alphabet {
			dest, found := d.Step(from, c)
			if !found {
				dest = deadState
			}
			ts = append(ts, Transition{Source: from, Symbol: c, Dest: dest})
		}
		out[from] = ts
	}
	return newDFA(states, d.alphabet, out, d.start, d.accept.Clone())
}

// Equivalent reports whether a and b accept the same language: the product accepting exactly the
// pairs where a and b disagree has an empty language.
func Equivalent(a, b *DFA) bool {
	return IsEmpty(NewProduct(a, b, eitherPresent).Accepting(func(x, y OptionalState) bool {
		return accepts(a, x) != accepts(b, y)
	}))
}

// Subset reports whether L(a) ⊆ L(b).
func Subset(a, b *DFA) bool {
	return IsEmpty(Difference(a, b))
}
