package fa

import (
	"github.com/bits-and-blooms/bitset"
)

func singleState() *bitset.BitSet {
	return bitset.New(1).Set(0)
}

// MakeEmpty Returns a new (deterministic) automaton with the empty language.
func MakeEmpty(alphabet ...Symbol) *DFA {
	return newDFA(singleState(), alphabet, map[State][]Transition{}, 0, bitset.New(0))
}

// MakeEmptyString Returns a new (deterministic) automaton that accepts only the empty string.
func MakeEmptyString(alphabet ...Symbol) *DFA {
	return newDFA(singleState(), alphabet, map[State][]Transition{}, 0, singleState())
}

// MakeAnyString Returns a new (deterministic) automaton that accepts all strings over the alphabet.
// The result is complete.
func MakeAnyString(alphabet ...Symbol) *DFA {
	sigma := normalizeAlphabet(alphabet)
	ts := make([]Transition, 0, len(sigma))
	for _, c := range sigma {
		ts = append(ts, Transition{Source: 0, Symbol: c, Dest: 0})
	}
	return newDFA(singleState(), sigma, map[State][]Transition{0: ts}, 0, singleState())
}

// MakeString Returns a new (deterministic) automaton that accepts exactly word. The alphabet is the
// symbols of word plus any extra ones given.
func MakeString(word []Symbol, alphabet ...Symbol) (*DFA, error) {
	b := NewBuilder().AddState(0).SetStart(0).AddSymbol(alphabet...)
	for i, c := range word {
		if c == Epsilon {
			return nil, malformed("epsilon at position %d of a literal", i)
		}
		b.AddState(i+1).AddTransition(i, c, i+1)
	}
	b.SetAccept(len(word), true)
	return b.DFA()
}
