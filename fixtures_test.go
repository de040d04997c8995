package fa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDFA(t *testing.T, b *Builder) *DFA {
	t.Helper()
	d, err := b.DFA()
	require.NoError(t, err)
	return d
}

func mustNFA(t *testing.T, b *Builder) *NFA {
	t.Helper()
	n, err := b.NFA()
	require.NoError(t, err)
	return n
}

// threeStateDFA accepts "b" and "aa".
func threeStateDFA(t *testing.T) *DFA {
	return mustDFA(t, NewBuilder().
		AddState(0, 1, 2).
		SetStart(0).
		SetAccept(2, true).
		AddTransition(0, "a", 1).
		AddTransition(0, "b", 2).
		AddTransition(1, "a", 2))
}

// sinkDFA has a dead branch: 5 only leads to the non-accepting sink 7, and 6 is a sink too.
func sinkDFA(t *testing.T) *DFA {
	return mustDFA(t, NewBuilder().
		AddState(0, 1, 2, 3, 4, 5, 6, 7).
		AddSymbol("a", "b", "c", "d").
		SetStart(0).
		SetAccept(3, true).
		AddTransition(0, "a", 4).
		AddTransition(0, "b", 2).
		AddTransition(0, "c", 1).
		AddTransition(0, "d", 5).
		AddTransition(1, "a", 2).
		AddTransition(1, "b", 3).
		AddTransition(1, "c", 6).
		AddTransition(2, "a", 4).
		AddTransition(2, "b", 0).
		AddTransition(4, "b", 3).
		AddTransition(5, "d", 7))
}

// redundantDFA accepts "aa" and "ba"; states 1 and 2 are equivalent.
func redundantDFA(t *testing.T) *DFA {
	return mustDFA(t, NewBuilder().
		AddState(0, 1, 2, 3).
		SetStart(0).
		SetAccept(3, true).
		AddTransition(0, "a", 1).
		AddTransition(0, "b", 2).
		AddTransition(1, "a", 3).
		AddTransition(2, "a", 3))
}

// evenADFA is complete and accepts strings over {a, b} with an even number of a's.
func evenADFA(t *testing.T) *DFA {
	return mustDFA(t, NewBuilder().
		AddState(0, 1).
		SetStart(0).
		SetAccept(0, true).
		AddTransition(0, "a", 1).
		AddTransition(0, "b", 0).
		AddTransition(1, "a", 0).
		AddTransition(1, "b", 1))
}

// endsWithBDFA is complete and accepts strings over {a, b} ending in b.
func endsWithBDFA(t *testing.T) *DFA {
	return mustDFA(t, NewBuilder().
		AddState(0, 1).
		SetStart(0).
		SetAccept(1, true).
		AddTransition(0, "a", 0).
		AddTransition(0, "b", 1).
		AddTransition(1, "a", 0).
		AddTransition(1, "b", 1))
}

// abStarDFA is partial and accepts (ab)*.
func abStarDFA(t *testing.T) *DFA {
	return mustDFA(t, NewBuilder().
		AddState(10, 20).
		SetStart(10).
		SetAccept(10, true).
		AddTransition(10, "a", 20).
		AddTransition(20, "b", 10))
}

// cPlusDFA accepts c+ over an alphabet disjoint from the others.
func cPlusDFA(t *testing.T) *DFA {
	return mustDFA(t, NewBuilder().
		AddState(0, 1).
		SetStart(0).
		SetAccept(1, true).
		AddTransition(0, "c", 1).
		AddTransition(1, "c", 1))
}

// loopNFA has epsilon cycles: 2 -ε-> 1 and 3 -ε-> 2.
func loopNFA(t *testing.T) *NFA {
	return mustNFA(t, NewBuilder().
		AddState(1, 2, 3).
		AddSymbol("a", "b").
		SetStart(1).
		SetAccept(3, true).
		AddTransition(1, "b", 2).
		AddTransition(2, "b", 3).
		AddTransition(2, "a", 2).
		AddTransition(2, "a", 3).
		AddTransition(3, Epsilon, 2).
		AddTransition(2, Epsilon, 1).
		AddTransition(3, "a", 1))
}

// thirdFromEndNFA accepts strings over {a, b} whose third symbol from the end is a.
func thirdFromEndNFA(t *testing.T) *NFA {
	return mustNFA(t, NewBuilder().
		AddState(0, 1, 2, 3).
		SetStart(0).
		SetAccept(3, true).
		AddTransition(0, "a", 0).
		AddTransition(0, "b", 0).
		AddTransition(0, "a", 1).
		AddTransition(1, "a", 2).
		AddTransition(1, "b", 2).
		AddTransition(2, "a", 3).
		AddTransition(2, "b", 3))
}

func fixtureDFAs(t *testing.T) map[string]*DFA {
	return map[string]*DFA{
		"threeState": threeStateDFA(t),
		"sink":       sinkDFA(t),
		"redundant":  redundantDFA(t),
		"evenA":      evenADFA(t),
		"endsWithB":  endsWithBDFA(t),
		"abStar":     abStarDFA(t),
		"cPlus":      cPlusDFA(t),
	}
}

// allStrings enumerates every string over alphabet of length at most maxLen, shortest first.
func allStrings(alphabet []Symbol, maxLen int) [][]Symbol {
	words := [][]Symbol{{}}
	layer := [][]Symbol{{}}
	for i := 0; i < maxLen; i++ {
		var next [][]Symbol
		for _, w := range layer {
			for _, c := range alphabet {
				next = append(next, append(append([]Symbol{}, w...), c))
			}
		}
		words = append(words, next...)
		layer = next
	}
	return words
}

func assertSameLanguage(t *testing.T, want, got Automaton, alphabet []Symbol, maxLen int) {
	t.Helper()
	for _, w := range allStrings(alphabet, maxLen) {
		if !assert.Equalf(t, Accepts(want, w), Accepts(got, w), "disagree on %q", Word(w)) {
			return
		}
	}
}
