package fa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustString(t *testing.T, s string) *DFA {
	t.Helper()
	d, err := MakeString(Tokens(s))
	require.NoError(t, err)
	return d
}

func TestReverse(t *testing.T) {
	r := Reverse(mustString(t, "ab"))
	assert.True(t, AcceptsString(r, "ba"))
	assert.False(t, AcceptsString(r, "ab"))

	r = Reverse(thirdFromEndNFA(t))
	assert.True(t, AcceptsString(r, "bba"))
	assert.True(t, AcceptsString(r, "abab"))
	assert.False(t, AcceptsString(r, "abb"))

	d := threeStateDFA(t)
	assertSameLanguage(t, d, Reverse(Reverse(d)), d.Alphabet(), 5)
}

func TestAlternate(t *testing.T) {
	n := Alternate(threeStateDFA(t), cPlusDFA(t))
	assert.Equal(t, []Symbol{"a", "b", "c"}, n.Alphabet())
	assert.Equal(t, 5, n.NumStates())
	for _, w := range allStrings(abc, 4) {
		want := AcceptsDFA(threeStateDFA(t), w) || AcceptsDFA(cPlusDFA(t), w)
		assert.Equalf(t, want, AcceptsNFA(n, w), "input %q", Word(w))
	}
}

func TestConcatenate(t *testing.T) {
	n := Concatenate(mustString(t, "a"), mustString(t, "b"))
	assert.True(t, AcceptsString(n, "ab"))
	assert.False(t, AcceptsString(n, "a"))
	assert.False(t, AcceptsString(n, "ba"))

	a, b := threeStateDFA(t), evenADFA(t)
	n = Concatenate(a, b)
	for _, w := range allStrings([]Symbol{"a", "b"}, 5) {
		want := false
		for i := 0; i <= len(w); i++ {
			if AcceptsDFA(a, w[:i]) && AcceptsDFA(b, w[i:]) {
				want = true
				break
			}
		}
		assert.Equalf(t, want, AcceptsNFA(n, w), "input %q", Word(w))
	}

	// Concatenating with the empty string changes nothing.
	assertSameLanguage(t, a, Concatenate(a, MakeEmptyString()), a.Alphabet(), 5)
}

func TestStar(t *testing.T) {
	n := Star(mustString(t, "ab"))
	for input, want := range map[string]bool{
		"":       true,
		"ab":     true,
		"abab":   true,
		"ababab": true,
		"a":      false,
		"aba":    false,
		"ba":     false,
	} {
		assert.Equalf(t, want, AcceptsNFA(n, Tokens(input)), "input %q", input)
	}

	d, err := Determinize(n)
	require.NoError(t, err)
	assert.True(t, Equivalent(Minimize(d), abStarDFA(t)))
}

func TestNFAOperationsDoNotModifyArguments(t *testing.T) {
	n := loopNFA(t)
	before := n.String()
	Star(n)
	Concatenate(n, n)
	Alternate(n, n)
	Reverse(n)
	assert.Equal(t, before, n.String())
}
