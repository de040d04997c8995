package fa

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
)

func TestForwardBackwardReachable(t *testing.T) {
	d := sinkDFA(t)
	assert.Equal(t, []State{0, 1, 2, 3, 4, 5, 6, 7}, members(ForwardReachable(d)))
	assert.Equal(t, []State{0, 1, 2, 3, 4}, members(BackwardReachable(d)))

	n := loopNFA(t)
	assert.Equal(t, []State{1, 2, 3}, members(ForwardReachable(n)))
	assert.Equal(t, []State{1, 2, 3}, members(BackwardReachable(n)))
}

func TestEpsilonClosure(t *testing.T) {
	n := mustNFA(t, NewBuilder().
		AddState(0, 1, 2, 3).
		SetStart(0).
		AddTransition(0, Epsilon, 1).
		AddTransition(1, Epsilon, 2).
		AddTransition(2, Epsilon, 0).
		AddTransition(2, "a", 3))

	assert.Equal(t, []State{0, 1, 2}, members(EpsilonClosure(n, bitset.New(0).Set(0))))
	assert.Equal(t, []State{3}, members(EpsilonClosure(n, bitset.New(0).Set(3))))
	assert.Empty(t, members(EpsilonClosure(n, bitset.New(0))))

	in := bitset.New(0).Set(3)
	EpsilonClosure(n, in)
	assert.Equal(t, uint(1), in.Count())
}

func TestPrune(t *testing.T) {
	d := sinkDFA(t)
	p := Prune(d)

	assert.Equal(t, []State{0, 1, 2, 3, 4}, p.States())
	assert.Equal(t, []Symbol{"a", "b", "c"}, p.Alphabet())
	assert.Equal(t, []State{3}, p.AcceptStates())
	assert.Equal(t, 8, p.NumTransitions())
	_, ok := p.Step(1, "c")
	assert.False(t, ok)

	assert.True(t, Prune(p).Equal(p))
	assertSameLanguage(t, d, p, d.Alphabet(), 6)

	// The argument is untouched.
	assert.Equal(t, 8, d.NumStates())
	assert.Equal(t, 11, d.NumTransitions())
}

func TestPruneEmptyLanguage(t *testing.T) {
	d := mustDFA(t, NewBuilder().
		AddState(0, 1).
		SetStart(0).
		AddTransition(0, "a", 1).
		AddTransition(1, "a", 0))
	p := Prune(d)
	assert.Equal(t, []State{0}, p.States())
	assert.Zero(t, p.NumTransitions())
	assert.Empty(t, p.Alphabet())
	assert.True(t, Prune(p).Equal(p))
}

func TestPruneUnreachableAccept(t *testing.T) {
	d := mustDFA(t, NewBuilder().
		AddState(0, 1, 2).
		SetStart(0).
		SetAccept(0, true).
		SetAccept(2, true).
		AddTransition(0, "a", 1).
		AddTransition(2, "a", 0))
	p := Prune(d)
	assert.Equal(t, []State{0}, p.States())
	assert.Equal(t, []State{0}, p.AcceptStates())
}

func TestRemoveUnreachable(t *testing.T) {
	d := mustDFA(t, NewBuilder().
		AddState(0, 1, 2).
		SetStart(0).
		SetAccept(2, true).
		AddSymbol("b").
		AddTransition(0, "a", 1).
		AddTransition(2, "a", 0))
	r := RemoveUnreachable(d)
	assert.Equal(t, []State{0, 1}, r.States())
	assert.Empty(t, r.AcceptStates())
	assert.Equal(t, []Symbol{"a", "b"}, r.Alphabet())
	assert.Equal(t, 1, r.NumTransitions())
}

func TestIsEmpty(t *testing.T) {
	assert.False(t, IsEmpty(threeStateDFA(t)))
	assert.False(t, IsEmpty(loopNFA(t)))
	assert.True(t, IsEmpty(MakeEmpty("a")))
	assert.False(t, IsEmpty(MakeEmptyString()))

	unreachable := mustDFA(t, NewBuilder().
		AddState(0, 1).
		SetStart(0).
		SetAccept(1, true).
		AddTransition(1, "a", 0))
	assert.True(t, IsEmpty(unreachable))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(threeStateDFA(t)))
	assert.True(t, IsFinite(redundantDFA(t)))
	assert.True(t, IsFinite(MakeEmpty("a")))
	assert.False(t, IsFinite(evenADFA(t)))
	assert.False(t, IsFinite(abStarDFA(t)))
	// 0 -b-> 2 -b-> 0 is a cycle on a path to 3.
	assert.False(t, IsFinite(sinkDFA(t)))

	// A cycle that cannot reach an accept state does not count.
	d := mustDFA(t, NewBuilder().
		AddState(0, 1, 2).
		SetStart(0).
		SetAccept(1, true).
		AddTransition(0, "a", 1).
		AddTransition(0, "b", 2).
		AddTransition(2, "b", 2))
	assert.True(t, IsFinite(d))
}
