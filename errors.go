package fa

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedAutomaton is returned when a definition violates the automaton invariants:
	// dangling transition endpoints, start or accept states outside the state set, a DFA
	// without exactly one start state, or nondeterminism in something declared as a DFA.
	ErrMalformedAutomaton = errors.New("malformed automaton")

	// ErrIncompleteForComplement is returned by Complement when the transition function is not
	// total. Use Totalize first.
	ErrIncompleteForComplement = errors.New("automaton is not complete")

	// ErrNoAcceptingPath is returned when sampling from an automaton with an empty language.
	ErrNoAcceptingPath = errors.New("no accepting path reachable")

	// ErrTooComplexToDeterminize is returned when subset construction exceeds the work limit.
	ErrTooComplexToDeterminize = errors.New("automaton too complex to determinize")
)

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedAutomaton, fmt.Sprintf(format, args...))
}
