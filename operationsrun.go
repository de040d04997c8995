package fa

import "unicode/utf8"

// AcceptsDFA runs input on d. A missing transition rejects immediately.
func AcceptsDFA(d *DFA, input []Symbol) bool {
	state := d.start
	for _, c := range input {
		next, ok := d.Step(state, c)
		if !ok {
			return false
		}
		state = next
	}
	return d.IsAccept(state)
}

// AcceptsNFA runs input on n, tracking the set of every state reachable so far. The set starts as
// the epsilon closure of Q0 and is re-closed after each symbol. Epsilon in the input matches
// nothing.
func AcceptsNFA(n *NFA, input []Symbol) bool {
	current := EpsilonClosure(n, n.starts)
	for _, c := range input {
		if c == Epsilon {
			return false
		}
		next := move(n, current, c)
		if next.None() {
			return false
		}
		current = EpsilonClosure(n, next)
	}
	return current.IntersectionCardinality(n.accept) > 0
}

// Accepts dispatches to AcceptsDFA or AcceptsNFA.
func Accepts(a Automaton, input []Symbol) bool {
	return Run(a, input) == Accepted
}

// AcceptsString is Accepts with one symbol per rune of s.
func AcceptsString(a Automaton, s string) bool {
	return Accepts(a, Tokens(s))
}

// Verdict is the outcome of Run.
type Verdict int

const (
	Rejected Verdict = iota
	Accepted
	// Unsupported means the automaton could not be simulated at all.
	Unsupported
)

func (v Verdict) String() string {
	switch v {
	case Accepted:
		return "true"
	case Rejected:
		return "false"
	}
	return "unsupported"
}

// Run simulates a on input and reports the verdict as a value; it never prints.
func Run(a Automaton, input []Symbol) Verdict {
	var ok bool
	switch a := a.(type) {
	case *DFA:
		if a == nil {
			return Unsupported
		}
		ok = AcceptsDFA(a, input)
	case *NFA:
		if a == nil {
			return Unsupported
		}
		ok = AcceptsNFA(a, input)
	default:
		return Unsupported
	}
	if ok {
		return Accepted
	}
	return Rejected
}

// Tokens splits s into one symbol per rune. A string that is not valid UTF-8 is split into one
// symbol per byte instead, so Word(Tokens(s)) == s always holds.
func Tokens(s string) []Symbol {
	symbols := make([]Symbol, 0, len(s))
	if !utf8.ValidString(s) {
		for i := 0; i < len(s); i++ {
			symbols = append(symbols, Symbol(s[i:i+1]))
		}
		return symbols
	}
	for i, r := range s {
		symbols = append(symbols, Symbol(s[i:i+utf8.RuneLen(r)]))
	}
	return symbols
}

// Word joins symbols back into a string.
func Word(symbols []Symbol) string {
	n := 0
	for _, c := range symbols {
		n += len(c)
	}
	b := make([]byte, 0, n)
	for _, c := range symbols {
		b = append(b, c...)
	}
	return string(b)
}
