package fa

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Definition is the declarative form of an automaton as it arrives from an external source: a
// transition table in the shape of a JFLAP document. It decodes from YAML or JSON.
//
//	states: [0, 1, 2]
//	start: [0]
//	accept: [2]
//	transitions:
//	  - {from: 0, read: a, to: 1}
//	  - {from: 1, read: "", to: 2}   # epsilon
type Definition struct {
	States      []State                `yaml:"states" json:"states"`
	Alphabet    []Symbol               `yaml:"alphabet,omitempty" json:"alphabet,omitempty"`
	Start       []State                `yaml:"start" json:"start"`
	Accept      []State                `yaml:"accept,omitempty" json:"accept,omitempty"`
	Transitions []TransitionDefinition `yaml:"transitions,omitempty" json:"transitions,omitempty"`
}

// TransitionDefinition is one row of the transition table. An empty Read is an epsilon transition.
type TransitionDefinition struct {
	From State  `yaml:"from" json:"from"`
	Read Symbol `yaml:"read" json:"read"`
	To   State  `yaml:"to" json:"to"`
}

// DecodeDefinition reads a single YAML (or JSON) document. Unknown fields are rejected.
func DecodeDefinition(r io.Reader) (*Definition, error) {
	var def Definition
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("decode automaton definition: %w", err)
	}
	return &def, nil
}

// Classify decides DFA or NFA from the transition table alone.
func (d *Definition) Classify() Kind {
	return d.builder().Classify()
}

// Build validates the definition and returns a *DFA or an *NFA depending on Classify.
func (d *Definition) Build() (Automaton, error) {
	return d.builder().Build()
}

func (d *Definition) builder() *Builder {
	b := NewBuilder().
		AddState(d.States...).
		AddSymbol(d.Alphabet...).
		SetStart(d.Start...)
	for _, s := range d.Accept {
		b.SetAccept(s, true)
	}
	for _, t := range d.Transitions {
		b.AddTransition(t.From, t.Read, t.To)
	}
	return b
}
