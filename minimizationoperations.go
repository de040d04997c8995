package fa

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// Minimize returns the minimal DFA accepting the same language as d, using Hopcroft's partition
// refinement over the states reachable from q0.
//
// Missing transitions are refined against an implicit sink state, so partial automata minimize
// correctly; states equivalent to the sink collapse into a single dead state. Output states are
// numbered breadth-first from q0 over the sorted alphabet, which makes the result canonical:
// Minimize(Minimize(d)) equals Minimize(d). The alphabet is preserved.
func Minimize(d *DFA, opts ...Option) *DFA {
	o := newOptions(opts...)

	states := members(ForwardReachable(d))
	n := len(states)
	index := make(map[State]int, n)
	for i, s := range states {
		index[s] = i
	}
	sink := n
	sigma := d.alphabet
	symbolIndex := make(map[Symbol]int, len(sigma))
	for c, sym := range sigma {
		symbolIndex[sym] = c
	}

	// inv[c][t] lists the predecessors of t on sigma[c].
	inv := make([][][]int, len(sigma))
	for c := range sigma {
		inv[c] = make([][]int, n+1)
		inv[c][sink] = []int{sink}
	}
	for i, s := range states {
		for c, sym := range sigma {
			t := sink
			if dest, ok := d.Step(s, sym); ok {
				t = index[dest]
			}
			inv[c][t] = append(inv[c][t], i)
		}
	}

	accepting := bitset.New(uint(n + 1))
	rejecting := bitset.New(uint(n + 1))
	for i, s := range states {
		if d.IsAccept(s) {
			accepting.Set(uint(i))
		} else {
			rejecting.Set(uint(i))
		}
	}
	rejecting.Set(uint(sink))

	p := newPartition(n + 1)
	w := newWorkList()
	nonFinal := p.add(rejecting)
	if accepting.Any() {
		w.push(smallerInitialBlock(p, p.add(accepting), nonFinal))
	} else {
		w.push(nonFinal)
	}

	for !w.empty() {
		splitter := p.blocks[w.pop()]
		for c := range sigma {
			x := bitset.New(uint(n + 1))
			for t, ok := splitter.NextSet(0); ok; t, ok = splitter.NextSet(t + 1) {
				for _, q := range inv[c][t] {
					x.Set(uint(q))
				}
			}
			if x.None() {
				continue
			}
			// Blocks created below are either inside or outside x; no need to revisit them.
			for y, count := 0, len(p.blocks); y < count; y++ {
				block := p.blocks[y]
				inter := block.Intersection(x)
				if inter.None() {
					continue
				}
				diff := block.Difference(x)
				if diff.None() {
					continue
				}
				z := p.split(y, inter, diff)
				switch {
				case w.contains(y):
					w.push(z)
				case inter.Count() <= diff.Count():
					w.push(y)
				default:
					w.push(z)
				}
			}
		}
	}

	// target[b][c] is the block reached from block b on sigma[c] through a real transition, or -1.
	target := make([][]int, len(p.blocks))
	for b := range target {
		target[b] = slices.Repeat([]int{-1}, len(sigma))
	}
	for i, s := range states {
		for _, t := range d.out[s] {
			target[p.blockOf[i]][symbolIndex[t.Symbol]] = p.blockOf[index[t.Dest]]
		}
	}

	newID := slices.Repeat([]int{-1}, len(p.blocks))
	startBlock := p.blockOf[index[d.start]]
	newID[startBlock] = 0
	queue := []int{startBlock}
	out := make(map[State][]Transition)
	accept := bitset.New(0)
	for head := 0; head < len(queue); head++ {
		b := queue[head]
		from := State(newID[b])
		// Real states sort before the sink, so this is a real member.
		rep, _ := p.blocks[b].NextSet(0)
		if d.IsAccept(states[rep]) {
			accept.Set(uint(from))
		}
		for c, sym := range sigma {
			tb := target[b][c]
			if tb < 0 {
				continue
			}
			if newID[tb] < 0 {
				newID[tb] = len(queue)
				queue = append(queue, tb)
			}
			out[from] = append(out[from], Transition{Source: from, Symbol: sym, Dest: State(newID[tb])})
		}
	}

	result := bitset.New(uint(len(queue)))
	for i := range queue {
		result.Set(uint(i))
	}
	o.logger.Debug("minimized automaton",
		"states", d.NumStates(), "reachable", n, "blocks", len(p.blocks), "minimal", len(queue))
	return newDFA(result, sigma, out, 0, accept)
}

// IsMinimal reports whether d has no unreachable states and no two equivalent states.
func IsMinimal(d *DFA) bool {
	return Minimize(d).NumStates() == d.NumStates()
}

// smallerInitialBlock picks the smaller of F and Q\F, ties taking F. The implicit sink sits in the
// non-final block but is not counted.
func smallerInitialBlock(p *partition, final, nonFinal int) int {
	if p.blocks[final].Count() <= p.blocks[nonFinal].Count()-1 {
		return final
	}
	return nonFinal
}

// partition is an arena of pairwise disjoint blocks addressed by block id. Blocks are replaced,
// never mutated, so a block set taken from the arena stays valid while refinement goes on.
type partition struct {
	blocks  []*bitset.BitSet
	blockOf []int
}

func newPartition(numStates int) *partition {
	return &partition{blockOf: make([]int, numStates)}
}

func (p *partition) add(members *bitset.BitSet) int {
	id := len(p.blocks)
	p.blocks = append(p.blocks, members)
	for s, ok := members.NextSet(0); ok; s, ok = members.NextSet(s + 1) {
		p.blockOf[s] = id
	}
	return id
}

// split replaces block y by inter, which keeps the id y, and diff, which gets a new id.
func (p *partition) split(y int, inter, diff *bitset.BitSet) int {
	p.blocks[y] = inter
	return p.add(diff)
}

// workList is a FIFO of block ids with membership.
type workList struct {
	queue   []int
	members *bitset.BitSet
}

func newWorkList() *workList {
	return &workList{members: bitset.New(0)}
}

func (w *workList) push(block int) {
	if w.members.Test(uint(block)) {
		return
	}
	w.members.Set(uint(block))
	w.queue = append(w.queue, block)
}

func (w *workList) pop() int {
	block := w.queue[0]
	w.queue = w.queue[1:]
	w.members.Clear(uint(block))
	return block
}

func (w *workList) contains(block int) bool {
	return w.members.Test(uint(block))
}

func (w *workList) empty() bool {
	return len(w.queue) == 0
}
