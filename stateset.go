package fa

import (
	"github.com/bits-and-blooms/bitset"
)

// frozenStateSet is an immutable set of NFA states. Equal sets always have the same hash code,
// whatever the capacity of the underlying bitset.
type frozenStateSet struct {
	bits     *bitset.BitSet
	hashCode uint64
}

func newFrozenStateSet(bits *bitset.BitSet) *frozenStateSet {
	hashCode := uint64(bits.Count())
	for s, ok := bits.NextSet(0); ok; s, ok = bits.NextSet(s + 1) {
		hashCode += uint64(mix32(int(s)))
	}
	return &frozenStateSet{bits: bits, hashCode: hashCode}
}

func (f *frozenStateSet) equal(o *frozenStateSet) bool {
	return f.hashCode == o.hashCode && sameSet(f.bits, o.bits)
}

// subsetIndex numbers the subsets found by the powerset construction in discovery order. Subsets
// with the same masked hash code share a bucket chain; the bucket count doubles once the index
// holds more than three subsets per four buckets.
type subsetIndex struct {
	buckets []*subsetEntry
	mask    uint64
	subsets []*frozenStateSet
}

type subsetEntry struct {
	set  *frozenStateSet
	id   State
	next *subsetEntry
}

// newSubsetIndex rounds capacity up to a power of two.
func newSubsetIndex(capacity int) *subsetIndex {
	size := 1
	for size < capacity {
		size <<= 1
	}
	return &subsetIndex{
		buckets: make([]*subsetEntry, size),
		mask:    uint64(size - 1),
	}
}

// lookup returns the id of set, if it was added before.
func (x *subsetIndex) lookup(set *frozenStateSet) (State, bool) {
	for e := x.buckets[set.hashCode&x.mask]; e != nil; e = e.next {
		if e.set.equal(set) {
			return e.id, true
		}
	}
	return -1, false
}

// add gives set the next id. set must not be present yet.
func (x *subsetIndex) add(set *frozenStateSet) State {
	id := State(len(x.subsets))
	x.subsets = append(x.subsets, set)
	index := set.hashCode & x.mask
	x.buckets[index] = &subsetEntry{set: set, id: id, next: x.buckets[index]}
	if 4*len(x.subsets) > 3*len(x.buckets) {
		x.grow()
	}
	return id
}

func (x *subsetIndex) grow() {
	buckets := make([]*subsetEntry, len(x.buckets)<<1)
	mask := uint64(len(buckets) - 1)
	for id, set := range x.subsets {
		index := set.hashCode & mask
		buckets[index] = &subsetEntry{set: set, id: State(id), next: buckets[index]}
	}
	x.buckets = buckets
	x.mask = mask
}

// size returns the number of subsets added so far.
func (x *subsetIndex) size() int {
	return len(x.subsets)
}

// subset returns the subset numbered id.
func (x *subsetIndex) subset(id State) *frozenStateSet {
	return x.subsets[id]
}
