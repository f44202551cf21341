// Package weighted provides a cumulative-weight table supporting draws with
// probability proportional to slot weight.
//
// The table is a Fenwick (binary indexed) tree over float64 weights: setting a
// slot weight and locating the slot containing a cumulative position are both
// O(log n). Slots are addressed 0..Len()-1.
package weighted

import (
	"fmt"
	"math"
	"math/bits"
)

// Index is a cumulative-weight table. The zero value is an empty index.
// Thread-safety: NOT thread-safe.
type Index struct {
	weights []float64 // slot weights, 0-based
	tree    []float64 // Fenwick partial sums, 1-based (tree[0] unused)
}

// New creates an Index with size slots, all of weight zero.
// Panics on negative size.
func New(size int) *Index {
	if size < 0 {
		panic(fmt.Sprintf("weighted.New: negative size %d", size))
	}
	return &Index{
		weights: make([]float64, size),
		tree:    make([]float64, size+1),
	}
}

// FromWeights creates an Index holding a copy of ws. Construction is O(n).
// Panics if any weight is negative or NaN.
func FromWeights(ws []float64) *Index {
	x := New(len(ws))
	for i, w := range ws {
		checkWeight("weighted.FromWeights", i, w)
		x.weights[i] = w
		x.tree[i+1] += w
		if parent := (i + 1) + ((i + 1) & -(i + 1)); parent <= len(ws) {
			x.tree[parent] += x.tree[i+1]
		}
	}
	return x
}

// Len returns the number of slots.
func (x *Index) Len() int { return len(x.weights) }

// Weight returns the weight of slot i.
func (x *Index) Weight(i int) float64 {
	x.checkSlot("Weight", i)
	return x.weights[i]
}

// Weights returns a copy of all slot weights in slot order.
func (x *Index) Weights() []float64 {
	out := make([]float64, len(x.weights))
	copy(out, x.weights)
	return out
}

// Adjust sets the weight of slot i to w.
// Panics if i is out of range or w is negative or NaN.
func (x *Index) Adjust(i int, w float64) {
	x.checkSlot("Adjust", i)
	checkWeight("weighted.Index.Adjust", i, w)
	delta := w - x.weights[i]
	x.weights[i] = w
	if delta == 0 {
		return
	}
	for j := i + 1; j < len(x.tree); j += j & -j {
		x.tree[j] += delta
	}
}

// Total returns the accumulated weight of all slots.
func (x *Index) Total() float64 {
	return x.prefix(len(x.weights))
}

// prefix returns the summed weight of slots [0, n).
func (x *Index) prefix(n int) float64 {
	sum := 0.0
	for j := n; j > 0; j -= j & -j {
		sum += x.tree[j]
	}
	return sum
}

// Find returns the slot whose cumulative-weight range [start, start+weight)
// contains pos. Zero-weight slots are never returned.
// A pos at or past Total() (floating-point rounding at the top edge) maps to
// the last slot with positive weight.
// Panics on an empty index, an index with no positive weight, or a pos that
// is negative or NaN.
func (x *Index) Find(pos float64) int {
	n := len(x.weights)
	if n == 0 {
		panic("weighted.Index.Find: empty index")
	}
	if pos < 0 || math.IsNaN(pos) {
		panic(fmt.Sprintf("weighted.Index.Find: invalid position %v", pos))
	}

	// Descend the tree: idx counts the slots whose cumulative end is <= pos.
	idx := 0
	rem := pos
	for step := 1 << (bits.Len(uint(n)) - 1); step > 0; step >>= 1 {
		next := idx + step
		if next <= n && x.tree[next] <= rem {
			idx = next
			rem -= x.tree[next]
		}
	}
	if idx < n {
		return idx
	}

	for i := n - 1; i >= 0; i-- {
		if x.weights[i] > 0 {
			return i
		}
	}
	panic("weighted.Index.Find: no slot has positive weight")
}

func (x *Index) checkSlot(op string, i int) {
	if i < 0 || i >= len(x.weights) {
		panic(fmt.Sprintf("weighted.Index.%s: slot %d out of range [0,%d)", op, i, len(x.weights)))
	}
}

func checkWeight(op string, i int, w float64) {
	if w < 0 || math.IsNaN(w) {
		panic(fmt.Sprintf("%s: slot %d has invalid weight %v", op, i, w))
	}
}
