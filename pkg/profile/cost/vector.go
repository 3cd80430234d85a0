package cost

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Vector holds one counter per tracked cost type. A zero-length Vector
// is uninitialized and adopts the width of the first vector added to it.
type Vector []int64

func (v *Vector) Add(rhs Vector) {
	if len(*v) == 0 {
		*v = slices.Clone(rhs)
		return
	}
	if len(*v) != len(rhs) {
		panic(fmt.Sprintf("cost: vector width mismatch: %d != %d", len(*v), len(rhs)))
	}
	for i, x := range rhs {
		(*v)[i] += x
	}
}

func (v Vector) Sub(rhs Vector) Vector {
	if len(v) != len(rhs) {
		panic(fmt.Sprintf("cost: vector width mismatch: %d != %d", len(v), len(rhs)))
	}
	diff := make(Vector, len(v))
	for i, x := range v {
		diff[i] = x - rhs[i]
	}
	return diff
}

func (v Vector) Sum() int64 {
	var sum int64
	for _, x := range v {
		sum += x
	}
	return sum
}

func (v Vector) Clone() Vector {
	return slices.Clone(v)
}
