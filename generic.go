// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd

import "golang.org/x/exp/constraints"

// min2 and min3 find the lowest (topmost) of several variable levels during
// a Shannon split: every binary and ternary operation descends on whichever
// operand tests the variable closest to the root.
func min2[T constraints.Ordered](a, b T) T {
	if b < a {
		return b
	}
	return a
}

func min3[T constraints.Ordered](a, b, c T) T {
	return min2(min2(a, b), c)
}
