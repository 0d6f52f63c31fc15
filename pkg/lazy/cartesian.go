package lazy

import (
	"iter"

	"gonum.org/v1/gonum/stat/combin"
)

// CartesianProduct returns a lazy sequence over the cartesian product of the
// given lists in mixed-radix order: the last list varies fastest. The sequence
// is restartable; every range over it replays from the first combination.
// No lists, or any empty list, produces an exhausted sequence.
//
// Each yielded slice is freshly allocated and safe to retain.
func CartesianProduct[T any](lists [][]T) iter.Seq[[]T] {
	lens := make([]int, len(lists))
	for i, list := range lists {
		lens[i] = len(list)
	}

	return func(yield func([]T) bool) {
		if len(lists) == 0 {
			return
		}
		for _, n := range lens {
			if n == 0 {
				return
			}
		}

		gen := combin.NewCartesianGenerator(lens)
		indices := make([]int, len(lists))
		for gen.Next() {
			gen.Product(indices)
			combo := make([]T, len(lists))
			for i, idx := range indices {
				combo[i] = lists[i][idx]
			}
			if !yield(combo) {
				return
			}
		}
	}
}

// Take limits a sequence to its first n elements. n <= 0 yields nothing.
// The source is only consumed as far as needed, so Take is safe over
// unbounded sequences.
func Take[T any](seq iter.Seq[T], n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if n <= 0 {
			return
		}
		taken := 0
		for v := range seq {
			if !yield(v) {
				return
			}
			taken++
			if taken >= n {
				return
			}
		}
	}
}

// Collect drains a sequence into a slice. Intended for tests and small
// bounded sequences; it will not return on an unbounded source.
func Collect[T any](seq iter.Seq[T]) []T {
	var out []T
	for v := range seq {
		out = append(out, v)
	}
	return out
}
