package utils

import "golang.org/x/exp/constraints"

// Clamp returns value limited to the range [min, max].
func Clamp[T constraints.Integer | constraints.Float](min, value, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Wrap returns value modulo length, or 0 if length is not positive.
// It is used to fold an out of range bank offset back into a
// buffer rather than indexing past its end.
func Wrap[T constraints.Integer](value, length T) T {
	if length <= 0 {
		return 0
	}
	return value % length
}

// ZeroAdjust returns 1 if v is 0, and v otherwise.
func ZeroAdjust[T constraints.Integer](v T) T {
	if v == 0 {
		return 1
	}
	return v
}
