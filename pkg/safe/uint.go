// Package safe guards narrowing integer conversions.
package safe

import (
	"fmt"
	"math"
)

// Uint32 narrows v to uint32, rejecting negatives and values past the uint32
// range.
func Uint32[T ~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64](v T) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("value %d out of uint32 range", v)
	}
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("value %d out of uint32 range", v)
	}
	return uint32(v), nil
}
