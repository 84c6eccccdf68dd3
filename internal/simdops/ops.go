// Package simdops gives the float32 and float64 signal paths one set of vector
// helpers backed by github.com/tphakala/simd.
package simdops

import (
	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// Float is the type constraint for supported sample types.
type Float interface {
	float32 | float64
}

// Ops holds the vector kernels for one sample type.
type Ops[F Float] struct {
	// DotProductUnsafe computes the dot product without bounds checking.
	// Slices must have equal length.
	DotProductUnsafe func(a, b []F) F

	// Scale multiplies each element by s: dst[i] = a[i] * s. dst may alias a.
	Scale func(dst, a []F, s F)
}

var (
	ops32 = Ops[float32]{
		DotProductUnsafe: f32.DotProductUnsafe,
		Scale:            f32.Scale,
	}
	ops64 = Ops[float64]{
		DotProductUnsafe: f64.DotProductUnsafe,
		Scale:            f64.Scale,
	}
)

// For returns the Ops instance for type F.
func For[F Float]() *Ops[F] {
	var zero F
	switch any(zero).(type) {
	case float32:
		ops, ok := any(&ops32).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float32")
		}
		return ops
	case float64:
		ops, ok := any(&ops64).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float64")
		}
		return ops
	default:
		panic("simdops: unsupported float type")
	}
}

// Energy returns the sum of squares of x.
func Energy[F Float](x []F) F {
	if len(x) == 0 {
		return 0
	}
	return For[F]().DotProductUnsafe(x, x)
}
