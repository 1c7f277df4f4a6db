package subtable

import (
	"github.com/nulltea/gkr-lasso/field"
)

// Subtable is a materialize/evaluate pair for one limb-shaped slice of
// table space: Materialize produces the dense table for a table of size M,
// EvaluateMLE evaluates its multilinear extension at an arbitrary point in
// the extension field without materializing anything.
type Subtable[F field.Base[F], E field.Ext[E, F]] interface {
	Materialize(m int) []F
	EvaluateMLE(point []E) E
}

// FullLimb is the subtable of a complete LimbBits-wide range chunk: the
// identity function over [0, 2^LimbBits).
type FullLimb[F field.Base[F], E field.Ext[E, F]] struct {
	LimbBits int
}

// Materialize requires m == 2^LimbBits and returns 0, 1, ..., m-1.
func (s FullLimb[F, E]) Materialize(m int) []F {
	want := 1 << s.LimbBits
	if m != want {
		panic("subtable: FullLimb.Materialize size mismatch")
	}
	evals := make([]F, m)
	for i := range evals {
		evals[i] = field.SmallInt[F](uint64(i))
	}
	return evals
}

// EvaluateMLE returns the multilinear extension of the identity function:
// sum_i 2^i * point[i]. The source this is ported from indexes point by
// its length rather than the loop variable (see spec's REDESIGN FLAGS);
// this implementation uses the mathematically intended point[i].
func (s FullLimb[F, E]) EvaluateMLE(point []E) E {
	var result E
	for i := range point {
		coeff := field.SmallInt[E](uint64(1) << uint(i))
		result = result.Add(coeff.Mul(point[i]))
	}
	return result
}

// Remainder is the subtable of the short final chunk when NumBits is not a
// multiple of LimbBits: the identity function over [0, 2^r) where r =
// NumBits mod LimbBits, embedded into a LimbBits-dimensional point space.
type Remainder[F field.Base[F], E field.Ext[E, F]] struct {
	NumBits, LimbBits int
}

func (s Remainder[F, E]) r() int {
	return s.NumBits % s.LimbBits
}

// Materialize requires m == 2^LimbBits and returns 0, 1, ..., 2^r - 1,
// unpadded: the result is shorter than m whenever r < LimbBits.
func (s Remainder[F, E]) Materialize(m int) []F {
	want := 1 << s.LimbBits
	if m != want {
		panic("subtable: Remainder.Materialize size mismatch")
	}
	r := s.r()
	evals := make([]F, 1<<uint(r))
	for i := range evals {
		evals[i] = field.SmallInt[F](uint64(i))
	}
	return evals
}

// EvaluateMLE computes (sum_{i<r} 2^i * point[i]) * prod_{i>=r} (1 -
// point[i]): the MLE of an r-variable table embedded into a
// len(point)-variable space. The source this is ported from conflates the
// additive running sum with the later multiplicative vanishing factor on
// the same accumulator (see spec's REDESIGN FLAGS); this implementation
// keeps them separate and multiplies at the end.
func (s Remainder[F, E]) EvaluateMLE(point []E) E {
	r := s.r()
	var lo E
	for i := 0; i < r && i < len(point); i++ {
		coeff := field.SmallInt[E](uint64(1) << uint(i))
		lo = lo.Add(coeff.Mul(point[i]))
	}
	vanishing := lo.One()
	for i := r; i < len(point); i++ {
		vanishing = vanishing.Mul(vanishing.One().Sub(point[i]))
	}
	return lo.Mul(vanishing)
}
