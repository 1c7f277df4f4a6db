// package quadext builds a degree-2 extension field E = F[u] / (u^2 -
// nonResidue) over any base field F satisfying field.Base[F], using the
// same Karatsuba multiplication shape gnark-crypto's concrete per-curve
// extension fields (e.g. bls12-381's Fp2) use. gnark-crypto only ships
// such extensions for its own concrete curve base fields, not as a
// generic construction over an arbitrary F, so this part is hand-rolled.
package quadext

import "github.com/nulltea/gkr-lasso/field"

// Quad is an element a0 + a1*u of F[u]/(u^2 - nonResidue). nonResidue is held
// by pointer, not by value: a Go zero value `var x Quad[F]` (as field.Base's
// contract requires every operation to tolerate) carries a nil nonResidue,
// and every binary operation below resolves the result's nonResidue from
// whichever operand actually has one (mergeNonResidue), rather than always
// taking the receiver's. A value-typed field copied blindly from the
// receiver would let a zero value silently "poison" any accumulator it is
// folded into — the fresh zero's nonResidue would overwrite a perfectly good
// one the moment it appears as the left-hand operand of Add/Sub/Mul — which
// is invisible as long as the poisoned operand's A1 stays zero, but produces
// a wrong product the moment two such operands with genuinely nonzero A1
// ever multiply.
type Quad[F field.Base[F]] struct {
	A0, A1     F
	nonResidue *F
}

// mergeNonResidue resolves the nonResidue two operands should share, taking
// whichever of the two actually carries one. Both operands of any real
// extension arithmetic are expected to agree when both carry one.
func mergeNonResidue[F field.Base[F]](a, b *F) *F {
	if a != nil {
		return a
	}
	return b
}

// New builds the zero element of the extension defined by nonResidue (a
// non-square in F). All arithmetic on the result and any value derived
// from it via Add/Sub/Mul/etc. carries the same nonResidue forward.
func New[F field.Base[F]](nonResidue F) Quad[F] {
	var zero F
	nr := nonResidue
	return Quad[F]{A0: zero, A1: zero, nonResidue: &nr}
}

// FromBase embeds a base-field element as the degree-0 component.
func (q Quad[F]) FromBase(b F) Quad[F] {
	var zero F
	return Quad[F]{A0: b, A1: zero, nonResidue: q.nonResidue}
}

func (q Quad[F]) Add(o Quad[F]) Quad[F] {
	return Quad[F]{A0: q.A0.Add(o.A0), A1: q.A1.Add(o.A1), nonResidue: mergeNonResidue(q.nonResidue, o.nonResidue)}
}

func (q Quad[F]) Sub(o Quad[F]) Quad[F] {
	return Quad[F]{A0: q.A0.Sub(o.A0), A1: q.A1.Sub(o.A1), nonResidue: mergeNonResidue(q.nonResidue, o.nonResidue)}
}

func (q Quad[F]) Neg() Quad[F] {
	return Quad[F]{A0: q.A0.Neg(), A1: q.A1.Neg(), nonResidue: q.nonResidue}
}

// Mul computes (a0+a1 u)(b0+b1 u) = (a0 b0 + nonResidue a1 b1) + (a0 b1 + a1
// b0) u via Karatsuba: t0 = a0 b0, t1 = a1 b1, c1 = (a0+a1)(b0+b1) - t0 - t1.
func (q Quad[F]) Mul(o Quad[F]) Quad[F] {
	nr := mergeNonResidue(q.nonResidue, o.nonResidue)
	t0 := q.A0.Mul(o.A0)
	t1 := q.A1.Mul(o.A1)
	var nrT1 F
	if nr != nil {
		nrT1 = nr.Mul(t1)
	}
	c0 := t0.Add(nrT1)
	c1 := q.A0.Add(q.A1).Mul(o.A0.Add(o.A1)).Sub(t0).Sub(t1)
	return Quad[F]{A0: c0, A1: c1, nonResidue: nr}
}

func (q Quad[F]) Equal(o Quad[F]) bool {
	return q.A0.Equal(o.A0) && q.A1.Equal(o.A1)
}

func (q Quad[F]) IsZero() bool {
	return q.A0.IsZero() && q.A1.IsZero()
}

// One returns the multiplicative identity 1 + 0u, carrying the receiver's
// nonResidue pointer forward as-is (possibly nil); any later Add/Sub/Mul
// against a value that does carry one recovers it via mergeNonResidue.
func (q Quad[F]) One() Quad[F] {
	var zero F
	return Quad[F]{A0: zero.One(), A1: zero, nonResidue: q.nonResidue}
}

func (q Quad[F]) Double() Quad[F] {
	return q.Add(q)
}

// Bases returns [A0, A1], the coefficients of 1 and u.
func (q Quad[F]) Bases() []F {
	return []F{q.A0, q.A1}
}

// Exp computes q^exponent by square-and-multiply. Exp(0) = One().
func (q Quad[F]) Exp(exponent uint64) Quad[F] {
	result := q.One()
	base := q
	for exponent > 0 {
		if exponent&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		exponent >>= 1
	}
	return result
}
