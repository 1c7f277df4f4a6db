package polyterms

import "github.com/nulltea/gkr-lasso/field"

// Expr is a node of the symbolic multilinear-polynomial expression tree
// over coefficients in F. Built once at table-construction time and never
// mutated afterwards.
type Expr[F any] interface {
	isExpr()
}

// Const is a literal base-field coefficient.
type Const[F any] struct{ Value F }

func (Const[F]) isExpr() {}

// Var references the i-th coordinate of the evaluation point. Var carries
// no type parameter of its own, so the same value satisfies Expr[F] for
// every F.
type Var struct{ Index int }

func (Var) isExpr() {}

// Sum is the sum of its children; the empty sum is never constructed by a
// well-formed table (spec invariant), but Evaluate still defines it as the
// additive identity.
type Sum[F any] struct{ Terms []Expr[F] }

func (Sum[F]) isExpr() {}

// Prod is the product of its children, identity the multiplicative one for
// an empty slice.
type Prod[F any] struct{ Terms []Expr[F] }

func (Prod[F]) isExpr() {}

// Pow raises Inner to Exponent; Pow(_, 0) evaluates to one.
type Pow[F any] struct {
	Inner    Expr[F]
	Exponent uint32
}

func (Pow[F]) isExpr() {}

// Evaluate recursively evaluates e at point, embedding F coefficients into
// E as needed. An out-of-range Var index panics: the spec treats that as a
// programmer error caught at table-construction time, not a recoverable
// verification failure.
func Evaluate[F field.Base[F], E field.Ext[E, F]](e Expr[F], point []E) E {
	switch t := e.(type) {
	case Const[F]:
		var zero E
		return zero.FromBase(t.Value)
	case Var:
		return point[t.Index]
	case Sum[F]:
		var acc E
		for _, child := range t.Terms {
			acc = acc.Add(Evaluate[F, E](child, point))
		}
		return acc
	case Prod[F]:
		var zero E
		acc := zero.One()
		for _, child := range t.Terms {
			acc = acc.Mul(Evaluate[F, E](child, point))
		}
		return acc
	case Pow[F]:
		base := Evaluate[F, E](t.Inner, point)
		return base.Exp(uint64(t.Exponent))
	default:
		panic("polyterms: unknown Expr variant")
	}
}
