package polyterms

import (
	"fmt"

	"github.com/nulltea/gkr-lasso/field"
)

// MultilinearPolyTerms pairs an expression with the number of variables it
// is defined over, representing a multilinear polynomial evaluated lazily
// at any point of matching length.
type MultilinearPolyTerms[F any] struct {
	NumVars    int
	Expression Expr[F]
}

// New builds a MultilinearPolyTerms over numVars variables.
func New[F any](numVars int, expr Expr[F]) MultilinearPolyTerms[F] {
	return MultilinearPolyTerms[F]{NumVars: numVars, Expression: expr}
}

// EvaluateTerms evaluates m at point, which must have length m.NumVars.
func EvaluateTerms[F field.Base[F], E field.Ext[E, F]](m MultilinearPolyTerms[F], point []E) E {
	if len(point) != m.NumVars {
		panic(fmt.Sprintf("polyterms: point has %d coordinates, want %d", len(point), m.NumVars))
	}
	return Evaluate[F, E](m.Expression, point)
}
