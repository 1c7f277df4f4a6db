package sumcheck

import (
	"github.com/nulltea/gkr-lasso/field"
	"github.com/nulltea/gkr-lasso/transcript"
)

// Polynomial is the opaque batched layer polynomial SumCheckFunction builds
// and Verifier.VerifySumCheck consumes. Its internal shape is a prover/
// embedded-verifier concern this package does not need to know.
type Polynomial any

// LayerProver names the prover-side hooks the grand-product verifier calls
// into for one round: building the batched polynomial, building the batched
// claim, folding left/right leaf evaluations down one layer, and evaluating
// the layer expression for the cross-check.
// Their contracts are fixed by spec.md §6 and must match on both sides of
// the sum-check exchange.
type LayerProver[F field.Base[F], E field.Ext[E, F]] interface {
	// SumCheckFunction builds the polynomial g describing one layer of a
	// num_batching-way batched grand product at the given round.
	SumCheckFunction(numVars, numBatching int, gamma E) Polynomial
	// SumCheckClaim computes sum_j gamma^j * claimedVs[j].
	SumCheckClaim(claimedVs []E, gamma E) E
	// LayerDownClaim computes, pairwise over evals = [l0, r0, l1, r1, ...],
	// (1-mu)*l + mu*r for each lane.
	LayerDownClaim(evals []E, mu E) []E
	// EvaluateLayerExpression evaluates the same batched layer expression
	// SumCheckFunction describes, directly at point, for the grand-product
	// verifier's cross-check of the sum-check-returned evaluation (spec.md
	// §9's hardening note: the source discards this check; this port
	// restores it).
	EvaluateLayerExpression(numVars, numBatching int, gamma E, point []E) E
}

// Verifier is the embedded sum-check verifier contract: given a batched
// polynomial and a claimed sum, it runs the interactive reduction against
// the transcript and returns the final evaluation and evaluation point.
// Assumed sound per spec.md §6; this package does not re-implement it.
type Verifier[F field.Base[F], E field.Ext[E, F]] interface {
	VerifySumCheck(g Polynomial, claim E, tr transcript.Reader[F, E]) (eval E, point []E, err error)
}
