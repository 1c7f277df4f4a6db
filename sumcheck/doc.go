// Package sumcheck names the embedded sum-check verifier and the
// layer-prover hooks the grand-product verifier depends on. Per spec.md §1
// these are external collaborators: the generic sum-check protocol and the
// prover-side claim/polynomial builders are assumed available and are not
// re-specified here, only contracted against.
package sumcheck
