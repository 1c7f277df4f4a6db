// Package grandproduct implements the batched layered sum-check driver of
// spec.md §4.5: round 0 absorbs or reads the top-of-circuit claims, rounds 1
// through num_vars squeeze a batching challenge, run one round of sum-check,
// read leaf evaluations, and fold via a squeezed challenge; the num_vars ==
// 0 case checks leaves directly. Includes the cross-check spec.md §9 asks
// implementers to restore: the sum-check-returned evaluation is checked
// against the layer expression evaluated at the same point.
package grandproduct
