// Package memorychecking implements the per-chunk read/write/init/final-read
// fingerprint reconciliation of spec.md §4.4: two grand-product instances
// establish multiset equality of (read ∪ init) and (write ∪ final-read)
// fingerprints, then each chunk's committed polynomial openings are checked
// against the resulting leaves. Openings are also threaded into an
// OpeningAccumulator, restoring the commented-out
// lookup_opening_points/lookup_opening_evals wiring spec.md §9 calls for.
package memorychecking
