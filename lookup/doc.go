// Package lookup aggregates subtable.Subtable instances into a chunked
// decomposable table: the unification of the source's overlapping
// LookupType/DecomposableTable abstractions into a single DecomposableTable
// interface, specialized here to range lookups (RangeTable).
package lookup
