package lookup

import (
	"github.com/nulltea/gkr-lasso/field"
	"github.com/nulltea/gkr-lasso/polyterms"
	"github.com/nulltea/gkr-lasso/subtable"
)

// DecomposableTable unifies the source's LookupType and DecomposableTable
// traits into a single interface, per spec.md's generic-duplication note.
type DecomposableTable[F field.Base[F], E field.Ext[E, F]] interface {
	ChunkBits() []int
	NumMemories() int
	Subtables() []subtable.Subtable[F, E]
	SubtablePolys(m int) [][]F
	SubtablePolysTerms() []polyterms.MultilinearPolyTerms[F]
	CombineLookups(operands []F) F
	MemoryToChunkIndex(memoryIndex int) int
	MemoryToSubtableIndex(memoryIndex int) int
	SubtableIndices(indexBits []bool) [][]bool
}

func divCeil(a, b int) int {
	return (a + b - 1) / b
}

// RangeTable is the range-lookup specialization of DecomposableTable: a
// NumBits-wide value decomposed into LimbBits-wide limbs, the last one a
// short remainder when NumBits is not a multiple of LimbBits.
type RangeTable[F field.Base[F], E field.Ext[E, F]] struct {
	NumBits, LimbBits int
}

func NewRangeTable[F field.Base[F], E field.Ext[E, F]](numBits, limbBits int) RangeTable[F, E] {
	if limbBits <= 0 || numBits <= 0 {
		panic("lookup: NumBits and LimbBits must be positive")
	}
	return RangeTable[F, E]{NumBits: numBits, LimbBits: limbBits}
}

func (t RangeTable[F, E]) hasRemainder() bool {
	return t.NumBits%t.LimbBits != 0
}

func (t RangeTable[F, E]) remainder() int {
	return t.NumBits % t.LimbBits
}

// ChunkBits returns LimbBits repeated NumBits/LimbBits times, with a trailing
// remainder entry iff nonzero.
func (t RangeTable[F, E]) ChunkBits() []int {
	full := t.NumBits / t.LimbBits
	bits := make([]int, 0, full+1)
	for i := 0; i < full; i++ {
		bits = append(bits, t.LimbBits)
	}
	if t.hasRemainder() {
		bits = append(bits, t.remainder())
	}
	return bits
}

// NumMemories equals ceil(NumBits / LimbBits).
func (t RangeTable[F, E]) NumMemories() int {
	return divCeil(t.NumBits, t.LimbBits)
}

// Subtables returns [Full] if NumBits is an exact multiple of LimbBits, else
// [Full, Remainder].
func (t RangeTable[F, E]) Subtables() []subtable.Subtable[F, E] {
	full := subtable.FullLimb[F, E]{LimbBits: t.LimbBits}
	if !t.hasRemainder() {
		return []subtable.Subtable[F, E]{full}
	}
	rem := subtable.Remainder[F, E]{NumBits: t.NumBits, LimbBits: t.LimbBits}
	return []subtable.Subtable[F, E]{full, rem}
}

// SubtablePolys returns the dense evaluation vectors of each subtable, m
// being the full limb table size (2^LimbBits).
func (t RangeTable[F, E]) SubtablePolys(m int) [][]F {
	subtables := t.Subtables()
	polys := make([][]F, len(subtables))
	for i, s := range subtables {
		polys[i] = s.Materialize(m)
	}
	return polys
}

func fullLimbTerms[F field.Base[F]](numVars int) polyterms.MultilinearPolyTerms[F] {
	terms := make([]polyterms.Expr[F], 0, numVars)
	terms = append(terms, polyterms.Var{Index: 0})
	for i := 1; i < numVars; i++ {
		coeff := polyterms.Const[F]{Value: field.SmallInt[F](uint64(1) << uint(i))}
		terms = append(terms, polyterms.Prod[F]{Terms: []polyterms.Expr[F]{coeff, polyterms.Var{Index: i}}})
	}
	return polyterms.New[F](numVars, polyterms.Sum[F]{Terms: terms})
}

// SubtablePolysTerms returns the symbolic MLE of the full limb subtable
// (Var(0) + 2*Var(1) + ... + 2^(LimbBits-1)*Var(LimbBits-1)), and, when a
// remainder exists, the analogous truncated sum declared over r variables.
func (t RangeTable[F, E]) SubtablePolysTerms() []polyterms.MultilinearPolyTerms[F] {
	limb := fullLimbTerms[F](t.LimbBits)
	if !t.hasRemainder() {
		return []polyterms.MultilinearPolyTerms[F]{limb}
	}
	rem := fullLimbTerms[F](t.remainder())
	return []polyterms.MultilinearPolyTerms[F]{limb, rem}
}

// CombineLookups returns sum_i operands[i] * W^i, W = 2^LimbBits: the
// Horner-style recomposition of the full value from its limbs.
func (t RangeTable[F, E]) CombineLookups(operands []F) F {
	weight := field.SmallInt[F](uint64(1) << uint(t.LimbBits))
	var result F
	power := result.One()
	for _, operand := range operands {
		result = result.Add(power.Mul(operand))
		power = power.Mul(weight)
	}
	return result
}

// MemoryToChunkIndex is the identity: each memory corresponds to one chunk.
func (t RangeTable[F, E]) MemoryToChunkIndex(memoryIndex int) int {
	return memoryIndex
}

// MemoryToSubtableIndex returns 1 for the trailing remainder memory, else 0.
func (t RangeTable[F, E]) MemoryToSubtableIndex(memoryIndex int) int {
	if t.hasRemainder() && memoryIndex == t.NumBits/t.LimbBits {
		return 1
	}
	return 0
}

// SubtableIndices splits a bit-decomposed value into LimbBits-sized chunks in
// little-endian order.
func (t RangeTable[F, E]) SubtableIndices(indexBits []bool) [][]bool {
	var chunks [][]bool
	for i := 0; i < len(indexBits); i += t.LimbBits {
		end := i + t.LimbBits
		if end > len(indexBits) {
			end = len(indexBits)
		}
		chunk := make([]bool, end-i)
		copy(chunk, indexBits[i:end])
		chunks = append(chunks, chunk)
	}
	return chunks
}
