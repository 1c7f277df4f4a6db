package memorychecking

import (
	"fmt"
	"math/bits"

	"github.com/rs/zerolog"

	"github.com/nulltea/gkr-lasso/field"
	"github.com/nulltea/gkr-lasso/grandproduct"
	"github.com/nulltea/gkr-lasso/internal/errs"
	"github.com/nulltea/gkr-lasso/internal/fingerprint"
	"github.com/nulltea/gkr-lasso/polyterms"
	"github.com/nulltea/gkr-lasso/transcript"
)

// Memory is one addressable subtable instance within a chunk: a flat
// identifier shared across all memories of all chunks, and the symbolic
// multilinear extension of the subtable it addresses.
type Memory[F any] struct {
	MemoryIndex  int
	SubtablePoly polyterms.MultilinearPolyTerms[F]
}

func NewMemory[F any](memoryIndex int, subtablePoly polyterms.MultilinearPolyTerms[F]) Memory[F] {
	return Memory[F]{MemoryIndex: memoryIndex, SubtablePoly: subtablePoly}
}

// Chunk groups memories that share one dim column: one limb of the table
// index. chunk_bits is identical across every chunk of a single verifier.
type Chunk[F any] struct {
	ChunkIndex int
	ChunkBits  int
	Memories   []Memory[F]
}

// NewChunk requires a non-empty memory list; an empty chunk is rejected as
// Malformed at construction (spec.md §8 boundary case).
func NewChunk[F any](chunkIndex, chunkBits int, memories []Memory[F]) (Chunk[F], error) {
	if len(memories) == 0 {
		return Chunk[F]{}, errs.NewMalformed("chunk must carry at least one memory")
	}
	return Chunk[F]{ChunkIndex: chunkIndex, ChunkBits: chunkBits, Memories: memories}, nil
}

func (c Chunk[F]) NumMemories() int {
	return len(c.Memories)
}

func (c Chunk[F]) MemoryIndices() []int {
	out := make([]int, len(c.Memories))
	for i, m := range c.Memories {
		out[i] = m.MemoryIndex
	}
	return out
}

// PolyIndices returns the transcript/commitment positions of this chunk's
// dim, read_ts, and final_cts polynomials, given the flat offset of the
// lookup's own polynomials within a larger batch and the total chunk count.
func (c Chunk[F]) PolyIndices(offset, numChunks int) [3]int {
	dimIdx := offset + 1 + c.ChunkIndex
	readTsIdx := offset + 1 + numChunks + c.ChunkIndex
	finalCtsIdx := offset + 1 + 2*numChunks + c.ChunkIndex
	return [3]int{dimIdx, readTsIdx, finalCtsIdx}
}

// idPoly is the MLE of integer addressing: sum_i 2^i * point[i].
func idPoly[F field.Base[F], E field.Ext[E, F]](point []E) E {
	var result E
	for i, p := range point {
		coeff := field.SmallInt[E](uint64(1) << uint(i))
		result = result.Add(coeff.Mul(p))
	}
	return result
}

// verifyMemories reads this chunk's three shared openings plus one e_poly
// opening per memory, then asserts the four fingerprint equalities of
// spec.md §4.4 step 2 for every memory in the chunk.
func verifyMemories[F field.Base[F], E field.Ext[E, F]](
	c Chunk[F],
	readXs, writeXs, initYs, finalReadYs []E,
	y []E,
	gamma, tau E,
	tr transcript.Reader[F, E],
) (dimX, readTsX, finalCtsY E, ePolyXs []E, err error) {
	three, err := tr.ReadFeltsAsExts(3)
	if err != nil {
		return dimX, readTsX, finalCtsY, nil, fmt.Errorf("reading chunk %d shared openings: %w", c.ChunkIndex, err)
	}
	dimX, readTsX, finalCtsY = three[0], three[1], three[2]

	ePolyXs, err = tr.ReadFeltsAsExts(c.NumMemories())
	if err != nil {
		return dimX, readTsX, finalCtsY, nil, fmt.Errorf("reading chunk %d e_poly openings: %w", c.ChunkIndex, err)
	}

	idY := idPoly[F, E](y)
	onePlusReadTsX := readTsX.Add(readTsX.One())
	var zero E

	for i, mem := range c.Memories {
		subtableY := polyterms.EvaluateTerms[F, E](mem.SubtablePoly, y)

		if want := fingerprint.Hash(dimX, ePolyXs[i], readTsX, gamma, tau); !readXs[i].Equal(want) {
			return dimX, readTsX, finalCtsY, nil, errs.NewFingerprintMismatch(
				fmt.Sprintf("read set mismatch at chunk %d memory %d", c.ChunkIndex, mem.MemoryIndex))
		}
		if want := fingerprint.Hash(dimX, ePolyXs[i], onePlusReadTsX, gamma, tau); !writeXs[i].Equal(want) {
			return dimX, readTsX, finalCtsY, nil, errs.NewFingerprintMismatch(
				fmt.Sprintf("write set mismatch at chunk %d memory %d", c.ChunkIndex, mem.MemoryIndex))
		}
		if want := fingerprint.Hash(idY, subtableY, zero, gamma, tau); !initYs[i].Equal(want) {
			return dimX, readTsX, finalCtsY, nil, errs.NewFingerprintMismatch(
				fmt.Sprintf("init set mismatch at chunk %d memory %d", c.ChunkIndex, mem.MemoryIndex))
		}
		if want := fingerprint.Hash(idY, subtableY, finalCtsY, gamma, tau); !finalReadYs[i].Equal(want) {
			return dimX, readTsX, finalCtsY, nil, errs.NewFingerprintMismatch(
				fmt.Sprintf("final-read set mismatch at chunk %d memory %d", c.ChunkIndex, mem.MemoryIndex))
		}
	}
	return dimX, readTsX, finalCtsY, ePolyXs, nil
}

// Opening is one committed-polynomial evaluation claim, threaded into an
// OpeningAccumulator for the batch-opening check the polynomial commitment
// scheme performs outside this package (spec.md §9's restored wiring).
type Opening[E any] struct {
	PolyIndex  int
	PointIndex int
	Value      E
}

// OpeningAccumulator collects the evaluation points and claims
// MemoryCheckingVerifier.Verify produces, for a polynomial commitment scheme
// to later batch-open against. Spec.md §1 names the PCS as an external
// collaborator; this is its narrow input boundary.
type OpeningAccumulator[F field.Base[F], E field.Ext[E, F]] interface {
	AddPoint(point []E) (pointIndex int)
	AddEval(o Opening[E])
}

var nopLogger = zerolog.Nop()

// MemoryCheckingVerifier owns an ordered sequence of same-chunk_bits chunks
// and verifies their combined read/write/init/final-read fingerprints. A nil
// Logger behaves as zerolog.Nop().
type MemoryCheckingVerifier[F field.Base[F], E field.Ext[E, F]] struct {
	Chunks []Chunk[F]

	GrandProduct grandproduct.Verifier[F, E]
	Logger       *zerolog.Logger
}

func (v *MemoryCheckingVerifier[F, E]) logger() *zerolog.Logger {
	if v.Logger != nil {
		return v.Logger
	}
	return &nopLogger
}

// NewMemoryCheckingVerifier requires a non-empty, positive-memory chunk list.
func NewMemoryCheckingVerifier[F field.Base[F], E field.Ext[E, F]](
	chunks []Chunk[F],
	gp grandproduct.Verifier[F, E],
) (*MemoryCheckingVerifier[F, E], error) {
	if len(chunks) == 0 {
		return nil, errs.NewMalformed("verifier must own at least one chunk")
	}
	total := 0
	for _, c := range chunks {
		total += c.NumMemories()
	}
	if total == 0 {
		return nil, errs.NewMalformed("verifier must have at least one memory across its chunks")
	}
	return &MemoryCheckingVerifier[F, E]{Chunks: chunks, GrandProduct: gp}, nil
}

// Verify runs the read/write grand product over log2(numReads) variables and
// the init/final grand product over chunk_bits variables, then checks every
// chunk's fingerprints against the resulting leaves. When acc is non-nil, the
// grand-product x/y points are registered once for the whole call and every
// chunk's openings are threaded against those two shared indices (spec.md
// §9).
func (v *MemoryCheckingVerifier[F, E]) Verify(
	numReads int,
	gamma, tau E,
	tr transcript.Reader[F, E],
	acc OpeningAccumulator[F, E],
) error {
	numMemories := 0
	for _, c := range v.Chunks {
		numMemories += c.NumMemories()
	}
	memoryBits := v.Chunks[0].ChunkBits

	readWriteClaims := make([]*E, 2*numMemories)
	readWriteXs, x, err := v.GrandProduct.Verify(log2Exact(numReads), readWriteClaims, tr)
	if err != nil {
		return fmt.Errorf("read/write grand product: %w", err)
	}
	readXs, writeXs := readWriteXs[:numMemories], readWriteXs[numMemories:]

	initFinalClaims := make([]*E, 2*numMemories)
	initFinalYs, y, err := v.GrandProduct.Verify(memoryBits, initFinalClaims, tr)
	if err != nil {
		return fmt.Errorf("init/final grand product: %w", err)
	}
	initYs, finalReadYs := initFinalYs[:numMemories], initFinalYs[numMemories:]

	numChunks := len(v.Chunks)
	var xIdx, yIdx int
	if acc != nil {
		xIdx = acc.AddPoint(x)
		yIdx = acc.AddPoint(y)
	}

	offset := 0
	for _, c := range v.Chunks {
		n := c.NumMemories()
		dimX, readTsX, finalCtsY, ePolyXs, err := verifyMemories[F, E](
			c,
			readXs[offset:offset+n], writeXs[offset:offset+n],
			initYs[offset:offset+n], finalReadYs[offset:offset+n],
			y, gamma, tau, tr,
		)
		if err != nil {
			v.logger().Warn().Int("chunk", c.ChunkIndex).Err(err).Msg("memory checking failed")
			return fmt.Errorf("chunk %d: %w", c.ChunkIndex, err)
		}
		offset += n

		if acc != nil {
			polyIdxs := c.PolyIndices(0, numChunks)
			acc.AddEval(Opening[E]{PolyIndex: polyIdxs[0], PointIndex: xIdx, Value: dimX})
			acc.AddEval(Opening[E]{PolyIndex: polyIdxs[1], PointIndex: xIdx, Value: readTsX})
			acc.AddEval(Opening[E]{PolyIndex: polyIdxs[2], PointIndex: yIdx, Value: finalCtsY})
			ePolyBase := 1 + 3*numChunks
			for i, mem := range c.Memories {
				acc.AddEval(Opening[E]{PolyIndex: ePolyBase + mem.MemoryIndex, PointIndex: xIdx, Value: ePolyXs[i]})
			}
		}
	}

	v.logger().Debug().Int("num_chunks", numChunks).Int("num_memories", numMemories).Msg("memory checking verified")
	return nil
}

// log2Exact returns log2(n) for a power-of-two n > 0, and 0 for n == 1.
func log2Exact(n int) int {
	if n <= 0 {
		panic("memorychecking: num_reads must be positive")
	}
	return bits.TrailingZeros(uint(n))
}
