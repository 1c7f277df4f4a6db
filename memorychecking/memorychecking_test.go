package memorychecking

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nulltea/gkr-lasso/field/bn254scalar"
	"github.com/nulltea/gkr-lasso/field/quadext"
	"github.com/nulltea/gkr-lasso/grandproduct"
	"github.com/nulltea/gkr-lasso/internal/errs"
	"github.com/nulltea/gkr-lasso/polyterms"
	"github.com/nulltea/gkr-lasso/sumcheck"
	"github.com/nulltea/gkr-lasso/transcript"
)

type fr = bn254scalar.Fr
type ext = quadext.Quad[fr]

func newExt() ext {
	return quadext.New(bn254scalar.FromUint64(5))
}

func feltExt(v uint64) ext {
	return newExt().FromBase(bn254scalar.FromUint64(v))
}

// fixedTranscript hands back two independently scripted queues: reads, in
// the order ReadFeltExt/ReadFeltExts/ReadFeltsAsExts consume them, and
// challenges, in the order SqueezeChallenge consumes them. It gives a test
// full control over every value a grand-product round or a memory-checking
// opening sees, including the folding challenges, without needing to
// hand-derive a real Fiat-Shamir state.
type fixedTranscript struct {
	reads      []ext
	readPos    int
	challenges []ext
	chalPos    int
}

func (t *fixedTranscript) ReadFeltExt() (ext, error) {
	if t.readPos >= len(t.reads) {
		var zero ext
		return zero, errs.NewTranscriptExhausted(errors.New("fixedTranscript: reads exhausted"))
	}
	e := t.reads[t.readPos]
	t.readPos++
	return e, nil
}

func (t *fixedTranscript) ReadFeltExts(n int) ([]ext, error) {
	out := make([]ext, n)
	for i := 0; i < n; i++ {
		e, err := t.ReadFeltExt()
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func (t *fixedTranscript) ReadFeltsAsExts(n int) ([]ext, error) {
	return t.ReadFeltExts(n)
}

func (t *fixedTranscript) SqueezeChallenge() ext {
	e := t.challenges[t.chalPos]
	t.chalPos++
	return e
}

func (t *fixedTranscript) CommonFelts(bases []fr) {}

// passthroughLayer is a sumcheck.LayerProver/sumcheck.Verifier test double:
// VerifySumCheck trivially returns the claim it was handed (no transcript
// interaction, no real sum-check reduction), EvaluateLayerExpression returns
// the same zero element SumCheckClaim does so the cross-check never fails,
// and LayerDownClaim ignores
// the fold challenge and keeps only the left element of every leaf pair, so
// a test can fix the grand product's output claims by fixing the leaves it
// scripts.
type passthroughLayer struct{}

func (passthroughLayer) SumCheckFunction(numVars, numBatching int, gamma ext) sumcheck.Polynomial {
	return nil
}

// SumCheckClaim and EvaluateLayerExpression both ignore their inputs and
// return the zero element, so VerifySumCheck's echoed claim always agrees
// with the cross-check regardless of what values a test scripts.
func (passthroughLayer) SumCheckClaim(claimedVs []ext, gamma ext) ext {
	var zero ext
	return zero
}

func (passthroughLayer) LayerDownClaim(evals []ext, mu ext) []ext {
	out := make([]ext, len(evals)/2)
	for j := range out {
		out[j] = evals[2*j]
	}
	return out
}

func (passthroughLayer) EvaluateLayerExpression(numVars, numBatching int, gamma ext, point []ext) ext {
	var zero ext
	return zero
}

func (passthroughLayer) VerifySumCheck(g sumcheck.Polynomial, claim ext, tr transcript.Reader[fr, ext]) (ext, []ext, error) {
	return claim, []ext{}, nil
}

// recordingAccumulator records every AddPoint/AddEval call for assertions.
type recordingAccumulator struct {
	points []ext
	evals  []Opening[ext]
}

func (a *recordingAccumulator) AddPoint(point []ext) int {
	var p ext
	for _, e := range point {
		p = p.Add(e)
	}
	a.points = append(a.points, p)
	return len(a.points) - 1
}

func (a *recordingAccumulator) AddEval(o Opening[ext]) {
	a.evals = append(a.evals, o)
}

// constantZeroSubtable is a one-variable subtable MLE that evaluates to
// zero everywhere, letting a test fix every fingerprint input by hand
// without tracking a real index-dependent subtable value.
func constantZeroSubtable() polyterms.MultilinearPolyTerms[fr] {
	return polyterms.New[fr](1, polyterms.Const[fr]{Value: bn254scalar.FromUint64(0)})
}

func newSingleMemoryVerifier(t *testing.T) *MemoryCheckingVerifier[fr, ext] {
	t.Helper()
	mem := NewMemory(0, constantZeroSubtable())
	chunk, err := NewChunk(0, 1, []Memory[fr]{mem})
	require.NoError(t, err)
	gp := grandproduct.Verifier[fr, ext]{Prover: passthroughLayer{}, Check: passthroughLayer{}}
	v, err := NewMemoryCheckingVerifier[fr, ext]([]Chunk[fr]{chunk}, gp)
	require.NoError(t, err)
	return v
}

// scriptedValues bundles the hand-computed fingerprint scenario shared by
// the success and mismatch tests below: one chunk, one memory, one read.
// idY = mu2 = 9, subtableY = 0, so init = idY - tau and final = idY +
// gamma^2*finalCtsY - tau; dimX=3, readTsX=7, ePolyX=4, gamma=2, tau=5
// reproduce the fingerprint.Hash worked example of a=3,v=4,t=7.
type scriptedValues struct {
	gamma, tau                          ext
	dimX, readTsX, finalCtsY, ePolyX    ext
	readVal, writeVal, initVal, finalVal ext
}

func buildScriptedValues() scriptedValues {
	gamma, tau := feltExt(2), feltExt(5)
	dimX, readTsX, finalCtsY, ePolyX := feltExt(3), feltExt(7), feltExt(6), feltExt(4)
	mu2 := feltExt(9) // idY, since idPoly([mu2]) = mu2

	onePlusReadTsX := readTsX.Add(readTsX.One())
	var zero ext
	readVal := dimX.Add(gamma.Mul(ePolyX)).Add(gamma.Mul(gamma).Mul(readTsX)).Sub(tau)
	writeVal := dimX.Add(gamma.Mul(ePolyX)).Add(gamma.Mul(gamma).Mul(onePlusReadTsX)).Sub(tau)
	initVal := mu2.Add(gamma.Mul(zero)).Add(gamma.Mul(gamma).Mul(zero)).Sub(tau)
	finalVal := mu2.Add(gamma.Mul(zero)).Add(gamma.Mul(gamma).Mul(finalCtsY)).Sub(tau)

	return scriptedValues{
		gamma: gamma, tau: tau,
		dimX: dimX, readTsX: readTsX, finalCtsY: finalCtsY, ePolyX: ePolyX,
		readVal: readVal, writeVal: writeVal, initVal: initVal, finalVal: finalVal,
	}
}

func buildTranscript(sv scriptedValues) *fixedTranscript {
	junk := feltExt(999)
	return &fixedTranscript{
		reads: []ext{
			// read/write grand product: 2 unused top claims, 4 leaves.
			junk, junk,
			sv.readVal, junk, sv.writeVal, junk,
			// init/final grand product: 2 unused top claims, 4 leaves.
			junk, junk,
			sv.initVal, junk, sv.finalVal, junk,
			// per-chunk shared openings, then one e_poly opening.
			sv.dimX, sv.readTsX, sv.finalCtsY,
			sv.ePolyX,
		},
		challenges: []ext{
			feltExt(50), feltExt(11), // read/write round: gamma, mu (=x[0])
			feltExt(51), feltExt(9), // init/final round: gamma, mu (=y[0]=idY)
		},
	}
}

func TestVerifySucceedsAndThreadsOpenings(t *testing.T) {
	sv := buildScriptedValues()
	tr := buildTranscript(sv)
	v := newSingleMemoryVerifier(t)
	acc := &recordingAccumulator{}

	err := v.Verify(2, sv.gamma, sv.tau, tr, acc)
	require.NoError(t, err)

	assert.Len(t, acc.points, 2)
	require.Len(t, acc.evals, 4)
	assert.Equal(t, 1, acc.evals[0].PolyIndex) // dim
	assert.Equal(t, 2, acc.evals[1].PolyIndex) // read_ts
	assert.Equal(t, 3, acc.evals[2].PolyIndex) // final_cts
	assert.Equal(t, 4, acc.evals[3].PolyIndex) // e_poly, memory index 0
	assert.True(t, acc.evals[0].Value.Equal(sv.dimX))
	assert.True(t, acc.evals[1].Value.Equal(sv.readTsX))
	assert.True(t, acc.evals[2].Value.Equal(sv.finalCtsY))
	assert.True(t, acc.evals[3].Value.Equal(sv.ePolyX))
}

func TestVerifyToleratesNilAccumulator(t *testing.T) {
	sv := buildScriptedValues()
	tr := buildTranscript(sv)
	v := newSingleMemoryVerifier(t)

	require.NoError(t, v.Verify(2, sv.gamma, sv.tau, tr, nil))
}

func TestVerifyDetectsReadFingerprintMismatch(t *testing.T) {
	sv := buildScriptedValues()
	sv.readVal = sv.readVal.Add(sv.readVal.One()) // perturb by +1
	tr := buildTranscript(sv)
	v := newSingleMemoryVerifier(t)

	err := v.Verify(2, sv.gamma, sv.tau, tr, nil)
	require.Error(t, err)
	var target *errs.Error
	require.True(t, errors.As(err, &target))
	assert.Equal(t, errs.FingerprintMismatch, target.Kind)
}

func TestVerifyDetectsFinalReadFingerprintMismatch(t *testing.T) {
	sv := buildScriptedValues()
	sv.finalVal = sv.finalVal.Add(sv.finalVal.One())
	tr := buildTranscript(sv)
	v := newSingleMemoryVerifier(t)

	err := v.Verify(2, sv.gamma, sv.tau, tr, nil)
	require.Error(t, err)
	var target *errs.Error
	require.True(t, errors.As(err, &target))
	assert.Equal(t, errs.FingerprintMismatch, target.Kind)
}

func TestNewChunkRejectsEmptyMemories(t *testing.T) {
	_, err := NewChunk[fr](0, 1, nil)
	require.Error(t, err)
	var target *errs.Error
	require.True(t, errors.As(err, &target))
	assert.Equal(t, errs.Malformed, target.Kind)
}

func TestNewMemoryCheckingVerifierRejectsNoChunks(t *testing.T) {
	gp := grandproduct.Verifier[fr, ext]{Prover: passthroughLayer{}, Check: passthroughLayer{}}
	_, err := NewMemoryCheckingVerifier[fr, ext](nil, gp)
	require.Error(t, err)
	var target *errs.Error
	require.True(t, errors.As(err, &target))
	assert.Equal(t, errs.Malformed, target.Kind)
}

// TestVerifyMultiChunkSharesAccumulatorPoints guards against registering the
// grand-product x/y points once per chunk: with two chunks the accumulator
// must still see exactly one x and one y point, shared by every chunk's
// openings.
func TestVerifyMultiChunkSharesAccumulatorPoints(t *testing.T) {
	gamma, tau := feltExt(2), feltExt(5)

	dimX0, readTsX0, finalCtsY0, ePolyX0 := feltExt(3), feltExt(7), feltExt(6), feltExt(4)
	dimX1, readTsX1, finalCtsY1, ePolyX1 := feltExt(13), feltExt(2), feltExt(8), feltExt(15)
	idY := feltExt(9) // shared y across both chunks

	var zero ext
	onePlusReadTsX0 := readTsX0.Add(readTsX0.One())
	onePlusReadTsX1 := readTsX1.Add(readTsX1.One())

	readVal0 := dimX0.Add(gamma.Mul(ePolyX0)).Add(gamma.Mul(gamma).Mul(readTsX0)).Sub(tau)
	readVal1 := dimX1.Add(gamma.Mul(ePolyX1)).Add(gamma.Mul(gamma).Mul(readTsX1)).Sub(tau)
	writeVal0 := dimX0.Add(gamma.Mul(ePolyX0)).Add(gamma.Mul(gamma).Mul(onePlusReadTsX0)).Sub(tau)
	writeVal1 := dimX1.Add(gamma.Mul(ePolyX1)).Add(gamma.Mul(gamma).Mul(onePlusReadTsX1)).Sub(tau)
	initVal := idY.Add(gamma.Mul(zero)).Add(gamma.Mul(gamma).Mul(zero)).Sub(tau)
	finalVal0 := idY.Add(gamma.Mul(zero)).Add(gamma.Mul(gamma).Mul(finalCtsY0)).Sub(tau)
	finalVal1 := idY.Add(gamma.Mul(zero)).Add(gamma.Mul(gamma).Mul(finalCtsY1)).Sub(tau)

	junk := feltExt(999)
	tr := &fixedTranscript{
		reads: []ext{
			// read/write grand product: 4 unused top claims (2 memories
			// across 2 chunks, batched 2x for read+write), 8 leaves.
			junk, junk, junk, junk,
			readVal0, junk, readVal1, junk,
			writeVal0, junk, writeVal1, junk,
			// init/final grand product: 4 unused top claims, 8 leaves.
			junk, junk, junk, junk,
			initVal, junk, initVal, junk,
			finalVal0, junk, finalVal1, junk,
			// chunk 0's shared openings, then its e_poly opening.
			dimX0, readTsX0, finalCtsY0, ePolyX0,
			// chunk 1's shared openings, then its e_poly opening.
			dimX1, readTsX1, finalCtsY1, ePolyX1,
		},
		challenges: []ext{
			feltExt(50), feltExt(11), // read/write round: gamma, mu (=x[0])
			feltExt(51), feltExt(9), // init/final round: gamma, mu (=y[0]=idY)
		},
	}

	mem0 := NewMemory(0, constantZeroSubtable())
	chunk0, err := NewChunk(0, 1, []Memory[fr]{mem0})
	require.NoError(t, err)
	mem1 := NewMemory(1, constantZeroSubtable())
	chunk1, err := NewChunk(1, 1, []Memory[fr]{mem1})
	require.NoError(t, err)

	gp := grandproduct.Verifier[fr, ext]{Prover: passthroughLayer{}, Check: passthroughLayer{}}
	v, err := NewMemoryCheckingVerifier[fr, ext]([]Chunk[fr]{chunk0, chunk1}, gp)
	require.NoError(t, err)

	acc := &recordingAccumulator{}
	require.NoError(t, v.Verify(2, gamma, tau, tr, acc))

	assert.Len(t, acc.points, 2, "x and y must be registered once per call, not once per chunk")
	require.Len(t, acc.evals, 8)
	assert.Equal(t, acc.evals[0].PointIndex, acc.evals[4].PointIndex, "dim openings from different chunks must share the x point index")
	assert.Equal(t, acc.evals[2].PointIndex, acc.evals[6].PointIndex, "final_cts openings from different chunks must share the y point index")
}

func TestChunkPolyIndices(t *testing.T) {
	mem := NewMemory(0, constantZeroSubtable())
	chunk, err := NewChunk(1, 2, []Memory[fr]{mem})
	require.NoError(t, err)

	idx := chunk.PolyIndices(10, 3)
	assert.Equal(t, [3]int{12, 15, 18}, idx)
}
