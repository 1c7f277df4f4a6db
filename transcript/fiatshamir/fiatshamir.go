// Package fiatshamir adapts github.com/consensys/gnark-crypto/fiat-shamir to
// the transcript.Reader contract, in the Bind/ComputeChallenge idiom shown in
// the retrieval pack's deriveRandomness helper
// (other_examples/.../plookup-table.go.go). Every read element is absorbed
// back into the transcript state before the next challenge is derived, so
// committed openings and squeezed challenges stay coupled the way a real
// Fiat-Shamir transcript requires.
package fiatshamir

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"

	"github.com/nulltea/gkr-lasso/field"
	"github.com/nulltea/gkr-lasso/field/bn254scalar"
	"github.com/nulltea/gkr-lasso/internal/errs"
)

const challengeLabel = "gkr-lasso"

// Transcript reads base-field proof elements off an underlying byte stream
// and derives extension-field challenges from a gnark-crypto Fiat-Shamir
// state, for an extension E of a fixed degree over bn254scalar.Fr.
type Transcript[E field.Ext[E, bn254scalar.Fr]] struct {
	proof io.Reader
	fs    *fiatshamir.Transcript
	zero  E
}

// New wraps proof (the stream of base-field elements the prover committed,
// in the fixed order spec.md §3 describes) with a fresh Fiat-Shamir state
// seeded by domainSep.
func New[E field.Ext[E, bn254scalar.Fr]](proof io.Reader, domainSep string) *Transcript[E] {
	fs := fiatshamir.NewTranscript(sha256.New(), challengeLabel)
	if domainSep != "" {
		_ = fs.Bind(challengeLabel, []byte(domainSep))
	}
	return &Transcript[E]{proof: proof, fs: fs}
}

func (t *Transcript[E]) readBase() (bn254scalar.Fr, error) {
	var buf [fr.Bytes]byte
	if _, err := io.ReadFull(t.proof, buf[:]); err != nil {
		return bn254scalar.Fr{}, errs.NewTranscriptExhausted(err)
	}
	el := bn254scalar.SetBytes(buf[:])
	if err := t.fs.Bind(challengeLabel, buf[:]); err != nil {
		return bn254scalar.Fr{}, errs.Wrap(errs.TranscriptExhausted, "binding proof element", err)
	}
	return el, nil
}

// ReadFeltExt pulls one base-field element off the proof stream and embeds
// it as an extension element (the transcript carries only base-field
// openings on the wire).
func (t *Transcript[E]) ReadFeltExt() (E, error) {
	b, err := t.readBase()
	if err != nil {
		var zero E
		return zero, err
	}
	return t.zero.FromBase(b), nil
}

func (t *Transcript[E]) ReadFeltExts(n int) ([]E, error) {
	out := make([]E, n)
	for i := 0; i < n; i++ {
		e, err := t.ReadFeltExt()
		if err != nil {
			return nil, fmt.Errorf("reading element %d of %d: %w", i, n, err)
		}
		out[i] = e
	}
	return out, nil
}

func (t *Transcript[E]) ReadFeltsAsExts(n int) ([]E, error) {
	return t.ReadFeltExts(n)
}

// SqueezeChallenge derives a fresh extension-field challenge from the
// transcript state, then re-binds the derived bytes so the next squeeze
// reflects it.
func (t *Transcript[E]) SqueezeChallenge() E {
	out, err := t.fs.ComputeChallenge(challengeLabel)
	if err != nil {
		panic(fmt.Sprintf("fiatshamir: squeeze challenge: %v", err))
	}
	if err := t.fs.Bind(challengeLabel, out); err != nil {
		panic(fmt.Sprintf("fiatshamir: re-binding challenge: %v", err))
	}
	b := bn254scalar.SetBytes(out)
	return t.zero.FromBase(b)
}

// CommonFelts absorbs pre-known values into the transcript state without
// reading them from the proof stream.
func (t *Transcript[E]) CommonFelts(bases []bn254scalar.Fr) {
	for _, b := range bases {
		buf := b.Bytes()
		if err := t.fs.Bind(challengeLabel, buf[:]); err != nil {
			panic(fmt.Sprintf("fiatshamir: binding common felt: %v", err))
		}
	}
}
