// Package scripted is a deterministic, in-memory transcript.Reader used by
// tests: a recorded script of extension-field elements played back in order,
// with challenges derived by a simple counter-keyed hash rather than a real
// Fiat-Shamir state. Grounded on the teacher's testutils package playing the
// role of shared, hand-rolled test scaffolding rather than production code.
package scripted

import (
	"fmt"

	"github.com/nulltea/gkr-lasso/field"
	"github.com/nulltea/gkr-lasso/internal/errs"
)

// Transcript plays back a pre-arranged sequence of extension-field elements
// as "reads", and derives challenges deterministically from an internal
// counter folded with every element it has seen — enough entanglement
// between absorbed/read data and derived challenges to exercise the
// bit-flip-detection tests in spec.md §8 without depending on a real hash.
type Transcript[F field.Base[F], E field.Ext[E, F]] struct {
	script []E
	pos    int
	state  E
	seed   uint64
}

// New builds a scripted transcript that will yield script's elements, in
// order, to ReadFeltExt/ReadFeltExts/ReadFeltsAsExts calls.
func New[F field.Base[F], E field.Ext[E, F]](script []E) *Transcript[F, E] {
	return &Transcript[F, E]{script: script}
}

func (t *Transcript[F, E]) absorb(e E) {
	t.state = t.state.Add(e)
	t.seed++
}

func (t *Transcript[F, E]) ReadFeltExt() (E, error) {
	if t.pos >= len(t.script) {
		var zero E
		return zero, errs.NewTranscriptExhausted(fmt.Errorf("scripted transcript exhausted at position %d", t.pos))
	}
	e := t.script[t.pos]
	t.pos++
	t.absorb(e)
	return e, nil
}

func (t *Transcript[F, E]) ReadFeltExts(n int) ([]E, error) {
	out := make([]E, n)
	for i := 0; i < n; i++ {
		e, err := t.ReadFeltExt()
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func (t *Transcript[F, E]) ReadFeltsAsExts(n int) ([]E, error) {
	return t.ReadFeltExts(n)
}

// SqueezeChallenge derives the next challenge from the accumulated state and
// a monotonic counter, then folds the challenge back into the state.
func (t *Transcript[F, E]) SqueezeChallenge() E {
	counter := field.SmallInt[E](t.seed + 1)
	challenge := t.state.Add(counter).Add(t.state.One())
	t.state = t.state.Add(challenge)
	t.seed++
	return challenge
}

// CommonFelts folds pre-known base-field values into the transcript state.
func (t *Transcript[F, E]) CommonFelts(bases []F) {
	for _, b := range bases {
		var zero E
		t.absorb(zero.FromBase(b))
	}
}
