package grandproduct

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nulltea/gkr-lasso/field"
	"github.com/nulltea/gkr-lasso/internal/errs"
	"github.com/nulltea/gkr-lasso/sumcheck"
	"github.com/nulltea/gkr-lasso/transcript"
)

var nopLogger = zerolog.Nop()

// Verifier drives a batched layered sum-check over 2M lanes (spec.md §4.5).
// A nil Logger behaves as zerolog.Nop(); setting it emits round-level debug
// events and a warn-level event on failure.
type Verifier[F field.Base[F], E field.Ext[E, F]] struct {
	Prover sumcheck.LayerProver[F, E]
	Check  sumcheck.Verifier[F, E]
	Logger *zerolog.Logger
}

func (v Verifier[F, E]) logger() *zerolog.Logger {
	if v.Logger != nil {
		return v.Logger
	}
	return &nopLogger
}

// Verify runs verify_grand_product: round 0 absorbs or reads the top claims,
// rounds 1..numVars squeeze a batching challenge, run one sum-check round,
// cross-check its returned evaluation against the layer expression, read
// leaf evaluations, and fold via a squeezed challenge. numVars == 0 checks
// leaves directly with no interactive rounds. Returns the final claim vector
// and the accumulated challenge point (length numVars). For numVars > 0 the
// claim vector is the last round's folded claims (length len(claimedV0s));
// for numVars == 0 it is the 2*len(claimedV0s) leaf values read from the
// transcript, in [l0, r0, l1, r1, ...] order.
func (v Verifier[F, E]) Verify(
	numVars int,
	claimedV0s []*E,
	tr transcript.Reader[F, E],
) ([]E, []E, error) {
	numBatching := len(claimedV0s)
	if numBatching == 0 {
		return nil, nil, errs.NewMalformed("num_batching must be nonzero")
	}

	claims := make([]E, numBatching)
	for i, c := range claimedV0s {
		if c != nil {
			tr.CommonFelts((*c).Bases())
			claims[i] = *c
		} else {
			e, err := tr.ReadFeltExt()
			if err != nil {
				return nil, nil, fmt.Errorf("reading claim %d of %d: %w", i, numBatching, err)
			}
			claims[i] = e
		}
	}

	if numVars == 0 {
		evals, err := tr.ReadFeltExts(2 * numBatching)
		if err != nil {
			return nil, nil, fmt.Errorf("reading terminal leaves: %w", err)
		}
		for j := 0; j < numBatching; j++ {
			l, r := evals[2*j], evals[2*j+1]
			if !claims[j].Equal(l.Mul(r)) {
				v.logger().Warn().Int("lane", j).Msg("terminal grand-product check failed")
				return nil, nil, errs.NewInvalidSumCheck("unmatched sum check output")
			}
		}
		return evals, []E{}, nil
	}

	point := make([]E, 0, numVars)
	for r := 1; r <= numVars; r++ {
		gamma := tr.SqueezeChallenge()
		v.logger().Debug().Int("round", r).Msg("squeezed batching challenge")

		g := v.Prover.SumCheckFunction(r, numBatching, gamma)
		claim := v.Prover.SumCheckClaim(claims, gamma)

		eval, x, err := v.Check.VerifySumCheck(g, claim, tr)
		if err != nil {
			return nil, nil, fmt.Errorf("round %d sum-check: %w", r, err)
		}

		crossCheck := v.Prover.EvaluateLayerExpression(r, numBatching, gamma, x)
		if !eval.Equal(crossCheck) {
			v.logger().Warn().Int("round", r).Msg("sum-check evaluation disagrees with layer expression")
			return nil, nil, errs.NewInvalidSumCheck("sum check evaluation does not match layer expression")
		}

		evals, err := tr.ReadFeltExts(2 * numBatching)
		if err != nil {
			return nil, nil, fmt.Errorf("round %d reading leaves: %w", r, err)
		}

		mu := tr.SqueezeChallenge()
		v.logger().Debug().Int("round", r).Msg("squeezed folding challenge")

		claims = v.Prover.LayerDownClaim(evals, mu)
		point = append(point, mu)
	}

	return claims, point, nil
}
