package fingerprint

import "github.com/nulltea/gkr-lasso/field"

// Hash computes h(a, v, t) = a + gamma*v + gamma^2*t - tau, the fingerprint
// distinguishing (address, value, timestamp) triples under public challenges
// (gamma, tau).
func Hash[F field.Base[F], E field.Ext[E, F]](a, v, t, gamma, tau E) E {
	gammaSq := gamma.Mul(gamma)
	return a.Add(gamma.Mul(v)).Add(gammaSq.Mul(t)).Sub(tau)
}
