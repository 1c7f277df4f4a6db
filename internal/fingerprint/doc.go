// Package fingerprint computes the trilinear fingerprint hash shared by the
// memory-checking read/write/init/final-read multiset checks:
// h(a, v, t) = a + gamma*v + gamma^2*t - tau.
package fingerprint
