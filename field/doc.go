// package field contains the arithmetic contracts the verifier is generic
// over: a base prime field F that committed polynomial coefficients live in,
// and an extension field E of known degree over F that every verifier
// challenge, claim, and fingerprint hash lives in. Concrete instantiations
// live in field/bn254scalar (F) and field/quadext (E).
package field
