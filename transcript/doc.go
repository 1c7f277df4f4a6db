// Package transcript defines the Fiat-Shamir transcript contract the
// grand-product and memory-checking verifiers read from: the narrow external
// boundary named in spec.md §6. Concrete implementations live in
// transcript/fiatshamir (production, over gnark-crypto) and
// transcript/scripted (deterministic playback for tests).
package transcript
