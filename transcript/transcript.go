package transcript

import "github.com/nulltea/gkr-lasso/field"

// Reader is the read/squeeze surface the verifier consumes. F is the base
// field committed polynomial coefficients live in; E is the extension field
// challenges and claims live in.
type Reader[F field.Base[F], E field.Ext[E, F]] interface {
	// ReadFeltExt pulls one extension-field element.
	ReadFeltExt() (E, error)
	// ReadFeltExts pulls n extension-field elements.
	ReadFeltExts(n int) ([]E, error)
	// ReadFeltsAsExts pulls n base-field elements and embeds them as
	// extension elements.
	ReadFeltsAsExts(n int) ([]E, error)
	// SqueezeChallenge derives a fresh challenge from the current transcript
	// state.
	SqueezeChallenge() E
	// CommonFelts absorbs pre-known values into the transcript state.
	CommonFelts(bases []F)
}
