// package bn254scalar adapts github.com/consensys/gnark-crypto/ecc/bn254/fr
// to the field.Base contract: a thin, value-semantics wrapper around
// fr.Element's pointer-receiver, mutate-in-place API.
package bn254scalar

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Fr is a bn254 scalar-field element.
type Fr struct {
	el fr.Element
}

// FromUint64 returns the Fr element representing v.
func FromUint64(v uint64) Fr {
	var z fr.Element
	z.SetUint64(v)
	return Fr{z}
}

// FromInt64 returns the Fr element representing v, negative values wrapping
// modulo the field order.
func FromInt64(v int64) Fr {
	var z fr.Element
	z.SetInt64(v)
	return Fr{z}
}

// Element exposes the wrapped gnark-crypto element for callers that need to
// commit, serialize, or otherwise interact with the rest of the
// gnark-crypto stack.
func (a Fr) Element() fr.Element { return a.el }

func (a Fr) Add(b Fr) Fr {
	var z fr.Element
	z.Add(&a.el, &b.el)
	return Fr{z}
}

func (a Fr) Sub(b Fr) Fr {
	var z fr.Element
	z.Sub(&a.el, &b.el)
	return Fr{z}
}

func (a Fr) Mul(b Fr) Fr {
	var z fr.Element
	z.Mul(&a.el, &b.el)
	return Fr{z}
}

func (a Fr) Neg() Fr {
	var z fr.Element
	z.Neg(&a.el)
	return Fr{z}
}

func (a Fr) Equal(b Fr) bool {
	return a.el.Equal(&b.el)
}

func (a Fr) IsZero() bool {
	return a.el.IsZero()
}

// One returns the multiplicative identity; it ignores the receiver's value.
func (a Fr) One() Fr {
	var z fr.Element
	z.SetOne()
	return Fr{z}
}

func (a Fr) String() string {
	return a.el.String()
}

// Bytes returns the canonical big-endian encoding of a, used by
// transcript/fiatshamir to bind and derive challenges.
func (a Fr) Bytes() [fr.Bytes]byte {
	return a.el.Bytes()
}

// SetBytes decodes a canonical big-endian encoding into a new Fr.
func SetBytes(b []byte) Fr {
	var z fr.Element
	z.SetBytes(b)
	return Fr{z}
}
