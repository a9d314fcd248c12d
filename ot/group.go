package ot

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/oksanen/maxgc/ot/mpint"
)

// groupHex is a 512 bit safe prime P = 2Q+1 with Q also prime,
// generated once and fixed here the way the OT handshake expects: the
// same parameters are reused across every input wire of a session
// rather than renegotiated per wire.
const groupHex = "" +
	"cf561c44ccc34e8f5a43b6862b5ab17a8a22b6da78b4892d547341c" +
	"22b9e71ea3955e14d882da1c3d98fa29f4edfd2d9197b569d20e659" +
	"a104808068edcc451b"

// Group is a prime-order multiplicative subgroup of Z_p*, shared by
// the sender and receiver of a DH-style 1-of-2 OT session. The same
// parameters are safe to reuse across every input wire of a session.
type Group struct {
	P *big.Int // modulus, a safe prime
	Q *big.Int // subgroup order, (P-1)/2
	G *big.Int // generator of the order-Q subgroup
}

var defaultGroup *Group

func init() {
	p, ok := new(big.Int).SetString(groupHex, 16)
	if !ok {
		panic("ot: invalid embedded group modulus")
	}
	q := new(big.Int).Rsh(new(big.Int).Sub(p, big.NewInt(1)), 1)
	g := mpint.Exp(big.NewInt(2), big.NewInt(2), p)

	defaultGroup = &Group{P: p, Q: q, G: g}
}

// DefaultGroup returns the well-known group parameters used when a
// session does not negotiate its own.
func DefaultGroup() *Group {
	return defaultGroup
}

// RandomExponent draws a uniform exponent in [1, Q) from src.
func (grp *Group) RandomExponent(src io.Reader) (*big.Int, error) {
	max := new(big.Int).Sub(grp.Q, big.NewInt(1))
	x, err := rand.Int(src, max)
	if err != nil {
		return nil, err
	}
	return x.Add(x, big.NewInt(1)), nil
}

// Exp computes g^x mod P.
func (grp *Group) Exp(g, x *big.Int) *big.Int {
	return mpint.Exp(g, x, grp.P)
}

// Contains reports whether y is a nontrivial element of the
// order-Q subgroup of Z_p*. The OT sender/receiver must reject group
// elements that fail this check (§4.3, error kind OtGroup).
func (grp *Group) Contains(y *big.Int) bool {
	if y == nil {
		return false
	}
	one := big.NewInt(1)
	if y.Cmp(one) <= 0 || y.Cmp(grp.P) >= 0 {
		return false
	}
	return grp.Exp(y, grp.Q).Cmp(one) == 0
}
