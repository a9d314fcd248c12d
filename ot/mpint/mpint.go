// Package mpint collects the handful of big.Int operations the
// Diffie-Hellman oblivious-transfer group needs, named so call sites
// read like the modular arithmetic they express.
package mpint

import (
	"math/big"
)

// FromBytes interprets data as a big-endian unsigned integer.
func FromBytes(data []byte) *big.Int {
	return big.NewInt(0).SetBytes(data)
}

// Add returns a + b as a new big.Int.
func Add(a, b *big.Int) *big.Int {
	return big.NewInt(0).Add(a, b)
}

// Sub returns a - b as a new big.Int.
func Sub(a, b *big.Int) *big.Int {
	return big.NewInt(0).Sub(a, b)
}

// Exp returns x^y mod m as a new big.Int.
func Exp(x, y, m *big.Int) *big.Int {
	return big.NewInt(0).Exp(x, y, m)
}

// Mod returns x mod y as a new big.Int.
func Mod(x, y *big.Int) *big.Int {
	return big.NewInt(0).Mod(x, y)
}

// InverseMod returns x^-1 mod m as a new big.Int, or nil if x has no
// inverse modulo m.
func InverseMod(x, m *big.Int) *big.Int {
	return big.NewInt(0).ModInverse(x, m)
}
