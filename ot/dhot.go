package ot

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/oksanen/maxgc/ot/mpint"
)

// Channel is the minimal byte-oriented message exchange the OT
// subprotocol needs. transport.Conn satisfies it; tests may supply a
// lighter stand-in.
type Channel interface {
	SendData(val []byte) error
	Flush() error
	ReceiveData() ([]byte, error)
}

// ErrOtGroup signals that a peer sent a group element outside the
// expected subgroup (§7, error kind OtGroup).
type ErrOtGroup struct {
	Who string
}

func (e *ErrOtGroup) Error() string {
	return fmt.Sprintf("ot: %s sent an element outside the expected subgroup", e.Who)
}

// Sender is the garbler's side of a 1-of-2 OT: it holds both labels
// of an evaluator input wire and learns nothing about which one the
// receiver ends up with.
type Sender struct {
	grp *Group
}

// NewSender creates an OT sender bound to grp.
func NewSender(grp *Group) *Sender {
	if grp == nil {
		grp = DefaultGroup()
	}
	return &Sender{grp: grp}
}

// Transfer runs one 1-of-2 transfer of (l0, l1) over ch with the
// evaluator's Receiver on the other end. Every call draws fresh
// randomness, so wires must not share a Transfer call (§4.3: "OT
// instances for different wires must use fresh randomness").
func (s *Sender) Transfer(ch Channel, l0, l1 Label) error {
	grp := s.grp

	a, err := grp.RandomExponent(rand.Reader)
	if err != nil {
		return err
	}
	A := grp.Exp(grp.G, a)

	if err := ch.SendData(A.Bytes()); err != nil {
		return err
	}
	if err := ch.Flush(); err != nil {
		return err
	}

	bBytes, err := ch.ReceiveData()
	if err != nil {
		return err
	}
	B := mpint.FromBytes(bBytes)
	if !grp.Contains(B) {
		return &ErrOtGroup{Who: "receiver"}
	}

	// k0 = B^a, k1 = (B * A^-1)^a.
	k0 := grp.Exp(B, a)

	aInv := mpint.InverseMod(A, grp.P)
	if aInv == nil {
		return fmt.Errorf("ot: sender's own A has no inverse mod P")
	}
	bOverA := mpint.Mod(new(big.Int).Mul(B, aInv), grp.P)
	k1 := grp.Exp(bOverA, a)

	var buf LabelData
	e0, err := sealLabel(dhKey(k0), l0.Bytes(&buf))
	if err != nil {
		return err
	}
	e1, err := sealLabel(dhKey(k1), l1.Bytes(&buf))
	if err != nil {
		return err
	}

	if err := ch.SendData(e0); err != nil {
		return err
	}
	if err := ch.SendData(e1); err != nil {
		return err
	}
	return ch.Flush()
}

// Receiver is the evaluator's side of a 1-of-2 OT: it supplies a
// choice bit and learns only the label for that bit.
type Receiver struct {
	grp *Group
}

// NewReceiver creates an OT receiver bound to grp.
func NewReceiver(grp *Group) *Receiver {
	if grp == nil {
		grp = DefaultGroup()
	}
	return &Receiver{grp: grp}
}

// Transfer runs the receiver's half of one 1-of-2 transfer, choosing
// bit c, and returns the chosen label.
func (r *Receiver) Transfer(ch Channel, c byte) (Label, error) {
	grp := r.grp
	var zero Label

	aBytes, err := ch.ReceiveData()
	if err != nil {
		return zero, err
	}
	A := mpint.FromBytes(aBytes)
	if !grp.Contains(A) {
		return zero, &ErrOtGroup{Who: "sender"}
	}

	b, err := grp.RandomExponent(rand.Reader)
	if err != nil {
		return zero, err
	}

	var B *big.Int
	if c == 0 {
		B = grp.Exp(grp.G, b)
	} else {
		B = mpint.Mod(new(big.Int).Mul(A, grp.Exp(grp.G, b)), grp.P)
	}
	k := grp.Exp(A, b)

	if err := ch.SendData(B.Bytes()); err != nil {
		return zero, err
	}
	if err := ch.Flush(); err != nil {
		return zero, err
	}

	e0, err := ch.ReceiveData()
	if err != nil {
		return zero, err
	}
	e1, err := ch.ReceiveData()
	if err != nil {
		return zero, err
	}

	var chosen []byte
	if c == 0 {
		chosen = e0
	} else {
		chosen = e1
	}

	data, err := openLabel(dhKey(k), chosen)
	if err != nil {
		return zero, fmt.Errorf("ot: %w", err)
	}
	var l Label
	if err := l.SetBytes(data); err != nil {
		return zero, err
	}
	return l, nil
}

// dhKey derives a symmetric key from a Diffie-Hellman shared value.
func dhKey(shared *big.Int) []byte {
	sum := blake2b.Sum256(shared.Bytes())
	return sum[:]
}

// sealLabel authenticates and encrypts a 16 byte label under key,
// using a fixed all-zero nonce: the key is a one-time Diffie-Hellman
// output and is never reused across transfers.
func sealLabel(key, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSize)
	return aead.Seal(nil, nonce, plaintext, nil), nil
}

// openLabel reverses sealLabel. A failure here means the sender and
// receiver disagree on the shared secret, i.e. protocol corruption.
func openLabel(key, ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSize)
	return aead.Open(nil, nonce, ciphertext, nil)
}
