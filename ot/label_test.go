package ot

import (
	"crypto/rand"
	"testing"
)

func TestLabelRoundTrip(t *testing.T) {
	l, err := NewLabel(rand.Reader)
	if err != nil {
		t.Fatalf("NewLabel: %v", err)
	}

	var buf LabelData
	data := l.Bytes(&buf)

	var got Label
	if err := got.SetBytes(data); err != nil {
		t.Fatalf("SetBytes: %v", err)
	}
	if !got.Equal(l) {
		t.Errorf("round trip mismatch: got %s, expected %s", got, l)
	}
}

func TestLabelSelectBitComplementary(t *testing.T) {
	r, err := NewLabel(rand.Reader)
	if err != nil {
		t.Fatalf("NewLabel: %v", err)
	}
	r.SetS(true)

	w, err := NewRandomPair(rand.Reader, r)
	if err != nil {
		t.Fatalf("NewRandomPair: %v", err)
	}
	if w.L0.S() == w.L1.S() {
		t.Errorf("select bits not complementary: L0.S=%v L1.S=%v",
			w.L0.S(), w.L1.S())
	}
}

func TestWireForBitAndBack(t *testing.T) {
	r, _ := NewLabel(rand.Reader)
	r.SetS(true)
	w, err := NewRandomPair(rand.Reader, r)
	if err != nil {
		t.Fatalf("NewRandomPair: %v", err)
	}

	for _, bit := range []byte{0, 1} {
		l := w.ForBit(bit)
		got, err := w.BitFromLabel(l)
		if err != nil {
			t.Fatalf("BitFromLabel: %v", err)
		}
		if got != bit {
			t.Errorf("BitFromLabel: got %d, expected %d", got, bit)
		}
	}

	var other Label
	other, _ = NewLabel(rand.Reader)
	if _, err := w.BitFromLabel(other); err == nil {
		t.Errorf("expected error for unrelated label")
	}
}
