package ot

import (
	"crypto/rand"
	"math/big"
	"sync"
	"testing"

	"github.com/oksanen/maxgc/transport"
)

func TestDHOTTransfer(t *testing.T) {
	for _, choice := range []byte{0, 1} {
		l0, err := NewLabel(rand.Reader)
		if err != nil {
			t.Fatalf("NewLabel: %v", err)
		}
		l1, err := NewLabel(rand.Reader)
		if err != nil {
			t.Fatalf("NewLabel: %v", err)
		}

		senderConn, receiverConn := transport.Pipe()

		var wg sync.WaitGroup
		wg.Add(1)
		var sendErr error
		go func() {
			defer wg.Done()
			sendErr = NewSender(nil).Transfer(senderConn, l0, l1)
		}()

		got, err := NewReceiver(nil).Transfer(receiverConn, choice)
		wg.Wait()
		if sendErr != nil {
			t.Fatalf("Sender.Transfer: %v", sendErr)
		}
		if err != nil {
			t.Fatalf("Receiver.Transfer: %v", err)
		}

		want := l0
		if choice != 0 {
			want = l1
		}
		if !got.Equal(want) {
			t.Errorf("choice %d: got %s, expected %s", choice, got, want)
		}
	}
}

func TestGroupContainsBoundaries(t *testing.T) {
	grp := DefaultGroup()
	if grp.Contains(nil) {
		t.Errorf("nil should not be in the subgroup")
	}
	if grp.Contains(grp.P) {
		t.Errorf("P itself is not a valid element")
	}
	if grp.Contains(big.NewInt(1)) {
		t.Errorf("1 is the identity, not a valid nontrivial element")
	}
	if !grp.Contains(grp.G) {
		t.Errorf("the generator must be a member of its own subgroup")
	}
}
