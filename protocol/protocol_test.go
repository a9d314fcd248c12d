package protocol

import (
	"crypto/rand"
	mathrand "math/rand"
	"sync"
	"testing"

	"github.com/oksanen/maxgc/circuit"
	"github.com/oksanen/maxgc/numio"
	"github.com/oksanen/maxgc/transport"
)

func runSession(t *testing.T, aSet, bSet []int64, nBits int) (Verdict, Verdict) {
	t.Helper()

	comparator, err := circuit.NewComparator(nBits)
	if err != nil {
		t.Fatalf("NewComparator: %v", err)
	}

	aConn, bConn := transport.Pipe()
	aSession := NewSession(aConn, nBits, numio.DefaultScale)
	bSession := NewSession(bConn, nBits, numio.DefaultScale)

	var wg sync.WaitGroup
	var aVerdict, bVerdict Verdict
	var aErr, bErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		aVerdict, aErr = aSession.RunAsGarbler(aSet, comparator, rand.Reader)
	}()
	go func() {
		defer wg.Done()
		bVerdict, bErr = bSession.RunAsEvaluator(bSet, comparator, rand.Reader)
	}()
	wg.Wait()

	if aErr != nil {
		t.Fatalf("RunAsGarbler: %v", aErr)
	}
	if bErr != nil {
		t.Fatalf("RunAsEvaluator: %v", bErr)
	}
	if aSession.State() != Done {
		t.Errorf("garbler session state = %v, want %v", aSession.State(), Done)
	}
	if bSession.State() != Done {
		t.Errorf("evaluator session state = %v, want %v", bSession.State(), Done)
	}
	return aVerdict, bVerdict
}

func TestEndToEndScenarios(t *testing.T) {
	cases := []struct {
		name    string
		a, b    []int64
		wantGt  bool
		wantNe  bool
	}{
		{"b-wins", []int64{-110, -97, 50, 101, 8574}, []int64{-100, 50, 102, 5640, 125580}, true, true},
		{"equal-same-sets", []int64{1000, 2000, 3000}, []int64{1000, 2000, 3000}, false, false},
		{"a-wins-close", []int64{55}, []int64{54}, false, true},
		{"a-wins-negative", []int64{-10000, -5000}, []int64{-20000, -15000}, false, true},
		{"both-zero", []int64{0}, []int64{0}, false, false},
		{"boundary-max", []int64{2147483647}, []int64{2147483646}, false, true},
		{"mixed-sign-b-wins", []int64{-1}, []int64{0}, true, true},
		{"mixed-sign-a-wins", []int64{0}, []int64{-1}, false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			aVerdict, bVerdict := runSession(t, tc.a, tc.b, 32)
			if aVerdict != bVerdict {
				t.Fatalf("garbler and evaluator disagree: %v vs %v", aVerdict, bVerdict)
			}
			if aVerdict.Gt != tc.wantGt || aVerdict.Ne != tc.wantNe {
				t.Errorf("got verdict %v, want (gt=%v,ne=%v)", aVerdict, tc.wantGt, tc.wantNe)
			}
		})
	}
}

// TestEndToEndRandomAgreement drives the full transport-backed session
// over 100 uniformly random signed 32-bit pairs and requires the
// garbler and evaluator to agree with each other and with the
// plaintext reference on every trial.
func TestEndToEndRandomAgreement(t *testing.T) {
	rng := mathrand.New(mathrand.NewSource(1))
	const trials = 100
	agree := 0
	for i := 0; i < trials; i++ {
		a := []int64{int64(int32(rng.Uint32()))}
		b := []int64{int64(int32(rng.Uint32()))}
		aVerdict, bVerdict := runSession(t, a, b, 32)
		if aVerdict != bVerdict {
			t.Errorf("trial %d: garbler and evaluator disagree: %v vs %v", i, aVerdict, bVerdict)
			continue
		}
		wantGt := b[0] > a[0]
		wantNe := a[0] != b[0]
		if aVerdict.Gt == wantGt && aVerdict.Ne == wantNe {
			agree++
		} else {
			t.Errorf("trial %d (a=%d,b=%d): got %v, want (gt=%v,ne=%v)", i, a[0], b[0], aVerdict, wantGt, wantNe)
		}
	}
	if agree != trials {
		t.Fatalf("end-to-end session agreed with the plaintext reference on %d/%d trials, want %d/%d",
			agree, trials, trials, trials)
	}
}

func TestInputOutOfRangeAborts(t *testing.T) {
	comparator, err := circuit.NewComparator(8)
	if err != nil {
		t.Fatalf("NewComparator: %v", err)
	}
	aConn, _ := transport.Pipe()
	session := NewSession(aConn, 8, numio.DefaultScale)

	_, err = session.RunAsGarbler([]int64{1000}, comparator, rand.Reader)
	if err == nil {
		t.Fatalf("expected an out-of-range error")
	}
	pe, ok := err.(*Error)
	if !ok || pe.Kind != KindInputOutOfRange {
		t.Fatalf("got %v, want KindInputOutOfRange", err)
	}
	if session.State() != Aborted {
		t.Errorf("state = %v, want Aborted", session.State())
	}
}
