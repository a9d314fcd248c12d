package protocol

import "github.com/oksanen/maxgc/circuit"

// Verdict is the two-bit result both roles learn: Gt is true iff B's
// maximum is strictly greater than A's, Ne is true iff the two maxima
// differ at all (§1, §4.1).
type Verdict struct {
	Gt bool
	Ne bool
}

// String renders the verdict as the two bits in gt,ne order, matching
// the "11"/"01"/"00" notation used throughout the testable scenarios.
func (v Verdict) String() string {
	b := func(x bool) byte {
		if x {
			return '1'
		}
		return '0'
	}
	return string([]byte{b(v.Gt), b(v.Ne)})
}

// Winner reports which role holds the larger maximum: "B" if Gt, "A"
// if Ne and not Gt, "" if the maxima are equal.
func (v Verdict) Winner() string {
	switch {
	case v.Gt:
		return "B"
	case v.Ne:
		return "A"
	default:
		return ""
	}
}

func verdictFromBits(bits []circuit.Bit) Verdict {
	return Verdict{Gt: bool(bits[0]), Ne: bool(bits[1])}
}
