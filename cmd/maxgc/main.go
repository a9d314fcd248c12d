// Command maxgc runs one two-party maximum-comparison session: two
// processes, Alice (the garbler) and Bob (the evaluator), each
// holding a private set of numbers, learn only whether Bob's maximum
// is strictly greater than Alice's and whether the two maxima differ.
package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/oksanen/maxgc/circuit"
	"github.com/oksanen/maxgc/numio"
	"github.com/oksanen/maxgc/protocol"
	"github.com/oksanen/maxgc/transport"
)

func main() {
	role := flag.String("role", "", "alice (garbler) or bob (evaluator)")
	input := flag.String("input", "", "path to this party's comma-separated input file")
	listen := flag.String("listen", "", "listen address, e.g. :4443")
	connect := flag.String("connect", "", "peer address to dial, e.g. localhost:4443")
	bits := flag.Int("bits", 32, "signed comparator bit width")
	timeout := flag.Duration("timeout", transport.DefaultMessageTimeout, "per-message timeout")
	verify := flag.Bool("verify", false, "bypass the protocol and compute the verdict in the clear")
	aFile := flag.String("a", "", "with -verify, Alice's input file")
	bFile := flag.String("b", "", "with -verify, Bob's input file")
	verbose := flag.Bool("v", false, "print session timing")
	flag.Parse()

	log.SetFlags(0)

	if *verify {
		if err := runVerify(*aFile, *bFile, *bits); err != nil {
			log.Print(err)
			os.Exit(2)
		}
		return
	}

	set, err := loadSet(*input)
	if err != nil {
		log.Print(err)
		os.Exit(2)
	}

	comparator, err := circuit.NewComparator(*bits)
	if err != nil {
		log.Print(err)
		os.Exit(2)
	}

	var conn *transport.Conn
	switch {
	case *listen != "":
		conn, err = transport.Listen(*listen)
	case *connect != "":
		conn, err = transport.DialRetry(*connect, 30*time.Second, 200*time.Millisecond)
	default:
		log.Print("one of -listen or -connect is required")
		os.Exit(2)
	}
	if err != nil {
		log.Print(err)
		os.Exit(4)
	}
	defer conn.Close()
	conn.Timeout = *timeout

	session := protocol.NewSession(conn, *bits, numio.DefaultScale)

	var verdict protocol.Verdict
	switch *role {
	case "alice":
		verdict, err = session.RunAsGarbler(set, comparator, rand.Reader)
	case "bob":
		verdict, err = session.RunAsEvaluator(set, comparator, rand.Reader)
	default:
		log.Print("role must be \"alice\" or \"bob\"")
		os.Exit(2)
	}

	if err != nil {
		if pe, ok := err.(*protocol.Error); ok {
			log.Print(pe.Kind)
			os.Exit(pe.Kind.ExitCode())
		}
		log.Print(err)
		os.Exit(3)
	}

	fmt.Println(verdict)
	if winner := verdict.Winner(); winner != "" {
		fmt.Fprintf(os.Stderr, "%s holds the larger maximum\n", winner)
	} else {
		fmt.Fprintln(os.Stderr, "the two maxima are equal")
	}
	if *verbose {
		fmt.Fprintf(os.Stderr, "garble=%s transfer=%s evaluate=%s total=%s\n",
			session.Timing.Garble, session.Timing.Transfer, session.Timing.Evaluate, session.Timing.Total)
	}
}

func loadSet(path string) ([]int64, error) {
	if path == "" {
		return nil, fmt.Errorf("maxgc: -input is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return numio.ParseSet(string(data), numio.DefaultScale)
}

func runVerify(aPath, bPath string, bits int) error {
	if aPath == "" || bPath == "" {
		return fmt.Errorf("maxgc: -verify requires both -a and -b")
	}
	aSet, err := loadSet(aPath)
	if err != nil {
		return err
	}
	bSet, err := loadSet(bPath)
	if err != nil {
		return err
	}

	mA := numio.Max(aSet)
	mB := numio.Max(bSet)
	if err := numio.CheckRange(mA, bits); err != nil {
		return err
	}
	if err := numio.CheckRange(mB, bits); err != nil {
		return err
	}

	comparator, err := circuit.NewComparator(bits)
	if err != nil {
		return err
	}
	aBits := make([]circuit.Bit, bits)
	bBits := make([]circuit.Bit, bits)
	for i, b := range numio.Bits(mA, bits) {
		aBits[i] = circuit.Bit(b)
	}
	for i, b := range numio.Bits(mB, bits) {
		bBits[i] = circuit.Bit(b)
	}
	out, err := comparator.ComputeOutputs(aBits, bBits)
	if err != nil {
		return err
	}
	fmt.Println(protocol.Verdict{Gt: bool(out[0]), Ne: bool(out[1])})
	return nil
}
