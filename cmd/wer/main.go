// Wer computes the word error rate between a reference transcript and a
// recognition hypothesis.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/parleylabs/go-parley/pkg/wer"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, `usage: wer "<reference>" "<hypothesis>"`)
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	score := wer.Score(flag.Arg(0), flag.Arg(1))
	if math.IsInf(score, 1) {
		fmt.Println("WER: inf (empty reference)")
		return
	}
	fmt.Printf("WER: %.3f\n", score)
}
