// Perft walks the legal move tree to a fixed depth and reports node counts.
// Counts for known positions are the quickest way to spot a move generation
// regression, and -divide narrows a mismatch down to a single root move.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	"github.com/cyberfrank/chess3d/chess"
)

func main() {
	fen := flag.String("fen", chess.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times for steadier timings")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	board, err := chess.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse fen: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		printDivide(board, *depth)
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var nodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		nodes += chess.Perft(board, *depth)
	}
	elapsed := time.Since(start)

	fmt.Printf("depth %d: %d nodes in %s (%.0f nps)\n",
		*depth, nodes, elapsed, float64(nodes)/elapsed.Seconds())
}

func printDivide(board *chess.Board, depth int) {
	div := chess.PerftDivide(board, depth)

	moves := make([]chess.Move, 0, len(div))
	for m := range div {
		moves = append(moves, m)
	}
	sort.Slice(moves, func(i, j int) bool { return moves[i].String() < moves[j].String() })

	var sum uint64
	for _, m := range moves {
		fmt.Printf("%s: %d\n", m, div[m])
		sum += div[m]
	}
	fmt.Printf("Total: %d\n", sum)
}
