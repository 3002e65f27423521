package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"chesscore/board"
	"chesscore/perft"
)

func main() {
	fen := flag.String("fen", board.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	detailed := flag.Bool("detailed", false, "Print capture/castle/promotion/check counters")
	verify := flag.Bool("verify", false, "Cross-check the count against dragontoothmg and goosemg")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}
	tables := board.NewTables()

	if *divide {
		lines, total := perft.Divide(tables, pos, *depth)
		for _, l := range lines {
			fmt.Printf("%s: %d\n", l.Move, l.Nodes)
		}
		fmt.Printf("Total: %d\n", total)
		return
	}

	if *verify {
		nodes, err := perft.Verify(tables, *fen, *depth, perft.DefaultOracles()...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "verify: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("ok depth %d nodes %d\n", *depth, nodes)
		return
	}

	if *detailed {
		s := tables.PerftDetailed(pos, *depth)
		fmt.Printf("nodes %d captures %d ep %d castles %d promotions %d checks %d mates %d\n",
			s.Nodes, s.Captures, s.EnPassant, s.Castles, s.Promotions, s.Checks, s.Checkmates)
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

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += tables.Perft(pos, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			os.Exit(2)
		}
		_ = f.Close()
	}
}
