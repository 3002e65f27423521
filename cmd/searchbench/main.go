package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"chesscore/board"
	"chesscore/engine"
)

var benchFENs = []string{
	board.FENStartPos,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10",
}

func main() {
	depthFlag := flag.Int("depth", engine.DefaultMaxDepth, "maximum search depth in plies")
	budgetFlag := flag.Duration("budget", time.Second, "time budget per search")
	repeatFlag := flag.Int("repeat", 1, "number of searches per position")
	fenFlag := flag.String("fen", "", "FEN to search (empty = built-in suite)")
	hashFlag := flag.Int("hash", engine.DefaultTTSize, "transposition table size in MB")
	infoFlag := flag.Bool("info", false, "print per-depth info lines")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	if *depthFlag <= 0 {
		log.Fatalf("depth must be positive, got %d", *depthFlag)
	}
	if *repeatFlag <= 0 {
		log.Fatalf("repeat must be positive, got %d", *repeatFlag)
	}

	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fens := benchFENs
	if *fenFlag != "" {
		fens = []string{*fenFlag}
	}

	opts := engine.DefaultOptions()
	opts.MaxDepth = *depthFlag
	opts.TTSize = *hashFlag
	if *infoFlag {
		opts.Info = os.Stdout
	}
	tables := board.NewTables()
	zobrist := board.NewZobrist(board.DefaultZobristSeed)

	fmt.Printf("searchbench: positions=%d depth=%d budget=%v repeat=%d\n", len(fens), *depthFlag, *budgetFlag, *repeatFlag)

	var nps, depths, nodes []float64
	startAll := time.Now()
	for _, fen := range fens {
		pos, err := board.ParseFEN(fen)
		if err != nil {
			log.Fatalf("bad FEN %q: %v", fen, err)
		}
		for i := 0; i < *repeatFlag; i++ {
			// fresh engine so every run starts with an empty table
			e := engine.New(tables, zobrist, opts)
			res := e.Search(pos, *budgetFlag)
			secs := res.Elapsed.Seconds()
			if secs <= 0 {
				secs = 1e-9
			}
			nps = append(nps, float64(res.Nodes)/secs)
			depths = append(depths, float64(res.Depth))
			nodes = append(nodes, float64(res.Nodes))
			fmt.Printf("%s: bestmove %v score %d depth %d nodes %d time=%v\n",
				fen, res.Move, res.Score, res.Depth, res.Nodes, res.Elapsed)
		}
	}
	fmt.Printf("total time: %v\n", time.Since(startAll))
	fmt.Printf("nodes: total %.0f\n", floats.Sum(nodes))
	npsMean, npsStd := stat.MeanStdDev(nps, nil)
	fmt.Printf("nps: mean %.0f stddev %.0f max %.0f\n", npsMean, npsStd, floats.Max(nps))
	fmt.Printf("depth: mean %.2f min %.0f max %.0f\n", stat.Mean(depths, nil), floats.Min(depths), floats.Max(depths))

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatalf("could not create memory profile: %v", err)
		}
		defer f.Close()

		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatalf("could not write memory profile: %v", err)
		}
	}
}
