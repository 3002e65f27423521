package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

// run executes a command and prints its combined output. Returns exit code.
func run(name string, args ...string) int {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	fmt.Print(out.String())
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	fmt.Fprintf(os.Stderr, "error running %s: %v\n", name, err)
	return 1
}

type perftRun struct {
	label string
	fen   string
	depth string
}

func main() {
	// Usage: go run ./cmd/benchrun
	fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	if code := run("go", "test", "./bench", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime=1s"); code != 0 {
		os.Exit(code)
	}

	fmt.Println("\nPerft verification:")
	for _, v := range []perftRun{{"Initial", "", "4"}, {"Kiwipete", kiwipete, "3"}} {
		args := []string{"run", "./cmd/perft", "-verify", "-depth", v.depth}
		if v.fen != "" {
			args = append(args, "-fen", v.fen)
		}
		fmt.Printf("%s: ", v.label)
		if code := run("go", args...); code != 0 {
			os.Exit(code)
		}
	}

	fmt.Println("\nPerft Performance:")
	fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
	for _, p := range []perftRun{
		{"Initial", "", "3"},
		{"Initial", "", "4"},
		{"Initial", "", "5"},
		{"Kiwipete", kiwipete, "3"},
	} {
		args := []string{"run", "./cmd/perft", "-depth", p.depth, "-label", p.label}
		if p.fen != "" {
			args = append(args, "-fen", p.fen)
		}
		run("go", args...)
	}

	fmt.Println("\nSearch:")
	run("go", "run", "./cmd/searchbench", "-budget", "500ms")
	os.Exit(0)
}
