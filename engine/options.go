package engine

import "io"

// Options configures an Engine.
type Options struct {
	// Transposition table budget in MB
	TTSize int

	// Iterative deepening stops after this depth; the ply cap is twice this.
	MaxDepth int

	// Quiescence never extends more than this many captures.
	MaxQuiescenceDepth int

	// Info receives one "info depth ..." line per completed iteration. Nil
	// keeps the search silent.
	Info io.Writer

	// PrintCutStats dumps the cutoff counters to Info after each search.
	PrintCutStats bool
}

const (
	DefaultMaxDepth           = 64
	DefaultMaxQuiescenceDepth = 4
)

// DefaultOptions returns the settings used when an Options field is zero.
func DefaultOptions() Options {
	return Options{
		TTSize:             DefaultTTSize,
		MaxDepth:           DefaultMaxDepth,
		MaxQuiescenceDepth: DefaultMaxQuiescenceDepth,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.TTSize <= 0 {
		o.TTSize = d.TTSize
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = d.MaxDepth
	}
	if o.MaxQuiescenceDepth <= 0 {
		o.MaxQuiescenceDepth = d.MaxQuiescenceDepth
	}
	return o
}
