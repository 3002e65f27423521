package engine

import (
	"fmt"
	"io"
)

// CutStatistics collects counts for each cutoff mechanism of one search.
type CutStatistics struct {
	TTCutoffs        uint64
	BetaCutoffs      uint64
	QStandPatCutoffs uint64
	QBetaCutoffs     uint64
	DeadlineAborts   uint64
}

func dumpCutStats(w io.Writer, s CutStatistics) {
	fmt.Fprintln(w, "info string Cut statistics:")
	fmt.Fprintf(w, "info string   TT cutoffs: %d\n", s.TTCutoffs)
	fmt.Fprintf(w, "info string   Beta cutoffs: %d\n", s.BetaCutoffs)
	fmt.Fprintf(w, "info string   QStandPat cutoffs: %d\n", s.QStandPatCutoffs)
	fmt.Fprintf(w, "info string   QBeta cutoffs: %d\n", s.QBetaCutoffs)
	fmt.Fprintf(w, "info string   Deadline aborts: %d\n", s.DeadlineAborts)
}
