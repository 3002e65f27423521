package engine

import (
	"unsafe"

	"chesscore/board"
)

// Bound kinds
const (
	AlphaFlag int8 = iota // upper bound: no move raised alpha
	BetaFlag              // lower bound: a move failed high
	ExactFlag
)

// DefaultTTSize is the table budget in MB.
const DefaultTTSize = 64

type TTEntry struct {
	Hash     uint64
	Score    int32
	Move     board.Move
	Depth    int8
	Flag     int8
	Age      uint8
	occupied bool
}

// TransTable is a fixed array of single-entry buckets indexed by hash modulo
// its length. It is owned by one search at a time and is not safe for
// concurrent use.
type TransTable struct {
	entries []TTEntry
	age     uint8
}

// NewTransTable sizes the table to fit sizeMB megabytes of entries.
func NewTransTable(sizeMB int) *TransTable {
	entrySize := uint64(unsafe.Sizeof(TTEntry{}))
	totalBytes := uint64(sizeMB) * 1024 * 1024
	count := totalBytes / entrySize
	if count == 0 {
		count = 1
	}
	return &TransTable{entries: make([]TTEntry, count)}
}

// Len returns the number of buckets.
func (TT *TransTable) Len() int { return len(TT.entries) }

// Age returns the current search generation.
func (TT *TransTable) Age() uint8 { return TT.age }

// NewSearch starts a new generation, letting the coming search displace
// entries of earlier searches even at equal or greater depth.
func (TT *TransTable) NewSearch() { TT.age++ }

// Clear empties every bucket and resets the generation.
func (TT *TransTable) Clear() {
	for i := range TT.entries {
		TT.entries[i] = TTEntry{}
	}
	TT.age = 0
}

func (TT *TransTable) index(hash uint64) uint64 { return hash % uint64(len(TT.entries)) }

// Store writes the entry into its bucket when the bucket is empty, the new
// depth is at least the stored depth, or the stored entry belongs to an older
// search.
func (TT *TransTable) Store(hash uint64, depth int8, flag int8, score int32, move board.Move) {
	entry := &TT.entries[TT.index(hash)]
	if entry.occupied && depth < entry.Depth && entry.Age == TT.age {
		return
	}
	*entry = TTEntry{
		Hash:     hash,
		Score:    score,
		Move:     move,
		Depth:    depth,
		Flag:     flag,
		Age:      TT.age,
		occupied: true,
	}
}

// Probe returns the entry stored for exactly this hash. Depth and bound checks
// are left to the caller.
func (TT *TransTable) Probe(hash uint64) (TTEntry, bool) {
	entry := TT.entries[TT.index(hash)]
	if !entry.occupied || entry.Hash != hash {
		return TTEntry{}, false
	}
	return entry, true
}

// Hashfull reports the per-mille share of the first thousand buckets written
// during the current search.
func (TT *TransTable) Hashfull() int {
	n := Min(len(TT.entries), 1000)
	used := 0
	for i := 0; i < n; i++ {
		if TT.entries[i].occupied && TT.entries[i].Age == TT.age {
			used++
		}
	}
	return used * 1000 / n
}

// scoreToTT converts a mate score relative to the current node into one
// relative to the root of the stored subtree.
func scoreToTT(score int32, ply int) int32 {
	if score > Checkmate {
		return score + int32(ply)
	}
	if score < -Checkmate {
		return score - int32(ply)
	}
	return score
}

func scoreFromTT(score int32, ply int) int32 {
	if score > Checkmate {
		return score - int32(ply)
	}
	if score < -Checkmate {
		return score + int32(ply)
	}
	return score
}

// useEntry applies the depth and bound rules to a probed entry.
func useEntry(entry TTEntry, depth int8, alpha, beta int32, ply int) (usable bool, score int32) {
	if entry.Depth < depth {
		return false, 0
	}
	norm := scoreFromTT(entry.Score, ply)
	switch entry.Flag {
	case ExactFlag:
		return true, norm
	case AlphaFlag:
		if norm <= alpha {
			return true, alpha
		}
	case BetaFlag:
		if norm >= beta {
			return true, beta
		}
	}
	return false, 0
}
