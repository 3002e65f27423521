package board

// PerftStats tallies the leaf moves of a perft run by kind.
type PerftStats struct {
	Nodes      uint64
	Captures   uint64
	EnPassant  uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
	Checkmates uint64
}

// Add accumulates o into s.
func (s *PerftStats) Add(o PerftStats) {
	s.Nodes += o.Nodes
	s.Captures += o.Captures
	s.EnPassant += o.EnPassant
	s.Castles += o.Castles
	s.Promotions += o.Promotions
	s.Checks += o.Checks
	s.Checkmates += o.Checkmates
}

// Perft counts leaf nodes (move sequences) from the position for a given depth.
// Per-depth move buffers are reused to avoid allocations.
func (t *Tables) Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := perftCtx{bufs: make([][]Move, depth+1)}
	return t.perftRec(p, depth, &pc)
}

type perftCtx struct {
	bufs [][]Move
}

func (pc *perftCtx) bufFor(depth int) []Move {
	buf := pc.bufs[depth]
	if buf == nil {
		buf = make([]Move, 0, 128)
		pc.bufs[depth] = buf
	}
	return buf[:0]
}

func (t *Tables) perftRec(p *Position, depth int, pc *perftCtx) uint64 {
	moves := t.LegalMovesInto(p, pc.bufFor(depth))
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		next := p.Apply(m)
		nodes += t.perftRec(&next, depth-1, pc)
	}
	return nodes
}

// PerftDetailed counts leaf nodes like Perft and classifies the final move
// of every sequence.
func (t *Tables) PerftDetailed(p *Position, depth int) PerftStats {
	var stats PerftStats
	if depth <= 0 {
		stats.Nodes = 1
		return stats
	}
	for _, m := range t.LegalMoves(p) {
		next := p.Apply(m)
		if depth > 1 {
			stats.Add(t.PerftDetailed(&next, depth-1))
			continue
		}
		stats.Nodes++
		if p.IsCapture(m) {
			stats.Captures++
			if _, ok := p.PieceAt(m.To()); !ok {
				stats.EnPassant++
			}
		}
		if m.IsCastle() {
			stats.Castles++
		}
		if m.IsPromotion() {
			stats.Promotions++
		}
		if t.InCheck(&next) {
			stats.Checks++
			if !t.HasLegalMoves(&next) {
				stats.Checkmates++
			}
		}
	}
	return stats
}

// PerftDivide returns a map from each legal root move to the number of leaf nodes
// reachable from that move at the given depth. Useful for debugging.
func (t *Tables) PerftDivide(p *Position, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range t.LegalMoves(p) {
		next := p.Apply(m)
		result[m] = t.Perft(&next, depth-1)
	}
	return result
}
