package engine

import (
	"fmt"

	"chesscore/board"
)

// principalVariation follows the best moves stored in the transposition table
// from the root, starting with first, for at most depth moves. A move missing
// from the current legal list ends the line.
func (e *Engine) principalVariation(root *board.Position, first board.Move, depth int) []board.Move {
	pv := []board.Move{first}
	pos := root.Apply(first)
	for len(pv) < depth {
		entry, ok := e.TT.Probe(e.zobrist.Hash(&pos))
		if !ok || entry.Move == board.NoMove {
			break
		}
		m, err := e.tables.ResolveMove(&pos, entry.Move)
		if err != nil {
			break
		}
		pv = append(pv, m)
		pos = pos.Apply(m)
	}
	return pv
}

func getPVLineString(pv []board.Move) (theMoves string) {
	for _, move := range pv {
		theMoves += " "
		theMoves += move.String()
	}
	return theMoves
}

// getMateOrCPScore renders a score as "cp N" or, for forced mates, "mate N"
// in moves (negative when the side to move is getting mated).
func getMateOrCPScore(score int32) string {
	if score > Checkmate {
		pliesToMate := Max(MateScore-score, 0)
		return fmt.Sprintf("mate %d", (pliesToMate+1)/2)
	} else if score < -Checkmate {
		pliesToMate := Max(MateScore+score, 0)
		return fmt.Sprintf("mate %d", -(pliesToMate+1)/2)
	}
	return fmt.Sprintf("cp %d", score)
}
