package engine

import "chesscore/board"

type move struct {
	move  board.Move
	score int32
}
type moveList struct {
	moves []move
}

/*
Move ordering offsets:
  - The hash move (best move stored for this position, or the previous
    iteration's best root move) goes first.
  - Promotions come before any capture.
  - Captures are ranked MVV-LVA: the victim's value dominates, the attacker's
    value divided by 100 breaks ties toward the cheaper attacker.
  - Killers come next, then the remaining quiet moves.
*/
const (
	hashMoveOffset  int32 = 1000000
	promotionOffset int32 = 100000
	captureOffset   int32 = 10000
)

// ScoreMove returns the ordering score of m in p, without the hash move bonus.
func ScoreMove(p *board.Position, m board.Move) int32 {
	var score int32
	if victim := p.CapturedType(m); victim != board.PieceTypeNone {
		attacker, _ := p.PieceAt(m.From())
		score += captureOffset + PieceValue[victim] - PieceValue[attacker.Type]/100
	}
	if m.IsPromotion() {
		score += promotionOffset
	}
	return score
}

// scoreMovesList scores moves for selection ordering. Quiet moves that were
// killers at this ply rank above other quiet moves; killers may be nil.
func scoreMovesList(p *board.Position, moves []board.Move, hashMove board.Move, killers *KillerStruct, ply int) (movesList moveList) {
	movesList.moves = make([]move, len(moves))
	for i, m := range moves {
		movesList.moves[i].move = m
		if m == hashMove {
			movesList.moves[i].score = hashMoveOffset
			continue
		}
		score := ScoreMove(p, m)
		if score == 0 && killers != nil {
			score = killers.killerBonus(m, ply)
		}
		movesList.moves[i].score = score
	}
	return movesList
}

// Ordering the moves one at a time, at index given
func orderNextMove(currIndex int, moves *moveList) {
	bestIndex := currIndex
	bestScore := moves.moves[bestIndex].score

	for index := bestIndex + 1; index < len(moves.moves); index++ {
		if moves.moves[index].score > bestScore {
			bestIndex = index
			bestScore = moves.moves[index].score
		}
	}

	moves.moves[currIndex], moves.moves[bestIndex] = moves.moves[bestIndex], moves.moves[currIndex]
}

// OrderMoves returns the moves sorted by descending ordering score, hashMove
// first when present. The input slice is not modified.
func OrderMoves(p *board.Position, moves []board.Move, hashMove board.Move) []board.Move {
	list := scoreMovesList(p, moves, hashMove, nil, 0)
	ordered := make([]board.Move, len(moves))
	for i := range list.moves {
		orderNextMove(i, &list)
		ordered[i] = list.moves[i].move
	}
	return ordered
}
