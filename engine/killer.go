package engine

import "chesscore/board"

// killerOffset ranks the two killers of a ply above other quiet moves but
// below every capture.
const killerOffset int32 = 2000

// KillerStruct remembers, per ply, the last two quiet moves that caused a
// beta cutoff.
type KillerStruct struct {
	KillerMoves [][2]board.Move
}

func newKillerStruct(maxPly int) KillerStruct {
	return KillerStruct{KillerMoves: make([][2]board.Move, maxPly+1)}
}

func (k *KillerStruct) InsertKiller(move board.Move, ply int) {
	if ply >= len(k.KillerMoves) {
		return
	}
	if move != k.KillerMoves[ply][0] {
		k.KillerMoves[ply][1] = k.KillerMoves[ply][0]
		k.KillerMoves[ply][0] = move
	}
}

// killerBonus returns the ordering bonus of move at ply.
func (k *KillerStruct) killerBonus(move board.Move, ply int) int32 {
	if ply >= len(k.KillerMoves) {
		return 0
	}
	switch move {
	case k.KillerMoves[ply][0]:
		return killerOffset + 200
	case k.KillerMoves[ply][1]:
		return killerOffset
	}
	return 0
}

// Clear the killer moves table.
func (k *KillerStruct) ClearKillers() {
	for ply := range k.KillerMoves {
		k.KillerMoves[ply] = [2]board.Move{}
	}
}
