package engine

import "time"

// TimeHandler tracks the wall-clock deadline of one search.
type TimeHandler struct {
	start       time.Time
	timeForMove time.Time
	stopSearch  bool
}

func (th *TimeHandler) initTimemanagement(budget time.Duration) {
	th.start = time.Now()
	th.timeForMove = th.start.Add(budget)
	th.stopSearch = false
}

// TimeStatus reports whether the deadline has passed. Once it has, it keeps
// reporting true for the rest of the search.
func (th *TimeHandler) TimeStatus() bool {
	if th.stopSearch {
		return true
	}
	if !time.Now().Before(th.timeForMove) {
		th.stopSearch = true
	}
	return th.stopSearch
}

// Elapsed returns the time since the search started.
func (th *TimeHandler) Elapsed() time.Duration { return time.Since(th.start) }

// AllocateTime turns a game clock into a budget for one move: a share of the
// remaining time based on an estimate of the moves left, plus most of the
// increment, clamped so a move never uses more than 70% of the clock.
func AllocateTime(remaining, increment time.Duration, fullmove int) time.Duration {
	// Engine-side safety knobs
	const overhead = 30 * time.Millisecond // reserve for IO jitter
	const minMove = 5 * time.Millisecond
	const maxFrac = 0.7
	const panicThresh = time.Second
	const panicFrac = 0.9

	movesLeft := estimateMovesRemaining(fullmove)

	var moveTime time.Duration
	switch {
	case increment > 0 && remaining < panicThresh:
		// Panic: live off the increment
		moveTime = time.Duration(float64(increment) * panicFrac)
	case increment > 0:
		moveTime = remaining/time.Duration(movesLeft) + increment
	default:
		moveTime = remaining / 40
	}

	moveTime = Min(moveTime, time.Duration(float64(remaining)*maxFrac))
	moveTime = Min(moveTime, remaining-overhead)
	return Max(moveTime, minMove)
}

// estimateMovesRemaining falls from 45 in the opening to 20 late in the game.
func estimateMovesRemaining(fullmove int) int {
	return Clamp(45-fullmove/2, 20, 45)
}
