package engine

import (
	"fmt"
	"time"

	"chesscore/board"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	MaxScore  int32 = 100000
	MateScore int32 = 99000
	Checkmate int32 = MateScore - 1000 // scores beyond this are forced mates
	DrawScore int32 = 0
)

// Engine searches positions for the best move. The attack and key tables are
// shared read-only; the transposition table belongs to this engine and
// persists between searches. An Engine is not safe for concurrent use.
type Engine struct {
	tables  *board.Tables
	zobrist *board.Zobrist
	TT      *TransTable
	opts    Options

	timeHandler  TimeHandler
	nodesChecked uint64
	maxPly       int
	killers      KillerStruct
	cutStats     CutStatistics
}

// Result describes a finished search.
type Result struct {
	Move    board.Move // NoMove when the position has no legal moves
	Score   int32      // from the side to move's point of view
	Depth   int        // last fully completed depth
	Nodes   uint64
	Elapsed time.Duration
	PV      []board.Move
	Stats   CutStatistics
}

// New builds an engine over the given tables. Zero Options fields take their
// defaults.
func New(tables *board.Tables, zobrist *board.Zobrist, opts Options) *Engine {
	opts = opts.withDefaults()
	return &Engine{
		tables:  tables,
		zobrist: zobrist,
		TT:      NewTransTable(opts.TTSize),
		opts:    opts,
		maxPly:  2 * opts.MaxDepth,
		killers: newKillerStruct(2 * opts.MaxDepth),
	}
}

// Options returns the engine's effective configuration.
func (e *Engine) Options() Options { return e.opts }

// FindBestMove searches p for at most budget and returns the best move found.
// It reports false when the side to move has no legal moves; the caller
// tells mate from stalemate with Tables.InCheck.
func (e *Engine) FindBestMove(p *board.Position, budget time.Duration) (board.Move, bool) {
	res := e.Search(p, budget)
	return res.Move, res.Move != board.NoMove
}

// Search runs iterative deepening on p until the budget runs out, the depth
// limit is reached or a forced mate is found. The move of the last completed
// depth is kept; a depth interrupted by the deadline is discarded.
func (e *Engine) Search(p *board.Position, budget time.Duration) Result {
	e.timeHandler.initTimemanagement(budget)
	e.TT.NewSearch()
	e.nodesChecked = 0
	e.killers.ClearKillers()
	e.cutStats = CutStatistics{}

	root := *p
	moves := e.tables.LegalMoves(&root)
	if len(moves) == 0 {
		score := DrawScore
		if e.tables.InCheck(&root) {
			score = -MateScore
		}
		return Result{Move: board.NoMove, Score: score, Elapsed: e.timeHandler.Elapsed()}
	}

	// Fallback when not even depth 1 completes in time
	res := Result{Move: OrderMoves(&root, moves, board.NoMove)[0]}

	for depth := 1; depth <= e.opts.MaxDepth; depth++ {
		if depth > 1 && e.timeHandler.TimeStatus() {
			break
		}
		ordered := OrderMoves(&root, moves, res.Move)
		bestMove, bestScore, completed := e.rootsearch(&root, ordered, depth)
		if !completed {
			break
		}
		res.Move, res.Score, res.Depth = bestMove, bestScore, depth
		res.PV = e.principalVariation(&root, bestMove, depth)
		e.printInfo(res)

		if bestScore > Checkmate || bestScore < -Checkmate {
			break
		}
	}

	res.Nodes = e.nodesChecked
	res.Elapsed = e.timeHandler.Elapsed()
	res.Stats = e.cutStats
	if e.opts.PrintCutStats && e.opts.Info != nil {
		dumpCutStats(e.opts.Info, e.cutStats)
	}
	return res
}

// rootsearch searches every root move to depth and returns the best one. It
// reports false when the deadline interrupted the iteration.
func (e *Engine) rootsearch(root *board.Position, moves []board.Move, depth int) (board.Move, int32, bool) {
	alpha, beta := -MaxScore, MaxScore
	bestScore := -MaxScore
	bestMove := board.NoMove

	for _, m := range moves {
		child := root.Apply(m)
		score := -e.alphaBeta(&child, -beta, -alpha, depth-1, 1)
		if e.timeHandler.stopSearch {
			return board.NoMove, 0, false
		}
		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}
	}

	e.TT.Store(e.zobrist.Hash(root), int8(depth), ExactFlag, scoreToTT(bestScore, 0), bestMove)
	return bestMove, bestScore, true
}

// alphaBeta is a fail-hard negamax search returning a score from the side to
// move's point of view, within [alpha, beta].
func (e *Engine) alphaBeta(p *board.Position, alpha, beta int32, depth, ply int) int32 {
	if e.timeHandler.TimeStatus() {
		e.cutStats.DeadlineAborts++
		return 0
	}
	e.nodesChecked++

	if ply >= e.maxPly {
		return evaluateRelative(p)
	}

	hash := e.zobrist.Hash(p)
	hashMove := board.NoMove
	if entry, ok := e.TT.Probe(hash); ok {
		if usable, score := useEntry(entry, int8(depth), alpha, beta, ply); usable {
			e.cutStats.TTCutoffs++
			return score
		}
		hashMove = entry.Move
	}

	if depth <= 0 {
		return e.quiescence(p, alpha, beta, e.opts.MaxQuiescenceDepth, ply)
	}

	moves := e.tables.LegalMoves(p)
	if len(moves) == 0 {
		if e.tables.InCheck(p) {
			// shallower mates score higher
			return -MateScore + int32(ply)
		}
		return DrawScore
	}

	alphaOrig := alpha
	bestMove := board.NoMove
	movesList := scoreMovesList(p, moves, hashMove, &e.killers, ply)
	for i := range movesList.moves {
		orderNextMove(i, &movesList)
		m := movesList.moves[i].move

		child := p.Apply(m)
		score := -e.alphaBeta(&child, -beta, -alpha, depth-1, ply+1)
		if e.timeHandler.stopSearch {
			return 0
		}

		if score >= beta {
			e.cutStats.BetaCutoffs++
			if !p.IsCapture(m) {
				e.killers.InsertKiller(m, ply)
			}
			e.TT.Store(hash, int8(depth), BetaFlag, scoreToTT(beta, ply), m)
			return beta
		}
		if score > alpha {
			alpha = score
			bestMove = m
		}
	}

	if alpha > alphaOrig {
		e.TT.Store(hash, int8(depth), ExactFlag, scoreToTT(alpha, ply), bestMove)
	} else {
		e.TT.Store(hash, int8(depth), AlphaFlag, scoreToTT(alpha, ply), hashMove)
	}
	return alpha
}

// quiescence searches captures only until the position is quiet or qdepth
// runs out. The side to move may always decline to capture (stand pat).
func (e *Engine) quiescence(p *board.Position, alpha, beta int32, qdepth, ply int) int32 {
	if e.timeHandler.TimeStatus() {
		return 0
	}
	e.nodesChecked++

	moves := e.tables.LegalMoves(p)
	if len(moves) == 0 {
		if e.tables.InCheck(p) {
			return -MateScore + int32(ply)
		}
		return DrawScore
	}

	standPat := evaluateRelative(p)
	if standPat >= beta {
		e.cutStats.QStandPatCutoffs++
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}
	if qdepth <= 0 || ply >= e.maxPly {
		return alpha
	}

	captures := moves[:0]
	for _, m := range moves {
		if p.IsCapture(m) {
			captures = append(captures, m)
		}
	}

	movesList := scoreMovesList(p, captures, board.NoMove, nil, ply)
	for i := range movesList.moves {
		orderNextMove(i, &movesList)
		child := p.Apply(movesList.moves[i].move)
		score := -e.quiescence(&child, -beta, -alpha, qdepth-1, ply+1)
		if e.timeHandler.stopSearch {
			return 0
		}
		if score >= beta {
			e.cutStats.QBetaCutoffs++
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

func (e *Engine) printInfo(res Result) {
	if e.opts.Info == nil {
		return
	}
	elapsed := e.timeHandler.Elapsed()
	ms := elapsed.Milliseconds()
	if ms == 0 {
		ms = 1
	}
	nps := e.nodesChecked * 1000 / uint64(ms)
	fmt.Fprintln(e.opts.Info,
		"info depth", res.Depth,
		"score", getMateOrCPScore(res.Score),
		"nodes", e.nodesChecked,
		"time", ms,
		"nps", nps,
		"hashfull", e.TT.Hashfull(),
		"pv"+getPVLineString(res.PV),
	)
}
