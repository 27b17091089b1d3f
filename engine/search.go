package engine

import (
	"context"
	"sync"
	"time"

	mg "othello-engine/othellomg"
)

// Larger than any static evaluation.
const Infinity = 1_000_000

// Engine searches positions on behalf of one colour. Root searches and
// background evaluation iterations take turns on the engine lock, which also
// guards the transposition table.
type Engine struct {
	mu    sync.Mutex
	cfg   Config
	eval  Evaluator
	TT    *TransTable
	stats *SearchStats
}

type Option func(*Engine)

// WithConfig replaces every setting, strength and time limit included.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

func WithWorkers(n int) Option {
	return func(e *Engine) { e.cfg.Workers = n }
}

func WithMaxDepth(depth int) Option {
	return func(e *Engine) { e.cfg.MaxDepth = depth }
}

func WithTTSize(mb int) Option {
	return func(e *Engine) { e.cfg.TTSizeMB = mb }
}

func WithStats(stats *SearchStats) Option {
	return func(e *Engine) { e.stats = stats }
}

// NewEngine builds an engine playing perspective. Strength is clamped to 1..4.
func NewEngine(perspective mg.Cell, strength int, timeLimit time.Duration, opts ...Option) *Engine {
	e := &Engine{cfg: DefaultConfig()}
	e.cfg.Strength = strength
	e.cfg.TimeLimit = timeLimit
	for _, opt := range opts {
		opt(e)
	}
	e.cfg = e.cfg.Normalize()
	e.eval = NewEvaluator(perspective, e.cfg.Strength)
	e.TT = NewTransTable(e.cfg.TTSizeMB)
	if e.stats == nil {
		e.stats = NewSearchStats(nil)
	}
	return e
}

func (e *Engine) Perspective() mg.Cell { return e.eval.Perspective }

func (e *Engine) Evaluator() Evaluator {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.eval
}

func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// SetStrength changes the evaluation tier for later searches.
func (e *Engine) SetStrength(strength int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg.Strength = Clamp(strength, MinStrength, MaxStrength)
	e.eval.Strength = e.cfg.Strength
	// Scores cached under the old evaluator no longer apply.
	e.TT.Clear()
}

func (e *Engine) SetTimeLimit(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if d > 0 {
		e.cfg.TimeLimit = d
	}
}

// ClearTable empties the transposition table, e.g. between games.
func (e *Engine) ClearTable() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.TT.Clear()
}

// searcher is the per-goroutine state of one negamax search.
type searcher struct {
	ctx     context.Context
	clock   *TimeHandler
	tt      table
	eval    Evaluator
	stats   CutStatistics
	aborted bool
}

func (e *Engine) newSearcher(ctx context.Context, clock *TimeHandler, tt table) *searcher {
	return &searcher{ctx: ctx, clock: clock, tt: tt, eval: e.eval}
}

// poll is called every 1024 nodes rather than on every node; an abort may
// therefore overrun by up to that many nodes.
func (s *searcher) poll() {
	if s.ctx.Err() != nil || s.clock.TimeStatus() {
		s.aborted = true
	}
}

func (s *searcher) color(side mg.Cell) int {
	if side == s.eval.Perspective {
		return 1
	}
	return -1
}

/*
negamax returns the value of b for the side to move. Once the search is
aborted every call returns 0 immediately; callers must discard that value and
nothing is written to the table on the way out.
*/
func (s *searcher) negamax(b *mg.Board, depth int, alpha, beta int) int {
	if s.aborted {
		return 0
	}
	s.stats.Nodes++
	if s.stats.Nodes&1023 == 0 {
		s.poll()
		if s.aborted {
			return 0
		}
	}

	side := b.SideToMove()
	posHash := b.Hash()

	/*
		TRANSPOSITION TABLE LOOKUP
	*/
	ttEntry, ttHit := s.tt.Probe(posHash, side)
	if ttHit {
		if usable, ttScore := useEntry(ttEntry, depth, alpha, beta); usable {
			s.stats.TTCutoffs++
			return ttScore
		}
	}

	moves := b.LegalMoves()
	if depth <= 0 || len(moves) == 0 {
		return s.color(side) * s.eval.StaticEval(b)
	}

	pvMove := mg.NoMove
	if ttHit && s.eval.Strength >= 4 {
		pvMove = ttEntry.Move
	}
	list := s.eval.scoreMovesList(b, moves, pvMove)

	alphaOrig := alpha
	bestScore := -Infinity
	bestMove := mg.NoMove
	for i := range list.moves {
		orderNextMove(i, &list)
		m := list.moves[i].move

		child := *b
		child.Play(m)
		score := -s.negamax(&child, depth-1, -beta, -alpha)
		if s.aborted {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			s.stats.BetaCutoffs++
			break
		}
	}

	flag := ExactFlag
	if bestScore <= alphaOrig {
		flag = UpperFlag
	} else if bestScore >= beta {
		flag = LowerFlag
	}
	s.tt.Store(posHash, side, depth, bestMove, bestScore, flag)
	return bestScore
}
