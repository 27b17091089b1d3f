package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	mg "othello-engine/othellomg"
)

var errSearchAborted = errors.New("search aborted")

// SearchResult describes the move a root search settled on. Score is from the
// point of view of the side to move at the root.
type SearchResult struct {
	Move  mg.Move
	Score int
	Depth int
	Stats CutStatistics
}

// GetBestMove picks a move for the side to move within the configured time
// limit. ok is false only when the side to move has no legal move.
func (e *Engine) GetBestMove(b *mg.Board) (mg.Move, bool) {
	res, ok := e.BestMove(context.Background(), b)
	return res.Move, ok
}

/*
BestMove runs the time-boxed iterative deepening search.

  - A depth-1 pick by OrderingScore is always available, however short the
    budget.
  - From depth 2 on, every root move is searched with a full window. A depth
    is adopted only if all of its moves finished before the deadline.
  - Deepening stops at MaxDepth, or once a depth reaches every empty square.

A deadline on ctx replaces the configured time limit.
*/
func (e *Engine) BestMove(ctx context.Context, b *mg.Board) (SearchResult, bool) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return SearchResult{Move: mg.NoMove}, false
	}

	// Waiting for the engine lock is charged to the budget.
	start := time.Now()
	e.mu.Lock()
	defer e.mu.Unlock()

	var clock *TimeHandler
	if dl, ok := ctx.Deadline(); ok {
		// an expired deadline must not read as "no deadline"
		clock = newTimeHandler(max(time.Until(dl), time.Nanosecond))
	} else {
		clock = newTimeHandlerSince(start, e.cfg.TimeLimit)
	}
	result := e.orderingPick(b, moves)

	for depth := 2; depth <= e.cfg.MaxDepth; depth++ {
		if clock.TimeStatus() || ctx.Err() != nil {
			break
		}
		scores, stats, complete := e.searchRoot(ctx, clock, b, moves, depth)
		result.Stats.add(stats)
		if !complete || clock.TimeStatus() {
			log.Debug().Int("depth", depth).Dur("elapsed", clock.Elapsed()).Msg("depth-abandoned")
			break
		}

		bestIdx := 0
		for i := range scores {
			if scores[i] > scores[bestIdx] {
				bestIdx = i
			}
		}
		log.Debug().
			Int("depth", depth).
			Str("move", moves[bestIdx].String()).
			Int("score", scores[bestIdx]).
			Int("swing", abs(scores[bestIdx]-result.Score)).
			Uint64("nodes", result.Stats.Nodes).
			Dur("elapsed", clock.Elapsed()).
			Msg("depth-complete")
		result.Move = moves[bestIdx]
		result.Score = scores[bestIdx]
		result.Depth = depth

		if depth >= b.Empties() {
			break
		}
	}

	e.stats.finish("root", result.Depth, clock.Elapsed())
	return result, true
}

// SearchDepth searches every root move to exactly depth plies, without a
// deadline. ok is false when the side to move has no legal move.
func (e *Engine) SearchDepth(b *mg.Board, depth int) (SearchResult, bool) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return SearchResult{Move: mg.NoMove}, false
	}
	depth = Clamp(depth, 1, MaxSearchDepth)

	e.mu.Lock()
	defer e.mu.Unlock()

	clock := newTimeHandler(0)
	scores, stats, _ := e.searchRoot(context.Background(), clock, b, moves, depth)
	bestIdx := 0
	for i := range scores {
		if scores[i] > scores[bestIdx] {
			bestIdx = i
		}
	}
	e.stats.finish("fixed", depth, clock.Elapsed())
	return SearchResult{Move: moves[bestIdx], Score: scores[bestIdx], Depth: depth, Stats: stats}, true
}

// orderingPick is the depth-1 fallback: the move with the best ordering score.
func (e *Engine) orderingPick(b *mg.Board, moves []mg.Move) SearchResult {
	res := SearchResult{Move: moves[0], Score: e.eval.OrderingScore(b, moves[0]), Depth: 1}
	for _, m := range moves[1:] {
		if s := e.eval.OrderingScore(b, m); s > res.Score {
			res.Move, res.Score = m, s
		}
	}
	return res
}

// searchRoot scores each root move at depth-1 below it. complete is false if
// the deadline or ctx cut any of them short; the scores are then unusable.
func (e *Engine) searchRoot(ctx context.Context, clock *TimeHandler, b *mg.Board, moves []mg.Move, depth int) (scores []int, stats CutStatistics, complete bool) {
	if len(moves) > 1 && e.cfg.Workers > 1 && clock.Remaining() > e.cfg.MinParallelSlack {
		return e.searchRootParallel(ctx, clock, b, moves, depth)
	}

	scores = make([]int, len(moves))
	for i, m := range moves {
		if clock.TimeStatus() || ctx.Err() != nil {
			return scores, stats, false
		}
		s := e.newSearcher(ctx, clock, e.TT)
		child := *b
		child.Play(m)
		v := s.negamax(&child, depth-1, -Infinity, Infinity)
		stats.add(s.stats)
		e.stats.record(s.stats)
		if s.aborted {
			return scores, stats, false
		}
		scores[i] = -v
	}
	return scores, stats, true
}

/*
Each root move gets its own goroutine, searcher and overlay table. The engine
table is only read while the group runs; the overlays are merged back in move
order once every move of the depth has finished.
*/
func (e *Engine) searchRootParallel(ctx context.Context, clock *TimeHandler, b *mg.Board, moves []mg.Move, depth int) (scores []int, stats CutStatistics, complete bool) {
	scores = make([]int, len(moves))
	overlays := make([]*overlayTable, len(moves))
	var statsMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i, m := range moves {
		i, m := i, m
		g.Go(func() error {
			if clock.TimeStatus() || gctx.Err() != nil {
				return errSearchAborted
			}
			overlays[i] = newOverlayTable(e.TT)
			s := e.newSearcher(gctx, clock, overlays[i])
			child := *b
			child.Play(m)
			v := s.negamax(&child, depth-1, -Infinity, Infinity)

			statsMu.Lock()
			stats.add(s.stats)
			statsMu.Unlock()
			e.stats.record(s.stats)

			if s.aborted {
				return errSearchAborted
			}
			scores[i] = -v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return scores, stats, false
	}

	for _, ov := range overlays {
		ov.mergeInto(e.TT)
	}
	return scores, stats, true
}
