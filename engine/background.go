package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	mg "othello-engine/othellomg"
)

// BackgroundEvaluator keeps refining the score of one frozen position until
// told to stop. At most one run is active; a run that has been replaced or
// cancelled never publishes.
type BackgroundEvaluator struct {
	engine *Engine

	mu     sync.Mutex
	cancel context.CancelFunc
	active *evalRun

	current atomic.Pointer[evalRun]
	score   atomic.Int64
	depth   atomic.Int32
}

type evalRun struct {
	done chan struct{}
}

func (r *evalRun) finished() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

func NewBackgroundEvaluator(e *Engine) *BackgroundEvaluator {
	return &BackgroundEvaluator{engine: e}
}

// Start launches a run on a clone of b. It does nothing and returns false
// while a previous run is still alive, even one that has been asked to stop.
func (be *BackgroundEvaluator) Start(b *mg.Board) bool {
	be.mu.Lock()
	defer be.mu.Unlock()
	if be.active != nil && !be.active.finished() {
		return false
	}
	be.launchLocked(b)
	return true
}

// Restart cancels whatever is running and starts over on b.
func (be *BackgroundEvaluator) Restart(b *mg.Board) {
	be.mu.Lock()
	defer be.mu.Unlock()
	be.launchLocked(b)
}

func (be *BackgroundEvaluator) launchLocked(b *mg.Board) {
	if be.cancel != nil {
		be.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &evalRun{done: make(chan struct{})}
	be.cancel = cancel
	be.active = r
	be.current.Store(r)
	go be.run(ctx, r, b.Clone())
}

// Stop asks the current run to exit and returns at once.
func (be *BackgroundEvaluator) Stop() {
	be.mu.Lock()
	defer be.mu.Unlock()
	if be.cancel != nil {
		be.cancel()
	}
}

// Wait blocks until the current run, if any, has exited.
func (be *BackgroundEvaluator) Wait() {
	be.mu.Lock()
	r := be.active
	be.mu.Unlock()
	if r != nil {
		<-r.done
	}
}

func (be *BackgroundEvaluator) IsRunning() bool {
	be.mu.Lock()
	defer be.mu.Unlock()
	return be.active != nil && !be.active.finished()
}

// CurrentScore is the last published score, from the engine's perspective.
func (be *BackgroundEvaluator) CurrentScore() int { return int(be.score.Load()) }

// Depth is the depth behind CurrentScore, 0 before the first publish.
func (be *BackgroundEvaluator) Depth() int { return int(be.depth.Load()) }

func (be *BackgroundEvaluator) run(ctx context.Context, r *evalRun, frozen *mg.Board) {
	defer close(r.done)

	stable := be.engine.Config().StableDepth
	pause := be.engine.Config().EvalPause
	sign := 1
	if frozen.SideToMove() != be.engine.Perspective() {
		sign = -1
	}

	for depth := 1; ; depth++ {
		v, ok := be.engine.evaluate(ctx, frozen, depth)
		if !ok {
			return
		}
		exhaustive := depth >= frozen.Empties() || !frozen.HasLegalMoves()
		if (depth >= stable || exhaustive) && ctx.Err() == nil && be.current.Load() == r {
			be.score.Store(int64(sign * v))
			be.depth.Store(int32(depth))
			log.Debug().Int("depth", depth).Int("score", sign*v).Msg("eval-published")
		}
		if exhaustive {
			<-ctx.Done()
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(pause):
		}
	}
}

// evaluate runs one cancellable negamax on b under the engine lock and
// returns its value for the side to move. ok is false if ctx was cancelled.
func (e *Engine) evaluate(ctx context.Context, b *mg.Board, depth int) (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ctx.Err() != nil {
		return 0, false
	}
	s := e.newSearcher(ctx, newTimeHandler(0), e.TT)
	v := s.negamax(b, depth, -Infinity, Infinity)
	e.stats.record(s.stats)
	if s.aborted {
		return 0, false
	}
	e.stats.searches.WithLabelValues("background").Inc()
	return v, true
}
