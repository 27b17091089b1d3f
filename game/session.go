// Package game runs one human-versus-engine game: turn order, passes, the
// game-over check, hints and the live evaluation bar.
package game

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"othello-engine/engine"
	mg "othello-engine/othellomg"
)

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrGameOver     = errors.New("game is over")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrBoardChanged = errors.New("board changed during search")
)

// Hints always use this tier, whatever the opponent's strength.
const hintStrength = 3

// Session is safe for concurrent use. Engine searches run without the session
// lock held, so Board and EvalBar stay responsive while the engine thinks.
type Session struct {
	mu      sync.Mutex
	id      uuid.UUID
	cfg     engine.Config
	human   mg.Cell
	board   *mg.Board
	history []string
	passes  []mg.Cell
	over    bool
	logger  zerolog.Logger

	ai  *engine.Engine
	bar *engine.BackgroundEvaluator
}

// NewSession starts a game from the initial position. human is the colour
// the caller plays; the engine takes the other one.
func NewSession(cfg engine.Config, human mg.Cell, opts ...engine.Option) *Session {
	if human != mg.Black && human != mg.White {
		human = mg.Black
	}
	cfg = cfg.Normalize()
	opts = append([]engine.Option{engine.WithConfig(cfg)}, opts...)
	s := &Session{
		cfg:   cfg,
		human: human,
		ai:    engine.NewEngine(human.Opponent(), cfg.Strength, cfg.TimeLimit, opts...),
	}
	s.bar = engine.NewBackgroundEvaluator(engine.NewEngine(human.Opponent(), cfg.Strength, cfg.TimeLimit, opts...))
	s.reset()
	return s
}

func (s *Session) reset() {
	s.id = uuid.New()
	s.board = mg.NewBoard()
	s.history = []string{s.board.Position()}
	s.passes = nil
	s.over = false
	s.logger = log.With().Str("session", s.id.String()).Logger()
	s.logger.Info().Str("human", s.human.String()).Int("strength", s.cfg.Strength).Msg("game-started")
}

func (s *Session) ID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

func (s *Session) HumanColor() mg.Cell { return s.human }

func (s *Session) EngineColor() mg.Cell { return s.human.Opponent() }

// Board returns a copy of the current position.
func (s *Session) Board() *mg.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Clone()
}

func (s *Session) Turn() mg.Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.SideToMove()
}

func (s *Session) Over() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.over
}

// Winner reports the winning colour once the game is over. Empty means a draw.
func (s *Session) Winner() (mg.Cell, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.over {
		return mg.Empty, false
	}
	return winnerOf(s.board), true
}

func winnerOf(b *mg.Board) mg.Cell {
	black, white := b.PieceCounts()
	switch {
	case black > white:
		return mg.Black
	case white > black:
		return mg.White
	default:
		return mg.Empty
	}
}

// Outcome is a short result line, empty while the game goes on.
func (s *Session) Outcome() string {
	w, over := s.Winner()
	if !over {
		return ""
	}
	if w == mg.Empty {
		return "Draw"
	}
	return fmt.Sprintf("%s wins", w)
}

// History lists the position after every move, starting with the initial one.
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...)
}

// Passes lists, in order, the colours that had to pass.
func (s *Session) Passes() []mg.Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]mg.Cell(nil), s.passes...)
}

// Play makes the human's move.
func (s *Session) Play(m mg.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.over {
		return ErrGameOver
	}
	if s.board.SideToMove() != s.human {
		return ErrNotYourTurn
	}
	if err := s.applyLocked(m); err != nil {
		return err
	}
	s.afterMoveLocked()
	return nil
}

// AIMove lets the engine move for its colour and returns the move played.
func (s *Session) AIMove(ctx context.Context) (mg.Move, error) {
	s.mu.Lock()
	if s.over {
		s.mu.Unlock()
		return mg.NoMove, ErrGameOver
	}
	if s.board.SideToMove() != s.EngineColor() {
		s.mu.Unlock()
		return mg.NoMove, ErrNotYourTurn
	}
	s.bar.Stop()
	snapshot := s.board.Clone()
	s.mu.Unlock()

	res, ok := s.ai.BestMove(ctx, snapshot)
	if !ok {
		// checkGameEnd passes for a side without moves, so this is unreachable
		// unless the board was edited behind our back.
		return mg.NoMove, fmt.Errorf("engine found no move in %s: %w", snapshot.Position(), ErrIllegalMove)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board.Position() != snapshot.Position() {
		return mg.NoMove, ErrBoardChanged
	}
	if err := s.applyLocked(res.Move); err != nil {
		return mg.NoMove, err
	}
	s.logger.Debug().Str("move", res.Move.String()).Int("score", res.Score).Int("depth", res.Depth).Msg("engine-move")
	s.afterMoveLocked()
	return res.Move, nil
}

// Hint suggests a move for whoever is to move, using a fresh strength-3 engine.
func (s *Session) Hint(ctx context.Context) (mg.Move, bool) {
	s.mu.Lock()
	if s.over {
		s.mu.Unlock()
		return mg.NoMove, false
	}
	snapshot := s.board.Clone()
	s.mu.Unlock()

	hinter := engine.NewEngine(snapshot.SideToMove(), hintStrength, s.cfg.TimeLimit,
		engine.WithWorkers(s.cfg.Workers), engine.WithMaxDepth(s.cfg.MaxDepth), engine.WithTTSize(1))
	res, ok := hinter.BestMove(ctx, snapshot)
	return res.Move, ok
}

// EvalBar is the live indicator fraction from the engine's side, in [0, 1].
func (s *Session) EvalBar() float64 {
	return engine.EvalBar(s.bar.CurrentScore())
}

func (s *Session) Score() int { return s.bar.CurrentScore() }

// Restart abandons the game and starts a new one with a new ID.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bar.Stop()
	s.ai.ClearTable()
	s.reset()
}

// LoadPosition continues the game from b, e.g. a position set up by a front-end.
// A side to move without legal moves passes at once.
func (s *Session) LoadPosition(b *mg.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bar.Stop()
	s.board = b.Clone()
	s.history = []string{s.board.Position()}
	s.passes = nil
	s.over = false
	s.afterMoveLocked()
}

// Close stops background evaluation and waits for it to exit.
func (s *Session) Close() {
	s.bar.Stop()
	s.bar.Wait()
}

func (s *Session) applyLocked(m mg.Move) error {
	if !s.board.Play(m) {
		return fmt.Errorf("%s for %s in %s: %w", m, s.board.SideToMove(), s.board.Position(), ErrIllegalMove)
	}
	s.history = append(s.history, s.board.Position())
	return nil
}

func (s *Session) afterMoveLocked() {
	if s.checkGameEndLocked() {
		s.bar.Stop()
		return
	}
	s.bar.Restart(s.board)
}

/*
checkGameEndLocked handles a side to move without legal moves: the turn
passes, and if the other side cannot move either the game is over.
*/
func (s *Session) checkGameEndLocked() bool {
	if s.board.HasLegalMoves() {
		return false
	}
	stuck := s.board.SideToMove()
	s.board.Pass()
	if !s.board.HasLegalMoves() {
		s.over = true
		black, white := s.board.PieceCounts()
		s.logger.Info().Int("black", black).Int("white", white).Str("winner", winnerOf(s.board).String()).Msg("game-over")
		return true
	}
	s.passes = append(s.passes, stuck)
	s.logger.Debug().Str("side", stuck.String()).Msg("pass")
	return false
}
