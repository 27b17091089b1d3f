// Package protocol speaks a line-based text protocol modelled on UCI, so that
// external front-ends can drive the engine over stdin/stdout.
package protocol

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"othello-engine/engine"
	mg "othello-engine/othellomg"
)

const (
	EngineName   = "Othello Engine 1.0"
	EngineAuthor = "the othello-engine authors"
)

type Server struct {
	in  io.Reader
	out io.Writer

	outMu sync.Mutex

	cfg    engine.Config
	board  *mg.Board
	engine *engine.Engine
	bar    *engine.BackgroundEvaluator

	searchCancel context.CancelFunc
	searchDone   chan struct{}
}

func NewServer(cfg engine.Config, in io.Reader, out io.Writer, opts ...engine.Option) *Server {
	cfg = cfg.Normalize()
	opts = append([]engine.Option{engine.WithConfig(cfg)}, opts...)
	e := engine.NewEngine(mg.Black, cfg.Strength, cfg.TimeLimit, opts...)
	return &Server{
		in:     in,
		out:    out,
		cfg:    cfg,
		board:  mg.NewBoard(),
		engine: e,
		bar:    engine.NewBackgroundEvaluator(e),
	}
}

func (s *Server) println(a ...any) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintln(s.out, a...)
}

func (s *Server) printf(format string, a ...any) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintf(s.out, format, a...)
}

// Run reads commands until quit, end of input or ctx is done. A search still
// running at end of input is allowed to finish; quit cancels it.
func (s *Server) Run(ctx context.Context) error {
	defer func() {
		s.bar.Stop()
		s.bar.Wait()
	}()

	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			s.stopSearch()
			return ctx.Err()
		}
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "othello":
			s.println("id name", EngineName)
			s.println("id author", EngineAuthor)
			s.printf("option name Strength type spin default %d min %d max %d\n", s.cfg.Strength, engine.MinStrength, engine.MaxStrength)
			s.printf("option name MoveTime type spin default %d min 1 max 600000\n", s.cfg.TimeLimit.Milliseconds())
			s.println("othellook")
		case "isready":
			s.println("readyok")
		case "newgame":
			s.stopSearch()
			s.bar.Stop()
			s.board = mg.NewBoard()
			s.engine.ClearTable()
		case "quit":
			s.stopSearch()
			return nil
		case "stop":
			s.stopSearch()
			s.bar.Stop()
		case "go":
			s.waitSearch()
			s.goCommand(ctx, tokens[1:])
		case "position":
			s.waitSearch()
			s.positionCommand(tokens[1:])
		case "setoption":
			s.waitSearch()
			s.setOptionCommand(tokens[1:])
		case "eval":
			side := s.board.SideToMove()
			ev := engine.NewEvaluator(side, s.engine.Config().Strength)
			s.printf("info string eval %d side %s\n", ev.StaticEval(s.board), strings.ToLower(side.String()))
		case "analyse", "analyze":
			s.bar.Restart(s.board)
		case "score":
			score := s.bar.CurrentScore()
			s.printf("info score %d depth %d bar %.3f side %s running %t\n", score, s.bar.Depth(), engine.EvalBar(score),
				strings.ToLower(s.engine.Perspective().String()), s.bar.IsRunning())
		case "d":
			s.printf("%s", s.board)
			s.println("position", s.board.Position())
		default:
			s.println("info string Unknown command:", line)
		}
	}
	s.waitSearch()
	return scanner.Err()
}

func (s *Server) goCommand(ctx context.Context, args []string) {
	depth := 0
	moveTime := 0
	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "depth", "movetime":
			if i+1 >= len(args) {
				s.println("info string Malformed go command option", args[i])
				return
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n <= 0 {
				s.println("info string Malformed go command option; could not convert", args[i])
				return
			}
			if strings.ToLower(args[i]) == "depth" {
				depth = n
			} else {
				moveTime = n
			}
			i++
		case "infinite":
			continue
		default:
			s.println("info string Unknown go subcommand", args[i])
		}
	}

	b := s.board.Clone()
	if !b.HasLegalMoves() {
		s.println("bestmove pass")
		return
	}
	// A background iteration holds the engine until it notices cancellation.
	s.bar.Stop()
	s.bar.Wait()

	var searchCtx context.Context
	var cancel context.CancelFunc
	if moveTime > 0 {
		searchCtx, cancel = context.WithTimeout(ctx, time.Duration(moveTime)*time.Millisecond)
	} else {
		searchCtx, cancel = context.WithCancel(ctx)
	}
	done := make(chan struct{})
	s.searchCancel = cancel
	s.searchDone = done

	go func() {
		defer close(done)
		defer cancel()
		start := time.Now()
		var res engine.SearchResult
		if depth > 0 {
			res, _ = s.engine.SearchDepth(b, depth)
		} else {
			res, _ = s.engine.BestMove(searchCtx, b)
		}
		elapsed := time.Since(start)
		log.Debug().Str("move", res.Move.String()).Int("depth", res.Depth).Dur("elapsed", elapsed).Msg("protocol-search")
		s.printf("info depth %d score %d nodes %d time %d\n", res.Depth, res.Score, res.Stats.Nodes, elapsed.Milliseconds())
		s.println("bestmove", res.Move)
	}()
}

func (s *Server) positionCommand(args []string) {
	if len(args) == 0 {
		s.println("info string Malformed position command")
		return
	}

	var b *mg.Board
	rest := args[1:]
	if strings.ToLower(args[0]) == "startpos" {
		b = mg.NewBoard()
	} else {
		for len(rest) > 0 && strings.ToLower(rest[0]) != "moves" {
			rest = rest[1:]
		}
		fields := args[:len(args)-len(rest)]
		parsed, err := mg.ParsePosition(strings.Join(fields, " "))
		if err != nil {
			s.println("info string Invalid position:", err)
			return
		}
		b = parsed
	}

	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		for _, tok := range rest[1:] {
			if strings.ToLower(tok) == "pass" {
				if b.HasLegalMoves() {
					s.println("info string Pass not allowed in", b.Position())
					return
				}
				b.Pass()
				continue
			}
			m, err := mg.ParseMove(tok)
			if err != nil || !b.Play(m) {
				s.println("info string Move", tok, "not legal for position", b.Position())
				return
			}
		}
	}
	s.board = b
}

func (s *Server) setOptionCommand(args []string) {
	// setoption name <Name> value <V>
	if len(args) != 4 || strings.ToLower(args[0]) != "name" || strings.ToLower(args[2]) != "value" {
		s.println("info string Malformed setoption command")
		return
	}
	n, err := strconv.Atoi(args[3])
	if err != nil {
		s.println("info string Malformed setoption value", args[3])
		return
	}
	switch strings.ToLower(args[1]) {
	case "strength":
		s.engine.SetStrength(n)
	case "movetime":
		s.engine.SetTimeLimit(time.Duration(n) * time.Millisecond)
	default:
		s.println("info string Unknown option", args[1])
	}
}

func (s *Server) stopSearch() {
	if s.searchCancel != nil {
		s.searchCancel()
	}
	s.waitSearch()
}

func (s *Server) waitSearch() {
	if s.searchDone != nil {
		<-s.searchDone
		s.searchDone = nil
		s.searchCancel = nil
	}
}
