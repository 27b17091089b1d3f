package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"othello-engine/engine"
	mg "othello-engine/othellomg"
)

var (
	benchPosition string
	benchDepth    int
	benchRepeat   int
	benchCPUProf  string
	benchMemProf  string
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time fixed-depth searches",
	RunE:  runBench,
}

func init() {
	f := benchCmd.Flags()
	f.StringVar(&benchPosition, "position", mg.StartPosition, "position to search")
	f.IntVar(&benchDepth, "depth", 8, "search depth in plies")
	f.IntVar(&benchRepeat, "repeat", 1, "number of searches to run")
	f.StringVar(&benchCPUProf, "cpuprofile", "", "write CPU profile to file")
	f.StringVar(&benchMemProf, "memprofile", "", "write heap profile to file")
}

func runBench(cmd *cobra.Command, _ []string) error {
	if benchDepth <= 0 {
		return fmt.Errorf("depth must be positive, got %d", benchDepth)
	}
	board, err := mg.ParsePosition(benchPosition)
	if err != nil {
		return err
	}
	if !board.HasLegalMoves() {
		return errors.New("side to move has no legal move")
	}
	out := cmd.OutOrStdout()

	stop, err := startCPUProfile(benchCPUProf)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "bench: position=%q depth=%d repeat=%d strength=%d workers=%d\n",
		board.Position(), benchDepth, benchRepeat, cfg.Strength, cfg.Workers)

	var totalNodes uint64
	startAll := time.Now()
	for i := 0; i < benchRepeat; i++ {
		// fresh engine, so every iteration starts from an empty table
		e := engine.NewEngine(board.SideToMove(), cfg.Strength, cfg.TimeLimit, append(engineOptions(), engine.WithConfig(cfg))...)
		iterStart := time.Now()
		res, _ := e.SearchDepth(board, benchDepth)
		iterElapsed := time.Since(iterStart)
		totalNodes += res.Stats.Nodes
		log.Debug().Uint64("tt_cutoffs", res.Stats.TTCutoffs).Uint64("beta_cutoffs", res.Stats.BetaCutoffs).Msg("bench-iteration")
		fmt.Fprintf(out, "iteration %d: bestmove %v score %d nodes %d time=%v\n", i+1, res.Move, res.Score, res.Stats.Nodes, iterElapsed)
	}
	totalElapsed := time.Since(startAll)
	stop()

	fmt.Fprintf(out, "total time: %v nodes: %d nps: %.0f\n", totalElapsed, totalNodes, float64(totalNodes)/totalElapsed.Seconds())
	return writeHeapProfile(benchMemProf)
}
