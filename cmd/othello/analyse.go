package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"othello-engine/engine"
	mg "othello-engine/othellomg"
)

var (
	analysePosition string
	analyseDuration time.Duration
	analyseInterval time.Duration
)

var analyseCmd = &cobra.Command{
	Use:     "analyse",
	Aliases: []string{"analyze"},
	Short:   "Run the background evaluator on a position and print its score",
	Long: `Deepen the evaluation of a position in the background and print the
published score every --interval. The score is from the side to move's point
of view.`,
	RunE: runAnalyse,
}

func init() {
	f := analyseCmd.Flags()
	f.StringVar(&analysePosition, "position", mg.StartPosition, "position to analyse")
	f.DurationVar(&analyseDuration, "duration", 5*time.Second, "how long to analyse")
	f.DurationVar(&analyseInterval, "interval", 500*time.Millisecond, "print interval")
}

func runAnalyse(cmd *cobra.Command, _ []string) error {
	board, err := mg.ParsePosition(analysePosition)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, analyseDuration)
	defer cancel()

	e := engine.NewEngine(board.SideToMove(), cfg.Strength, cfg.TimeLimit, append(engineOptions(), engine.WithConfig(cfg))...)
	bg := engine.NewBackgroundEvaluator(e)
	bg.Start(board)
	defer func() {
		bg.Stop()
		bg.Wait()
	}()

	view := newBoardView(cmd.OutOrStdout())
	fmt.Fprint(cmd.OutOrStdout(), view.Render(board, mg.NoMove))

	ticker := time.NewTicker(analyseInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintf(cmd.OutOrStdout(), "final depth %d %s\n", bg.Depth(), view.Bar(bg.CurrentScore(), 40))
			return nil
		case <-ticker.C:
			fmt.Fprintf(cmd.OutOrStdout(), "depth %2d %s\n", bg.Depth(), view.Bar(bg.CurrentScore(), 40))
		}
	}
}
