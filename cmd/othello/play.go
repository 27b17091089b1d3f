package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"othello-engine/game"
	mg "othello-engine/othellomg"
)

var playColor string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game against the engine in the terminal",
	Long: `Play a game against the engine. Enter moves as a1..h8.

Commands:
  hint      suggest a move
  restart   start a new game
  quit      leave`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&playColor, "color", "black", "your colour: black or white")
}

func parseColor(s string) (mg.Cell, error) {
	switch strings.ToLower(s) {
	case "black", "b", "x":
		return mg.Black, nil
	case "white", "w", "o":
		return mg.White, nil
	}
	return mg.Empty, fmt.Errorf("unknown colour %q", s)
}

func runPlay(cmd *cobra.Command, _ []string) error {
	human, err := parseColor(playColor)
	if err != nil {
		return err
	}
	sess := game.NewSession(cfg, human, engineOptions()...)
	defer sess.Close()
	return playLoop(cmd.Context(), sess, os.Stdin, cmd.OutOrStdout())
}

func playLoop(ctx context.Context, sess *game.Session, in io.Reader, out io.Writer) error {
	view := newBoardView(out)
	scanner := bufio.NewScanner(in)
	hint := mg.NoMove

	for {
		for !sess.Over() && sess.Turn() == sess.EngineColor() {
			m, err := sess.AIMove(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Engine plays %s\n", m)
		}

		fmt.Fprint(out, view.Render(sess.Board(), hint))
		fmt.Fprintln(out, view.Bar(sess.Score(), 32))
		hint = mg.NoMove
		if sess.Over() {
			fmt.Fprintln(out, sess.Outcome())
			fmt.Fprint(out, "restart or quit> ")
		} else {
			fmt.Fprintf(out, "%s> ", sess.HumanColor())
		}

		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "restart", "new":
			sess.Restart()
			log.Info().Str("session", sess.ID().String()).Msg("restarted")
			continue
		case "hint":
			if m, ok := sess.Hint(ctx); ok {
				hint = m
				fmt.Fprintf(out, "Hint: %s\n", m)
			}
			continue
		}

		m, err := mg.ParseMove(line)
		if err != nil {
			fmt.Fprintf(out, "Cannot read %q as a move\n", line)
			continue
		}
		switch err := sess.Play(m); {
		case errors.Is(err, game.ErrIllegalMove):
			fmt.Fprintf(out, "%s is not legal here\n", m)
		case errors.Is(err, game.ErrGameOver):
			fmt.Fprintln(out, "The game is over; restart or quit")
		case err != nil:
			return err
		}
	}
}
