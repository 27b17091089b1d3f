package main

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	mg "othello-engine/othellomg"
)

var (
	perftPosition string
	perftDepth    int
	perftDivide   bool
	perftRepeat   int
	perftLabel    string
	perftCPUProf  string
	perftMemProf  string
)

var perftCmd = &cobra.Command{
	Use:   "perft",
	Short: "Count move-generation leaf nodes to a fixed depth",
	Long: `Count the leaves of the move tree to --depth. A forced pass counts as a
move and a finished game is a leaf, so perft 1..4 from the start position is
4, 12, 56, 244.`,
	RunE: runPerft,
}

func init() {
	f := perftCmd.Flags()
	f.StringVar(&perftPosition, "position", mg.StartPosition, "position string (defaults to the initial position)")
	f.IntVar(&perftDepth, "depth", 0, "perft depth (required)")
	f.BoolVar(&perftDivide, "divide", false, "print per-move node counts at the root")
	f.IntVar(&perftRepeat, "repeat", 1, "repeat perft N times and report the aggregate")
	f.StringVar(&perftLabel, "label", "", "optional label prefix for the one-line output")
	f.StringVar(&perftCPUProf, "cpuprofile", "", "write CPU profile to file during the run")
	f.StringVar(&perftMemProf, "memprofile", "", "write heap profile to file after the run")
}

func runPerft(cmd *cobra.Command, _ []string) error {
	if perftDepth <= 0 {
		return errors.New("--depth must be > 0")
	}
	board, err := mg.ParsePosition(perftPosition)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if perftDivide {
		div := mg.PerftDivide(board, perftDepth)
		type kv struct {
			m mg.Move
			n uint64
		}
		arr := make([]kv, 0, len(div))
		var sum uint64
		for m, n := range div {
			arr = append(arr, kv{m, n})
			sum += n
		}
		sort.Slice(arr, func(i, j int) bool { return arr[i].m < arr[j].m })
		for _, x := range arr {
			fmt.Fprintf(out, "%s: %d\n", x.m, x.n)
		}
		fmt.Fprintf(out, "Total: %d\n", sum)
		return nil
	}

	stop, err := startCPUProfile(perftCPUProf)
	if err != nil {
		return err
	}
	var totalNodes uint64
	start := time.Now()
	for i := 0; i < perftRepeat; i++ {
		totalNodes += mg.Perft(board, perftDepth)
	}
	elapsed := time.Since(start)
	stop()

	// Label Depth Nodes Time NPS
	fmt.Fprintf(out, "%s \t%d \t\t%d \t\t%s \t%.0f\n", perftLabel, perftDepth, totalNodes, elapsed, float64(totalNodes)/elapsed.Seconds())
	return writeHeapProfile(perftMemProf)
}
