package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"pitsweeper/cmd/pitsweeper/ui"
	"pitsweeper/internal/session"
)

var solveTrace bool

// solveCmd runs a single episode and prints the move trace.
var solveCmd = &cobra.Command{
	Use:   "solve [maze-file]",
	Short: "Solve one maze and print the move trace",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			runMazeFile = args[0]
		}
		rng := rand.New(rand.NewSource(seed))
		maze, err := buildMaze(rng)
		if err != nil {
			return err
		}

		opts := []session.Option{}
		if solveTrace {
			opts = append(opts, session.WithObserver(func(s session.Step) {
				fmt.Printf("step %-3d at %s read %q -> move to %s (score %d)\n",
					s.Index, s.Perception.Loc, string(s.Perception.Tile), s.Target, s.Score)
			}))
		}
		runner := session.NewRunner(maze, rng, cfg.Episode.MaxSteps, opts...)
		res, err := runner.Run(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(ui.RenderBoard(runner.Maze(), runner.Agent(), true))
		if res.Reached {
			fmt.Printf("goal reached in %d steps, score %d, %d pit hits\n", res.Steps, res.Score, res.PitHits)
		} else {
			fmt.Printf("goal not reached after %d steps\n", res.Steps)
		}
		return nil
	},
}

func init() {
	solveCmd.Flags().BoolVar(&solveTrace, "trace", true, "print each step as it happens")
}
