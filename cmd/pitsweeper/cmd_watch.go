package main

import (
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pitsweeper/cmd/pitsweeper/ui"
	"pitsweeper/internal/session"
)

var watchDelay time.Duration

// watchCmd runs one episode under an interactive terminal view.
var watchCmd = &cobra.Command{
	Use:   "watch [maze-file]",
	Short: "Watch the agent solve a maze live",
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
		runner := session.NewRunner(maze, rng, cfg.Episode.MaxSteps)

		model := ui.NewWatchModel(runner, watchDelay)
		if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("watch ui failed: %w", err)
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDelay, "delay", 200*time.Millisecond, "pause between steps")
}
