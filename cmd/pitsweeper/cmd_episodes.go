package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pitsweeper/internal/store"
)

var episodesLimit int

// episodesCmd lists recorded episodes from the sqlite store.
var episodesCmd = &cobra.Command{
	Use:   "episodes",
	Short: "List recorded episodes",
	RunE: func(cmd *cobra.Command, args []string) error {
		recorder, err := store.NewRecorder(cfg.Store.Dir)
		if err != nil {
			return err
		}
		defer recorder.Close()

		episodes, err := recorder.Episodes(cmd.Context(), episodesLimit)
		if err != nil {
			return err
		}
		if len(episodes) == 0 {
			fmt.Println("no recorded episodes; run with --record first")
			return nil
		}
		for _, e := range episodes {
			fmt.Printf("%s  %s  %2dx%-2d  reached=%-5v steps=%-4d score=%-4d pit_hits=%d\n",
				e.ID[:8], e.StartedAt.Format("2006-01-02 15:04:05"),
				e.Width, e.Height, e.Reached, e.Steps, e.Score, e.PitHits)
		}
		return nil
	},
}

func init() {
	episodesCmd.Flags().IntVar(&episodesLimit, "limit", 20, "maximum episodes to list")
}
