package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pitsweeper/internal/session"
	"pitsweeper/internal/store"
	"pitsweeper/internal/world"
)

var (
	runEpisodes int
	runParallel int
	runMazeFile string
	runRecord   bool
)

// runCmd executes headless episodes and prints their outcomes.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one or more headless exploration episodes",
	Long: `Runs complete episodes without a UI. Each episode generates a fresh
random maze (or reloads --maze every time) and reports whether the agent
reached the goal, its score, and how often it stepped in a pit.`,
	RunE: runEpisodesCmd,
}

func init() {
	runCmd.Flags().IntVar(&runEpisodes, "episodes", 1, "number of episodes to run")
	runCmd.Flags().IntVar(&runParallel, "parallel", 1, "episodes to run concurrently")
	runCmd.Flags().StringVar(&runMazeFile, "maze", "", "maze file instead of random generation")
	runCmd.Flags().BoolVar(&runRecord, "record", false, "persist episodes to the sqlite store")
}

// loadMazeFile parses a maze from an ASCII file.
func loadMazeFile(path string) (*world.Maze, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open maze file: %w", err)
	}
	defer f.Close()

	var rows []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line != "" {
			rows = append(rows, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read maze file: %w", err)
	}
	return world.Parse(rows)
}

// buildMaze produces the maze for one episode, from file or generation.
func buildMaze(rng *rand.Rand) (*world.Maze, error) {
	if runMazeFile != "" {
		return loadMazeFile(runMazeFile)
	}
	return world.Generate(world.GenerateConfig{
		Width:      cfg.Maze.Width,
		Height:     cfg.Maze.Height,
		PitDensity: cfg.Maze.PitDensity,
	}, rng)
}

func openRecorder() (*store.Recorder, error) {
	if !runRecord && !cfg.Store.Enabled {
		return nil, nil
	}
	return store.NewRecorder(cfg.Store.Dir)
}

func runEpisodesCmd(cmd *cobra.Command, args []string) error {
	if runEpisodes < 1 {
		return fmt.Errorf("--episodes must be at least 1")
	}
	if runParallel < 1 {
		runParallel = 1
	}

	recorder, err := openRecorder()
	if err != nil {
		return err
	}
	if recorder != nil {
		defer recorder.Close()
		logger.Info("recording episodes", zap.String("db", recorder.Path()))
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runParallel)

	var mu sync.Mutex
	reached, totalScore, totalPits := 0, 0, 0

	for i := 0; i < runEpisodes; i++ {
		episodeSeed := seed + int64(i)
		g.Go(func() error {
			rng := rand.New(rand.NewSource(episodeSeed))
			maze, err := buildMaze(rng)
			if err != nil {
				return err
			}
			var opts []session.Option
			if recorder != nil {
				opts = append(opts, session.WithRecorder(recorder))
			}
			runner := session.NewRunner(maze, rng, cfg.Episode.MaxSteps, opts...)
			res, err := runner.Run(ctx)
			if err != nil {
				return fmt.Errorf("episode %s: %w", runner.EpisodeID(), err)
			}

			mu.Lock()
			defer mu.Unlock()
			if res.Reached {
				reached++
			}
			totalScore += res.Score
			totalPits += res.PitHits
			fmt.Printf("episode %s  reached=%-5v steps=%-4d score=%-4d pit_hits=%d fallbacks=%d\n",
				res.EpisodeID[:8], res.Reached, res.Steps, res.Score, res.PitHits, res.Fallbacks)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("\n%d/%d reached goal, mean score %.1f, %d total pit hits\n",
		reached, runEpisodes, float64(totalScore)/float64(runEpisodes), totalPits)
	return nil
}
