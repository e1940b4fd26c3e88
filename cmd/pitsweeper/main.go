// pitsweeper is a logic-first maze agent: it explores a pit-riddled grid
// using only local warning readings and a propositional knowledge base,
// deducing which tiles are provably safe before stepping on them.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pitsweeper/internal/config"
	"pitsweeper/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string
	seed       int64

	cfg    config.Config
	logger *zap.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "pitsweeper",
	Short: "pitsweeper - propositional-logic maze agent",
	Long: `pitsweeper explores a walled grid hiding pits, guided only by local
warning counts and resolution-based deduction over a clause store.

The agent never sees the map. Each visited tile reports how many of its
cardinal neighbors hide pits; the agent encodes those readings as CNF
constraints, asks its knowledge base which frontier tiles are provably
safe, and walks the cheapest deducible path to the goal.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Debug = true
			cfg.Logging.Level = "debug"
		}
		if err := logging.Configure(logging.Options{
			Dir:        cfg.Logging.Dir,
			Debug:      cfg.Logging.Debug,
			Level:      cfg.Logging.Level,
			Categories: cfg.Logging.Categories,
		}); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to yaml config file")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", time.Now().UnixNano(), "rng seed for maze generation and fallback moves")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(episodesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
