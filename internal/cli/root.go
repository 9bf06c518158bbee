package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/structquest/structquest/internal/config"
	"github.com/structquest/structquest/internal/models"
)

var (
	cfg     *config.Config
	rootCmd = &cobra.Command{
		Use:   "structquest",
		Short: "StructQuest: learn data structures by solving operation puzzles",
		Long: `StructQuest is an interactive tutor for classic data structures
(stack, queue, linked list, binary tree, graph). It generates puzzles of
increasing difficulty, grades each operation you perform, and tracks your
score and unlocked levels across sessions.

Start playing:
  structquest play

Inspect a generated puzzle without playing it:
  structquest generate --type stack --level 2 --seed 42`,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(savesCmd)
}

func initConfig() {
	var err error
	cfg, err = config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	models.SaveDir = cfg.SaveDir
}
