package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/structquest/structquest/internal/engine"
	"github.com/structquest/structquest/internal/explain"
	"github.com/structquest/structquest/internal/models"
	"github.com/structquest/structquest/internal/progression"
	"github.com/structquest/structquest/internal/tui"
)

var playSave string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start or resume an interactive session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		eng, err := engine.New()
		if err != nil {
			return err
		}

		var coach *explain.Coach
		if cfg.GeminiAPIKey != "" {
			coach, err = explain.NewCoach(ctx, cfg.GeminiAPIKey)
			if err != nil {
				fmt.Fprintf(os.Stderr, "coach disabled: %v\n", err)
			} else {
				defer coach.Close()
			}
		}

		ctrl, err := loadController(eng, playSave)
		if err != nil {
			return err
		}
		return tui.Run(eng, coach, ctrl, playSave)
	},
}

// loadController restores progress (and a suspended puzzle, if any) from the
// save slot, or starts fresh.
func loadController(eng *engine.Engine, name string) (*progression.Controller, error) {
	game, err := models.LoadSave(name)
	if err != nil {
		if os.IsNotExist(err) {
			return progression.New(models.NewProgressionState()), nil
		}
		return nil, err
	}
	ctrl := progression.New(game.Progress)
	if game.Session != nil && game.Session.Status == models.StatusInProgress {
		sess, err := eng.Resume(*game.Session)
		if err != nil {
			return nil, fmt.Errorf("restore suspended session: %w", err)
		}
		ctrl.Resume(sess)
	}
	return ctrl, nil
}

func init() {
	playCmd.Flags().StringVar(&playSave, "save", "current", "save slot name")
}
