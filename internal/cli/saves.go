package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/structquest/structquest/internal/models"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List save slots",
	RunE: func(cmd *cobra.Command, args []string) error {
		saves, err := models.ListSaves()
		if err != nil {
			return err
		}
		if len(saves) == 0 {
			fmt.Println("No saves yet.")
			return nil
		}
		for _, name := range saves {
			game, err := models.LoadSave(name)
			if err != nil {
				fmt.Printf("  %s (unreadable: %v)\n", name, err)
				continue
			}
			suffix := ""
			if game.Session != nil {
				suffix = fmt.Sprintf(", suspended %s/%d puzzle", game.Session.Puzzle.Type, game.Session.Puzzle.Level)
			}
			fmt.Printf("  %s (score %d%s)\n", name, game.Progress.CumulativeScore, suffix)
		}
		return nil
	},
}
