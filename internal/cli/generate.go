package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/structquest/structquest/internal/generator"
	"github.com/structquest/structquest/internal/models"
)

var (
	genType  string
	genLevel int
	genSeed  int64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a puzzle and print it as yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		t := models.StructureType(genType)
		valid := false
		for _, known := range models.StructureTypes {
			if t == known {
				valid = true
			}
		}
		if !valid {
			return fmt.Errorf("unknown structure type %q", genType)
		}

		p, err := generator.New().Generate(context.Background(), t, genLevel, genSeed)
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(p)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	},
}

func init() {
	generateCmd.Flags().StringVar(&genType, "type", "stack", "structure type (stack, queue, linked_list, binary_tree, graph)")
	generateCmd.Flags().IntVar(&genLevel, "level", 1, "difficulty level")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 1, "random seed (deterministic output)")
}
