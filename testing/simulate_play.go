// Self-play driver: generates puzzles for every structure type at the first
// three levels and solves each one by replaying its worked solution through
// the full engine loop. Useful as a smoke run of generation, validation,
// session, and progression without any UI.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/structquest/structquest/internal/engine"
	"github.com/structquest/structquest/internal/models"
	"github.com/structquest/structquest/internal/progression"
)

const maxLevel = 3

func main() {
	ctx := context.Background()

	eng, err := engine.New()
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	ctrl := progression.New(models.NewProgressionState())
	ctrl.Begin()

	for _, t := range models.StructureTypes {
		if err := ctrl.ChooseStructure(t); err != nil {
			log.Fatalf("choose %s: %v", t, err)
		}
		for level := 1; level <= maxLevel; level++ {
			if err := ctrl.ChooseLevel(level); err != nil {
				log.Fatalf("choose %s level %d: %v", t, level, err)
			}
			seed := int64(level)*1000 + int64(len(t))
			puzzle, err := eng.GeneratePuzzle(ctx, t, level, seed)
			if err != nil {
				log.Fatalf("generate %s level %d: %v", t, level, err)
			}
			sess, err := ctrl.StartPuzzle(puzzle)
			if err != nil {
				log.Fatalf("start %s level %d: %v", t, level, err)
			}

			for i, op := range puzzle.Solution {
				res, err := eng.Submit(sess, op, time.Duration(i)*time.Second)
				if err != nil {
					log.Fatalf("%s level %d step %d: %v", t, level, i, err)
				}
				if !res.Accepted {
					log.Fatalf("%s level %d step %d rejected: %s", t, level, i, res.Reason)
				}
			}
			if sess.Status() != models.StatusSolved {
				log.Fatalf("%s level %d not solved after worked solution", t, level)
			}

			fb, err := ctrl.Finish()
			if err != nil {
				log.Fatalf("finish %s level %d: %v", t, level, err)
			}
			fmt.Printf("%-12s level %d: %d ops, score %d\n", t, level, len(puzzle.Solution), fb.Score.Total)
			if _, err := ctrl.NextLevel(); err != nil {
				log.Fatalf("advance after %s level %d: %v", t, level, err)
			}
		}
		ctrl.BackToMenu()
	}

	fmt.Printf("\nTotal score: %d\n", ctrl.State().CumulativeScore)
}
