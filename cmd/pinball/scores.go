package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pinball/internal/registry"
	"github.com/vovakirdan/tui-pinball/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresPlayer string
	flagScoresRecent bool
	flagScoresClear  bool
	flagScoresRun    string
)

var scoresCmd = &cobra.Command{
	Use:   "scores <table>",
	Short: "Show recorded runs for a table",
	Long: `Display the best runs for the specified table. --recent lists the
latest runs instead, --player one player's history, --run a single run
by its ID. --clear deletes every run recorded on the table.

Examples:
  pinball scores pinball
  pinball scores pinball --limit 20
  pinball scores pinball --recent
  pinball scores pinball --player alice
  pinball scores pinball --run 3f0c9a6e-...
  pinball scores pinball --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Show recent runs for this player")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every run recorded on the table")
	scoresCmd.Flags().StringVar(&flagScoresRun, "run", "", "Show one run by ID")
	scoresCmd.MarkFlagsMutuallyExclusive("player", "recent", "clear", "run")
}

func runScores(_ *cobra.Command, args []string) error {
	tableID := args[0]

	if !registry.Exists(tableID) {
		return fmt.Errorf("unknown table %q, run 'pinball list' to see available tables", tableID)
	}

	game, err := registry.Create(tableID)
	if err != nil {
		return fmt.Errorf("cannot create table: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		n, err := store.ClearRuns(tableID)
		if err != nil {
			return err
		}
		logger.Info("runs cleared", "table", tableID, "count", n)
		fmt.Printf("Deleted %d runs from %s.\n", n, game.Title())
		return nil
	case flagScoresRun != "":
		return printRun(store, tableID, flagScoresRun)
	}

	var runs []storage.Run
	heading := "Best runs"
	switch {
	case flagScoresPlayer != "":
		heading = "Runs by " + flagScoresPlayer
		runs, err = store.PlayerRuns(tableID, flagScoresPlayer, flagScoresLimit)
	case flagScoresRecent:
		heading = "Recent runs"
		runs, err = store.RecentRuns(tableID, flagScoresLimit)
	default:
		runs, err = store.TopRuns(tableID, flagScoresLimit)
	}
	if err != nil {
		return fmt.Errorf("cannot read runs: %w", err)
	}

	fmt.Printf("%s - %s\n", heading, game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'pinball play %s' to set the first score!\n", tableID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-12s  %-8s  %-8s  %s\n", "Rank", "Score", "Player", "Frames", "Timestep", "Date")
	fmt.Printf("  %-4s  %-8s  %-12s  %-8s  %-8s  %s\n", "----", "-----", "------", "------", "--------", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-12s  %-8d  %-8s  %s\n",
			i+1, r.Score, displayPlayer(r.Player), r.Frames, r.Timestep, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(tableID)
	if err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("Best: %d  Average: %.0f  Runs: %d  Frames: %d\n",
			stats.BestScore, stats.AvgScore, stats.Runs, stats.TotalFrames)
	}
	return nil
}

func printRun(store *storage.Store, tableID, runID string) error {
	r, err := store.RunByID(runID)
	if err != nil {
		return err
	}
	if r == nil || r.GameID != tableID {
		return errors.New("no such run on this table: " + runID)
	}
	fmt.Printf("Run      %s\n", r.RunID)
	fmt.Printf("Player   %s\n", displayPlayer(r.Player))
	fmt.Printf("Score    %d\n", r.Score)
	fmt.Printf("Frames   %d\n", r.Frames)
	fmt.Printf("Timestep %s\n", r.Timestep)
	fmt.Printf("Duration %ds\n", r.Duration)
	fmt.Printf("Played   %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func displayPlayer(p string) string {
	if p == "" {
		return "local"
	}
	return p
}
