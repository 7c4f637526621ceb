package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pinball/internal/games/pinball"
	"github.com/vovakirdan/tui-pinball/internal/platform/tui"
	"github.com/vovakirdan/tui-pinball/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a table from an interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a table, then pick a
difficulty. After a game ends, Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select table
  Tab          - Scoreboard
  Q            - Quit

Examples:
  pinball menu
  pinball menu --fps 30
  pinball menu --db ./scores.db`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom table config YAML")
	menuCmd.Flags().StringVar(&flagTimestep, "timestep", "", "Timestep mode: fixed or measured (default from config)")
	menuCmd.Flags().IntVar(&flagHoldMs, "hold-ms", int(tui.DefaultHold/time.Millisecond), "How long a flipper key press stays held")
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := configureTable(); err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	sessionLog, closeLog := screenLogger()
	defer closeLog()

	opts := tui.Options{
		Store:  store,
		Logger: sessionLog,
		Player: localPlayer(),
		Hold:   time.Duration(flagHoldMs) * time.Millisecond,
		Menu:   true,
	}
	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg, store)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, opts.Player, menuResult.TableID, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		tableID := menuResult.TableID
		if tableID == "" {
			return nil
		}

		game, err := registry.Create(tableID)
		if err != nil {
			sessionLog.Error("cannot create table", "table", tableID, "error", err)
			continue
		}

		preset, quit, err := tui.RunDifficultySelector(game.Title(), cfg)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
		if preset == "" {
			continue
		}
		pinball.SetDifficultyPreset(string(preset))

		// Fresh seed for each game
		cfg.Seed = time.Now().UnixNano()

		if err := tui.Run(game, cfg, opts); err != nil {
			return fmt.Errorf("error running table: %w", err)
		}
	}
}
