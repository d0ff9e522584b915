package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lode/internal/storage"
)

var flagProgressAll bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or clear saved progress",
}

var progressShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show saved runs",
	Long: `Show the saved run of --player, or of every player with --all.

Examples:
  lode progress show
  lode progress show --all`,
	Args: cobra.NoArgs,
	RunE: runProgressShow,
}

var progressClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the saved run of --player",
	Args:  cobra.NoArgs,
	RunE:  runProgressClear,
}

func init() {
	progressShowCmd.Flags().BoolVar(&flagProgressAll, "all", false, "Show every player")
	progressCmd.AddCommand(progressShowCmd)
	progressCmd.AddCommand(progressClearCmd)
}

func withStore(cmd *cobra.Command, fn func(ctx context.Context, store *storage.Store) error) error {
	store, err := storage.Open(flagDB)
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	return fn(ctx, store)
}

func printProgress(p storage.Progress) {
	fmt.Printf("  %-16s  %5d  %5d  %5d  %s\n",
		p.Player, p.Level+1, p.Lives, p.Done(), p.UpdatedAt.Format("2006-01-02 15:04"))
}

func printProgressHeader() {
	fmt.Printf("  %-16s  %5s  %5s  %5s  %s\n", "Player", "Level", "Lives", "Done", "Saved")
	fmt.Printf("  %-16s  %5s  %5s  %5s  %s\n", "------", "-----", "-----", "----", "-----")
}

func runProgressShow(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(ctx context.Context, store *storage.Store) error {
		if flagProgressAll {
			all, err := store.ListProgress(ctx)
			if err != nil {
				return err
			}
			if len(all) == 0 {
				fmt.Println("No saved runs.")
				return nil
			}
			printProgressHeader()
			for _, p := range all {
				printProgress(p)
			}
			return nil
		}

		p, ok, err := store.LoadProgress(ctx, flagPlayer)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Printf("No saved run for %s.\n", flagPlayer)
			return nil
		}
		printProgressHeader()
		printProgress(p)
		return nil
	})
}

func runProgressClear(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(ctx context.Context, store *storage.Store) error {
		if err := store.ClearProgress(ctx, flagPlayer); err != nil {
			return err
		}
		fmt.Printf("Cleared saved run of %s.\n", flagPlayer)
		return nil
	})
}
