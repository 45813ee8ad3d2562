package cmd

import (
	"github.com/brk3/streaks/internal/controller"
	"github.com/brk3/streaks/internal/storage"
	"github.com/brk3/streaks/internal/tui"
	"github.com/brk3/streaks/pkg/streak"
	"github.com/spf13/cobra"
)

var boardCmd = &cobra.Command{
	Use:   "board <board>",
	Short: "Open the interactive board",
	Long: `The "board" command opens a board in the terminal. Arrow keys move the
focus, space or enter toggles today, m opens the day menu, d edits the day's
note and difficulty, f spends a freeze, 1-4 rates the focused day, l cycles
the layout and q quits. Every change is saved as it happens.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := theme()
		if err != nil {
			return err
		}
		return withBoard(args[0], func(st storage.Store, b *streak.Board) error {
			store, err := streak.NewControlledStore(storage.Owner(st, b.ID))
			if err != nil {
				return err
			}
			opts := controller.Options{
				Hover:        cfg.Board.Hover,
				Sound:        cfg.Board.Sound,
				CelebrateFor: cfg.Board.CelebrateFor(),
				Now:          now,
			}
			return tui.RunBoard(cmd.Context(), store, opts, t, cmd.OutOrStdout())
		})
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
}
