package cmd

import (
	"fmt"

	"github.com/brk3/streaks/internal/logger"
	"github.com/brk3/streaks/internal/storage"
	"github.com/brk3/streaks/pkg/streak"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <board>",
	Short: "Delete a board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBoard(args[0], func(st storage.Store, b *streak.Board) error {
			if err := st.DeleteBoard(b.ID); err != nil {
				return err
			}
			logger.Info("Board deleted", "board_id", b.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", b.Title)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
