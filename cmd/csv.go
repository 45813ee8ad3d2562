package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/brk3/streaks/internal/export"
	"github.com/brk3/streaks/internal/logger"
	"github.com/brk3/streaks/internal/storage"
	"github.com/brk3/streaks/pkg/streak"
	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <board>",
	Short: "Write a board as CSV",
	Long: `The "export" command writes one CSV row per day:
day,date,completed,count,note,heat,difficulty,frozen`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBoard(args[0], func(_ storage.Store, b *streak.Board) error {
			var w io.Writer = cmd.OutOrStdout()
			if exportOut != "" && exportOut != "-" {
				f, err := os.Create(exportOut)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return export.WriteCSV(w, b)
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <board> <file>",
	Short: "Load day state from CSV into a board",
	Long: `The "import" command applies the rows of a CSV export onto a board. Days
missing from the file keep their state. Five-column files
(day,date,completed,count,note) are accepted and count is read as heat.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()

		return withBoard(args[0], func(st storage.Store, b *streak.Board) error {
			imported, err := export.ReadCSV(f, b)
			if err != nil {
				return fmt.Errorf("%s: %w", args[1], err)
			}
			saved, err := st.UpdateBoard(b.ID, func(cur *streak.Board) error {
				*cur = *imported
				return nil
			})
			if err != nil {
				return err
			}
			logger.Info("Board imported", "board_id", b.ID, "completed", saved.Completed.Len())
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d completed days into %q\n", saved.Completed.Len(), saved.Title)
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "file to write (default stdout)")
	rootCmd.AddCommand(exportCmd, importCmd)
}
