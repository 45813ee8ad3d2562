package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/brk3/streaks/internal/logger"
	"github.com/brk3/streaks/pkg/streak"
	"github.com/spf13/cobra"
)

var (
	newDays     int
	newStart    string
	newWeekdays bool
	newLayout   string
	newShape    string
)

var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Create a board",
	Long: `The "new" command creates a board for a habit. The board covers --days
days from --start (today by default). With --weekdays only Monday to Friday
get a cell.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bc := streak.BoardConfig{
			Title:        strings.Join(args, " "),
			Days:         newDays,
			StartDate:    streak.Day(now()),
			WeekdaysOnly: newWeekdays,
			Layout:       streak.Layout(cfg.Board.Layout),
			Shape:        streak.Shape(cfg.Board.Shape),
		}
		if newStart != "" {
			d, err := time.ParseInLocation(time.DateOnly, newStart, time.Local)
			if err != nil {
				return fmt.Errorf("--start must be YYYY-MM-DD: %w", err)
			}
			bc.StartDate = d
		}
		if newLayout != "" {
			bc.Layout = streak.Layout(newLayout)
		}
		if newShape != "" {
			bc.Shape = streak.Shape(newShape)
		}

		b, err := streak.NewBoard(bc)
		if err != nil {
			return err
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.PutBoard(b); err != nil {
			return err
		}
		logger.Info("Board created", "board_id", b.ID, "title", b.Title, "days", b.Days)
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s %q (%d days from %s)\n", b.ID, b.Title, b.Days, b.StartDate.Format(time.DateOnly))
		return nil
	},
}

func init() {
	newCmd.Flags().IntVar(&newDays, "days", 30, "number of days on the board")
	newCmd.Flags().StringVar(&newStart, "start", "", "first day, YYYY-MM-DD (default today)")
	newCmd.Flags().BoolVar(&newWeekdays, "weekdays", false, "only Monday to Friday count")
	newCmd.Flags().StringVar(&newLayout, "layout", "", "week, month or grid (default from config)")
	newCmd.Flags().StringVar(&newShape, "shape", "", "square, rounded or circle (default from config)")
	rootCmd.AddCommand(newCmd)
}
