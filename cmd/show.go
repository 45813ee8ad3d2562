package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/brk3/streaks/internal/storage"
	"github.com/brk3/streaks/internal/ui"
	"github.com/brk3/streaks/pkg/streak"
	"github.com/spf13/cobra"
)

var (
	showLayout string
	statsJSON  bool
)

var showCmd = &cobra.Command{
	Use:   "show <board>",
	Short: "Print a board",
	Long: `The "show" command prints the board calendar and its streak summary.
<board> is the board id or its title.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := theme()
		if err != nil {
			return err
		}
		return withBoard(args[0], func(_ storage.Store, b *streak.Board) error {
			kind := b.Layout
			if showLayout != "" {
				if kind, err = streak.ParseLayout(showLayout); err != nil {
					return err
				}
			}
			n := now()
			fmt.Fprint(cmd.OutOrStdout(), ui.Board(b.Title, b.Shape, ui.WeekHeader(kind, b.WeekdaysOnly), b.View(kind, n), ui.Marks{}, t))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Stats(b.Stats(n), b.Completed.Len(), b.Days, b.FreezesLeft, t))
			return nil
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <board>",
	Short: "Show streak statistics for a board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBoard(args[0], func(_ storage.Store, b *streak.Board) error {
			s := b.Stats(now())
			out := cmd.OutOrStdout()
			if statsJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			}
			fmt.Fprintf(out, "current: %d\nlongest: %d\ncompleted: %d/%d\nfreezes left: %d\n",
				s.Current, s.Max, b.Completed.Len(), b.Days, b.FreezesLeft)
			for _, r := range s.Ranges {
				fmt.Fprintf(out, "run: %d-%d (%d days)\n", r.Start, r.End, r.Len())
			}
			return nil
		})
	},
}

func init() {
	showCmd.Flags().StringVar(&showLayout, "layout", "", "week, month or grid (default the board's layout)")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print JSON")
	rootCmd.AddCommand(showCmd, statsCmd)
}
