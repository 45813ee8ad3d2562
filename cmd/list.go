package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List boards",
	Long:  `The "list" command lets you list your boards with their current and longest streaks.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		boards, err := st.ListBoards()
		if err != nil {
			return err
		}
		if len(boards) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No boards yet. Create one with: streaks new <title>")
			return nil
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("ID", "TITLE", "DONE", "CURRENT", "LONGEST", "FREEZES")
		for _, b := range boards {
			s := b.Stats(now())
			t.Row(
				b.ID,
				b.Title,
				fmt.Sprintf("%d/%d", b.Completed.Len(), b.Days),
				strconv.Itoa(s.Current),
				strconv.Itoa(s.Max),
				strconv.Itoa(b.FreezesLeft),
			)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
