package cmd

import (
	"fmt"
	"strings"

	"github.com/brk3/streaks/internal/logger"
	"github.com/brk3/streaks/internal/storage"
	"github.com/brk3/streaks/pkg/streak"
	"github.com/spf13/cobra"
)

// updateDay resolves the board and day, then applies fn inside one store
// update.
func updateDay(ref, day string, fn func(b *streak.Board, idx int) (string, error)) (string, error) {
	var msg string
	err := withBoard(ref, func(st storage.Store, b *streak.Board) error {
		idx, err := parseDay(b, day)
		if err != nil {
			return err
		}
		_, err = st.UpdateBoard(b.ID, func(b *streak.Board) error {
			msg, err = fn(b, idx)
			return err
		})
		if err != nil {
			return err
		}
		logger.Info("Day updated", "board_id", b.ID, "idx", idx)
		return nil
	})
	return msg, err
}

func dayArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return "today"
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <board> [day]",
	Short: "Mark a day done, or undo it",
	Long: `The "toggle" command flips a day between done and not done. [day] is a
day index, a YYYY-MM-DD date or "today" (the default).`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := updateDay(args[0], dayArg(args, 1), func(b *streak.Board, idx int) (string, error) {
			done, err := b.Toggle(idx)
			if err != nil {
				return "", err
			}
			state := "cleared"
			if done {
				state = "done"
			}
			return fmt.Sprintf("Day %d %s. Current streak: %d", idx, state, b.Stats(now()).Current), nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

var freezeCmd = &cobra.Command{
	Use:   "freeze <board>",
	Short: "Spend a freeze to keep today's streak",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := updateDay(args[0], "today", func(b *streak.Board, idx int) (string, error) {
			frozen, err := b.FreezeToday(idx)
			if err != nil {
				return "", err
			}
			switch {
			case frozen:
				return fmt.Sprintf("Day %d frozen. %d freezes left.", idx, b.FreezesLeft), nil
			case b.Completed.Has(idx):
				return fmt.Sprintf("Day %d is already done.", idx), nil
			default:
				return "No freezes left.", nil
			}
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

var noteCmd = &cobra.Command{
	Use:   "note <board> <day> [text]",
	Short: "Set or clear the note on a day",
	Long:  `The "note" command attaches free text to any day. Omitting [text] clears the note.`,
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args[2:], " ")
		msg, err := updateDay(args[0], args[1], func(b *streak.Board, idx int) (string, error) {
			if err := b.SetNote(idx, text); err != nil {
				return "", err
			}
			if text == "" {
				return fmt.Sprintf("Note on day %d cleared.", idx), nil
			}
			return fmt.Sprintf("Note on day %d saved.", idx), nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

var difficultyCmd = &cobra.Command{
	Use:   "difficulty <board> <day> <level>",
	Short: "Rate how hard a day was",
	Long: `The "difficulty" command rates a day 1-4 (easy, medium, hard, extreme).
Rating a day also marks it done.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := streak.ParseDifficulty(args[2])
		if err != nil {
			return err
		}
		msg, err := updateDay(args[0], args[1], func(b *streak.Board, idx int) (string, error) {
			if _, err := b.SetDifficulty(idx, d); err != nil {
				return "", err
			}
			return fmt.Sprintf("Day %d rated %s.", idx, d), nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd, freezeCmd, noteCmd, difficultyCmd)
}
