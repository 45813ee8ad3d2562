package cmd

import (
	"fmt"
	"strings"

	"github.com/brk3/streaks/internal/apiclient"
	"github.com/brk3/streaks/internal/nudge"
	"github.com/brk3/streaks/internal/nudge/resend"

	"github.com/spf13/cobra"
)

var (
	nudgeRemote bool
	nudgeDryRun bool
)

var nudgeCmd = &cobra.Command{
	Use:   "nudge",
	Short: "Send a reminder for streaks that end at midnight",
	Long: `The "nudge" command e-mails the titles of boards whose streak ends today
unless today is checked in. It only sends once fewer than
nudge.threshold_hours remain in the day, so it can run from cron every hour.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if nudgeDryRun {
			return nil
		}
		if cfg.Nudge.ResendAPIKey == "" {
			return fmt.Errorf("STREAKS_RESEND_API_KEY or nudge.resend_api_key is not set")
		}
		if cfg.Nudge.Email == "" {
			return fmt.Errorf("STREAKS_NOTIFY_EMAIL or nudge.email is not set")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var q nudge.Querier
		if nudgeRemote {
			q = apiclient.New(cfg.APIBaseURL)
		} else {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			q = nudge.StoreQuerier{Store: st}
		}

		if nudgeDryRun {
			titles, err := nudge.BoardsAtRisk(cmd.Context(), q, now())
			if err != nil {
				return err
			}
			if len(titles) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No streaks at risk.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "At risk (%d hours left): %s\n", nudge.HoursLeft(now()), strings.Join(titles, ", "))
			return nil
		}

		n := resend.ResendNotifier{
			ApiKey: cfg.Nudge.ResendAPIKey,
			Email:  cfg.Nudge.Email,
			From:   cfg.Nudge.From,
		}
		sent, err := nudge.Nudge(cmd.Context(), q, &n, now(), cfg.Nudge.ThresholdHours)
		if err != nil {
			return err
		}
		if len(sent) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Nudged about: %s\n", strings.Join(sent, ", "))
		}
		return nil
	},
}

var _ nudge.Querier = (*apiclient.Client)(nil)

func init() {
	nudgeCmd.Flags().BoolVar(&nudgeRemote, "remote", false, "read boards from the server at api_base_url")
	nudgeCmd.Flags().BoolVar(&nudgeDryRun, "dry-run", false, "print the boards at risk instead of sending")
	rootCmd.AddCommand(nudgeCmd)
}
