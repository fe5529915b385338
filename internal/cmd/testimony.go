package cmd

import (
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/concordapp/concord/internal/negotiation"
)

var testimonyVisibility string

var testimonyCmd = &cobra.Command{
	Use:   "testimony",
	Short: "Manage the initiator's post-resolution testimony",
}

var testimonySetCmd = &cobra.Command{
	Use:   "set <session-id> <text>",
	Short: "Write or replace the testimony on a resolved session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app, actor negotiation.Participant) error {
			s, changed, err := a.ctrl.SetTestimony(args[0], actor, args[1], negotiation.Visibility(testimonyVisibility))
			if err != nil {
				return err
			}
			if !changed {
				reportOutcome(cmd, s, false)
				return nil
			}
			cmd.Printf("testimony saved on %s, visible to %s\n", s.ID, s.Testimony.Visibility)
			if utf8.RuneCountInString(args[1]) > negotiation.TestimonyMaxLen {
				cmd.Printf("note: trimmed to %d characters\n", negotiation.TestimonyMaxLen)
			}
			return nil
		})
	},
}

var testimonyWithdrawCmd = &cobra.Command{
	Use:   "withdraw <session-id>",
	Short: "Remove the testimony from a resolved session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app, actor negotiation.Participant) error {
			s, changed, err := a.ctrl.WithdrawTestimony(args[0], actor)
			if err != nil {
				return err
			}
			if !changed {
				reportOutcome(cmd, s, false)
				return nil
			}
			cmd.Printf("testimony withdrawn from %s\n", s.ID)
			return nil
		})
	},
}

func init() {
	testimonySetCmd.Flags().StringVar(&testimonyVisibility, "visibility", string(negotiation.VisibilityPrivate),
		"who may see it: private, church or community")
	testimonyCmd.AddCommand(testimonySetCmd, testimonyWithdrawCmd)
	rootCmd.AddCommand(testimonyCmd)
}
