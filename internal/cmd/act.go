package cmd

import (
	"github.com/spf13/cobra"

	"github.com/concordapp/concord/internal/guard"
	"github.com/concordapp/concord/internal/negotiation"
)

// The verb commands all follow the same shape: resolve the actor, run one
// controller operation against the session named by the first argument, and
// report whether anything changed. Free-text inputs pass through the
// phrasing guard first; a hit is advisory and never blocks the write.

var (
	issueStatement string
	issueDetails   string

	proposeDate       string
	proposeTime       string
	proposeDescriptor string

	outcomeDecisions string
	outcomeApology   string
	outcomeFollowUp  string
)

var issueCmd = &cobra.Command{
	Use:   "issue <session-id>",
	Short: "State (or restate) the issue, as the initiator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app, actor negotiation.Participant) error {
			warnOnPattern(cmd, issueStatement, issueDetails)
			s, changed, err := a.ctrl.SubmitIssue(args[0], actor, issueStatement, issueDetails)
			if err != nil {
				return err
			}
			reportOutcome(cmd, s, changed)
			return nil
		})
	},
}

var acceptCmd = &cobra.Command{
	Use:   "accept <session-id>",
	Short: "Accept the issue as worth a session, as the recipient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app, actor negotiation.Participant) error {
			s, changed, err := a.ctrl.AcceptIssue(args[0], actor)
			if err != nil {
				return err
			}
			reportOutcome(cmd, s, changed)
			return nil
		})
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review <session-id> <summary>",
	Short: "Restate the issue in your own words, as the recipient",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app, actor negotiation.Participant) error {
			warnOnPattern(cmd, args[1])
			s, changed, err := a.ctrl.SubmitReview(args[0], actor, args[1])
			if err != nil {
				return err
			}
			reportOutcome(cmd, s, changed)
			return nil
		})
	},
}

var identityCmd = &cobra.Command{
	Use:   "identity <session-id> <text>",
	Short: "Record who you want to be in this conflict",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app, actor negotiation.Participant) error {
			s, changed, err := a.ctrl.SetIdentityStatement(args[0], actor, args[1])
			if err != nil {
				return err
			}
			reportOutcome(cmd, s, changed)
			return nil
		})
	},
}

var reflectCmd = &cobra.Command{
	Use:   "reflect <session-id> <questions> <self-critique>",
	Short: "Submit your questions and self-critique, as the initiator",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app, actor negotiation.Participant) error {
			warnOnPattern(cmd, args[1], args[2])
			s, changed, err := a.ctrl.SubmitReflection(args[0], actor, args[1], args[2])
			if err != nil {
				return err
			}
			reportOutcome(cmd, s, changed)
			return nil
		})
	},
}

var calmCmd = &cobra.Command{
	Use:   "calm <session-id>",
	Short: "Mark your calm preparation done and move on to scheduling",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app, actor negotiation.Participant) error {
			s, changed, err := a.ctrl.CompleteCalmPrep(args[0], actor)
			if err != nil {
				return err
			}
			reportOutcome(cmd, s, changed)
			return nil
		})
	},
}

var proposeCmd = &cobra.Command{
	Use:   "propose <session-id>",
	Short: "Propose a time for the conversation, as the initiator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app, actor negotiation.Participant) error {
			s, changed, err := a.ctrl.ProposeTime(args[0], actor, proposeDate, proposeTime, proposeDescriptor)
			if err != nil {
				return err
			}
			reportOutcome(cmd, s, changed)
			return nil
		})
	},
}

var confirmCmd = &cobra.Command{
	Use:   "confirm <session-id>",
	Short: "Confirm the proposed time, as the recipient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app, actor negotiation.Participant) error {
			s, changed, err := a.ctrl.ConfirmTime(args[0], actor)
			if err != nil {
				return err
			}
			reportOutcome(cmd, s, changed)
			if changed {
				cmd.Printf("export a calendar invite with: concord export ics %s\n", s.ID)
			}
			return nil
		})
	},
}

var rescheduleCmd = &cobra.Command{
	Use:   "reschedule <session-id>",
	Short: "Step back from dialogue to pick a new time (once per session)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app, actor negotiation.Participant) error {
			s, changed, err := a.ctrl.RequestReschedule(args[0], actor)
			if err != nil {
				return err
			}
			reportOutcome(cmd, s, changed)
			return nil
		})
	},
}

var paraphraseCmd = &cobra.Command{
	Use:   "paraphrase <session-id> <text>",
	Short: "Record the other side's position in your own words",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app, actor negotiation.Participant) error {
			warnOnPattern(cmd, args[1])
			s, changed, err := a.ctrl.SubmitParaphrase(args[0], actor, args[1])
			if err != nil {
				return err
			}
			reportOutcome(cmd, s, changed)
			return nil
		})
	},
}

var outcomeCmd = &cobra.Command{
	Use:   "outcome <session-id>",
	Short: "Record decisions, apology and follow-up plan, as the initiator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app, actor negotiation.Participant) error {
			warnOnPattern(cmd, outcomeDecisions, outcomeApology, outcomeFollowUp)
			s, changed, err := a.ctrl.RecordOutcome(args[0], actor, outcomeDecisions, outcomeApology, outcomeFollowUp)
			if err != nil {
				return err
			}
			reportOutcome(cmd, s, changed)
			return nil
		})
	},
}

var fairCmd = &cobra.Command{
	Use:   "fair <session-id>",
	Short: "Confirm the recorded outcome reads fair, as the recipient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app, actor negotiation.Participant) error {
			s, changed, err := a.ctrl.ConfirmFairness(args[0], actor)
			if err != nil {
				return err
			}
			reportOutcome(cmd, s, changed)
			return nil
		})
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <session-id>",
	Short: "Seal the session: write the recap and set the review date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app, actor negotiation.Participant) error {
			s, changed, err := a.ctrl.MarkResolved(args[0], actor)
			if err != nil {
				return err
			}
			reportOutcome(cmd, s, changed)
			if changed && s.ReviewAt != nil {
				cmd.Printf("follow-up review on %s\n", s.ReviewAt.Format("2006-01-02"))
			}
			return nil
		})
	},
}

func init() {
	issueCmd.Flags().StringVar(&issueStatement, "statement", "", "one-line issue statement (required)")
	issueCmd.Flags().StringVar(&issueDetails, "details", "", "supporting details")
	_ = issueCmd.MarkFlagRequired("statement")

	proposeCmd.Flags().StringVar(&proposeDate, "date", "", "meeting date, YYYY-MM-DD (required)")
	proposeCmd.Flags().StringVar(&proposeTime, "time", "", "meeting time, HH:MM (required)")
	proposeCmd.Flags().StringVar(&proposeDescriptor, "where", "", "place or medium, e.g. \"kitchen table\"")
	_ = proposeCmd.MarkFlagRequired("date")
	_ = proposeCmd.MarkFlagRequired("time")

	outcomeCmd.Flags().StringVar(&outcomeDecisions, "decisions", "", "what you both decided (required)")
	outcomeCmd.Flags().StringVar(&outcomeApology, "apology", "", "apologies offered")
	outcomeCmd.Flags().StringVar(&outcomeFollowUp, "follow-up", "", "how you'll check on these agreements")
	_ = outcomeCmd.MarkFlagRequired("decisions")

	rootCmd.AddCommand(issueCmd, acceptCmd, reviewCmd, identityCmd, reflectCmd, calmCmd,
		proposeCmd, confirmCmd, rescheduleCmd, paraphraseCmd, outcomeCmd, fairCmd, resolveCmd)
}

// withApp wires the app and actor for a verb command body.
func withApp(cmd *cobra.Command, fn func(a *app, actor negotiation.Participant) error) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	actor, err := a.actor(cmd)
	if err != nil {
		return err
	}
	return fn(a, actor)
}

// warnOnPattern surfaces escalation-pattern hits in free text. Advisory
// only; the submission proceeds regardless.
func warnOnPattern(cmd *cobra.Command, texts ...string) {
	for _, text := range texts {
		if f, ok := guard.Check(text); ok {
			cmd.Printf("note: %s\n", guard.Describe(f))
			return
		}
	}
}
