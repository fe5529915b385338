package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/concordapp/concord/internal/advice"
)

var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a session in detail, with tips for your next move",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.ctrl.Get(args[0])
	if err != nil {
		return err
	}

	actor, err := a.actor(cmd)
	if err != nil {
		return err
	}

	cmd.Printf("session %s  (%s raises, %s receives)\n", s.ID, s.Initiator, s.Recipient)
	cmd.Printf("step: %s", s.Step)
	if s.TurnFor(actor) {
		cmd.Print("  (your move)")
	}
	cmd.Println()

	printField(cmd, "issue", s.Qualify.Statement)
	printField(cmd, "details", s.Qualify.Details)
	printField(cmd, "review", s.Review.Summary)
	printField(cmd, "questions", s.Reflection.Questions)
	printField(cmd, "self-critique", s.Reflection.SelfCritique)
	printField(cmd, "prompt", s.Reflection.ReconciliationPrompt)
	if s.Schedule.Date != "" {
		line := s.Schedule.Date + " " + s.Schedule.Time
		if s.Schedule.Descriptor != "" {
			line += " (" + s.Schedule.Descriptor + ")"
		}
		if !s.Schedule.Confirmed {
			line += " [unconfirmed]"
		}
		printField(cmd, "scheduled", line)
	}
	printField(cmd, "agreements", s.Outcome.Decisions)
	printField(cmd, "apology", s.Outcome.Apology)
	printField(cmd, "follow-up", s.Outcome.FollowUpPlan)

	if s.Resolved() {
		cmd.Println()
		cmd.Println("recap:")
		for _, line := range strings.Split(s.Recap, "\n") {
			cmd.Printf("  %s\n", line)
		}
		if s.ReviewAt != nil {
			cmd.Printf("review on: %s\n", s.ReviewAt.Format("2006-01-02"))
		}
		if s.Testimony.Text != "" {
			cmd.Printf("testimony (%s): %s\n", s.Testimony.Visibility, s.Testimony.Text)
		}
		return nil
	}

	role, ok := s.RoleOf(actor)
	if !ok {
		return nil
	}
	pc, ok := a.cfg.Participant(string(actor))
	if !ok {
		return nil
	}
	tips := advice.TipsFor(advice.Disposition(pc.PrimaryDisposition), s.Step, role)
	if len(tips) > 0 {
		cmd.Println()
		cmd.Println("tips:")
		for _, t := range tips {
			cmd.Printf("  - %s\n", t)
		}
	}
	return nil
}

func printField(cmd *cobra.Command, label, value string) {
	if value == "" {
		return
	}
	cmd.Printf("%-13s %s\n", label+":", indentContinuations(value))
}

// indentContinuations keeps multi-line values aligned under their label.
func indentContinuations(s string) string {
	return strings.ReplaceAll(s, "\n", "\n              ")
}
