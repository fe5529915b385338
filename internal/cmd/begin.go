package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/concordapp/concord/internal/triage"
)

var (
	beginHeat       string
	beginReturnTime string
	beginRules      string
)

var beginCmd = &cobra.Command{
	Use:   "begin",
	Short: "Assess the heat and open a session (or record a pause)",
	Long: `Begin starts the pre-session triage. You rate how heated things are:
cool, tense, hot, or crisis.

At crisis level no session is opened. Instead a pause agreement (when
you'll return to the issue, and any ground rules) is captured and
exported as a calendar file. At any other level a session is created
with you as initiator and the other participant as recipient.`,
	RunE: runBegin,
}

func init() {
	rootCmd.AddCommand(beginCmd)

	beginCmd.Flags().StringVar(&beginHeat, "heat", "", "heat level: crisis, hot, tense or cool (required)")
	beginCmd.Flags().StringVar(&beginReturnTime, "return-time", "", "crisis only: when you'll return to the issue")
	beginCmd.Flags().StringVar(&beginRules, "rules", "", "crisis only: ground rules for the pause")
	_ = beginCmd.MarkFlagRequired("heat")
}

func runBegin(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	level, err := triage.ParseHeat(beginHeat)
	if err != nil {
		return err
	}

	actor, err := a.actor(cmd)
	if err != nil {
		return err
	}
	other, ok := a.cfg.Other(string(actor))
	if !ok {
		return fmt.Errorf("no configured partner for %s", actor)
	}

	tr := triage.New(a.store, a.bus)
	res, err := tr.Begin(actor, other, level, triage.PauseAgreement{
		ReturnTime:  beginReturnTime,
		GroundRules: beginRules,
	})
	if err != nil {
		return err
	}

	if res.Artifact != nil {
		path, err := writeExport(a, fmt.Sprintf("pause-%s.ics", time.Now().Format("20060102-150405")), res.Artifact)
		if err != nil {
			return err
		}
		cmd.Printf("pause agreement recorded; calendar file written to %s\n", path)
		cmd.Println("no session was opened. Come back when things have cooled.")
		return nil
	}

	cmd.Printf("session %s opened: %s raises an issue with %s\n", res.Session.ID, actor, other)
	cmd.Printf("next: concord issue %s --as %s --statement ... --details ...\n", res.Session.ID, actor)
	return nil
}

// writeExport writes an artifact into the export directory.
func writeExport(a *app, name string, data []byte) (string, error) {
	if err := os.MkdirAll(a.cfg.Paths.ExportDir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(a.cfg.Paths.ExportDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
