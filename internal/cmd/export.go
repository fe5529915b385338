package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/concordapp/concord/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sessions as calendar or CSV artifacts",
}

var exportICSCmd = &cobra.Command{
	Use:   "ics <session-id>",
	Short: "Write a calendar invite for a session's confirmed time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := a.ctrl.Get(args[0])
		if err != nil {
			return err
		}
		if !s.Schedule.Confirmed {
			return fmt.Errorf("session %s has no confirmed time to export", s.ID)
		}

		title := fmt.Sprintf("Conversation: %s and %s", s.Initiator, s.Recipient)
		description := s.Qualify.Statement
		if s.Schedule.Descriptor != "" {
			description = fmt.Sprintf("%s\nWhere: %s", description, s.Schedule.Descriptor)
		}
		data := export.Event(title, description, s.Schedule.Date, s.Schedule.Time)

		path, err := writeExport(a, fmt.Sprintf("%s.ics", s.ID), data)
		if err != nil {
			return err
		}
		cmd.Printf("calendar invite written to %s\n", path)
		return nil
	},
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Write all resolved sessions as a CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		sessions, err := a.store.List()
		if err != nil {
			return err
		}
		data, err := export.ResolvedCSV(sessions)
		if err != nil {
			return err
		}

		path, err := writeExport(a, "resolved.csv", data)
		if err != nil {
			return err
		}
		cmd.Printf("resolved sessions written to %s\n", path)
		return nil
	},
}

func init() {
	exportCmd.AddCommand(exportICSCmd, exportCSVCmd)
	rootCmd.AddCommand(exportCmd)
}
