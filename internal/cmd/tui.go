package cmd

import (
	"github.com/spf13/cobra"

	"github.com/concordapp/concord/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive session board",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		actor, err := a.actor(cmd)
		if err != nil {
			return err
		}
		return tui.Run(a.store, actor)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
