package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/concordapp/concord/internal/followup"
)

var followupsWatch bool

var followupsCmd = &cobra.Command{
	Use:   "followups",
	Short: "List resolved sessions whose one-week review has come due",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := printDue(cmd, a); err != nil {
			return err
		}
		if !followupsWatch {
			return nil
		}

		changes, err := a.store.Watch(cmd.Context())
		if err != nil {
			return err
		}
		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case _, ok := <-changes:
				if !ok {
					return nil
				}
				if err := printDue(cmd, a); err != nil {
					return err
				}
			}
		}
	},
}

func printDue(cmd *cobra.Command, a *app) error {
	sessions, err := a.store.List()
	if err != nil {
		return err
	}
	due := followup.Due(sessions, time.Now())
	if len(due) == 0 {
		cmd.Println("nothing due for review")
		return nil
	}
	for _, s := range due {
		cmd.Printf("%s  resolved %s, review was due %s: how are the agreements holding?\n",
			s.ID, s.ResolvedAt.Format("2006-01-02"), s.ReviewAt.Format("2006-01-02"))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(followupsCmd)
	followupsCmd.Flags().BoolVarP(&followupsWatch, "watch", "w", false, "keep running and re-check when the store changes")
}
