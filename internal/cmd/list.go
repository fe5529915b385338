package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/concordapp/concord/internal/util"
)

var listAll bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "include resolved sessions")
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	sessions, err := a.store.List()
	if err != nil {
		return err
	}

	actor, err := a.actor(cmd)
	if err != nil {
		return err
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTEP\tINITIATOR\tRECIPIENT\tCREATED\tTURN\tISSUE")
	shown := 0
	for _, s := range sessions {
		if s.Resolved() && !listAll {
			continue
		}
		turn := ""
		if s.TurnFor(actor) {
			turn = "yours"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.Step, s.Initiator, s.Recipient, s.CreatedAt.Format("2006-01-02"), turn,
			util.Ellipsize(s.Qualify.Statement, 40))
		shown++
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if shown == 0 {
		cmd.Println("no sessions. Start one with: concord begin --heat cool")
	}
	return nil
}
