package cli

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"cpusched/internal/sched"
)

func newPoliciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "List the supported scheduling policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Code", "Policy", "Preemptive"})
			for _, p := range sched.Policies {
				preempt := "optional"
				if p == sched.RoundRobin {
					preempt = "by quantum"
				}
				table.Append([]string{strings.ToLower(p.String()), p.Describe(), preempt})
			}
			table.Render()
			return nil
		},
	}
}
