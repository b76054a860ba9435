package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cpusched/internal/workload"
)

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in.yaml> <out.data>",
		Short: "Rewrite a workload in the classic numeric format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wl, err := workload.Load(args[0])
			if err != nil {
				return err
			}
			fh, err := os.Create(args[1])
			if err != nil {
				return fmt.Errorf("creating %s: %w", args[1], err)
			}
			if err := workload.Write(fh, wl); err != nil {
				fh.Close()
				return fmt.Errorf("writing %s: %w", args[1], err)
			}
			logger.Info("workload converted", "from", args[0], "to", args[1], "processes", len(wl.Processes))
			return fh.Close()
		},
	}
}
