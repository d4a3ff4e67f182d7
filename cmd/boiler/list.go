package boiler

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boiler/boiler/internal/actions"
	"github.com/boiler/boiler/internal/capability"
	"github.com/boiler/boiler/internal/config"
	"github.com/boiler/boiler/internal/detectors"
	"github.com/boiler/boiler/internal/report"
)

func listCommand(use, short, title string, metas func() []capability.Meta) *cobra.Command {
	var namesOnly bool
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if namesOnly {
				for _, m := range metas() {
					fmt.Fprintln(out, m.Name)
				}
				return nil
			}
			return report.PrintCapabilities(out, title, metas(), plainOutput(cmd, config.FileConfig{}))
		},
	}
	cmd.Flags().BoolVar(&namesOnly, "names", false, "print names only, one per line")
	return cmd
}

func init() {
	rootCmd.AddCommand(
		listCommand("list-detectors", "List available detectors", "Detectors",
			func() []capability.Meta { return detectors.Default(nil).Metas() }),
		listCommand("list-actions", "List available actions", "Actions",
			func() []capability.Meta { return actions.Default().Metas() }),
	)
}
