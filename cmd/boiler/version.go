package boiler

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boiler/boiler/internal/config"
	"github.com/boiler/boiler/internal/update"
)

func init() {
	var (
		check        bool
		doSelfUpdate bool
	)
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version and optionally look for a newer release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "boiler %s\n", currentVersion())

			global, _ := config.LoadGlobal()
			updates := global.GetUpdates()
			repository := updates.GetRepository()

			if doSelfUpdate {
				latest, err := selfUpdate(repository)
				if err != nil {
					return fmt.Errorf("self-update: %w", err)
				}
				fmt.Fprintf(out, "Updated to %s\n", latest)
				return nil
			}
			if !check || !updates.IsCheckEnabled() {
				return nil
			}
			latest, newer, err := update.NewChecker(repository).Check(currentVersion(), false)
			if err != nil {
				return err
			}
			switch {
			case newer:
				fmt.Fprintf(out, "A newer release is available: %s (run `boiler version --self-update`)\n", latest)
			case latest != "":
				fmt.Fprintln(out, "You are running the latest release")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "check GitHub for a newer release")
	cmd.Flags().BoolVar(&doSelfUpdate, "self-update", false, "update boiler to the latest release")
	rootCmd.AddCommand(cmd)
}
