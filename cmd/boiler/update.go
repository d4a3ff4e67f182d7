package boiler

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/boiler/boiler/internal/audit"
	"github.com/boiler/boiler/internal/report"
)

func init() {
	var (
		sel      selection
		dryRun   bool
		showDiff bool
		logRun   bool
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Regenerate boilerplate files from the detected context",
		Args:  cobra.NoArgs,
		Example: `
# Update the repository in the current directory
boiler update

# Preview the changes without touching the working tree
boiler update --dry-run --diff

# Only refresh the license and README header
boiler update --enable-actions license,readme`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, cfg, fc, err := sel.setup()
			if err != nil {
				return err
			}
			cfg.DryRun = dryRun

			res, runErr := eng.Update(cmd.Context(), cfg, nil)
			if res.Identity == "" {
				return runErr
			}

			out := cmd.OutOrStdout()
			plain := plainOutput(cmd, fc)
			if showDiff {
				report.PrintDiffs(out, res.Changes, plain)
			}
			report.PrintChanges(out, res.Changes, report.PrintOptions{NoColor: plain, Duration: res.Duration, DryRun: dryRun})

			if logRun || (fc.Audit != nil && *fc.Audit) {
				rec := audit.CreateRunRecord(res.Repo.Root, res.Identity, dryRun, res.Detectors, res.ActionNames(), res.Changes, res.Duration)
				if err := audit.NewAuditLog(res.Repo.Root).LogRun(rec); err != nil {
					slog.Warn("audit log not written", "err", err)
				}
			}
			return runErr
		},
	}
	sel.register(cmd)
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "compute changes without writing files")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print a unified diff of every changed file")
	cmd.Flags().BoolVar(&logRun, "audit", false, "append a record of this run to the audit log")
	rootCmd.AddCommand(cmd)
}
