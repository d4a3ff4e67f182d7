package boiler

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boiler/boiler/internal/report"
	"github.com/boiler/boiler/internal/value"
)

func encodeContext(v value.Value, format string) (string, error) {
	switch format {
	case "yaml", "yml":
		return v.YAML()
	case "json":
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(b) + "\n", nil
	}
	return "", fmt.Errorf("unsupported format %q (want yaml or json)", format)
}

func init() {
	var (
		sel      selection
		format   string
		detected bool
	)
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Print the context templates are rendered from",
		Long: "Print the final context: detected values over the defaults, with the repository's " +
			"override and the local config applied. --detected stops after detection.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "yaml" && format != "yml" && format != "json" {
				return fmt.Errorf("unsupported format %q (want yaml or json)", format)
			}
			eng, cfg, fc, err := sel.setup()
			if err != nil {
				return err
			}
			var ctx value.Value
			if detected {
				ctx, err = eng.Detect(cmd.Context(), cfg)
			} else {
				plan, perr := eng.Resolve(cmd.Context(), cfg)
				ctx, err = plan.Context, perr
			}
			if err != nil {
				return err
			}
			doc, err := encodeContext(ctx, format)
			if err != nil {
				return err
			}
			if format == "yml" {
				format = "yaml"
			}
			return report.WriteDocument(cmd.OutOrStdout(), doc, format, plainOutput(cmd, fc))
		},
	}
	sel.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml | json")
	cmd.Flags().BoolVar(&detected, "detected", false, "print the detected context without overrides")
	rootCmd.AddCommand(cmd)
}
