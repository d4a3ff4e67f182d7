package boiler

import (
	"github.com/spf13/cobra"

	"github.com/boiler/boiler/internal/render"
	"github.com/boiler/boiler/internal/tui"
)

func init() {
	var sel selection
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review pending changes interactively before applying them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, cfg, _, err := sel.setup()
			if err != nil {
				return err
			}
			plan, err := eng.Resolve(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			preview := render.NewMemorySink(plan.Repo)
			if err := eng.Apply(cmd.Context(), plan, preview, cfg); err != nil {
				return err
			}
			doc, err := plan.Context.YAML()
			if err != nil {
				return err
			}
			return tui.Run(tui.Review{
				Identity: plan.Identity,
				Context:  doc,
				Changes:  preview.Changes(),
				Apply: func() ([]render.Change, error) {
					sink := render.NewFileSink(plan.Repo)
					err := eng.Apply(cmd.Context(), plan, sink, cfg)
					return sink.Changes(), err
				},
			})
		},
	}
	sel.register(cmd)
	rootCmd.AddCommand(cmd)
}
