package boiler

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	flagVerbose   int
	flagQuiet     bool
	flagNoColor   bool
	flagOverrides string

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the boiler CLI.
var rootCmd = &cobra.Command{
	Use:   "boiler",
	Short: "Keep repository boilerplate up to date",
	Long: "boiler inspects a repository, builds a context describing it (languages, license, " +
		"git metadata, ...) and regenerates CI workflows, license files and README headers from it.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

// Execute runs the boiler CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "log more (repeat for debug output)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().StringVar(&flagOverrides, "overrides", "", "override document replacing the bundled one")
}

func logLevel() slog.Level {
	switch {
	case flagQuiet:
		return slog.LevelError
	case flagVerbose >= 2:
		return slog.LevelDebug
	case flagVerbose == 1:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	if flagQuiet && flagVerbose > 0 {
		return fmt.Errorf("--quiet and --verbose are mutually exclusive")
	}
	h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel()})
	slog.SetDefault(slog.New(h))
	if flagNoColor {
		color.NoColor = true
	}
	return nil
}
