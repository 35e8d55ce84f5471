// Package cli provides the command-line interface for dreamburst.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/dreamburst/internal/brief"
	"github.com/jmylchreest/dreamburst/internal/config"
	"github.com/jmylchreest/dreamburst/internal/version"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	verbose bool
	quiet   bool
	logJSON bool

	logger hclog.Logger
	// loadConfig reads runtime configuration. Replaced in tests.
	loadConfig func() (config.Config, error)
	// newBrief builds the brief generator. Replaced in tests.
	newBrief func(config.BriefConfig, hclog.Logger) brief.Generator
}

// NewRootCmd builds the dreamburst command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&globalOptions{
		logger:     hclog.NewNullLogger(),
		loadConfig: config.FromEnv,
		newBrief: func(cfg config.BriefConfig, logger hclog.Logger) brief.Generator {
			return brief.New(cfg, logger)
		},
	})
}

func newRootCmd(g *globalOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dreamburst",
		Short: "Infer colour palettes and photographic looks from images",
		Long: `dreamburst analyses a reference image and reports a five-role colour palette
(primary, secondary, accent, neutral light, neutral dark) together with
photographic look descriptors: white balance, exposure, cool/warm balance
and ready-to-use lighting recipes.

It can also expand a short idea into a creative brief, and serve both
features over HTTP for a web front end.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if g.verbose && g.quiet {
				return errors.New("--verbose and --quiet cannot be used together")
			}
			g.logger = newLogger(cmd.ErrOrStderr(), g.verbose, g.quiet, g.logJSON)
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&g.logJSON, "log-json", false, "write logs as JSON")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newExtractCmd(g))
	rootCmd.AddCommand(newBriefCmd(g))
	rootCmd.AddCommand(newServeCmd(g))

	return rootCmd
}

// newLogger builds the application logger. Logs always go to w (stderr) so
// stdout stays clean for command output.
func newLogger(w io.Writer, verbose, quiet, jsonFormat bool) hclog.Logger {
	level := hclog.Info
	switch {
	case verbose:
		level = hclog.Debug
	case quiet:
		level = hclog.Warn
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "dreamburst",
		Level:      level,
		Output:     w,
		JSONFormat: jsonFormat,
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
