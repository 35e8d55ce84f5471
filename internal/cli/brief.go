package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newBriefCmd(g *globalOptions) *cobra.Command {
	var model string

	cmd := &cobra.Command{
		Use:   "brief <idea>",
		Short: "Expand an idea into a creative brief",
		Long: `Expand a short idea into a concise creative brief (title, one-liner, visual
style, colour and mood, references) using Google Gen AI.

Requires GOOGLE_API_KEY for the Gemini API backend. Set
DREAMBURST_GENAI_BACKEND=vertex-ai to use Vertex AI credentials instead.

Examples:
  dreamburst brief "a lighthouse keeper's last night, shot on 16mm"
  echo "neon koi in a flooded arcade" | dreamburst brief -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idea := strings.Join(args, " ")
			if idea == "-" {
				data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), 64*1024))
				if err != nil {
					return fmt.Errorf("failed to read idea from stdin: %w", err)
				}
				idea = string(data)
			}

			cfg, err := g.loadConfig()
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			if model != "" {
				cfg.Brief.Model = model
			}

			text, err := g.newBrief(cfg.Brief, g.logger).Generate(cmd.Context(), idea)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "Gen AI model (default: $DREAMBURST_BRIEF_MODEL or gemini-2.5-flash)")
	return cmd
}
