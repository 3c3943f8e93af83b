package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/sclangfmt/internal/ui/pretty"
	"github.com/yaklabco/sclangfmt/pkg/config"
	"github.com/yaklabco/sclangfmt/pkg/format"
	"github.com/yaklabco/sclangfmt/pkg/format/rules"
)

type rulesFlags struct {
	format string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Stage       string   `json:"stage"`
	Enabled     bool     `json:"enabled"`
	Tags        []string `json:"tags,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List formatting rules",
		Long: `List every formatting rule in pipeline order with its ID, name,
stage, whether it runs by default, and a short description.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos := rules.RuleInfos(format.DefaultRegistry)

			switch flags.format {
			case formatJSON:
				return outputRulesJSON(cmd.OutOrStdout(), infos)
			case "", "text":
				styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.OutOrStdout()))
				fmt.Fprint(cmd.OutOrStdout(), styles.FormatRulesTable(infos, terminalWidth(cmd.OutOrStdout())))
				return nil
			default:
				return usageError("unknown format %q; valid formats: text, json", flags.format)
			}
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

// outputRulesJSON writes rules as a JSON array.
func outputRulesJSON(w io.Writer, infos []config.RuleInfo) error {
	out := make([]ruleInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, ruleInfo{
			ID:          info.ID,
			Name:        info.Name,
			Description: info.Description,
			Stage:       info.Stage,
			Enabled:     info.Enabled,
			Tags:        info.Tags,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}

// terminalWidth returns the width of w when it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
