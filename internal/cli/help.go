package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/sclangfmt/internal/ui/pretty"
)

// flagGroupAnnotation names the help section a flag is listed under.
const flagGroupAnnotation = "sclangfmt_help_group"

// Help sections for the format flags.
const (
	groupMode   = "Mode"
	groupLayout = "Layout"
	groupRules  = "Rules"
	groupFiles  = "Files"
	groupOutput = "Output"
)

// flagGroupOrder is the order sections appear in help output. Flags
// without a group come last.
//
//nolint:gochecknoglobals // read-only lookup table
var flagGroupOrder = []string{groupMode, groupLayout, groupRules, groupFiles, groupOutput}

// setFlagGroup lists the named flags under group in help output.
func setFlagGroup(flags *pflag.FlagSet, group string, names ...string) {
	for _, name := range names {
		if err := flags.SetAnnotation(name, flagGroupAnnotation, []string{group}); err != nil {
			panic(fmt.Sprintf("flag group %s: %v", group, err))
		}
	}
}

// flagSection is one titled block of flags in help output.
type flagSection struct {
	Title string
	Flags *pflag.FlagSet
}

// groupFlags splits flags into sections in flagGroupOrder. Ungrouped flags
// form a final section, titled "Flags" when no flag is grouped.
func groupFlags(flags *pflag.FlagSet) []flagSection {
	sets := make(map[string]*pflag.FlagSet)
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		group := ""
		if names := f.Annotations[flagGroupAnnotation]; len(names) > 0 {
			group = names[0]
		}
		set, ok := sets[group]
		if !ok {
			set = pflag.NewFlagSet(group, pflag.ContinueOnError)
			sets[group] = set
		}
		set.AddFlag(f)
	})

	var sections []flagSection
	for _, group := range flagGroupOrder {
		if set, ok := sets[group]; ok {
			sections = append(sections, flagSection{Title: group + " Flags", Flags: set})
		}
	}
	if set, ok := sets[""]; ok {
		title := "Other Flags"
		if len(sections) == 0 {
			title = "Flags"
		}
		sections = append(sections, flagSection{Title: title, Flags: set})
	}
	return sections
}

// helpStyles holds the styles used in help output.
type helpStyles struct {
	Command    lipgloss.Style
	Heading    lipgloss.Style
	Subcommand lipgloss.Style
	Flag       lipgloss.Style
	Example    lipgloss.Style
	Dim        lipgloss.Style
}

func newHelpStyles(styles *pretty.Styles) *helpStyles {
	return &helpStyles{
		Command:    styles.Bold,
		Heading:    styles.StageHeader,
		Subcommand: styles.DiffAdd,
		Flag:       styles.DiffHunk,
		Example:    styles.Dim,
		Dim:        styles.Dim,
	}
}

// HelpFormatter renders styled help for cobra commands.
type HelpFormatter struct {
	styles *helpStyles
}

// NewHelpFormatter creates a help formatter for output written to writer.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	colorEnabled := pretty.IsColorEnabled(colorMode, writer)
	return &HelpFormatter{styles: newHelpStyles(pretty.NewStyles(colorEnabled))}
}

func (h *HelpFormatter) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"styleCommand":            h.styles.Command.Render,
		"styleHeading":            h.styles.Heading.Render,
		"styleSubcommand":         h.styles.Subcommand.Render,
		"styleExample":            h.styles.Example.Render,
		"styleDim":                h.styles.Dim.Render,
		"styleFlagsUsage":         h.styleFlagsUsage,
		"flagSections":            h.flagSections,
		"join":                    strings.Join,
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

const usageTemplate = `{{ styleHeading "Usage:" }}
  {{if .Runnable}}{{ styleCommand .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ styleCommand .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ styleHeading "Aliases:" }}
  {{ styleDim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ styleHeading "Examples:" }}
{{ styleExample .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ styleHeading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ styleSubcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}{{ flagSections .LocalFlags }}{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ styleHeading "Global Flags:" }}
{{ styleFlagsUsage .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ styleCommand (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{if or .Runnable .HasSubCommands}}{{ styleCommand .CommandPath }}{{if .Version}} {{ styleDim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}` + usageTemplate

// flagSections renders the local flags as one titled block per group.
func (h *HelpFormatter) flagSections(flags *pflag.FlagSet) string {
	var b strings.Builder
	for _, section := range groupFlags(flags) {
		usage := h.styleFlagsUsage(section.Flags)
		if usage == "" {
			continue
		}
		b.WriteString("\n\n")
		b.WriteString(h.styles.Heading.Render(section.Title + ":"))
		b.WriteString("\n")
		b.WriteString(usage)
	}
	return b.String()
}

// styleFlagsUsage styles each line of a flag set's usage text.
func (h *HelpFormatter) styleFlagsUsage(flags *pflag.FlagSet) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

// styleFlagLine styles "  -w, --write type   description".
func (h *HelpFormatter) styleFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	flagPart, desc, ok := splitFlagLine(trimmed)
	if !ok {
		return line
	}

	indent := line[:len(line)-len(trimmed)]
	return indent + h.styleFlagPart(flagPart) + "   " + desc
}

// splitFlagLine splits a usage line at the first run of two or more spaces.
func splitFlagLine(line string) (string, string, bool) {
	idx := strings.Index(line, "  ")
	if idx < 0 {
		return "", "", false
	}
	desc := strings.TrimLeft(line[idx:], " ")
	if desc == "" {
		return "", "", false
	}
	return line[:idx], desc, true
}

// styleFlagPart colors flag names and dims the value type.
func (h *HelpFormatter) styleFlagPart(flagPart string) string {
	tokens := strings.Fields(flagPart)
	for i, token := range tokens {
		if !strings.HasPrefix(token, "-") {
			tokens[i] = h.styles.Dim.Render(token)
			continue
		}
		name, comma := strings.CutSuffix(token, ",")
		tokens[i] = h.styles.Flag.Render(name)
		if comma {
			tokens[i] += ","
		}
	}
	return strings.Join(tokens, " ")
}

// ApplyToCommand installs styled help on cmd and its subcommands. Colors
// are decided when help is printed, from --color and the output stream.
func ApplyToCommand(cmd *cobra.Command) {
	render := func(command *cobra.Command, name, text string) error {
		h := NewHelpFormatter(colorMode(command), command.OutOrStdout())
		tmpl, err := template.New(name).Funcs(h.templateFuncs()).Parse(text)
		if err != nil {
			return fmt.Errorf("parse %s template: %w", name, err)
		}
		return tmpl.Execute(command.OutOrStdout(), command)
	}

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return render(command, "usage", usageTemplate)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := render(command, "help", helpTemplate); err != nil {
			command.PrintErrln(err)
		}
	})
}

// rpad pads str with spaces to padding columns.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

// trimTrailingWhitespaces removes trailing spaces and tabs from each line.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
