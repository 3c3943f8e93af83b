package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/sclangfmt/pkg/config"
)

const (
	tablePadding     = 2
	defaultTermWidth = 100
	minDescWidth     = 20
	enabledMark      = "on"
	disabledMark     = "off"
)

// FormatRulesTable renders rules grouped by stage, in the order given.
// Descriptions are truncated to fit termWidth.
func (s *Styles) FormatRulesTable(rules []config.RuleInfo, termWidth int) string {
	if len(rules) == 0 {
		return ""
	}
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}

	idWidth, nameWidth := len("ID"), len("NAME")
	for _, r := range rules {
		idWidth = max(idWidth, lipgloss.Width(r.ID))
		nameWidth = max(nameWidth, lipgloss.Width(r.Name))
	}
	stateWidth := len(disabledMark)
	descWidth := max(minDescWidth, termWidth-idWidth-nameWidth-stateWidth-3*tablePadding)

	var b strings.Builder
	b.WriteString(s.TableHeader.Render(row("ID", idWidth, "NAME", nameWidth, "ON", stateWidth, "DESCRIPTION")))
	b.WriteString("\n")

	stage := ""
	for _, r := range rules {
		if r.Stage != stage {
			stage = r.Stage
			b.WriteString(s.StageHeader.Render(stage))
			b.WriteString("\n")
		}

		state := s.Success.Render(enabledMark)
		if !r.Enabled {
			state = s.Dim.Render(disabledMark)
		}
		b.WriteString(row(s.RuleID.Render(r.ID), idWidth, r.Name, nameWidth, state, stateWidth,
			truncate(r.Description, descWidth)))
		b.WriteString("\n")
	}

	return b.String()
}

// row lays out the fixed-width columns. Widths are measured without ANSI
// sequences so styled cells line up.
func row(id string, idWidth int, name string, nameWidth int, state string, stateWidth int, desc string) string {
	return fmt.Sprintf("%s%s%s%s",
		pad(id, idWidth+tablePadding),
		pad(name, nameWidth+tablePadding),
		pad(state, stateWidth+tablePadding),
		desc)
}

func pad(cell string, width int) string {
	if gap := width - lipgloss.Width(cell); gap > 0 {
		return cell + strings.Repeat(" ", gap)
	}
	return cell
}

func truncate(text string, width int) string {
	if lipgloss.Width(text) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
