package style

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/molssi-seamm/anistep/pkg/run"
)

// statusStyle returns the pterm style for a step status
func statusStyle(status run.Status) *pterm.Style {
	switch status {
	case run.StatusOK:
		return pterm.NewStyle(pterm.FgGreen)
	case run.StatusFailed:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case run.StatusSkipped:
		return pterm.NewStyle(pterm.FgYellow)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// RenderStepLine renders one step of the run record
func RenderStepLine(s run.StepResult) string {
	status := fmt.Sprintf("%-7s", string(s.Status))
	line := fmt.Sprintf("    %s : %d %s", statusStyle(s.Status).Sprint(status), s.Index+1, s.Title)
	if s.Message != "" {
		line += " : " + firstLine(s.Message)
	}
	return line
}

// RenderRunReport renders the full run record for the terminal
func RenderRunReport(title string, result *run.Result) string {
	var b strings.Builder

	header := TitleStyle.Render(title)
	detail := MutedStyle.Render(runDetail(result))
	b.WriteString(HeaderStyle.Render(header+"\n"+detail) + "\n")

	for _, s := range result.Steps {
		b.WriteString(RenderStepLine(s) + "\n")
	}

	if n := skippedCount(result.Steps); n > 0 {
		b.WriteString(WarningStyle.Render(fmt.Sprintf("%d of %d steps did not run", n, len(result.Steps))) + "\n")
	}

	if result.Success {
		b.WriteString(SuccessStyle.Render("Run completed") + "\n")
	} else {
		b.WriteString(ErrorStyle.Render("Run failed") + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// RenderRunReportPlain renders the run record without any styling
func RenderRunReportPlain(title string, result *run.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s)\n", title, runDetail(result))
	for _, s := range result.Steps {
		fmt.Fprintf(&b, "    %-7s : %d %s", string(s.Status), s.Index+1, s.Title)
		if s.Message != "" {
			b.WriteString(" : " + firstLine(s.Message))
		}
		b.WriteString("\n")
	}

	if result.Success {
		b.WriteString("Run completed\n")
	} else {
		b.WriteString("Run failed\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func runDetail(result *run.Result) string {
	return fmt.Sprintf("run %s, executor %s, %s", shortID(result.ID), result.Executor, result.Duration)
}

func skippedCount(steps []run.StepResult) int {
	n := 0
	for _, s := range steps {
		if s.Status == run.StatusSkipped {
			n++
		}
	}
	return n
}

// shortID abbreviates a uuid for display
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// firstLine truncates multiline worker messages for the step listing
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
