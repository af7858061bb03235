package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/glucoscope/glucoscope/pkg/advice"
	"github.com/glucoscope/glucoscope/pkg/scoring"
)

// TerminalRenderer renders reports as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func categoryColor(c scoring.Category) string {
	if noColor() {
		return ""
	}
	switch c {
	case scoring.CategoryLow:
		return colorGreen
	case scoring.CategoryMedium:
		return colorYellow
	case scoring.CategoryHigh:
		return colorRed
	default:
		return ""
	}
}

func priorityColor(p advice.Priority) string {
	switch p {
	case advice.PriorityHigh:
		return colorRed
	case advice.PriorityMedium:
		return colorYellow
	default:
		return ""
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, report Report) error {
	exp := report.Explanation
	cc := categoryColor(exp.RiskCategory)

	fmt.Fprintf(w, "%s\n\n",
		bold(fmt.Sprintf("Diabetes risk: %s (%s)",
			colored(percent(exp.RiskScore), cc), colored(string(exp.RiskCategory), cc))))

	fmt.Fprintln(w, "Score breakdown:")
	for _, c := range exp.Contributions {
		if c.Contribution == 0 {
			continue
		}
		sign := "+"
		if c.Contribution < 0 {
			sign = ""
		}
		fmt.Fprintf(w, "  %-26s %8.2f  (%s%.3f)\n", c.Feature, c.Value, sign, c.Contribution)
	}
	fmt.Fprintf(w, "  %s\n\n", dim(fmt.Sprintf("linear score %.3f, base probability %s",
		exp.LinearScore, percent(exp.BaseProbability))))

	if len(exp.Boosts) > 0 {
		fmt.Fprintln(w, "Clinical adjustments:")
		for _, b := range exp.Boosts {
			fmt.Fprintf(w, "  %s %s x%.2f  %s -> %s\n",
				colored("●", colorRed), bold(b.Name), b.Factor, percent(b.Before), percent(b.After))
			fmt.Fprintf(w, "      %s\n", dim(b.Tier))
		}
		fmt.Fprintln(w)
	} else {
		fmt.Fprintln(w, "No clinical adjustments.")
		fmt.Fprintln(w)
	}

	if len(report.Recommendations) > 0 {
		fmt.Fprintln(w, "Recommendations:")
		for _, rec := range report.Recommendations {
			fmt.Fprintf(w, "  • %s %s\n", bold(rec.Title), colored("["+string(rec.Priority)+"]", priorityColor(rec.Priority)))
			for _, line := range wrapText(rec.Description, 70) {
				fmt.Fprintf(w, "    %s\n", dim(line))
			}
		}
		fmt.Fprintln(w)
	}

	return nil
}

func (r *TerminalRenderer) RenderHistory(w io.Writer, entries []Entry) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No assessments yet.")
		return nil
	}

	fmt.Fprintln(w, bold(fmt.Sprintf("%-36s  %-16s  %6s  %s", "ID", "DATE", "RISK", "CATEGORY")))
	for _, e := range entries {
		fmt.Fprintf(w, "%-36s  %-16s  %6s  %s\n",
			e.ID,
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			percent(e.RiskScore),
			colored(string(e.RiskCategory), categoryColor(e.RiskCategory)))
	}
	return nil
}

// wrapText wraps a string at the given width, returning lines.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]

	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
		} else {
			current += " " + word
		}
	}
	lines = append(lines, current)
	return lines
}
