package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/glucoscope/glucoscope/pkg/advice"
	"github.com/glucoscope/glucoscope/pkg/scoring"
)

// MarkdownRenderer produces a shareable Markdown report.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(w io.Writer, report Report) error {
	_, err := io.WriteString(w, BuildMarkdown(report))
	return err
}

func (r *MarkdownRenderer) RenderHistory(w io.Writer, entries []Entry) error {
	var sb strings.Builder
	sb.WriteString("## Assessment History\n\n")
	if len(entries) == 0 {
		sb.WriteString("_No assessments yet._\n")
	} else {
		sb.WriteString("| Date | Risk | Category | ID |\n|------|------|----------|----|\n")
		for _, e := range entries {
			fmt.Fprintf(&sb, "| %s | %s | %s %s | `%s` |\n",
				e.CreatedAt.UTC().Format("2006-01-02"), percent(e.RiskScore),
				categoryIcon(e.RiskCategory), e.RiskCategory, e.ID)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// BuildMarkdown formats a report as Markdown.
func BuildMarkdown(report Report) string {
	exp := report.Explanation
	m := report.Metrics
	var sb strings.Builder

	fmt.Fprintf(&sb, "## %s Diabetes Risk: %s (%s)\n\n",
		categoryIcon(exp.RiskCategory), exp.RiskCategory, percent(exp.RiskScore))

	sb.WriteString("### Health Metrics\n\n")
	sb.WriteString("| Metric | Value |\n|--------|-------|\n")
	fmt.Fprintf(&sb, "| Glucose | %g mg/dL |\n", m.Glucose)
	fmt.Fprintf(&sb, "| Blood Pressure | %g mm Hg |\n", m.BloodPressure)
	fmt.Fprintf(&sb, "| BMI | %g |\n", m.BMI)
	fmt.Fprintf(&sb, "| Age | %d |\n", m.Age)
	fmt.Fprintf(&sb, "| Active Days / Week | %d |\n", m.PhysicalActivity)
	fmt.Fprintf(&sb, "| Family History | %s |\n", yesNo(m.FamilyHistory))
	fmt.Fprintf(&sb, "| Smoker | %s |\n", yesNo(m.SmokingStatus))
	sb.WriteString("\n")

	if len(exp.Boosts) > 0 {
		sb.WriteString("### Clinical Adjustments\n\n")
		for _, b := range exp.Boosts {
			fmt.Fprintf(&sb, "- **%s** (%s): x%.2f, %s to %s\n",
				b.Name, b.Tier, b.Factor, percent(b.Before), percent(b.After))
		}
		sb.WriteString("\n")
	}

	if len(report.Recommendations) > 0 {
		sb.WriteString("### Recommendations\n\n")
		for _, rec := range report.Recommendations {
			fmt.Fprintf(&sb, "- %s **%s**: %s\n", priorityLabel(rec.Priority), rec.Title, rec.Description)
		}
	}

	return sb.String()
}

func categoryIcon(c scoring.Category) string {
	switch c {
	case scoring.CategoryHigh:
		return ":red_circle:"
	case scoring.CategoryMedium:
		return ":orange_circle:"
	default:
		return ":green_circle:"
	}
}

func priorityLabel(p advice.Priority) string {
	switch p {
	case advice.PriorityHigh:
		return "HIGH"
	case advice.PriorityMedium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
