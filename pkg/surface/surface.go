// Package surface renders glucoscope results for the CLI.
// Implementations handle different output targets: terminal, Markdown, JSON.
package surface

import (
	"fmt"
	"io"
	"time"

	"github.com/glucoscope/glucoscope/pkg/advice"
	"github.com/glucoscope/glucoscope/pkg/health"
	"github.com/glucoscope/glucoscope/pkg/scoring"
)

// Report is everything shown for a single assessment.
type Report struct {
	Metrics         health.Metrics          `json:"metrics"`
	Explanation     scoring.Explanation     `json:"explanation"`
	Recommendations []advice.Recommendation `json:"recommendations"`
}

// NewReport scores m with engine and attaches recommendations.
func NewReport(engine *scoring.Engine, m health.Metrics) Report {
	return Report{
		Metrics:         m,
		Explanation:     engine.Explain(m),
		Recommendations: advice.For(m),
	}
}

// Entry is one row of assessment history. It decodes directly from a stored
// record's JSON.
type Entry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	scoring.Assessment
}

// Renderer produces formatted output for reports and history.
type Renderer interface {
	// Render writes a single assessment report.
	Render(w io.Writer, report Report) error
	// RenderHistory writes entries in the order given.
	RenderHistory(w io.Writer, entries []Entry) error
}

// ForFormat returns the renderer for an --output value.
func ForFormat(format string) (Renderer, bool) {
	switch format {
	case "text", "":
		return &TerminalRenderer{}, true
	case "json":
		return &JSONRenderer{}, true
	case "markdown", "md":
		return &MarkdownRenderer{}, true
	default:
		return nil, false
	}
}

func percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}
