package surface_test

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/glucoscope/glucoscope/pkg/health"
	"github.com/glucoscope/glucoscope/pkg/scoring"
	"github.com/glucoscope/glucoscope/pkg/surface"
)

func highRisk() surface.Report {
	return surface.NewReport(scoring.Default(), health.Metrics{
		Glucose: 180, BloodPressure: 100, SkinThickness: 25, Insulin: 100, BMI: 38,
		DiabetesPedigreeFunction: 0.5, Age: 70, Pregnancies: 2, PhysicalActivity: 0,
		FamilyHistory: true, SmokingStatus: true,
	})
}

func lowRisk() surface.Report {
	return surface.NewReport(scoring.Default(), health.Metrics{
		Glucose: 85, BloodPressure: 70, SkinThickness: 20, Insulin: 79, BMI: 21,
		DiabetesPedigreeFunction: 0.3, Age: 25, PhysicalActivity: 5,
	})
}

func sampleEntries() []surface.Entry {
	return []surface.Entry{
		{
			ID:         "b1c2",
			CreatedAt:  time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
			Assessment: scoring.Assessment{RiskScore: 0.45, RiskCategory: scoring.CategoryMedium},
		},
		{
			ID:         "a0f1",
			CreatedAt:  time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
			Assessment: scoring.Assessment{RiskScore: 0.124, RiskCategory: scoring.CategoryLow},
		},
	}
}

func TestTerminalRenderer_HighRisk(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	if err := r.Render(&buf, highRisk()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"Diabetes risk: 92.0% (High)",
		"Score breakdown:",
		"glucose",
		"Clinical adjustments:",
		"Elevated glucose x1.15",
		"glucose >= 140",
		"High blood pressure x1.05",
		"Recommendations:",
		"Quit Smoking [high]",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
	if strings.Contains(output, "\033[") {
		t.Error("unexpected ANSI codes with NO_COLOR set")
	}
}

func TestTerminalRenderer_NoAdjustments(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	if err := (&surface.TerminalRenderer{}).Render(&buf, lowRisk()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Diabetes risk: 12.4% (Low)") {
		t.Errorf("unexpected header:\n%s", output)
	}
	if !strings.Contains(output, "No clinical adjustments") {
		t.Error("expected 'No clinical adjustments' message")
	}
	if !strings.Contains(output, "Balanced Diet") {
		t.Error("expected general recommendations")
	}
}

func TestTerminalRenderer_ColorRespected(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")

	var buf bytes.Buffer
	if err := (&surface.TerminalRenderer{}).Render(&buf, highRisk()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(buf.String(), "\033[") {
		t.Error("expected ANSI escape codes when NO_COLOR is not set")
	}
}

func TestTerminalRenderer_History(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	r := &surface.TerminalRenderer{}

	var buf bytes.Buffer
	if err := r.RenderHistory(&buf, sampleEntries()); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "b1c2") || !strings.Contains(lines[1], "45.0%") || !strings.Contains(lines[1], "Medium") {
		t.Errorf("first row = %q", lines[1])
	}

	buf.Reset()
	if err := r.RenderHistory(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No assessments yet") {
		t.Errorf("empty history = %q", buf.String())
	}
}

func TestMarkdownRenderer(t *testing.T) {
	md := surface.BuildMarkdown(highRisk())

	for _, want := range []string{
		"## :red_circle: Diabetes Risk: High (92.0%)",
		"| Glucose | 180 mg/dL |",
		"| Smoker | yes |",
		"### Clinical Adjustments",
		"- **Obesity** (bmi >= 35): x1.12",
		"- HIGH **Monitor Blood Sugar**",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("expected %q in markdown:\n%s", want, md)
		}
	}

	if strings.Contains(surface.BuildMarkdown(lowRisk()), "Clinical Adjustments") {
		t.Error("low-risk report should have no adjustments section")
	}

	var buf bytes.Buffer
	if err := (&surface.MarkdownRenderer{}).RenderHistory(&buf, sampleEntries()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "| 2026-03-02 | 45.0% | :orange_circle: Medium | `b1c2` |") {
		t.Errorf("history table:\n%s", buf.String())
	}
}

func TestJSONRenderer(t *testing.T) {
	r := &surface.JSONRenderer{}

	var buf bytes.Buffer
	if err := r.Render(&buf, highRisk()); err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Explanation struct {
			RiskScore    float64 `json:"riskScore"`
			RiskCategory string  `json:"riskCategory"`
		} `json:"explanation"`
		Recommendations []any `json:"recommendations"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Explanation.RiskCategory != "High" || len(decoded.Recommendations) != 6 {
		t.Errorf("decoded = %+v", decoded)
	}

	buf.Reset()
	if err := r.RenderHistory(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("empty history = %q, want []", buf.String())
	}
}

func TestEntryDecodesRecordJSON(t *testing.T) {
	raw := `{"id":"x1","glucose":85,"riskScore":0.2,"riskCategory":"Low","createdAt":"2026-03-01T09:30:00Z"}`
	var e surface.Entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatal(err)
	}
	if e.ID != "x1" || e.RiskScore != 0.2 || e.RiskCategory != scoring.CategoryLow || e.CreatedAt.Day() != 1 {
		t.Errorf("entry = %+v", e)
	}
}

func TestForFormat(t *testing.T) {
	for _, f := range []string{"text", "json", "markdown", "md", ""} {
		if _, ok := surface.ForFormat(f); !ok {
			t.Errorf("ForFormat(%q) not supported", f)
		}
	}
	if _, ok := surface.ForFormat("yaml"); ok {
		t.Error("ForFormat(yaml) should be unsupported")
	}
}
