package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/glucoscope/glucoscope/internal/assessment"
	"github.com/glucoscope/glucoscope/internal/objstore"
	"github.com/glucoscope/glucoscope/internal/store"
	"github.com/glucoscope/glucoscope/pkg/health"
	"github.com/glucoscope/glucoscope/pkg/scoring"
	"github.com/glucoscope/glucoscope/pkg/surface"
	"github.com/glucoscope/glucoscope/pkg/validate"
)

// metricFlag binds a command-line flag to a metrics field.
type metricFlag struct {
	flag  string
	field string
	kind  validate.Kind
	usage string
}

var metricFlags = []metricFlag{
	{"glucose", health.FieldGlucose, validate.Number, "Plasma glucose, mg/dL"},
	{"blood-pressure", health.FieldBloodPressure, validate.Number, "Diastolic blood pressure, mm Hg"},
	{"skin-thickness", health.FieldSkinThickness, validate.Number, "Triceps skin fold thickness, mm"},
	{"insulin", health.FieldInsulin, validate.Number, "2-hour serum insulin, mu U/ml"},
	{"bmi", health.FieldBMI, validate.Number, "Body mass index"},
	{"pedigree", health.FieldDiabetesPedigreeFunction, validate.Number, "Diabetes pedigree function"},
	{"age", health.FieldAge, validate.Integer, "Age in years"},
	{"pregnancies", health.FieldPregnancies, validate.Integer, "Number of pregnancies"},
	{"activity", health.FieldPhysicalActivity, validate.Integer, "Physically active days per week"},
	{"family-history", health.FieldFamilyHistory, validate.Boolean, "Diabetes in the immediate family"},
	{"smoker", health.FieldSmokingStatus, validate.Boolean, "Current smoker"},
}

type scoreOpts struct {
	inputPath string
	outputFmt string
	storeDir  string
}

func newScoreCmd() *cobra.Command {
	var opts scoreOpts

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score diabetes risk for one set of health metrics",
		Long: `Computes the risk score, category, breakdown and recommendations for a set of
health metrics given as flags or as a JSON object (--input, "-" for stdin).
With --store the assessment is also saved to a local record directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := scoreInput(cmd.Flags(), opts.inputPath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return runScore(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), raw, opts)
		},
	}

	f := cmd.Flags()
	for _, mf := range metricFlags {
		switch mf.kind {
		case validate.Integer:
			f.Int(mf.flag, 0, mf.usage)
		case validate.Boolean:
			f.Bool(mf.flag, false, mf.usage)
		default:
			f.Float64(mf.flag, 0, mf.usage)
		}
	}
	f.StringVar(&opts.inputPath, "input", "", `Read metrics from a JSON file ("-" for stdin) instead of flags`)
	f.StringVar(&opts.outputFmt, "output", "text", "Output format: text, json or markdown")
	f.StringVar(&opts.storeDir, "store", "", "Save the assessment to this local record directory")

	return cmd
}

// scoreInput returns the raw JSON object to score. Numeric flags that were not
// set are left out so validation reports them as missing; boolean flags
// default to false.
func scoreInput(f *pflag.FlagSet, inputPath string, stdin io.Reader) ([]byte, error) {
	switch inputPath {
	case "":
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	default:
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
		return data, nil
	}

	values := make(map[string]any, len(metricFlags))
	for _, mf := range metricFlags {
		if mf.kind != validate.Boolean && !f.Changed(mf.flag) {
			continue
		}
		var (
			v   any
			err error
		)
		switch mf.kind {
		case validate.Integer:
			v, err = f.GetInt(mf.flag)
		case validate.Boolean:
			v, err = f.GetBool(mf.flag)
		default:
			v, err = f.GetFloat64(mf.flag)
		}
		if err != nil {
			return nil, err
		}
		values[mf.field] = v
	}
	return json.Marshal(values)
}

func runScore(ctx context.Context, stdout, stderr io.Writer, raw []byte, opts scoreOpts) error {
	renderer, ok := surface.ForFormat(opts.outputFmt)
	if !ok {
		return fmt.Errorf("unknown output format %q", opts.outputFmt)
	}

	m, violations, err := health.Decode(raw)
	if err != nil {
		return fmt.Errorf("parsing metrics: %w", err)
	}
	if len(violations) > 0 {
		fmt.Fprintln(stderr, "Invalid input data:")
		for _, v := range violations {
			fmt.Fprintf(stderr, "  %s\n", v.Message)
		}
		return fmt.Errorf("%d invalid field(s)", len(violations))
	}

	engine := scoring.Default()

	if opts.storeDir != "" {
		svc := assessment.NewService(store.NewBlob(objstore.NewLocal(opts.storeDir)), engine, nil, nil, nil)
		rec, err := svc.SubmitMetrics(ctx, m)
		if err != nil {
			return fmt.Errorf("saving assessment: %w", err)
		}
		fmt.Fprintf(stderr, "Saved assessment %s\n", rec.ID)
	}

	if err := renderer.Render(stdout, surface.NewReport(engine, m)); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	return nil
}
