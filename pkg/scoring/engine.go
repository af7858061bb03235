package scoring

import (
	"math"

	"github.com/glucoscope/glucoscope/pkg/health"
)

// Probability bounds. Ceiling is also re-applied after every boost.
const (
	Floor   = 0.01
	Ceiling = 0.92

	// zLimit guards math.Exp against overflow.
	zLimit = 500
)

// Engine computes assessments from a fixed set of weights and boosts.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	weights Weights
	boosts  []Boost
}

// NewEngine creates a scoring engine. Boosts are applied in the given order.
func NewEngine(weights Weights, boosts ...Boost) *Engine {
	return &Engine{weights: weights, boosts: boosts}
}

// Default returns an engine with the production weights and boosts.
func Default() *Engine {
	return NewEngine(Defaults(), DefaultBoosts()...)
}

// Assess scores m. Input is assumed to have passed health.Schema validation.
func (e *Engine) Assess(m health.Metrics) Assessment {
	return e.Explain(m).Assessment
}

// Explain scores m and returns the intermediate values alongside the result.
func (e *Engine) Explain(m health.Metrics) Explanation {
	terms := e.terms(m)

	// Sum in feature order, starting from the bias.
	z := e.weights.Bias
	for _, t := range terms {
		z += t.Contribution
	}

	p := Sigmoid(z)
	exp := Explanation{
		LinearScore:     z,
		BaseProbability: p,
		Contributions:   terms,
	}

	// Each boost reads the already-adjusted probability and is clamped to the
	// ceiling before the next one runs.
	for _, b := range e.boosts {
		tier, ok := b.match(m)
		if !ok {
			continue
		}
		before := p
		p = math.Min(Ceiling, p*tier.Factor)
		exp.Boosts = append(exp.Boosts, AppliedBoost{
			Key:    b.Key,
			Name:   b.Name,
			Tier:   tier.Label,
			Factor: tier.Factor,
			Before: before,
			After:  p,
		})
	}

	score := math.Max(Floor, math.Min(Ceiling, p))
	exp.Assessment = Assessment{
		RiskScore:    score,
		RiskCategory: CategoryFromScore(score),
	}
	return exp
}

func (e *Engine) terms(m health.Metrics) []Contribution {
	w := e.weights
	features := []struct {
		name   string
		value  float64
		weight float64
	}{
		{health.FieldPregnancies, float64(m.Pregnancies), w.Pregnancies},
		{health.FieldGlucose, m.Glucose, w.Glucose},
		{health.FieldBloodPressure, m.BloodPressure, w.BloodPressure},
		{health.FieldSkinThickness, m.SkinThickness, w.SkinThickness},
		{health.FieldInsulin, m.Insulin, w.Insulin},
		{health.FieldBMI, m.BMI, w.BMI},
		{health.FieldDiabetesPedigreeFunction, m.DiabetesPedigreeFunction, w.DiabetesPedigreeFunction},
		{health.FieldAge, float64(m.Age), w.Age},
		{health.FieldPhysicalActivity, float64(m.PhysicalActivity), w.PhysicalActivity},
		{health.FieldFamilyHistory, indicator(m.FamilyHistory), w.FamilyHistory},
		{health.FieldSmokingStatus, indicator(m.SmokingStatus), w.SmokingStatus},
	}

	out := make([]Contribution, len(features))
	for i, f := range features {
		out[i] = Contribution{
			Feature:      f.name,
			Value:        f.value,
			Weight:       f.weight,
			Contribution: f.weight * f.value,
		}
	}
	return out
}

// Sigmoid is the logistic function with z clamped to [-500, 500].
func Sigmoid(z float64) float64 {
	z = math.Max(-zLimit, math.Min(zLimit, z))
	return 1 / (1 + math.Exp(-z))
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
