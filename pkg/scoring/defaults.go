package scoring

import "github.com/glucoscope/glucoscope/pkg/health"

// Boost is a conditional multiplier applied to the probability after the
// logistic transform. Tiers are checked in order and the first match wins, so
// at most one tier of a boost fires.
type Boost struct {
	Key   string
	Name  string
	Value func(health.Metrics) float64
	Tiers []Tier
}

// Tier is one threshold band of a Boost.
type Tier struct {
	Label  string
	Match  func(v float64) bool
	Factor float64
}

func (b Boost) match(m health.Metrics) (Tier, bool) {
	v := b.Value(m)
	for _, t := range b.Tiers {
		if t.Match(v) {
			return t, true
		}
	}
	return Tier{}, false
}

func atLeast(threshold float64) func(float64) bool {
	return func(v float64) bool { return v >= threshold }
}

func equalTo(target float64) func(float64) bool {
	return func(v float64) bool { return v == target }
}

// DefaultBoosts returns the clinical boosts in application order.
func DefaultBoosts() []Boost {
	return []Boost{
		{
			Key:   "glucose",
			Name:  "Elevated glucose",
			Value: func(m health.Metrics) float64 { return m.Glucose },
			Tiers: []Tier{
				{Label: "glucose >= 140", Match: atLeast(140), Factor: 1.15},
				{Label: "glucose >= 126", Match: atLeast(126), Factor: 1.10},
			},
		},
		{
			Key:   "bmi",
			Name:  "Obesity",
			Value: func(m health.Metrics) float64 { return m.BMI },
			Tiers: []Tier{
				{Label: "bmi >= 35", Match: atLeast(35), Factor: 1.12},
				{Label: "bmi >= 30", Match: atLeast(30), Factor: 1.08},
			},
		},
		{
			Key:   "physical_activity",
			Name:  "Sedentary lifestyle",
			Value: func(m health.Metrics) float64 { return float64(m.PhysicalActivity) },
			Tiers: []Tier{
				{Label: "no active days", Match: equalTo(0), Factor: 1.10},
			},
		},
		{
			Key:   "age",
			Name:  "Advanced age",
			Value: func(m health.Metrics) float64 { return float64(m.Age) },
			Tiers: []Tier{
				{Label: "age >= 65", Match: atLeast(65), Factor: 1.10},
			},
		},
		{
			Key:   "blood_pressure",
			Name:  "High blood pressure",
			Value: func(m health.Metrics) float64 { return m.BloodPressure },
			Tiers: []Tier{
				{Label: "blood pressure >= 95", Match: atLeast(95), Factor: 1.05},
			},
		},
	}
}
