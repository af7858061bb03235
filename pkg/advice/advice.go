// Package advice derives personalized lifestyle recommendations from a
// submitted metrics record.
package advice

import "github.com/glucoscope/glucoscope/pkg/health"

// Priority ranks a recommendation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Recommendation is one actionable suggestion.
type Recommendation struct {
	Priority    Priority `json:"priority"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
}

// MaxRecommendations caps the list returned by For.
const MaxRecommendations = 6

// minSpecific is the count below which general guidance is appended.
const minSpecific = 4

type rule struct {
	applies func(health.Metrics) bool
	rec     Recommendation
}

var rules = []rule{
	{
		applies: func(m health.Metrics) bool { return m.Glucose > 100 },
		rec: Recommendation{PriorityHigh, "Monitor Blood Sugar",
			"Your glucose level is elevated. Consider regular monitoring and consult with a healthcare provider."},
	},
	{
		applies: func(m health.Metrics) bool { return m.BMI > 25 },
		rec: Recommendation{PriorityMedium, "Healthy Weight Management",
			"Maintaining a healthy BMI through balanced diet and exercise can reduce diabetes risk."},
	},
	{
		applies: func(m health.Metrics) bool { return m.PhysicalActivity < 3 },
		rec: Recommendation{PriorityHigh, "Increase Physical Activity",
			"Aim for at least 150 minutes of moderate aerobic activity per week."},
	},
	{
		applies: func(m health.Metrics) bool { return m.FamilyHistory },
		rec: Recommendation{PriorityMedium, "Regular Health Screenings",
			"With family history, schedule regular diabetes screenings with your doctor."},
	},
	{
		applies: func(m health.Metrics) bool { return m.SmokingStatus },
		rec: Recommendation{PriorityHigh, "Quit Smoking",
			"Smoking increases diabetes risk. Consider a smoking cessation program."},
	},
	{
		applies: func(m health.Metrics) bool { return m.BloodPressure > 85 },
		rec: Recommendation{PriorityMedium, "Manage Blood Pressure",
			"High blood pressure can compound diabetes risk. Monitor and manage with lifestyle changes."},
	},
}

var general = []Recommendation{
	{PriorityLow, "Balanced Diet", "Focus on whole grains, lean proteins, fruits, and vegetables."},
	{PriorityLow, "Stress Management", "Practice relaxation techniques like meditation or yoga to manage stress levels."},
}

// For returns the recommendations for m in rule order. When fewer than four
// specific rules match, general diet and stress guidance is appended.
// The result never exceeds MaxRecommendations and is never nil.
func For(m health.Metrics) []Recommendation {
	recs := make([]Recommendation, 0, MaxRecommendations)
	for _, r := range rules {
		if r.applies(m) {
			recs = append(recs, r.rec)
		}
	}
	if len(recs) < minSpecific {
		recs = append(recs, general...)
	}
	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}
