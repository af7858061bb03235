// Package scoring implements the glucoscope diabetes risk scoring engine.
// It maps a health.Metrics record to a bounded probability and a risk category
// through a fixed logistic formula followed by ordered clinical boosts.
package scoring

// Category is the three-level risk bucket derived from a risk score.
type Category string

const (
	CategoryLow    Category = "Low"
	CategoryMedium Category = "Medium"
	CategoryHigh   Category = "High"
)

// Assessment is the outcome of scoring one metrics record.
// Immutable once computed.
type Assessment struct {
	RiskScore    float64  `json:"riskScore"` // in [Floor, Ceiling]
	RiskCategory Category `json:"riskCategory"`
}

// Explanation is an Assessment together with the intermediate values that
// produced it.
type Explanation struct {
	Assessment
	LinearScore     float64        `json:"linearScore"`     // z before the overflow clamp
	BaseProbability float64        `json:"baseProbability"` // sigmoid(z)
	Contributions   []Contribution `json:"contributions"`
	Boosts          []AppliedBoost `json:"boosts"` // only boosts that fired, in application order
}

// Contribution is one weighted term of the linear score.
type Contribution struct {
	Feature      string  `json:"feature"`
	Value        float64 `json:"value"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// AppliedBoost records a clinical multiplier that fired.
type AppliedBoost struct {
	Key    string  `json:"key"`
	Name   string  `json:"name"`
	Tier   string  `json:"tier"`
	Factor float64 `json:"factor"`
	Before float64 `json:"before"`
	After  float64 `json:"after"`
}

// Category thresholds.
const (
	MediumThreshold = 0.30
	HighThreshold   = 0.60
)

// CategoryFromScore maps a final risk score to its category.
func CategoryFromScore(score float64) Category {
	switch {
	case score < MediumThreshold:
		return CategoryLow
	case score < HighThreshold:
		return CategoryMedium
	default:
		return CategoryHigh
	}
}
