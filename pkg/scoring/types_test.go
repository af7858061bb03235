package scoring

import "testing"

func TestCategoryFromScore(t *testing.T) {
	tests := []struct {
		score float64
		want  Category
	}{
		{0.01, CategoryLow},
		{0.2999, CategoryLow},
		{0.30, CategoryMedium},
		{0.5999, CategoryMedium},
		{0.60, CategoryHigh},
		{0.92, CategoryHigh},
	}
	for _, tt := range tests {
		if got := CategoryFromScore(tt.score); got != tt.want {
			t.Errorf("CategoryFromScore(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestDefaultBoostsMatchOneTier(t *testing.T) {
	for _, b := range DefaultBoosts() {
		if len(b.Tiers) == 0 {
			t.Errorf("boost %s has no tiers", b.Key)
		}
		for _, tier := range b.Tiers {
			if tier.Factor <= 1 {
				t.Errorf("boost %s tier %q factor %v should raise risk", b.Key, tier.Label, tier.Factor)
			}
		}
	}
}
