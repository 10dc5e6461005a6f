package scoring

import (
	"testing"

	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassify_Boundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  domain.RiskLevel
	}{
		{100, domain.RiskCritical},
		{70, domain.RiskCritical},
		{69.999, domain.RiskHigh},
		{45, domain.RiskHigh},
		{44.999, domain.RiskMedium},
		{25, domain.RiskMedium},
		{24.999, domain.RiskLow},
		{0, domain.RiskLow},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.score), "score=%v", tc.score)
	}
}

func TestClassify_MonotonicStep(t *testing.T) {
	prev := Classify(0).Rank()
	for s := 0.0; s <= 100.0; s += 0.25 {
		r := Classify(s).Rank()
		assert.GreaterOrEqual(t, r, prev, "score=%v", s)
		prev = r
	}
}
