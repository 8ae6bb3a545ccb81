package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roverworks/wheelsync/internal/topo"
	"github.com/roverworks/wheelsync/pkg/hf"
)

func sampleMetrics() *topo.Metrics {
	return &topo.Metrics{
		FilePath:            "points.xlsx",
		MaxSlopeRatio:       0.2,
		MedianAbsoluteSlope: 0.09,
		MeanAbsoluteSlope:   0.1,
		MaxGradePercent:     20,
		MedianGradePercent:  9,
		MeanGradePercent:    10,
		MaxGradeAngleDegree: 11.31,
		MaxVerticalStep:     0.4,
		MedianVerticalStep:  0.15,
		MeanVerticalStep:    0.18,
	}
}

func TestBuild_Derivations(t *testing.T) {
	labels := []hf.Classification{
		{Label: "marshy", Score: 0.47},
		{Label: "rocky", Score: 0.31},
	}

	ctx := Build(sampleMetrics(), labels)

	assert.Equal(t, labels, ctx.Qualitative)
	assert.Equal(t, "marshy", ctx.Recommendations.PrimaryTerrainType)
	assert.Equal(t, treadSoft, ctx.Recommendations.TireTreadSuggestion)

	// Wheel diameters are twice the median/max vertical step.
	assert.InDelta(t, 0.30, ctx.Recommendations.RobustWheelDiameterM, 1e-9)
	assert.InDelta(t, 0.80, ctx.Recommendations.MaxSafetyWheelDiameterM, 1e-9)

	assert.InDelta(t, 10, ctx.Recommendations.PowerSizingMeanGrade, 1e-9)
	assert.InDelta(t, 9, ctx.Recommendations.PowerSizingMedianGrade, 1e-9)
	assert.InDelta(t, 20, ctx.Recommendations.MaxSafetyCheckGrade, 1e-9)

	assert.InDelta(t, 0.2, ctx.Quantitative.MaxSlopeRatio, 1e-9)
	assert.InDelta(t, 11.31, ctx.Quantitative.MaxGradeAngleDegrees, 1e-9)
}

func TestBuild_NoLabels(t *testing.T) {
	ctx := Build(sampleMetrics(), nil)

	assert.Empty(t, ctx.Qualitative)
	assert.Equal(t, "unknown", ctx.Recommendations.PrimaryTerrainType)
	assert.Equal(t, treadAllTerrain, ctx.Recommendations.TireTreadSuggestion)
}

func TestTreadSuggestion(t *testing.T) {
	tests := []struct {
		terrain string
		want    string
	}{
		{"marshy", treadSoft},
		{"sandy", treadSoft},
		{"sandy terrain", treadSoft},
		{"rocky", treadRocky},
		{"grassy", treadAllTerrain},
		{"unknown", treadAllTerrain},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, treadSuggestion(tt.terrain), "terrain %q", tt.terrain)
	}
}
