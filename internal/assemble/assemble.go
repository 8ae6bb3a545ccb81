// Package assemble merges the quantitative terrain metrics with the
// qualitative classification labels into the design context consumed by
// the generative model.
package assemble

import (
	"strings"

	"github.com/roverworks/wheelsync/internal/topo"
	"github.com/roverworks/wheelsync/pkg/hf"
)

// Tread suggestions keyed off the primary terrain label.
const (
	treadAllTerrain = "All-Terrain Tread"
	treadSoft       = "Deep, Aggressive Tread (Low Ground Pressure)"
	treadRocky      = "Tough, Puncture-Resistant Tread (Durability)"
)

// Context is the unified analysis passed to the design synthesizer.
type Context struct {
	Quantitative    Quantitative        `json:"quantitative_metrics"`
	Qualitative     []hf.Classification `json:"qualitative_metrics_full"`
	Recommendations Recommendations     `json:"design_recommendations"`
}

// Quantitative carries the slope and obstacle aggregates.
type Quantitative struct {
	MeanGradePercent     float64 `json:"mean_grade_percent"`
	MedianGradePercent   float64 `json:"median_grade_percent"`
	MaxGradePercent      float64 `json:"max_grade_percent"`
	MaxGradeAngleDegrees float64 `json:"max_grade_angle_degrees"`

	MeanAbsoluteSlope   float64 `json:"mean_absolute_slope_m_m"`
	MedianAbsoluteSlope float64 `json:"median_absolute_slope_m_m"`
	MaxSlopeRatio       float64 `json:"max_slope_ratio_m_m"`

	MeanVerticalStep   float64 `json:"mean_vertical_step_m"`
	MedianVerticalStep float64 `json:"median_vertical_step_m"`
	MaxVerticalStep    float64 `json:"max_vertical_step_m"`
}

// Recommendations are the derived design parameters.
type Recommendations struct {
	RobustWheelDiameterM    float64 `json:"robust_wheel_diameter_m"`
	PowerSizingMeanGrade    float64 `json:"power_sizing_typical_grade_percent_mean"`
	PowerSizingMedianGrade  float64 `json:"power_sizing_robust_grade_percent_median"`
	MaxSafetyCheckGrade     float64 `json:"max_safety_check_grade_percent"`
	MaxSafetyWheelDiameterM float64 `json:"max_safety_check_wheel_diameter_m"`
	PrimaryTerrainType      string  `json:"primary_terrain_type"`
	TireTreadSuggestion     string  `json:"tire_tread_suggestion"`
}

// Build combines metrics and classification results. An empty label list
// (classification failed or unavailable) degrades the terrain type to
// "unknown" rather than failing; the metrics side is mandatory and is the
// caller's responsibility to have produced.
func Build(m *topo.Metrics, labels []hf.Classification) Context {
	top := "unknown"
	if len(labels) > 0 {
		top = labels[0].Label
	}

	return Context{
		Quantitative: Quantitative{
			MeanGradePercent:     m.MeanGradePercent,
			MedianGradePercent:   m.MedianGradePercent,
			MaxGradePercent:      m.MaxGradePercent,
			MaxGradeAngleDegrees: m.MaxGradeAngleDegree,
			MeanAbsoluteSlope:    m.MeanAbsoluteSlope,
			MedianAbsoluteSlope:  m.MedianAbsoluteSlope,
			MaxSlopeRatio:        m.MaxSlopeRatio,
			MeanVerticalStep:     m.MeanVerticalStep,
			MedianVerticalStep:   m.MedianVerticalStep,
			MaxVerticalStep:      m.MaxVerticalStep,
		},
		Qualitative: labels,
		Recommendations: Recommendations{
			// A wheel clears an obstacle about half its diameter; size from
			// the robust and worst-case vertical steps.
			RobustWheelDiameterM:    m.MedianVerticalStep * 2,
			MaxSafetyWheelDiameterM: m.MaxVerticalStep * 2,

			PowerSizingMeanGrade:   m.MeanGradePercent,
			PowerSizingMedianGrade: m.MedianGradePercent,
			MaxSafetyCheckGrade:    m.MaxGradePercent,

			PrimaryTerrainType:  top,
			TireTreadSuggestion: treadSuggestion(top),
		},
	}
}

func treadSuggestion(terrain string) string {
	switch {
	case strings.Contains(terrain, "marshy"), strings.Contains(terrain, "sandy"):
		return treadSoft
	case strings.Contains(terrain, "rocky"):
		return treadRocky
	default:
		return treadAllTerrain
	}
}
