package topo

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Report renders the human-readable engineering summary: formatted
// grade and obstacle lines followed by a raw key/value dump of every
// metric field.
func (m *Metrics) Report() string {
	var b strings.Builder

	fmt.Fprintf(&b, "--- Final Engineering Metrics for Wheel Design ---\n")
	fmt.Fprintf(&b, "Data Anomalies Filtered (Horizontal Step < %gm): %d points\n",
		MinHorizontalStepMeters, m.FilteredSteps)
	fmt.Fprintf(&b, "1. Slope (Grade) Metrics:\n")
	fmt.Fprintf(&b, "   - MEAN Grade (Average): %.2f%% (Average expected load)\n", m.MeanGradePercent)
	fmt.Fprintf(&b, "   - ROBUST Grade (Median): %.2f%% (Best for general power/efficiency - less sensitive to extremes)\n", m.MedianGradePercent)
	fmt.Fprintf(&b, "   - WORST-CASE Grade (Maximum): %.2f%% (Critical check for maximum motor torque and grip)\n", m.MaxGradePercent)
	fmt.Fprintf(&b, "2. Obstacle (Roughness) Metrics:\n")
	fmt.Fprintf(&b, "   - MEAN Obstacle Height (Average): %.4f meters (Informs general suspension dynamics)\n", m.MeanVerticalStep)
	fmt.Fprintf(&b, "   - ROBUST Obstacle Height (Median): %.4f meters (Informs general suspension/ride compliance)\n", m.MedianVerticalStep)
	fmt.Fprintf(&b, "   - WORST-CASE Obstacle Height (Maximum): %.4f meters (Critical safety check for minimum required wheel diameter)\n", m.MaxVerticalStep)
	fmt.Fprintf(&b, "-------------------------------------------------------\n")

	b.WriteString("\nRaw Metrics:\n")
	for _, kv := range m.rawMetrics() {
		fmt.Fprintf(&b, "%s: %v\n", kv.key, kv.value)
	}

	return b.String()
}

type rawMetric struct {
	key   string
	value any
}

// rawMetrics lists every output field in a fixed order for the report dump.
func (m *Metrics) rawMetrics() []rawMetric {
	return []rawMetric{
		{"File_Path", m.FilePath},
		{"Max_Slope_Ratio_m_m", m.MaxSlopeRatio},
		{"Median_Absolute_Slope_m_m", m.MedianAbsoluteSlope},
		{"Mean_Absolute_Slope_m_m", m.MeanAbsoluteSlope},
		{"Max_Grade_Percent", m.MaxGradePercent},
		{"Median_Grade_Percent", m.MedianGradePercent},
		{"Mean_Grade_Percent", m.MeanGradePercent},
		{"Max_Grade_Angle_Degrees", m.MaxGradeAngleDegree},
		{"Max_Vertical_Step_m", m.MaxVerticalStep},
		{"Median_Vertical_Step_m", m.MedianVerticalStep},
		{"Mean_Vertical_Step_m", m.MeanVerticalStep},
	}
}

// writeReport persists the rendered report. Failure is logged at warn and
// never affects the returned metrics.
func writeReport(path string, m *Metrics) {
	if err := os.WriteFile(path, []byte(m.Report()), 0o644); err != nil {
		zap.L().Warn("topo: report write failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return
	}
	zap.L().Info("topo: report written", zap.String("path", path))
}
