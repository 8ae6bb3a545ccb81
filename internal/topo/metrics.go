package topo

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// Metrics is the immutable summary produced by one Analyze call. Slope
// aggregates are reported as ratio (m/m), percent grade, and max-as-angle;
// obstacle aggregates are absolute vertical steps in meters.
type Metrics struct {
	FilePath string `json:"file_path"`

	MaxSlopeRatio       float64 `json:"max_slope_ratio_m_m"`
	MedianAbsoluteSlope float64 `json:"median_absolute_slope_m_m"`
	MeanAbsoluteSlope   float64 `json:"mean_absolute_slope_m_m"`

	MaxGradePercent     float64 `json:"max_grade_percent"`
	MedianGradePercent  float64 `json:"median_grade_percent"`
	MeanGradePercent    float64 `json:"mean_grade_percent"`
	MaxGradeAngleDegree float64 `json:"max_grade_angle_degrees"`

	MaxVerticalStep    float64 `json:"max_vertical_step_m"`
	MedianVerticalStep float64 `json:"median_vertical_step_m"`
	MeanVerticalStep   float64 `json:"mean_vertical_step_m"`

	// FilteredSteps counts rows dropped by the degenerate-step filter,
	// including the first row (no predecessor).
	FilteredSteps int `json:"filtered_steps"`
}

// Analyze loads the elevation table at path, derives per-step horizontal
// distance and vertical change between consecutive points sorted by id,
// filters steps shorter than MinHorizontalStepMeters, and aggregates the
// slope and obstacle statistics.
//
// Missing or unreadable sources and schema problems return
// ErrSourceUnavailable / ErrSchemaInvalid with no metrics. A table whose
// surviving-step set is empty (fewer than 2 points, or every step
// filtered) is not a failure: all aggregates resolve to 0.0.
func Analyze(path string, opts Options) (*Metrics, error) {
	opts = opts.withDefaults()

	points, err := loadPoints(path, opts)
	if err != nil {
		zap.L().Error("topo: load failed", zap.String("file", path), zap.Error(err))
		return nil, err
	}

	slopes, verticals, filtered := deriveSteps(points)

	m := &Metrics{
		FilePath:      path,
		FilteredSteps: filtered,

		MaxSlopeRatio:       maxOrZero(slopes),
		MedianAbsoluteSlope: medianOrZero(slopes),
		MeanAbsoluteSlope:   meanOrZero(slopes),

		MaxVerticalStep:    maxOrZero(verticals),
		MedianVerticalStep: medianOrZero(verticals),
		MeanVerticalStep:   meanOrZero(verticals),
	}

	m.MaxGradePercent = m.MaxSlopeRatio * 100
	m.MedianGradePercent = m.MedianAbsoluteSlope * 100
	m.MeanGradePercent = m.MeanAbsoluteSlope * 100
	m.MaxGradeAngleDegree = math.Atan(m.MaxSlopeRatio) * 180 / math.Pi

	zap.L().Info("topo: analysis complete",
		zap.String("file", path),
		zap.Int("points", len(points)),
		zap.Int("surviving_steps", len(slopes)),
		zap.Int("filtered_steps", filtered),
		zap.Float64("max_grade_percent", m.MaxGradePercent),
	)

	if opts.ReportPath != "" {
		writeReport(opts.ReportPath, m)
	}

	return m, nil
}

// deriveSteps walks the sorted sequence pairwise. The first row has no
// predecessor and counts as filtered, matching the distance threshold
// treatment of a step with undefined horizontal run.
func deriveSteps(points []ElevationPoint) (slopes, verticals []float64, filtered int) {
	if len(points) == 0 {
		return nil, nil, 0
	}

	filtered = 1 // first row, no predecessor
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]

		dist := HaversineMeters(
			radians(prev.Lat), radians(prev.Lon),
			radians(cur.Lat), radians(cur.Lon),
		)
		if dist < MinHorizontalStepMeters {
			filtered++
			continue
		}

		dz := cur.Elev - prev.Elev
		slopes = append(slopes, math.Abs(dz)/dist)
		verticals = append(verticals, math.Abs(dz))
	}

	return slopes, verticals, filtered
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func meanOrZero(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

func maxOrZero(values []float64) float64 {
	max := 0.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}
