package pressurenotify

import (
	"math"

	"github.com/werdnum/pressurenotify/pkg/config"
	"github.com/werdnum/pressurenotify/pkg/pressure"
)

const (
	// ClearPenalty is how far below its threshold a reading must fall
	// before an alert may start clearing.
	ClearPenalty = 5.0
	// MinFloor is the lowest relaxed threshold.
	MinFloor = 1.0
)

var windowNames = [3]string{"avg10", "avg60", "avg300"}

// Classification is the outcome of checking one resource for one tick.
// Values are ordered by severity, Error aside.
type Classification int

const (
	Inactive Classification = iota
	Stabilising
	Active
	Error
)

func (c Classification) String() string {
	switch c {
	case Inactive:
		return "inactive"
	case Stabilising:
		return "stabilising"
	case Active:
		return "active"
	case Error:
		return "error"
	}
	return "unknown"
}

// Evaluate classifies a resource against its thresholds. Classes are visited
// "some" first; the first Active class ends the visit. A nil reader is a
// resource without a pressure file and never alerts.
func Evaluate(r pressure.Reader, th config.ResourceThresholds) (Classification, error) {
	if r == nil {
		return Inactive, nil
	}

	result := Inactive
	err := r.Visit(func(s pressure.Sample) bool {
		if c := classify(s, th.For(s.Class)); c > result {
			result = c
		}
		return result != Active
	})
	if err != nil {
		return Error, err
	}
	return result, nil
}

func classify(s pressure.Sample, th config.WindowThresholds) Classification {
	readings, limits := s.Windows(), th.Values()

	for i := range readings {
		if armed(readings[i], limits[i]) {
			return Active
		}
	}
	for i := range readings {
		if armed(readings[i], relaxed(limits[i])) {
			return Stabilising
		}
	}
	return Inactive
}

func armed(reading, threshold float64) bool {
	return config.IsSet(threshold) && reading > threshold
}

// relaxed is the lower threshold a reading has to drop under for an alert
// to clear. Unset thresholds stay unset.
func relaxed(threshold float64) float64 {
	if !config.IsSet(threshold) {
		return threshold
	}
	return math.Max(MinFloor, threshold-ClearPenalty)
}
