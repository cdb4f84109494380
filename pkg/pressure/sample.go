package pressure

import (
	"fmt"
	"strconv"
	"strings"
)

type Class string

const (
	Some Class = "some"
	Full Class = "full"
)

// Sample is one parsed pressure line.
type Sample struct {
	Class  Class
	Avg10  float64
	Avg60  float64
	Avg300 float64
}

// Windows returns the readings in avg10, avg60, avg300 order.
func (s Sample) Windows() [3]float64 {
	return [3]float64{s.Avg10, s.Avg60, s.Avg300}
}

func (s Sample) String() string {
	return fmt.Sprintf("%s avg10=%.2f avg60=%.2f avg300=%.2f", s.Class, s.Avg10, s.Avg60, s.Avg300)
}

var windowKeys = [3]string{"avg10", "avg60", "avg300"}

// ParseLine parses a line of the form
//
//	some avg10=0.00 avg60=0.00 avg300=0.00 total=0
func ParseLine(line string) (Sample, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return Sample{}, fmt.Errorf("malformed pressure line %q: expected 5 fields, got %d", line, len(fields))
	}

	var s Sample
	switch Class(fields[0]) {
	case Some, Full:
		s.Class = Class(fields[0])
	default:
		return Sample{}, fmt.Errorf("malformed pressure line %q: unknown class %q", line, fields[0])
	}

	var values [3]float64
	for i, key := range windowKeys {
		v, err := keyedValue(fields[i+1], key)
		if err != nil {
			return Sample{}, fmt.Errorf("malformed pressure line %q: %w", line, err)
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Sample{}, fmt.Errorf("malformed pressure line %q: %s: %w", line, key, err)
		}
		values[i] = f
	}

	total, err := keyedValue(fields[4], "total")
	if err != nil {
		return Sample{}, fmt.Errorf("malformed pressure line %q: %w", line, err)
	}
	if _, err := strconv.ParseUint(total, 10, 64); err != nil {
		return Sample{}, fmt.Errorf("malformed pressure line %q: total: %w", line, err)
	}

	s.Avg10, s.Avg60, s.Avg300 = values[0], values[1], values[2]
	return s, nil
}

func keyedValue(field, key string) (string, error) {
	v, ok := strings.CutPrefix(field, key+"=")
	if !ok {
		return "", fmt.Errorf("expected %s=, got %q", key, field)
	}
	return v, nil
}
