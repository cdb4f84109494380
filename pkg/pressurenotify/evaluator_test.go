package pressurenotify

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/werdnum/pressurenotify/pkg/pressure"
)

func TestEvaluateHysteresis(t *testing.T) {
	th := unsetThresholds()
	th.Some.Avg10 = 50.00

	cases := []struct {
		reading float64
		want    Classification
	}{
		{51.00, Active},
		{50.01, Active},
		{50.00, Stabilising},
		{48.00, Stabilising},
		{45.00, Inactive},
		{44.00, Inactive},
		{0, Inactive},
	}
	for _, tc := range cases {
		got, err := Evaluate(&fakeReader{samples: []pressure.Sample{some(tc.reading, 0, 0)}}, th)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "reading %.2f", tc.reading)
	}
}

func TestEvaluateUnsetThresholdsNeverMatch(t *testing.T) {
	readings := []float64{0, 0.01, 1, 50, 100, 1e9, math.Inf(1)}
	for _, v := range readings {
		r := &fakeReader{samples: []pressure.Sample{some(v, v, v), full(v, v, v)}}
		got, err := Evaluate(r, unsetThresholds())
		require.NoError(t, err)
		assert.Equal(t, Inactive, got, "reading %v", v)
	}
}

func TestEvaluateRelaxedThresholdFloor(t *testing.T) {
	th := unsetThresholds()
	th.Some.Avg60 = 3.00

	got, err := Evaluate(&fakeReader{samples: []pressure.Sample{some(0, 1.50, 0)}}, th)
	require.NoError(t, err)
	assert.Equal(t, Stabilising, got)

	got, err = Evaluate(&fakeReader{samples: []pressure.Sample{some(0, 1.00, 0)}}, th)
	require.NoError(t, err)
	assert.Equal(t, Inactive, got)
}

func TestEvaluateFixtureAgainstFullAvg300(t *testing.T) {
	lines := []string{
		"some avg10=5.00 avg60=10.02 avg300=100.00 total=2000",
		"full avg10=5.00 avg60=20.02 avg300=90.00 total=1000",
	}
	var samples []pressure.Sample
	for _, l := range lines {
		s, err := pressure.ParseLine(l)
		require.NoError(t, err)
		samples = append(samples, s)
	}

	cases := []struct {
		threshold float64
		want      Classification
	}{
		{90.00, Stabilising},
		{9.99, Active},
		{95.00, Inactive},
	}
	for _, tc := range cases {
		th := unsetThresholds()
		th.Full.Avg300 = tc.threshold
		got, err := Evaluate(&fakeReader{samples: samples}, th)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "threshold %.2f", tc.threshold)
	}
}

func TestEvaluateStopsAtFirstActiveClass(t *testing.T) {
	th := unsetThresholds()
	th.Some.Avg10 = 10

	r := &fakeReader{
		samples: []pressure.Sample{some(20, 0, 0), full(0, 0, 0)},
		err:     errors.New("never reached"),
	}
	got, err := Evaluate(r, th)
	require.NoError(t, err)
	assert.Equal(t, Active, got)
	assert.Equal(t, 1, r.visited)
}

func TestEvaluateTakesWorstClass(t *testing.T) {
	th := unsetThresholds()
	th.Some.Avg10 = 10
	th.Full.Avg10 = 10

	r := &fakeReader{samples: []pressure.Sample{some(8, 0, 0), full(11, 0, 0)}}
	got, err := Evaluate(r, th)
	require.NoError(t, err)
	assert.Equal(t, Active, got)

	r = &fakeReader{samples: []pressure.Sample{some(8, 0, 0), full(1, 0, 0)}}
	got, err = Evaluate(r, th)
	require.NoError(t, err)
	assert.Equal(t, Stabilising, got)
}

func TestEvaluateErrorShortCircuits(t *testing.T) {
	th := unsetThresholds()
	th.Some.Avg10 = 10

	r := &fakeReader{samples: []pressure.Sample{some(8, 0, 0)}, err: errors.New("can't parse")}
	got, err := Evaluate(r, th)
	assert.Error(t, err)
	assert.Equal(t, Error, got)
}

func TestEvaluateWithoutReader(t *testing.T) {
	got, err := Evaluate(nil, unsetThresholds())
	require.NoError(t, err)
	assert.Equal(t, Inactive, got)
}
