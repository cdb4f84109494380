package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/werdnum/pressurenotify/pkg/pressure"
)

const (
	DefaultUpdateInterval = 5
	MinUpdateInterval     = 1
	MaxUpdateInterval     = 1800
)

// WindowThresholds holds one threshold per averaging window. NaN means unset.
type WindowThresholds struct {
	Avg10  float64
	Avg60  float64
	Avg300 float64
}

// Unset returns thresholds that never match any reading.
func Unset() WindowThresholds {
	return WindowThresholds{Avg10: math.NaN(), Avg60: math.NaN(), Avg300: math.NaN()}
}

// Values returns the thresholds in avg10, avg60, avg300 order.
func (w WindowThresholds) Values() [3]float64 {
	return [3]float64{w.Avg10, w.Avg60, w.Avg300}
}

func (w *WindowThresholds) window(name string) *float64 {
	switch name {
	case "avg10":
		return &w.Avg10
	case "avg60":
		return &w.Avg60
	case "avg300":
		return &w.Avg300
	}
	return nil
}

// IsSet reports whether a threshold value takes part in checks.
func IsSet(v float64) bool {
	return !math.IsNaN(v) && v >= 0
}

type ResourceThresholds struct {
	Some WindowThresholds
	Full WindowThresholds
}

// For returns the thresholds for a pressure class.
func (r ResourceThresholds) For(c pressure.Class) WindowThresholds {
	if c == pressure.Full {
		return r.Full
	}
	return r.Some
}

// ThresholdTable is indexed by pressure.Kind.
type ThresholdTable [pressure.NumKinds]ResourceThresholds

type Config struct {
	Thresholds     ThresholdTable
	UpdateInterval int
	LogPressures   bool
}

// userFacingDefaults is what a config file is applied on top of.
func userFacingDefaults() *Config {
	c := &Config{UpdateInterval: DefaultUpdateInterval}
	for i := range c.Thresholds {
		c.Thresholds[i] = ResourceThresholds{Some: Unset(), Full: Unset()}
	}
	return c
}

// Defaults is used when no config file exists, so that alerts still fire
// out of the box.
func Defaults() *Config {
	c := userFacingDefaults()
	c.Thresholds[pressure.CPU].Some.Avg10 = 50.00
	c.Thresholds[pressure.Memory].Some.Avg10 = 10.00
	c.Thresholds[pressure.IO].Some.Avg10 = 10.00
	return c
}

// Interval is the polling interval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.UpdateInterval) * time.Second
}

func (c *Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "      Log pressures: %t\n", c.LogPressures)
	fmt.Fprintf(&b, "      Update interval: %ds\n\n", c.UpdateInterval)
	b.WriteString("      Thresholds:\n")
	for _, k := range pressure.Kinds() {
		r := c.Thresholds[k]
		for i, window := range []string{"avg10", "avg60", "avg300"} {
			for _, class := range []pressure.Class{pressure.Some, pressure.Full} {
				v := r.For(class).Values()[i]
				if IsSet(v) {
					fmt.Fprintf(&b, "        - %s %s %s: %.2f\n", k.Title(), window, class, v)
				}
			}
		}
	}
	return b.String()
}
