package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/werdnum/pressurenotify/pkg/pressure"
)

// MaxLineLength is the longest config line accepted, excluding the newline.
const MaxLineLength = 254

// Parse applies the directives read from r on top of cfg. Invalid lines are
// logged and skipped; the number of skipped lines is returned.
func Parse(r io.Reader, cfg *Config) (int, error) {
	br := bufio.NewReader(r)
	ignored := 0

	for {
		line, tooLong, err := readLine(br)
		if err != nil && !errors.Is(err, io.EOF) {
			return ignored, err
		}

		switch {
		case blankOrComment(line):
		case tooLong:
			glog.Warningf("Config line is too long to be valid, ignoring: %s", line)
			ignored++
		default:
			if perr := cfg.apply(line); perr != nil {
				glog.Warningf("%s", perr.Error())
				ignored++
			}
		}

		if err != nil {
			return ignored, nil
		}
	}
}

// readLine reads one physical line, keeping at most MaxLineLength bytes.
func readLine(br *bufio.Reader) (string, bool, error) {
	var b strings.Builder
	tooLong := false
	for {
		c, err := br.ReadByte()
		if err != nil {
			return b.String(), tooLong, err
		}
		if c == '\n' {
			return b.String(), tooLong, nil
		}
		if b.Len() < MaxLineLength {
			b.WriteByte(c)
		} else {
			tooLong = true
		}
	}
}

func blankOrComment(line string) bool {
	s := strings.TrimSpace(line)
	return s == "" || strings.HasPrefix(s, "#")
}

func (c *Config) apply(line string) error {
	fields := strings.Fields(line)
	switch fields[0] {
	case "threshold":
		return c.applyThreshold(line, fields[1:])
	case "update":
		return c.applyUpdate(line, fields[1:])
	case "log_pressures":
		return c.applyLogPressures(line, fields[1:])
	}
	return fmt.Errorf("invalid config line, ignoring: %s", line)
}

func (c *Config) applyThreshold(line string, args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("invalid threshold, ignoring: %s", line)
	}
	resource, class, window := args[0], args[1], args[2]

	threshold, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return fmt.Errorf("invalid threshold, ignoring: %s", line)
	}
	if !(threshold >= 0) {
		return fmt.Errorf("invalid threshold for %s::%s::%s, ignoring: %f", resource, class, window, threshold)
	}

	kind, ok := pressure.ParseKind(resource)
	if !ok {
		return fmt.Errorf("invalid resource in config, ignoring: '%s'", resource)
	}

	var w *WindowThresholds
	switch pressure.Class(class) {
	case pressure.Some:
		w = &c.Thresholds[kind].Some
	case pressure.Full:
		if !kind.HasFull() {
			return fmt.Errorf("full interval for %s is bogus, ignoring", resource)
		}
		w = &c.Thresholds[kind].Full
	default:
		return fmt.Errorf("invalid type in config, ignoring: '%s'", class)
	}

	t := w.window(window)
	if t == nil {
		return fmt.Errorf("invalid interval in config, ignoring: '%s'", window)
	}
	*t = threshold
	return nil
}

func (c *Config) applyUpdate(line string, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("invalid config line, ignoring: %s", line)
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid config line, ignoring: %s", line)
	}

	switch {
	case v < 0:
		return fmt.Errorf("ignoring <0 update interval: %d", v)
	case v < MinUpdateInterval:
		glog.Warningf("Clamping update interval to %d from %d", MinUpdateInterval, v)
		v = MinUpdateInterval
	case v > MaxUpdateInterval:
		glog.Warningf("Clamping update interval to %d from %d", MaxUpdateInterval, v)
		v = MaxUpdateInterval
	}
	c.UpdateInterval = v
	return nil
}

func (c *Config) applyLogPressures(line string, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("invalid config line, ignoring: %s", line)
	}
	v, ok := parseBool(args[0])
	if !ok {
		return fmt.Errorf("invalid bool for log_pressures, ignoring: %s", args[0])
	}
	c.LogPressures = v
	return nil
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "1", "yes", "true", "on":
		return true, true
	case "0", "no", "false", "off":
		return false, true
	}
	return false, false
}
