// Package calibration converts raw sensor readings into physical units using a
// per-sensor linear equation.
package calibration

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	// SoilMoistureGS1 is the Decagon GS1 soil moisture probe.
	SoilMoistureGS1 = 2221
	// RainGauge is the tipping-bucket gauge, 0.4 mm per square meter per click.
	RainGauge = 2213
)

var ErrNonFinite = errors.New("value is not a finite number")

type Linear struct {
	Gain   float64
	Offset float64
}

func (l Linear) Apply(v float64) float64 {
	return l.Gain*v + l.Offset
}

// Table maps a sensor id to its calibration. Sensors without an entry pass through unchanged.
type Table map[int]Linear

// Default returns the calibrations used when none are configured.
func Default() Table {
	return Table{
		// TODO: confirm which Decagon GS1 equation (mineral vs. potting soil) applies to the deployed probes.
		SoilMoistureGS1: {Gain: 4.94e-4, Offset: -0.554},
		RainGauge:       {Gain: 0.4},
	}
}

func (t Table) Apply(sensorID int, v float64) (float64, error) {
	if !finite(v) {
		return 0, fmt.Errorf("sensor %d raw value %v: %w", sensorID, v, ErrNonFinite)
	}
	l, ok := t[sensorID]
	if !ok {
		return v, nil
	}
	out := l.Apply(v)
	if !finite(out) {
		return 0, fmt.Errorf("sensor %d calibrated value %v: %w", sensorID, out, ErrNonFinite)
	}
	return out, nil
}

var entryRe = regexp.MustCompile(`^(\d+)=([-+0-9.eE]+):([-+0-9.eE]+)$`)

// Parse reads a table from entries of the form "id=gain:offset" separated by commas,
// e.g. "2221=0.000494:-0.554,2213=0.4:0". Every entry must be well formed.
func Parse(s string) (Table, error) {
	table := make(Table)
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		match := entryRe.FindStringSubmatch(item)
		if match == nil {
			return nil, fmt.Errorf("invalid calibration entry %q, want id=gain:offset", item)
		}
		id, err := strconv.Atoi(match[1])
		if err != nil {
			return nil, err
		}
		gain, err := strconv.ParseFloat(match[2], 64)
		if err != nil {
			return nil, fmt.Errorf("sensor %d gain: %w", id, err)
		}
		offset, err := strconv.ParseFloat(match[3], 64)
		if err != nil {
			return nil, fmt.Errorf("sensor %d offset: %w", id, err)
		}
		if !finite(gain) || !finite(offset) {
			return nil, fmt.Errorf("sensor %d: %w", id, ErrNonFinite)
		}
		table[id] = Linear{Gain: gain, Offset: offset}
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("no valid calibration entries found in %q", s)
	}
	return table, nil
}

func (t Table) String() string {
	ids := make([]int, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		l := t[id]
		parts = append(parts, fmt.Sprintf("%d=%s:%s", id,
			strconv.FormatFloat(l.Gain, 'g', -1, 64),
			strconv.FormatFloat(l.Offset, 'g', -1, 64)))
	}
	return strings.Join(parts, ",")
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
