// Package poller runs one pass over configured device/sensor targets and reports the
// most recent calibrated value of each. It backs the serve command but is usable on its own.
package poller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"farmhub-client/internal/farmhub"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -o pollerfakes/fake_clock.go . Clock

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (rc RealClock) Now() time.Time {
	return time.Now()
}

const DefaultWindow = time.Hour

type Target struct {
	DeviceID int
	SensorID int
}

func (t Target) String() string {
	return fmt.Sprintf("%d:%d", t.DeviceID, t.SensorID)
}

var targetRe = regexp.MustCompile(`^(\d+):(\d+)$`)

// ParseTargets reads "device:sensor" pairs, e.g. "1234:2221,1234:2213".
func ParseTargets(s string) ([]Target, error) {
	var targets []Target
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		match := targetRe.FindStringSubmatch(item)
		if match == nil {
			return nil, fmt.Errorf("invalid target %q, want device:sensor", item)
		}
		device, err := strconv.Atoi(match[1])
		if err != nil {
			return nil, err
		}
		sensor, err := strconv.Atoi(match[2])
		if err != nil {
			return nil, err
		}
		targets = append(targets, Target{DeviceID: device, SensorID: sensor})
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no valid targets found in %q", s)
	}
	return targets, nil
}

// Options holds the arguments for a poll run.
type Options struct {
	Targets []Target
	// Window is how far back from now each target is queried.
	Window time.Duration
	// Location is the zone the client reads naive query bounds in.
	Location *time.Location
	Clock    Clock
	Out      io.Writer
}

type SensorValue struct {
	DeviceID int       `json:"device_id"`
	SensorID int       `json:"sensor_id"`
	Name     string    `json:"name"`
	Units    string    `json:"units"`
	Value    float64   `json:"value"`
	At       time.Time `json:"at"`
}

// Summary holds high-level details about a poll run.
type Summary struct {
	TargetsChecked int
	// Connected is set once the service answered the sensor listing.
	Connected bool
	Values    []SensorValue
	Errors    []error
	StartTime time.Time
	Duration  time.Duration
}

func (s Summary) MarshalJSON() ([]byte, error) {
	errs := make([]string, 0, len(s.Errors))
	for _, e := range s.Errors {
		errs = append(errs, e.Error())
	}
	return json.Marshal(struct {
		TargetsChecked int           `json:"targets_checked"`
		Connected      bool          `json:"connected"`
		Values         []SensorValue `json:"values"`
		Errors         []string      `json:"errors"`
		StartTime      time.Time     `json:"start_time"`
		DurationMS     int64         `json:"duration_ms"`
	}{
		TargetsChecked: s.TargetsChecked,
		Connected:      s.Connected,
		Values:         s.Values,
		Errors:         errs,
		StartTime:      s.StartTime,
		DurationMS:     s.Duration.Milliseconds(),
	})
}

// Run polls every target once, returning a summary. Failures on individual targets are
// collected in Summary.Errors; only a failed sensor listing aborts the run.
func Run(ctx context.Context, client farmhub.Client, opts Options) (Summary, error) {
	clock := opts.Clock
	if clock == nil {
		clock = RealClock{}
	}
	w := opts.Out
	if w == nil {
		w = io.Discard
	}
	start := clock.Now()
	summary := Summary{StartTime: start}

	if len(opts.Targets) == 0 {
		err := errors.New("no targets configured")
		summary.Errors = append(summary.Errors, err)
		return summary, err
	}
	if opts.Location == nil {
		err := errors.New("no time zone configured")
		summary.Errors = append(summary.Errors, err)
		return summary, err
	}
	window := opts.Window
	if window <= 0 {
		window = DefaultWindow
	}

	_, _ = fmt.Fprintln(w, "Fetching sensors")
	sensors, err := client.ListSensors(ctx)
	if err != nil {
		err = fmt.Errorf("failed to fetch sensors: %w", err)
		summary.Errors = append(summary.Errors, err)
		summary.Duration = clock.Now().Sub(start)
		return summary, err
	}
	summary.Connected = true
	_, _ = fmt.Fprintf(w, "Fetched sensors for %d devices\n", len(sensors))

	// The client reads bounds as wall clock in its zone.
	stop := start.In(opts.Location)
	from := stop.Add(-window)

	for _, target := range opts.Targets {
		summary.TargetsChecked++

		sensor, ok := sensors[target.DeviceID][target.SensorID]
		if !ok {
			_, _ = fmt.Fprintf(w, "Sensor %s not found\n", target)
			summary.Errors = append(summary.Errors, fmt.Errorf("sensor %s not found", target))
			continue
		}

		readings, err := client.GetData(ctx, target.DeviceID, target.SensorID, from, stop)
		if err != nil {
			_, _ = fmt.Fprintf(w, "Failed to fetch %s: %v\n", target, err)
			summary.Errors = append(summary.Errors, fmt.Errorf("failed to fetch %s: %w", target, err))
			continue
		}
		if len(readings) == 0 {
			_, _ = fmt.Fprintf(w, "No readings for %s in the last %s\n", target, window)
			summary.Errors = append(summary.Errors, fmt.Errorf("no readings for %s in the last %s", target, window))
			continue
		}

		last := readings[len(readings)-1]
		summary.Values = append(summary.Values, SensorValue{
			DeviceID: target.DeviceID,
			SensorID: target.SensorID,
			Name:     sensor.Name,
			Units:    sensor.Units,
			Value:    last.Value,
			At:       last.CreatedAt.Time,
		})
		_, _ = fmt.Fprintf(w, "%s (%s): %g %s at %s\n", sensor.Name, target, last.Value, sensor.Units, last.CreatedAt.Format(time.RFC3339))
	}

	summary.Duration = clock.Now().Sub(start)
	return summary, nil
}
