// Package collector exposes the latest poll summary as Prometheus metrics.
package collector

import (
	"log/slog"
	"strconv"

	"farmhub-client/internal/poller"
	"farmhub-client/internal/state"

	"github.com/prometheus/client_golang/prometheus"
)

// FarmhubCollector reports the values stored by the most recent poll run.
type FarmhubCollector struct {
	source func() poller.Summary
	logger *slog.Logger

	sensorValue  *prometheus.Desc
	readingTime  *prometheus.Desc
	pollErrors   *prometheus.Desc
	pollDuration *prometheus.Desc
	lastPoll     *prometheus.Desc
	up           *prometheus.Desc
}

// New creates a collector over state.Get.
func New(logger *slog.Logger) *FarmhubCollector {
	return NewWithSource(state.Get, logger)
}

// NewWithSource creates a collector over an arbitrary summary source.
func NewWithSource(source func() poller.Summary, logger *slog.Logger) *FarmhubCollector {
	sensorLabels := []string{"device_id", "sensor_id", "name", "units"}
	return &FarmhubCollector{
		source: source,
		logger: logger,

		sensorValue: prometheus.NewDesc(
			"farmhub_sensor_value",
			"Most recent calibrated sensor value",
			sensorLabels, nil,
		),
		readingTime: prometheus.NewDesc(
			"farmhub_sensor_reading_timestamp_seconds",
			"Creation time of the most recent reading",
			sensorLabels, nil,
		),
		pollErrors: prometheus.NewDesc(
			"farmhub_poll_errors",
			"Number of errors in the last poll run",
			nil, nil,
		),
		pollDuration: prometheus.NewDesc(
			"farmhub_poll_duration_seconds",
			"Duration of the last poll run",
			nil, nil,
		),
		lastPoll: prometheus.NewDesc(
			"farmhub_last_poll_timestamp_seconds",
			"Start time of the last poll run",
			nil, nil,
		),
		up: prometheus.NewDesc(
			"farmhub_up",
			"Whether the FarmHub service answered the last poll run (1 = up, 0 = down)",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector
func (c *FarmhubCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.sensorValue
	ch <- c.readingTime
	ch <- c.pollErrors
	ch <- c.pollDuration
	ch <- c.lastPoll
	ch <- c.up
}

// Collect implements prometheus.Collector
func (c *FarmhubCollector) Collect(ch chan<- prometheus.Metric) {
	summary := c.source()
	if summary.StartTime.IsZero() {
		c.logger.Debug("No poll run recorded yet")
		ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, 0)
		return
	}

	up := 0.0
	if summary.Connected {
		up = 1
	}
	ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, up)
	ch <- prometheus.MustNewConstMetric(c.pollErrors, prometheus.GaugeValue, float64(len(summary.Errors)))
	ch <- prometheus.MustNewConstMetric(c.pollDuration, prometheus.GaugeValue, summary.Duration.Seconds())
	ch <- prometheus.MustNewConstMetric(c.lastPoll, prometheus.GaugeValue, float64(summary.StartTime.Unix()))

	for _, v := range summary.Values {
		labels := []string{strconv.Itoa(v.DeviceID), strconv.Itoa(v.SensorID), v.Name, v.Units}
		ch <- prometheus.MustNewConstMetric(c.sensorValue, prometheus.GaugeValue, v.Value, labels...)
		if !v.At.IsZero() {
			ch <- prometheus.MustNewConstMetric(c.readingTime, prometheus.GaugeValue, float64(v.At.Unix()), labels...)
		}
	}
}
