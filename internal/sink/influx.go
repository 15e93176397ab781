package sink

import (
	"context"
	"fmt"
	"strconv"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

const DefaultMeasurement = "farmhub"

type InfluxConfig struct {
	URL         string
	Token       string
	Org         string
	Bucket      string
	Measurement string
}

// InfluxSink writes readings to InfluxDB, one point per reading.
type InfluxSink struct {
	client      influxdb2.Client
	writeAPI    api.WriteAPIBlocking
	measurement string
}

func NewInfluxSink(cfg InfluxConfig) (*InfluxSink, error) {
	if cfg.URL == "" || cfg.Token == "" || cfg.Org == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("InfluxDB configuration is incomplete: url, token, org and bucket are required")
	}
	if cfg.Measurement == "" {
		cfg.Measurement = DefaultMeasurement
	}
	client := influxdb2.NewClient(cfg.URL, cfg.Token)
	return &InfluxSink{
		client:      client,
		writeAPI:    client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		measurement: cfg.Measurement,
	}, nil
}

func (s *InfluxSink) Write(ctx context.Context, series Series) error {
	points := Points(s.measurement, series)
	if len(points) == 0 {
		return nil
	}
	if err := s.writeAPI.WritePoint(ctx, points...); err != nil {
		return fmt.Errorf("error writing to InfluxDB: %w", err)
	}
	return nil
}

func (s *InfluxSink) Close() {
	s.client.Close()
}

// Points converts a series into line-protocol points tagged by device and sensor.
func Points(measurement string, series Series) []*write.Point {
	tags := map[string]string{
		"device_id": strconv.Itoa(series.DeviceID),
		"sensor_id": strconv.Itoa(series.SensorID),
	}
	if series.Name != "" {
		tags["name"] = series.Name
	}
	if series.Units != "" {
		tags["units"] = series.Units
	}

	points := make([]*write.Point, 0, len(series.Readings))
	for _, r := range series.Readings {
		points = append(points, influxdb2.NewPoint(
			measurement,
			tags,
			map[string]interface{}{"value": r.Value},
			r.CreatedAt.Time,
		))
	}
	return points
}
