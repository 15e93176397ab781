package farmhub

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

type Device struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	InsertedAt Timestamp `json:"inserted_at"`
}

type Sensor struct {
	ID       int    `json:"id"`
	DeviceID int    `json:"device_id"`
	Name     string `json:"name"`
	Units    string `json:"units"`
}

type Reading struct {
	CreatedAt Timestamp `json:"created_at"`
	Value     float64   `json:"value"`
}

type SensorDefinition struct {
	Name  string `json:"name"`
	Units string `json:"units"`
}

type sensorRecord struct {
	ID               int              `json:"id"`
	SensorDefinition SensorDefinition `json:"sensor_definition"`
}

// Timestamp decodes the timestamp shapes the service emits: RFC 3339, naive
// ISO-8601 (taken as UTC) or seconds since the epoch.
type Timestamp struct {
	time.Time
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if b[0] != '"' {
		sec, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return fmt.Errorf("invalid timestamp %s: %w", b, err)
		}
		whole, frac := math.Modf(sec)
		t.Time = time.Unix(int64(whole), int64(frac*1e9)).UTC()
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed
		return nil
	}
	for _, layout := range naiveLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}
