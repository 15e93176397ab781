// Package sink exports fetched FarmHub series to time-series stores and brokers.
package sink

import (
	"context"

	"farmhub-client/internal/farmhub"
)

// Series is one calibrated device/sensor series.
type Series struct {
	DeviceID int
	SensorID int
	Name     string
	Units    string
	Readings []farmhub.Reading
}

type Sink interface {
	Write(ctx context.Context, series Series) error
	Close()
}
