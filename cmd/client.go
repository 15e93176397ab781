package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"farmhub-client/internal/calibration"
	"farmhub-client/internal/farmhub"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Query selects one device/sensor series. Start and Stop are naive wall-clock times.
type Query struct {
	DeviceID int
	SensorID int
	Start    time.Time
	Stop     time.Time
}

var naiveFlagLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseNaive(s string) (time.Time, error) {
	for _, layout := range naiveFlagLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q, use YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS", s)
}

func loadClientConfig() (farmhub.Config, error) {
	email := viper.GetString("email")
	password := viper.GetString("password")
	if email == "" || password == "" {
		return farmhub.Config{}, errors.New("email and password are required (set via --email/--password flags or FARMHUB_EMAIL/FARMHUB_PASSWORD env vars)")
	}

	loc, err := farmhub.LoadLocation(viper.GetString("timezone"))
	if err != nil {
		return farmhub.Config{}, err
	}
	table, err := calibration.Parse(viper.GetString("calibration"))
	if err != nil {
		return farmhub.Config{}, fmt.Errorf("failed to parse calibration: %w", err)
	}

	return farmhub.Config{
		BaseURL:     viper.GetString("base-url"),
		Email:       email,
		Password:    password,
		Location:    loc,
		Calibration: table,
		Timeout:     viper.GetDuration("timeout"),
		Logger:      slog.Default(),
	}, nil
}

func connect(ctx context.Context) (farmhub.Client, farmhub.Config, error) {
	cfg, err := loadClientConfig()
	if err != nil {
		return nil, cfg, err
	}
	slog.Info("Connecting to FarmHub", "url", cfg.BaseURL)
	client, err := farmhub.Login(ctx, cfg)
	if err != nil {
		return nil, cfg, fmt.Errorf("failed to connect: %w", err)
	}
	slog.Info("Connected")
	return client, cfg, nil
}

func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().Int("device", 0, "Device id (see the devices command)")
	cmd.Flags().Int("sensor", 0, "Sensor id (see the sensors command)")
	cmd.Flags().String("start", "", "Start of the range, local time: YYYY-MM-DD[THH:MM:SS]")
	cmd.Flags().String("stop", "", "End of the range, local time (default now)")
	_ = cmd.MarkFlagRequired("device")
	_ = cmd.MarkFlagRequired("sensor")
	_ = cmd.MarkFlagRequired("start")
}

// readQuery reads the query flags; an empty --stop means the current wall clock in loc.
func readQuery(cmd *cobra.Command, loc *time.Location) (Query, error) {
	device, _ := cmd.Flags().GetInt("device")
	sensor, _ := cmd.Flags().GetInt("sensor")
	startStr, _ := cmd.Flags().GetString("start")
	stopStr, _ := cmd.Flags().GetString("stop")

	start, err := parseNaive(startStr)
	if err != nil {
		return Query{}, err
	}
	stop := time.Now().In(loc)
	if stopStr != "" {
		if stop, err = parseNaive(stopStr); err != nil {
			return Query{}, err
		}
	}
	return Query{DeviceID: device, SensorID: sensor, Start: start, Stop: stop}, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
