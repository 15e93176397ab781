package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"farmhub-client/internal/farmhub"
	"farmhub-client/internal/sink"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export calibrated readings to InfluxDB and/or MQTT",
	Long: `Fetch readings for one device/sensor pair and write them to InfluxDB (when
--influx-url is set) and/or publish them to an MQTT broker (when --mqtt-broker is set).`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addQueryFlags(exportCmd)

	flags := exportCmd.Flags()
	flags.String("influx-url", "", "InfluxDB URL")
	flags.String("influx-token", "", "InfluxDB token")
	flags.String("influx-org", "", "InfluxDB organization")
	flags.String("influx-bucket", "", "InfluxDB bucket")
	flags.String("influx-measurement", sink.DefaultMeasurement, "InfluxDB measurement name")
	flags.String("mqtt-broker", "", "MQTT broker, e.g. tcp://localhost:1883")
	flags.String("mqtt-client-id", "farmhub-export", "MQTT client id")
	flags.String("mqtt-username", "", "MQTT username")
	flags.String("mqtt-password", "", "MQTT password")
	flags.String("mqtt-topic-prefix", sink.DefaultTopicPrefix, "MQTT topic prefix")
	flags.Int("mqtt-qos", 1, "MQTT QoS (0, 1 or 2)")

	for _, name := range []string{
		"influx-url", "influx-token", "influx-org", "influx-bucket", "influx-measurement",
		"mqtt-broker", "mqtt-client-id", "mqtt-username", "mqtt-password", "mqtt-topic-prefix", "mqtt-qos",
	} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	_ = viper.BindEnv("influx-url", "INFLUXDB_URL")
	_ = viper.BindEnv("influx-token", "INFLUXDB_TOKEN")
	_ = viper.BindEnv("influx-org", "INFLUXDB_ORG")
	_ = viper.BindEnv("influx-bucket", "INFLUXDB_BUCKET")
	_ = viper.BindEnv("mqtt-broker", "MQTT_BROKER")
	_ = viper.BindEnv("mqtt-username", "MQTT_USERNAME")
	_ = viper.BindEnv("mqtt-password", "MQTT_PASSWORD")
}

func runExport(cmd *cobra.Command, args []string) error {
	sinks, err := openSinks()
	if err != nil {
		return err
	}
	defer closeSinks(sinks)

	client, cfg, err := connect(cmd.Context())
	if err != nil {
		return err
	}
	q, err := readQuery(cmd, cfg.Location)
	if err != nil {
		return err
	}
	return RunExport(cmd.Context(), client, q, sinks, cmd.OutOrStdout())
}

func openSinks() ([]sink.Sink, error) {
	var sinks []sink.Sink
	if url := viper.GetString("influx-url"); url != "" {
		s, err := sink.NewInfluxSink(sink.InfluxConfig{
			URL:         url,
			Token:       viper.GetString("influx-token"),
			Org:         viper.GetString("influx-org"),
			Bucket:      viper.GetString("influx-bucket"),
			Measurement: viper.GetString("influx-measurement"),
		})
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s)
	}
	if broker := viper.GetString("mqtt-broker"); broker != "" {
		qos := viper.GetInt("mqtt-qos")
		if qos < 0 || qos > 2 {
			closeSinks(sinks)
			return nil, fmt.Errorf("invalid MQTT QoS %d", qos)
		}
		s, err := sink.NewMQTTSink(sink.MQTTConfig{
			Broker:      broker,
			ClientID:    viper.GetString("mqtt-client-id"),
			Username:    viper.GetString("mqtt-username"),
			Password:    viper.GetString("mqtt-password"),
			TopicPrefix: viper.GetString("mqtt-topic-prefix"),
			QoS:         byte(qos),
		})
		if err != nil {
			closeSinks(sinks)
			return nil, err
		}
		sinks = append(sinks, s)
	}
	if len(sinks) == 0 {
		return nil, errors.New("no export target configured (set --influx-url and/or --mqtt-broker)")
	}
	return sinks, nil
}

func closeSinks(sinks []sink.Sink) {
	for _, s := range sinks {
		s.Close()
	}
}

// RunExport fetches one series and writes it to every sink, attempting all sinks even
// when one fails.
func RunExport(ctx context.Context, client farmhub.Client, q Query, sinks []sink.Sink, writer io.Writer) error {
	readings, err := client.GetData(ctx, q.DeviceID, q.SensorID, q.Start, q.Stop)
	if err != nil {
		return fmt.Errorf("failed to fetch data: %w", err)
	}

	series := sink.Series{DeviceID: q.DeviceID, SensorID: q.SensorID, Readings: readings}
	if sensors, err := client.ListSensors(ctx); err != nil {
		slog.Warn("Exporting without sensor names", "error", err)
	} else if s, ok := sensors[q.DeviceID][q.SensorID]; ok {
		series.Name = s.Name
		series.Units = s.Units
	}

	var errs []error
	for _, s := range sinks {
		if err := s.Write(ctx, series); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	fmt.Fprintf(writer, "Exported %d readings to %d sinks\n", len(readings), len(sinks))
	return nil
}
