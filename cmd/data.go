package cmd

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"text/tabwriter"

	"farmhub-client/internal/chart"
	"farmhub-client/internal/farmhub"

	"github.com/spf13/cobra"
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Fetch calibrated readings for a device sensor",
	Long: `Fetch readings for one device/sensor pair over a time range. --start and --stop are
read as wall-clock times in --timezone. Known sensors are converted to physical units.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		client, cfg, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		q, err := readQuery(cmd, cfg.Location)
		if err != nil {
			return err
		}
		return RunData(cmd.Context(), client, q, format, cmd.OutOrStdout())
	},
}

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Plot calibrated readings for a device sensor to an image file",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		title, _ := cmd.Flags().GetString("title")
		ylabel, _ := cmd.Flags().GetString("ylabel")
		client, cfg, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		q, err := readQuery(cmd, cfg.Location)
		if err != nil {
			return err
		}
		return RunPlot(cmd.Context(), client, q, chart.Options{Title: title, YLabel: ylabel, Out: out}, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(dataCmd)
	addQueryFlags(dataCmd)
	dataCmd.Flags().String("format", "table", "Output format: table, csv or json")

	rootCmd.AddCommand(plotCmd)
	addQueryFlags(plotCmd)
	plotCmd.Flags().String("out", "farmhub.png", "Output image; the extension selects the format (png, svg, pdf)")
	plotCmd.Flags().String("title", "", "Chart title")
	plotCmd.Flags().String("ylabel", "", "Y axis label (default looked up from the sensor listing)")
}

func RunData(ctx context.Context, client farmhub.Client, q Query, format string, writer io.Writer) error {
	switch format {
	case "table", "csv", "json":
	default:
		return fmt.Errorf("invalid format: %s. Use 'table', 'csv' or 'json'", format)
	}

	readings, err := client.GetData(ctx, q.DeviceID, q.SensorID, q.Start, q.Stop)
	if err != nil {
		return fmt.Errorf("failed to fetch data: %w", err)
	}

	switch format {
	case "csv":
		w := csv.NewWriter(writer)
		_ = w.Write([]string{"created_at", "value"})
		for _, r := range readings {
			_ = w.Write([]string{formatTime(r.CreatedAt.Time), strconv.FormatFloat(r.Value, 'g', -1, 64)})
		}
		w.Flush()
		return w.Error()
	case "json":
		enc := json.NewEncoder(writer)
		enc.SetIndent("", "  ")
		if readings == nil {
			readings = []farmhub.Reading{}
		}
		return enc.Encode(readings)
	default:
		tw := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "CREATED AT\tVALUE")
		for _, r := range readings {
			fmt.Fprintf(tw, "%s\t%g\n", formatTime(r.CreatedAt.Time), r.Value)
		}
		fmt.Fprintf(tw, "%d readings\t\n", len(readings))
		return tw.Flush()
	}
}

func RunPlot(ctx context.Context, client farmhub.Client, q Query, opts chart.Options, writer io.Writer) error {
	if opts.YLabel == "" {
		if sensors, err := client.ListSensors(ctx); err != nil {
			slog.Debug("Plotting without sensor label", "error", err)
		} else if s, ok := sensors[q.DeviceID][q.SensorID]; ok {
			opts.YLabel = fmt.Sprintf("%s (%s)", s.Name, s.Units)
		}
	}
	if err := chart.PlotData(ctx, client, q.DeviceID, q.SensorID, q.Start, q.Stop, opts); err != nil {
		return err
	}
	fmt.Fprintf(writer, "Wrote %s\n", opts.Out)
	return nil
}
