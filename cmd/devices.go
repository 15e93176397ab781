package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"farmhub-client/internal/farmhub"

	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List devices",
	Long:  `List the devices registered to the FarmHub account with their location and creation time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		return RunDevices(cmd.Context(), client, cmd.OutOrStdout())
	},
}

var sensorsCmd = &cobra.Command{
	Use:   "sensors",
	Short: "List sensors per device",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		return RunSensors(cmd.Context(), client, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(sensorsCmd)
}

func RunDevices(ctx context.Context, client farmhub.Client, writer io.Writer) error {
	devices, err := client.ListDevices(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch devices: %w", err)
	}

	tw := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLAT\tLNG\tINSERTED AT")
	for _, id := range sortedKeys(devices) {
		d := devices[id]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", id, d.Name, formatCoord(d.Lat), formatCoord(d.Lng), formatTime(d.InsertedAt.Time))
	}
	return tw.Flush()
}

func RunSensors(ctx context.Context, client farmhub.Client, writer io.Writer) error {
	sensors, err := client.ListSensors(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch sensors: %w", err)
	}

	tw := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DEVICE\tSENSOR\tNAME\tUNITS")
	for _, deviceID := range sortedKeys(sensors) {
		devSensors := sensors[deviceID]
		if len(devSensors) == 0 {
			fmt.Fprintf(tw, "%d\t-\t\t\n", deviceID)
			continue
		}
		for _, sensorID := range sortedKeys(devSensors) {
			s := devSensors[sensorID]
			fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", deviceID, sensorID, s.Name, s.Units)
		}
	}
	return tw.Flush()
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
