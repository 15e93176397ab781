package cmd

import (
	"log/slog"
	"os"
	"strings"

	"farmhub-client/internal/calibration"
	"farmhub-client/internal/farmhub"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "farmhub",
	Short: "Query the FarmHub sensor service",
	Long: `Query devices, sensors and calibrated readings from the FarmHub agricultural
sensor service, plot them, export them, or serve them as Prometheus metrics.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(newLogger(viper.GetString("log-level")))
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("email", "", "FarmHub account email")
	flags.String("password", "", "FarmHub account password")
	flags.String("base-url", farmhub.DefaultBaseURL, "FarmHub API base URL")
	flags.String("timezone", farmhub.DefaultTimezone, "Time zone --start/--stop are read in")
	flags.String("calibration", calibration.Default().String(), "Per-sensor calibrations as id=gain:offset, comma separated")
	flags.Duration("timeout", farmhub.DefaultTimeout, "HTTP request timeout")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")

	for _, name := range []string{"email", "password", "base-url", "timezone", "calibration", "timeout", "log-level"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	_ = viper.BindEnv("email", "FARMHUB_EMAIL")
	_ = viper.BindEnv("password", "FARMHUB_PASSWORD")
}

func initConfig() {
	// A missing .env is fine; the environment may already be set.
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded .env file")
	}
	viper.SetEnvPrefix("farmhub")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
