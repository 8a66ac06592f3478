package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"snmpagent/internal/config"
	"snmpagent/internal/metrics"
	"snmpagent/internal/ui"
)

func newConfigCmd(v *viper.Viper, configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Show the configuration after merging defaults, the config file,
SNMPAGENT_* environment variables and flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, *configFile)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			source := cfg.File
			if source == "" {
				source = "none (defaults and environment)"
			}

			fmt.Fprintln(out, ui.RenderSectionStart("Configuration"))
			fmt.Fprintln(out, ui.RenderKeyValue("Config file", source))
			fmt.Fprintln(out, ui.RenderKeyValue("Service", cfg.Service))
			fmt.Fprintln(out, ui.RenderKeyValue("Log file", cfg.LogPath()))
			fmt.Fprintln(out, ui.RenderKeyValue("Log level", cfg.LogLevel))
			if cfg.Seed != 0 {
				fmt.Fprintln(out, ui.RenderKeyValue("Seed", fmt.Sprint(cfg.Seed)))
			}
			fmt.Fprintln(out, ui.RenderSectionEnd())

			fmt.Fprintln(out, ui.RenderSectionStart("Telemetry"))
			if cfg.TelemetryEnabled() {
				fmt.Fprintln(out, ui.RenderStatus("success", "OTLP export enabled"))
				fmt.Fprintln(out, ui.RenderKeyValue("Endpoint", cfg.OTLPEndpoint))
				fmt.Fprintln(out, ui.RenderKeyValue("Interval", cfg.TelemetryInterval().String()))
			} else {
				fmt.Fprintln(out, ui.RenderStatus("info", "OTLP export disabled (set otlp_endpoint to enable)"))
			}
			fmt.Fprintln(out, ui.RenderSectionEnd())

			if _, err := metrics.LookupProfile(cfg.Service); err != nil {
				fmt.Fprintln(out, ui.RenderStatus("warning", fmt.Sprintf("Unknown service %q, known: %s", cfg.Service, strings.Join(metrics.ProfileKeys(), ", "))))
			}
			return nil
		},
	}
}
