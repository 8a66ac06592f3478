package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	constants "snmpagent/config"
	"snmpagent/internal/agent"
	"snmpagent/internal/config"
	"snmpagent/internal/logger"
	"snmpagent/internal/passpersist"
	"snmpagent/internal/telemetry"
)

// NewRootCmd creates the snmpagent command tree. opts are applied to every
// agent the commands build.
func NewRootCmd(v *viper.Viper, version string, opts ...agent.Option) *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "snmpagent [metric]",
		Short: "SNMP pass_persist sub-agent",
		Long: `Serve simulated service metrics to snmpd over the pass_persist protocol.

With no arguments the agent reads GET/SET requests from stdin and answers on
stdout until EOF. With one metric name it prints that value once and exits.

snmpd.conf:
  pass_persist .1.3.6.1.4.1.9999 /usr/local/bin/snmpagent --service cache

Examples:
  snmpagent --service database     # serve the database deployment
  snmpagent cpuUsage               # print one value and exit
  snmpagent oids --service auth    # list the OID table`,
		Args:               cobra.MaximumNArgs(1),
		DisableSuggestions: true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return runQuery(cmd, cfg, args[0], opts)
			}
			return runServe(cmd, cfg, version, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "config file (default searches /etc/snmpagent, ~/.snmpagent and .)")
	flags.StringP("service", "s", "", "deployment to simulate: auth, cache, database, load-balancer, web-server, generic")
	flags.String("log-file", "", "log file path (default /tmp/snmpagent-<service>.log)")
	flags.String("log-level", "", "initial log level: INFO, DEBUG or ERROR")

	_ = v.BindPFlag("service", flags.Lookup("service"))
	_ = v.BindPFlag("log_file", flags.Lookup("log-file"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))

	rootCmd.AddCommand(
		newOIDsCmd(v, &configFile),
		newConfigCmd(v, &configFile),
		newVersionCmd(version),
	)

	return rootCmd
}

func newAgent(cfg *config.Config, log *logger.Logger, opts []agent.Option) (*agent.Agent, error) {
	all := append([]agent.Option{agent.WithLogger(log)}, opts...)
	return agent.New(cfg, all...)
}

// runQuery answers a single metric by name. Faults are printed like protocol
// faults; neither they nor unknown names change the exit status.
func runQuery(cmd *cobra.Command, cfg *config.Config, name string, opts []agent.Option) error {
	log := logger.New(cfg.LogPath())
	defer log.Close()

	a, err := newAgent(cfg, log, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	value, err := a.Query(name)
	switch {
	case errors.Is(err, passpersist.ErrUnknownMetric):
		fmt.Fprintln(out, constants.REPLY_UNKNOWN_METRIC)
	case err != nil:
		log.Error("Query %s failed: %v", name, err)
		fmt.Fprintln(out, constants.REPLY_ERROR_PREFIX+err.Error())
	default:
		fmt.Fprintln(out, value)
	}
	return nil
}

// runServe runs the pass_persist loop until stdin closes or a signal arrives
func runServe(cmd *cobra.Command, cfg *config.Config, version string, opts []agent.Option) error {
	log := logger.New(cfg.LogPath())
	defer log.Close()
	logger.SetDefault(log)

	a, err := newAgent(cfg, log, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TelemetryEnabled() {
		exp, err := telemetry.Start(ctx, telemetry.Config{
			Endpoint:    cfg.OTLPEndpoint,
			Insecure:    cfg.OTLPInsecure,
			Interval:    cfg.TelemetryInterval(),
			ServiceKey:  a.Profile().Key,
			ServiceName: a.Profile().Name,
			Version:     version,
		}, a.State())
		if err != nil {
			logger.Warning("Telemetry disabled: %v", err)
		} else {
			logger.Info("Exporting counters to %s every %s", cfg.OTLPEndpoint, cfg.TelemetryInterval())
			defer func() {
				// ctx is already cancelled on signal
				if err := exp.Shutdown(context.WithoutCancel(ctx)); err != nil {
					logger.Warning("Telemetry shutdown: %v", err)
				}
			}()
		}
	}

	err = a.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	if errors.Is(err, context.Canceled) {
		logger.Info("Received shutdown signal")
		return nil
	}
	return err
}
