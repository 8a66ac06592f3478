package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"snmpagent/internal/agent"
	"snmpagent/internal/config"
	"snmpagent/internal/metrics"
	"snmpagent/internal/passpersist"
	"snmpagent/internal/ui"
)

func newOIDsCmd(v *viper.Viper, configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "oids",
		Short: "List the OIDs served by a deployment",
		Long: `List every OID the agent answers, its one-shot metric name, value type
and access. Only logLevel accepts SET.

Examples:
  snmpagent oids --service load-balancer`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, *configFile)
			if err != nil {
				return err
			}
			profile, err := metrics.LookupProfile(cfg.Service)
			if err != nil {
				return err
			}

			rows := make([]ui.OIDRow, 0, len(agent.Table))
			for _, e := range agent.Table {
				desc := e.Description
				if e.Role == agent.RoleRequestsProcessed {
					desc = profile.CounterDesc
				}
				rows = append(rows, ui.OIDRow{
					OID:         e.OID,
					Name:        e.Name,
					Type:        e.Kind.String(),
					Writable:    e.Access == passpersist.ReadWrite,
					Description: desc,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.RenderOIDTable(fmt.Sprintf("%s (%s)", profile.Name, profile.Key), rows))
			return nil
		},
	}
}
