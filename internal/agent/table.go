package agent

import (
	"fmt"

	constants "snmpagent/config"
	"snmpagent/internal/metrics"
	"snmpagent/internal/passpersist"
)

// Role is the semantic meaning of an OID in the deployment table
type Role int

const (
	RoleSysName Role = iota
	RoleSysStatus
	RoleCPUUsage
	RoleMemoryUsage
	RoleAvgLatency
	RoleTotalErrors
	RoleLogLevel
	RoleUptime
	RoleRequestsProcessed
	RoleNetworkIn
	RoleNetworkOut
	RoleIfNumber
	RoleServiceCount
	RoleActiveServices
)

// Entry is one row of the static OID table
type Entry struct {
	OID         string
	Name        string
	Role        Role
	Kind        passpersist.Kind
	Access      passpersist.Access
	Description string
}

// Table is the OID layout shared by every deployment, in registration order
var Table = []Entry{
	{constants.OID_SYS_NAME, constants.METRIC_SYS_NAME, RoleSysName, passpersist.KindString, passpersist.ReadOnly, "Service display name"},
	{constants.OID_SYS_STATUS, constants.METRIC_SYS_STATUS, RoleSysStatus, passpersist.KindString, passpersist.ReadOnly, "Service status"},
	{constants.OID_CPU_USAGE, constants.METRIC_CPU_USAGE, RoleCPUUsage, passpersist.KindGauge, passpersist.ReadOnly, "CPU usage (%)"},
	{constants.OID_MEMORY_USAGE, constants.METRIC_MEMORY_USAGE, RoleMemoryUsage, passpersist.KindGauge, passpersist.ReadOnly, "Memory used (MB)"},
	{constants.OID_AVG_LATENCY, constants.METRIC_AVG_LATENCY, RoleAvgLatency, passpersist.KindGauge, passpersist.ReadOnly, "Average latency (ms)"},
	{constants.OID_TOTAL_ERRORS, constants.METRIC_TOTAL_ERRORS, RoleTotalErrors, passpersist.KindCounter, passpersist.ReadOnly, "Requests that failed"},
	{constants.OID_LOG_LEVEL, constants.METRIC_LOG_LEVEL, RoleLogLevel, passpersist.KindString, passpersist.ReadWrite, "Log level (INFO, DEBUG, ERROR)"},
	{constants.OID_UPTIME, constants.METRIC_UPTIME, RoleUptime, passpersist.KindString, passpersist.ReadOnly, "Agent uptime"},
	{constants.OID_REQUESTS_PROCESSED, constants.METRIC_REQUESTS_PROCESSED, RoleRequestsProcessed, passpersist.KindCounter, passpersist.ReadOnly, "Deployment primary counter"},
	{constants.OID_NETWORK_IN, constants.METRIC_NETWORK_IN, RoleNetworkIn, passpersist.KindCounter, passpersist.ReadOnly, "Network received (KB)"},
	{constants.OID_NETWORK_OUT, constants.METRIC_NETWORK_OUT, RoleNetworkOut, passpersist.KindCounter, passpersist.ReadOnly, "Network sent (KB)"},
	{constants.OID_IF_NUMBER, constants.METRIC_IF_NUMBER, RoleIfNumber, passpersist.KindInteger, passpersist.ReadOnly, "Network interfaces"},
	{constants.OID_SERVICE_COUNT, constants.METRIC_SERVICE_COUNT, RoleServiceCount, passpersist.KindInteger, passpersist.ReadOnly, "Total services"},
	{constants.OID_ACTIVE_SERVICES, constants.METRIC_ACTIVE_SERVICES, RoleActiveServices, passpersist.KindInteger, passpersist.ReadOnly, "Active services"},
}

// BuildRegistry binds every table entry to src and state
func BuildRegistry(src metrics.Source, state *passpersist.AgentState) (*passpersist.Registry, error) {
	reg := passpersist.NewRegistry()
	for _, e := range Table {
		b := passpersist.Binding{
			OID:    e.OID,
			Name:   e.Name,
			Kind:   e.Kind,
			Access: e.Access,
			Get:    provider(e.Role, src, state),
		}
		if e.Role == RoleLogLevel {
			b.Set = state.SetLogLevel
		}
		if err := reg.Register(b); err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", e.Name, err)
		}
	}
	return reg, nil
}

func provider(role Role, src metrics.Source, state *passpersist.AgentState) passpersist.Provider {
	str := func(fn func() string) passpersist.Provider {
		return func() (passpersist.Value, error) {
			return passpersist.StringValue(fn()), nil
		}
	}
	gauge := func(fn func() (float64, error)) passpersist.Provider {
		return func() (passpersist.Value, error) {
			v, err := fn()
			if err != nil {
				return passpersist.Value{}, err
			}
			return passpersist.GaugeValue(v), nil
		}
	}
	counter := func(fn func() (int64, error)) passpersist.Provider {
		return func() (passpersist.Value, error) {
			v, err := fn()
			if err != nil {
				return passpersist.Value{}, err
			}
			return passpersist.CounterValue(v), nil
		}
	}
	integer := func(fn func() int) passpersist.Provider {
		return func() (passpersist.Value, error) {
			return passpersist.IntegerValue(int64(fn())), nil
		}
	}

	switch role {
	case RoleSysName:
		return str(src.ServiceName)
	case RoleSysStatus:
		return str(src.Status)
	case RoleCPUUsage:
		return gauge(src.CPUPercent)
	case RoleMemoryUsage:
		return gauge(src.MemoryMB)
	case RoleAvgLatency:
		return gauge(func() (float64, error) { return src.LatencyMs(), nil })
	case RoleTotalErrors:
		return counter(func() (int64, error) { return state.ErrorCount(), nil })
	case RoleLogLevel:
		return str(func() string { return string(state.LogLevel()) })
	case RoleUptime:
		return str(src.Uptime)
	case RoleRequestsProcessed:
		return counter(func() (int64, error) { return src.PrimaryCounter(), nil })
	case RoleNetworkIn:
		return counter(src.NetworkInKB)
	case RoleNetworkOut:
		return counter(src.NetworkOutKB)
	case RoleIfNumber:
		return integer(src.InterfaceCount)
	case RoleServiceCount:
		return integer(src.TotalServices)
	case RoleActiveServices:
		return integer(src.ActiveServices)
	}
	return nil
}
