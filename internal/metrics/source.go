// Package metrics supplies the per-deployment values served by the agent.
package metrics

// Source produces the current metrics for one deployment.
// Some readers advance simulated state: PrimaryCounter grows on every call
// and ActiveServices may drift for deployments that model backend churn.
type Source interface {
	ServiceName() string
	Status() string
	CPUPercent() (float64, error)
	MemoryMB() (float64, error)
	LatencyMs() float64
	Uptime() string
	PrimaryCounter() int64
	NetworkInKB() (int64, error)
	NetworkOutKB() (int64, error)
	InterfaceCount() int
	TotalServices() int
	ActiveServices() int
}

// RequestCounter exposes the agent's served-request tally to deployments
// whose primary counter is the request count itself.
type RequestCounter interface {
	RequestCount() int64
}
