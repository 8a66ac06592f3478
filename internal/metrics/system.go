package metrics

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
)

// SystemSampler is the host metric source the simulated deployments build on
type SystemSampler interface {
	CPUPercent() (float64, error)
	MemoryUsedBytes() (uint64, error)
	NetIOCounters() (recv uint64, sent uint64, err error)
}

// HostSampler reads live host metrics via gopsutil
type HostSampler struct{}

// NewHostSampler creates a sampler and primes the CPU baseline so the first
// CPUPercent call returns a delta instead of blocking for an interval.
func NewHostSampler() *HostSampler {
	_, _ = cpu.Percent(0, false)
	return &HostSampler{}
}

// CPUPercent returns overall CPU busy percentage since the previous call
func (h *HostSampler) CPUPercent() (float64, error) {
	percent, err := cpu.Percent(0, false)
	if err != nil {
		return 0, fmt.Errorf("failed to get CPU usage: %w", err)
	}

	if len(percent) > 0 {
		return percent[0], nil
	}

	return 0, fmt.Errorf("no CPU usage data available")
}

// MemoryUsedBytes returns used physical memory
func (h *HostSampler) MemoryUsedBytes() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, fmt.Errorf("failed to get memory usage: %w", err)
	}

	return vm.Used, nil
}

// NetIOCounters returns cumulative bytes received and sent across all interfaces
func (h *HostSampler) NetIOCounters() (uint64, uint64, error) {
	counters, err := net.IOCounters(false)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get network counters: %w", err)
	}

	if len(counters) == 0 {
		return 0, 0, fmt.Errorf("no network counters available")
	}

	return counters[0].BytesRecv, counters[0].BytesSent, nil
}
