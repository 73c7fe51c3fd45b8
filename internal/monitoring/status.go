package monitoring

import (
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Status is a point-in-time snapshot of the host running the service.
type Status struct {
	HostUptimeSeconds uint64  `json:"hostUptimeSeconds"`
	CPUPercent        float64 `json:"cpuPercent"`
	MemoryUsedMB      uint64  `json:"memoryUsedMb"`
	MemoryTotalMB     uint64  `json:"memoryTotalMb"`
	CollectedAt       string  `json:"collectedAt"`
}

// CollectStatus gathers host stats. Individual probe failures zero the
// affected field rather than failing the snapshot.
func CollectStatus() Status {
	status := Status{CollectedAt: time.Now().UTC().Format(time.RFC3339)}

	if uptime, err := host.Uptime(); err == nil {
		status.HostUptimeSeconds = uptime
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		status.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		status.MemoryUsedMB = vm.Used / 1024 / 1024
		status.MemoryTotalMB = vm.Total / 1024 / 1024
	}
	return status
}
