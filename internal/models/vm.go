package models

import "time"

// VMIdentity identifies a virtual machine across refresh ticks. Name is the
// stable join key; the hypervisor-assigned numeric ID changes when a VM
// restarts and is display-only. Inactive domains report ID -1.
type VMIdentity struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

// VMStats is one VM's full counter reading at a single point in time.
// CapturedAt is taken locally at parse time, not from the hypervisor.
// CPUTimeNs, the network byte counters and the disk byte counters are
// cumulative totals since VM start and reset when the VM restarts.
type VMStats struct {
	Identity   VMIdentity `json:"identity"`
	CapturedAt time.Time  `json:"captured_at"`
	Running    bool       `json:"running"`

	CPUTimeNs     uint64 `json:"cpu_time_ns"`
	MemRSSBytes   uint64 `json:"mem_rss_bytes"`
	MemCacheBytes uint64 `json:"mem_cache_bytes"`

	NetName    string `json:"net_name"`
	NetRxBytes uint64 `json:"net_rx_bytes"`
	NetTxBytes uint64 `json:"net_tx_bytes"`

	DiskName       string `json:"disk_name"`
	DiskPath       string `json:"disk_path"`
	DiskReadBytes  uint64 `json:"disk_read_bytes"`
	DiskWriteBytes uint64 `json:"disk_write_bytes"`
}

// Row is one VM's display record, rebuilt in full every tick from a
// (previous, current) snapshot pair. CPUPercent is rounded to two decimals.
// The network and disk values are cumulative totals scaled by 1024; the
// renderer labels them "MB" for parity with the byte counters' magnitude.
type Row struct {
	Identity   VMIdentity `json:"identity"`
	CPUPercent float64    `json:"cpu_percent"`
	MemDisplay string     `json:"mem_display"`
	Status     string     `json:"status"`

	NetName  string  `json:"net_name"`
	NetRxKiB float64 `json:"net_rx_kib"`
	NetTxKiB float64 `json:"net_tx_kib"`

	DiskName     string  `json:"disk_name"`
	DiskPath     string  `json:"disk_path"`
	DiskReadKiB  float64 `json:"disk_read_kib"`
	DiskWriteKiB float64 `json:"disk_write_kib"`
}

// Status labels surfaced to the operator. Every non-running hypervisor state
// (paused, crashed, shutting down) collapses to StatusOff.
const (
	StatusOn  = "on"
	StatusOff = "off"
)
