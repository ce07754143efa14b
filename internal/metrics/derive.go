// Package metrics turns pairs of time-separated counter snapshots into
// display rows.
package metrics

import (
	"fmt"
	"math"

	"vmtop/internal/models"
)

// Derive builds the display row for one VM from its previous and current
// snapshots. prev is nil on first observation, in which case no rate is
// available yet and the CPU column reads 0.00.
//
// Only CPU is rate-derived. Memory is a level, not a counter, so the row
// reports the current RSS+cache total; the network and disk counters are
// shown as cumulative totals.
func Derive(prev *models.VMStats, cur models.VMStats) models.Row {
	row := models.Row{
		Identity:     cur.Identity,
		MemDisplay:   fmt.Sprintf("%d Mb", (cur.MemRSSBytes+cur.MemCacheBytes)/1024),
		Status:       statusLabel(cur.Running),
		NetName:      cur.NetName,
		NetRxKiB:     float64(cur.NetRxBytes) / 1024,
		NetTxKiB:     float64(cur.NetTxBytes) / 1024,
		DiskName:     cur.DiskName,
		DiskPath:     cur.DiskPath,
		DiskReadKiB:  float64(cur.DiskReadBytes) / 1024,
		DiskWriteKiB: float64(cur.DiskWriteBytes) / 1024,
	}

	if prev == nil {
		return row
	}

	// elapsed <= 0 means a duplicate or out-of-order tick; report no load
	// rather than dividing by it.
	elapsed := cur.CapturedAt.Sub(prev.CapturedAt).Seconds()
	if elapsed <= 0 {
		return row
	}

	// A current counter smaller than the previous one means the VM restarted
	// and the counter reset. The delta saturates at zero so the reset shows
	// as an idle tick instead of an absurd rate.
	deltaNs := saturatingSub(cur.CPUTimeNs, prev.CPUTimeNs)
	row.CPUPercent = round2(float64(deltaNs) / 1e9 / elapsed * 100)
	return row
}

func statusLabel(running bool) string {
	if running {
		return models.StatusOn
	}
	return models.StatusOff
}

func saturatingSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
