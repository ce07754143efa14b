package collector

import (
	"time"

	golibvirt "github.com/digitalocean/go-libvirt"

	"vmtop/internal/models"
)

// libvirt VIR_DOMAIN_RUNNING. Every other state, including paused and
// crashed, is surfaced as not running.
const domainStateRunning = 1

const unknownField = "unknown"

// parseRecord maps one domain's typed-param bag onto a VMStats. Field lookup
// is the only place that knows the libvirt counter names; anything absent or
// of an unexpected type keeps its default, it never fails the record.
func parseRecord(rec golibvirt.DomainStatsRecord, now time.Time) models.VMStats {
	vm := models.VMStats{
		Identity: models.VMIdentity{
			ID:   rec.Dom.ID,
			Name: rec.Dom.Name,
		},
		CapturedAt: now,
		NetName:    unknownField,
		DiskName:   unknownField,
		DiskPath:   unknownField,
	}
	if vm.Identity.Name == "" {
		vm.Identity.Name = unknownField
	}

	for _, p := range rec.Params {
		switch p.Field {
		case "state.state":
			vm.Running = asUint64(p.Value.I) == domainStateRunning
		case "cpu.time":
			vm.CPUTimeNs = asUint64(p.Value.I)
		case "balloon.rss":
			vm.MemRSSBytes = asUint64(p.Value.I)
		case "balloon.disk_caches":
			vm.MemCacheBytes = asUint64(p.Value.I)
		case "net.0.name":
			vm.NetName = asString(p.Value.I, vm.NetName)
		case "net.0.rx.bytes":
			vm.NetRxBytes = asUint64(p.Value.I)
		case "net.0.tx.bytes":
			vm.NetTxBytes = asUint64(p.Value.I)
		case "block.0.name":
			vm.DiskName = asString(p.Value.I, vm.DiskName)
		case "block.0.path":
			vm.DiskPath = asString(p.Value.I, vm.DiskPath)
		case "block.0.rd.bytes":
			vm.DiskReadBytes = asUint64(p.Value.I)
		case "block.0.wr.bytes":
			vm.DiskWriteBytes = asUint64(p.Value.I)
		}
	}
	return vm
}

func asUint64(v interface{}) uint64 {
	switch t := v.(type) {
	case uint64:
		return t
	case int64:
		if t < 0 {
			return 0
		}
		return uint64(t)
	case uint32:
		return uint64(t)
	case int32:
		if t < 0 {
			return 0
		}
		return uint64(t)
	case int:
		if t < 0 {
			return 0
		}
		return uint64(t)
	default:
		return 0
	}
}

func asString(v interface{}, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}
