package collector

import (
	"testing"
	"time"

	golibvirt "github.com/digitalocean/go-libvirt"
	"github.com/stretchr/testify/assert"
)

func param(field string, value interface{}) golibvirt.TypedParam {
	return golibvirt.TypedParam{Field: field, Value: golibvirt.TypedParamValue{I: value}}
}

func TestParseRecord_FullBag(t *testing.T) {
	now := time.Now()
	rec := golibvirt.DomainStatsRecord{
		Dom: golibvirt.Domain{Name: "web", ID: 3},
		Params: []golibvirt.TypedParam{
			param("state.state", uint64(1)),
			param("cpu.time", uint64(42_000_000_000)),
			param("balloon.rss", uint64(1024)),
			param("balloon.disk_caches", uint64(512)),
			param("net.0.name", "vnet0"),
			param("net.0.rx.bytes", uint64(100)),
			param("net.0.tx.bytes", uint64(200)),
			param("block.0.name", "vda"),
			param("block.0.path", "/var/lib/libvirt/images/web.qcow2"),
			param("block.0.rd.bytes", uint64(300)),
			param("block.0.wr.bytes", uint64(400)),
		},
	}

	vm := parseRecord(rec, now)

	assert.Equal(t, "web", vm.Identity.Name)
	assert.Equal(t, int32(3), vm.Identity.ID)
	assert.Equal(t, now, vm.CapturedAt)
	assert.True(t, vm.Running)
	assert.Equal(t, uint64(42_000_000_000), vm.CPUTimeNs)
	assert.Equal(t, uint64(1024), vm.MemRSSBytes)
	assert.Equal(t, uint64(512), vm.MemCacheBytes)
	assert.Equal(t, "vnet0", vm.NetName)
	assert.Equal(t, uint64(100), vm.NetRxBytes)
	assert.Equal(t, uint64(200), vm.NetTxBytes)
	assert.Equal(t, "vda", vm.DiskName)
	assert.Equal(t, "/var/lib/libvirt/images/web.qcow2", vm.DiskPath)
	assert.Equal(t, uint64(300), vm.DiskReadBytes)
	assert.Equal(t, uint64(400), vm.DiskWriteBytes)
}

func TestParseRecord_EmptyBagTakesDefaults(t *testing.T) {
	rec := golibvirt.DomainStatsRecord{Dom: golibvirt.Domain{Name: "idle", ID: -1}}

	vm := parseRecord(rec, time.Now())

	assert.Equal(t, "idle", vm.Identity.Name)
	assert.Equal(t, int32(-1), vm.Identity.ID, "inactive domains keep the -1 id, name is the join key")
	assert.False(t, vm.Running)
	assert.Zero(t, vm.CPUTimeNs)
	assert.Equal(t, "unknown", vm.NetName)
	assert.Equal(t, "unknown", vm.DiskName)
	assert.Equal(t, "unknown", vm.DiskPath)
}

func TestParseRecord_OnlyRunningStateMapsOn(t *testing.T) {
	// 3 is VIR_DOMAIN_PAUSED; anything but 1 renders as off.
	for _, state := range []uint64{0, 2, 3, 4, 5, 6} {
		rec := golibvirt.DomainStatsRecord{
			Dom:    golibvirt.Domain{Name: "web"},
			Params: []golibvirt.TypedParam{param("state.state", state)},
		}
		assert.False(t, parseRecord(rec, time.Now()).Running, "state %d", state)
	}
}

func TestParseRecord_MalformedFieldKeepsDefault(t *testing.T) {
	rec := golibvirt.DomainStatsRecord{
		Dom: golibvirt.Domain{Name: "web"},
		Params: []golibvirt.TypedParam{
			param("cpu.time", "not a number"),
			param("net.0.name", uint64(9)),
			param("balloon.rss", uint64(2048)),
		},
	}

	vm := parseRecord(rec, time.Now())

	assert.Zero(t, vm.CPUTimeNs, "a mistyped counter takes its default")
	assert.Equal(t, "unknown", vm.NetName)
	assert.Equal(t, uint64(2048), vm.MemRSSBytes, "the rest of the record still parses")
}

func TestParseRecord_UnknownFieldsIgnored(t *testing.T) {
	rec := golibvirt.DomainStatsRecord{
		Dom: golibvirt.Domain{Name: "web"},
		Params: []golibvirt.TypedParam{
			param("vcpu.current", uint64(4)),
			param("block.1.rd.bytes", uint64(999)),
		},
	}

	vm := parseRecord(rec, time.Now())

	assert.Zero(t, vm.DiskReadBytes, "only the first block device feeds the row")
}

func TestParseRecord_MissingNameDefaults(t *testing.T) {
	vm := parseRecord(golibvirt.DomainStatsRecord{}, time.Now())
	assert.Equal(t, "unknown", vm.Identity.Name)
}

func TestFetchFlagsCoverActiveAndInactive(t *testing.T) {
	// The stats RPC takes its flags as a bare uint32.
	var flags uint32 = fetchFlags
	assert.Equal(t, uint32(golibvirt.ConnectGetAllDomainsStatsActive), flags&uint32(golibvirt.ConnectGetAllDomainsStatsActive))
	assert.Equal(t, uint32(golibvirt.ConnectGetAllDomainsStatsInactive), flags&uint32(golibvirt.ConnectGetAllDomainsStatsInactive))
}

func TestAsUint64(t *testing.T) {
	assert.Equal(t, uint64(7), asUint64(uint64(7)))
	assert.Equal(t, uint64(7), asUint64(int64(7)))
	assert.Equal(t, uint64(7), asUint64(uint32(7)))
	assert.Equal(t, uint64(7), asUint64(int32(7)))
	assert.Equal(t, uint64(0), asUint64(int64(-7)), "negative values clamp instead of wrapping")
	assert.Equal(t, uint64(0), asUint64("7"))
	assert.Equal(t, uint64(0), asUint64(nil))
}
