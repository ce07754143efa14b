// Package collector fetches per-VM counter snapshots from a libvirt host.
package collector

import (
	"context"
	"fmt"
	"time"

	golibvirt "github.com/digitalocean/go-libvirt"

	"vmtop/internal/models"
)

var statsMask = uint32(golibvirt.DomainStatsState |
	golibvirt.DomainStatsCPUTotal |
	golibvirt.DomainStatsBalloon |
	golibvirt.DomainStatsVCPU |
	golibvirt.DomainStatsInterface |
	golibvirt.DomainStatsBlock)

const fetchFlags = uint32(golibvirt.ConnectGetAllDomainsStatsActive |
	golibvirt.ConnectGetAllDomainsStatsInactive)

type Collector struct {
	session *Session
}

func New(session *Session) *Collector {
	return &Collector{session: session}
}

// Fetch returns a fresh absolute snapshot for every domain the host knows,
// active and inactive. The RPC itself cannot be cancelled; the context bounds
// how long the caller waits for it.
func (c *Collector) Fetch(ctx context.Context) ([]models.VMStats, error) {
	type result struct {
		records []golibvirt.DomainStatsRecord
		err     error
	}

	ch := make(chan result, 1)
	go func() {
		records, err := c.session.Client().ConnectGetAllDomainStats(nil, statsMask, fetchFlags)
		ch <- result{records: records, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("domain stats fetch: %w", ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("get all domain stats: %w", r.err)
		}
		now := time.Now()
		out := make([]models.VMStats, 0, len(r.records))
		for _, rec := range r.records {
			out = append(out, parseRecord(rec, now))
		}
		return out, nil
	}
}

// Healthy reports whether the underlying session is still usable.
func (c *Collector) Healthy() error {
	return c.session.Healthy()
}
