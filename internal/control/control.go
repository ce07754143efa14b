// Package control issues lifecycle commands against the VM the operator has
// selected.
package control

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	golibvirt "github.com/digitalocean/go-libvirt"

	"vmtop/internal/models"
)

// ErrNoSelection is returned when a command is issued with an empty VM list.
var ErrNoSelection = errors.New("no vm selected")

type Action int

const (
	ActionStart Action = iota
	ActionStop
	ActionSnapshot
)

func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionStop:
		return "stop"
	case ActionSnapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

// Lifecycle is the set of primitives the hypervisor offers. Start and Stop
// may be rejected when the VM is already in the target state; the hypervisor
// is the source of truth for that, not the caller.
type Lifecycle interface {
	Start(name string) error
	Stop(name string) error
	Snapshot(name string, at time.Time) error
}

// Dispatcher resolves the selected row to a VM name and fires the matching
// lifecycle primitive. Calls are fire-and-forget: failures are surfaced to
// the caller but nothing is retried and no row state is touched — the next
// tick's fetch is the sole source of truth for status.
type Dispatcher struct {
	vms Lifecycle
	now func() time.Time
}

func NewDispatcher(vms Lifecycle) *Dispatcher {
	return &Dispatcher{vms: vms, now: time.Now}
}

// Toggle picks the lifecycle action opposite to the row's displayed status.
func Toggle(row models.Row) Action {
	if row.Status == models.StatusOff {
		return ActionStart
	}
	return ActionStop
}

// Dispatch runs action against the VM in row. A nil row means nothing is
// selected and yields ErrNoSelection.
func (d *Dispatcher) Dispatch(action Action, row *models.Row) error {
	if row == nil {
		return ErrNoSelection
	}

	switch action {
	case ActionStart:
		return d.vms.Start(row.Identity.Name)
	case ActionStop:
		return d.vms.Stop(row.Identity.Name)
	case ActionSnapshot:
		return d.vms.Snapshot(row.Identity.Name, d.now())
	default:
		return fmt.Errorf("unknown action %d", action)
	}
}

// Client implements Lifecycle over a libvirt connection.
type Client struct {
	l      *golibvirt.Libvirt
	logger *slog.Logger
}

func NewClient(l *golibvirt.Libvirt, logger *slog.Logger) *Client {
	return &Client{l: l, logger: logger}
}

func (c *Client) Start(name string) error {
	dom, err := c.l.DomainLookupByName(name)
	if err != nil {
		return fmt.Errorf("lookup vm %s: %w", name, err)
	}
	if err := c.l.DomainCreate(dom); err != nil {
		return fmt.Errorf("start vm %s: %w", name, err)
	}
	c.logger.Info("vm started", "vm", name)
	return nil
}

func (c *Client) Stop(name string) error {
	dom, err := c.l.DomainLookupByName(name)
	if err != nil {
		return fmt.Errorf("lookup vm %s: %w", name, err)
	}
	if err := c.l.DomainDestroy(dom); err != nil {
		return fmt.Errorf("stop vm %s: %w", name, err)
	}
	c.logger.Info("vm stopped", "vm", name)
	return nil
}

// Snapshot creates a disk-only snapshot named after the VM and the issuance
// timestamp, so repeated snapshots of one VM never collide.
func (c *Client) Snapshot(name string, at time.Time) error {
	dom, err := c.l.DomainLookupByName(name)
	if err != nil {
		return fmt.Errorf("lookup vm %s: %w", name, err)
	}
	xml := snapshotXML(name, at)
	if _, err := c.l.DomainSnapshotCreateXML(dom, xml, uint32(golibvirt.DomainSnapshotCreateDiskOnly)); err != nil {
		return fmt.Errorf("snapshot vm %s: %w", name, err)
	}
	c.logger.Info("vm snapshot created", "vm", name, "at", at)
	return nil
}

func snapshotXML(name string, at time.Time) string {
	return fmt.Sprintf(`<domainsnapshot>
  <name>%s-%s</name>
  <description>vmtop snapshot</description>
</domainsnapshot>`, name, at.UTC().Format(time.RFC3339))
}
