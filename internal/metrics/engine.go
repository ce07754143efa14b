package metrics

import "vmtop/internal/models"

// Engine pairs each tick's snapshots with the previous tick's, matched by VM
// name. Names, not libvirt ids, are the join key: ids change when a VM
// restarts. The engine is driven from a single event loop and does no locking
// of its own.
type Engine struct {
	prev map[string]models.VMStats
}

func NewEngine() *Engine {
	return &Engine{prev: map[string]models.VMStats{}}
}

// Ingest derives one row per snapshot, in source order, and keeps the batch
// as next tick's previous snapshots. A VM absent from the batch is forgotten
// entirely; a VM seen for the first time gets the no-rate row.
func (e *Engine) Ingest(batch []models.VMStats) []models.Row {
	rows := make([]models.Row, 0, len(batch))
	next := make(map[string]models.VMStats, len(batch))

	for _, cur := range batch {
		var prev *models.VMStats
		if p, ok := e.prev[cur.Identity.Name]; ok {
			prev = &p
		}
		rows = append(rows, Derive(prev, cur))
		next[cur.Identity.Name] = cur
	}

	e.prev = next
	return rows
}
