package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vmtop/internal/models"
)

func namedRows(names ...string) []models.Row {
	rows := make([]models.Row, 0, len(names))
	for _, n := range names {
		rows = append(rows, models.Row{Identity: models.VMIdentity{Name: n}})
	}
	return rows
}

func TestSelection_EmptyList(t *testing.T) {
	s := NewSelection()

	assert.Equal(t, -1, s.Index())
	_, ok := s.Selected()
	assert.False(t, ok)

	s.Next()
	s.Prev()
	assert.Equal(t, -1, s.Index(), "navigation is a no-op on an empty list")
	assert.Equal(t, 0, s.Offset())
	assert.Equal(t, 0, s.ScrollRange())
}

func TestSelection_IngestSelectsFirstRow(t *testing.T) {
	s := NewSelection()
	s.Ingest(namedRows("a", "b", "c"))

	assert.Equal(t, 0, s.Index())
	row, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "a", row.Identity.Name)
}

func TestSelection_WrapAround(t *testing.T) {
	s := NewSelection()
	s.Ingest(namedRows("a", "b", "c"))

	s.Prev()
	assert.Equal(t, 2, s.Index(), "prev from the first row wraps to the last")

	s.Next()
	assert.Equal(t, 0, s.Index(), "next from the last row wraps to the first")
}

func TestSelection_OffsetTracksIndex(t *testing.T) {
	s := NewSelection()
	s.Ingest(namedRows("a", "b", "c"))

	s.Next()
	assert.Equal(t, 1*itemHeight, s.Offset())

	s.Next()
	assert.Equal(t, 2*itemHeight, s.Offset())

	s.Ingest(namedRows("a", "b", "c"))
	assert.Equal(t, 2*itemHeight, s.Offset(), "offset recomputed on ingest too")
}

func TestSelection_ScrollRange(t *testing.T) {
	s := NewSelection()

	s.Ingest(namedRows("a", "b", "c", "d", "e"))
	assert.Equal(t, 4*itemHeight, s.ScrollRange())

	s.Ingest(namedRows("a"))
	assert.Equal(t, 0, s.ScrollRange(), "a one-row list must not underflow the range")
}

func TestSelection_ReMatchByNameAcrossReorder(t *testing.T) {
	s := NewSelection()
	s.Ingest(namedRows("a", "b", "c"))
	s.Next() // b

	s.Ingest(namedRows("c", "a", "b"))

	assert.Equal(t, 2, s.Index())
	row, _ := s.Selected()
	assert.Equal(t, "b", row.Identity.Name, "selection follows the VM, not the index")
	assert.Equal(t, 2*itemHeight, s.Offset())
}

func TestSelection_ShrinkWithSelectedVMGone(t *testing.T) {
	s := NewSelection()
	s.Ingest(namedRows("a", "b", "c", "d", "e"))
	s.Prev() // e, index 4

	s.Ingest(namedRows("a", "b"))

	assert.Equal(t, 1, s.Index(), "index clamps to the last valid row")
	row, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", row.Identity.Name)
}

func TestSelection_ShrinkKeepsValidIndex(t *testing.T) {
	s := NewSelection()
	s.Ingest(namedRows("a", "b", "c", "d"))
	s.Next() // b, index 1

	s.Ingest(namedRows("x", "y", "z"))

	assert.Equal(t, 1, s.Index(), "a still-valid numeric index is kept when the VM is gone")
}

func TestSelection_ListBecomesEmpty(t *testing.T) {
	s := NewSelection()
	s.Ingest(namedRows("a", "b"))
	s.Next()

	s.Ingest(nil)

	assert.Equal(t, -1, s.Index())
	_, ok := s.Selected()
	assert.False(t, ok)
	assert.Equal(t, 0, s.Offset())

	// And back again: repopulating restores a selection.
	s.Ingest(namedRows("a"))
	assert.Equal(t, 0, s.Index())
}

func TestSelection_GrowKeepsSelection(t *testing.T) {
	s := NewSelection()
	s.Ingest(namedRows("a", "b"))
	s.Next() // b

	s.Ingest(namedRows("a", "new", "b", "c"))

	assert.Equal(t, 2, s.Index())
	row, _ := s.Selected()
	assert.Equal(t, "b", row.Identity.Name)
}
