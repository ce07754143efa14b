package ui

import "vmtop/internal/models"

// Display height of one table row; the scrollbar position advances by this
// much per selected row.
const itemHeight = 4

// Selection tracks which row the operator is on while the row list is
// replaced wholesale every tick. Indexes are never trusted across ticks:
// continuity comes from re-matching the selected VM by name.
type Selection struct {
	rows   []models.Row
	index  int // -1 while the list is empty
	offset int
	total  int
}

func NewSelection() *Selection {
	return &Selection{index: -1}
}

// Ingest replaces the row list. If the previously selected VM still exists by
// name it stays selected at its new position; otherwise the old index is
// clamped into the new list, falling back to the last row. An empty list
// clears the selection.
func (s *Selection) Ingest(rows []models.Row) {
	selectedName := ""
	if s.index >= 0 && s.index < len(s.rows) {
		selectedName = s.rows[s.index].Identity.Name
	}

	s.rows = rows
	if len(rows) == 0 {
		s.index = -1
	} else {
		idx := -1
		if selectedName != "" {
			for i, r := range rows {
				if r.Identity.Name == selectedName {
					idx = i
					break
				}
			}
		}
		if idx < 0 {
			idx = s.index
			if idx < 0 {
				idx = 0
			}
			if idx > len(rows)-1 {
				idx = len(rows) - 1
			}
		}
		s.index = idx
	}

	// Explicit zero/one-row guard: len-1 must not go through an unsigned
	// subtraction.
	if len(rows) <= 1 {
		s.total = 0
	} else {
		s.total = (len(rows) - 1) * itemHeight
	}
	s.syncOffset()
}

// Next moves the selection down one row, wrapping from the last row to the
// first. No-op while the list is empty.
func (s *Selection) Next() {
	if len(s.rows) == 0 {
		return
	}
	if s.index >= len(s.rows)-1 {
		s.index = 0
	} else {
		s.index++
	}
	s.syncOffset()
}

// Prev moves the selection up one row, wrapping from the first row to the
// last. No-op while the list is empty.
func (s *Selection) Prev() {
	if len(s.rows) == 0 {
		return
	}
	if s.index <= 0 {
		s.index = len(s.rows) - 1
	} else {
		s.index--
	}
	s.syncOffset()
}

func (s *Selection) syncOffset() {
	if s.index <= 0 {
		s.offset = 0
		return
	}
	s.offset = s.index * itemHeight
}

// Selected returns the currently selected row, if any.
func (s *Selection) Selected() (models.Row, bool) {
	if s.index < 0 || s.index >= len(s.rows) {
		return models.Row{}, false
	}
	return s.rows[s.index], true
}

func (s *Selection) Rows() []models.Row { return s.rows }

func (s *Selection) Count() int { return len(s.rows) }

// Index is the selected row's position, -1 while the list is empty.
func (s *Selection) Index() int { return s.index }

// Offset is the scrollbar position, index * itemHeight.
func (s *Selection) Offset() int { return s.offset }

// ScrollRange is the scrollbar's total range, (count-1) * itemHeight.
func (s *Selection) ScrollRange() int { return s.total }
