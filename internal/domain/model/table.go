package model

import "iter"

// Table is the canonical, immutable result table. It is built once by the
// normalizer and only hands out copies of its rows.
type Table struct {
	rows []EventResult
}

// NewTable takes ownership of rows. Callers must not retain the slice.
func NewTable(rows []EventResult) *Table {
	return &Table{rows: rows}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// At returns a copy of row i.
func (t *Table) At(i int) EventResult { return t.rows[i] }

// All iterates over copies of every row in table order.
func (t *Table) All() iter.Seq[EventResult] {
	return func(yield func(EventResult) bool) {
		if t == nil {
			return
		}
		for _, r := range t.rows {
			if !yield(r) {
				return
			}
		}
	}
}

// Rows returns a fresh slice holding copies of every row.
func (t *Table) Rows() []EventResult {
	if t == nil {
		return nil
	}
	out := make([]EventResult, len(t.rows))
	copy(out, t.rows)
	return out
}
