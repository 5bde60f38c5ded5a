// Package picker models the table-selection grid: rows naming a table with an
// output count and a repeat flag, edited against the current pool. It applies
// the count rules at edit time and builds the draw specs handed to the
// sampler.
package picker

import (
	"fmt"

	"github.com/mesh-intelligence/randomizer/pkg/types"
)

// Column identifies an editable field of a row.
type Column int

// Row columns.
const (
	ColumnTable Column = iota
	ColumnCount
	ColumnRepeats
)

// Row is one table selection. An empty TableName means no table is chosen.
type Row struct {
	TableName    string
	OutputCount  int
	AllowRepeats bool
}

// Tables is the read access the selection needs from the pool.
type Tables interface {
	Has(name string) bool
	Size(name string) int
	Spec(name string, count int, allowRepeats bool) (types.DrawSpec, error)
}

// Selection is an ordered list of rows plus the draw mode. It always holds at
// least one row.
type Selection struct {
	tables  Tables
	rows    []Row
	unified bool
}

// NewSelection returns a selection with a single empty row.
func NewSelection(tables Tables) *Selection {
	return &Selection{tables: tables, rows: []Row{{}}}
}

// Rows returns a copy of the rows.
func (s *Selection) Rows() []Row {
	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out
}

// Len returns the number of rows.
func (s *Selection) Len() int { return len(s.rows) }

// AddRow appends an empty row and returns its index.
func (s *Selection) AddRow() int {
	s.rows = append(s.rows, Row{})
	return len(s.rows) - 1
}

// RemoveRow drops the last row. The final remaining row is never removed.
func (s *Selection) RemoveRow() bool {
	if len(s.rows) <= 1 {
		return false
	}
	s.rows = s.rows[:len(s.rows)-1]
	return true
}

// SetUnified switches between unified and independent draws. The first
// row's count is re-clamped to the new bound.
func (s *Selection) SetUnified(unified bool) {
	s.unified = unified
	if s.tables.Has(s.rows[0].TableName) {
		s.clamp(0)
	}
}

// Unified reports whether the selection draws in unified mode.
func (s *Selection) Unified() bool { return s.unified }

// Editable reports whether column of row i may be edited. In unified mode
// only the first row's count and repeat flag apply, so other rows allow only
// the table column.
func (s *Selection) Editable(i int, col Column) bool {
	if !s.unified || i == 0 || col == ColumnTable {
		return true
	}
	return false
}

func (s *Selection) row(i int, col Column) (*Row, error) {
	if i < 0 || i >= len(s.rows) {
		return nil, fmt.Errorf("%w: row %d out of range", types.ErrInvalidRow, i)
	}
	if !s.Editable(i, col) {
		return nil, fmt.Errorf("%w: row %d", types.ErrInvalidRow, i)
	}
	return &s.rows[i], nil
}

// SetTable points row i at name and resets its count and repeat flag.
// Returns ErrNotFound if name is not in the pool.
func (s *Selection) SetTable(i int, name string) error {
	r, err := s.row(i, ColumnTable)
	if err != nil {
		return err
	}
	if !s.tables.Has(name) {
		return fmt.Errorf("%w: %q", types.ErrNotFound, name)
	}
	*r = Row{TableName: name}
	return nil
}

// SetCount sets the output count of row i. Negative counts are rejected and
// leave the row unchanged. Counts above a bound are clamped to it and the
// bound's validation error is returned so the caller can tell the user.
// A row without a valid table always has a count of zero.
func (s *Selection) SetCount(i, n int) error {
	r, err := s.row(i, ColumnCount)
	if err != nil {
		return err
	}
	if n < 0 {
		return types.ErrNegativeCount
	}
	if !s.tables.Has(r.TableName) {
		r.OutputCount = 0
		return nil
	}

	limit, limitErr := s.limit(i)
	switch {
	case !r.AllowRepeats && n > limit:
		r.OutputCount = limit
		return limitErr
	case n > types.MaxOutputsPerTable:
		r.OutputCount = types.MaxOutputsPerTable
		return types.ErrCountTooLarge
	}
	r.OutputCount = n
	return nil
}

// SetAllowRepeats sets the repeat flag of row i. Turning repeats off clamps
// the count to the entries available.
func (s *Selection) SetAllowRepeats(i int, allow bool) error {
	r, err := s.row(i, ColumnRepeats)
	if err != nil {
		return err
	}
	r.AllowRepeats = allow
	if !s.tables.Has(r.TableName) {
		r.OutputCount = 0
		return nil
	}
	s.clamp(i)
	return nil
}

// limit returns how many entries row i can draw without repeats and the
// error reported when a count goes past it. The first row of a unified
// selection draws from every selected table.
func (s *Selection) limit(i int) (int, error) {
	if !s.unified || i != 0 {
		return s.tables.Size(s.rows[i].TableName), types.ErrCountExceedsTable
	}
	total := 0
	for _, r := range s.rows {
		if s.tables.Has(r.TableName) {
			total += s.tables.Size(r.TableName)
		}
	}
	return total, types.ErrCountExceedsPool
}

func (s *Selection) clamp(i int) {
	r := &s.rows[i]
	if limit, _ := s.limit(i); !r.AllowRepeats && r.OutputCount > limit {
		r.OutputCount = limit
	}
}

// Refresh resets rows whose table has left the pool and re-clamps counts of
// tables that shrank. It returns the indexes of rows that were reset.
func (s *Selection) Refresh() []int {
	var reset []int
	for i := range s.rows {
		r := &s.rows[i]
		if r.TableName == "" {
			continue
		}
		if !s.tables.Has(r.TableName) {
			*r = Row{}
			reset = append(reset, i)
		}
	}
	for i := range s.rows {
		if s.rows[i].TableName != "" {
			s.clamp(i)
		}
	}
	return reset
}

// TotalOutputs sums the counts of every row.
func (s *Selection) TotalOutputs() int {
	total := 0
	for _, r := range s.rows {
		total += r.OutputCount
	}
	return total
}

// Ready reports whether a draw would produce anything.
func (s *Selection) Ready() bool {
	if s.unified {
		return len(s.rows) > 0 && s.rows[0].OutputCount > 0 && s.tables.Has(s.rows[0].TableName)
	}
	return s.TotalOutputs() > 0
}

// Specs builds one draw spec per row whose table is still in the pool. Rows
// naming a table that has since been deleted are skipped without error. In
// unified mode the first row's count is checked against the combined entries.
func (s *Selection) Specs() ([]types.DrawSpec, error) {
	specs := make([]types.DrawSpec, 0, len(s.rows))
	for i, r := range s.rows {
		if !s.tables.Has(r.TableName) {
			continue
		}
		count, repeats := r.OutputCount, r.AllowRepeats
		if s.unified {
			// Counts are checked against the combined entries below.
			count, repeats = 0, true
		}
		spec, err := s.tables.Spec(r.TableName, count, repeats)
		if types.IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", i, r.TableName, err)
		}
		if s.unified {
			spec.OutputCount, spec.AllowRepeats = r.OutputCount, r.AllowRepeats
		}
		specs = append(specs, spec)
	}

	if s.unified {
		if err := types.ValidateUnified(specs); err != nil {
			return nil, err
		}
	}
	return specs, nil
}
