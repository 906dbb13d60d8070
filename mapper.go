package msql

import (
	"database/sql"
	"fmt"

	"github.com/PizzaWunsch/ModuledMySQL/schema"
)

// MapRow maps the current row of the result set into the record.
// The result columns are matched against the declared column names of
// the record's descriptor; the order of the result set doesn't matter.
// Result columns that are not declared on the descriptor are discarded,
// a declared column that is missing from the result set fails with a
// MappingError.
//
// The caller has to position the cursor on a valid row with rows.Next
// before calling this function
func MapRow(rows *sql.Rows, rec Record) error {
	tbl := rec.Schema()
	if len(tbl.Columns) == 0 {
		return &MappingError{Table: tbl.Name, Err: schema.ErrNoColumns}
	}

	fields := rec.Fields()
	if len(fields) != len(tbl.Columns) {
		return &MappingError{Table: tbl.Name,
			Err: errFieldCount(len(tbl.Columns), len(fields))}
	}

	resultColumns, err := rows.Columns()
	if err != nil {
		return &MappingError{Table: tbl.Name, Err: err}
	}

	// Field pointers by declared column name
	byName := make(map[string]any, len(fields))
	for i, c := range tbl.Columns {
		byName[c.Name] = fields[i]
	}

	// Build the scan targets in result set order.
	// Unknown result columns are scanned into a throwaway value
	targets := make([]any, len(resultColumns))
	seen := make(map[string]bool, len(resultColumns))
	for i, name := range resultColumns {
		if ptr, ok := byName[name]; ok {
			targets[i] = ptr
			seen[name] = true
		} else {
			targets[i] = new(any)
		}
	}

	for _, c := range tbl.Columns {
		if !seen[c.Name] {
			return &MappingError{Table: tbl.Name, Column: c.Name,
				Err: fmt.Errorf("column is missing in the result set")}
		}
	}

	if err := rows.Scan(targets...); err != nil {
		return &MappingError{Table: tbl.Name, Err: err}
	}

	return nil
}

// MapAll advances the cursor until it's exhausted and maps every row
// into a new record created by the newRecord function.
// The cursor is consumed by this call but stays open, closing it is up
// to the caller
func MapAll[T Record](rows *sql.Rows, newRecord func() T) ([]T, error) {
	var rtc []T
	for rows.Next() {
		rec := newRecord()
		if err := MapRow(rows, rec); err != nil {
			return rtc, err
		}
		rtc = append(rtc, rec)
	}

	if err := rows.Err(); err != nil {
		return rtc, err
	}

	return rtc, nil
}
