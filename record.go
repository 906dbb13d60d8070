package msql

import (
	"database/sql/driver"
	"time"

	"github.com/PizzaWunsch/ModuledMySQL/schema"
)

// Record has to be implemented by every entity type that should be
// persisted or loaded through this module.
// Instead of inspecting struct tags during runtime, an entity declares
// its table layout once as a schema.Table and exposes pointers to the
// struct fields that back each column
type Record interface {

	// Schema returns the table descriptor of this entity.
	// The returned pointer has to be the same for every instance of
	// the type because it's used as the type identity for aliasing
	Schema() *schema.Table

	// Fields returns pointers to the struct fields of this instance,
	// one per column of Schema() and in the same order.
	// The pointers are used as scan targets when loading and are
	// dereferenced when binding values for INSERT or UPDATE
	Fields() []any
}

// fieldValues dereferences the field pointers of the record and returns
// the current values aligned with the columns of its descriptor
func fieldValues(rec Record) ([]any, error) {
	tbl := rec.Schema()
	fields := rec.Fields()
	if len(fields) != len(tbl.Columns) {
		return nil, &FieldError{Table: tbl.Name,
			Err: errFieldCount(len(tbl.Columns), len(fields))}
	}

	values := make([]any, 0, len(fields))
	for i, f := range fields {
		v, err := fieldValue(f)
		if err != nil {
			return nil, &FieldError{Table: tbl.Name, Column: tbl.Columns[i].Name, Err: err}
		}
		values = append(values, v)
	}

	return values, nil
}

// fieldValue reads the value behind a single field pointer.
// Only the field types that can be bound as statement parameters are
// supported. Custom column types can implement driver.Valuer instead
func fieldValue(ptr any) (any, error) {
	if ptr == nil {
		return nil, errNilField
	}

	// A driver.Valuer handles the conversion on its own
	if v, ok := ptr.(driver.Valuer); ok {
		return v, nil
	}

	switch p := ptr.(type) {
	case *string:
		return *p, nil
	case *int:
		return *p, nil
	case *int8:
		return *p, nil
	case *int16:
		return *p, nil
	case *int32:
		return *p, nil
	case *int64:
		return *p, nil
	case *uint:
		return *p, nil
	case *uint8:
		return *p, nil
	case *uint16:
		return *p, nil
	case *uint32:
		return *p, nil
	case *uint64:
		return *p, nil
	case *float32:
		return *p, nil
	case *float64:
		return *p, nil
	case *bool:
		return *p, nil
	case *[]byte:
		return *p, nil
	case *time.Time:
		return *p, nil
	case *any:
		return *p, nil
	}

	return nil, errUnsupportedField(ptr)
}
