package schema

import (
	"strconv"
	"strings"
)

// Definition returns the SQL column definition of this column for the
// usage inside a CREATE TABLE statement:
//
//	`id` INT(11) PRIMARY KEY AUTO_INCREMENT
//
// The length is only emitted when it's greater than zero and the scale
// is only emitted together with a length
func (c *Column) Definition() string {
	var sb strings.Builder
	sb.WriteString("`" + c.Name + "` " + string(c.Type))

	if c.Length > 0 {
		sb.WriteString("(" + strconv.Itoa(c.Length))
		if c.Scale > 0 {
			sb.WriteString(", " + strconv.Itoa(c.Scale))
		}
		sb.WriteString(")")
	}

	if c.PrimaryKey {
		sb.WriteString(" PRIMARY KEY")
	}
	if c.AutoIncrement {
		sb.WriteString(" AUTO_INCREMENT")
	}

	return sb.String()
}

// CreateStatement returns a "CREATE TABLE IF NOT EXISTS" statement for
// this table with one column definition per line.
// The column definitions appear in declared order
func (t *Table) CreateStatement() (string, error) {
	if t.Name == "" {
		return "", &Error{Err: ErrMissingTableName}
	}
	if len(t.Columns) == 0 {
		return "", &Error{Table: t.Name, Err: ErrNoColumns}
	}

	defs := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		defs = append(defs, "  "+c.Definition())
	}

	return "CREATE TABLE IF NOT EXISTS `" + t.Name + "` (\n" +
		strings.Join(defs, ",\n") + "\n);", nil
}
