package schema

// Type is the SQL data type keyword of a column as it is written
// into MySQL column definitions and DDL statements
type Type string

const (
	// Numeric types
	TinyInt   Type = "TINYINT"
	SmallInt  Type = "SMALLINT"
	MediumInt Type = "MEDIUMINT"
	Int       Type = "INT"
	Integer   Type = "INTEGER"
	BigInt    Type = "BIGINT"
	Decimal   Type = "DECIMAL"
	Numeric   Type = "NUMERIC"
	Float     Type = "FLOAT"
	Double    Type = "DOUBLE"

	// Boolean / bit types
	Bit     Type = "BIT"
	Boolean Type = "BOOLEAN"

	// String types
	Char       Type = "CHAR"
	Varchar    Type = "VARCHAR"
	TinyText   Type = "TINYTEXT"
	Text       Type = "TEXT"
	MediumText Type = "MEDIUMTEXT"
	LongText   Type = "LONGTEXT"

	// Binary types
	Binary     Type = "BINARY"
	VarBinary  Type = "VARBINARY"
	TinyBlob   Type = "TINYBLOB"
	Blob       Type = "BLOB"
	MediumBlob Type = "MEDIUMBLOB"
	LongBlob   Type = "LONGBLOB"

	// Date and time types
	Date      Type = "DATE"
	Time      Type = "TIME"
	Year      Type = "YEAR"
	DateTime  Type = "DATETIME"
	Timestamp Type = "TIMESTAMP"

	// JSON and enumeration types
	JSON Type = "JSON"
	Enum Type = "ENUM"
	Set  Type = "SET"

	// Spatial types
	Geometry   Type = "GEOMETRY"
	Point      Type = "POINT"
	LineString Type = "LINESTRING"
	Polygon    Type = "POLYGON"
)

// Table describes a logical table on the database.
// A descriptor is declared once per entity type as a package level
// variable and never mutated afterwards. Its pointer identity is used
// by the statement builder to assign table aliases
type Table struct {

	// Name of the table
	Name string

	// List of columns the table has, in declared order
	Columns []*Column
}

// Column of a table
type Column struct {

	// Unique column name within a table
	Name string

	// SQL data type of this column
	Type Type

	// The character length or numeric precision.
	// A value <= 0 means "not specified"
	Length int

	// The scale for decimal or numeric types.
	// Only meaningful together with a length, <= 0 means "not specified"
	Scale int

	// Weather this column is a primary key of the table
	PrimaryKey bool

	// Weather this column has the auto_increment flag
	AutoIncrement bool
}

// PrimaryKey returns the first column of the table that is declared
// as primary key.
// It returns ErrMissingPrimaryKey if no such column exists
func (t *Table) PrimaryKey() (*Column, error) {
	for _, c := range t.Columns {
		if c.PrimaryKey {
			return c, nil
		}
	}

	return nil, &Error{Table: t.Name, Err: ErrMissingPrimaryKey}
}

// ColumnNames returns the names of all columns in declared order
func (t *Table) ColumnNames() []string {
	rtc := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		rtc = append(rtc, c.Name)
	}

	return rtc
}
