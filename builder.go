package msql

import (
	"strconv"
	"strings"

	"github.com/PizzaWunsch/ModuledMySQL/schema"
)

// Builder composes a single parameterized SQL statement out of chained
// clause calls. The emitted text and the list of bound parameters grow
// together: the Nth "?" placeholder of the final statement always
// corresponds to the Nth parameter, also across unions, subqueries and
// spliced condition groups.
//
// A builder is owned by exactly one call chain. Chained calls from
// multiple goroutines on the same instance are not supported.
//
// Construction failures (missing table name, missing primary key,
// empty IN list, ...) stick to the builder and are reported by Build.
// Once a failure was recorded, later calls don't append anything
type Builder struct {
	query  strings.Builder
	params []any

	// Table aliases by descriptor identity, minted as "t0", "t1", ...
	// in the order the descriptors are first referenced
	aliases map[*schema.Table]string
	aliasN  int

	err      error
	consumed bool
}

// Assignment is an ordered column and value pair for the raw table
// variants of INSERT and UPDATE
type Assignment struct {
	Column string
	Value  any
}

func newBuilder() *Builder {
	return &Builder{
		aliases: make(map[*schema.Table]string),
	}
}

// fail records the first construction failure of this statement
func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// writable reports weather the builder still accepts clause calls and
// records a failure when it was already consumed by another statement
func (b *Builder) writable() bool {
	if b.consumed {
		b.fail(errConsumed)
		return false
	}

	return b.err == nil
}

// Select creates a SELECT statement with the given raw columns
func Select(columns ...string) *Builder {
	b := newBuilder()
	b.query.WriteString("SELECT " + strings.Join(columns, ", "))
	return b
}

// SelectTable creates a SELECT statement for an entity table.
// If no columns are given, all declared columns are selected qualified
// with the alias of the table
func SelectTable(t *schema.Table, columns ...string) *Builder {
	b := newBuilder()
	alias := b.Alias(t)

	if len(columns) == 0 {
		if len(t.Columns) == 0 {
			return b.fail(&schema.Error{Table: t.Name, Err: schema.ErrNoColumns})
		}
		for _, c := range t.Columns {
			columns = append(columns, alias+"."+c.Name)
		}
	}

	b.query.WriteString("SELECT " + strings.Join(columns, ", "))
	return b
}

// InsertInto creates an INSERT statement with the current field values
// of the record. Columns that are marked as auto increment are skipped
func InsertInto(rec Record) *Builder {
	b := newBuilder()
	tbl := rec.Schema()
	if tbl.Name == "" {
		return b.fail(&schema.Error{Err: schema.ErrMissingTableName})
	}

	values, err := fieldValues(rec)
	if err != nil {
		return b.fail(err)
	}

	columns := make([]string, 0, len(tbl.Columns))
	placeholders := make([]string, 0, len(tbl.Columns))
	for i, c := range tbl.Columns {
		if c.AutoIncrement {
			continue
		}
		columns = append(columns, c.Name)
		placeholders = append(placeholders, "?")
		b.params = append(b.params, values[i])
	}

	if len(columns) == 0 {
		return b.fail(&schema.Error{Table: tbl.Name, Err: schema.ErrNoColumns})
	}

	b.query.WriteString("INSERT INTO " + tbl.Name +
		" (" + strings.Join(columns, ", ") + ") VALUES (" +
		strings.Join(placeholders, ", ") + ")")
	return b
}

// Update creates an UPDATE statement with the current field values of
// the record. All non key columns become SET assignments in declared
// order and the primary key column becomes the WHERE predicate.
// The key parameter is always appended after all SET parameters, no
// matter at which position the key column was declared, so that the
// parameter order matches the placeholder order of the emitted text
func Update(rec Record) *Builder {
	b := newBuilder()
	tbl := rec.Schema()
	if tbl.Name == "" {
		return b.fail(&schema.Error{Err: schema.ErrMissingTableName})
	}

	values, err := fieldValues(rec)
	if err != nil {
		return b.fail(err)
	}

	var sets []string
	var key *schema.Column
	var keyValue any
	for i, c := range tbl.Columns {
		if c.PrimaryKey && key == nil {
			key = c
			keyValue = values[i]
			continue
		}
		sets = append(sets, c.Name+" = ?")
		b.params = append(b.params, values[i])
	}

	if key == nil {
		return b.fail(&schema.Error{Table: tbl.Name, Err: schema.ErrMissingPrimaryKey})
	}
	b.params = append(b.params, keyValue)

	b.query.WriteString("UPDATE " + tbl.Name + " SET " + strings.Join(sets, ", ") +
		" WHERE " + key.Name + " = ?")
	return b
}

// DeleteFrom creates a DELETE statement for the row of the table that
// is identified by the given primary key value
func DeleteFrom(t *schema.Table, key any) *Builder {
	b := newBuilder()
	if t.Name == "" {
		return b.fail(&schema.Error{Err: schema.ErrMissingTableName})
	}

	pk, err := t.PrimaryKey()
	if err != nil {
		return b.fail(err)
	}

	b.query.WriteString("DELETE FROM " + t.Name + " WHERE " + pk.Name + " = ?")
	b.params = append(b.params, key)
	return b
}

// InsertIntoTable creates an INSERT statement for a raw table name with
// the given column and value pairs in their declared order
func InsertIntoTable(table string, assigns ...Assignment) *Builder {
	b := newBuilder()
	if table == "" {
		return b.fail(&schema.Error{Err: schema.ErrMissingTableName})
	}
	if len(assigns) == 0 {
		return b.fail(&schema.Error{Table: table, Err: schema.ErrNoColumns})
	}

	columns := make([]string, 0, len(assigns))
	placeholders := make([]string, 0, len(assigns))
	for _, a := range assigns {
		columns = append(columns, a.Column)
		placeholders = append(placeholders, "?")
		b.params = append(b.params, a.Value)
	}

	b.query.WriteString("INSERT INTO " + table +
		" (" + strings.Join(columns, ", ") + ") VALUES (" +
		strings.Join(placeholders, ", ") + ")")
	return b
}

// UpdateTable creates an UPDATE statement for a raw table name.
// The given column and value pairs become the SET assignments and the
// key column with its value becomes the WHERE predicate
func UpdateTable(table, keyColumn string, key any, assigns ...Assignment) *Builder {
	b := newBuilder()
	if table == "" {
		return b.fail(&schema.Error{Err: schema.ErrMissingTableName})
	}
	if len(assigns) == 0 {
		return b.fail(&schema.Error{Table: table, Err: schema.ErrNoColumns})
	}

	sets := make([]string, 0, len(assigns))
	for _, a := range assigns {
		sets = append(sets, a.Column+" = ?")
		b.params = append(b.params, a.Value)
	}
	b.params = append(b.params, key)

	b.query.WriteString("UPDATE " + table + " SET " + strings.Join(sets, ", ") +
		" WHERE " + keyColumn + " = ?")
	return b
}

// DeleteFromTable creates a DELETE statement for a raw table name and
// primary key column
func DeleteFromTable(table, keyColumn string, key any) *Builder {
	b := newBuilder()
	if table == "" {
		return b.fail(&schema.Error{Err: schema.ErrMissingTableName})
	}

	b.query.WriteString("DELETE FROM " + table + " WHERE " + keyColumn + " = ?")
	b.params = append(b.params, key)
	return b
}

// Alias returns the table alias assigned to the descriptor within this
// statement. The first reference mints a new alias, every later
// reference returns the same one
func (b *Builder) Alias(t *schema.Table) string {
	if alias, ok := b.aliases[t]; ok {
		return alias
	}

	alias := "t" + strconv.Itoa(b.aliasN)
	b.aliasN++
	b.aliases[t] = alias
	return alias
}

// From appends a FROM clause for an entity table with its alias
func (b *Builder) From(t *schema.Table) *Builder {
	if !b.writable() {
		return b
	}
	if t.Name == "" {
		return b.fail(&schema.Error{Err: schema.ErrMissingTableName})
	}

	b.query.WriteString(" FROM " + t.Name + " " + b.Alias(t))
	return b
}

// FromTable appends a FROM clause for a raw table name without an alias
func (b *Builder) FromTable(name string) *Builder {
	if !b.writable() {
		return b
	}

	b.query.WriteString(" FROM " + name)
	return b
}

// Join appends an inner JOIN clause for an entity table
func (b *Builder) Join(t *schema.Table, onCondition string) *Builder {
	return b.appendJoin("JOIN", t, onCondition)
}

// LeftJoin appends a LEFT JOIN clause for an entity table
func (b *Builder) LeftJoin(t *schema.Table, onCondition string) *Builder {
	return b.appendJoin("LEFT JOIN", t, onCondition)
}

func (b *Builder) appendJoin(kind string, t *schema.Table, onCondition string) *Builder {
	if !b.writable() {
		return b
	}
	if t.Name == "" {
		return b.fail(&schema.Error{Err: schema.ErrMissingTableName})
	}

	b.query.WriteString(" " + kind + " " + t.Name + " " + b.Alias(t) + " ON " + onCondition)
	return b
}

// Where appends a WHERE clause and binds the given values
func (b *Builder) Where(condition string, values ...any) *Builder {
	return b.appendCondition(" WHERE ", condition, values)
}

// WhereGroup appends a WHERE clause with the parenthesized conditions
// of the group and splices its parameters in
func (b *Builder) WhereGroup(group *Group) *Builder {
	if !b.writable() {
		return b
	}

	b.query.WriteString(" WHERE (" + group.Query() + ")")
	b.params = append(b.params, group.Params()...)
	return b
}

// And appends an AND condition and binds the given values
func (b *Builder) And(condition string, values ...any) *Builder {
	return b.appendCondition(" AND ", condition, values)
}

// Or appends an OR condition and binds the given values
func (b *Builder) Or(condition string, values ...any) *Builder {
	return b.appendCondition(" OR ", condition, values)
}

func (b *Builder) appendCondition(keyword, condition string, values []any) *Builder {
	if !b.writable() {
		return b
	}

	b.query.WriteString(keyword + condition)
	b.params = append(b.params, values...)
	return b
}

// In appends an IN clause for the column with one placeholder per
// value. An empty value list is rejected with ErrEmptyInList because
// "IN ()" is not valid SQL
func (b *Builder) In(column string, values []any) *Builder {
	if !b.writable() {
		return b
	}
	if len(values) == 0 {
		return b.fail(ErrEmptyInList)
	}

	placeholders := make([]string, len(values))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	b.query.WriteString(" " + column + " IN (" + strings.Join(placeholders, ", ") + ")")
	b.params = append(b.params, values...)
	return b
}

// GroupBy appends a GROUP BY clause with the given columns
func (b *Builder) GroupBy(columns ...string) *Builder {
	if !b.writable() {
		return b
	}

	b.query.WriteString(" GROUP BY " + strings.Join(columns, ", "))
	return b
}

// Having appends a HAVING clause and binds the given values
func (b *Builder) Having(condition string, values ...any) *Builder {
	return b.appendCondition(" HAVING ", condition, values)
}

// Union appends the other statement with the UNION operator.
// The other builder is consumed: its full text and parameter list are
// taken over and it must not be mutated or reused afterwards
func (b *Builder) Union(other *Builder) *Builder {
	return b.appendUnion(" UNION ", other)
}

// UnionAll appends the other statement with the UNION ALL operator.
// The other builder is consumed like with Union
func (b *Builder) UnionAll(other *Builder) *Builder {
	return b.appendUnion(" UNION ALL ", other)
}

func (b *Builder) appendUnion(keyword string, other *Builder) *Builder {
	if !b.writable() {
		return b
	}
	if other.err != nil {
		return b.fail(other.err)
	}

	other.consumed = true
	b.query.WriteString(keyword + other.Query())
	b.params = append(b.params, other.params...)
	return b
}

// Subquery appends the other statement parenthesized and aliased:
//
//	(SELECT ...) AS alias
//
// The other builder is consumed like with Union
func (b *Builder) Subquery(other *Builder, alias string) *Builder {
	if !b.writable() {
		return b
	}
	if other.err != nil {
		return b.fail(other.err)
	}

	other.consumed = true
	b.query.WriteString(" (" + other.Query() + ") AS " + alias)
	b.params = append(b.params, other.params...)
	return b
}

// Query returns the SQL text that was emitted so far
func (b *Builder) Query() string {
	return b.query.String()
}

// Params returns the parameters bound so far in placeholder order
func (b *Builder) Params() []any {
	return b.params
}

// Err returns the first construction failure of this statement
func (b *Builder) Err() error {
	return b.err
}

// Build returns the final statement text with its parameters or the
// first failure that was recorded during construction
func (b *Builder) Build() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}

	return b.query.String(), b.params, nil
}
