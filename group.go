package msql

import "strings"

// Group accumulates a parenthesized condition tree independent of a
// full statement. The collected text and parameters are spliced into a
// Builder with WhereGroup, which wraps the text in parentheses.
//
// Like the Builder, a group is owned by one call chain and keeps its
// parameters aligned with the placeholders of its text
type Group struct {
	query  strings.Builder
	params []any
}

// And appends a condition with the AND operator.
// The very first condition of the group is appended without a keyword
func (g *Group) And(condition string, values ...any) *Group {
	return g.append("AND", condition, values)
}

// Or appends a condition with the OR operator.
// The very first condition of the group is appended without a keyword
func (g *Group) Or(condition string, values ...any) *Group {
	return g.append("OR", condition, values)
}

func (g *Group) append(keyword, condition string, values []any) *Group {
	if g.query.Len() > 0 {
		g.query.WriteString(" " + keyword + " ")
	}
	g.query.WriteString(condition)
	g.params = append(g.params, values...)
	return g
}

// Query returns the bare condition text without surrounding
// parentheses. Parenthesization is up to the caller that splices the
// group into a statement
func (g *Group) Query() string {
	return g.query.String()
}

// Params returns the parameters bound so far in placeholder order
func (g *Group) Params() []any {
	return g.params
}
