package msql

import (
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/PizzaWunsch/ModuledMySQL/schema"
)

// Entity descriptors and records shared by the tests of this package

var userTable = &schema.Table{
	Name: "users",
	Columns: []*schema.Column{
		{Name: "id", Type: schema.Int, Length: 11, PrimaryKey: true, AutoIncrement: true},
		{Name: "email", Type: schema.Varchar, Length: 255},
	},
}

type user struct {
	ID    int
	Email string
}

func (u *user) Schema() *schema.Table { return userTable }
func (u *user) Fields() []any         { return []any{&u.ID, &u.Email} }

var orderTable = &schema.Table{
	Name: "orders",
	Columns: []*schema.Column{
		{Name: "id", Type: schema.Int, Length: 11, PrimaryKey: true, AutoIncrement: true},
		{Name: "user_id", Type: schema.Int, Length: 11},
		{Name: "total", Type: schema.Decimal, Length: 10, Scale: 2},
	},
}

type order struct {
	ID     int
	UserID int
	Total  float64
}

func (o *order) Schema() *schema.Table { return orderTable }
func (o *order) Fields() []any         { return []any{&o.ID, &o.UserID, &o.Total} }

// sessionTable declares its primary key as the last column to verify
// that the key parameter is still bound after all SET parameters
var sessionTable = &schema.Table{
	Name: "sessions",
	Columns: []*schema.Column{
		{Name: "token", Type: schema.Varchar, Length: 64},
		{Name: "user_id", Type: schema.Int, Length: 11},
		{Name: "id", Type: schema.Int, Length: 11, PrimaryKey: true},
	},
}

type session struct {
	Token  string
	UserID int
	ID     int
}

func (s *session) Schema() *schema.Table { return sessionTable }
func (s *session) Fields() []any         { return []any{&s.Token, &s.UserID, &s.ID} }

// logTable has no primary key column
var logTable = &schema.Table{
	Name: "logs",
	Columns: []*schema.Column{
		{Name: "message", Type: schema.Text},
	},
}

type logEntry struct {
	Message string
}

func (l *logEntry) Schema() *schema.Table { return logTable }
func (l *logEntry) Fields() []any         { return []any{&l.Message} }

var placeTable = &schema.Table{
	Name: "places",
	Columns: []*schema.Column{
		{Name: "id", Type: schema.Int, Length: 11, PrimaryKey: true},
		{Name: "position", Type: schema.Point},
	},
}

type place struct {
	ID       int
	Position GeoPoint
}

func (p *place) Schema() *schema.Table { return placeTable }
func (p *place) Fields() []any         { return []any{&p.ID, &p.Position} }

// unnamedTable misses the table name
var unnamedTable = &schema.Table{
	Columns: []*schema.Column{
		{Name: "id", Type: schema.Int, PrimaryKey: true},
	},
}

type unnamed struct {
	ID int
}

func (u *unnamed) Schema() *schema.Table { return unnamedTable }
func (u *unnamed) Fields() []any         { return []any{&u.ID} }

func DumpStruct(a ...interface{}) string {
	dump := spew.Sdump(a...)

	if strings.HasSuffix(dump, "\n") && len(dump) > 2 {
		dump = dump[0 : len(dump)-len("\n")]
	}

	return dump
}
