package schema

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var testTable = &Table{
	Name: "users",
	Columns: []*Column{
		{Name: "id", Type: Int, Length: 11, PrimaryKey: true, AutoIncrement: true},
		{Name: "email", Type: Varchar, Length: 255},
		{Name: "created", Type: DateTime},
	},
}

func TestPrimaryKey(t *testing.T) {
	pk, err := testTable.PrimaryKey()
	if err != nil {
		t.Fatalf("Failed to find primary key: %s", err)
	}
	if pk.Name != "id" {
		t.Errorf("Expected primary key column \"id\", got %q", pk.Name)
	}

	noKey := &Table{Name: "logs", Columns: []*Column{{Name: "message", Type: Text}}}
	if _, err := noKey.PrimaryKey(); !errors.Is(err, ErrMissingPrimaryKey) {
		t.Errorf("Expected ErrMissingPrimaryKey, got: %v", err)
	}
}

func TestColumnNames(t *testing.T) {
	want := []string{"id", "email", "created"}
	if diff := cmp.Diff(want, testTable.ColumnNames()); diff != "" {
		t.Errorf("TestColumnNames() mismatch (-want +got):\n%s", diff)
	}
}
