package msql

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("Failed to create mock database: %s", err)
	}
	t.Cleanup(func() { conn.Close() })

	return NewDB(conn), mock
}

// TestMapRow tests the round trip of a single result row into an
// entity instance with the columns matched by name
func TestMapRow(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT * FROM users").WillReturnRows(
		sqlmock.NewRows([]string{"id", "email"}).
			AddRow(int64(1), "a@example.com"),
	)

	rows, err := db.QueryRaw(context.Background(), "SELECT * FROM users")
	if err != nil {
		t.Fatalf("Failed to query: %s", err)
	}
	defer rows.Close()

	if !rows.Next() {
		t.Fatal("Expected one row")
	}

	got := &user{}
	if err := MapRow(rows, got); err != nil {
		t.Fatalf("Failed to map row: %s", err)
	}

	want := &user{ID: 1, Email: "a@example.com"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TestMapRow() mismatch (-want +got):\n%s", diff)
	}
}

// TestMapRowColumnOrder tests that the result set column order doesn't
// matter and that surplus result columns are discarded
func TestMapRowColumnOrder(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT email, unrelated, id FROM users").WillReturnRows(
		sqlmock.NewRows([]string{"email", "unrelated", "id"}).
			AddRow("a@example.com", "ignored", int64(3)),
	)

	rows, err := db.QueryRaw(context.Background(), "SELECT email, unrelated, id FROM users")
	if err != nil {
		t.Fatalf("Failed to query: %s", err)
	}
	defer rows.Close()
	rows.Next()

	got := &user{}
	if err := MapRow(rows, got); err != nil {
		t.Fatalf("Failed to map row: %s", err)
	}

	want := &user{ID: 3, Email: "a@example.com"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TestMapRowColumnOrder() mismatch (-want +got):\n%s", diff)
	}
}

func TestMapRowMissingColumn(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT id FROM users").WillReturnRows(
		sqlmock.NewRows([]string{"id"}).AddRow(int64(1)),
	)

	rows, err := db.QueryRaw(context.Background(), "SELECT id FROM users")
	if err != nil {
		t.Fatalf("Failed to query: %s", err)
	}
	defer rows.Close()
	rows.Next()

	var mapErr *MappingError
	if err := MapRow(rows, &user{}); !errors.As(err, &mapErr) {
		t.Fatalf("Expected a MappingError, got: %v", err)
	} else if mapErr.Column != "email" {
		t.Errorf("Expected the missing column \"email\" to be reported, got %q", mapErr.Column)
	}
}

func TestMapAll(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT * FROM users").WillReturnRows(
		sqlmock.NewRows([]string{"id", "email"}).
			AddRow(int64(1), "a@example.com").
			AddRow(int64(2), "b@example.com").
			AddRow(int64(3), "c@example.com"),
	)

	rows, err := db.QueryRaw(context.Background(), "SELECT * FROM users")
	if err != nil {
		t.Fatalf("Failed to query: %s", err)
	}
	defer rows.Close()

	got, err := MapAll(rows, func() *user { return &user{} })
	if err != nil {
		t.Fatalf("Failed to map rows: %s", err)
	}

	want := []*user{
		{ID: 1, Email: "a@example.com"},
		{ID: 2, Email: "b@example.com"},
		{ID: 3, Email: "c@example.com"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TestMapAll() mismatch (-want +got):\n%s", diff)
	}
}

// TestMapRowGeoPoint tests scanning a spatial POINT column through the
// sql.Scanner implementation of GeoPoint
func TestMapRowGeoPoint(t *testing.T) {
	wkb, err := GeoPoint{Longitude: 8.4037, Latitude: 49.0069}.Value()
	if err != nil {
		t.Fatalf("Failed to encode point: %s", err)
	}

	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT * FROM places").WillReturnRows(
		sqlmock.NewRows([]string{"id", "position"}).AddRow(int64(7), wkb),
	)

	rows, err := db.QueryRaw(context.Background(), "SELECT * FROM places")
	if err != nil {
		t.Fatalf("Failed to query: %s", err)
	}
	defer rows.Close()
	rows.Next()

	got := &place{}
	if err := MapRow(rows, got); err != nil {
		t.Fatalf("Failed to map row: %s", err)
	}

	want := &place{ID: 7, Position: GeoPoint{Longitude: 8.4037, Latitude: 49.0069}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TestMapRowGeoPoint() mismatch (-want +got):\n%s", diff)
	}
}
