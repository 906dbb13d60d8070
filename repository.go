package msql

import (
	"context"
	"strings"

	"git.rpjosh.de/RPJosh/go-logger"
	"golang.org/x/sync/semaphore"

	"github.com/PizzaWunsch/ModuledMySQL/schema"
)

// Repository offers the save, load and delete convenience operations
// for entity records on top of the statement builder and the result
// mapper.
// The asynchronous variants run the same operations on a bounded
// number of workers. Two concurrent operations against the same key
// are not ordered against each other, serializing them is up to the
// application
type Repository struct {
	db  *DB
	sem *semaphore.Weighted
}

// NewRepository creates a repository on the given database handle.
// The workers count bounds how many asynchronous operations may run
// at the same time
func NewRepository(db *DB, workers int) *Repository {
	if workers < 1 {
		workers = 1
	}

	return &Repository{
		db:  db,
		sem: semaphore.NewWeighted(int64(workers)),
	}
}

// Save persists the record with a "REPLACE INTO" statement covering
// all declared columns, inserting the row or replacing an existing one
// with the same primary key.
// It returns the number of affected rows
func (r *Repository) Save(ctx context.Context, rec Record) (int64, error) {
	tbl := rec.Schema()
	if tbl.Name == "" {
		return 0, &schema.Error{Err: schema.ErrMissingTableName}
	}
	if len(tbl.Columns) == 0 {
		return 0, &schema.Error{Table: tbl.Name, Err: schema.ErrNoColumns}
	}

	values, err := fieldValues(rec)
	if err != nil {
		return 0, err
	}

	columns := tbl.ColumnNames()
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	query := "REPLACE INTO " + tbl.Name +
		" (" + strings.Join(columns, ", ") + ") VALUES (" +
		strings.Join(placeholders, ", ") + ")"

	rows, err := r.db.ExecRaw(ctx, query, values...)
	if err != nil {
		return 0, err
	}

	logger.Debug("%d row(s) inserted or updated in table %q", rows, tbl.Name)
	return rows, nil
}

// Load fetches the row identified by the primary key value and maps it
// into the record.
// It returns false without an error when no such row exists
func (r *Repository) Load(ctx context.Context, rec Record, key any) (bool, error) {
	tbl := rec.Schema()
	if tbl.Name == "" {
		return false, &schema.Error{Err: schema.ErrMissingTableName}
	}

	pk, err := tbl.PrimaryKey()
	if err != nil {
		return false, err
	}

	rows, err := r.db.QueryRaw(ctx, "SELECT * FROM "+tbl.Name+" WHERE "+pk.Name+" = ?", key)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return false, rows.Err()
	}

	if err := MapRow(rows, rec); err != nil {
		return false, err
	}

	return true, nil
}

// Delete removes the row of the table that is identified by the given
// primary key value and returns the number of affected rows
func (r *Repository) Delete(ctx context.Context, t *schema.Table, key any) (int64, error) {
	rows, err := r.db.Exec(ctx, DeleteFrom(t, key))
	if err != nil {
		return 0, err
	}

	logger.Debug("Deleted %d row(s) from table %q", rows, t.Name)
	return rows, nil
}

// SaveAsync runs Save on the worker pool
func (r *Repository) SaveAsync(ctx context.Context, rec Record) *Future[int64] {
	return submit(ctx, r, func(ctx context.Context) (int64, error) {
		return r.Save(ctx, rec)
	})
}

// LoadAsync runs Load on the worker pool
func (r *Repository) LoadAsync(ctx context.Context, rec Record, key any) *Future[bool] {
	return submit(ctx, r, func(ctx context.Context) (bool, error) {
		return r.Load(ctx, rec, key)
	})
}

// DeleteAsync runs Delete on the worker pool
func (r *Repository) DeleteAsync(ctx context.Context, t *schema.Table, key any) *Future[int64] {
	return submit(ctx, r, func(ctx context.Context) (int64, error) {
		return r.Delete(ctx, t, key)
	})
}

// submit schedules the operation once a worker slot is free and
// completes the returned future with its outcome.
// The operation's error is handed over unaltered
func submit[T any](ctx context.Context, r *Repository, op func(context.Context) (T, error)) *Future[T] {
	f := newFuture[T]()

	go func() {
		if err := r.sem.Acquire(ctx, 1); err != nil {
			var zero T
			f.complete(zero, err)
			return
		}
		defer r.sem.Release(1)

		f.complete(op(ctx))
	}()

	return f
}
