package msql

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"

	"git.rpjosh.de/RPJosh/go-logger"
	"github.com/go-sql-driver/mysql"

	"github.com/PizzaWunsch/ModuledMySQL/schema"
)

// Config contains the connection parameters for a MySQL database
type Config struct {

	// Hostname or IP address of the database server
	Host string

	// Port of the database server, typically 3306
	Port int

	// Name of the database to connect to
	Database string

	// Credentials for the authentication
	User     string
	Password string

	// Additional connection parameters that are appended to the DSN
	Params map[string]string
}

// dsn builds the data source name for the go-sql-driver from the
// connection parameters
func (c Config) dsn() string {
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	cfg.DBName = c.Database
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.ParseTime = true
	for key, value := range c.Params {
		if cfg.Params == nil {
			cfg.Params = make(map[string]string, len(c.Params))
		}
		cfg.Params[key] = value
	}

	return cfg.FormatDSN()
}

// DB is an explicitly owned handle to a MySQL database that executes
// the statements produced by the builder.
// The underlying connection pool is safe for concurrent use
type DB struct {
	conn *sql.DB
}

// Connect opens a new database handle with the given connection
// parameters and verifies the connectivity with a ping
func Connect(cfg Config) (*DB, error) {
	conn, err := sql.Open("mysql", cfg.dsn())
	if err != nil {
		return nil, fmt.Errorf("failed to open database handle: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to %q: %w", cfg.Host, err)
	}

	logger.Info("Connected to database %q on %s", cfg.Database, cfg.Host)
	return &DB{conn: conn}, nil
}

// NewDB wraps an already opened database handle
func NewDB(conn *sql.DB) *DB {
	return &DB{conn: conn}
}

// Close closes the database handle
func (d *DB) Close() error {
	if err := d.conn.Close(); err != nil {
		return fmt.Errorf("failed to close database handle: %w", err)
	}

	logger.Info("Disconnected from the database")
	return nil
}

// Exec executes the finished statement of the builder and returns the
// number of affected rows.
// The parameters are bound positionally in the order they were
// collected during construction
func (d *DB) Exec(ctx context.Context, b *Builder) (int64, error) {
	query, params, err := b.Build()
	if err != nil {
		return 0, err
	}

	return d.ExecRaw(ctx, query, params...)
}

// Query executes the finished statement of the builder and returns the
// raw cursor for the result mapper
func (d *DB) Query(ctx context.Context, b *Builder) (*sql.Rows, error) {
	query, params, err := b.Build()
	if err != nil {
		return nil, err
	}

	return d.QueryRaw(ctx, query, params...)
}

// ExecRaw executes a literal SQL statement with the given parameters
func (d *DB) ExecRaw(ctx context.Context, query string, params ...any) (int64, error) {
	logger.Debug("Executing statement: %s", query)

	res, err := d.conn.ExecContext(ctx, query, params...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute statement: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return rows, nil
}

// QueryRaw executes a literal SQL query with the given parameters
func (d *DB) QueryRaw(ctx context.Context, query string, params ...any) (*sql.Rows, error) {
	logger.Debug("Executing query: %s", query)

	rows, err := d.conn.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	return rows, nil
}

// CreateTable creates the table of the descriptor on the database if
// it doesn't already exist
func (d *DB) CreateTable(ctx context.Context, t *schema.Table) error {
	stmt, err := t.CreateStatement()
	if err != nil {
		return err
	}

	if _, err := d.ExecRaw(ctx, stmt); err != nil {
		return fmt.Errorf("failed to create table %q: %w", t.Name, err)
	}

	logger.Debug("Table created or already exists: %s", t.Name)
	return nil
}
