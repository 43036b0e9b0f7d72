package db

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"edakit/domain/dataset"
	"edakit/internal"
	"edakit/internal/config"
	"edakit/internal/errors"
	"edakit/ports"
)

var _ ports.TableExtractorPort = (*Connector)(nil)

// supportedDrivers are the database/sql driver names registered by the blank imports above.
var supportedDrivers = map[string]bool{
	"postgres":  true,
	"mysql":     true,
	"sqlite":    true,
	"sqlserver": true,
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Connector pulls whole tables out of a SQL database.
type Connector struct {
	db     *sqlx.DB
	driver string
	logger *internal.Logger
}

// Connect opens a pool for driver/dsn and pings it. The ping is bounded by ctx,
// so callers put the connect timeout on the context.
func Connect(ctx context.Context, driver, dsn string) (*Connector, error) {
	driver = config.NormalizeDriver(driver)
	if !supportedDrivers[driver] {
		return nil, errors.InvalidInput(fmt.Sprintf("driver not supported: %q", driver))
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, errors.DatabaseError("failed to open database", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.DatabaseError("failed to reach database", err)
	}

	logger := internal.DefaultLogger.With("DBConnector")
	logger.Debug("connected using driver %s", driver)
	return &Connector{db: db, driver: driver, logger: logger}, nil
}

// Driver returns the normalized driver name.
func (c *Connector) Driver() string {
	return c.driver
}

// ExtractTable reads every row of the named table. Element types come from the
// column types the driver reports, and SQL NULL becomes a null cell.
func (c *Connector) ExtractTable(ctx context.Context, table string) (*dataset.Table, error) {
	if !identifierPattern.MatchString(table) {
		return nil, errors.InvalidInput(fmt.Sprintf("invalid table name: %q", table))
	}

	query := "SELECT * FROM " + quoteIdentifier(c.driver, table)
	rows, err := c.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError(fmt.Sprintf("failed to query table %s", table), err)
	}
	defer rows.Close()

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, errors.DatabaseError("failed to read column types", err)
	}
	names := make([]string, len(columnTypes))
	types := make([]dataset.ElementType, len(columnTypes))
	for i, ct := range columnTypes {
		names[i] = ct.Name()
		types[i] = MapColumnType(c.driver, ct.DatabaseTypeName())
		c.logger.Trace("column %s: %s -> %s", ct.Name(), ct.DatabaseTypeName(), types[i])
	}

	var data [][]any
	for rows.Next() {
		raw, err := rows.SliceScan()
		if err != nil {
			return nil, errors.DatabaseError("failed to scan row", err)
		}
		row := make([]any, len(raw))
		for j, v := range raw {
			cell, err := convertValue(v, types[j])
			if err != nil {
				return nil, errors.DatabaseError(
					fmt.Sprintf("column %s, row %d", names[j], len(data)), err)
			}
			row[j] = cell
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("row iteration failed", err)
	}

	t, err := dataset.NewTableFromRows(table, names, types, data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to assemble table")
	}
	c.logger.Info("extracted %s: %d rows, %d columns", table, t.NumRows(), t.NumColumns())
	return t, nil
}

// Close releases the connection pool.
func (c *Connector) Close() error {
	return c.db.Close()
}

func quoteIdentifier(driver, name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		switch driver {
		case "mysql":
			parts[i] = "`" + p + "`"
		case "sqlserver":
			parts[i] = "[" + p + "]"
		default:
			parts[i] = `"` + p + `"`
		}
	}
	return strings.Join(parts, ".")
}
