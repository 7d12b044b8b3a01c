package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sf "github.com/snowflakedb/gosnowflake"

	"github.com/gerhard-ee/sheetsync/internal/config"
)

// SnowflakeDB runs queries against a Snowflake warehouse through the
// gosnowflake database/sql driver.
type SnowflakeDB struct {
	db  *sql.DB
	dsn string
}

// NewSnowflake builds a Snowflake client from the connection
// parameters. No connection is opened until Connect is called.
func NewSnowflake(cfg *config.Snowflake) (*SnowflakeDB, error) {
	auth, err := authType(cfg.Authenticator)
	if err != nil {
		return nil, err
	}

	dsn, err := sf.DSN(&sf.Config{
		Account:       cfg.Account,
		User:          cfg.User,
		Password:      cfg.Password,
		Warehouse:     cfg.Warehouse,
		Database:      cfg.Database,
		Schema:        cfg.Schema,
		Role:          cfg.Role,
		Authenticator: auth,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build snowflake DSN: %v", err)
	}

	return &SnowflakeDB{dsn: dsn}, nil
}

// Connect opens the connection pool and verifies it with a ping.
func (s *SnowflakeDB) Connect(ctx context.Context) error {
	db, err := sql.Open("snowflake", s.dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %v", err)
	}

	s.db = db
	return nil
}

// Close closes the connection pool.
func (s *SnowflakeDB) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Query executes a statement and materializes the whole result set.
func (s *SnowflakeDB) Query(ctx context.Context, query string) (*ResultSet, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database is not connected")
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %v", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %v", err)
	}

	result := &ResultSet{Columns: cleanColumns(columns)}

	values := make([]interface{}, len(columns))
	valuePtrs := make([]interface{}, len(columns))
	for rows.Next() {
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %v", err)
		}

		row := make([]interface{}, len(columns))
		copy(row, values)
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %v", err)
	}

	return result, nil
}

// cleanColumns strips stray single quotes from column names so
// quoted identifiers come out as plain header cells.
func cleanColumns(columns []string) []string {
	cleaned := make([]string, len(columns))
	for i, col := range columns {
		cleaned[i] = strings.ReplaceAll(col, "'", "")
	}
	return cleaned
}

// authType maps the configured authenticator mode onto the driver's
// auth types. An empty mode means the default password authenticator.
func authType(name string) (sf.AuthType, error) {
	switch strings.ToLower(name) {
	case "", "snowflake":
		return sf.AuthTypeSnowflake, nil
	case "externalbrowser":
		return sf.AuthTypeExternalBrowser, nil
	case "oauth":
		return sf.AuthTypeOAuth, nil
	case "snowflake_jwt":
		return sf.AuthTypeJwt, nil
	case "username_password_mfa":
		return sf.AuthTypeUsernamePasswordMFA, nil
	default:
		return sf.AuthTypeSnowflake, fmt.Errorf("unsupported authenticator: %q", name)
	}
}
