package database

import "context"

// ResultSet is a fully materialized query result: the column headers
// followed by the data rows, in result order.
type ResultSet struct {
	Columns []string
	Rows    [][]interface{}
}

// Database defines the interface for warehouse operations
type Database interface {
	// Connect establishes a connection to the warehouse
	Connect(ctx context.Context) error
	// Close closes the warehouse connection
	Close() error
	// Query executes a SQL statement and materializes the result set
	Query(ctx context.Context, query string) (*ResultSet, error)
}
