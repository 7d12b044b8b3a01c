package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Default freeze pane counts applied when a task carries a freeze
// block with missing fields.
const (
	defaultFrozenRows = 1
	defaultFrozenCols = 2
)

// Config is the full configuration for one sync run: the warehouse
// connection, the spreadsheet credentials, and the ordered task list.
type Config struct {
	Snowflake    Snowflake    `yaml:"snowflake"`
	GoogleSheets GoogleSheets `yaml:"google_sheets"`
	Tasks        []Task       `yaml:"tasks" validate:"dive"`
}

// Snowflake holds the warehouse connection parameters.
type Snowflake struct {
	User          string `yaml:"user" validate:"required"`
	Password      string `yaml:"password"`
	Account       string `yaml:"account" validate:"required"`
	Warehouse     string `yaml:"warehouse"`
	Database      string `yaml:"database"`
	Schema        string `yaml:"schema"`
	Role          string `yaml:"role"`
	Authenticator string `yaml:"authenticator"`
}

// GoogleSheets holds the spreadsheet credentials reference.
type GoogleSheets struct {
	CredentialsFile string `yaml:"credentials_file" validate:"required"`
}

// Task is one query-to-worksheet sync unit. Target and query fields
// are only required when the task is enabled.
type Task struct {
	Enabled       bool    `yaml:"enabled"`
	ID            string  `yaml:"id" validate:"required_if=Enabled true"`
	WorksheetName string  `yaml:"worksheet_name" validate:"required_if=Enabled true"`
	QueryFile     string  `yaml:"query_file" validate:"required_if=Enabled true"`
	Freeze        *Freeze `yaml:"freeze"`
}

// Freeze pins the given number of leading rows and columns on the
// target worksheet. A task without a freeze block applies no freeze.
// Fields are pointers so an explicit 0 (unfreeze) is distinguishable
// from an omitted field, which falls back to the default.
type Freeze struct {
	Row *int64 `yaml:"row"`
	Col *int64 `yaml:"col"`
}

// RowCount returns the number of rows to freeze, applying the
// default when the field is omitted.
func (f *Freeze) RowCount() int64 {
	if f.Row == nil {
		return defaultFrozenRows
	}
	return *f.Row
}

// ColCount returns the number of columns to freeze, applying the
// default when the field is omitted.
func (f *Freeze) ColCount() int64 {
	if f.Col == nil {
		return defaultFrozenCols
	}
	return *f.Col
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse unmarshals a literal YAML configuration and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
