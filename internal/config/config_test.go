package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validYAML = `
snowflake:
  user: reporting
  password: secret
  account: myorg-myaccount
  warehouse: REPORTING_WH
  database: ANALYTICS
  schema: PUBLIC
  role: REPORTER
google_sheets:
  credentials_file: service-account.json
tasks:
  - enabled: true
    id: sheet-123
    worksheet_name: Revenue
    query_file: queries/revenue.sql
    freeze:
      row: 2
      col: 3
  - enabled: false
`

func TestParseValidConfig(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Snowflake.Account != "myorg-myaccount" {
		t.Errorf("Expected account 'myorg-myaccount', got %q", cfg.Snowflake.Account)
	}
	if cfg.Snowflake.Warehouse != "REPORTING_WH" {
		t.Errorf("Expected warehouse 'REPORTING_WH', got %q", cfg.Snowflake.Warehouse)
	}
	if cfg.GoogleSheets.CredentialsFile != "service-account.json" {
		t.Errorf("Expected credentials file 'service-account.json', got %q", cfg.GoogleSheets.CredentialsFile)
	}
	if len(cfg.Tasks) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(cfg.Tasks))
	}

	task := cfg.Tasks[0]
	if !task.Enabled {
		t.Error("Expected first task to be enabled")
	}
	if task.ID != "sheet-123" {
		t.Errorf("Expected task id 'sheet-123', got %q", task.ID)
	}
	if task.WorksheetName != "Revenue" {
		t.Errorf("Expected worksheet name 'Revenue', got %q", task.WorksheetName)
	}
	if task.Freeze == nil {
		t.Fatal("Expected freeze block to be set")
	}
	if task.Freeze.RowCount() != 2 || task.Freeze.ColCount() != 3 {
		t.Errorf("Expected freeze row=2 col=3, got row=%d col=%d", task.Freeze.RowCount(), task.Freeze.ColCount())
	}

	if cfg.Tasks[1].Enabled {
		t.Error("Expected second task to be disabled")
	}
	if cfg.Tasks[1].Freeze != nil {
		t.Error("Expected second task to have no freeze block")
	}
}

func TestParseFreezeDefaults(t *testing.T) {
	yamlData := `
snowflake:
  user: reporting
  account: myorg-myaccount
google_sheets:
  credentials_file: service-account.json
tasks:
  - enabled: true
    id: sheet-123
    worksheet_name: Revenue
    query_file: queries/revenue.sql
    freeze: {}
  - enabled: true
    id: sheet-123
    worksheet_name: Costs
    query_file: queries/costs.sql
    freeze:
      col: 4
  - enabled: true
    id: sheet-123
    worksheet_name: Raw
    query_file: queries/raw.sql
    freeze:
      row: 0
      col: 0
`
	cfg, err := Parse([]byte(yamlData))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if f := cfg.Tasks[0].Freeze; f.RowCount() != 1 || f.ColCount() != 2 {
		t.Errorf("Expected empty freeze block to default to row=1 col=2, got row=%d col=%d", f.RowCount(), f.ColCount())
	}
	if f := cfg.Tasks[1].Freeze; f.RowCount() != 1 || f.ColCount() != 4 {
		t.Errorf("Expected freeze row=1 col=4, got row=%d col=%d", f.RowCount(), f.ColCount())
	}
	// An explicit 0 means unfreeze and must not be coerced to the default.
	if f := cfg.Tasks[2].Freeze; f.RowCount() != 0 || f.ColCount() != 0 {
		t.Errorf("Expected explicit freeze row=0 col=0 to be preserved, got row=%d col=%d", f.RowCount(), f.ColCount())
	}
}

func TestParseMissingRequiredKeys(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantKey string
	}{
		{
			name: "missing account",
			yaml: `
snowflake:
  user: reporting
google_sheets:
  credentials_file: service-account.json
`,
			wantKey: "snowflake.account",
		},
		{
			name: "missing credentials file",
			yaml: `
snowflake:
  user: reporting
  account: myorg-myaccount
google_sheets: {}
`,
			wantKey: "google_sheets.credentials_file",
		},
		{
			name: "enabled task missing worksheet name",
			yaml: `
snowflake:
  user: reporting
  account: myorg-myaccount
google_sheets:
  credentials_file: service-account.json
tasks:
  - enabled: true
    id: sheet-123
    query_file: queries/revenue.sql
`,
			wantKey: "tasks[0].worksheet_name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Expected Parse to fail")
			}
			if !strings.Contains(err.Error(), tt.wantKey) {
				t.Errorf("Expected error to mention %q, got: %v", tt.wantKey, err)
			}
		})
	}
}

func TestParseDisabledTaskSkipsRequiredFields(t *testing.T) {
	yamlData := `
snowflake:
  user: reporting
  account: myorg-myaccount
google_sheets:
  credentials_file: service-account.json
tasks:
  - enabled: false
`
	if _, err := Parse([]byte(yamlData)); err != nil {
		t.Fatalf("Expected disabled task without target fields to validate, got: %v", err)
	}
}

func TestParseMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("snowflake: [not a mapping")); err == nil {
		t.Fatal("Expected Parse to fail on malformed YAML")
	}
}

func TestLoad(t *testing.T) {
	testDir, err := os.MkdirTemp("", "sheetsync_config_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(testDir)

	configFile := filepath.Join(testDir, "configuration.yaml")
	if err := os.WriteFile(configFile, []byte(validYAML), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Snowflake.User != "reporting" {
		t.Errorf("Expected user 'reporting', got %q", cfg.Snowflake.User)
	}

	if _, err := Load(filepath.Join(testDir, "missing.yaml")); err == nil {
		t.Error("Expected Load to fail on a missing file")
	}
}
