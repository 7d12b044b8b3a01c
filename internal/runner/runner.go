package runner

import (
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/gerhard-ee/sheetsync/internal/config"
	"github.com/gerhard-ee/sheetsync/internal/database"
	"github.com/gerhard-ee/sheetsync/internal/sheets"
)

// SheetWriter is the part of the Sheets client the runner drives.
type SheetWriter interface {
	EnsureWorksheet(ctx context.Context, spreadsheetID, name string) (int64, error)
	Replace(ctx context.Context, spreadsheetID, name string, values [][]interface{}) error
	Freeze(ctx context.Context, spreadsheetID string, sheetID, rows, cols int64) error
}

// Runner executes the configured tasks sequentially: one query, one
// worksheet write, one optional freeze per enabled task.
type Runner struct {
	cfg    *config.Config
	db     database.Database
	writer SheetWriter
}

// New wires a runner against the real Snowflake and Google Sheets
// clients described by the configuration.
func New(ctx context.Context, cfg *config.Config) (*Runner, error) {
	db, err := database.NewSnowflake(&cfg.Snowflake)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake client: %w", err)
	}

	writer, err := sheets.NewClient(ctx, cfg.GoogleSheets.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	return NewWithClients(cfg, db, writer), nil
}

// NewWithClients wires a runner against caller-provided clients.
func NewWithClients(cfg *config.Config, db database.Database, writer SheetWriter) *Runner {
	return &Runner{cfg: cfg, db: db, writer: writer}
}

// Run processes every enabled task in list order. The first failure
// aborts the run with an error naming the task's target worksheet.
// The warehouse connection is opened lazily, so a run with no enabled
// tasks never connects.
func (r *Runner) Run(ctx context.Context) error {
	connected := false
	defer func() {
		if connected {
			r.db.Close()
		}
	}()

	for i := range r.cfg.Tasks {
		task := &r.cfg.Tasks[i]
		if !task.Enabled {
			log.WithField("worksheet", task.WorksheetName).Debug("Skipping disabled task")
			continue
		}

		if !connected {
			if err := r.db.Connect(ctx); err != nil {
				return fmt.Errorf("failed to connect to snowflake: %w", err)
			}
			connected = true
		}

		if err := r.runTask(ctx, task); err != nil {
			return fmt.Errorf("task %s (worksheet %q): %w", task.ID, task.WorksheetName, err)
		}
	}

	return nil
}

func (r *Runner) runTask(ctx context.Context, task *config.Task) error {
	query, err := readQueryFile(task.QueryFile)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"worksheet":  task.WorksheetName,
		"query_file": task.QueryFile,
	}).Info("Running task")

	rs, err := r.db.Query(ctx, query)
	if err != nil {
		return err
	}

	sheetID, err := r.writer.EnsureWorksheet(ctx, task.ID, task.WorksheetName)
	if err != nil {
		return err
	}

	if err := r.writer.Replace(ctx, task.ID, task.WorksheetName, sheets.Grid(rs)); err != nil {
		return err
	}

	if task.Freeze != nil {
		if err := r.writer.Freeze(ctx, task.ID, sheetID, task.Freeze.RowCount(), task.Freeze.ColCount()); err != nil {
			return err
		}
	}

	log.WithFields(log.Fields{
		"worksheet": task.WorksheetName,
		"rows":      len(rs.Rows),
	}).Info("Worksheet updated")

	return nil
}

// readQueryFile loads the SQL text for a task. An empty or
// whitespace-only file is an error.
func readQueryFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read query file: %w", err)
	}

	query := strings.TrimSpace(string(data))
	if query == "" {
		return "", fmt.Errorf("query file %s is empty", path)
	}

	return query, nil
}
