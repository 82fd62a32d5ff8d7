package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/runnerr0/newsreports/internal/config"
	"github.com/runnerr0/newsreports/internal/logging"
	"github.com/runnerr0/newsreports/internal/report"
	"github.com/runnerr0/newsreports/internal/storage"
)

// queryRunner is the part of *storage.Store the report loop needs.
type queryRunner interface {
	Run(ctx context.Context, q storage.Query) ([]storage.Row, error)
}

// run resolves configuration, connects, and writes all reports.
func (o *Options) run() error {
	cfg, err := o.resolveConfig()
	if err != nil {
		return err
	}

	if o.PrintConfig {
		data, err := cfg.YAML()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	log := logging.New(cfg.Logging, os.Stderr)
	return execute(context.Background(), cfg, log, os.Stdout)
}

// resolveConfig layers flags over the loaded config. Flags win, and the
// database name always comes from --db_name.
func (o *Options) resolveConfig() (*config.Config, error) {
	cfg, err := config.Load(o.Config)
	if err != nil {
		return nil, err
	}

	cfg.Database.Name = o.DBName
	if o.OutputPath != "" {
		cfg.Report.OutputPath = o.OutputPath
	}
	if cfg.Report.OutputPath == "" {
		cfg.Report.OutputPath = defaultOutputPath()
	}
	if o.Verbose {
		cfg.Logging.Level = "debug"
	}
	if o.Stdout {
		cfg.Report.Stdout = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// execute owns the connection for the whole run and closes it on every
// path once it has been opened.
func execute(ctx context.Context, cfg *config.Config, log zerolog.Logger, stdout io.Writer) (err error) {
	store, err := storage.Open(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close database: %w", cerr)
		}
	}()

	return generate(ctx, store, cfg.Report, log, stdout)
}

// generate runs each catalog query and appends its block before moving on,
// so a failure leaves the blocks written so far in place.
func generate(ctx context.Context, runner queryRunner, rc config.ReportConfig, log zerolog.Logger, stdout io.Writer) error {
	for _, q := range storage.Catalog() {
		rows, err := runner.Run(ctx, q)
		if err != nil {
			return err
		}

		block := report.NewBlock(q, rows)
		if err := report.Append(rc.OutputPath, block); err != nil {
			return fmt.Errorf("append %s: %w", q.Name, err)
		}
		if rc.Stdout {
			if err := report.Render(stdout, block); err != nil {
				return fmt.Errorf("print %s: %w", q.Name, err)
			}
		}

		log.Info().
			Str("report", q.Name).
			Int("rows", len(rows)).
			Str("output", rc.OutputPath).
			Msg("report written")
	}
	return nil
}
