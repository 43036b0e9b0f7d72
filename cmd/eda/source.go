package main

import (
	"context"
	"path/filepath"

	"edakit/adapters/db"
	"edakit/adapters/excel"
	"edakit/domain/dataset"
	"edakit/internal/config"
)

// loadTable reads --input when given, otherwise extracts the configured table
func (a *app) loadTable(ctx context.Context) (*dataset.Table, error) {
	if a.input != "" {
		a.logger.Debug("reading %s", a.input)
		return excel.NewDataReader(a.input).ReadTable()
	}
	return a.extract(ctx)
}

func (a *app) extract(ctx context.Context) (*dataset.Table, error) {
	creds, err := config.LoadCredentials(a.cfg.Database.CredentialsFile)
	if err != nil {
		return nil, err
	}
	driver, dsn, err := config.BuildDriverAndDSN(creds, a.cfg.Database.Type)
	if err != nil {
		return nil, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, a.cfg.Database.ConnectTimeout)
	defer cancel()
	conn, err := db.Connect(connectCtx, driver, dsn)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	return conn.ExtractTable(ctx, a.cfg.Database.Table)
}

// outputPath resolves name inside EDA_OUTPUT_DIR unless it is already a path
func (a *app) outputPath(name string) string {
	if filepath.IsAbs(name) || filepath.Dir(name) != "." {
		return name
	}
	return filepath.Join(a.cfg.Export.OutputDir, name)
}
