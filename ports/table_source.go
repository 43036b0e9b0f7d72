package ports

import (
	"context"

	"edakit/domain/dataset"
)

// TableExtractorPort pulls a single table from a data source into memory
type TableExtractorPort interface {
	ExtractTable(ctx context.Context, table string) (*dataset.Table, error)
	Close() error
}

// TableReaderPort loads a table from a file
type TableReaderPort interface {
	ReadTable() (*dataset.Table, error)
}
