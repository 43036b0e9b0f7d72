package ports

import (
	"edakit/domain/dataset"
	"edakit/domain/stats"
)

// TableExporterPort writes a table to a delimited text file
type TableExporterPort interface {
	WriteTable(table *dataset.Table, path string) error
}

// WorkbookExporterPort writes a table and its profile to a spreadsheet
type WorkbookExporterPort interface {
	Export(table *dataset.Table, profile *stats.TableProfile, path string) error
}
