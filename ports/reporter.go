package ports

// LineReporterPort receives human-readable observability lines (shape, null
// percentages, skewness). It is documentation output, not a data contract.
type LineReporterPort interface {
	Line(format string, args ...any)
}
