package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"edakit/domain/dataset"
	"edakit/domain/stats"
	"edakit/internal/profiling"
	"edakit/internal/visual"
)

// Options controls what goes into a report.
type Options struct {
	Title string
	// SkewThreshold is the |skewness| at or above which a column is listed as skewed.
	SkewThreshold float64
	// Workers bounds concurrent column profiling; 0 means GOMAXPROCS.
	Workers int
	// SampleRows is how many leading rows to show; 0 hides the section.
	SampleRows int
	// Correlations adds the strongest pairwise correlations among numeric columns.
	Correlations bool
}

// DefaultOptions returns reasonable defaults for an EDA report.
func DefaultOptions() Options {
	return Options{
		SkewThreshold: 1,
		SampleRows:    5,
		Correlations:  true,
	}
}

// Report is a markdown-friendly EDA summary of one table.
type Report struct {
	Title         string
	Profile       *stats.TableProfile
	NullColumns   stats.NullColumnReport
	SkewThreshold float64
	Skewed        stats.SkewnessReport
	Correlation   *visual.CorrelationMatrix
	Header        []string
	Samples       [][]string
}

// Build profiles the table and collects everything the report shows. Nothing
// is printed while building.
func Build(ctx context.Context, t *dataset.Table, opt Options) (*Report, error) {
	profiler := profiling.NewProfiler(profiling.NopReporter{})

	profile, err := profiler.Summarize(ctx, t, opt.Workers)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Title:         opt.Title,
		Profile:       profile,
		NullColumns:   profiler.Nulls.NullColumns(t),
		SkewThreshold: opt.SkewThreshold,
		Header:        t.ColumnNames(),
	}
	if r.Title == "" {
		r.Title = fmt.Sprintf("EDA report: %s", t.Name)
	}

	skewed := profiler.Skew.SkewedColumns(t, opt.SkewThreshold)
	if len(skewed) > 0 {
		r.Skewed, err = profiler.Skew.Skewness(t, skewed)
		if err != nil {
			return nil, err
		}
	}

	if numeric := profiler.Skew.NumericColumns(t); opt.Correlations && len(numeric) >= 2 {
		sub, err := t.Select(numeric...)
		if err != nil {
			return nil, err
		}
		m, err := visual.NewCorrelationMatrix(sub)
		if err != nil {
			return nil, err
		}
		r.Correlation = &m
	}

	for i := 0; i < opt.SampleRows && i < t.NumRows(); i++ {
		row := t.Row(i)
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = formatCell(v)
		}
		r.Samples = append(r.Samples, cells)
	}
	return r, nil
}

// Markdown renders the report.
func (r *Report) Markdown() string {
	var b strings.Builder
	p := r.Profile

	fmt.Fprintf(&b, "# %s\n\n", r.Title)
	fmt.Fprintf(&b, "The table has %d columns and %d rows.\n\n", len(p.Columns), p.Rows)

	b.WriteString("## Columns\n\n")
	b.WriteString("| column | type | mean | median | std | distinct | nulls | null % | skewness |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|---|\n")
	for _, c := range p.Columns {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %d | %d | %s | %s |\n",
			safeVal(c.Column), c.Type, num(c.Mean), num(c.Median), num(c.StdDev),
			c.DistinctCount, c.NullCount, pct(c.NullPercentage), num(c.Skewness))
	}

	b.WriteString("\n## Missing values\n\n")
	if len(r.NullColumns) == 0 {
		b.WriteString("No column has missing values.\n")
	}
	for _, nc := range r.NullColumns {
		fmt.Fprintf(&b, "- %s: %.1f%%\n", safeVal(nc.Column), nc.Percentage)
	}

	b.WriteString("\n## Skewness\n\n")
	if len(r.Skewed) == 0 {
		fmt.Fprintf(&b, "No numeric column has |skewness| >= %.2f.\n", r.SkewThreshold)
	} else {
		fmt.Fprintf(&b, "Columns with |skewness| >= %.2f:\n\n", r.SkewThreshold)
	}
	for _, s := range r.Skewed {
		fmt.Fprintf(&b, "- %s: %.2f\n", safeVal(s.Column), s.Value)
	}

	if pairs := r.topCorrelations(10); len(pairs) > 0 {
		b.WriteString("\n## Correlations\n\n")
		for _, pr := range pairs {
			fmt.Fprintf(&b, "- %s ~ %s: r=%.3f\n", safeVal(pr.a), safeVal(pr.b), pr.r)
		}
	}

	if len(r.Samples) > 0 {
		b.WriteString("\n## Sample rows\n\n")
		b.WriteString("| " + strings.Join(mapStrings(r.Header, safeVal), " | ") + " |\n")
		b.WriteString("|" + strings.Repeat("---|", len(r.Header)) + "\n")
		for _, row := range r.Samples {
			b.WriteString("| " + strings.Join(mapStrings(row, safeVal), " | ") + " |\n")
		}
	}
	return b.String()
}

type corrPair struct {
	a, b string
	r    float64
}

// topCorrelations lists visible pairs by descending |r|, NaN pairs dropped
func (r *Report) topCorrelations(limit int) []corrPair {
	if r.Correlation == nil {
		return nil
	}
	m := r.Correlation
	var pairs []corrPair
	for i := range m.Columns {
		for j := range m.Columns {
			if m.Visible[i][j] && !math.IsNaN(m.Coefficients[i][j]) {
				pairs = append(pairs, corrPair{a: m.Columns[j], b: m.Columns[i], r: m.Coefficients[i][j]})
			}
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return math.Abs(pairs[i].r) > math.Abs(pairs[j].r)
	})
	if len(pairs) > limit {
		pairs = pairs[:limit]
	}
	return pairs
}

func num(f float64) string {
	if math.IsNaN(f) {
		return "n/a"
	}
	return fmt.Sprintf("%.4g", f)
}

func pct(f float64) string {
	if math.IsNaN(f) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", f)
}

func formatCell(v any) string {
	if dataset.IsNull(v) {
		return ""
	}
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02")
	}
	s := fmt.Sprint(v)
	if len(s) > 80 {
		s = s[:77] + "..."
	}
	return s
}

func safeVal(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}

func mapStrings(in []string, fn func(string) string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = fn(s)
	}
	return out
}
