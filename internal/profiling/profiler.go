package profiling

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"edakit/domain/dataset"
	"edakit/domain/stats"
	"edakit/ports"

	"golang.org/x/sync/errgroup"
)

// Profiler bundles the three analyzers behind one value so callers and
// adapters share a single reporter.
type Profiler struct {
	Descriptive *DescriptiveStats
	Nulls       *NullAnalyzer
	Skew        *SkewAnalyzer
}

// NewProfiler creates a profiler whose analyzers report to reporter
func NewProfiler(reporter ports.LineReporterPort) *Profiler {
	return &Profiler{
		Descriptive: NewDescriptiveStats(reporter),
		Nulls:       NewNullAnalyzer(reporter),
		Skew:        NewSkewAnalyzer(reporter),
	}
}

// Stat computes a named statistic for one column.
func (p *Profiler) Stat(t *dataset.Table, statistic stats.Statistic, column string) (float64, error) {
	switch statistic {
	case stats.StatMean:
		return p.Descriptive.Mean(t, column)
	case stats.StatMedian:
		return p.Descriptive.Median(t, column)
	case stats.StatStandardDeviation:
		return p.Descriptive.StandardDeviation(t, column)
	case stats.StatDistinctCount:
		n, err := p.Descriptive.DistinctCount(t, column)
		return float64(n), err
	case stats.StatNullCount:
		n, err := p.Nulls.NullCount(t, column)
		return float64(n), err
	case stats.StatNullPercentage:
		return p.Nulls.NullPercentage(t, column)
	}
	return math.NaN(), fmt.Errorf("unknown statistic %q", statistic)
}

// StatAll computes a named statistic for every applicable column.
func (p *Profiler) StatAll(t *dataset.Table, statistic stats.Statistic) (stats.ColumnStatSummary, error) {
	switch statistic {
	case stats.StatMean:
		return p.Descriptive.MeanAll(t), nil
	case stats.StatMedian:
		return p.Descriptive.MedianAll(t), nil
	case stats.StatStandardDeviation:
		return p.Descriptive.StandardDeviationAll(t), nil
	case stats.StatDistinctCount:
		return p.Descriptive.DistinctCountAll(t), nil
	case stats.StatNullCount:
		return p.Nulls.NullCountAll(t), nil
	case stats.StatNullPercentage:
		return p.Nulls.NullPercentageAll(t), nil
	}
	return stats.ColumnStatSummary{}, fmt.Errorf("unknown statistic %q", statistic)
}

// Summarize profiles every column of the table. Columns are independent
// read-only views, so up to workers columns are profiled at once; workers <= 0
// uses GOMAXPROCS. Non-numeric columns carry NaN numeric statistics.
func (p *Profiler) Summarize(ctx context.Context, t *dataset.Table, workers int) (*stats.TableProfile, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	profile := &stats.TableProfile{
		TableID: t.ID,
		Table:   t.Name,
		Rows:    t.NumRows(),
		Columns: make([]stats.ColumnProfile, t.NumColumns()),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < t.NumColumns(); i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			profile.Columns[i] = profileColumn(t.ColumnAt(i), t.NumRows())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return profile, nil
}

// ProfileColumn computes every descriptive statistic for one column.
func (p *Profiler) ProfileColumn(t *dataset.Table, column string) (stats.ColumnProfile, error) {
	col, err := t.Column(column)
	if err != nil {
		return stats.ColumnProfile{}, err
	}
	return profileColumn(col, t.NumRows()), nil
}

func profileColumn(col *dataset.Column, rows int) stats.ColumnProfile {
	nulls := col.NullCount()
	cp := stats.ColumnProfile{
		Column:         col.Name,
		Type:           col.Type,
		DistinctCount:  col.DistinctCount(),
		NullCount:      nulls,
		NullPercentage: percentage(nulls, rows),
		Mean:           math.NaN(),
		Median:         math.NaN(),
		StdDev:         math.NaN(),
		Skewness:       math.NaN(),
	}
	if values, err := col.Floats(); err == nil {
		cp.Mean = Mean(values)
		cp.Median = Median(values)
		cp.StdDev = StandardDeviation(values)
		cp.Skewness = Skewness(values)
	}
	return cp
}
