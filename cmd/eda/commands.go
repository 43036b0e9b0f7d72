package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"edakit/adapters/api"
	"edakit/adapters/excel"
	"edakit/domain/stats"
	"edakit/internal/profiling"
	"edakit/internal/report"
	"edakit/internal/visual"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newExtractCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract the configured table from the database and save it as CSV",
		Long: `Connect with the YAML credentials file, pull the whole table into memory
and write it as CSV.

Example: eda extract --table loan_payments --out loan_payments.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.extract(cmd.Context())
			if err != nil {
				return err
			}
			if out == "" {
				out = t.Name + ".csv"
			}
			path := a.outputPath(out)
			if err := excel.WriteCSV(t, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d rows to %s\n", t.NumRows(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "CSV file to write (default: <table>.csv in EDA_OUTPUT_DIR)")
	return cmd
}

func newDescribeCmd(a *app) *cobra.Command {
	var column string
	var statistic string

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print shape, element types and descriptive statistics",
		Long: `Print the table shape, each column's element type and its mean, median,
standard deviation and distinct count.

With --stat, print one statistic (mean|median|std|distinct|null_count|null_pct)
for --column, or for every applicable column when --column is omitted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTable(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			p := profiling.NewProfiler(profiling.NewWriterReporter(w))

			if statistic != "" {
				s := stats.Statistic(statistic)
				if column != "" {
					v, err := p.Stat(t, s, column)
					if err != nil {
						return err
					}
					fmt.Fprintf(w, "%s %s: %s\n", column, s, formatFloat(v))
					return nil
				}
				summary, err := p.StatAll(t, s)
				if err != nil {
					return err
				}
				for _, v := range summary.Values {
					fmt.Fprintf(w, "%s: %s\n", v.Column, formatFloat(v.Value))
				}
				return nil
			}

			p.Descriptive.Shape(t)
			profile, err := p.Summarize(cmd.Context(), t, 0)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "column\ttype\tmean\tmedian\tstd\tdistinct")
			for _, c := range profile.Columns {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n", c.Column, c.Type,
					formatFloat(c.Mean), formatFloat(c.Median), formatFloat(c.StdDev), c.DistinctCount)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "Column for --stat")
	cmd.Flags().StringVar(&statistic, "stat", "", "Single statistic to print")
	return cmd
}

func newNullsCmd(a *app) *cobra.Command {
	var op string
	var pct float64

	cmd := &cobra.Command{
		Use:   "nulls",
		Short: "List columns with missing values",
		Long: `Print the null percentage of every column that has nulls.

With --op and --pct, list the columns whose null percentage is greater than (>)
or less than (<) the threshold. Columns without nulls never match "<".

Example: eda nulls --op '>' --pct 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var comparator stats.Comparator
			if op != "" {
				c, err := stats.ParseComparator(op)
				if err != nil {
					return err
				}
				comparator = c
			}

			t, err := a.loadTable(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			nulls := profiling.NewNullAnalyzer(profiling.NewWriterReporter(w))

			if comparator == "" {
				if cols := nulls.ColumnsWithNulls(t, true); len(cols) == 0 {
					fmt.Fprintln(w, "No column has missing values.")
				}
				return nil
			}
			cols, err := nulls.ColumnsByNullThreshold(t, comparator, pct)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "Columns with null percentage %s %.1f%%: %s\n", comparator, pct, strings.Join(cols, ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&op, "op", "", "Comparison operator: > or <")
	cmd.Flags().Float64Var(&pct, "pct", 0, "Null percentage threshold")
	return cmd
}

func newSkewCmd(a *app) *cobra.Command {
	var threshold float64
	var compare string

	cmd := &cobra.Command{
		Use:   "skew",
		Short: "Report skewness of numeric columns",
		Long: `Print the skewness of every numeric column whose absolute skewness is at
least --threshold.

With --compare, print the skewness of one column under the log, Box-Cox and
Yeo-Johnson transforms.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTable(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if compare != "" {
				cmp, err := visual.CompareSkewTransforms(t, compare)
				if err != nil {
					return err
				}
				for _, panel := range cmp.Panels {
					fmt.Fprintf(w, "%s: %.2f\n", panel.Transform, panel.Skewness)
				}
				fmt.Fprintf(w, "best: %s\n", cmp.Best().Transform)
				return nil
			}

			skew := profiling.NewSkewAnalyzer(profiling.NewWriterReporter(w))
			skewed := skew.SkewedColumns(t, threshold)
			if len(skewed) == 0 {
				fmt.Fprintf(w, "No numeric column has |skewness| >= %.2f.\n", threshold)
				return nil
			}
			_, err = skew.Skewness(t, skewed)
			return err
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", 1, "Absolute skewness threshold")
	cmd.Flags().StringVar(&compare, "compare", "", "Column to compare under skew transforms")
	return cmd
}

func newReportCmd(a *app) *cobra.Command {
	var out string
	var skewThreshold float64

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a markdown or HTML EDA report",
		Long: `Build an EDA report. The format follows the --out extension (.md or .html);
without --out the markdown is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTable(cmd.Context())
			if err != nil {
				return err
			}
			opt := report.DefaultOptions()
			opt.SkewThreshold = skewThreshold
			r, err := report.Build(cmd.Context(), t, opt)
			if err != nil {
				return err
			}
			md := r.Markdown()
			if out == "" {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}

			content := []byte(md)
			if ext := strings.ToLower(filepath.Ext(out)); ext == ".html" || ext == ".htm" {
				content = report.HTML(md, r.Title)
			}
			path := a.outputPath(out)
			if err := os.WriteFile(path, content, 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			a.logger.Info("report written to %s", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Report file (.md or .html)")
	cmd.Flags().Float64Var(&skewThreshold, "skew-threshold", 1, "Absolute skewness threshold")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the table and its profile to an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTable(cmd.Context())
			if err != nil {
				return err
			}
			profile, err := profiling.NewProfiler(nil).Summarize(cmd.Context(), t, 0)
			if err != nil {
				return err
			}
			if out == "" {
				out = t.Name + "_eda.xlsx"
			}
			path := a.outputPath(out)
			if err := excel.NewWorkbookExporter().Export(t, profile, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved workbook to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Workbook file (default: <table>_eda.xlsx in EDA_OUTPUT_DIR)")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve read-only EDA endpoints over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTable(cmd.Context())
			if err != nil {
				return err
			}
			if port == "" {
				port = a.cfg.Server.Port
			}

			gin.SetMode(a.cfg.Server.GinMode)
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return api.NewServer(t).ListenAndServe(ctx, ":"+port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Port to listen on (default: EDA_SERVER_PORT)")
	return cmd
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return fmt.Sprintf("%.4g", f)
}
