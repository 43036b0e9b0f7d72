package main

import (
	"fmt"
	"os"

	"edakit/internal"
	"edakit/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once the root command has run
type app struct {
	cfg    *config.Config
	logger *internal.Logger
	input  string
	table  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "eda",
		Short: "Exploratory data analysis for a single table",
		Long: `Exploratory data analysis for a single table loaded from a database or a file.

Configuration is read from the environment (a .env file is honoured):
- EDA_DB_CREDENTIALS (default: credentials.yaml)
- EDA_DB_TYPE (default: postgres)
- EDA_TABLE (default: loan_payments)
- EDA_OUTPUT_DIR (default: .)
- EDA_CONNECT_TIMEOUT (seconds, default: 10)
- EDA_SERVER_PORT (default: 8080)
- LOG_LEVEL (ERROR|WARN|INFO|DEBUG|TRACE)`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.input, "input", "", "Read the table from a .csv or .xlsx file instead of the database")
	rootCmd.PersistentFlags().StringVar(&a.table, "table", "", "Table to extract (overrides EDA_TABLE)")

	rootCmd.AddCommand(
		newExtractCmd(a),
		newDescribeCmd(a),
		newNullsCmd(a),
		newSkewCmd(a),
		newReportCmd(a),
		newExportCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

func (a *app) init() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.table != "" {
		cfg.Database.Table = a.table
	}
	a.cfg = cfg

	internal.DefaultLogger = internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))
	a.logger = internal.DefaultLogger.With("eda")
	return nil
}
