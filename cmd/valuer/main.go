package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"liquidationScope/internal/config"
	"liquidationScope/internal/pipeline"
)

func main() {
	root := &cobra.Command{
		Use:          "valuer",
		Short:        "Starknet liquidation valuation",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			return config.LoadDotEnv(envFile)
		},
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("env-file", "", "dotenv file path (default ./.env)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Value every stored liquidation and write the CSV",
		RunE:  runValuation,
	}

	addDatabaseFlags(runCmd.Flags())
	runCmd.Flags().String("out", "./data/liquidations.csv", "output CSV path")
	runCmd.Flags().Int("page-size", pipeline.DefaultPageSize, "timestamps fetched per cursor page")
	runCmd.Flags().String("metrics-addr", "", "serve prometheus metrics on this address (empty disables)")
	runCmd.Flags().String("s3-bucket", "", "upload the finished CSV to this bucket (empty disables)")
	runCmd.Flags().String("s3-key", "", "object key (default: base name of --out)")
	runCmd.Flags().String("s3-region", "", "S3 region")
	runCmd.Flags().String("s3-endpoint", "", "custom S3 endpoint")
	runCmd.Flags().Bool("s3-path-style", false, "use path-style S3 addressing")
	runCmd.Flags().String("s3-access-key-id", "", "static S3 access key id")
	runCmd.Flags().String("s3-secret-access-key", "", "static S3 secret access key")
	addLogFlags(runCmd.Flags())

	root.AddCommand(runCmd)

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import raw oracle and market events into the event tables",
		RunE:  runImport,
	}

	addDatabaseFlags(importCmd.Flags())
	importCmd.Flags().String("in", "", "input raw events JSONL")
	importCmd.Flags().String("errors", "./data/import_errors.jsonl", "import errors JSONL")
	importCmd.Flags().Int("batch-size", 1000, "rows per insert batch")
	addLogFlags(importCmd.Flags())

	root.AddCommand(importCmd)

	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Create the event tables and indexes",
		RunE:  runSchema,
	}

	addDatabaseFlags(schemaCmd.Flags())
	addLogFlags(schemaCmd.Flags())

	root.AddCommand(schemaCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addDatabaseFlags(flags *pflag.FlagSet) {
	flags.String("pg-dsn", "", "Postgres DSN (overrides the discrete pg-* flags)")
	flags.String("pg-host", "", "Postgres host")
	flags.Int("pg-port", 5432, "Postgres port")
	flags.String("pg-database", "", "Postgres database")
	flags.String("pg-user", "", "Postgres user")
	flags.String("pg-password", "", "Postgres password")
	flags.String("pg-sslmode", "prefer", "Postgres sslmode")
	flags.Int("pg-max-conns", 4, "maximum pool connections")
}

func addLogFlags(flags *pflag.FlagSet) {
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-file", "", "also write JSON logs to this rotating file")
}
