package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func runFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("run", pflag.ContinueOnError)
	flags.String("pg-dsn", "", "")
	flags.String("pg-host", "", "")
	flags.Int("pg-port", 5432, "")
	flags.String("pg-database", "", "")
	flags.String("pg-user", "", "")
	flags.String("pg-password", "", "")
	flags.String("out", "./data/liquidations.csv", "")
	flags.Int("page-size", 1000, "")
	flags.String("metrics-addr", "", "")
	flags.String("s3-bucket", "", "")
	flags.String("log-level", "info", "")
	if err := flags.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return flags
}

func TestLoadRunDefaults(t *testing.T) {
	cfg, err := LoadRun("", runFlags(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Out != "./data/liquidations.csv" || cfg.PageSize != 1000 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Database.Port != 5432 || cfg.Database.SSLMode != "prefer" {
		t.Fatalf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.S3.Enabled() {
		t.Fatalf("s3 must be disabled by default")
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("log level %q", cfg.Logging.Level)
	}
}

func TestLoadRunPrecedence(t *testing.T) {
	t.Setenv("VALUER_OUT", "/env/out.csv")
	t.Setenv("VALUER_PAGE_SIZE", "250")
	t.Setenv("VALUER_METRICS_ADDR", ":9100")

	cfg, err := LoadRun("", runFlags(t, "--out", "/flag/out.csv"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Out != "/flag/out.csv" {
		t.Fatalf("flag must win over env, got %q", cfg.Out)
	}
	if cfg.PageSize != 250 || cfg.MetricsAddr != ":9100" {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestLoadDatabaseLegacyEnv(t *testing.T) {
	t.Setenv("PG_USERNAME", "indexer")
	t.Setenv("PG_PASSWORD", "s3cret")
	t.Setenv("PG_DATABASE", "starknet")
	t.Setenv("PG_PORT", "6543")
	t.Setenv("PG_HOSTNAME", "db.internal")

	cfg, err := LoadSchema("", runFlags(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := DatabaseConfig{
		Host:     "db.internal",
		Port:     6543,
		Name:     "starknet",
		User:     "indexer",
		Password: "s3cret",
		SSLMode:  "prefer",
		MaxConns: 4,
	}
	if cfg.Database != want {
		t.Fatalf("database mismatch:\n got %+v\nwant %+v", cfg.Database, want)
	}
	if err := cfg.Database.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoadDatabasePrefixedEnvWins(t *testing.T) {
	t.Setenv("PG_HOSTNAME", "legacy")
	t.Setenv("VALUER_PG_HOST", "prefixed")

	cfg, err := LoadSchema("", runFlags(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Host != "prefixed" {
		t.Fatalf("host %q", cfg.Database.Host)
	}
}

func TestLoadImportFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "valuer.yaml")
	content := []byte("in: /data/events.jsonl\nbatch-size: 50\npg-dsn: postgres://u:p@h:5432/db\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadImport(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.In != "/data/events.jsonl" || cfg.BatchSize != 50 {
		t.Fatalf("config file not applied: %+v", cfg)
	}
	if cfg.Errors != "./data/import_errors.jsonl" {
		t.Fatalf("errors default %q", cfg.Errors)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	if _, err := LoadRun(filepath.Join(t.TempDir(), "absent.yaml"), nil); err == nil {
		t.Fatalf("expected error for explicit missing config file")
	}
}

func TestValidate(t *testing.T) {
	db := DatabaseConfig{DSN: "postgres://localhost/db"}
	tests := []struct {
		name    string
		cfg     RunConfig
		wantErr bool
	}{
		{name: "ok", cfg: RunConfig{Database: db, Out: "out.csv", PageSize: 10}},
		{name: "no database", cfg: RunConfig{Out: "out.csv", PageSize: 10}, wantErr: true},
		{name: "parts without host", cfg: RunConfig{Database: DatabaseConfig{Name: "db", Port: 5432}, Out: "out.csv", PageSize: 10}, wantErr: true},
		{name: "zero page size", cfg: RunConfig{Database: db, Out: "out.csv"}, wantErr: true},
		{name: "no output", cfg: RunConfig{Database: db, PageSize: 10}, wantErr: true},
		{name: "half credentials", cfg: RunConfig{Database: db, Out: "out.csv", PageSize: 10, S3: S3Config{Bucket: "b", AccessKeyID: "id"}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("VALUER_DOTENV_PROBE=loaded\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("VALUER_DOTENV_PROBE", "")
	os.Unsetenv("VALUER_DOTENV_PROBE")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("VALUER_DOTENV_PROBE"); got != "loaded" {
		t.Fatalf("env not loaded, got %q", got)
	}
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing env file must be ignored: %v", err)
	}
}
