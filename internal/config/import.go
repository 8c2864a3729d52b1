package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// ImportConfig holds configuration for the import command.
type ImportConfig struct {
	Database  DatabaseConfig
	In        string
	Errors    string
	BatchSize int
	Logging   LoggingConfig
}

// LoadImport merges config file, environment variables, and flags into ImportConfig.
func LoadImport(cfgFile string, flags *pflag.FlagSet) (ImportConfig, error) {
	v, err := newViper(cfgFile, flags, mergeDefaults(databaseDefaults, map[string]interface{}{
		"errors":     "./data/import_errors.jsonl",
		"batch-size": 1000,
	}))
	if err != nil {
		return ImportConfig{}, err
	}

	db, err := loadDatabase(v)
	if err != nil {
		return ImportConfig{}, err
	}

	cfg := ImportConfig{
		Database:  db,
		In:        v.GetString("in"),
		Errors:    v.GetString("errors"),
		BatchSize: v.GetInt("batch-size"),
		Logging:   loadLogging(v),
	}

	return cfg, nil
}

func (c ImportConfig) Validate() error {
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if c.In == "" {
		return fmt.Errorf("input path is required")
	}
	if c.Errors == "" {
		return fmt.Errorf("errors path is required")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive")
	}
	return nil
}
