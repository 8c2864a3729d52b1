package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// RunConfig holds configuration for the valuation run.
type RunConfig struct {
	Database    DatabaseConfig
	Out         string
	PageSize    int
	MetricsAddr string
	S3          S3Config
	Logging     LoggingConfig
}

// LoadRun merges config file, environment variables, and flags into RunConfig.
func LoadRun(cfgFile string, flags *pflag.FlagSet) (RunConfig, error) {
	v, err := newViper(cfgFile, flags, mergeDefaults(databaseDefaults, map[string]interface{}{
		"out":       "./data/liquidations.csv",
		"page-size": 1000,
	}))
	if err != nil {
		return RunConfig{}, err
	}

	db, err := loadDatabase(v)
	if err != nil {
		return RunConfig{}, err
	}

	cfg := RunConfig{
		Database:    db,
		Out:         v.GetString("out"),
		PageSize:    v.GetInt("page-size"),
		MetricsAddr: v.GetString("metrics-addr"),
		S3:          loadS3(v),
		Logging:     loadLogging(v),
	}

	return cfg, nil
}

func (c RunConfig) Validate() error {
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if c.Out == "" {
		return fmt.Errorf("output path is required")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive")
	}
	if (c.S3.AccessKeyID == "") != (c.S3.SecretAccessKey == "") {
		return fmt.Errorf("s3 access key id and secret access key must be set together")
	}
	return nil
}
