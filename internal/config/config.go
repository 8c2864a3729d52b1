package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every flag name when read from the environment,
// e.g. --pg-host becomes VALUER_PG_HOST.
const EnvPrefix = "VALUER"

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level string
	File  string
}

// DatabaseConfig locates the event database. DSN wins over the discrete
// parts when both are given.
type DatabaseConfig struct {
	DSN      string
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int
}

// S3Config controls publishing of the output file. An empty bucket disables
// the upload.
type S3Config struct {
	Bucket          string
	Key             string
	Region          string
	Endpoint        string
	PathStyle       bool
	AccessKeyID     string
	SecretAccessKey string
}

// Enabled reports whether an upload was requested.
func (c S3Config) Enabled() bool {
	return strings.TrimSpace(c.Bucket) != ""
}

// LoadDotEnv loads environment variables from path, or ./.env when path is
// empty. A missing file is not an error. Variables already set win.
func LoadDotEnv(path string) error {
	var err error
	if path == "" {
		err = godotenv.Load()
	} else {
		err = godotenv.Load(path)
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

func newViper(cfgFile string, flags *pflag.FlagSet, defaults map[string]interface{}) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log-level", "info")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}

func loadLogging(v *viper.Viper) LoggingConfig {
	return LoggingConfig{
		Level: v.GetString("log-level"),
		File:  v.GetString("log-file"),
	}
}

var databaseDefaults = map[string]interface{}{
	"pg-port":      5432,
	"pg-sslmode":   "prefer",
	"pg-max-conns": 4,
}

// Unprefixed names used by existing deployments of the indexer database.
var legacyDatabaseEnv = map[string]string{
	"pg-user":     "PG_USERNAME",
	"pg-password": "PG_PASSWORD",
	"pg-database": "PG_DATABASE",
	"pg-port":     "PG_PORT",
	"pg-host":     "PG_HOSTNAME",
}

func loadDatabase(v *viper.Viper) (DatabaseConfig, error) {
	for key, legacy := range legacyDatabaseEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return DatabaseConfig{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	return DatabaseConfig{
		DSN:      v.GetString("pg-dsn"),
		Host:     v.GetString("pg-host"),
		Port:     v.GetInt("pg-port"),
		Name:     v.GetString("pg-database"),
		User:     v.GetString("pg-user"),
		Password: v.GetString("pg-password"),
		SSLMode:  v.GetString("pg-sslmode"),
		MaxConns: v.GetInt("pg-max-conns"),
	}, nil
}

// Validate checks that a connection can be attempted.
func (c DatabaseConfig) Validate() error {
	if c.DSN != "" {
		return nil
	}
	if c.Host == "" || c.Name == "" {
		return fmt.Errorf("pg dsn or pg host and database are required")
	}
	if c.Port <= 0 {
		return fmt.Errorf("pg port must be positive")
	}
	return nil
}

func loadS3(v *viper.Viper) S3Config {
	return S3Config{
		Bucket:          v.GetString("s3-bucket"),
		Key:             v.GetString("s3-key"),
		Region:          v.GetString("s3-region"),
		Endpoint:        v.GetString("s3-endpoint"),
		PathStyle:       v.GetBool("s3-path-style"),
		AccessKeyID:     v.GetString("s3-access-key-id"),
		SecretAccessKey: v.GetString("s3-secret-access-key"),
	}
}

func mergeDefaults(sets ...map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, set := range sets {
		for k, v := range set {
			out[k] = v
		}
	}
	return out
}
