package config

import "github.com/spf13/pflag"

// SchemaConfig holds configuration for the schema command.
type SchemaConfig struct {
	Database DatabaseConfig
	Logging  LoggingConfig
}

// LoadSchema merges config file, environment variables, and flags into SchemaConfig.
func LoadSchema(cfgFile string, flags *pflag.FlagSet) (SchemaConfig, error) {
	v, err := newViper(cfgFile, flags, databaseDefaults)
	if err != nil {
		return SchemaConfig{}, err
	}

	db, err := loadDatabase(v)
	if err != nil {
		return SchemaConfig{}, err
	}

	return SchemaConfig{Database: db, Logging: loadLogging(v)}, nil
}
