package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".classwrap"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for classwrap settings.
const envPrefix = "CLASSWRAP"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// LoadConfig loads configuration from defaults, the config file and
// CLASSWRAP_* environment variables, in increasing priority.
// If configPath is empty the file is searched in CWD and $HOME; a missing
// file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("rewrite.helper", DefaultHelper)
	viperCfg.SetDefault("rewrite.quote", DefaultQuote)
	viperCfg.SetDefault("rewrite.import_name", DefaultImportName)
	viperCfg.SetDefault("rewrite.import_source", DefaultImportSource)
	viperCfg.SetDefault("rewrite.import_quote", DefaultImportQuote)
	viperCfg.SetDefault("rewrite.check_caret", DefaultCheckCaret)

	viperCfg.SetDefault("languages", DefaultLanguages)

	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)

	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("telemetry.otlp_insecure", DefaultOTLPInsecure)
	viperCfg.SetDefault("telemetry.environment", "")
	viperCfg.SetDefault("telemetry.diagnostics_addr", "")
	viperCfg.SetDefault("telemetry.sample_ratio", DefaultSampleRatio)
}
