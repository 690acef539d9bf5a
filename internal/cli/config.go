package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/collection/internal/paths"
	"github.com/mesh-intelligence/collection/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "COLLECTION"

	cfgKeyValueType = "value_type"
	cfgKeyFormat    = "format"
)

// flagKeys maps config keys to the global flags that override them.
var flagKeys = map[string]string{
	cfgKeyValueType: "type",
	cfgKeyFormat:    "format",
}

// configFile holds the structure written to config.yaml by init.
type configFile struct {
	ValueType string `yaml:"value_type,omitempty"`
	Format    string `yaml:"format"`
}

// loadConfig resolves configuration with the precedence flag > environment
// (COLLECTION_VALUE_TYPE, COLLECTION_FORMAT) > config.yaml > defaults.
// A missing config.yaml is not an error.
func loadConfig(configDirFlag string, flags *pflag.FlagSet) (types.Config, error) {
	configDir, err := paths.ResolveConfigDir(configDirFlag)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve config dir: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyFormat, types.FormatJSON)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	for key, name := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return types.Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return types.Config{
		ValueType: v.GetString(cfgKeyValueType),
		Format:    v.GetString(cfgKeyFormat),
	}, nil
}

// writeConfigIfMissing creates config.yaml with the given values if the file
// does not exist. It reports whether a file was written.
func writeConfigIfMissing(path string, cfg configFile) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
