package settings

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding loaded settings, for example
// LOCOMOTION_MOVEMENT_WALK_SPEED.
const EnvPrefix = "LOCOMOTION"

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.New("settings file already exists")
	}
	data, err := toml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed encoding default settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed creating settings file: %w", err)
	}
	return nil
}

// Load reads settings from path on top of the defaults, applies LOCOMOTION_* environment overrides
// and validates the result. The file format follows the extension (toml, json or yaml). An empty
// path loads the defaults and environment only.
func Load(path string) (Locomotion, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults, err := toml.Marshal(Default())
	if err != nil {
		return Locomotion{}, fmt.Errorf("failed encoding default settings: %w", err)
	}
	v.SetConfigType("toml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return Locomotion{}, fmt.Errorf("failed reading default settings: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return Locomotion{}, errors.New("settings file doesn't exist")
		}
		if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
			v.SetConfigType(ext)
		}
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return Locomotion{}, fmt.Errorf("error reading config: %w", err)
		}
	}

	var l Locomotion
	if err := v.Unmarshal(&l); err != nil {
		return Locomotion{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := l.Validate(); err != nil {
		return Locomotion{}, err
	}
	return l, nil
}
