package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	SaveDirectory string
	Confirmations bool
	Keymap        Keymap
	DoubleClick   time.Duration
	LogLevel      string
	LogFile       string
}

func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".polysketchrc")
}

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("save_directory", "")
	v.SetDefault("confirmations", true)
	v.SetDefault("undo_keys", "u,ctrl+z")
	v.SetDefault("redo_keys", "U,ctrl+y")
	v.SetDefault("primary_keys", "space,a")
	v.SetDefault("finish_keys", "enter")
	v.SetDefault("clear_keys", "c")
	v.SetDefault("double_click_ms", defaultDoubleClickMS)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
}

// loadConfig reads the rc file at path (dotenv style KEY=value lines, # comments) on
// top of the defaults. A missing file is not an error.
func loadConfig(v *viper.Viper, path string) (*Config, error) {
	setConfigDefaults(v)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	config := &Config{
		SaveDirectory: expandPath(strings.TrimSpace(v.GetString("save_directory"))),
		Confirmations: v.GetBool("confirmations"),
		DoubleClick:   time.Duration(v.GetInt("double_click_ms")) * time.Millisecond,
		LogLevel:      strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		LogFile:       expandPath(strings.TrimSpace(v.GetString("log_file"))),
	}
	config.Keymap = Keymap{
		Undo:      parseKeyList(v.GetString("undo_keys")),
		Redo:      parseKeyList(v.GetString("redo_keys")),
		Primary:   parseKeyList(v.GetString("primary_keys")),
		Secondary: parseKeyList(v.GetString("finish_keys")),
		Clear:     parseKeyList(v.GetString("clear_keys")),
	}
	if config.DoubleClick <= 0 {
		config.DoubleClick = defaultDoubleClickMS * time.Millisecond
	}
	return config, nil
}

func defaultConfig() *Config {
	config, err := loadConfig(viper.New(), "")
	if err != nil {
		// Defaults alone cannot fail to load.
		panic(err)
	}
	return config
}

func expandPath(value string) string {
	if value == "" {
		return value
	}
	if strings.HasPrefix(value, "~") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
		}
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	if err := os.MkdirAll(c.SaveDirectory, 0755); err != nil {
		logger.Error("cannot create save directory", "dir", c.SaveDirectory, "err", err)
	}
	return filepath.Join(c.SaveDirectory, filename)
}
