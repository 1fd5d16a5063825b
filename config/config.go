// Package config is responsible for setting the program config from
// the config file and command-line arguments.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
	"github.com/spf13/viper"
)

// Version is set at build time.
var Version = "dev"

var (
	configDir      = "hoje"
	configFileName = "config.yml"
	dbFileName     = "hoje.db"
	logFileName    = "hoje.log"
	configFilePath string
	dbFilePath     string
	logFilePath    string
)

const (
	keyNotifyEnabled  = "notifications.enabled"
	keyCompletionCmd  = "completion.cmd"
	keyCompletionTone = "completion.sound"
	keyTwentyFourHour = "settings.24hr_clock"
	keyDarkTheme      = "display.dark_theme"
	keyTimerMinutes   = "timer.default_minutes"
)

const defaultTimerMinutes = 10

// Config represents the program configuration derived from the config
// file.
type Config struct {
	Notify         bool
	CompletionCmd  string
	CompletionTone string
	TwentyFourHour bool
	DarkTheme      bool
	TimerMinutes   int
	PathToConfig   string
}

// Dir returns the name of the directory that holds the program's
// config and data files.
func Dir() string {
	return configDir
}

// DBFilePath returns the path to the planner database.
func DBFilePath() string {
	return dbFilePath
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath() string {
	return configFilePath
}

// LogFilePath returns the path to the rotating log file.
func LogFilePath() string {
	return logFilePath
}

// InitializePaths sets up the config and data file paths, honoring
// HOJE_ENV so that tests do not touch the real planner database.
func InitializePaths() {
	hojeEnv := strings.TrimSpace(os.Getenv("HOJE_ENV"))
	if hojeEnv != "" {
		configFileName = fmt.Sprintf("config_%s.yml", hojeEnv)
		dbFileName = fmt.Sprintf("hoje_%s.db", hojeEnv)
		logFileName = fmt.Sprintf("hoje_%s.log", hojeEnv)
	}

	var err error

	relPath := filepath.Join(configDir, configFileName)

	configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dataDir, err := xdg.DataFile(configDir)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dbFilePath = filepath.Join(dataDir, dbFileName)

	logFilePath = filepath.Join(dataDir, logFileName)
}

// Init loads the program configuration, writing the default config
// file on first run.
func Init() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configFilePath)
	v.SetConfigType("yaml")

	v.SetDefault(keyNotifyEnabled, true)
	v.SetDefault(keyCompletionCmd, "")
	v.SetDefault(keyCompletionTone, "")
	v.SetDefault(keyTwentyFourHour, true)
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyTimerMinutes, defaultTimerMinutes)

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", errReadConfig, err)
		}

		if err := v.WriteConfig(); err != nil {
			return nil, fmt.Errorf("%w: %w", errWriteConfig, err)
		}
	}

	cfg := &Config{
		Notify:         v.GetBool(keyNotifyEnabled),
		CompletionCmd:  v.GetString(keyCompletionCmd),
		CompletionTone: v.GetString(keyCompletionTone),
		TwentyFourHour: v.GetBool(keyTwentyFourHour),
		DarkTheme:      v.GetBool(keyDarkTheme),
		TimerMinutes:   v.GetInt(keyTimerMinutes),
		PathToConfig:   configFilePath,
	}

	if cfg.TimerMinutes <= 0 {
		return nil, errInvalidTimerMinutes
	}

	return cfg, nil
}
