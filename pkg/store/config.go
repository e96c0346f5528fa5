package store

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config locates the user directory on disk.
type Config interface {
	BasePath() string
}

// Settings is the resolved application configuration.
type Settings struct {
	Path      string        `json:"path"`
	Mode      string        `json:"mode"`
	Login     string        `json:"login"`
	LoadDelay time.Duration `json:"loadDelay"`
	LogFile   string        `json:"logFile"`
	LogLevel  string        `json:"logLevel"`
	Source    string        `json:"source,omitempty"`
}

// BasePath implements Config.
func (s *Settings) BasePath() string {
	return s.Path
}

// ConfigPathEnv overrides the directory searched for .navigation.yaml.
const ConfigPathEnv = "NAVIGATION_CONFIG_PATH"

// LoadConfig reads .navigation.yaml (from $NAVIGATION_CONFIG_PATH or the
// working directory), NAVIGATION_* environment variables and an optional .env
// file, in increasing order of precedence for the environment.
func LoadConfig() (*Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("store: load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("path", "~/.navigation.db")
	v.SetDefault("mode", "debug")
	v.SetDefault("login", "")
	v.SetDefault("load_delay", "500ms")
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "info")
	v.SetConfigName(".navigation") // .yaml is implicit
	v.SetEnvPrefix("NAVIGATION")
	v.AutomaticEnv()

	if override := os.Getenv(ConfigPathEnv); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(strings.TrimSpace(v.GetString("path")))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	logFile, err := homedir.Expand(strings.TrimSpace(v.GetString("log_file")))
	if err != nil {
		return nil, fmt.Errorf("store: expand log_file: %w", err)
	}

	return &Settings{
		Path:      path,
		Mode:      v.GetString("mode"),
		Login:     v.GetString("login"),
		LoadDelay: v.GetDuration("load_delay"),
		LogFile:   logFile,
		LogLevel:  v.GetString("log_level"),
		Source:    v.ConfigFileUsed(),
	}, nil
}
