// Package config reads the tool's settings from SCP_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultSource is the workbook read when none is named.
const DefaultSource = "HOJA DE PRODUCCION ADMON 31-03 AL 23-05 NELSON RANGEL.xlsx"

// Config holds all settings outside the LLM subsystem.
type Config struct {
	DBPath string
	Import ImportConfig
	Replay ReplayConfig
}

// ImportConfig holds extraction settings.
type ImportConfig struct {
	Source    string
	Team      string
	OutputDir string
}

// ReplayConfig holds the legacy system connection and browser settings.
type ReplayConfig struct {
	URL            string
	Username       string
	Password       string
	FormSpecPath   string
	Headless       bool
	BrowserBin     string
	ControlURL     string
	ControlTimeout time.Duration
	Settle         time.Duration
}

// Load reads configuration from environment variables with defaults.
func Load() (Config, error) {
	dbPath, err := expandHome(os.Getenv("SCP_DB"))
	if err != nil {
		return Config{}, err
	}
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, err
		}
		dbPath = filepath.Join(home, ".scp", "scp.db")
	}

	return Config{
		DBPath: dbPath,
		Import: ImportConfig{
			Source:    getenv("SCP_SOURCE", DefaultSource),
			Team:      getenv("SCP_TEAM", "30"),
			OutputDir: getenv("SCP_OUTPUT_DIR", "output"),
		},
		Replay: ReplayConfig{
			URL:            os.Getenv("SCP_URL"),
			Username:       os.Getenv("SCP_USERNAME"),
			Password:       os.Getenv("SCP_PASSWORD"),
			FormSpecPath:   os.Getenv("SCP_FORM_SPEC"),
			Headless:       getenvBool("SCP_HEADLESS", false),
			BrowserBin:     os.Getenv("SCP_BROWSER_BIN"),
			ControlURL:     os.Getenv("SCP_BROWSER_URL"),
			ControlTimeout: getenvMillis("SCP_CONTROL_TIMEOUT_MS", 10*time.Second),
			Settle:         getenvMillis("SCP_SETTLE_MS", 500*time.Millisecond),
		},
	}, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// getenvMillis reads a non-negative millisecond count.
func getenvMillis(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return time.Duration(n) * time.Millisecond
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
