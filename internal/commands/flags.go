package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pranavsinghpatil/meshmemory/internal/api"
	"github.com/pranavsinghpatil/meshmemory/internal/core/config"
	"github.com/pranavsinghpatil/meshmemory/internal/state"
)

type Flags struct {
	LogLevel     string
	LogFile      string
	ConfigPath   string
	DataDir      string
	ProfilerPort int

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Store is the hydratable persisted-state store
	Store *state.Store

	// Client talks to the transcript API
	Client *api.Client
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "meshmemory", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "meshmemory")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/meshmemory/meshmemory.log
// On Linux: $XDG_STATE_HOME/meshmemory/meshmemory.log (defaults to ~/.local/state/...)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "meshmemory", "meshmemory.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "meshmemory", "meshmemory.log")
	}

	return filepath.Join(home, ".local", "state", "meshmemory", "meshmemory.log")
}
