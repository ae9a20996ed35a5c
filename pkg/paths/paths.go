package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/molssi-seamm/anistep/pkg/errors"
)

// Environment variable names
const (
	// EnvSeammRoot is the primary environment variable for the SEAMM directory
	EnvSeammRoot = "SEAMM_ROOT"

	// EnvDataDir overrides the XDG data directory for anistep
	EnvDataDir = "ANISTEP_DATA_DIR"

	// EnvConfigDir overrides the XDG config directory for anistep
	EnvConfigDir = "ANISTEP_CONFIG_DIR"

	// EnvCacheDir overrides the XDG cache directory for anistep
	EnvCacheDir = "ANISTEP_CACHE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// DefaultSeammDir is the default directory name for SEAMM files under $HOME
	DefaultSeammDir = "SEAMM"

	// AnistepDirName is the directory name for anistep-specific files
	AnistepDirName = "anistep"

	// IniFileName is the name of the executor configuration file
	IniFileName = "torchani.ini"

	// LogFileName is the name of the log file
	LogFileName = "anistep.log"
)

// Paths provides centralized path management for anistep
type Paths interface {
	SeammRoot() string
	IniPath() string
	DataDir() string
	ConfigDir() string
	CacheDir() string
	StateDir() string
	LogFilePath() string
	NormalizePath(path string) (string, error)
}

type paths struct {
	// seammRoot is the directory holding the executor ini file
	seammRoot string

	// xdgData is the XDG data directory
	xdgData string

	// xdgConfig is the XDG config directory
	xdgConfig string

	// xdgCache is the XDG cache directory
	xdgCache string

	// xdgState is the XDG state directory
	xdgState string
}

// New creates a new Paths instance with the given SEAMM root.
// If seammRoot is empty, it is determined from SEAMM_ROOT or
// defaults to ~/SEAMM.
func New(seammRoot string) (Paths, error) {
	p := &paths{}

	if seammRoot == "" {
		root, err := findSeammRoot()
		if err != nil {
			return nil, err
		}
		p.seammRoot = root
	} else {
		p.seammRoot = expandHome(seammRoot)
	}

	// Ensure the SEAMM root is absolute
	absRoot, err := filepath.Abs(p.seammRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for SEAMM root")
	}
	p.seammRoot = absRoot

	p.setupXDGDirs()

	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	// Data directory
	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		p.xdgData = expandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, AnistepDirName)
	}

	// Config directory
	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AnistepDirName)
	}

	// Cache directory
	if cacheDir := os.Getenv(EnvCacheDir); cacheDir != "" {
		p.xdgCache = expandHome(cacheDir)
	} else {
		p.xdgCache = filepath.Join(xdg.CacheHome, AnistepDirName)
	}

	// State directory - XDG doesn't provide StateHome, so we check manually
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, AnistepDirName)
	} else {
		homeDir, _ := os.UserHomeDir()
		p.xdgState = filepath.Join(homeDir, ".local", "state", AnistepDirName)
	}
}

// findSeammRoot determines the SEAMM root using the following priority:
// 1. SEAMM_ROOT environment variable (if set)
// 2. ~/SEAMM (default)
func findSeammRoot() (string, error) {
	if root := os.Getenv(EnvSeammRoot); root != "" {
		return expandHome(root), nil
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, DefaultSeammDir), nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// SeammRoot returns the directory holding SEAMM configuration files
func (p *paths) SeammRoot() string {
	return p.seammRoot
}

// IniPath returns the path to the executor ini file
func (p *paths) IniPath() string {
	return filepath.Join(p.seammRoot, IniFileName)
}

// DataDir returns the XDG data directory for anistep
func (p *paths) DataDir() string {
	return p.xdgData
}

// ConfigDir returns the XDG config directory for anistep
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// CacheDir returns the XDG cache directory for anistep
func (p *paths) CacheDir() string {
	return p.xdgCache
}

// StateDir returns the XDG state directory for anistep
func (p *paths) StateDir() string {
	return p.xdgState
}

// LogFilePath returns the path to the anistep log file
// Respects XDG_STATE_HOME if set
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func (p *paths) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	// Expand home directory
	expanded := expandHome(path)

	// Make absolute
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path")
	}

	// Clean the path
	return filepath.Clean(abs), nil
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Try the HOME environment variable as a fallback
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get home directory")
	}
	return homeDir, nil
}
