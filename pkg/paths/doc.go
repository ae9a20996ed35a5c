// Package paths provides centralized path handling for anistep.
//
// This package implements the XDG Base Directory specification and provides
// a consistent API for all path operations throughout the anistep codebase.
// It handles:
//
//   - SEAMM root directory discovery and configuration
//   - Executor ini file location
//   - XDG directory structure (data, config, cache, state)
//   - Path normalization and expansion
//
// # Environment Variables
//
// The package respects the following environment variables:
//
//   - SEAMM_ROOT: Location of the SEAMM directory (default: ~/SEAMM)
//   - ANISTEP_DATA_DIR: Override XDG data directory (default: $XDG_DATA_HOME/anistep)
//   - ANISTEP_CONFIG_DIR: Override XDG config directory (default: $XDG_CONFIG_HOME/anistep)
//   - ANISTEP_CACHE_DIR: Override XDG cache directory (default: $XDG_CACHE_HOME/anistep)
//
// # Usage
//
//	import "github.com/molssi-seamm/anistep/pkg/paths"
//
//	// Create a new Paths instance
//	p, err := paths.New("")  // Auto-detect SEAMM root
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Get various paths
//	root := p.SeammRoot()  // /home/user/SEAMM
//	ini := p.IniPath()     // /home/user/SEAMM/torchani.ini
package paths
