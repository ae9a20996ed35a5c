package config

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/ini.v1"

	"github.com/molssi-seamm/anistep/pkg/errors"
	"github.com/molssi-seamm/anistep/pkg/paths"
)

// iniLoadOptions mirrors the flat, case-insensitive-key handling the
// ini format gets elsewhere in the SEAMM ecosystem.
var iniLoadOptions = ini.LoadOptions{
	InsensitiveKeys: true,
}

// Resolver resolves executor configuration from the ini file, the
// packaged defaults and finally a PATH search.
type Resolver struct {
	// IniDir is the directory holding torchani.ini
	IniDir string

	// Version is injected into every resolved configuration
	Version string

	// Logger for resolution events
	Logger zerolog.Logger

	// LookPath overrides the PATH search, for tests. Nil means
	// exec.LookPath.
	LookPath func(file string) (string, error)
}

// Resolve returns the configuration for executorID.
//
// Precedence:
//  1. the section in <IniDir>/torchani.ini, verbatim;
//  2. the section in the packaged defaults;
//  3. a synthesized {installation: local, code: <path>} from finding
//     SEAMM_TorchANI.py on PATH.
//
// When the ini file does not exist at all, the merged defaults (plus
// any synthesized section) are written to it so the next run resolves
// from disk. The caller's version is always injected last, overriding
// any version key the section carried.
func (r *Resolver) Resolve(executorID string) (*Config, error) {
	iniPath := filepath.Join(r.IniDir, paths.IniFileName)

	fileExists := false
	var userFile *ini.File
	if _, err := os.Stat(iniPath); err == nil {
		fileExists = true
		userFile, err = ini.LoadSources(iniLoadOptions, iniPath)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "cannot parse %s", iniPath)
		}
	}

	// 1. The user's own section wins and is never rewritten.
	if userFile != nil {
		if section, err := userFile.GetSection(executorID); err == nil {
			r.Logger.Debug().
				Str("executor", executorID).
				Str("path", iniPath).
				Msg("Resolved executor configuration from ini file")
			return r.finish(executorID, SourceIniFile, section.KeysHash()), nil
		}
	}

	// 2. Fall back to the packaged defaults.
	defaults, err := ini.LoadSources(iniLoadOptions, defaultIni)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "packaged default ini is invalid")
	}

	var source Source
	var values map[string]string

	if section, err := defaults.GetSection(executorID); err == nil {
		source = SourceDefaults
		values = section.KeysHash()
		r.Logger.Debug().
			Str("executor", executorID).
			Msg("Resolved executor configuration from packaged defaults")
	} else {
		// 3. Getting desperate: look for the worker on PATH.
		lookPath := r.LookPath
		if lookPath == nil {
			lookPath = exec.LookPath
		}
		workerPath, err := lookPath(WorkerName)
		if err != nil {
			return nil, errors.Newf(errors.ErrConfigNotFound,
				"No section for '%s' in TorchANI ini file (%s), nor in the defaults, nor in the path!",
				executorID, iniPath)
		}

		source = SourcePath
		values = map[string]string{
			KeyInstallation: "local",
			KeyCode:         workerPath,
		}
		if sec, err := defaults.NewSection(executorID); err == nil {
			for k, v := range values {
				_, _ = sec.NewKey(k, v)
			}
		}
		r.Logger.Debug().
			Str("executor", executorID).
			Str("code", workerPath).
			Msg("Resolved executor configuration from PATH")
	}

	// Write the file out when the user has none yet, so later runs
	// resolve from disk.
	if !fileExists {
		if err := r.writeBack(defaults, iniPath); err != nil {
			return nil, err
		}
	}

	return r.finish(executorID, source, values), nil
}

// finish injects the version and assembles the Config
func (r *Resolver) finish(executorID string, source Source, values map[string]string) *Config {
	if values == nil {
		values = make(map[string]string)
	}
	values[KeyVersion] = r.Version

	return New(executorID, source, values)
}

// writeBack saves the merged configuration to iniPath, creating the
// parent directory as needed.
func (r *Resolver) writeBack(file *ini.File, iniPath string) error {
	if err := os.MkdirAll(filepath.Dir(iniPath), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "cannot create directory for %s", iniPath)
	}
	if err := file.SaveTo(iniPath); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "cannot write %s", iniPath)
	}

	r.Logger.Info().Msgf("Wrote the TorchANI configuration file to %s", iniPath)
	return nil
}
