// Package config resolves which worker program to run and how. The
// executor ini file holds one section per executor id; resolution
// falls back from the user's file to packaged defaults to a PATH
// search, writing the merged configuration back when the user has no
// file yet.
package config

import "sort"

// WorkerName is the worker executable searched for on PATH as a last
// resort.
const WorkerName = "SEAMM_TorchANI.py"

// Keys every resolved section is expected to carry
const (
	KeyCode         = "code"
	KeyInstallation = "installation"
	KeyVersion      = "version"

	// KeyCondaEnvironment names the conda environment when the
	// installation kind is "conda"
	KeyCondaEnvironment = "conda-environment"
)

// Source says where a configuration was resolved from.
type Source int

const (
	// SourceIniFile means the user's ini file had the section
	SourceIniFile Source = iota

	// SourceDefaults means the packaged defaults had the section
	SourceDefaults

	// SourcePath means the section was synthesized from a PATH search
	SourcePath
)

// String returns a human-readable name for the source
func (s Source) String() string {
	switch s {
	case SourceIniFile:
		return "ini file"
	case SourceDefaults:
		return "packaged defaults"
	case SourcePath:
		return "PATH search"
	default:
		return "unknown"
	}
}

// Config is one resolved executor section: flat string keys plus the
// injected version.
type Config struct {
	executor string
	source   Source
	values   map[string]string
}

// New assembles a Config directly. Resolution normally goes through
// Resolver; New serves tests and embedders.
func New(executor string, source Source, values map[string]string) *Config {
	if values == nil {
		values = make(map[string]string)
	}
	return &Config{
		executor: executor,
		source:   source,
		values:   values,
	}
}

// Executor returns the executor id the section was resolved for
func (c *Config) Executor() string {
	return c.executor
}

// Source returns where the section was resolved from
func (c *Config) Source() Source {
	return c.source
}

// Get returns the value for key
func (c *Config) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Code returns the worker invocation, substituted for {code} in the
// command template
func (c *Config) Code() string {
	return c.values[KeyCode]
}

// Installation returns the installation kind, e.g. "local" or "conda"
func (c *Config) Installation() string {
	return c.values[KeyInstallation]
}

// Version returns the injected caller version
func (c *Config) Version() string {
	return c.values[KeyVersion]
}

// Keys returns the configuration keys in sorted order
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a copy of the key/value pairs
func (c *Config) Map() map[string]string {
	out := make(map[string]string, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}
