// pkg/config/resolver_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem (t.TempDir)
// PURPOSE: Test executor configuration resolution precedence,
// PATH fallback, write-back and version injection

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molssi-seamm/anistep/pkg/config"
	"github.com/molssi-seamm/anistep/pkg/errors"
	"github.com/molssi-seamm/anistep/pkg/testutil"
)

func newResolver(iniDir string) *config.Resolver {
	return &config.Resolver{
		IniDir:  iniDir,
		Version: "1.1.0",
		Logger:  zerolog.Nop(),
	}
}

func TestResolveFromIniFile(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "torchani.ini", `[local]
installation = local
code = /opt/seamm/bin/SEAMM_TorchANI.py
extra = kept-verbatim
`)

	cfg, err := newResolver(dir).Resolve("local")
	require.NoError(t, err)

	assert.Equal(t, config.SourceIniFile, cfg.Source())
	assert.Equal(t, "local", cfg.Executor())
	assert.Equal(t, "local", cfg.Installation())
	assert.Equal(t, "/opt/seamm/bin/SEAMM_TorchANI.py", cfg.Code())

	extra, ok := cfg.Get("extra")
	require.True(t, ok, "section keys carry over verbatim")
	assert.Equal(t, "kept-verbatim", extra)
}

func TestResolveInjectsVersion(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "torchani.ini", `[local]
installation = local
code = SEAMM_TorchANI.py
version = stale
`)

	cfg, err := newResolver(dir).Resolve("local")
	require.NoError(t, err)

	assert.Equal(t, "1.1.0", cfg.Version(), "caller version overrides any present value")
}

func TestResolveFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := newResolver(dir).Resolve("docker")
	require.NoError(t, err)

	assert.Equal(t, config.SourceDefaults, cfg.Source())
	assert.Equal(t, "docker", cfg.Installation())

	container, ok := cfg.Get("container")
	require.True(t, ok)
	assert.Contains(t, container, "seamm-torchani")
}

func TestResolveDefaultsWhenFileLacksSection(t *testing.T) {
	dir := t.TempDir()
	iniPath := testutil.CreateFile(t, dir, "torchani.ini", `[other]
installation = local
code = other
`)
	before := testutil.ReadFile(t, iniPath)

	cfg, err := newResolver(dir).Resolve("local")
	require.NoError(t, err)

	assert.Equal(t, config.SourceDefaults, cfg.Source())

	// An existing file is never rewritten
	testutil.AssertFileContent(t, iniPath, before)
}

func TestResolveWritesBackWhenFileMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "seamm")

	cfg, err := newResolver(dir).Resolve("local")
	require.NoError(t, err)
	assert.Equal(t, config.SourceDefaults, cfg.Source())

	iniPath := filepath.Join(dir, "torchani.ini")
	testutil.AssertFileExists(t, iniPath)

	content := testutil.ReadFile(t, iniPath)
	assert.Contains(t, content, "[local]")
	assert.Contains(t, content, "[docker]")

	// A second resolve now comes from the written file
	cfg2, err := newResolver(dir).Resolve("local")
	require.NoError(t, err)
	assert.Equal(t, config.SourceIniFile, cfg2.Source())
	assert.Equal(t, cfg.Installation(), cfg2.Installation())
}

func TestResolvePathFallback(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "seamm")

	r := newResolver(dir)
	r.LookPath = func(file string) (string, error) {
		assert.Equal(t, config.WorkerName, file)
		return "/usr/local/bin/SEAMM_TorchANI.py", nil
	}

	cfg, err := r.Resolve("cluster")
	require.NoError(t, err)

	assert.Equal(t, config.SourcePath, cfg.Source())
	assert.Equal(t, "local", cfg.Installation())
	assert.Equal(t, "/usr/local/bin/SEAMM_TorchANI.py", cfg.Code())

	// The synthesized section lands in the written file too
	content := testutil.ReadFile(t, filepath.Join(dir, "torchani.ini"))
	assert.Contains(t, content, "[cluster]")
	assert.Contains(t, content, "/usr/local/bin/SEAMM_TorchANI.py")
}

func TestResolveExhaustionNamesEverything(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "seamm")

	r := newResolver(dir)
	r.LookPath = func(string) (string, error) {
		return "", os.ErrNotExist
	}

	_, err := r.Resolve("cluster")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigNotFound))

	want := "No section for 'cluster' in TorchANI ini file (" +
		filepath.Join(dir, "torchani.ini") + "), nor in the defaults, nor in the path!"
	assert.Contains(t, err.Error(), want)

	// Nothing is written on failure
	testutil.AssertNoFile(t, filepath.Join(dir, "torchani.ini"))
}

func TestResolveBadIniFile(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "torchani.ini", "[unclosed\ncode=")

	_, err := newResolver(dir).Resolve("local")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestResolveIsIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "seamm")

	cfg1, err := newResolver(dir).Resolve("local")
	require.NoError(t, err)

	iniPath := filepath.Join(dir, "torchani.ini")
	after := testutil.ReadFile(t, iniPath)

	cfg2, err := newResolver(dir).Resolve("local")
	require.NoError(t, err)

	testutil.AssertFileContent(t, iniPath, after)
	testutil.AssertMapEqual(t, cfg1.Map(), cfg2.Map())
}

func TestDefaultIniContent(t *testing.T) {
	content := config.DefaultIniContent()
	assert.Contains(t, content, "[local]")
	assert.Contains(t, content, "[docker]")
	assert.Contains(t, content, "code")
}
