// cmd/anistep/root_test.go
// TEST TYPE: CLI Integration Test
// DEPENDENCIES: Real filesystem (t.TempDir), /bin/sh for the fake worker
// PURPOSE: Test command wiring and the run, config and init commands
// end to end

package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/molssi-seamm/anistep/internal/version"
	"github.com/molssi-seamm/anistep/pkg/paths"
	"github.com/molssi-seamm/anistep/pkg/run"
	"github.com/molssi-seamm/anistep/pkg/testutil"
)

const testStepTOML = `title = "Water single point"
executor = "local"
molecule = "water.xyz"

[[steps]]
type = "energy"
model = "ANI-2x"
submodel = "all"
`

const testWaterXYZ = `3
water
O 0.0 0.0 0.1173
H 0.0 0.7572 -0.4692
H 0.0 -0.7572 -0.4692
`

// fakeWorker stands in for SEAMM_TorchANI.py: it writes a one-step
// success response and the usual benign stderr noise.
const fakeWorker = `#!/bin/sh
{
printf '!MolSSI cms_schema 1\n'
printf '{"workflow": [{"success": true, "energy": -76.384}]}'
} > output.json
echo "TorchANI run complete"
echo "cuaev not installed" >&2
`

// setupEnv points SEAMM and state directories into the test's tempdir.
func setupEnv(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv(paths.EnvSeammRoot, filepath.Join(tmp, "seamm"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	return tmp
}

// execute runs a fresh root command and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd := NewRootCmd()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// writeRunInputs writes the step file and molecule, returning the
// step file path.
func writeRunInputs(t *testing.T, dir string) string {
	t.Helper()
	testutil.CreateFile(t, dir, "water.xyz", testWaterXYZ)
	return testutil.CreateFile(t, dir, "anistep.toml", testStepTOML)
}

func TestNewRootCmdStructure(t *testing.T) {
	rootCmd := NewRootCmd()

	testutil.AssertEqual(t, "anistep", rootCmd.Name())
	testutil.AssertEqual(t, version.Version, rootCmd.Version)

	expected := []string{"run", "config", "init", "topics", "version", "completion", "man", "help"}
	for _, name := range expected {
		found := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		testutil.AssertTrue(t, found, "command %s not registered", name)
	}
}

func TestRootWithoutSubcommand(t *testing.T) {
	setupEnv(t)

	out, err := execute(t)
	testutil.AssertError(t, err)
	testutil.AssertContains(t, err.Error(), "no command specified")
	testutil.AssertContains(t, out, "Usage:")
}

func TestVersionCmd(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "version")
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, out, "anistep version")
	testutil.AssertContains(t, out, "commit:")
}

func TestInitCmd(t *testing.T) {
	setupEnv(t)
	dir := filepath.Join(t.TempDir(), "water")

	out, err := execute(t, "init", dir)
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, out, "Created")
	testutil.AssertFileExists(t, filepath.Join(dir, "anistep.toml"))

	// A second init must not clobber the file
	_, err = execute(t, "init", dir)
	testutil.AssertError(t, err)
	testutil.AssertContains(t, err.Error(), "already exists")
}

func TestConfigCmd(t *testing.T) {
	tmp := setupEnv(t)

	out, err := execute(t, "config", "local")
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, out, "Executor 'local'")
	testutil.AssertContains(t, out, "packaged defaults")
	testutil.AssertContains(t, out, "code = SEAMM_TorchANI.py")
	testutil.AssertContains(t, out, "installation = conda")

	// First resolution writes the ini for the user to edit
	testutil.AssertFileExists(t, filepath.Join(tmp, "seamm", "torchani.ini"))
}

func TestConfigCmdUnknownExecutor(t *testing.T) {
	setupEnv(t)
	t.Setenv("PATH", t.TempDir()) // hide any real worker

	_, err := execute(t, "config", "nonexistent")
	testutil.AssertError(t, err)
	testutil.AssertContains(t, err.Error(), "No section for 'nonexistent'")
}

func TestRunCmdMissingStepFile(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "run", "missing.toml")
	testutil.AssertError(t, err)
	testutil.AssertContains(t, err.Error(), "does not exist")
}

func TestRunCmdDryRun(t *testing.T) {
	tmp := setupEnv(t)
	stepPath := writeRunInputs(t, tmp)
	workDir := filepath.Join(tmp, "work")

	out, err := execute(t, "run", stepPath,
		"--directory", workDir, "--format", "text", "--dry-run")
	testutil.AssertNoError(t, err)

	testutil.AssertContains(t, out, "Water single point")
	testutil.AssertContains(t, out, "Run completed")
	testutil.AssertContains(t, out, "dry run")

	testutil.AssertFileExists(t, filepath.Join(workDir, "input.json"))
	testutil.AssertFileExists(t, filepath.Join(workDir, "run.yaml"))
	testutil.AssertNoFile(t, filepath.Join(workDir, "output.json"))
}

func TestRunCmdWorker(t *testing.T) {
	tmp := setupEnv(t)
	stepPath := writeRunInputs(t, tmp)
	workDir := filepath.Join(tmp, "work")

	// Point the local executor at the fake worker
	worker := testutil.CreateScript(t, tmp, "fake-worker.sh", fakeWorker)
	seammDir := testutil.CreateDir(t, tmp, "seamm")
	testutil.CreateFile(t, seammDir, "torchani.ini",
		"[local]\ninstallation = local\ncode = "+worker+"\n")

	out, err := execute(t, "run", stepPath,
		"--directory", workDir, "--format", "text")
	testutil.AssertNoError(t, err)

	testutil.AssertContains(t, out, "Water single point")
	testutil.AssertContains(t, out, "1 Energy")
	testutil.AssertContains(t, out, "Run completed")

	testutil.AssertFileExists(t, filepath.Join(workDir, "input.json"))
	testutil.AssertFileExists(t, filepath.Join(workDir, "output.json"))
	testutil.AssertFileExists(t, filepath.Join(workDir, "output.txt"))
	testutil.AssertFileExists(t, filepath.Join(workDir, "stderr.txt"))

	// The run record reflects the successful step
	data := testutil.ReadFile(t, filepath.Join(workDir, "run.yaml"))
	var record run.Result
	if err := yaml.Unmarshal([]byte(data), &record); err != nil {
		t.Fatal(err)
	}
	testutil.AssertTrue(t, record.Success)
	testutil.AssertEqual(t, 1, len(record.Steps))
	testutil.AssertEqual(t, run.StatusOK, record.Steps[0].Status)
}

func TestRunCmdWorkerFailure(t *testing.T) {
	tmp := setupEnv(t)
	stepPath := writeRunInputs(t, tmp)
	workDir := filepath.Join(tmp, "work")

	worker := testutil.CreateScript(t, tmp, "fake-worker.sh",
		"#!/bin/sh\nprintf '!MolSSI cms_schema 1\\n{\"workflow\": [{\"success\": false, \"error\": \"model exploded\"}]}' > output.json\n")
	seammDir := testutil.CreateDir(t, tmp, "seamm")
	testutil.CreateFile(t, seammDir, "torchani.ini",
		"[local]\ninstallation = local\ncode = "+worker+"\n")

	out, err := execute(t, "run", stepPath,
		"--directory", workDir, "--format", "text")
	testutil.AssertError(t, err)
	testutil.AssertContains(t, err.Error(), "model exploded")

	// The failed run still renders a report and writes its record
	testutil.AssertContains(t, out, "Run failed")
	testutil.AssertContains(t, out, "model exploded")
	testutil.AssertFileExists(t, filepath.Join(workDir, "run.yaml"))
}

func TestRunCmdJSONFormat(t *testing.T) {
	tmp := setupEnv(t)
	stepPath := writeRunInputs(t, tmp)
	workDir := filepath.Join(tmp, "work")

	out, err := execute(t, "run", stepPath,
		"--directory", workDir, "--format", "json", "--dry-run")
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, out, `"executor": "local"`)
	testutil.AssertContains(t, out, `"success": true`)
}

func TestRunCmdBadFormat(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "run", "anistep.toml", "--format", "xml")
	testutil.AssertError(t, err)
	testutil.AssertContains(t, err.Error(), "unknown format")
}

func TestTopicsCmd(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "topics")
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, out, "Available help topics:")
	testutil.AssertContains(t, out, "step-files")
	testutil.AssertContains(t, out, "executors")
	testutil.AssertContains(t, out, "results")
}

func TestHelpTopic(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "help", "executors")
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, out, "torchani.ini")
}

func TestCompletionCmd(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "completion", "bash")
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, out, "anistep")
}
