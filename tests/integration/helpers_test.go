// Package integration provides shared helpers for CLI integration tests.
package integration

import (
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// labtrailBin is the path of the binary built by TestMain.
var labtrailBin string

// buildErr records a TestMain build failure so tests can report it.
var buildErr error

// TestMain builds the labtrail binary once before running tests.
func TestMain(m *testing.M) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		buildErr = err
		os.Exit(m.Run())
	}

	tmpDir, err := os.MkdirTemp("", "labtrail-test-*")
	if err != nil {
		buildErr = err
		os.Exit(m.Run())
	}
	defer os.RemoveAll(tmpDir)

	labtrailBin = filepath.Join(tmpDir, "labtrail")
	cmd := exec.Command("go", "build", "-o", labtrailBin, "./cmd/labtrail")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		buildErr = errors.New("build labtrail: " + err.Error() + "\n" + string(output))
	}

	os.Exit(m.Run())
}

// findProjectRoot walks up from the working directory until it finds go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found above working directory")
		}
		dir = parent
	}
}

// TestEnv is an isolated config and data directory pair for one test.
type TestEnv struct {
	t         *testing.T
	ConfigDir string
	DataDir   string
}

// NewTestEnv creates per-test directories and fails fast if the binary did
// not build.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	if buildErr != nil {
		t.Fatal(buildErr)
	}
	root := t.TempDir()
	return &TestEnv{
		t:         t,
		ConfigDir: filepath.Join(root, "config"),
		DataDir:   filepath.Join(root, "data"),
	}
}

// RunResult holds the outcome of one CLI invocation.
type RunResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run invokes the labtrail binary with the test env's directories.
func (e *TestEnv) Run(args ...string) RunResult {
	e.t.Helper()

	full := append([]string{
		"--config-dir", e.ConfigDir,
		"--data-dir", e.DataDir,
	}, args...)
	cmd := exec.Command(labtrailBin, full...)
	cmd.Env = os.Environ()

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	code := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		} else {
			e.t.Fatalf("run labtrail %v: %v", args, err)
		}
	}

	return RunResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: code,
	}
}

// MustRun invokes the binary and fails the test on a nonzero exit.
func (e *TestEnv) MustRun(args ...string) RunResult {
	e.t.Helper()
	result := e.Run(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("labtrail %v exited %d\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON unmarshals CLI JSON output into T.
func ParseJSON[T any](t *testing.T, data string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		t.Fatalf("parse JSON output: %v\n%s", err, data)
	}
	return v
}
