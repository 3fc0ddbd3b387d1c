// End-to-end walk of the sample lifecycle through the CLI.
package integration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/benchforge/labtrail/pkg/types"
)

func TestInitCreatesConfigAndDatabase(t *testing.T) {
	env := NewTestEnv(t)

	result := env.MustRun("init")
	if !strings.Contains(result.Stdout, "initialized") {
		t.Errorf("unexpected init output: %q", result.Stdout)
	}

	if _, err := os.Stat(filepath.Join(env.ConfigDir, "config.yaml")); err != nil {
		t.Error("config.yaml not created:", err)
	}
	if _, err := os.Stat(filepath.Join(env.DataDir, "labtrail.db")); err != nil {
		t.Error("labtrail.db not created:", err)
	}
}

func TestSampleLifecycle(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRun("init")

	// Register two samples; identifiers are year-scoped and sequential.
	idPattern := regexp.MustCompile(fmt.Sprintf(`^S-%d-\d{4}$`, time.Now().Year()))

	first := ParseJSON[types.Sample](t, env.MustRun("register",
		"--client", "Acme Mining", "--project", "Pit expansion",
		"--matrix", "soil", "--priority", "high", "--json").Stdout)
	if !idPattern.MatchString(first.ID) {
		t.Fatalf("unexpected sample id %q", first.ID)
	}
	if !strings.HasSuffix(first.ID, "-0001") {
		t.Errorf("first sample id should end in 0001, got %q", first.ID)
	}
	if first.Status != "registered" {
		t.Errorf("new sample status = %q, want registered", first.Status)
	}

	second := ParseJSON[types.Sample](t, env.MustRun("register",
		"--client", "Acme Mining", "--json").Stdout)
	if !strings.HasSuffix(second.ID, "-0002") {
		t.Errorf("second sample id should end in 0002, got %q", second.ID)
	}

	// Attach a test and record a result.
	tr := ParseJSON[types.Test](t, env.MustRun("test", "add", first.ID,
		"--name", "ICP-OES", "--method", "EPA 6010D", "--json").Stdout)
	if tr.Status != "pending" {
		t.Errorf("new test status = %q, want pending", tr.Status)
	}

	res := ParseJSON[types.Result](t, env.MustRun("result", "add",
		fmt.Sprintf("%d", tr.ID),
		"--analyte", "Fe", "--value", "12.5", "--unit", "mg/kg",
		"--uncertainty", "0.8", "--json").Stdout)
	if res.Value != 12.5 {
		t.Errorf("result value = %v, want 12.5", res.Value)
	}
	if res.Uncertainty == nil || *res.Uncertainty != 0.8 {
		t.Errorf("result uncertainty = %v, want 0.8", res.Uncertainty)
	}

	// Move the sample along and log custody.
	env.MustRun("sample", "update", first.ID, "--status", "in_process")
	env.MustRun("coc", "add", first.ID, "--event", "analysis", "--notes", "ICP run started")

	coc := ParseJSON[[]types.CocEvent](t, env.MustRun("coc", "list", first.ID, "--json").Stdout)
	if len(coc) != 2 {
		t.Fatalf("custody chain length = %d, want 2 (registration + analysis)", len(coc))
	}
	if coc[0].Event != "registration" || coc[1].Event != "analysis" {
		t.Errorf("custody events out of order: %v, %v", coc[0].Event, coc[1].Event)
	}

	// The report gathers sample, tests, and results.
	rep := ParseJSON[types.SampleReport](t, env.MustRun("report", first.ID, "--json").Stdout)
	if rep.Sample.ID != first.ID {
		t.Errorf("report sample id = %q, want %q", rep.Sample.ID, first.ID)
	}
	if len(rep.Tests) != 1 || len(rep.Results) != 1 {
		t.Errorf("report has %d tests and %d results, want 1 and 1", len(rep.Tests), len(rep.Results))
	}

	// Every mutation so far is in the audit trail.
	audit := ParseJSON[[]types.AuditRecord](t, env.MustRun("audit", "--json").Stdout)
	if len(audit) < 5 {
		t.Errorf("audit trail has %d records, want at least 5", len(audit))
	}
}

func TestQCEventLifecycle(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRun("init")

	ev := ParseJSON[types.QCEvent](t, env.MustRun("qc", "add",
		"--type", "calibration", "--instrument", "Epsilon 4", "--json").Stdout)
	if ev.Status != "open" {
		t.Errorf("new QC event status = %q, want open", ev.Status)
	}

	id := fmt.Sprintf("%d", ev.ID)
	closed := ParseJSON[types.QCEvent](t, env.MustRun("qc", "close", id, "--json").Stdout)
	if closed.Status != "closed" {
		t.Errorf("closed QC event status = %q", closed.Status)
	}

	// Closing again is a no-op, not an error.
	again := env.Run("qc", "close", id, "--json")
	if again.ExitCode != 0 {
		t.Errorf("second close exited %d\nstderr: %s", again.ExitCode, again.Stderr)
	}
}

func TestExportAndBackup(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRun("init")
	env.MustRun("register", "--client", "Acme Mining")

	csv := env.MustRun("export", "samples").Stdout
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	if len(lines) != 2 {
		t.Fatalf("export produced %d lines, want header + 1 row", len(lines))
	}
	if !strings.Contains(lines[0], "client") {
		t.Errorf("CSV header missing client column: %q", lines[0])
	}

	backupPath := filepath.Join(t.TempDir(), "snapshot.db")
	env.MustRun("backup", backupPath)
	if _, err := os.Stat(backupPath); err != nil {
		t.Error("backup file not created:", err)
	}

	// A second backup to the same path must refuse to overwrite.
	if result := env.Run("backup", backupPath); result.ExitCode == 0 {
		t.Error("backup over an existing file should fail")
	}
}

func TestUserErrorsExitOne(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRun("init")

	tests := []struct {
		name string
		args []string
	}{
		{"invalid matrix", []string{"register", "--client", "Acme", "--matrix", "air"}},
		{"unknown sample", []string{"sample", "get", "S-2099-9999"}},
		{"unknown export table", []string{"export", "meta"}},
		{"invalid qc type", []string{"qc", "add", "--type", "inspection"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := env.Run(tt.args...)
			if result.ExitCode != 1 {
				t.Errorf("exit code = %d, want 1\nstderr: %s", result.ExitCode, result.Stderr)
			}
		})
	}
}

func TestActorFlagAttributesMutations(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRun("init")

	smp := ParseJSON[types.Sample](t, env.MustRun("--actor", "maria",
		"register", "--client", "Acme", "--json").Stdout)
	if smp.CreatedBy != "maria" {
		t.Errorf("created_by = %q, want maria", smp.CreatedBy)
	}

	audit := ParseJSON[[]types.AuditRecord](t, env.MustRun("audit", "maria", "--json").Stdout)
	if len(audit) != 1 {
		t.Fatalf("audit records for maria = %d, want 1", len(audit))
	}
	if audit[0].ByUser != "maria" {
		t.Errorf("audit by_user = %q, want maria", audit[0].ByUser)
	}
}
