package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseSteps(t *testing.T) {
	if got, err := parseSteps(nil); err != nil || got != 1 {
		t.Fatalf("parseSteps(nil)=%d,%v want 1", got, err)
	}
	if got, err := parseSteps([]string{" 3 "}); err != nil || got != 3 {
		t.Fatalf("parseSteps(3)=%d,%v want 3", got, err)
	}
	for _, raw := range []string{"0", "-2", "abc"} {
		if _, err := parseSteps([]string{raw}); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if got, err := parseVersion("-1"); err != nil || got != -1 {
		t.Fatalf("parseVersion(-1)=%d,%v", got, err)
	}
	if _, err := parseVersion("-5"); err == nil {
		t.Fatalf("expected error for -5")
	}
	if got, err := parseTarget("1771776034"); err != nil || got != 1771776034 {
		t.Fatalf("parseTarget=%d,%v", got, err)
	}
	if _, err := parseTarget("-1"); err == nil {
		t.Fatalf("expected error for negative target")
	}
}

func TestResolveMigrationsDir_PrefersFlag(t *testing.T) {
	dir := t.TempDir()
	got, err := resolveMigrationsDir(dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want, _ := filepath.Abs(dir)
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestResolveMigrationsDir_Missing(t *testing.T) {
	t.Setenv("MIGRATIONS_DIR", "")
	t.Chdir(t.TempDir())

	if _, err := resolveMigrationsDir(filepath.Join(os.TempDir(), "does-not-exist-roster")); err == nil {
		t.Fatalf("expected error when no directory exists")
	}
}

func TestRootCmd_RequiresDBURL(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"up", "--db-url", ""})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "DB_URL is required") {
		t.Fatalf("expected DB_URL error, got %v", err)
	}
}

func TestRootCmd_RejectsBadArgs(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"force"})

	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for force without version")
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("ROSTER_TEST_FLAG", "")
	if !envBool("ROSTER_TEST_FLAG", true) {
		t.Fatalf("expected fallback when unset")
	}
	t.Setenv("ROSTER_TEST_FLAG", "off")
	if envBool("ROSTER_TEST_FLAG", true) {
		t.Fatalf("expected off to parse as false")
	}
	t.Setenv("ROSTER_TEST_FLAG", "YES")
	if !envBool("ROSTER_TEST_FLAG", false) {
		t.Fatalf("expected YES to parse as true")
	}
}
