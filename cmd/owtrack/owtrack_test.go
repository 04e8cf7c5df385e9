package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"overwatch-tracker/internal/wizard"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("owtrack %v: %v", args, err)
	}
	return out.String()
}

func seed(t *testing.T, dbPath string) {
	t.Helper()
	a, err := (&options{dbPath: dbPath, owner: "u1", logLevel: "error"}).open()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer a.Close()

	for _, f := range []wizard.Fields{
		{Role: "Support", Heroes: []string{"Ana"}, Map: "Busan", RankTier: "Gold", Modifier: "3", Result: "Win"},
		{Role: "Support", Heroes: []string{"Ana", "Lucio"}, Map: "Dorado", RankTier: "Gold", Modifier: "2", Result: "Loss"},
	} {
		if _, err := a.matches.RecordDirect(context.Background(), "u1", f); err != nil {
			t.Fatalf("RecordDirect: %v", err)
		}
	}
}

func TestCLI(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "matches.db")
	seed(t, dbPath)

	out := run(t, "list", "--db", dbPath, "--owner", "u1")
	if !strings.Contains(out, "Ana, Lucio") || !strings.Contains(out, "2 matches, 50.0% win rate") {
		t.Errorf("list output:\n%s", out)
	}

	out = run(t, "top", "--db", dbPath, "--owner", "u1")
	if !strings.Contains(out, "Ana") || !strings.Contains(out, "66.7%") {
		t.Errorf("top output:\n%s", out)
	}

	csvPath := filepath.Join(t.TempDir(), "out.csv")
	out = run(t, "export", "--db", dbPath, "--owner", "u1", "-o", csvPath)
	if !strings.Contains(out, "Wrote 2 matches") {
		t.Errorf("export output:\n%s", out)
	}
	body, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.HasPrefix(string(body), "owner_id,hero,role,gamemode,map,rank,result,recorded_at\n") {
		t.Errorf("csv:\n%s", body)
	}

	out = run(t, "clear", "--db", dbPath, "--owner", "u1")
	if !strings.Contains(out, "--force") || !strings.Contains(out, "delete 2 matches") {
		t.Errorf("clear without --force:\n%s", out)
	}
	out = run(t, "clear", "--db", dbPath, "--owner", "u1", "--force")
	if !strings.Contains(out, "Deleted 2 matches") {
		t.Errorf("clear output:\n%s", out)
	}

	out = run(t, "list", "--db", dbPath, "--owner", "u1")
	if !strings.Contains(out, "No matches in season") {
		t.Errorf("list after clear:\n%s", out)
	}
}

func TestOwnerRequired(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"list", "--db", filepath.Join(t.TempDir(), "m.db")})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "--owner") {
		t.Errorf("err = %v, want --owner is required", err)
	}
}
