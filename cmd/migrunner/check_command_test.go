package main

import (
	"context"
	"encoding/json"
	"testing"

	"migrunner/internal/history"
	"migrunner/internal/testsupport"
)

func TestCheckReadyCustomer(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedBinaries())
	testsupport.NewReadyTree(t, env.cfg, "acme", "PDOL")

	out, stderr, err := runCLI(t, []string{"check", "--customer", "acme", "--type", "pdol"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v (stderr=%s)", err, stderr)
	}
	requireContains(t, out, "== Preflight: acme (PDOL) ==")
	requireContains(t, out, "[OK] ready")
	requireContains(t, out, "Java:")
	requireNotContains(t, out, "[ERROR]")
	if stderr != "" {
		t.Fatalf("expected no log output for a ready customer, got %q", stderr)
	}

	store := testsupport.MustOpenHistory(t, env.cfg)
	sessions, err := store.List(context.Background(), history.Filter{Customer: "acme"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sessions) != 1 || !sessions[0].Ready || sessions[0].MigType != "PDOL" {
		t.Fatalf("unexpected recorded sessions: %+v", sessions)
	}
}

func TestCheckMissingPentahoFails(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.NewCustomer(t, env.cfg, "acme", "SDOL", testsupport.CompleteCustomer())

	out, stderr, err := runCLI(t, []string{"check", "--customer", "acme", "--type", "SDOL"}, env.configPath)
	if err == nil {
		t.Fatal("expected check to fail when Pentaho is missing")
	}
	requireContains(t, err.Error(), "not ready")
	requireContains(t, out, "not ready (2 blocking)")
	requireContains(t, stderr, "FATAL [preflight] – Pentaho path doesn't exist in "+env.cfg.Pentaho.Dir)
	requireContains(t, stderr, "CRITICAL [preflight] – Kitchen.bat script doesn't exist")
	requireContains(t, stderr, "- session_id: ")
	requireContains(t, stderr, "- customer: acme")
}

func TestCheckAdvisoryPropertiesStillReady(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.InstallPentaho(t, env.cfg)
	layout := testsupport.CompleteCustomer()
	layout.Properties = false
	testsupport.NewCustomer(t, env.cfg, "acme", "PDOL", layout)

	out, stderr, err := runCLI(t, []string{"check", "--customer", "acme", "--type", "PDOL", "--no-history"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "[WARN] warning: File config.properties doesn't exist in acme folder")
	requireContains(t, stderr, "WARN [preflight] – File config.properties doesn't exist in acme folder")
	requireContains(t, stderr, "INFO [preflight] – This is not a mandatory check for PDOL and SDOL anymore")

	store := testsupport.MustOpenHistory(t, env.cfg)
	sessions, err := store.List(context.Background(), history.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("--no-history must not record, got %d sessions", len(sessions))
	}
}

func TestCheckJSONOutput(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithReservedDirs("reserved1"))
	testsupport.NewReadyTree(t, env.cfg, "reserved1", "MLM")

	out, _, err := runCLI(t, []string{"check", "--customer", "reserved1", "--type", "MLM", "--json"}, env.configPath)
	if err == nil {
		t.Fatal("expected reserved customer to fail")
	}

	var view sessionView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode json: %v (%s)", err, out)
	}
	if view.Ready || view.Customer != "reserved1" || view.MigType != "MLM" || !view.Recorded {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.Java == nil || !view.Java.Optional {
		t.Fatalf("expected optional java status, got %+v", view.Java)
	}
	var reserved *resultView
	for i := range view.Results {
		if view.Results[i].Name == "Reserved name" {
			reserved = &view.Results[i]
		}
	}
	if reserved == nil || reserved.Passed || reserved.Severity != "critical" {
		t.Fatalf("unexpected reserved result: %+v", reserved)
	}
}

func TestCheckRejectsBadArguments(t *testing.T) {
	env := setupCLITestEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown type", []string{"check", "--customer", "acme", "--type", "XYZ"}, "unknown migration type"},
		{"path customer", []string{"check", "--customer", "../acme", "--type", "PDOL"}, "not a path"},
		{"dot customer", []string{"check", "--customer", "..", "--type", "PDOL"}, "not a folder name"},
		{"missing flags", []string{"check"}, "required flag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args, env.configPath)
			if err == nil {
				t.Fatal("expected error")
			}
			requireContains(t, err.Error(), tt.want)
		})
	}
}
