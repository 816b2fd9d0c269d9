package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"migrunner/internal/testsupport"
)

func TestCustomersListsFolders(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithReservedDirs("_templates"))
	testsupport.NewCustomer(t, env.cfg, "acme", "PDOL", testsupport.CompleteCustomer())
	testsupport.NewCustomer(t, env.cfg, "acme", "MLM", testsupport.CustomerLayout{TypeDir: true})
	testsupport.NewCustomer(t, env.cfg, "_templates", "PDOL", testsupport.CustomerLayout{})
	testsupport.MkdirAll(t, filepath.Join(env.cfg.Migration.Root, ".cache"))
	testsupport.WriteFile(t, filepath.Join(env.cfg.Migration.Root, "notes.txt"))

	out, stderr, err := runCLI(t, []string{"customers", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("customers: %v", err)
	}
	if stderr != "" {
		t.Fatalf("listing must not log check failures, got %q", stderr)
	}

	var rows []customerRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode json: %v (%s)", err, out)
	}
	if len(rows) != 2 {
		t.Fatalf("expected two customers, got %+v", rows)
	}
	byName := map[string]customerRow{}
	for _, row := range rows {
		byName[row.Name] = row
	}
	acme := byName["acme"]
	if acme.Reserved || !acme.Parameters || !acme.Properties || len(acme.Types) != 2 || acme.Types[0] != "PDOL" || acme.Types[1] != "MLM" {
		t.Fatalf("unexpected acme row: %+v", acme)
	}
	if tmpl := byName["_templates"]; !tmpl.Reserved || tmpl.Parameters || len(tmpl.Types) != 0 {
		t.Fatalf("unexpected _templates row: %+v", tmpl)
	}

	out, _, err = runCLI(t, []string{"customers"}, env.configPath)
	if err != nil {
		t.Fatalf("customers table: %v", err)
	}
	requireContains(t, out, "CUSTOMER")
	requireContains(t, out, "_templates")
	requireContains(t, out, "PDOL, MLM")
}

func TestCustomersMissingRoot(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"customers"}, env.configPath)
	if err == nil {
		t.Fatal("expected error when migration root is missing")
	}
	requireContains(t, err.Error(), "does not exist")
}
