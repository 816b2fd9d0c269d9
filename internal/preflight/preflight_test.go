package preflight_test

import (
	"testing"

	"migrunner/internal/preflight"
	"migrunner/internal/testsupport"
)

func resultNames(results []preflight.Result) []string {
	names := make([]string, 0, len(results))
	for _, res := range results {
		names = append(names, res.Name)
	}
	return names
}

func findResult(t *testing.T, results []preflight.Result, name string) preflight.Result {
	t.Helper()
	for _, res := range results {
		if res.Name == name {
			return res
		}
	}
	t.Fatalf("result %q not found in %v", name, resultNames(results))
	return preflight.Result{}
}

func TestRunAllReadyTree(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.NewReadyTree(t, cfg, "acme", "PDOL")
	checker, rec := newChecker(t, cfg)

	results := checker.RunAll(preflight.Job{CustomerDir: "acme", MigType: "PDOL"})

	want := []string{
		preflight.NamePentaho,
		preflight.NameKitchen,
		preflight.NameMigRoot,
		preflight.NameReserved,
		preflight.NameCustomerDir,
		preflight.NameMigTypeDir,
		preflight.NameProperties,
		preflight.NameParameters,
		preflight.NameTypeParameters,
		preflight.NameCustomerAccess,
		preflight.NameCustomerIdle,
	}
	got := resultNames(results)
	if len(got) != len(want) {
		t.Fatalf("unexpected results: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("result %d: got %q want %q", i, got[i], want[i])
		}
	}
	for _, res := range results {
		if !res.Passed {
			t.Fatalf("expected %s to pass, got %+v", res.Name, res)
		}
		if res.Detail != "" {
			t.Fatalf("passing result %s should carry no detail, got %q", res.Name, res.Detail)
		}
	}
	if !preflight.Ready(results) {
		t.Fatal("expected ready tree to be ready")
	}
	requireNoReports(t, rec)
}

func TestRunAllMissingPentahoDoesNotShortCircuit(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.NewCustomer(t, cfg, "acme", "PDOL", testsupport.CompleteCustomer())
	checker, rec := newChecker(t, cfg)

	results := checker.RunAll(preflight.Job{CustomerDir: "acme", MigType: "PDOL"})

	if len(results) != 11 {
		t.Fatalf("expected every check to run, got %v", resultNames(results))
	}
	blocking := preflight.Blocking(results)
	if len(blocking) != 2 {
		t.Fatalf("expected pentaho and kitchen to block, got %v", resultNames(blocking))
	}
	if blocking[0].Name != preflight.NamePentaho || blocking[0].Severity != preflight.SeverityFatal {
		t.Fatalf("unexpected first blocking result: %+v", blocking[0])
	}
	if len(rec.reports) != 2 || rec.reports[0].severity != preflight.SeverityFatal {
		t.Fatalf("unexpected reports: %+v", rec.reports)
	}
	if findResult(t, results, preflight.NameParameters).Passed != true {
		t.Fatal("customer checks should still run and pass")
	}
}

func TestRunAllPropertiesAdvisoryForOptionalTypes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.InstallPentaho(t, cfg)
	layout := testsupport.CompleteCustomer()
	layout.Properties = false
	testsupport.NewCustomer(t, cfg, "acme", "PDOL", layout)
	testsupport.NewCustomer(t, cfg, "acme", "MLM", layout)
	checker, _ := newChecker(t, cfg)

	pdol := checker.RunAll(preflight.Job{CustomerDir: "acme", MigType: "PDOL"})
	props := findResult(t, pdol, preflight.NameProperties)
	if props.Passed || props.Required {
		t.Fatalf("expected advisory failure for PDOL, got %+v", props)
	}
	if props.Hint == "" {
		t.Fatal("expected hint on properties failure")
	}
	if !preflight.Ready(pdol) {
		t.Fatalf("missing config.properties must not block PDOL: %v", resultNames(preflight.Blocking(pdol)))
	}

	mlm := checker.RunAll(preflight.Job{CustomerDir: "acme", MigType: "MLM"})
	if props := findResult(t, mlm, preflight.NameProperties); !props.Required {
		t.Fatalf("expected properties to be required for MLM, got %+v", props)
	}
	if preflight.Ready(mlm) {
		t.Fatal("missing config.properties must block MLM")
	}
}

func TestRunAllMissingTypeDirIsSilentButBlocking(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.InstallPentaho(t, cfg)
	testsupport.NewCustomer(t, cfg, "acme", "SDOL", testsupport.CustomerLayout{Properties: true, Parameters: true})
	checker, rec := newChecker(t, cfg)

	results := checker.RunAll(preflight.Job{CustomerDir: "acme", MigType: "SDOL"})
	blocking := preflight.Blocking(results)
	names := resultNames(blocking)
	if len(names) != 2 || names[0] != preflight.NameMigTypeDir || names[1] != preflight.NameTypeParameters {
		t.Fatalf("unexpected blocking results: %v", names)
	}
	requireSingleReport(t, rec, preflight.SeverityCritical, "SDOL_parameters.xlsx")
}

func TestRunAllReservedCustomer(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithReservedDirs("reserved1"))
	testsupport.NewReadyTree(t, cfg, "reserved1", "PDOL")
	checker, rec := newChecker(t, cfg)

	results := checker.RunAll(preflight.Job{CustomerDir: "reserved1", MigType: "PDOL"})
	blocking := preflight.Blocking(results)
	if len(blocking) != 1 || blocking[0].Name != preflight.NameReserved {
		t.Fatalf("expected only the reserved check to block, got %v", resultNames(blocking))
	}
	requireSingleReport(t, rec, preflight.SeverityCritical, "is in the reserved list")
}

func TestBlockingIgnoresPassedAndAdvisory(t *testing.T) {
	results := []preflight.Result{
		{Name: "a", Passed: true, Required: true},
		{Name: "b", Passed: false, Required: false},
		{Name: "c", Passed: false, Required: true},
	}
	blocking := preflight.Blocking(results)
	if len(blocking) != 1 || blocking[0].Name != "c" {
		t.Fatalf("unexpected blocking results: %+v", blocking)
	}
	if preflight.Ready(results) {
		t.Fatal("expected not ready")
	}
	if !preflight.Ready(nil) {
		t.Fatal("no results should be ready")
	}
}
