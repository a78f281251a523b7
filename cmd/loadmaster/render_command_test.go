package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"loadmaster/internal/testsupport"
)

func seedManifest(t *testing.T, env *cliTestEnv) {
	t.Helper()
	mustRunCLI(t, env, "mission", "set", "--date", "2025-12-08", "--drop-zone", "Sicily DZ")
	mustRunCLI(t, env, "scan", "DOE, JOHN A|SGT|1-503 PIR|CE", "ROE, JANE|CPT|2-503 PIR|CE")
	mustRunCLI(t, env, "mission", "set", "--door", "ramp", "--chalk", "102")
	mustRunCLI(t, env, "scan", "POE, EDGAR|PFC|HHC|CE")
}

func TestRenderTextToStdout(t *testing.T) {
	env := setupCLITestEnv(t)
	seedManifest(t, env)

	out := mustRunCLI(t, env, "render")
	requireContains(t, out, "DA FORM 1306")
	requireContains(t, out, "Sicily DZ")
	requireContains(t, out, "Chalk 101, Pass 1, Left Door, T-11")
	requireContains(t, out, "Chalk 102, Pass 1, Ramp, T-11")
	requireContains(t, out, "Total Manifested: 3")
	if strings.Index(out, "DOE, JOHN A") > strings.Index(out, "POE, EDGAR") {
		t.Fatalf("expected Left door section before Ramp section:\n%s", out)
	}
}

func TestRenderEmptyRoster(t *testing.T) {
	env := setupCLITestEnv(t)

	out := mustRunCLI(t, env, "render", "--format", "txt")
	requireContains(t, out, "No personnel manifested.")
}

func TestRenderCSVToFile(t *testing.T) {
	env := setupCLITestEnv(t)
	seedManifest(t, env)

	target := filepath.Join(env.baseDir, "out", "manifest.csv")
	out := mustRunCLI(t, env, "render", "--format", "csv", "--output", target)
	requireContains(t, out, "Wrote "+target)

	file, err := os.Open(target)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer file.Close()
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	var names []string
	for _, row := range rows {
		if len(row) >= 3 && row[0] != "Section" && strings.Contains(row[2], ",") {
			names = append(names, row[2])
		}
	}
	want := []string{"DOE, JOHN A", "ROE, JANE", "POE, EDGAR"}
	if strings.Join(names, "|") != strings.Join(want, "|") {
		t.Fatalf("csv names = %v, want %v", names, want)
	}
}

func TestRenderPublishWritesOutputDir(t *testing.T) {
	env := setupCLITestEnv(t)
	seedManifest(t, env)

	out := mustRunCLI(t, env, "render", "--format", "html", "--publish")
	requireContains(t, out, "Published")

	target := filepath.Join(env.cfg.Paths.OutputDir, "08DEC2025_MANIFEST.html")
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read published artifact: %v", err)
	}
	if !strings.Contains(string(data), "DOE, JOHN A") {
		t.Fatalf("published html missing roster")
	}
}

func TestRenderRejectsBadFlags(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env, "render", "--format", "pdf"); err == nil {
		t.Fatal("expected unsupported format to fail")
	}
	if _, _, err := runCLI(t, env, "render", "--output", "x.txt", "--publish"); err == nil {
		t.Fatal("expected --output with --publish to fail")
	}
}

func TestRenderHTMLPaginates(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithRowsPerPage(2))
	seedManifest(t, env)

	out := mustRunCLI(t, env, "render", "--format", "html")
	requireContains(t, out, "Page 1 of 2")
	requireContains(t, out, "Page 2 of 2")
}
