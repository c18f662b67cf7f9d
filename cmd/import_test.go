package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

func TestImportAppendsOnceLines(t *testing.T) {
	export := `{"rows":[
		{"date":"2026-02-01","value":120.50,"label":"refund"},
		{"date":"2026-03-01","value":"80","label":"rebate"}
	]}`
	exportFile := filepath.Join(t.TempDir(), "export.json")
	if err := os.WriteFile(exportFile, []byte(export), 0644); err != nil {
		t.Fatalf("Failed to write export file: %v", err)
	}

	tempPlanFile := createTempPlan(t, `{"kind":"account","name":"checking","balance":0}`+"\n")

	oldPlanFile := planFile
	planFile = &tempPlanFile
	defer func() { planFile = oldPlanFile }()

	cmd := &importCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	f.Set("file", exportFile)
	f.Set("dates", "$.rows[*].date")
	f.Set("amounts", "$.rows[*].value")
	f.Set("debit", "checking")
	f.Set("description", "bank import")

	status := cmd.Execute(context.Background(), f)
	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}

	got, err := os.ReadFile(tempPlanFile)
	if err != nil {
		t.Fatalf("Failed to read plan file: %v", err)
	}
	want := `{"kind":"account","name":"checking","balance":0}
{"kind":"once","on":"2026-02-01","amount":120.5,"debit":"checking","description":"bank import"}
{"kind":"once","on":"2026-03-01","amount":80,"debit":"checking","description":"bank import"}
`
	if string(got) != want {
		t.Errorf("Plan file mismatch.\nGot:\n%s\nWant:\n%s", string(got), want)
	}

	// The appended file is still a valid plan.
	if _, err := DecodePlan(strings.NewReader(string(got))); err != nil {
		t.Errorf("appended plan does not decode: %v", err)
	}
}

func TestImportLengthMismatch(t *testing.T) {
	export := `{"dates":["2026-02-01","2026-03-01"],"values":[10]}`
	exportFile := filepath.Join(t.TempDir(), "export.json")
	if err := os.WriteFile(exportFile, []byte(export), 0644); err != nil {
		t.Fatalf("Failed to write export file: %v", err)
	}

	tempPlanFile := filepath.Join(t.TempDir(), "plan.jsonl")
	oldPlanFile := planFile
	planFile = &tempPlanFile
	defer func() { planFile = oldPlanFile }()

	cmd := &importCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	f.Set("file", exportFile)
	f.Set("dates", "$.dates[*]")
	f.Set("amounts", "$.values[*]")

	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitFailure {
		t.Errorf("Expected ExitFailure, got %v", status)
	}
}
