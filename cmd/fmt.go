package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string     { return "fmt" }
func (*fmtCmd) Synopsis() string { return "formats the plan file into a canonical form" }
func (*fmtCmd) Usage() string {
	return `fmt:
  Validates the plan file and rewrites it in canonical form.
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	// 1. Read the plan, validating every line.
	plan, err := LoadPlan()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	// 2. Write the plan back to the same file.
	w, err := os.OpenFile(*planFile, os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening plan file %q for writing: %v\n", *planFile, err)
		return subcommands.ExitFailure
	}
	defer w.Close()

	if err := plan.Encode(w); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding plan: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Plan file '%s' has been formatted.\n", *planFile)
	return subcommands.ExitSuccess
}
