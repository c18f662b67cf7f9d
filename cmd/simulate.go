package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/forecast/date"
	"github.com/etnz/forecast/renderer"
	"github.com/google/subcommands"
)

type simulateCmd struct {
	start string
	end   string
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "runs the plan and prints the simulation report" }
func (*simulateCmd) Usage() string {
	return `simulate [-start <date>] [-end <date>]:
  Runs the plan file and prints the projected entries, closing balances
  and alerts as a report.
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "start", date.Today().String(), "First simulated date (YYYY-MM-DD)")
	f.StringVar(&c.end, "end", "", "Last simulated date (YYYY-MM-DD), required")
}

// window parses the -start and -end flags shared by the simulation
// commands. end is required: an unbounded lazy run makes no sense for a
// command that drains everything before printing.
func window(start, end string) (s, e date.Date, err error) {
	s, err = date.Parse(start)
	if err != nil {
		return s, e, fmt.Errorf("invalid -start: %w", err)
	}
	if end == "" {
		return s, e, fmt.Errorf("-end is required")
	}
	e, err = date.Parse(end)
	if err != nil {
		return s, e, fmt.Errorf("invalid -end: %w", err)
	}
	if e.Before(s) {
		return s, e, fmt.Errorf("-end %s is before -start %s", e, s)
	}
	return s, e, nil
}

func (c *simulateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	start, end, err := window(c.start, c.end)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	plan, err := LoadPlan()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	ledger, err := plan.Ledger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error building ledger:", err)
		return subcommands.ExitFailure
	}

	entries, err := ledger.Run(start, end)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error simulating:", err)
		return subcommands.ExitFailure
	}

	report := renderer.NewReport(ledger, start, end, *currency, entries)
	printMarkdown(renderer.RenderReport(report))
	return subcommands.ExitSuccess
}
