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

type alertsCmd struct {
	start string
	end   string
}

func (*alertsCmd) Name() string     { return "alerts" }
func (*alertsCmd) Synopsis() string { return "runs the plan and lists the triggered alerts" }
func (*alertsCmd) Usage() string {
	return `alerts [-start <date>] [-end <date>]:
  Runs the plan file and prints only the alerts the run triggered.
`
}

func (c *alertsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "start", date.Today().String(), "First simulated date (YYYY-MM-DD)")
	f.StringVar(&c.end, "end", "", "Last simulated date (YYYY-MM-DD), required")
}

func (c *alertsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if len(report.Alerts) == 0 {
		fmt.Println("No alerts.")
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderAlerts(report))
	return subcommands.ExitSuccess
}
