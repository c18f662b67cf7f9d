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

type totalCmd struct {
	start string
	end   string
}

func (*totalCmd) Name() string     { return "total" }
func (*totalCmd) Synopsis() string { return "runs the plan and prints the closing net position" }
func (*totalCmd) Usage() string {
	return `total [-start <date>] [-end <date>]:
  Runs the plan file and prints assets minus liabilities at the end of
  the simulated range.
`
}

func (c *totalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "start", date.Today().String(), "First simulated date (YYYY-MM-DD)")
	f.StringVar(&c.end, "end", "", "Last simulated date (YYYY-MM-DD), required")
}

func (c *totalCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if _, err := ledger.Run(start, end); err != nil {
		fmt.Fprintln(os.Stderr, "Error simulating:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Net position on %s: %s\n", end, renderer.FormatMoney(ledger.Total(), *currency))
	return subcommands.ExitSuccess
}
