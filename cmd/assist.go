package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/forecast/agent"
	"github.com/etnz/forecast/date"
	"github.com/etnz/forecast/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct {
	start string
	end   string
}

func (*assistCmd) Name() string { return "assist" }

func (*assistCmd) Synopsis() string {
	return "Start an interactive session with the AI assistant."
}

func (*assistCmd) Usage() string {
	return `assist [-start <date>] [-end <date>] [question]:
  Runs the plan, then starts an interactive session with an AI assistant
  that knows the resulting report.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "start", date.Today().String(), "First simulated date (YYYY-MM-DD)")
	f.StringVar(&c.end, "end", "", "Last simulated date (YYYY-MM-DD), required")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

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
	report := renderer.RenderReport(renderer.NewReport(ledger, start, end, *currency, entries))

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	planner := agent.NewPlanner(report)
	a := agent.New(os.Stdout, os.Stdin, planner)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
