// Package cmd implements the CLI application to simulate a ledger plan.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&simulateCmd{}, "simulation")
	c.Register(&alertsCmd{}, "simulation")
	c.Register(&totalCmd{}, "simulation")

	c.Register(&fmtCmd{}, "plan")
	c.Register(&importCmd{}, "plan")

	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var planFile = flag.String("plan-file", "plan.jsonl", "Path to the plan file (JSONL format)")
var currency = flag.String("currency", "EUR", "ISO-4217 currency code used to format amounts")

// LoadPlan reads and parses the app plan file.
func LoadPlan() (*Plan, error) {
	f, err := os.Open(*planFile)
	if err != nil {
		return nil, fmt.Errorf("error opening plan file %q: %w", *planFile, err)
	}
	defer f.Close()

	p, err := DecodePlan(f)
	if err != nil {
		return nil, fmt.Errorf("error reading plan file %q: %w", *planFile, err)
	}
	return p, nil
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when the renderer cannot be built.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Println(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
