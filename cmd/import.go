package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// importCmd turns an arbitrary JSON export into one-off plan lines by
// extracting dates and amounts with jsonpath expressions.
type importCmd struct {
	file        string
	dates       string
	amounts     string
	debit       string
	credit      string
	description string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "imports one-off entries from a JSON export" }
func (*importCmd) Usage() string {
	return `import -file <export.json> -dates <path> -amounts <path> [-debit <account>] [-credit <account>]:
  Extracts dates and amounts from an arbitrary JSON export using jsonpath
  expressions, and appends the matching 'once' lines to the plan file.

  Example:
    import -file bank.json -dates '$.rows[*].date' -amounts '$.rows[*].value' -debit checking
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "Path to the JSON export to import")
	f.StringVar(&c.dates, "dates", "", "jsonpath expression selecting the dates")
	f.StringVar(&c.amounts, "amounts", "", "jsonpath expression selecting the amounts")
	f.StringVar(&c.debit, "debit", "", "Account to debit for every imported entry")
	f.StringVar(&c.credit, "credit", "", "Account to credit for every imported entry")
	f.StringVar(&c.description, "description", "imported", "Description for every imported entry")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" || c.dates == "" || c.amounts == "" {
		fmt.Fprintln(os.Stderr, "Error: -file, -dates and -amounts are required")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}

	dates, err := extract(jobj, c.dates)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	amounts, err := extract(jobj, c.amounts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if len(dates) != len(amounts) {
		fmt.Fprintf(os.Stderr, "Error: %d dates but %d amounts\n", len(dates), len(amounts))
		return subcommands.ExitFailure
	}

	lines := make([]sourceLine, 0, len(dates))
	for i := range dates {
		on, ok := dates[i].(string)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: date #%d is not a string: %v\n", i, dates[i])
			return subcommands.ExitFailure
		}
		amount, err := toDecimal(amounts[i])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: amount #%d: %v\n", i, err)
			return subcommands.ExitFailure
		}
		line := sourceLine{
			Kind:        "once",
			On:          on,
			Amount:      amount,
			Debit:       c.debit,
			Credit:      c.credit,
			Description: c.description,
		}
		if _, err := line.Rule(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: entry #%d: %v\n", i, err)
			return subcommands.ExitFailure
		}
		lines = append(lines, line)
	}

	// Open the plan file in append mode, creating it if it doesn't exist.
	w, err := os.OpenFile(*planFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening plan file %q: %v\n", *planFile, err)
		return subcommands.ExitFailure
	}
	defer w.Close()

	for _, line := range lines {
		b, err := json.Marshal(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to plan file %q: %v\n", *planFile, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintln(w, string(b))
	}

	fmt.Printf("Successfully appended %d entries to %s\n", len(lines), *planFile)
	return subcommands.ExitSuccess
}

// extract evaluates a jsonpath expression and always returns a list.
func extract(jobj any, path string) ([]any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of answers
	// or a single answer: normalize to a list.
	if jlist, ok := jval.([]any); ok {
		return jlist, nil
	}
	return []any{jval}, nil
}

// toDecimal converts an extracted JSON value to a decimal amount. Exports
// sometimes carry numbers as strings.
func toDecimal(jval any) (decimal.Decimal, error) {
	switch v := jval.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		return decimal.NewFromString(v)
	default:
		return decimal.Decimal{}, fmt.Errorf("not a number: %v", jval)
	}
}
