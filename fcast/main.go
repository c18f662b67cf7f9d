package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/forecast/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion runs before flag parsing and exits when invoked by
	// the shell's completion hook.
	window := map[string]complete.Predictor{
		"start": predict.Something,
		"end":   predict.Something,
	}
	completion := &complete.Command{
		Flags: map[string]complete.Predictor{
			"plan-file": predict.Files("*.jsonl"),
			"currency":  predict.Set{"EUR", "USD", "GBP", "CHF", "JPY"},
		},
		Sub: map[string]*complete.Command{
			"simulate": {Flags: window},
			"alerts":   {Flags: window},
			"total":    {Flags: window},
			"fmt":      {},
			"import": {Flags: map[string]complete.Predictor{
				"file":        predict.Files("*.json"),
				"dates":       predict.Something,
				"amounts":     predict.Something,
				"debit":       predict.Something,
				"credit":      predict.Something,
				"description": predict.Something,
			}},
			"topic":  {Args: predict.Set{"readme", "plan", "rules", "simulate"}},
			"assist": {Flags: window},
		},
	}
	completion.Complete("fcast")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
