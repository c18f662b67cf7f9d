package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is the interactive session wrapping an expert.
type Agent struct {
	w      io.Writer
	r      *bufio.Reader
	Expert *Expert
}

// New creates a new Agent around an expert, writing its output to w and
// reading user input from r (typically os.Stdout and os.Stdin).
func New(w io.Writer, r io.Reader, expert *Expert) *Agent {
	return &Agent{
		w:      w,
		r:      bufio.NewReader(r),
		Expert: expert,
	}
}

const prompt = "fcast> "

// Run starts the interactive REPL session. Initial prompts are consumed
// before reading from the user; type 'bye' (or Ctrl+D) to exit.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if err := a.Expert.Start(ctx, client); err != nil {
		return err
	}

	fmt.Fprintln(a.w, "Ask about your forecast. Type 'bye' to exit.")

	for {
		// Drop blank canned prompts before showing the prompt line.
		for len(prompts) > 0 && strings.TrimSpace(prompts[0]) == "" {
			prompts = prompts[1:]
		}

		fmt.Fprint(a.w, prompt)
		var input string

		if len(prompts) > 0 {
			input, prompts = strings.TrimSpace(prompts[0]), prompts[1:]
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		content, err := a.Expert.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, content.Parts[0].Text)
	}
}
