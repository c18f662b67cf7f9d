package agent

import "google.golang.org/genai"

const model = "gemini-2.5-pro"

// NewPlanner returns the expert that answers questions about a rendered
// simulation report. The report is part of its system instruction, so it
// can discuss the projected entries, balances and alerts without tools.
func NewPlanner(report string) *Expert {
	return &Expert{
		Name: "Planner",
		Description: `A financial planning assistant that knows the user's
		simulated ledger: the projected entries, the closing balances and
		the triggered alerts.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a financial planning assistant. The user has simulated
			the future of their ledger; the full report is below. Answer
			questions about it: when entries occur, how balances evolve,
			which alerts fired and why. Ground every answer in the report,
			and say so when the report does not contain the answer. Dates
			are ISO-8601. Amounts are simulated projections, not advice.

			` + report}}},
		},
	}
}
