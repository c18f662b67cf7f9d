// Package renderer turns a drained simulation into markdown reports.
package renderer

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/etnz/forecast"
	"github.com/etnz/forecast/date"
)

//go:embed templates/*.md
var templates embed.FS

// EntryRow is one projected entry, formatted for display.
type EntryRow struct {
	On          date.Date
	Description string
	Debit       string
	Credit      string
	Amount      string
}

// BalanceRow is one closing account balance, formatted for display.
type BalanceRow struct {
	Account string
	Balance string
}

// AlertRow is one triggered alert, formatted for display.
type AlertRow struct {
	On          date.Date
	Description string
	Trigger     string
}

// Report aggregates everything a finished run produced: the projected
// entries in order, the closing balances, the alerts, and the net
// position.
type Report struct {
	Start, End date.Date
	Currency   string
	Entries    []EntryRow
	Balances   []BalanceRow
	Alerts     []AlertRow
	Total      string
}

// external is how the empty-string account is displayed.
const external = "(external)"

func account(name string) string {
	if name == "" {
		return external
	}
	return name
}

// NewReport assembles a Report from a ledger that has been run and the
// entries the run yielded. Amounts are formatted in the given ISO-4217
// currency.
func NewReport(l *forecast.Ledger, start, end date.Date, currency string, entries []forecast.Entry) *Report {
	r := &Report{Start: start, End: end, Currency: currency}

	for _, e := range entries {
		r.Entries = append(r.Entries, EntryRow{
			On:          e.On,
			Description: e.Transaction.Description,
			Debit:       account(e.Transaction.Debit),
			Credit:      account(e.Transaction.Credit),
			Amount:      FormatMoney(e.Transaction.Amount, currency),
		})
	}

	for name, balance := range l.Accounts() {
		r.Balances = append(r.Balances, BalanceRow{
			Account: account(name),
			Balance: FormatMoney(balance, currency),
		})
	}

	for _, a := range l.Alerts() {
		r.Alerts = append(r.Alerts, AlertRow{
			On:          a.On,
			Description: a.Description,
			Trigger:     a.Entry.Transaction.Description,
		})
	}

	r.Total = FormatMoney(l.Total(), currency)
	return r
}

// RenderReport renders the full simulation report to a markdown string.
func RenderReport(r *Report) string {
	partials := map[string]string{
		"report_title":    "report_title.md",
		"report_entries":  "report_entries.md",
		"report_balances": "report_balances.md",
		"report_alerts":   "report_alerts.md",
	}
	return renderTemplate("report", "report.md", partials, r)
}

// RenderAlerts renders only the alerts section.
func RenderAlerts(r *Report) string {
	return renderTemplate("report_alerts", "report_alerts.md", nil, r)
}

// renderTemplate is a generic utility to render a main template that
// depends on several partials, all loaded from the embedded filesystem.
// Each partial is registered under its alias so the main template can
// reference it by a stable name.
func renderTemplate(name, main string, partials map[string]string, data any) string {
	t := template.New(name)
	for alias, file := range partials {
		content, err := templates.ReadFile("templates/" + file)
		if err != nil {
			return fmt.Sprintf("missing template %q: %v", file, err)
		}
		t = template.Must(t.New(alias).Parse(string(content)))
	}
	content, err := templates.ReadFile("templates/" + main)
	if err != nil {
		return fmt.Sprintf("missing template %q: %v", main, err)
	}
	t = template.Must(t.New(name).Parse(string(content)))

	var b strings.Builder
	if err := t.ExecuteTemplate(&b, name, data); err != nil {
		return fmt.Sprintf("error rendering %s: %v", name, err)
	}
	return b.String()
}
