package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/etnz/forecast"
	"github.com/etnz/forecast/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// accountLine declares an account and its opening balance.
type accountLine struct {
	Kind    string          `json:"kind"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// groupLine classifies accounts as assets or liabilities.
type groupLine struct {
	Kind     string   `json:"kind"`
	Accounts []string `json:"accounts"`
}

// watchLine declares a balance alerter: it fires whenever an entry
// touching the account leaves its balance below the threshold.
type watchLine struct {
	Kind        string          `json:"kind"`
	Account     string          `json:"account"`
	Below       decimal.Decimal `json:"below"`
	Description string          `json:"description,omitempty"`
}

// Alerter builds the balance alerter this line describes.
func (w watchLine) Alerter() forecast.Alerter {
	description := w.Description
	if description == "" {
		description = fmt.Sprintf("%s below %s", w.Account, w.Below)
	}
	return func(b forecast.Balances, e forecast.Entry) (*forecast.Alert, error) {
		if e.Transaction.Debit != w.Account && e.Transaction.Credit != w.Account {
			return nil, nil
		}
		if b.Get(w.Account).GreaterThanOrEqual(w.Below) {
			return nil, nil
		}
		return &forecast.Alert{On: e.On, Description: description, Entry: e}, nil
	}
}

// sourceLine carries one recurrence rule and the transaction it
// generates. Dates are ISO-8601 strings so that unset ones are simply
// omitted from the canonical form.
type sourceLine struct {
	Kind        string          `json:"kind"`
	On          string          `json:"on,omitempty"`      // once
	Every       int             `json:"every,omitempty"`   // interval
	Initial     string          `json:"initial,omitempty"` // interval
	Weekday     string          `json:"weekday,omitempty"` // weekly
	Day         int             `json:"day,omitempty"`     // monthly, yearly
	Month       int             `json:"month,omitempty"`   // yearly
	Begin       string          `json:"begin,omitempty"`
	End         string          `json:"end,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Debit       string          `json:"debit,omitempty"`
	Credit      string          `json:"credit,omitempty"`
	Description string          `json:"description,omitempty"`
}

// Rule builds the recurrence rule this line describes.
func (s sourceLine) Rule() (forecast.Rule, error) {
	var r forecast.Rule
	var err error
	switch s.Kind {
	case "once":
		var on date.Date
		if on, err = date.Parse(s.On); err == nil {
			r = forecast.Once(on)
		}
	case "interval":
		if s.Initial != "" {
			var initial date.Date
			if initial, err = date.Parse(s.Initial); err == nil {
				r, err = forecast.IntervalFrom(s.Every, initial)
			}
		} else {
			r, err = forecast.Interval(s.Every)
		}
	case "weekly":
		var day time.Weekday
		if day, err = parseWeekday(s.Weekday); err == nil {
			r, err = forecast.Weekly(day)
		}
	case "monthly":
		r, err = forecast.Monthly(s.Day)
	case "yearly":
		r, err = forecast.Yearly(time.Month(s.Month), s.Day)
	default:
		err = fmt.Errorf("unknown rule kind %q", s.Kind)
	}
	if err != nil {
		return forecast.Rule{}, err
	}
	if s.Begin != "" {
		begin, err := date.Parse(s.Begin)
		if err != nil {
			return forecast.Rule{}, fmt.Errorf("invalid begin: %w", err)
		}
		r = r.From(begin)
	}
	if s.End != "" {
		end, err := date.Parse(s.End)
		if err != nil {
			return forecast.Rule{}, fmt.Errorf("invalid end: %w", err)
		}
		r = r.Until(end)
	}
	return r, nil
}

// Transaction builds the transaction template this line describes.
func (s sourceLine) Transaction() forecast.Transaction {
	return forecast.Transaction{
		Amount:      s.Amount,
		Debit:       s.Debit,
		Credit:      s.Credit,
		Description: s.Description,
	}
}

func parseWeekday(name string) (time.Weekday, error) {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if strings.EqualFold(name, day.String()) {
			return day, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", name)
}

// Plan is the parsed content of a plan file, retained line by line so it
// can be re-encoded canonically.
type Plan struct {
	Accounts    []accountLine
	Assets      []string
	Liabilities []string
	Watches     []watchLine
	Sources     []sourceLine
}

// DecodePlan decodes a plan from a stream of JSONL data, decodes each
// line into the appropriate struct based on its kind, and validates every
// rule eagerly.
func DecodePlan(r io.Reader) (*Plan, error) {
	p := &Plan{}
	scanner := bufio.NewScanner(r)
	line := 0

	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(strings.TrimSpace(string(lineBytes))) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Kind string `json:"kind"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("line %d: could not identify kind in %q: %w", line, string(lineBytes), err)
		}

		switch identifier.Kind {
		case "account":
			var a accountLine
			if err := json.Unmarshal(lineBytes, &a); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if a.Name == "" {
				return nil, fmt.Errorf("line %d: account without a name", line)
			}
			p.Accounts = append(p.Accounts, a)
		case "assets", "liabilities":
			var g groupLine
			if err := json.Unmarshal(lineBytes, &g); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if identifier.Kind == "assets" {
				p.Assets = append(p.Assets, g.Accounts...)
			} else {
				p.Liabilities = append(p.Liabilities, g.Accounts...)
			}
		case "watch":
			var w watchLine
			if err := json.Unmarshal(lineBytes, &w); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if w.Account == "" {
				return nil, fmt.Errorf("line %d: watch without an account", line)
			}
			p.Watches = append(p.Watches, w)
		case "once", "interval", "weekly", "monthly", "yearly":
			var s sourceLine
			if err := json.Unmarshal(lineBytes, &s); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if _, err := s.Rule(); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			p.Sources = append(p.Sources, s)
		default:
			return nil, fmt.Errorf("line %d: unknown kind %q", line, identifier.Kind)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

// Encode writes the plan back in canonical form: accounts first, then
// the asset and liability groups, then the sources, one JSON object per
// line.
func (p *Plan) Encode(w io.Writer) error {
	write := func(v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}

	for _, a := range p.Accounts {
		a.Kind = "account"
		if err := write(a); err != nil {
			return err
		}
	}
	if len(p.Assets) > 0 {
		if err := write(groupLine{Kind: "assets", Accounts: p.Assets}); err != nil {
			return err
		}
	}
	if len(p.Liabilities) > 0 {
		if err := write(groupLine{Kind: "liabilities", Accounts: p.Liabilities}); err != nil {
			return err
		}
	}
	for _, w := range p.Watches {
		w.Kind = "watch"
		if err := write(w); err != nil {
			return err
		}
	}
	for _, s := range p.Sources {
		if err := write(s); err != nil {
			return err
		}
	}
	return nil
}

// Ledger builds a fresh ledger from the plan: accounts, groups, and every
// source. Each call returns an independent ledger, so consecutive
// simulations do not compound.
func (p *Plan) Ledger() (*forecast.Ledger, error) {
	l := forecast.NewLedger()
	for _, a := range p.Accounts {
		if err := l.AddAccount(a.Name, a.Balance); err != nil {
			return nil, err
		}
	}
	l.SetAssets(p.Assets...)
	l.SetLiabilities(p.Liabilities...)
	for _, w := range p.Watches {
		l.AddAlerter(w.Alerter())
	}
	for _, s := range p.Sources {
		r, err := s.Rule()
		if err != nil {
			return nil, err
		}
		l.AddSource(r, s.Transaction())
	}
	return l, nil
}
