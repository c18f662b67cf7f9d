package forecast

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/etnz/forecast/date"
	"github.com/shopspring/decimal"
)

// Transaction is a rule's payload: the amount moved and the two accounts
// it moves between. It describes a recurring movement, not an occurrence.
type Transaction struct {
	Amount      decimal.Decimal
	Debit       string
	Credit      string
	Description string
}

// Entry is one occurrence of a Transaction at a specific date. Entries
// are produced by binding a source, never mutated.
type Entry struct {
	On          date.Date
	Transaction Transaction
}

// Alert is an observation recorded by an alerter while processing an
// entry.
type Alert struct {
	On          date.Date
	Description string
	Entry       Entry // the entry that triggered the alert
}

// Balances maps account names to running balances. A missing account
// reads as zero. The empty account name is a valid sentinel for the world
// outside the tracked system (external income and expense); it
// accumulates a balance like any other key.
type Balances map[string]decimal.Decimal

// Get returns the balance of the named account, zero when unknown.
func (b Balances) Get(name string) decimal.Decimal { return b[name] }

// Schedule is an actor's output: a rule and a transaction template to be
// bound at the current simulated date and fed back into the running
// merge.
type Schedule struct {
	Rule        Rule
	Transaction Transaction
}

// Alerter observes each processed entry with the post-update balances and
// may return an alert to record. An error is fatal to the run.
type Alerter func(Balances, Entry) (*Alert, error)

// Actor observes each processed entry with the post-update balances and
// may return a schedule for new future entries. An error is fatal to the
// run.
type Actor func(Balances, Entry) (*Schedule, error)

// Mode selects how an actor's schedule is realized during a run.
type Mode int

const (
	// Deferred injects the schedule as a new source of the live merge
	// stream: its entries surface in global date order alongside every
	// other pending source. This is the default.
	Deferred Mode = iota
	// Cascade realizes the schedule eagerly: its entries up to the run's
	// end date are processed recursively within the triggering step, the
	// legacy immediate-cascade model. A Cascade run must be bounded, and
	// actors must not produce schedules that re-trigger each other
	// without end.
	Cascade
)

// Ledger owns the simulation configuration and its mutable state: account
// balances, the registered sources, actors and alerters, and the alert
// buffer.
//
// Balances are part of the Ledger and are mutated by a run: callers that
// need several independent simulations build a fresh Ledger for each.
type Ledger struct {
	balances    Balances
	sources     []Schedule
	alerters    []Alerter
	actors      []Actor
	alerts      []Alert
	assets      []string
	liabilities []string
	mode        Mode
}

// NewLedger returns an empty ledger in Deferred mode.
func NewLedger() *Ledger {
	return &Ledger{balances: Balances{}}
}

// AddAccount registers an account with an initial balance. Registering
// the same name twice is an error.
func (l *Ledger) AddAccount(name string, initial decimal.Decimal) error {
	if _, ok := l.balances[name]; ok {
		return fmt.Errorf("account %q already exists", name)
	}
	l.balances[name] = initial
	return nil
}

// Balance returns the current balance of the named account, zero when the
// account is unknown.
func (l *Ledger) Balance(name string) decimal.Decimal { return l.balances[name] }

// SetAssets declares which accounts count as assets in Total.
func (l *Ledger) SetAssets(accounts ...string) { l.assets = accounts }

// SetLiabilities declares which accounts count as liabilities in Total.
func (l *Ledger) SetLiabilities(accounts ...string) { l.liabilities = accounts }

// SetMode selects the processing mode for subsequent runs.
func (l *Ledger) SetMode(m Mode) { l.mode = m }

// AddSource registers a recurrence rule bound to a transaction template.
// Sources are realized when Simulate binds them to its start date.
func (l *Ledger) AddSource(r Rule, t Transaction) {
	l.sources = append(l.sources, Schedule{Rule: r, Transaction: t})
}

// AddAlerter registers an alerter, invoked on every processed entry.
func (l *Ledger) AddAlerter(a Alerter) { l.alerters = append(l.alerters, a) }

// AddActor registers an actor, invoked on every processed entry in
// registration order.
func (l *Ledger) AddActor(a Actor) { l.actors = append(l.actors, a) }

// Accounts iterates over account balances in account name order.
func (l *Ledger) Accounts() iter.Seq2[string, decimal.Decimal] {
	return func(yield func(string, decimal.Decimal) bool) {
		for _, name := range slices.Sorted(maps.Keys(l.balances)) {
			if !yield(name, l.balances[name]) {
				return
			}
		}
	}
}

// Alerts returns the alerts recorded so far, in processing order.
func (l *Ledger) Alerts() []Alert { return l.alerts }

// Total returns the sum of asset balances minus the sum of liability
// balances, evaluated against whatever the balances currently hold
// (typically after draining a bounded run).
func (l *Ledger) Total() decimal.Decimal {
	var total decimal.Decimal
	for _, a := range l.assets {
		total = total.Add(l.balances[a])
	}
	for _, a := range l.liabilities {
		total = total.Sub(l.balances[a])
	}
	return total
}

// entriesOf binds a schedule to a start date, realizing its lazy entry
// sequence.
func entriesOf(s Schedule, start date.Date) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for on := range s.Rule.Dates(start) {
			if !yield(Entry{On: on, Transaction: s.Transaction}) {
				return
			}
		}
	}
}

// byDate orders entries chronologically for the merge stream.
func byDate(a, b Entry) bool { return a.On.Before(b.On) }

// Simulate runs the ledger from start and returns the lazy sequence of
// processed entries. A zero end leaves the run unbounded: the caller's
// consumption of the sequence is then the only bound. Otherwise the run
// stops, without processing it, at the first entry dated after end.
//
// Consuming the sequence drives all side effects: balances are updated
// under the double-entry rule (debit account increased by the amount,
// credit account decreased), alerters run and their alerts accumulate,
// and actors run and may inject new sources into the live merge, bound at
// the date of the entry that triggered them.
//
// An alerter or actor error stops the run: the sequence yields the error
// and terminates. Balances keep every entry processed before the failure;
// there is no rollback. Simulate does not reset balances or alerts, so
// consecutive runs compound on the same state.
func (l *Ledger) Simulate(start, end date.Date) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		if l.mode == Cascade && end.IsZero() {
			yield(Entry{}, fmt.Errorf("cascade mode requires a bounded run"))
			return
		}
		stream := NewStream(byDate)
		for _, s := range l.sources {
			stream.Add(entriesOf(s, start))
		}
		defer stream.Close()
		for e := range stream.All() {
			if !end.IsZero() && e.On.After(end) {
				return
			}
			if !l.process(stream, e, end, yield) {
				return
			}
		}
	}
}

// process applies one entry and runs the registered callbacks. It reports
// whether the run should continue.
func (l *Ledger) process(stream *Stream[Entry], e Entry, end date.Date, yield func(Entry, error) bool) bool {
	t := e.Transaction
	l.balances[t.Debit] = l.balances[t.Debit].Add(t.Amount)
	l.balances[t.Credit] = l.balances[t.Credit].Sub(t.Amount)

	if !yield(e, nil) {
		return false
	}

	for _, alerter := range l.alerters {
		a, err := alerter(l.balances, e)
		if err != nil {
			yield(Entry{}, fmt.Errorf("alerter failed on %s: %w", e.On, err))
			return false
		}
		if a != nil {
			l.alerts = append(l.alerts, *a)
		}
	}

	for _, actor := range l.actors {
		s, err := actor(l.balances, e)
		if err != nil {
			yield(Entry{}, fmt.Errorf("actor failed on %s: %w", e.On, err))
			return false
		}
		if s == nil {
			continue
		}
		if l.mode == Cascade {
			// Realize eagerly, bounded by the horizon, and recurse: the
			// cascade happens entirely within the triggering step.
			for ne := range entriesOf(*s, e.On) {
				if ne.On.After(end) {
					break
				}
				if !l.process(stream, ne, end, yield) {
					return false
				}
			}
			continue
		}
		// Deferred: the schedule joins the live merge, bound at the
		// triggering entry's date. Its first occurrence can land anywhere
		// at or after it, interleaved among pending entries.
		stream.Add(entriesOf(*s, e.On))
	}
	return true
}

// Run drains Simulate, returning every processed entry. It is a
// convenience for callers that do not need lazy consumption.
func (l *Ledger) Run(start, end date.Date) ([]Entry, error) {
	var entries []Entry
	for e, err := range l.Simulate(start, end) {
		if err != nil {
			return entries, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
