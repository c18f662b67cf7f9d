// Package forecast simulates the future state of a double-entry ledger.
//
// A simulation is built from recurrence rules: each rule, bound to a
// transaction template, lazily produces dated entries. The entries of all
// sources are merged into a single time-ordered stream, and the ledger
// consumes that stream, updating account balances as it goes. Registered
// callbacks observe every processed entry: alerters record observations,
// and actors may schedule new sources that are injected into the very
// stream being consumed, so that a processed entry can cause new entries
// to appear later in the same run.
//
// The core functionalities include:
//   - Recurrence rules: once, fixed interval, weekly, monthly and yearly
//     date sequences, optionally windowed to a [begin, end] range.
//   - Ordered merge: a single globally time-ordered lazy stream over many
//     locally ordered sources, supporting live source injection with an
//     explicit late-arrival policy.
//   - Simulation: a pull-based, single-threaded run over a bounded or
//     unbounded horizon, mutating balances under the double-entry rule
//     and accumulating alerts.
//
// Everything is lazy and computed on demand: rules are infinite, memory
// use stays proportional to the number of live sources, and a caller
// bounds a run with an end date or by ceasing to consume the sequence.
//
// This package serves as the foundational logic for the `fcast`
// command-line tool.
package forecast
