package core

import (
	"errors"
	"fmt"
	"iter"
	"sort"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrRateNotFound    = errors.New("rate not found")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrEmptyName       = errors.New("empty name")
)

// MonthlyToken marks a cost date that expands into one cost per month of the
// reference year at creation time.
const MonthlyToken = "monthly"

type (
	// Rate is a named hourly price. The name lives in the ledger's rate map;
	// the value only carries the price itself.
	Rate struct {
		Rate Money `json:"rate"`
	}

	// Invoice is a dated billing entry. When a rate is attached, Amount is a
	// quantity (hours) and the effective value is Amount * Rate; otherwise
	// Amount is a flat sum. The rate is a value copy captured at creation,
	// so later edits to the rate table never change past invoices.
	Invoice struct {
		Date     string `json:"date"`
		Amount   Money  `json:"amount"`
		Rate     *Rate  `json:"rate,omitempty"`
		Customer string `json:"customer,omitempty"`
	}

	// Cost is a dated expense entry.
	Cost struct {
		Date   string `json:"date"`
		Amount Money  `json:"amount"`
		Name   string `json:"name"`
	}

	// Ledger is the aggregate root and the unit of persistence. Invoices and
	// costs keep insertion order; edit and delete address them by positional
	// index, so indices shift when earlier entries are removed. All contained
	// values are exclusively owned by the ledger.
	Ledger struct {
		Invoices []Invoice       `json:"invoices"`
		Rates    map[string]Rate `json:"rates"`
		Costs    []Cost          `json:"costs"`
	}
)

// NewLedger returns an empty ledger ready for use.
func NewLedger() *Ledger {
	return &Ledger{Rates: make(map[string]Rate)}
}

// Clone returns a deep copy of the ledger. Captured rates are re-copied so
// the clone shares no memory with the original.
func (l *Ledger) Clone() *Ledger {
	c := NewLedger()
	c.Invoices = make([]Invoice, len(l.Invoices))
	for i, inv := range l.Invoices {
		if inv.Rate != nil {
			captured := *inv.Rate
			inv.Rate = &captured
		}
		c.Invoices[i] = inv
	}
	c.Costs = append(c.Costs, l.Costs...)
	for name, rate := range l.Rates {
		c.Rates[name] = rate
	}
	return c
}

// Effective is the value the invoice counts toward income: Amount * Rate when
// a rate is captured, the flat Amount otherwise.
func (i Invoice) Effective() Money {
	if i.Rate != nil {
		return i.Amount.Mul(i.Rate.Rate)
	}
	return i.Amount
}

// String renders "<date>: <effective>", extended with " (<amount> * <rate>)"
// when a rate is captured and " (<customer>)" when a customer label exists.
func (i Invoice) String() string {
	s := fmt.Sprintf("%s: %s", i.Date, i.Effective())
	if i.Rate != nil {
		s += fmt.Sprintf(" (%s * %s)", i.Amount, i.Rate.Rate)
	}
	if i.Customer != "" {
		s += fmt.Sprintf(" (%s)", i.Customer)
	}
	return s
}

// String renders "<date> <amount> <name>".
func (c Cost) String() string {
	return fmt.Sprintf("%s %s %s", c.Date, c.Amount, c.Name)
}

// AddRate stores a rate under the given name, replacing any previous rate
// with that name.
func (l *Ledger) AddRate(name string, rate Money) error {
	if name == "" {
		return ErrEmptyName
	}
	if l.Rates == nil {
		l.Rates = make(map[string]Rate)
	}
	l.Rates[name] = Rate{Rate: rate}
	return nil
}

// AddInvoice appends a new invoice. When rateName is non-empty the named rate
// is captured by value into the invoice; an unknown name leaves the ledger
// unmodified and returns ErrRateNotFound, which callers treat as a non-fatal
// user-visible condition.
func (l *Ledger) AddInvoice(date string, amount Money, rateName, customer string) (Invoice, error) {
	inv := Invoice{Date: date, Amount: amount, Customer: customer}
	if rateName != "" {
		rate, ok := l.Rates[rateName]
		if !ok {
			return Invoice{}, fmt.Errorf("%w: %q", ErrRateNotFound, rateName)
		}
		captured := rate
		inv.Rate = &captured
	}
	l.Invoices = append(l.Invoices, inv)
	return inv, nil
}

// AddCost appends a new cost. The literal date token "monthly" expands, once
// and at creation time, into twelve costs dated across the reference year.
// Returns the costs actually appended.
func (l *Ledger) AddCost(date string, amount Money, name string, referenceYear int) []Cost {
	if date == MonthlyToken {
		expanded := ExpandMonthlyCost(amount, name, referenceYear)
		l.Costs = append(l.Costs, expanded...)
		return expanded
	}
	cost := Cost{Date: date, Amount: amount, Name: name}
	l.Costs = append(l.Costs, cost)
	return []Cost{cost}
}

// ExpandMonthlyCost produces one cost per month 1-12 of the reference year,
// each with the same amount and name and a zero-padded "YYYY-MM" date.
func ExpandMonthlyCost(amount Money, name string, referenceYear int) []Cost {
	costs := make([]Cost, 0, 12)
	for month := 1; month <= 12; month++ {
		costs = append(costs, Cost{
			Date:   fmt.Sprintf("%04d-%02d", referenceYear, month),
			Amount: amount,
			Name:   name,
		})
	}
	return costs
}

// DeleteRate removes the named rate. Invoices that captured it keep their
// copy and stay valid.
func (l *Ledger) DeleteRate(name string) error {
	if _, ok := l.Rates[name]; !ok {
		return fmt.Errorf("%w: %q", ErrRateNotFound, name)
	}
	delete(l.Rates, name)
	return nil
}

// DeleteInvoice removes the invoice at the given position. Later invoices
// shift down by one.
func (l *Ledger) DeleteInvoice(index int) error {
	if index < 0 || index >= len(l.Invoices) {
		return fmt.Errorf("%w: invoice %d", ErrIndexOutOfRange, index)
	}
	l.Invoices = append(l.Invoices[:index], l.Invoices[index+1:]...)
	return nil
}

// DeleteCost removes the cost at the given position. Later costs shift down
// by one.
func (l *Ledger) DeleteCost(index int) error {
	if index < 0 || index >= len(l.Costs) {
		return fmt.Errorf("%w: cost %d", ErrIndexOutOfRange, index)
	}
	l.Costs = append(l.Costs[:index], l.Costs[index+1:]...)
	return nil
}

// Invoice returns a pointer to the invoice at the given position for in-place
// field edits.
func (l *Ledger) Invoice(index int) (*Invoice, error) {
	if index < 0 || index >= len(l.Invoices) {
		return nil, fmt.Errorf("%w: invoice %d", ErrIndexOutOfRange, index)
	}
	return &l.Invoices[index], nil
}

// Cost returns a pointer to the cost at the given position for in-place field
// edits.
func (l *Ledger) Cost(index int) (*Cost, error) {
	if index < 0 || index >= len(l.Costs) {
		return nil, fmt.Errorf("%w: cost %d", ErrIndexOutOfRange, index)
	}
	return &l.Costs[index], nil
}

// RateNames returns the rate names in sorted order. The map itself has no
// insertion order to preserve.
func (l *Ledger) RateNames() []string {
	names := make([]string, 0, len(l.Rates))
	for name := range l.Rates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListRates yields one "<name>: <rate>" line per rate, sorted by name. The
// sequence is finite and can be ranged over more than once.
func (l *Ledger) ListRates() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range l.RateNames() {
			if !yield(fmt.Sprintf("%s: %s", name, l.Rates[name].Rate)) {
				return
			}
		}
	}
}

// ListInvoices yields one display line per invoice in ledger order, prefixed
// with the positional index used by edit and delete.
func (l *Ledger) ListInvoices() iter.Seq[string] {
	return func(yield func(string) bool) {
		for i, inv := range l.Invoices {
			if !yield(fmt.Sprintf("%d: %s", i, inv)) {
				return
			}
		}
	}
}

// ListCosts yields one display line per cost in ledger order, prefixed with
// the positional index used by edit and delete.
func (l *Ledger) ListCosts() iter.Seq[string] {
	return func(yield func(string) bool) {
		for i, cost := range l.Costs {
			if !yield(fmt.Sprintf("%d: %s", i, cost)) {
				return
			}
		}
	}
}
