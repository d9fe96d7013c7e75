// Package services orchestrates ledger operations between the core domain
// and the snapshot store. It holds the single in-memory ledger for the
// lifetime of a session: loaded once, mutated by command handlers, persisted
// on save (or after every mutation with autosave).
package services

import (
	"context"
	"fmt"
	"iter"

	"moneybags/internal/core"
	"moneybags/internal/log"
	"moneybags/internal/store"
)

type LedgerService struct {
	ledger        *core.Ledger
	store         store.Store
	logger        *log.Logger
	referenceYear int
	autosave      bool
}

// Options tunes service behavior.
type Options struct {
	// ReferenceYear dates "monthly" cost expansions.
	ReferenceYear int
	// Autosave persists the snapshot after every successful mutation.
	Autosave bool
}

// NewLedgerService loads the snapshot from the store and returns a service
// bound to it.
func NewLedgerService(ctx context.Context, st store.Store, logger *log.Logger, opts Options) (*LedgerService, error) {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	ledger, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	return &LedgerService{
		ledger:        ledger,
		store:         st,
		logger:        logger.WithComponent("ledger"),
		referenceYear: opts.ReferenceYear,
		autosave:      opts.Autosave,
	}, nil
}

// AddRate stores a named hourly rate.
func (s *LedgerService) AddRate(ctx context.Context, name string, rate core.Money) error {
	if err := s.ledger.AddRate(name, rate); err != nil {
		return err
	}
	s.logger.Info("Rate added", "name", name, "rate", rate.String())
	return s.maybeSave(ctx)
}

// AddInvoice appends an invoice. An unknown rate name is returned to the
// caller as core.ErrRateNotFound with the ledger untouched.
func (s *LedgerService) AddInvoice(ctx context.Context, date string, amount core.Money, rateName, customer string) (core.Invoice, error) {
	inv, err := s.ledger.AddInvoice(date, amount, rateName, customer)
	if err != nil {
		return core.Invoice{}, err
	}
	s.logger.Info("Invoice added",
		"date", date,
		"amount", amount.String(),
		"effective", inv.Effective().String(),
		"rate", rateName)
	return inv, s.maybeSave(ctx)
}

// AddCost appends a cost, expanding the "monthly" date token across the
// reference year. Returns the costs actually appended.
func (s *LedgerService) AddCost(ctx context.Context, date string, amount core.Money, name string) ([]core.Cost, error) {
	added := s.ledger.AddCost(date, amount, name, s.referenceYear)
	s.logger.Info("Cost added",
		"date", date,
		"amount", amount.String(),
		"name", name,
		"entries", len(added))
	return added, s.maybeSave(ctx)
}

// EditRate applies the edit function to the named rate.
func (s *LedgerService) EditRate(ctx context.Context, name string, edit func(*core.Rate) error) error {
	rate, ok := s.ledger.Rates[name]
	if !ok {
		return fmt.Errorf("%w: %q", core.ErrRateNotFound, name)
	}
	if err := edit(&rate); err != nil {
		return err
	}
	s.ledger.Rates[name] = rate
	s.logger.Info("Rate edited", "name", name, "rate", rate.Rate.String())
	return s.maybeSave(ctx)
}

// EditInvoice applies the edit function to the invoice at the given index.
func (s *LedgerService) EditInvoice(ctx context.Context, index int, edit func(*core.Invoice) error) error {
	inv, err := s.ledger.Invoice(index)
	if err != nil {
		return err
	}
	if err := edit(inv); err != nil {
		return err
	}
	s.logger.Info("Invoice edited", "index", index)
	return s.maybeSave(ctx)
}

// EditCost applies the edit function to the cost at the given index.
func (s *LedgerService) EditCost(ctx context.Context, index int, edit func(*core.Cost) error) error {
	cost, err := s.ledger.Cost(index)
	if err != nil {
		return err
	}
	if err := edit(cost); err != nil {
		return err
	}
	s.logger.Info("Cost edited", "index", index)
	return s.maybeSave(ctx)
}

// DeleteRate removes the named rate.
func (s *LedgerService) DeleteRate(ctx context.Context, name string) error {
	if err := s.ledger.DeleteRate(name); err != nil {
		return err
	}
	s.logger.Info("Rate deleted", "name", name)
	return s.maybeSave(ctx)
}

// DeleteInvoice removes the invoice at the given index; later indices shift
// down by one.
func (s *LedgerService) DeleteInvoice(ctx context.Context, index int) error {
	if err := s.ledger.DeleteInvoice(index); err != nil {
		return err
	}
	s.logger.Info("Invoice deleted", "index", index)
	return s.maybeSave(ctx)
}

// DeleteCost removes the cost at the given index; later indices shift down
// by one.
func (s *LedgerService) DeleteCost(ctx context.Context, index int) error {
	if err := s.ledger.DeleteCost(index); err != nil {
		return err
	}
	s.logger.Info("Cost deleted", "index", index)
	return s.maybeSave(ctx)
}

// ListRates yields rate display lines sorted by name.
func (s *LedgerService) ListRates() iter.Seq[string] {
	return s.ledger.ListRates()
}

// ListInvoices yields index-prefixed invoice display lines in ledger order.
func (s *LedgerService) ListInvoices() iter.Seq[string] {
	return s.ledger.ListInvoices()
}

// ListCosts yields index-prefixed cost display lines in ledger order.
func (s *LedgerService) ListCosts() iter.Seq[string] {
	return s.ledger.ListCosts()
}

// Rates exposes the current rate table for rate-name lookups during edits.
func (s *LedgerService) Rates() map[string]core.Rate {
	return s.ledger.Rates
}

// Balance reports the costs-versus-invoicing figures.
func (s *LedgerService) Balance() core.Balance {
	return s.ledger.ComputeBalance()
}

// Save persists the snapshot. A non-empty path writes a JSON snapshot there
// instead of the session store.
func (s *LedgerService) Save(ctx context.Context, path string) error {
	if path != "" {
		fs, err := store.NewFileStore(path)
		if err != nil {
			return err
		}
		if err := fs.Save(ctx, s.ledger); err != nil {
			return err
		}
		s.logger.Info("Ledger saved", "path", fs.Path())
		return nil
	}
	if err := s.store.Save(ctx, s.ledger); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	s.logger.Debug("Ledger saved")
	return nil
}

func (s *LedgerService) maybeSave(ctx context.Context) error {
	if !s.autosave {
		return nil
	}
	return s.Save(ctx, "")
}
