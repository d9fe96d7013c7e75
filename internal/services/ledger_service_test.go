package services

import (
	"context"
	"errors"
	"testing"

	"moneybags/internal/core"
	"moneybags/internal/store"
)

func newService(t *testing.T, opts Options) (*LedgerService, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	svc, err := NewLedgerService(context.Background(), mem, nil, opts)
	if err != nil {
		t.Fatalf("NewLedgerService: %v", err)
	}
	return svc, mem
}

func TestAddInvoiceWithRate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, Options{ReferenceYear: 2025})

	if err := svc.AddRate(ctx, "hourly", core.Money{Cents: 76500}); err != nil {
		t.Fatalf("AddRate: %v", err)
	}
	inv, err := svc.AddInvoice(ctx, "2025-01-31", core.Money{Cents: 5000}, "hourly", "")
	if err != nil {
		t.Fatalf("AddInvoice: %v", err)
	}
	if inv.Effective().Cents != 3825000 {
		t.Fatalf("effective = %d, want 3825000", inv.Effective().Cents)
	}

	_, err = svc.AddInvoice(ctx, "2025-01-31", core.Money{Cents: 5000}, "missing", "")
	if !errors.Is(err, core.ErrRateNotFound) {
		t.Fatalf("err = %v, want ErrRateNotFound", err)
	}

	var count int
	for range svc.ListInvoices() {
		count++
	}
	if count != 1 {
		t.Fatalf("invoices = %d, want 1", count)
	}
}

func TestAddCostMonthly(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, Options{ReferenceYear: 2026})

	added, err := svc.AddCost(ctx, core.MonthlyToken, core.Money{Cents: 500}, "wages")
	if err != nil {
		t.Fatalf("AddCost: %v", err)
	}
	if len(added) != 12 {
		t.Fatalf("added = %d costs, want 12", len(added))
	}
	if added[0].Date != "2026-01" || added[11].Date != "2026-12" {
		t.Fatalf("expansion dates = %s .. %s", added[0].Date, added[11].Date)
	}
}

func TestEditRateDoesNotTouchInvoices(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, Options{ReferenceYear: 2025})

	if err := svc.AddRate(ctx, "hourly", core.Money{Cents: 76500}); err != nil {
		t.Fatalf("AddRate: %v", err)
	}
	if _, err := svc.AddInvoice(ctx, "2025-01-31", core.Money{Cents: 5000}, "hourly", ""); err != nil {
		t.Fatalf("AddInvoice: %v", err)
	}

	err := svc.EditRate(ctx, "hourly", func(r *core.Rate) error {
		r.Rate = core.Money{Cents: 90000}
		return nil
	})
	if err != nil {
		t.Fatalf("EditRate: %v", err)
	}
	if got := svc.Rates()["hourly"].Rate.Cents; got != 90000 {
		t.Fatalf("rate = %d, want 90000", got)
	}
	// The invoice keeps its captured copy.
	if got := svc.Balance().Invoices.Cents; got != 3825000 {
		t.Fatalf("invoice sum = %d, want 3825000", got)
	}

	err = svc.EditRate(ctx, "missing", func(r *core.Rate) error { return nil })
	if !errors.Is(err, core.ErrRateNotFound) {
		t.Fatalf("err = %v, want ErrRateNotFound", err)
	}
}

func TestEditAndDeleteByIndex(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, Options{ReferenceYear: 2025})

	if _, err := svc.AddInvoice(ctx, "2025-01-01", core.Money{Cents: 100}, "", ""); err != nil {
		t.Fatalf("AddInvoice: %v", err)
	}
	if _, err := svc.AddInvoice(ctx, "2025-02-01", core.Money{Cents: 200}, "", ""); err != nil {
		t.Fatalf("AddInvoice: %v", err)
	}

	err := svc.EditInvoice(ctx, 1, func(inv *core.Invoice) error {
		inv.Customer = "ACME"
		return nil
	})
	if err != nil {
		t.Fatalf("EditInvoice: %v", err)
	}

	err = svc.EditInvoice(ctx, 9, func(inv *core.Invoice) error { return nil })
	if !errors.Is(err, core.ErrIndexOutOfRange) {
		t.Fatalf("err = %v, want ErrIndexOutOfRange", err)
	}

	if err := svc.DeleteInvoice(ctx, 0); err != nil {
		t.Fatalf("DeleteInvoice: %v", err)
	}
	var lines []string
	for line := range svc.ListInvoices() {
		lines = append(lines, line)
	}
	if len(lines) != 1 || lines[0] != "0: 2025-02-01: 2.00 (ACME)" {
		t.Fatalf("lines = %v", lines)
	}

	if err := svc.DeleteCost(ctx, 0); !errors.Is(err, core.ErrIndexOutOfRange) {
		t.Fatalf("err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestAutosavePersistsEveryMutation(t *testing.T) {
	ctx := context.Background()
	svc, mem := newService(t, Options{ReferenceYear: 2025, Autosave: true})

	if err := svc.AddRate(ctx, "hourly", core.Money{Cents: 76500}); err != nil {
		t.Fatalf("AddRate: %v", err)
	}
	if _, err := svc.AddInvoice(ctx, "2025-01-31", core.Money{Cents: 5000}, "hourly", ""); err != nil {
		t.Fatalf("AddInvoice: %v", err)
	}

	persisted, err := mem.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(persisted.Invoices) != 1 || len(persisted.Rates) != 1 {
		t.Fatalf("persisted = %d invoices, %d rates", len(persisted.Invoices), len(persisted.Rates))
	}
}

func TestSaveOnDemand(t *testing.T) {
	ctx := context.Background()
	svc, mem := newService(t, Options{ReferenceYear: 2025})

	if err := svc.AddRate(ctx, "hourly", core.Money{Cents: 76500}); err != nil {
		t.Fatalf("AddRate: %v", err)
	}

	persisted, err := mem.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(persisted.Rates) != 0 {
		t.Fatal("mutation persisted without save")
	}

	if err := svc.Save(ctx, ""); err != nil {
		t.Fatalf("Save: %v", err)
	}
	persisted, err = mem.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(persisted.Rates) != 1 {
		t.Fatal("save did not persist the snapshot")
	}
}

func TestBalanceReport(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, Options{ReferenceYear: 2025})

	if _, err := svc.AddInvoice(ctx, "2025-01-31", core.Money{Cents: 100000}, "", ""); err != nil {
		t.Fatalf("AddInvoice: %v", err)
	}
	if _, err := svc.AddCost(ctx, "2025-01", core.Money{Cents: 160000}, "rent"); err != nil {
		t.Fatalf("AddCost: %v", err)
	}

	b := svc.Balance()
	if b.Total.Cents != -60000 {
		t.Fatalf("total = %d, want -60000", b.Total.Cents)
	}
	if b.InvoicesToBreakEven == nil || b.InvoicesToBreakEven.Cents != 60 {
		t.Fatalf("break-even = %v, want 60", b.InvoicesToBreakEven)
	}
}
