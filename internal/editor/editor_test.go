package editor

import (
	"bytes"
	"strings"
	"testing"

	"moneybags/internal/core"
)

func TestEditRate(t *testing.T) {
	var out bytes.Buffer
	e := New(strings.NewReader("900\n"), &out)

	rate := core.Rate{Rate: core.Money{Cents: 76500}}
	if err := e.EditRate(&rate); err != nil {
		t.Fatalf("EditRate: %v", err)
	}
	if rate.Rate.Cents != 90000 {
		t.Fatalf("rate = %d, want 90000", rate.Rate.Cents)
	}
	if !strings.Contains(out.String(), "rate [765.00]: ") {
		t.Fatalf("prompt missing current value: %q", out.String())
	}
}

func TestEditRateKeepsCurrentOnEmptyInput(t *testing.T) {
	e := New(strings.NewReader("\n"), &bytes.Buffer{})

	rate := core.Rate{Rate: core.Money{Cents: 76500}}
	if err := e.EditRate(&rate); err != nil {
		t.Fatalf("EditRate: %v", err)
	}
	if rate.Rate.Cents != 76500 {
		t.Fatalf("rate = %d, want unchanged 76500", rate.Rate.Cents)
	}
}

func TestEditRateRepromptsOnBadInput(t *testing.T) {
	var out bytes.Buffer
	e := New(strings.NewReader("notmoney\n12.50\n"), &out)

	rate := core.Rate{}
	if err := e.EditRate(&rate); err != nil {
		t.Fatalf("EditRate: %v", err)
	}
	if rate.Rate.Cents != 1250 {
		t.Fatalf("rate = %d, want 1250", rate.Rate.Cents)
	}
	if !strings.Contains(out.String(), "invalid amount") {
		t.Fatalf("parse failure not reported: %q", out.String())
	}
}

func TestEditInvoiceAllFields(t *testing.T) {
	rates := map[string]core.Rate{"hourly": {Rate: core.Money{Cents: 76500}}}
	// date, amount, rate name, customer
	input := "2025-03-01\n8\nhourly\nACME\n"
	e := New(strings.NewReader(input), &bytes.Buffer{})

	inv := core.Invoice{Date: "2025-01-31", Amount: core.Money{Cents: 100000}}
	if err := e.EditInvoice(&inv, rates); err != nil {
		t.Fatalf("EditInvoice: %v", err)
	}
	if inv.Date != "2025-03-01" {
		t.Fatalf("date = %q", inv.Date)
	}
	if inv.Amount.Cents != 800 {
		t.Fatalf("amount = %d, want 800", inv.Amount.Cents)
	}
	if inv.Rate == nil || inv.Rate.Rate.Cents != 76500 {
		t.Fatalf("rate = %+v, want captured 76500", inv.Rate)
	}
	if inv.Customer != "ACME" {
		t.Fatalf("customer = %q", inv.Customer)
	}
}

func TestEditInvoiceClearsOptionalFields(t *testing.T) {
	captured := core.Rate{Rate: core.Money{Cents: 76500}}
	inv := core.Invoice{
		Date:     "2025-01-31",
		Amount:   core.Money{Cents: 5000},
		Rate:     &captured,
		Customer: "ACME",
	}
	// keep date, keep amount, clear rate, clear customer
	e := New(strings.NewReader("\n\n-\n-\n"), &bytes.Buffer{})

	if err := e.EditInvoice(&inv, nil); err != nil {
		t.Fatalf("EditInvoice: %v", err)
	}
	if inv.Rate != nil {
		t.Fatalf("rate not cleared: %+v", inv.Rate)
	}
	if inv.Customer != "" {
		t.Fatalf("customer not cleared: %q", inv.Customer)
	}
	if inv.Date != "2025-01-31" || inv.Amount.Cents != 5000 {
		t.Fatalf("kept fields changed: %+v", inv)
	}
}

func TestEditInvoiceUnknownRateReprompts(t *testing.T) {
	rates := map[string]core.Rate{"hourly": {Rate: core.Money{Cents: 76500}}}
	var out bytes.Buffer
	// keep date, keep amount, bad rate name then good one, keep customer
	e := New(strings.NewReader("\n\nmissing\nhourly\n\n"), &out)

	inv := core.Invoice{Date: "2025-01-31", Amount: core.Money{Cents: 5000}}
	if err := e.EditInvoice(&inv, rates); err != nil {
		t.Fatalf("EditInvoice: %v", err)
	}
	if inv.Rate == nil || inv.Rate.Rate.Cents != 76500 {
		t.Fatalf("rate = %+v, want captured 76500", inv.Rate)
	}
	if !strings.Contains(out.String(), `rate "missing" not found`) {
		t.Fatalf("unknown rate not reported: %q", out.String())
	}
}

func TestEditInvoiceCustomerPlaceholderIsNotASentinel(t *testing.T) {
	// keep date, keep amount, keep rate, set customer to the literal text
	// shown as the empty-field placeholder
	e := New(strings.NewReader("\n\n\nnone\n"), &bytes.Buffer{})

	inv := core.Invoice{Date: "2025-01-31", Amount: core.Money{Cents: 5000}}
	if err := e.EditInvoice(&inv, nil); err != nil {
		t.Fatalf("EditInvoice: %v", err)
	}
	if inv.Customer != "none" {
		t.Fatalf("customer = %q, want literal %q", inv.Customer, "none")
	}
}

func TestEditInvoiceKeepsCustomerOnEmptyInput(t *testing.T) {
	inv := core.Invoice{Date: "2025-01-31", Amount: core.Money{Cents: 5000}, Customer: "ACME"}
	// keep every field
	e := New(strings.NewReader("\n\n\n\n"), &bytes.Buffer{})

	if err := e.EditInvoice(&inv, nil); err != nil {
		t.Fatalf("EditInvoice: %v", err)
	}
	if inv.Customer != "ACME" {
		t.Fatalf("customer = %q, want unchanged ACME", inv.Customer)
	}
}

func TestEditCost(t *testing.T) {
	input := "2025-06\n7.50\ncoffee\n"
	e := New(strings.NewReader(input), &bytes.Buffer{})

	cost := core.Cost{Date: "2025-01", Amount: core.Money{Cents: 10000}, Name: "insurance"}
	if err := e.EditCost(&cost); err != nil {
		t.Fatalf("EditCost: %v", err)
	}
	want := core.Cost{Date: "2025-06", Amount: core.Money{Cents: 750}, Name: "coffee"}
	if cost != want {
		t.Fatalf("cost = %+v, want %+v", cost, want)
	}
}

func TestEditorStopsOnEOF(t *testing.T) {
	e := New(strings.NewReader(""), &bytes.Buffer{})
	rate := core.Rate{}
	if err := e.EditRate(&rate); err == nil {
		t.Fatal("expected error on exhausted input")
	}
}
