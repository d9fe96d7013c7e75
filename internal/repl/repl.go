// Package repl runs the line-oriented interactive prompt. Each line is
// parsed into a typed command and dispatched against the ledger service;
// malformed input is reported and the prompt continues. The same dispatch
// path serves one-shot command-line invocation.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"

	"moneybags/internal/commands"
	"moneybags/internal/core"
	"moneybags/internal/editor"
	"moneybags/internal/services"
)

const prompt = "moneybags> "

type REPL struct {
	svc *services.LedgerService
	ed  *editor.Editor
	out io.Writer
}

func New(svc *services.LedgerService, in io.Reader, out io.Writer) *REPL {
	return &REPL{
		svc: svc,
		ed:  editor.New(in, out),
		out: out,
	}
}

// Run reads and executes commands until quit or end of input.
func (r *REPL) Run(ctx context.Context) error {
	for {
		line, err := r.ed.ReadLine(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		cmd, err := commands.Parse(line)
		if errors.Is(err, commands.ErrEmptyInput) {
			continue
		}
		if err != nil {
			fmt.Fprintln(r.out, err)
			continue
		}

		quit, err := r.Execute(ctx, cmd)
		if err != nil {
			fmt.Fprintln(r.out, err)
		}
		if quit {
			return nil
		}
	}
}

// Execute dispatches a single command. The returned bool reports whether the
// session should end.
func (r *REPL) Execute(ctx context.Context, cmd commands.Command) (bool, error) {
	switch c := cmd.(type) {
	case commands.AddRate:
		return false, r.svc.AddRate(ctx, c.Name, c.Rate)

	case commands.AddInvoice:
		inv, err := r.svc.AddInvoice(ctx, c.Date, c.Amount, c.RateName, c.Customer)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(r.out, inv)
		return false, nil

	case commands.AddCost:
		added, err := r.svc.AddCost(ctx, c.Date, c.Amount, c.Name)
		if err != nil {
			return false, err
		}
		for _, cost := range added {
			fmt.Fprintln(r.out, cost)
		}
		return false, nil

	case commands.ListRates:
		for line := range r.svc.ListRates() {
			fmt.Fprintln(r.out, line)
		}
		return false, nil

	case commands.ListInvoices:
		for line := range r.svc.ListInvoices() {
			fmt.Fprintln(r.out, line)
		}
		return false, nil

	case commands.ListCosts:
		for line := range r.svc.ListCosts() {
			fmt.Fprintln(r.out, line)
		}
		return false, nil

	case commands.EditRate:
		return false, r.svc.EditRate(ctx, c.Name, r.ed.EditRate)

	case commands.EditInvoice:
		return false, r.svc.EditInvoice(ctx, c.Index, func(inv *core.Invoice) error {
			return r.ed.EditInvoice(inv, r.svc.Rates())
		})

	case commands.EditCost:
		return false, r.svc.EditCost(ctx, c.Index, r.ed.EditCost)

	case commands.DeleteRate:
		return false, r.svc.DeleteRate(ctx, c.Name)

	case commands.DeleteInvoice:
		return false, r.svc.DeleteInvoice(ctx, c.Index)

	case commands.DeleteCost:
		return false, r.svc.DeleteCost(ctx, c.Index)

	case commands.Save:
		if err := r.svc.Save(ctx, c.Path); err != nil {
			return false, err
		}
		fmt.Fprintln(r.out, "saved")
		return false, nil

	case commands.ShowBalance:
		r.printBalance(r.svc.Balance())
		return false, nil

	case commands.Help:
		fmt.Fprintln(r.out, commands.Usage())
		return false, nil

	case commands.Quit:
		return true, nil

	default:
		return false, fmt.Errorf("unhandled command %T", cmd)
	}
}

func (r *REPL) printBalance(b core.Balance) {
	fmt.Fprintf(r.out, "Costs: %s\n", b.Costs)
	fmt.Fprintf(r.out, "Invoices: %s\n", b.Invoices)
	fmt.Fprintf(r.out, "Total: %s\n", b.Total)
	fmt.Fprintf(r.out, "Average invoice: %s\n", b.Average)
	if b.InvoicesToBreakEven != nil {
		fmt.Fprintf(r.out, "Invoices left to break even: %s\n", b.InvoicesToBreakEven)
	}
}
