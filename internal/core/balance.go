package core

// Balance is the costs-versus-invoicing report. InvoicesToBreakEven is nil
// when the average invoice is zero: with nothing to divide by there is no
// meaningful break-even count, and the figure is omitted rather than reported
// as an error or infinity.
type Balance struct {
	Costs               Money  `json:"costs"`
	Invoices            Money  `json:"invoices"`
	Total               Money  `json:"total"`
	Average             Money  `json:"average"`
	InvoicesToBreakEven *Money `json:"invoicesToBreakEven,omitempty"`
}

// SumCosts sums all cost amounts. Empty input yields zero.
func SumCosts(costs []Cost) Money {
	var total Money
	for _, cost := range costs {
		total = total.Add(cost.Amount)
	}
	return total
}

// SumInvoices sums the effective value of each invoice. Empty input yields
// zero.
func SumInvoices(invoices []Invoice) Money {
	var total Money
	for _, inv := range invoices {
		total = total.Add(inv.Effective())
	}
	return total
}

// AverageInvoice returns the truncated mean of the effective invoice values.
// An empty slice averages to zero by convention; the guard exists so the
// zero-invoice case never reaches the scalar division.
func AverageInvoice(invoices []Invoice) Money {
	if len(invoices) == 0 {
		return Money{}
	}
	return SumInvoices(invoices).DivInt(int64(len(invoices)))
}

// ComputeBalance builds the balance report for the ledger. The break-even
// figure is -total / average under the Money-by-Money division rule, computed
// only when the average is nonzero.
func (l *Ledger) ComputeBalance() Balance {
	costs := SumCosts(l.Costs)
	invoices := SumInvoices(l.Invoices)
	average := AverageInvoice(l.Invoices)
	total := invoices.Sub(costs)

	b := Balance{
		Costs:    costs,
		Invoices: invoices,
		Total:    total,
		Average:  average,
	}
	if !average.IsZero() {
		breakEven := total.Neg().Div(average)
		b.InvoicesToBreakEven = &breakEven
	}
	return b
}
