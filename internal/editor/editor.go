// Package editor mutates ledger entities field by field through re-parsed
// textual input. Each field is prompted with its current value; empty input
// keeps it, malformed input is reported and re-prompted, never fatal.
package editor

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"moneybags/internal/core"
)

// ClearToken clears an optional field (an invoice's captured rate or
// customer label) when entered at its prompt.
const ClearToken = "-"

type Editor struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Editor {
	return &Editor{in: bufio.NewScanner(in), out: out}
}

// EditRate edits the price of a rate in place.
func (e *Editor) EditRate(rate *core.Rate) error {
	amount, err := e.promptMoney("rate", rate.Rate)
	if err != nil {
		return err
	}
	rate.Rate = amount
	return nil
}

// EditInvoice edits an invoice in place. The rate field takes a rate name:
// it re-captures a value copy from the current rate table, so the invoice
// stays pinned to whatever the rate was at the moment of the edit.
func (e *Editor) EditInvoice(inv *core.Invoice, rates map[string]core.Rate) error {
	date, err := e.promptString("date", inv.Date)
	if err != nil {
		return err
	}
	inv.Date = date

	amount, err := e.promptMoney("amount", inv.Amount)
	if err != nil {
		return err
	}
	inv.Amount = amount

	if err := e.promptRate(inv, rates); err != nil {
		return err
	}

	// The displayed placeholder is never a sentinel: only empty input keeps
	// the current label and only "-" clears it, so any other text, including
	// a customer literally named after the placeholder, is a valid value.
	display := inv.Customer
	if display == "" {
		display = "none"
	}
	line, err := e.ReadLine(fmt.Sprintf("customer ('-' clears) [%s]: ", display))
	if err != nil {
		return err
	}
	switch customer := strings.TrimSpace(line); customer {
	case "":
	case ClearToken:
		inv.Customer = ""
	default:
		inv.Customer = customer
	}
	return nil
}

// EditCost edits a cost in place.
func (e *Editor) EditCost(cost *core.Cost) error {
	date, err := e.promptString("date", cost.Date)
	if err != nil {
		return err
	}
	cost.Date = date

	amount, err := e.promptMoney("amount", cost.Amount)
	if err != nil {
		return err
	}
	cost.Amount = amount

	name, err := e.promptString("name", cost.Name)
	if err != nil {
		return err
	}
	cost.Name = name
	return nil
}

func (e *Editor) promptRate(inv *core.Invoice, rates map[string]core.Rate) error {
	display := "none"
	if inv.Rate != nil {
		display = inv.Rate.Rate.String()
	}
	for {
		line, err := e.ReadLine(fmt.Sprintf("rate name ('-' clears) [%s]: ", display))
		if err != nil {
			return err
		}
		input := strings.TrimSpace(line)
		switch input {
		case "":
			return nil
		case ClearToken:
			inv.Rate = nil
			return nil
		}
		rate, ok := rates[input]
		if !ok {
			fmt.Fprintf(e.out, "rate %q not found\n", input)
			continue
		}
		captured := rate
		inv.Rate = &captured
		return nil
	}
}

// ReadLine prints the prompt and reads one line of input. Both the field
// prompts and the surrounding REPL read through this, so the editor and the
// command loop share a single input buffer. Returns io.EOF when the input is
// exhausted.
func (e *Editor) ReadLine(prompt string) (string, error) {
	fmt.Fprint(e.out, prompt)
	if !e.in.Scan() {
		if err := e.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return e.in.Text(), nil
}

// promptString asks for a field value; empty input keeps the current value.
func (e *Editor) promptString(field, current string) (string, error) {
	line, err := e.ReadLine(fmt.Sprintf("%s [%s]: ", field, current))
	if err != nil {
		return "", err
	}
	input := strings.TrimSpace(line)
	if input == "" {
		return current, nil
	}
	return input, nil
}

// promptMoney asks for a money value until it parses; empty input keeps the
// current value.
func (e *Editor) promptMoney(field string, current core.Money) (core.Money, error) {
	for {
		input, err := e.promptString(field, current.String())
		if err != nil {
			return core.Money{}, err
		}
		if input == current.String() {
			return current, nil
		}
		amount, err := core.ParseMoney(input)
		if err != nil {
			fmt.Fprintf(e.out, "%v\n", err)
			continue
		}
		return amount, nil
	}
}
