// Package commands turns textual input into typed ledger commands. The same
// grammar serves both one-shot command-line invocation and REPL lines:
//
//	add|a    rate|r <rate> <name>
//	         invoice|i <date> <amount> [-r|--rate <name>] [-c|--customer <label>]
//	         cost|c <date> <amount> <name>
//	list|l   rates|r | invoices|i | costs|c
//	edit|e   rate|r <name> | invoice|i <index> | cost|c <index>
//	delete|d rate|r <name> | invoice|i <index> | cost|c <index>
//	save|s   [path]
//	balance|b
//	help|h, quit|q|exit
//
// Amounts are parsed by the core money parser, so its documented quirks
// apply at this boundary too.
package commands

import (
	"errors"
	"fmt"
	"strconv"

	"moneybags/internal/core"
)

var (
	ErrEmptyInput     = errors.New("empty input")
	ErrUnknownCommand = errors.New("unknown command")
)

// Command is a parsed, typed instruction for the ledger.
type Command interface {
	command()
}

type (
	AddRate struct {
		Name string
		Rate core.Money
	}
	AddInvoice struct {
		Date     string
		Amount   core.Money
		RateName string
		Customer string
	}
	AddCost struct {
		Date   string
		Amount core.Money
		Name   string
	}

	ListRates    struct{}
	ListInvoices struct{}
	ListCosts    struct{}

	EditRate    struct{ Name string }
	EditInvoice struct{ Index int }
	EditCost    struct{ Index int }

	DeleteRate    struct{ Name string }
	DeleteInvoice struct{ Index int }
	DeleteCost    struct{ Index int }

	Save struct{ Path string }

	ShowBalance struct{}
	Help        struct{}
	Quit        struct{}
)

func (AddRate) command()       {}
func (AddInvoice) command()    {}
func (AddCost) command()       {}
func (ListRates) command()     {}
func (ListInvoices) command()  {}
func (ListCosts) command()     {}
func (EditRate) command()      {}
func (EditInvoice) command()   {}
func (EditCost) command()      {}
func (DeleteRate) command()    {}
func (DeleteInvoice) command() {}
func (DeleteCost) command()    {}
func (Save) command()          {}
func (ShowBalance) command()   {}
func (Help) command()          {}
func (Quit) command()          {}

// Parse parses a single input line. Blank lines return ErrEmptyInput so the
// caller can re-prompt silently.
func Parse(line string) (Command, error) {
	tokens, err := tokenize(line)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, ErrEmptyInput
	}
	return ParseArgs(tokens)
}

// ParseArgs parses already-split tokens, as delivered on the command line.
func ParseArgs(args []string) (Command, error) {
	if len(args) == 0 {
		return nil, ErrEmptyInput
	}

	verb, rest := args[0], args[1:]
	switch verb {
	case "add", "a":
		return parseAdd(rest)
	case "list", "l":
		return parseList(rest)
	case "edit", "e":
		return parseEdit(rest)
	case "delete", "d":
		return parseDelete(rest)
	case "save", "s":
		if len(rest) > 1 {
			return nil, fmt.Errorf("save takes at most one path argument")
		}
		cmd := Save{}
		if len(rest) == 1 {
			cmd.Path = rest[0]
		}
		return cmd, nil
	case "balance", "b":
		return ShowBalance{}, nil
	case "help", "h":
		return Help{}, nil
	case "quit", "q", "exit":
		return Quit{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, verb)
	}
}

func parseAdd(args []string) (Command, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("add needs a target: rate, invoice or cost")
	}
	target, rest := args[0], args[1:]
	switch target {
	case "rate", "r":
		if len(rest) != 2 {
			return nil, fmt.Errorf("usage: add rate <rate> <name>")
		}
		rate, err := core.ParseMoney(rest[0])
		if err != nil {
			return nil, err
		}
		return AddRate{Rate: rate, Name: rest[1]}, nil
	case "invoice", "i":
		return parseAddInvoice(rest)
	case "cost", "c":
		if len(rest) != 3 {
			return nil, fmt.Errorf("usage: add cost <date> <amount> <name>")
		}
		amount, err := core.ParseMoney(rest[1])
		if err != nil {
			return nil, err
		}
		return AddCost{Date: rest[0], Amount: amount, Name: rest[2]}, nil
	default:
		return nil, fmt.Errorf("%w: add %q", ErrUnknownCommand, target)
	}
}

func parseAddInvoice(args []string) (Command, error) {
	var positional []string
	cmd := AddInvoice{}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-r", "--rate":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("missing value for %s", args[i-1])
			}
			cmd.RateName = args[i]
		case "-c", "--customer":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("missing value for %s", args[i-1])
			}
			cmd.Customer = args[i]
		default:
			positional = append(positional, args[i])
		}
	}
	if len(positional) != 2 {
		return nil, fmt.Errorf("usage: add invoice <date> <amount> [-r rate] [-c customer]")
	}

	amount, err := core.ParseMoney(positional[1])
	if err != nil {
		return nil, err
	}
	cmd.Date = positional[0]
	cmd.Amount = amount
	return cmd, nil
}

func parseList(args []string) (Command, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("usage: list rates|invoices|costs")
	}
	switch args[0] {
	case "rates", "r":
		return ListRates{}, nil
	case "invoices", "i":
		return ListInvoices{}, nil
	case "costs", "c":
		return ListCosts{}, nil
	default:
		return nil, fmt.Errorf("%w: list %q", ErrUnknownCommand, args[0])
	}
}

func parseEdit(args []string) (Command, error) {
	target, arg, err := targetAndArg("edit", args)
	if err != nil {
		return nil, err
	}
	switch target {
	case "rate", "r":
		return EditRate{Name: arg}, nil
	case "invoice", "i":
		index, err := parseIndex(arg)
		if err != nil {
			return nil, err
		}
		return EditInvoice{Index: index}, nil
	case "cost", "c":
		index, err := parseIndex(arg)
		if err != nil {
			return nil, err
		}
		return EditCost{Index: index}, nil
	default:
		return nil, fmt.Errorf("%w: edit %q", ErrUnknownCommand, target)
	}
}

func parseDelete(args []string) (Command, error) {
	target, arg, err := targetAndArg("delete", args)
	if err != nil {
		return nil, err
	}
	switch target {
	case "rate", "r":
		return DeleteRate{Name: arg}, nil
	case "invoice", "i":
		index, err := parseIndex(arg)
		if err != nil {
			return nil, err
		}
		return DeleteInvoice{Index: index}, nil
	case "cost", "c":
		index, err := parseIndex(arg)
		if err != nil {
			return nil, err
		}
		return DeleteCost{Index: index}, nil
	default:
		return nil, fmt.Errorf("%w: delete %q", ErrUnknownCommand, target)
	}
}

func targetAndArg(verb string, args []string) (string, string, error) {
	if len(args) != 2 {
		return "", "", fmt.Errorf("usage: %s rate <name> | %s invoice <index> | %s cost <index>", verb, verb, verb)
	}
	return args[0], args[1], nil
}

func parseIndex(s string) (int, error) {
	index, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	return index, nil
}

// Usage is the help text printed by the help command.
func Usage() string {
	return `Commands (one-letter aliases in brackets):
  add [a] rate    <rate> <name>
  add [a] invoice <date> <amount> [-r|--rate <name>] [-c|--customer <label>]
  add [a] cost    <date> <amount> <name>   ("monthly" date expands over the year)
  list [l] rates|invoices|costs
  edit [e] rate <name> | invoice <index> | cost <index>
  delete [d] rate <name> | invoice <index> | cost <index>
  save [s] [path]
  balance [b]
  help [h]
  quit [q]`
}

// tokenize splits a line on whitespace, honoring double quotes so customer
// labels can contain spaces.
func tokenize(line string) ([]string, error) {
	var (
		tokens   []string
		current  []rune
		inQuotes bool
		started  bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			started = true
		case r == ' ' || r == '\t':
			if inQuotes {
				current = append(current, r)
				continue
			}
			if started {
				tokens = append(tokens, string(current))
				current = current[:0]
				started = false
			}
		default:
			current = append(current, r)
			started = true
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("unterminated quote")
	}
	if started {
		tokens = append(tokens, string(current))
	}
	return tokens, nil
}
