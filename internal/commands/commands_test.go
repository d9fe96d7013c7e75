package commands

import (
	"errors"
	"testing"

	"moneybags/internal/core"
)

func money(cents int64) core.Money {
	return core.Money{Cents: cents}
}

func TestParseAddCommands(t *testing.T) {
	cases := []struct {
		in   string
		want Command
	}{
		{"add rate 765 hourly", AddRate{Name: "hourly", Rate: money(76500)}},
		{"a r 900 on-call", AddRate{Name: "on-call", Rate: money(90000)}},
		{"add invoice 2025-01-31 1000", AddInvoice{Date: "2025-01-31", Amount: money(100000)}},
		{"a i 2025-01-31 50 -r hourly", AddInvoice{Date: "2025-01-31", Amount: money(5000), RateName: "hourly"}},
		{
			"add invoice 2025-01-31 50 --rate hourly --customer ACME",
			AddInvoice{Date: "2025-01-31", Amount: money(5000), RateName: "hourly", Customer: "ACME"},
		},
		{
			`add invoice 2025-01-31 50 -c "ACME Corp"`,
			AddInvoice{Date: "2025-01-31", Amount: money(5000), Customer: "ACME Corp"},
		},
		{"add cost 2025-01 100.00 insurance", AddCost{Date: "2025-01", Amount: money(10000), Name: "insurance"}},
		{"a c monthly 5.00 wages", AddCost{Date: "monthly", Amount: money(500), Name: "wages"}},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %#v, want %#v", tc.in, got, tc.want)
		}
	}
}

func TestParseListEditDeleteSave(t *testing.T) {
	cases := []struct {
		in   string
		want Command
	}{
		{"list rates", ListRates{}},
		{"l i", ListInvoices{}},
		{"list costs", ListCosts{}},
		{"edit rate hourly", EditRate{Name: "hourly"}},
		{"e i 3", EditInvoice{Index: 3}},
		{"edit cost 0", EditCost{Index: 0}},
		{"delete rate hourly", DeleteRate{Name: "hourly"}},
		{"d i 2", DeleteInvoice{Index: 2}},
		{"delete cost 1", DeleteCost{Index: 1}},
		{"save", Save{}},
		{"s /tmp/other.json", Save{Path: "/tmp/other.json"}},
		{"balance", ShowBalance{}},
		{"b", ShowBalance{}},
		{"help", Help{}},
		{"quit", Quit{}},
		{"exit", Quit{}},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %#v, want %#v", tc.in, got, tc.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"frobnicate",
		"add",
		"add widget 1 2",
		"add rate only-one",
		"add rate notmoney hourly",
		"add invoice 2025-01-31",
		"add invoice 2025-01-31 50 -r",
		"add cost 2025-01 1.00",
		"list",
		"list everything",
		"edit invoice x",
		"delete cost 1 2 3",
		"save a b",
		`add invoice 2025-01-31 50 -c "unterminated`,
	}
	for _, in := range cases {
		if _, err := Parse(in); err == nil {
			t.Fatalf("Parse(%q) expected error", in)
		}
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\t"} {
		_, err := Parse(in)
		if !errors.Is(err, ErrEmptyInput) {
			t.Fatalf("Parse(%q) err = %v, want ErrEmptyInput", in, err)
		}
	}
}
