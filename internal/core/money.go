// Package core provides the exact-arithmetic money representation and the
// domain types of the ledger.
//
// This file contains the Money value type: a signed count of minor currency
// units (cents) with integer-only arithmetic, parsing and formatting. No
// floating point is used anywhere; precision is only lost where a truncation
// rule is defined (division, rate multiplication).
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an immutable amount of minor currency units. Operations return new
// values and never mutate the receiver.
type Money struct {
	Cents int64 `json:"cents"`
}

// ParseMoney parses text of the form "<whole>" or "<whole>.<frac>" into minor
// units. The fractional segment is added verbatim as cents, so it is expected
// to already be two digits wide: ParseMoney("1.5") is 105 cents, not 150.
// That is a compatibility behavior kept from the original tool, not correct
// decimal parsing; review before reusing this parser elsewhere.
//
// A leading minus applies to the whole amount, so ParseMoney("-1.53") is -153
// and parsing is the inverse of String for every minor-unit value.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	whole, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || whole < 0 {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	var frac int64
	if len(parts) == 2 {
		frac, err = strconv.ParseInt(parts[1], 10, 64)
		if err != nil || frac < 0 {
			return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
	}
	// Bad input is never fatal: a value too large for int64 cents is an
	// ordinary parse error, unlike overflow in arithmetic on constructed
	// Money values.
	if whole > (math.MaxInt64-frac)/100 {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	cents := whole*100 + frac
	if neg {
		cents = -cents
	}
	return Money{Cents: cents}, nil
}

// String renders the amount as "<major>.<minor>" with the minor part
// zero-padded to two digits. The sign is carried once, in front of the major
// part, so -1 cent renders as "-0.01".
func (m Money) String() string {
	c := m.Cents
	if c < 0 {
		if c == math.MinInt64 {
			panic("money: overflow formatting minimum int64")
		}
		c = -c
		return fmt.Sprintf("-%d.%02d", c/100, c%100)
	}
	return fmt.Sprintf("%d.%02d", c/100, c%100)
}

// Add returns m + o. Exact; panics on int64 overflow.
func (m Money) Add(o Money) Money {
	return Money{Cents: addChecked(m.Cents, o.Cents)}
}

// Sub returns m - o. Exact; panics on int64 overflow.
func (m Money) Sub(o Money) Money {
	return m.Add(o.Neg())
}

// Neg returns -m.
func (m Money) Neg() Money {
	if m.Cents == math.MinInt64 {
		panic("money: overflow negating minimum int64")
	}
	return Money{Cents: -m.Cents}
}

// Mul multiplies by another Money interpreted as a minor-unit-scaled rate:
// (m * o) / 100, truncated toward zero. This models "hours times rate per hour"
// where the rate is itself stored in cents.
func (m Money) Mul(o Money) Money {
	return Money{Cents: mulChecked(m.Cents, o.Cents) / 100}
}

// MulInt multiplies by an integer scalar. Exact; panics on overflow.
func (m Money) MulInt(n int64) Money {
	return Money{Cents: mulChecked(m.Cents, n)}
}

// Div divides by another Money and scales by 100, truncating toward zero:
// (m * 100) / o. The scaling expresses m as a percentage-like ratio of o; it
// is kept for compatibility with the original tool and its only sanctioned
// caller is the break-even figure. Panics when o is zero, which callers must
// guard against.
func (m Money) Div(o Money) Money {
	if o.Cents == 0 {
		panic("money: division by zero money value")
	}
	return Money{Cents: mulChecked(m.Cents, 100) / o.Cents}
}

// DivInt divides by an integer scalar, truncating toward zero. Panics when n
// is zero.
func (m Money) DivInt(n int64) Money {
	if n == 0 {
		panic("money: division by zero scalar")
	}
	if m.Cents == math.MinInt64 && n == -1 {
		panic("money: overflow dividing minimum int64")
	}
	return Money{Cents: m.Cents / n}
}

// IsZero reports whether the amount is exactly zero minor units.
func (m Money) IsZero() bool {
	return m.Cents == 0
}

// Sum folds Add over the values, starting from zero. An empty sequence sums
// to zero.
func Sum(values []Money) Money {
	var total Money
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Overflow in money arithmetic means the ledger has blown far past any
// realistic size, so it is treated as a broken invariant rather than a
// recoverable input error.

func addChecked(a, b int64) int64 {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		panic(fmt.Sprintf("money: int64 overflow in %d + %d", a, b))
	}
	return sum
}

func mulChecked(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a == math.MinInt64 || b == math.MinInt64 {
		panic(fmt.Sprintf("money: int64 overflow in %d * %d", a, b))
	}
	p := a * b
	if p/b != a {
		panic(fmt.Sprintf("money: int64 overflow in %d * %d", a, b))
	}
	return p
}
