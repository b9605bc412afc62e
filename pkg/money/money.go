// Package money implements fixed-point monetary amounts with two fractional
// digits. Amounts are held as integer cents, so sums and line totals are
// exact; the only rounding happens when a driver hands us a float, and that
// rounding is half-even.
package money

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in cents.
type Money int64

// Zero is the zero amount.
const Zero Money = 0

// FromCents builds a Money from an integer number of cents.
func FromCents(cents int64) Money {
	return Money(cents)
}

// Parse reads a decimal string such as "220", "45.5" or "130.00". More than
// two fractional digits, or anything that is not a plain decimal, is an
// error.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("money: empty amount")
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("money: malformed amount %q", s)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("money: more than two fractional digits in %q", s)
	}
	// Both parts must be bare digit runs. ParseInt alone would let a second
	// sign hide inside the fraction ("1.-5") and be read as negative cents.
	if (whole != "" && !isDigits(whole)) || (frac != "" && !isDigits(frac)) {
		return 0, fmt.Errorf("money: malformed amount %q", s)
	}
	if whole == "" {
		whole = "0"
	}
	for frac != "" && len(frac) < 2 {
		frac += "0"
	}
	if frac == "" {
		frac = "00"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("money: malformed amount %q", s)
	}
	cents64, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("money: malformed amount %q", s)
	}

	if units > (math.MaxInt64-cents64)/100 {
		return 0, fmt.Errorf("money: amount %q out of range", s)
	}

	total := units*100 + cents64
	if neg {
		total = -total
	}
	return Money(total), nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 { return int64(m) }

// MulInt multiplies the amount by an integer quantity. Products that do not
// fit in int64 cents are an error rather than a silent wrap.
func (m Money) MulInt(n int64) (Money, error) {
	if m == 0 || n == 0 {
		return Zero, nil
	}
	if int64(m) == math.MinInt64 || n == math.MinInt64 {
		return Zero, fmt.Errorf("money: %s times %d out of range", m, n)
	}
	product := int64(m) * n
	if product/n != int64(m) {
		return Zero, fmt.Errorf("money: %s times %d out of range", m, n)
	}
	return Money(product), nil
}

// Add returns m + other.
func (m Money) Add(other Money) Money { return m + other }

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool { return m > 0 }

// String renders the amount with exactly two fractional digits.
func (m Money) String() string {
	cents := int64(m)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// MarshalJSON renders the amount as a decimal string, e.g. "220.00".
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts either a JSON string ("45.00") or a bare number
// (45.0). Both go through Parse and keep its two-digit restriction.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Scan implements sql.Scanner for DECIMAL(10,2) columns. Drivers hand those
// back as strings or bytes; sqlite may produce a float, which is rounded to
// the nearest cent half-even.
func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = 0
		return nil
	case int64:
		*m = Money(v * 100)
		return nil
	case float64:
		*m = Money(int64(math.RoundToEven(v * 100)))
		return nil
	case []byte:
		parsed, err := Parse(string(v))
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	default:
		return fmt.Errorf("money: cannot scan %T", src)
	}
}

// Value implements driver.Valuer, emitting the decimal string form.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}
