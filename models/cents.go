package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cents is a monetary amount in centavos. Keeping prices in an integer
// minor unit avoids binary floating-point drift when summing cart totals.
type Cents int64

// CentsFromFloat converts a float price (as received in JSON payloads)
// to centavos, rounding half away from zero.
func CentsFromFloat(v float64) Cents {
	return Cents(math.Round(v * 100))
}

// Float returns the amount as a float64 for outbound JSON payloads.
func (c Cents) Float() float64 {
	return float64(c) / 100
}

// String renders the amount in pt-BR currency format, e.g. "R$ 58,90".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%sR$ %d,%02d", sign, v/100, v%100)
}

// MarshalJSON emits the amount as a plain decimal number ("58.90"),
// matching the wire format of the menu and order payloads.
func (c Cents) MarshalJSON() ([]byte, error) {
	v := int64(c)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return []byte(fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)), nil
}

// UnmarshalJSON parses a decimal number token without going through
// float64, so "58.90" is exactly 5890 centavos.
func (c *Cents) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*c = 0
		return nil
	}
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	// Normalize the fraction to exactly two digits. Sub-centavo
	// precision is rejected rather than silently dropped.
	switch {
	case len(frac) == 0:
		frac = "00"
	case len(frac) == 1:
		frac += "0"
	case len(frac) > 2:
		return fmt.Errorf("invalid price %q: more than two decimal places", s)
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", s, err)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", s, err)
	}
	v := w*100 + f
	if neg {
		v = -v
	}
	*c = Cents(v)
	return nil
}
