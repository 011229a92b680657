package promo

import (
	"strconv"
	"strings"
)

// Table maps upper-cased promo codes to a flat discount in rubles.
type Table map[string]int

// Parse reads "CODE:amount" pairs separated by commas. Malformed pairs are skipped.
func Parse(raw string) Table {
	t := Table{}
	for _, pair := range strings.Split(raw, ",") {
		code, amount, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok {
			continue
		}
		code = Normalize(code)
		v, err := strconv.Atoi(strings.TrimSpace(amount))
		if code == "" || err != nil || v < 0 {
			continue
		}
		t[code] = v
	}
	return t
}

func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Discount returns 0 for unknown codes.
func (t Table) Discount(code string) int {
	return t[Normalize(code)]
}
