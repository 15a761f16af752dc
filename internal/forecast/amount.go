package forecast

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a monetary string. Both "1234.56" and the European "1.234,56" are
// accepted, as is a currency symbol before or after the sign. A lone separator followed by
// exactly three digits groups thousands ("1,500" and "1.500" are both 1500). The second
// result is false, and the amount zero, when s is not a number.
func ParseAmount(s string) (decimal.Decimal, bool) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), " ", "")

	sign := ""
	if rest, ok := strings.CutPrefix(clean, "-"); ok {
		sign, clean = "-", rest
	}

	clean = strings.TrimLeft(clean, "$€£")

	if sign == "" {
		if rest, ok := strings.CutPrefix(clean, "-"); ok {
			sign, clean = "-", rest
		}
	}

	if clean == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(sign + normalizeSeparators(clean))
	if err != nil {
		return decimal.Zero, false
	}

	return d, true
}

// normalizeSeparators rewrites an unsigned amount to use "." as the only decimal mark.
func normalizeSeparators(s string) string {
	dots := strings.Count(s, ".")
	commas := strings.Count(s, ",")

	switch {
	case dots > 0 && commas > 0:
		// The right-most separator is the decimal mark; the other one groups thousands.
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			return strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
		}

		return strings.ReplaceAll(s, ",", "")
	case dots > 1:
		return strings.ReplaceAll(s, ".", "")
	case commas > 1:
		return strings.ReplaceAll(s, ",", "")
	case dots == 1:
		if groupsThousands(s, ".") {
			return strings.ReplaceAll(s, ".", "")
		}

		return s
	case commas == 1:
		if groupsThousands(s, ",") {
			return strings.ReplaceAll(s, ",", "")
		}

		return strings.ReplaceAll(s, ",", ".")
	}

	return s
}

// groupsThousands reports whether the single sep in s splits a 1-3 digit leading group
// from exactly three digits, as in "1,500" or "12.345".
func groupsThousands(s, sep string) bool {
	head, tail, _ := strings.Cut(s, sep)

	return len(tail) == 3 && len(head) >= 1 && len(head) <= 3 && head[0] != '0'
}

// Display rounds an amount to cents for presentation. Amounts are never rounded before this.
func Display(d decimal.Decimal) string {
	return d.StringFixed(2)
}
