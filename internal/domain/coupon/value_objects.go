package coupon

import "strings"

// NormalizeCode trims the code, collapses internal whitespace and uppercases
// it. Idempotent: NormalizeCode(NormalizeCode(x)) == NormalizeCode(x).
func NormalizeCode(code string) string {
	fields := strings.Fields(code)
	return strings.ToUpper(strings.Join(fields, ""))
}

type Type string

const (
	// TypePercent discounts by value expressed in hundredths of a percent:
	// 1000 means 10.00%.
	TypePercent Type = "PERCENT"
	// TypeFixed discounts by a fixed amount of cents.
	TypeFixed Type = "FIXED"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypePercent, TypeFixed:
		return true
	default:
		return false
	}
}
