package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// SafeDecimal coerces an arbitrary input value to a decimal. Anything that
// cannot be read as a finite number yields zero. Strings may use a comma as
// decimal separator and carry a currency sign ("€ 1.250,50").
func SafeDecimal(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return x
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero
		}
		return *x
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(x)
	case float32:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat32(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case int32:
		return decimal.NewFromInt32(x)
	case int64:
		return decimal.NewFromInt(x)
	case uint:
		return decimal.NewFromInt(int64(x))
	case uint32:
		return decimal.NewFromInt(int64(x))
	case uint64:
		if x > math.MaxInt64 {
			return decimal.Zero
		}
		return decimal.NewFromInt(int64(x))
	case json.Number:
		return parseNumber(string(x))
	case string:
		return parseNumber(x)
	case fmt.Stringer:
		return parseNumber(x.String())
	default:
		return decimal.Zero
	}
}

// SafeAmount is SafeDecimal clamped at zero
func SafeAmount(v any) decimal.Decimal {
	return nonNegative(SafeDecimal(v))
}

// SafeInt coerces v to a non-negative whole number, truncating fractions
func SafeInt(v any) int {
	d := SafeAmount(v)
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return math.MaxInt32
	}
	return int(d.IntPart())
}

// SafeBool reads booleans, numbers and common yes/no words. Anything else is false.
func SafeBool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "yes", "y", "ja", "j", "1", "on":
			return true
		}
		return false
	case nil:
		return false
	default:
		return !SafeDecimal(v).IsZero()
	}
}

// SafeString renders scalars as text; nil becomes the empty string
func SafeString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case fmt.Stringer:
		return x.String()
	case int, int32, int64, uint, uint32, uint64, float32, float64, bool:
		return fmt.Sprint(x)
	default:
		return ""
	}
}

func parseNumber(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimPrefix(s, "€"))
	if len(s) >= 3 && strings.EqualFold(s[:3], "eur") {
		s = s[3:]
	}
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero
	}

	// "1.250,50" and "1250,50" are Dutch notation; "1,250.50" is English
	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
