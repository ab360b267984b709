package collection

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

type kind int

const (
	kindNull kind = iota
	kindBool
	kindInt
	kindFloat
	kindString
	kindCollection
	kindOther
)

// normalize classifies v and widens numbers to int64 or float64.
func normalize(v any) (kind, any) {
	switch val := v.(type) {
	case nil:
		return kindNull, nil
	case bool:
		return kindBool, val
	case string:
		return kindString, val
	case float32:
		return kindFloat, float64(val)
	case float64:
		return kindFloat, val
	case *Collection:
		if val == nil {
			return kindNull, nil
		}
		return kindCollection, val
	case []any, map[string]any:
		c, _ := From(val)
		return kindCollection, c
	}
	if n, ok := toInt64(v); ok {
		return kindInt, n
	}
	return kindOther, v
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), uint64(n) <= math.MaxInt64
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), n <= math.MaxInt64
	}
	return 0, false
}

// StrictEqual reports whether a and b have the same type family and the same value.
// Integers of any width compare equal to each other, as do floats; collections must hold the same
// keys in the same order with strictly equal values.
func StrictEqual(a, b any) bool {
	ka, va := normalize(a)
	kb, vb := normalize(b)
	if ka != kb {
		return false
	}
	switch ka {
	case kindNull:
		return true
	case kindCollection:
		return va.(*Collection).Equal(vb.(*Collection))
	case kindOther:
		return reflect.DeepEqual(va, vb)
	}
	return va == vb
}

// LooseEqual reports whether a == b under loose comparison: null and booleans compare by
// truthiness, numbers and numeric strings compare numerically, other strings compare bytewise, and
// collections compare as unordered sets of loosely equal entries.
func LooseEqual(a, b any) bool {
	ka, va := normalize(a)
	kb, vb := normalize(b)

	switch {
	case ka == kindNull && kb == kindNull:
		return true
	case ka == kindNull && kb == kindString:
		return vb.(string) == ""
	case kb == kindNull && ka == kindString:
		return va.(string) == ""
	case ka == kindNull || kb == kindNull || ka == kindBool || kb == kindBool:
		return Truthy(va) == Truthy(vb)
	case ka == kindCollection && kb == kindCollection:
		return looseEqualCollections(va.(*Collection), vb.(*Collection))
	case ka == kindCollection || kb == kindCollection:
		return false
	case ka == kindOther || kb == kindOther:
		return reflect.DeepEqual(va, vb)
	case ka == kindString && kb == kindString:
		sa, sb := va.(string), vb.(string)
		fa, okA := numericString(sa)
		fb, okB := numericString(sb)
		if okA && okB {
			return fa == fb
		}
		return sa == sb
	case ka == kindString || kb == kindString:
		str, num := va, vb
		if kb == kindString {
			str, num = vb, va
		}
		if f, ok := numericString(str.(string)); ok {
			return f == NumberOf(num)
		}
		return str.(string) == StringOf(num)
	case ka == kindInt && kb == kindInt:
		return va.(int64) == vb.(int64)
	}
	return NumberOf(va) == NumberOf(vb)
}

func looseEqualCollections(a, b *Collection) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, p := range a.Pairs() {
		other, ok := b.Get(p.Key)
		if !ok || !LooseEqual(p.Value, other) {
			return false
		}
	}
	return true
}

// Truthy converts v to a boolean: nil, false, 0, 0.0, "", "0" and empty collections are false.
func Truthy(v any) bool {
	k, val := normalize(v)
	switch k {
	case kindNull:
		return false
	case kindBool:
		return val.(bool)
	case kindInt:
		return val.(int64) != 0
	case kindFloat:
		return val.(float64) != 0
	case kindString:
		s := val.(string)
		return s != "" && s != "0"
	case kindCollection:
		return val.(*Collection).Len() > 0
	}
	return !reflect.ValueOf(val).IsZero()
}

// StringOf converts v to its string form as used by string comparisons.
func StringOf(v any) string {
	k, val := normalize(v)
	switch k {
	case kindNull:
		return ""
	case kindBool:
		if val.(bool) {
			return "1"
		}
		return ""
	case kindInt:
		return strconv.FormatInt(val.(int64), 10)
	case kindFloat:
		return formatFloat(val.(float64))
	case kindString:
		return val.(string)
	case kindCollection:
		return "Array"
	}
	if s, ok := val.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(val)
}

// NumberOf converts v to a number. Strings contribute their leading numeric part, so "12abc" is 12
// and "abc" is 0.
func NumberOf(v any) float64 {
	k, val := normalize(v)
	switch k {
	case kindBool:
		if val.(bool) {
			return 1
		}
		return 0
	case kindInt:
		return float64(val.(int64))
	case kindFloat:
		return val.(float64)
	case kindString:
		return leadingNumber(val.(string))
	case kindCollection:
		if val.(*Collection).Len() > 0 {
			return 1
		}
	}
	return 0
}

const whitespace = " \t\n\r\v\f"

// numericString reports whether s is a number with optional surrounding whitespace.
func numericString(s string) (float64, bool) {
	s = strings.Trim(s, whitespace)
	n := scanNumber(s)
	if n == 0 || n != len(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !isRangeErr(err) {
		return 0, false
	}
	return f, true
}

func leadingNumber(s string) float64 {
	s = strings.TrimLeft(s, whitespace)
	n := scanNumber(s)
	if n == 0 {
		return 0
	}
	f, err := strconv.ParseFloat(s[:n], 64)
	if err != nil && !isRangeErr(err) {
		return 0
	}
	return f
}

func isRangeErr(err error) bool {
	numErr, ok := err.(*strconv.NumError)
	return ok && numErr.Err == strconv.ErrRange
}

// scanNumber returns the length of the decimal number at the start of s, or 0.
func scanNumber(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// formatFloat renders f with 14 significant digits, switching to exponent notation for very large
// or very small magnitudes (1.0E+25, 1.0E-5).
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NAN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	case f == 0:
		if math.Signbit(f) {
			return "-0"
		}
		return "0"
	}

	sci := strconv.FormatFloat(f, 'e', 13, 64)
	mantissa, expPart, _ := strings.Cut(sci, "e")
	exp, _ := strconv.Atoi(expPart)
	if strings.Contains(mantissa, ".") {
		mantissa = strings.TrimRight(mantissa, "0")
		mantissa = strings.TrimSuffix(mantissa, ".")
	}

	decpt := exp + 1
	if decpt < -3 || decpt > 14 {
		if !strings.Contains(mantissa, ".") {
			mantissa += ".0"
		}
		sign := "+"
		if exp < 0 {
			sign = "-"
			exp = -exp
		}
		return mantissa + "E" + sign + strconv.Itoa(exp)
	}

	rounded, _ := strconv.ParseFloat(sci, 64)
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
