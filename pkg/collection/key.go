package collection

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// Key is a collection key, either an integer or a string.
// The zero value is the integer key 0.
type Key struct {
	str   string
	num   int
	isStr bool
}

// Int returns an integer key.
func Int(i int) Key {
	return Key{num: i}
}

// Str returns a string key. Strings holding a canonical decimal integer, such as "42" or "-7",
// are normalised to integer keys.
func Str(s string) Key {
	if n, ok := canonicalInt(s); ok {
		return Key{num: n}
	}
	return Key{str: s, isStr: true}
}

// KeyOf converts v to a key. Integers and strings are used as is, booleans become 0 or 1, floats
// are truncated and nil becomes the empty string.
func KeyOf(v any) (Key, error) {
	switch val := v.(type) {
	case Key:
		return val, nil
	case nil:
		return Str(""), nil
	case string:
		return Str(val), nil
	case bool:
		if val {
			return Int(1), nil
		}
		return Int(0), nil
	case float32:
		return floatKey(float64(val))
	case float64:
		return floatKey(val)
	}
	if n, ok := toInt64(v); ok {
		return Int(int(n)), nil
	}
	return Key{}, errors.Wrapf(ErrInvalidKey, "%T", v)
}

func floatKey(f float64) (Key, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Key{}, errors.Wrapf(ErrInvalidKey, "%v", f)
	}
	return Int(int(f)), nil
}

// IsInt reports whether k is an integer key.
func (k Key) IsInt() bool { return !k.isStr }

// Int returns the integer value of k, or 0 for string keys.
func (k Key) Int() int { return k.num }

// Value returns the key as an int or a string.
func (k Key) Value() any {
	if k.isStr {
		return k.str
	}
	return k.num
}

// String returns the textual form of the key.
func (k Key) String() string {
	if k.isStr {
		return k.str
	}
	return strconv.Itoa(k.num)
}

func canonicalInt(s string) (int, bool) {
	if s == "" || len(s) > 20 {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	// rejects "05", "+5" and "-0"
	if strconv.Itoa(n) != s {
		return 0, false
	}
	return n, true
}
