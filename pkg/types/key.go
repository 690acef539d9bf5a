package types

import (
	"strconv"
)

// Key addresses an entry in a collection. A key is either an integer index,
// assigned automatically on append or given explicitly, or a string name.
// Keys are comparable and usable as map keys.
type Key struct {
	name  string
	index int
	named bool
}

// IntKey returns the integer key n.
func IntKey(n int) Key {
	return Key{index: n}
}

// StringKey returns the string key s. The string is kept verbatim; use
// ParseKey to normalize decimal strings to integer keys.
func StringKey(s string) Key {
	return Key{name: s, named: true}
}

// ParseKey converts user input to a Key. A canonical decimal integer ("0",
// "42", "-7") becomes an integer key; anything else, including "007", "+1"
// and values that overflow int, becomes a string key.
func ParseKey(s string) Key {
	if isCanonicalInt(s) {
		if n, err := strconv.Atoi(s); err == nil {
			return IntKey(n)
		}
	}
	return StringKey(s)
}

func isCanonicalInt(s string) bool {
	digits := s
	if len(digits) > 0 && digits[0] == '-' {
		digits = digits[1:]
	}
	if digits == "" {
		return false
	}
	if digits[0] == '0' {
		// "0" is canonical, "-0" and "01" are not.
		return s == "0"
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

// IsInt reports whether k is an integer key.
func (k Key) IsInt() bool {
	return !k.named
}

// Int returns the integer value of k and true, or 0 and false for string keys.
func (k Key) Int() (int, bool) {
	if k.named {
		return 0, false
	}
	return k.index, true
}

// String returns the decimal form of an integer key or the name of a string key.
func (k Key) String() string {
	if k.named {
		return k.name
	}
	return strconv.Itoa(k.index)
}

// MarshalText renders k the same way as String.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses text with ParseKey.
func (k *Key) UnmarshalText(text []byte) error {
	*k = ParseKey(string(text))
	return nil
}

// KeyChange is one remapping step for ChangeMultipleKeys.
type KeyChange struct {
	Old Key
	New Key
}
