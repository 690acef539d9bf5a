package types

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Basic kind names registered by default. Several kinds answer to more than
// one name.
const (
	KindInt       = "int"
	KindInteger   = "integer"
	KindLong      = "long"
	KindFloat     = "float"
	KindDouble    = "double"
	KindString    = "string"
	KindText      = "text"
	KindBool      = "bool"
	KindBoolean   = "boolean"
	KindNumeric   = "numeric"
	KindScalar    = "scalar"
	KindArray     = "array"
	KindObject    = "object"
	KindNull      = "null"
	KindCallable  = "callable"
	KindIterable  = "iterable"
	KindCountable = "countable"
	KindTimestamp = "timestamp"
)

// Counter is implemented by values that report their own size.
type Counter interface {
	Count() int
}

func defaultKinds() map[string]Predicate {
	return map[string]Predicate{
		KindInt:       IsInteger,
		KindInteger:   IsInteger,
		KindLong:      IsInteger,
		KindFloat:     IsFloat,
		KindDouble:    IsFloat,
		KindString:    IsString,
		KindText:      IsString,
		KindBool:      IsBool,
		KindBoolean:   IsBool,
		KindNumeric:   IsNumeric,
		KindScalar:    IsScalar,
		KindArray:     IsArray,
		KindObject:    IsObject,
		KindNull:      IsNull,
		KindCallable:  IsCallable,
		KindIterable:  IsIterable,
		KindCountable: IsCountable,
		KindTimestamp: IsTimestamp,
	}
}

func kindOf(v any) reflect.Kind {
	if v == nil {
		return reflect.Invalid
	}
	return reflect.TypeOf(v).Kind()
}

// IsInteger accepts every signed and unsigned integer kind.
func IsInteger(v any) bool {
	switch kindOf(v) {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// IsFloat accepts float32 and float64.
func IsFloat(v any) bool {
	k := kindOf(v)
	return k == reflect.Float32 || k == reflect.Float64
}

// IsString accepts strings.
func IsString(v any) bool {
	return kindOf(v) == reflect.String
}

// IsBool accepts booleans.
func IsBool(v any) bool {
	return kindOf(v) == reflect.Bool
}

// IsNumeric accepts integers, floats, and strings holding a decimal or
// floating point number. Surrounding whitespace is allowed; hex and
// underscore forms are not.
func IsNumeric(v any) bool {
	if IsInteger(v) || IsFloat(v) {
		return true
	}
	if !IsString(v) {
		return false
	}
	s := strings.TrimSpace(reflect.ValueOf(v).String())
	// Hex, underscore, Inf and NaN spellings are not numeric.
	if s == "" || strings.ContainsAny(s, "_xXpPiInN") {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}

// IsScalar accepts integers, floats, strings, and booleans.
func IsScalar(v any) bool {
	return IsInteger(v) || IsFloat(v) || IsString(v) || IsBool(v)
}

// IsArray accepts slices, arrays, maps, and Arrays.
func IsArray(v any) bool {
	switch kindOf(v) {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}

// IsObject accepts structs and non-nil pointers.
func IsObject(v any) bool {
	switch kindOf(v) {
	case reflect.Struct:
		return true
	case reflect.Pointer:
		return !reflect.ValueOf(v).IsNil()
	}
	return false
}

// IsNull accepts only the untyped nil.
func IsNull(v any) bool {
	return v == nil
}

// IsCallable accepts non-nil functions.
func IsCallable(v any) bool {
	return kindOf(v) == reflect.Func && !reflect.ValueOf(v).IsNil()
}

// IsIterable accepts slices, arrays, maps, channels, and Collections.
func IsIterable(v any) bool {
	if _, ok := v.(Collection); ok {
		return true
	}
	switch kindOf(v) {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return true
	}
	return false
}

// IsCountable accepts slices, arrays, maps, channels, and Counters.
func IsCountable(v any) bool {
	if _, ok := v.(Counter); ok {
		return true
	}
	switch kindOf(v) {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return true
	}
	return false
}

// IsTimestamp accepts time.Time and non-nil *time.Time.
func IsTimestamp(v any) bool {
	switch t := v.(type) {
	case time.Time:
		return true
	case *time.Time:
		return t != nil
	}
	return false
}
