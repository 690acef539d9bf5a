package types

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"
)

type countingBag struct{ n int }

func (b countingBag) Count() int { return b.n }

func TestKindPredicates(t *testing.T) {
	now := time.Now()
	var nilPtr *int
	tests := []struct {
		kind   string
		accept []any
		reject []any
	}{
		{KindInteger, []any{0, int8(1), int64(-3), uint(4), uint64(5)}, []any{1.0, "1", true, nil}},
		{KindInt, []any{7}, []any{float32(7)}},
		{KindFloat, []any{1.5, float32(2)}, []any{1, "1.5"}},
		{KindDouble, []any{0.0}, []any{0}},
		{KindString, []any{"", "x"}, []any{'x', []byte("x")}},
		{KindText, []any{"x"}, []any{1}},
		{KindBool, []any{true, false}, []any{0, "true"}},
		{KindBoolean, []any{true}, []any{nil}},
		{KindNumeric, []any{1, 2.5, "3", " 4.5 ", "-1e3", "1e400"}, []any{"", "abc", "0x1A", "1_000", "NaN", "Inf", true, nil}},
		{KindScalar, []any{1, 1.5, "s", false}, []any{nil, []int{}, struct{}{}}},
		{KindArray, []any{[]int{}, [2]string{}, map[string]any{}, Array{}}, []any{"abc", 1, nil}},
		{KindObject, []any{struct{}{}, &now, now}, []any{nilPtr, 1, "x", nil, []int{}}},
		{KindNull, []any{nil}, []any{0, "", nilPtr}},
		{KindCallable, []any{func() {}, strings.ToUpper}, []any{nil, "strings.ToUpper", (func())(nil)}},
		{KindIterable, []any{[]int{}, map[int]int{}, make(chan int)}, []any{1, "abc", nil}},
		{KindCountable, []any{[]int{}, countingBag{2}}, []any{1, nil, "abc"}},
		{KindTimestamp, []any{now, &now}, []any{"2024-01-01", (*time.Time)(nil), now.Unix()}},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			vt, ok := Kind(tt.kind)
			if !ok {
				t.Fatalf("Kind(%q) not registered", tt.kind)
			}
			if !vt.IsBasic() {
				t.Errorf("Kind(%q).IsBasic() = false", tt.kind)
			}
			for _, v := range tt.accept {
				if !vt.Accepts(v) {
					t.Errorf("%s rejected %#v", tt.kind, v)
				}
			}
			for _, v := range tt.reject {
				if vt.Accepts(v) {
					t.Errorf("%s accepted %#v", tt.kind, v)
				}
			}
		})
	}
}

func TestTypeOf(t *testing.T) {
	vt := TypeOf[io.Reader]()
	if vt.IsBasic() {
		t.Fatal("TypeOf must not be basic")
	}
	if vt.Name() != "io.Reader" {
		t.Errorf("Name() = %q, want io.Reader", vt.Name())
	}
	if !vt.Accepts(strings.NewReader("x")) {
		t.Error("io.Reader rejected *strings.Reader")
	}
	if vt.Accepts("x") || vt.Accepts(nil) {
		t.Error("io.Reader accepted a non-reader")
	}
}

func TestTypeOfRejectsTypedNil(t *testing.T) {
	tests := []struct {
		name string
		vt   ValueType
		v    any
	}{
		{"nil pointer", TypeOf[*strings.Reader](), (*strings.Reader)(nil)},
		{"nil pointer behind interface", TypeOf[io.Reader](), (*strings.Reader)(nil)},
		{"nil slice", TypeOf[[]int](), []int(nil)},
		{"nil map", TypeOf[map[string]int](), map[string]int(nil)},
		{"nil func", TypeOf[func()](), (func())(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.vt.Accepts(tt.v) {
				t.Errorf("%s accepted typed nil %T", tt.vt, tt.v)
			}
		})
	}
	if !TypeOf[[]int]().Accepts([]int{}) {
		t.Error("empty non-nil slice rejected")
	}
}

func TestParseValueType(t *testing.T) {
	// The registry is process-wide; tolerate a repeated run.
	if err := RegisterType[fmt.Stringer]("Stringer"); err != nil && !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("RegisterType: %v", err)
	}

	vt, err := ParseValueType("integer")
	if err != nil || !vt.IsBasic() {
		t.Errorf("ParseValueType(integer) = %v, %v", vt, err)
	}

	vt, err = ParseValueType("Stringer")
	if err != nil {
		t.Fatalf("ParseValueType(Stringer): %v", err)
	}
	if vt.IsBasic() || !vt.Accepts(IntKey(1)) {
		t.Error("Stringer should be a required type accepting Key")
	}

	_, err = ParseValueType("Unknown")
	if !errors.Is(err, ErrUnknownValueType) {
		t.Errorf("ParseValueType(Unknown) error = %v, want %v", err, ErrUnknownValueType)
	}
}

func TestRegisterKind(t *testing.T) {
	even := func(v any) bool {
		n, ok := v.(int)
		return ok && n%2 == 0
	}
	if _, exists := Kind("even"); !exists {
		if err := RegisterKind("even", even); err != nil {
			t.Fatalf("RegisterKind: %v", err)
		}
	}
	vt, ok := Kind("even")
	if !ok || !vt.Accepts(4) || vt.Accepts(3) {
		t.Error("even kind not applied")
	}

	tests := []struct {
		name string
		kind string
		pred Predicate
	}{
		{"empty name", "", even},
		{"nil predicate", "odd", nil},
		{"duplicate kind", "even", even},
		{"builtin kind", KindString, even},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := RegisterKind(tt.kind, tt.pred); !errors.Is(err, ErrInvalidKind) {
				t.Errorf("RegisterKind error = %v, want %v", err, ErrInvalidKind)
			}
		})
	}

	if err := RegisterReflectType("even", TypeOf[int]().Type()); !errors.Is(err, ErrInvalidKind) {
		t.Errorf("RegisterReflectType over kind error = %v, want %v", err, ErrInvalidKind)
	}
}

func TestKindsSorted(t *testing.T) {
	names := Kinds()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("Kinds() not sorted at %d: %v", i, names)
		}
	}
	found := false
	for _, n := range names {
		if n == KindTimestamp {
			found = true
		}
	}
	if !found {
		t.Errorf("Kinds() missing %q", KindTimestamp)
	}
}

func TestZeroValueType(t *testing.T) {
	var vt ValueType
	if !vt.IsZero() || vt.Accepts(1) || vt.Accepts(nil) {
		t.Error("zero ValueType must reject everything")
	}
}
