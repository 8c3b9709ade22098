package types

import (
	"testing"
	"time"

	"flexdb/pkg/primitives"
)

func TestField_Compare(t *testing.T) {
	jan := NewDateField(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	feb := NewDateField(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name     string
		left     Field
		op       primitives.Predicate
		right    Field
		expected bool
	}{
		{"int equals", NewIntField(5), primitives.Equals, NewIntField(5), true},
		{"int less than", NewIntField(4), primitives.LessThan, NewIntField(5), true},
		{"int against float", NewIntField(3), primitives.LessThan, NewFloatField(3.5), true},
		{"float against int", NewFloatField(2.0), primitives.Equals, NewIntField(2), true},
		{"float not equal", NewFloatField(2.5), primitives.NotEqual, NewFloatField(2.5), false},
		{"string ordering", NewStringField("apple"), primitives.LessThan, NewStringField("banana"), true},
		{"string like", NewStringField("ACME Corp"), primitives.Like, NewStringField("acme"), true},
		{"string like miss", NewStringField("ACME Corp"), primitives.Like, NewStringField("globex"), false},
		{"date ordering", jan, primitives.LessThan, feb, true},
		{"date equals", feb, primitives.GreaterThanOrEqual, feb, true},
		{"bool ordering", NewBoolField(false), primitives.LessThan, NewBoolField(true), true},
		{"null left", Null, primitives.Equals, Null, false},
		{"null right", NewIntField(1), primitives.NotEqual, Null, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.left.Compare(tt.op, tt.right)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestField_CompareErrors(t *testing.T) {
	tests := []struct {
		name  string
		left  Field
		op    primitives.Predicate
		right Field
	}{
		{"int with string", NewIntField(1), primitives.Equals, NewStringField("1")},
		{"like on int", NewIntField(1), primitives.Like, NewIntField(1)},
		{"date with int", NewDateField(time.Now()), primitives.Equals, NewIntField(1)},
		{"like on date", NewDateField(time.Now()), primitives.Like, NewDateField(time.Now())},
		{"bool with string", NewBoolField(true), primitives.Equals, NewStringField("true")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.left.Compare(tt.op, tt.right); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestField_Equals(t *testing.T) {
	pairs := []struct {
		name string
		a, b Field
	}{
		{"null", Null, &NullField{}},
		{"int", NewIntField(-5823), NewIntField(-5823)},
		{"float", NewFloatField(12.5), NewFloatField(12.5)},
		{"string", NewStringField("abc"), NewStringField("abc")},
		{"date", NewDateField(time.Date(1970, 1, 1, 13, 0, 0, 0, time.UTC)), NewDateField(time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC))},
		{"bool", NewBoolField(true), NewBoolField(true)},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.a.Equals(tt.b) {
				t.Errorf("Expected %v to equal %v", tt.a, tt.b)
			}
		})
	}

	if NewIntField(1).Equals(NewFloatField(1)) {
		t.Error("Expected fields of different types not to be equal")
	}
}

func TestField_StringAndNative(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		text     string
		typ      Type
		native   any
	}{
		{"null", Null, "NULL", NullType, nil},
		{"int", NewIntField(236), "236", IntType, int64(236)},
		{"float", NewFloatField(-123.75), "-123.75", FloatType, -123.75},
		{"string", NewStringField("abc"), "abc", StringType, "abc"},
		{"bool", NewBoolField(false), "false", BoolType, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.String() != tt.text {
				t.Errorf("Expected %q, got %q", tt.text, tt.field.String())
			}
			if tt.field.Type() != tt.typ {
				t.Errorf("Expected type %v, got %v", tt.typ, tt.field.Type())
			}
			if tt.field.Native() != tt.native {
				t.Errorf("Expected native %v, got %v", tt.native, tt.field.Native())
			}
		})
	}

	d := NewDateField(time.Date(1642, time.September, 17, 0, 0, 0, 0, time.UTC))
	if d.String() != "1642-09-17" {
		t.Errorf("Expected 1642-09-17, got %s", d.String())
	}
}

func TestType_Names(t *testing.T) {
	tests := []struct {
		typ  Type
		name string
		sql  string
	}{
		{IntType, "INT_TYPE", "INTEGER"},
		{FloatType, "FLOAT_TYPE", "FLOAT"},
		{StringType, "STRING_TYPE", "TEXT"},
		{DateType, "DATE_TYPE", "DATE"},
		{BinaryType, "BINARY_TYPE", "BYTEA"},
		{Type(99), "UNKNOWN_TYPE", "UNKNOWN"},
	}

	for _, tt := range tests {
		if tt.typ.String() != tt.name {
			t.Errorf("Expected %s, got %s", tt.name, tt.typ.String())
		}
		if tt.typ.SQLName() != tt.sql {
			t.Errorf("Expected %s, got %s", tt.sql, tt.typ.SQLName())
		}
	}
}
