package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindNumber
	KindString
)

func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "null"
	}
}

// Value is a loosely typed JSON scalar: null, a number or a string.
// Quantities and prices arrive in any of the three shapes.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
}

func Null() Value { return Value{Kind: KindNull} }
func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }
func String(s string) Value { return Value{Kind: KindString, Str: s} }
func (v Value) IsNull() bool { return v.Kind == KindNull }

// IsBlank reports whether the value is null or the empty string.
func (v Value) IsBlank() bool {
	return v.Kind == KindNull || (v.Kind == KindString && v.Str == "")
}

// Interface returns the value as nil, float64 or string, the shapes a spreadsheet
// writer accepts for a cell.
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindNumber:
		return v.Num
	case KindString:
		return v.Str
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindString:
		return v.Str
	default:
		return ""
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Null()
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = String(s)
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("invalid number %s: %w", data, err)
		}
		*v = Number(f)
		return nil
	default:
		return fmt.Errorf("expected null, number or string, got %s", data)
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return []byte("null"), nil
		}
		return []byte(strconv.FormatFloat(v.Num, 'f', -1, 64)), nil
	case KindString:
		return json.Marshal(v.Str)
	default:
		return []byte("null"), nil
	}
}
