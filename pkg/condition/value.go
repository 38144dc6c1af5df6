// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package condition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Value is a string, number or boolean scalar.
type Value struct {
	kind ValueType
	str  string
	num  float64
	b    bool
}

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: TypeString, str: s} }

// NumberValue wraps a number.
func NumberValue(n float64) Value { return Value{kind: TypeNumber, num: n} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{kind: TypeBool, b: b} }

// ValueOf converts a decoded JSON or YAML scalar.
func ValueOf(raw interface{}) (Value, error) {
	switch v := raw.(type) {
	case Value:
		return v, nil
	case string:
		return StringValue(v), nil
	case bool:
		return BoolValue(v), nil
	case float64:
		return NumberValue(v), nil
	case float32:
		return NumberValue(float64(v)), nil
	case int:
		return NumberValue(float64(v)), nil
	case int32:
		return NumberValue(float64(v)), nil
	case int64:
		return NumberValue(float64(v)), nil
	case uint64:
		return NumberValue(float64(v)), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", v, err)
		}
		return NumberValue(f), nil
	case nil:
		return Value{}, fmt.Errorf("value is null")
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", raw)
	}
}

// Type returns the runtime type, empty for the zero Value.
func (v Value) Type() ValueType { return v.kind }

func (v Value) AsString() string  { return v.str }
func (v Value) AsNumber() float64 { return v.num }
func (v Value) AsBool() bool      { return v.b }

// Interface returns the underlying Go scalar.
func (v Value) Interface() interface{} {
	switch v.kind {
	case TypeString:
		return v.str
	case TypeNumber:
		return v.num
	case TypeBool:
		return v.b
	}
	return nil
}

func (v Value) String() string {
	switch v.kind {
	case TypeString:
		return strconv.Quote(v.str)
	case TypeNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case TypeBool:
		return strconv.FormatBool(v.b)
	}
	return "<unset>"
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == "" {
		return []byte("null"), nil
	}
	return json.Marshal(v.Interface())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
