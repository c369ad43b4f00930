// Copyright The OpenTelemetry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package attribute provides the ordered, typed key/value pairs used to
// partition recorded measurements into distinct time series.
package attribute // import "github.com/otelworks/metricsdk/attribute"

import (
	"fmt"
	"math"
)

// Key is the name half of a key/value pair.
type Key string

// Type identifies the kind of value a Value holds.
type Type int

const (
	INVALID Type = iota
	BOOL
	INT64
	FLOAT64
	STRING
)

// Value holds one of bool, string, int64 or float64.
type Value struct {
	vtype    Type
	numeric  uint64
	stringly string
}

// BoolValue creates a Value with a bool.
func BoolValue(v bool) Value {
	var n uint64
	if v {
		n = 1
	}
	return Value{vtype: BOOL, numeric: n}
}

// Int64Value creates a Value with a signed 64-bit integer.
func Int64Value(v int64) Value {
	return Value{vtype: INT64, numeric: uint64(v)}
}

// Float64Value creates a Value with a 64-bit float.
func Float64Value(v float64) Value {
	return Value{vtype: FLOAT64, numeric: math.Float64bits(v)}
}

// StringValue creates a Value with a string.
func StringValue(v string) Value {
	return Value{vtype: STRING, stringly: v}
}

// Type reports the type of the Value.
func (v Value) Type() Type { return v.vtype }

// AsBool returns the bool value. It panics if v is not a BOOL.
func (v Value) AsBool() bool {
	if v.vtype != BOOL {
		panic("attribute: AsBool called on non-bool Value")
	}
	return v.numeric == 1
}

// AsInt64 returns the int64 value. It panics if v is not an INT64.
func (v Value) AsInt64() int64 {
	if v.vtype != INT64 {
		panic("attribute: AsInt64 called on non-int64 Value")
	}
	return int64(v.numeric)
}

// AsFloat64 returns the float64 value. It panics if v is not a FLOAT64.
func (v Value) AsFloat64() float64 {
	if v.vtype != FLOAT64 {
		panic("attribute: AsFloat64 called on non-float64 Value")
	}
	return math.Float64frombits(v.numeric)
}

// AsString returns the string value. It panics if v is not a STRING.
func (v Value) AsString() string {
	if v.vtype != STRING {
		panic("attribute: AsString called on non-string Value")
	}
	return v.stringly
}

// Emit returns a string representation of v, used for debugging.
func (v Value) Emit() string {
	switch v.vtype {
	case BOOL:
		return fmt.Sprintf("%t", v.AsBool())
	case INT64:
		return fmt.Sprintf("%d", v.AsInt64())
	case FLOAT64:
		return fmt.Sprintf("%g", v.AsFloat64())
	case STRING:
		return v.stringly
	default:
		return "unknown"
	}
}

// Equal reports whether v and o hold the same type and value.
func (v Value) Equal(o Value) bool {
	if v.vtype != o.vtype {
		return false
	}
	if v.vtype == STRING {
		return v.stringly == o.stringly
	}
	return v.numeric == o.numeric
}

// KeyValue is a single recorded attribute.
type KeyValue struct {
	Key   Key
	Value Value
}

// Equal reports whether kv and o carry the same key and value.
func (kv KeyValue) Equal(o KeyValue) bool {
	return kv.Key == o.Key && kv.Value.Equal(o.Value)
}

// Bool creates a KeyValue with a bool value.
func Bool(k string, v bool) KeyValue { return KeyValue{Key: Key(k), Value: BoolValue(v)} }

// Int64 creates a KeyValue with an int64 value.
func Int64(k string, v int64) KeyValue { return KeyValue{Key: Key(k), Value: Int64Value(v)} }

// Int creates a KeyValue with a platform-int value, stored as int64.
func Int(k string, v int) KeyValue { return Int64(k, int64(v)) }

// Float64 creates a KeyValue with a float64 value.
func Float64(k string, v float64) KeyValue { return KeyValue{Key: Key(k), Value: Float64Value(v)} }

// String creates a KeyValue with a string value.
func String(k, v string) KeyValue { return KeyValue{Key: Key(k), Value: StringValue(v)} }
