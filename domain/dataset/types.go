package dataset

import (
	"fmt"
	"math"
	"reflect"
	"time"
)

// ElementType is the declared scalar kind of a column. The names follow the
// dtype strings analysts already know from dataframe tooling.
type ElementType string

const (
	TypeInt16       ElementType = "int16"
	TypeInt32       ElementType = "int32"
	TypeInt64       ElementType = "int64"
	TypeFloat16     ElementType = "float16"
	TypeFloat32     ElementType = "float32"
	TypeFloat64     ElementType = "float64"
	TypeBool        ElementType = "bool"
	TypeString      ElementType = "string"
	TypeCategorical ElementType = "category"
	TypeTimestamp   ElementType = "datetime"
	TypeObject      ElementType = "object"
)

// numericTypes are the only element types treated as numeric. Booleans are
// deliberately absent.
var numericTypes = map[ElementType]bool{
	TypeInt16:   true,
	TypeInt32:   true,
	TypeInt64:   true,
	TypeFloat16: true,
	TypeFloat32: true,
	TypeFloat64: true,
}

// IsNumeric reports whether the element type is one of the recognized
// signed-integer or floating-point widths.
func (t ElementType) IsNumeric() bool {
	return numericTypes[t]
}

// IsInteger reports whether the element type is a signed integer width.
func (t ElementType) IsInteger() bool {
	return t == TypeInt16 || t == TypeInt32 || t == TypeInt64
}

func (t ElementType) String() string {
	return string(t)
}

// ParseElementType maps a dtype string to an ElementType, falling back to object.
func ParseElementType(s string) ElementType {
	t := ElementType(s)
	switch t {
	case TypeInt16, TypeInt32, TypeInt64, TypeFloat16, TypeFloat32, TypeFloat64,
		TypeBool, TypeString, TypeCategorical, TypeTimestamp:
		return t
	}
	return TypeObject
}

// IsNull reports whether a cell value is missing. A nil interface and a
// floating-point NaN are both treated as null.
func IsNull(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	return false
}

// ToFloat converts a numeric cell value to float64. ok is false for nulls and
// non-numeric values.
func ToFloat(v any) (float64, bool) {
	if IsNull(v) {
		return 0, false
	}
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return 0, false
}

// distinctKey normalizes a cell value so that values that print the same and
// share a kind collapse into one key. All nulls share the nil key. Integers
// keep their exact value; a float joins them only when it is integral.
func distinctKey(v any) any {
	if IsNull(v) {
		return nil
	}
	switch x := v.(type) {
	case time.Time:
		return x.UnixNano()
	case []byte:
		return string(x)
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		if x <= math.MaxInt64 {
			return int64(x)
		}
		return x
	case float32:
		return floatKey(float64(x))
	case float64:
		return floatKey(x)
	}
	if t := reflect.TypeOf(v); !t.Comparable() {
		return fmt.Sprintf("%T:%v", v, v)
	}
	return v
}

func floatKey(f float64) any {
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return int64(f)
	}
	return f
}
