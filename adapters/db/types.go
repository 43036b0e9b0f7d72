package db

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"edakit/domain/dataset"
)

// MapColumnType converts a driver's DatabaseTypeName into an element type.
// Unknown names map to string.
func MapColumnType(driver, dbType string) dataset.ElementType {
	name := strings.ToUpper(strings.TrimSpace(dbType))
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}
	if rest, ok := strings.CutPrefix(name, "UNSIGNED "); ok {
		// unsigned ranges need the next wider signed type
		switch rest {
		case "TINYINT":
			return dataset.TypeInt16
		case "SMALLINT", "MEDIUMINT":
			return dataset.TypeInt32
		case "INT", "INTEGER", "BIGINT":
			return dataset.TypeInt64
		}
		name = rest
	}

	switch name {
	case "INT2", "SMALLINT", "TINYINT", "SMALLSERIAL":
		return dataset.TypeInt16
	case "INT4", "INT", "MEDIUMINT", "SERIAL":
		return dataset.TypeInt32
	case "INT8", "BIGINT", "INTEGER", "BIGSERIAL":
		return dataset.TypeInt64
	case "FLOAT4", "FLOAT":
		return dataset.TypeFloat32
	case "REAL":
		// sqlite REAL is an 8-byte float
		if driver == "sqlite" {
			return dataset.TypeFloat64
		}
		return dataset.TypeFloat32
	case "FLOAT8", "DOUBLE", "DOUBLE PRECISION", "NUMERIC", "DECIMAL", "MONEY":
		return dataset.TypeFloat64
	case "BOOL", "BOOLEAN", "BIT":
		return dataset.TypeBool
	case "DATE", "TIMESTAMP", "TIMESTAMPTZ", "DATETIME", "DATETIME2", "SMALLDATETIME", "DATETIMEOFFSET":
		return dataset.TypeTimestamp
	}
	return dataset.TypeString
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// convertValue coerces a scanned driver value into the Go representation of et.
func convertValue(v any, et dataset.ElementType) (any, error) {
	if v == nil {
		return nil, nil
	}
	if b, ok := v.([]byte); ok {
		v = string(b)
	}

	switch et {
	case dataset.TypeInt16, dataset.TypeInt32, dataset.TypeInt64:
		n, err := toInt64(v)
		if err != nil {
			return nil, err
		}
		switch et {
		case dataset.TypeInt16:
			if n < math.MinInt16 || n > math.MaxInt16 {
				return nil, fmt.Errorf("value %d overflows %s", n, et)
			}
			return int16(n), nil
		case dataset.TypeInt32:
			if n < math.MinInt32 || n > math.MaxInt32 {
				return nil, fmt.Errorf("value %d overflows %s", n, et)
			}
			return int32(n), nil
		}
		return n, nil
	case dataset.TypeFloat32, dataset.TypeFloat64:
		f, err := toFloat64(v)
		if err != nil {
			return nil, err
		}
		if et == dataset.TypeFloat32 {
			return float32(f), nil
		}
		return f, nil
	case dataset.TypeBool:
		return toBool(v)
	case dataset.TypeTimestamp:
		return toTime(v)
	}

	switch x := v.(type) {
	case string:
		return x, nil
	case time.Time:
		return x.Format(time.RFC3339), nil
	}
	return fmt.Sprint(v), nil
}

func toInt64(v any) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int32:
		return int64(x), nil
	case int:
		return int64(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows int64", x)
		}
		return int64(x), nil
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("non-integral value %v", x)
		}
		if x < math.MinInt64 || x >= math.MaxInt64 {
			return 0, fmt.Errorf("value %v overflows int64", x)
		}
		return int64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(x), 10, 64)
	}
	return 0, fmt.Errorf("cannot convert %T to integer", v)
}

func toFloat64(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(x), 64)
	}
	return 0, fmt.Errorf("cannot convert %T to float", v)
}

func toBool(v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case int64:
		return x != 0, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(x))
	}
	return false, fmt.Errorf("cannot convert %T to bool", v)
}

func toTime(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
	}
	return time.Time{}, fmt.Errorf("cannot convert %T to timestamp", v)
}
