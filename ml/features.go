package ml

import (
	"fmt"
	"math"
)

// Column is one named input value. String values are categorical; integer
// and float values are numeric.
type Column struct {
	Name  string
	Value interface{}
}

// EncodedRow is a one-hot encoded record. Names keeps the encoding order.
type EncodedRow struct {
	Names  []string
	Values map[string]float64
}

// GetDummies one-hot encodes every categorical column as "<name>_<value>" = 1
// and passes numeric columns through under their own name. Numeric columns
// come first, then indicator columns in input order.
func GetDummies(columns []Column) (EncodedRow, error) {
	row := EncodedRow{
		Names:  make([]string, 0, len(columns)),
		Values: make(map[string]float64, len(columns)),
	}
	var dummies []string

	for _, col := range columns {
		switch v := col.Value.(type) {
		case string:
			name := col.Name + "_" + v
			if _, seen := row.Values[name]; !seen {
				dummies = append(dummies, name)
			}
			row.Values[name] = 1
		default:
			num, err := toFloat(v)
			if err != nil {
				return EncodedRow{}, fmt.Errorf("column %q: %w", col.Name, err)
			}
			if _, seen := row.Values[col.Name]; !seen {
				row.Names = append(row.Names, col.Name)
			}
			row.Values[col.Name] = num
		}
	}
	row.Names = append(row.Names, dummies...)
	return row, nil
}

// Align reshapes an encoded row to exactly the expected columns: missing
// expected columns are zero and columns the model never saw are dropped.
func Align(row EncodedRow, expected []string) []float64 {
	out := make([]float64, len(expected))
	for i, name := range expected {
		out[i] = row.Values[name]
	}
	return out
}

func toFloat(value interface{}) (float64, error) {
	var f float64
	switch v := value.(type) {
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case float32:
		f = float64(v)
	case float64:
		f = v
	case bool:
		if v {
			f = 1
		}
	default:
		return 0, fmt.Errorf("unsupported value type %T", value)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("value %v is not finite", f)
	}
	return f, nil
}
