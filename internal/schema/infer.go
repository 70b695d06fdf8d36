package schema

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/koustreak/json2sqlite/internal/document"
)

// Infer derives the column schema for table name from the first row only.
// Columns follow the row's key order. Later rows never change the result.
func Infer(name string, first *document.Object) Table {
	t := Table{Name: name, Columns: make([]Column, 0, first.Len())}
	for _, key := range first.Keys() {
		v, _ := first.Get(key)
		t.Columns = append(t.Columns, Column{Name: key, Type: TypeOf(v)})
	}
	return t
}

// TypeOf classifies a single JSON value:
//
//	bool                       INTEGER (stored as 0/1)
//	integral number            INTEGER
//	number with a fraction     REAL
//	anything else              TEXT
func TypeOf(v any) ColumnType {
	switch x := v.(type) {
	case bool:
		return TypeInteger
	case json.Number:
		if IsIntegral(x) {
			return TypeInteger
		}
		return TypeReal
	default:
		return TypeText
	}
}

// IsIntegral reports whether n is a mathematical integer, so "5", "5.0"
// and "1e3" are integral while "5.5" is not.
func IsIntegral(n json.Number) bool {
	if _, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return true
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return false
	}
	return f == math.Trunc(f)
}
