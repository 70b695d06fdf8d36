package materialize

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/koustreak/json2sqlite/internal/document"
	"github.com/koustreak/json2sqlite/internal/schema"
)

// guidPattern matches 36 hex digits and hyphens in any arrangement. It does
// not validate UUID layout or version.
var guidPattern = regexp.MustCompile(`^[0-9a-fA-F-]{36}$`)

// IsGUID reports whether s looks like a GUID.
func IsGUID(s string) bool {
	return guidPattern.MatchString(s)
}

// NormalizeValue upper-cases GUID-shaped strings and returns every other
// value unchanged.
func NormalizeValue(v any) any {
	if s, ok := v.(string); ok && IsGUID(s) {
		return strings.ToUpper(s)
	}
	return v
}

// NormalizeRow returns a copy of row with its top-level fields normalized.
// The input row is left untouched.
func NormalizeRow(row *document.Object) *document.Object {
	out := row.Clone()
	for _, key := range out.Keys() {
		v, _ := out.Get(key)
		out.Set(key, NormalizeValue(v))
	}
	return out
}

// BindValue converts a JSON value into a SQLite bind argument:
//
//	null            NULL
//	bool            0 or 1
//	integral number int64, or float64 when out of range
//	other number    float64
//	string          string
//	object / array  JSON text
func BindValue(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case bool:
		if x {
			return int64(1), nil
		}
		return int64(0), nil
	case json.Number:
		return bindNumber(x)
	case string:
		return x, nil
	case *document.Object, []any:
		b, err := json.Marshal(x)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	default:
		return nil, fmt.Errorf("unsupported value of type %T", v)
	}
}

func bindNumber(n json.Number) (any, error) {
	if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return nil, err
	}
	if schema.IsIntegral(n) && f >= math.MinInt64 && f < math.MaxInt64 {
		return int64(f), nil
	}
	return f, nil
}

// bindRow returns the arguments for one INSERT in column order. Keys
// missing from row bind NULL; keys not in columns are ignored.
func bindRow(columns []schema.Column, row *document.Object) ([]any, error) {
	args := make([]any, len(columns))
	for i, col := range columns {
		v, ok := row.Get(col.Name)
		if !ok {
			continue
		}
		arg, err := BindValue(v)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}
	return args, nil
}
