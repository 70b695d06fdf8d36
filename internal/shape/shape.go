// Package shape decides which table layout a parsed JSON document uses.
//
// Three layouts are supported:
//
//	SingleTable      [{"id": 1}, {"id": 2}]                  one table, named from options
//	NamedTables      {"users": [...], "orders": [...]}       one table per key
//	MultiTableArray  [{"users": [...]}, {"orders": [...]}]   one table per element
//
// Classify inspects only the root value and returns one of the variants.
// Resolve then turns the variant into an ordered list of TableSpec values,
// skipping unusable entries with a Warning and rejecting duplicate names.
package shape

import (
	"encoding/json"
	"fmt"

	"github.com/koustreak/json2sqlite/internal/document"
	"github.com/koustreak/json2sqlite/internal/errs"
)

// Kind names a supported layout.
type Kind int

const (
	KindSingleTable Kind = iota + 1
	KindNamedTables
	KindMultiTableArray
)

func (k Kind) String() string {
	switch k {
	case KindSingleTable:
		return "single_table"
	case KindNamedTables:
		return "named_tables"
	case KindMultiTableArray:
		return "multi_table_array"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name in JSON reports.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a name produced by MarshalText.
func (k *Kind) UnmarshalText(b []byte) error {
	for _, c := range []Kind{0, KindSingleTable, KindNamedTables, KindMultiTableArray} {
		if c.String() == string(b) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown shape kind %q", b)
}

// Options controls single-table naming. It is read once per conversion.
type Options struct {
	// UseFilenameAsTableName names a single table after the source file.
	UseFilenameAsTableName bool

	// CustomTableName is used when UseFilenameAsTableName is false or the
	// file name yields nothing. Empty means "data".
	CustomTableName string

	// SourceName is the source path or object key.
	SourceName string
}

// DefaultOptions returns the default naming options for source.
func DefaultOptions(source string) Options {
	return Options{UseFilenameAsTableName: true, SourceName: source}
}

// Shape is the tagged result of Classify. The concrete type is one of
// SingleTable, NamedTables or MultiTableArray.
type Shape interface {
	Kind() Kind
	isShape()
}

// SingleTable is a root array of row objects.
type SingleTable struct {
	Name string
	Rows []any
}

// Entry is one named row set of a NamedTables document.
type Entry struct {
	Name  string
	Value any
}

// NamedTables is a root object whose keys are table names.
type NamedTables struct {
	Entries []Entry
}

// MultiTableArray is a root array of one-key objects. Elements are kept
// raw so that malformed ones can be reported individually.
type MultiTableArray struct {
	Elements []any
}

func (SingleTable) Kind() Kind     { return KindSingleTable }
func (NamedTables) Kind() Kind     { return KindNamedTables }
func (MultiTableArray) Kind() Kind { return KindMultiTableArray }

func (SingleTable) isShape()     {}
func (NamedTables) isShape()     {}
func (MultiTableArray) isShape() {}

// Classify applies the decision procedure to the root value v:
//
//  1. null or [] is EmptyOrInvalidInput.
//  2. A non-empty array whose first element is an object is a
//     MultiTableArray when that object's first value is an array, and a
//     SingleTable otherwise.
//  3. An object is NamedTables.
//  4. Anything else is UnsupportedShape.
func Classify(v any, opts Options) (Shape, error) {
	switch root := v.(type) {
	case nil:
		return nil, errs.New(errs.ErrKindEmptyInput, "document is null")

	case []any:
		if len(root) == 0 {
			return nil, errs.New(errs.ErrKindEmptyInput, "document is an empty array")
		}
		first, ok := root[0].(*document.Object)
		if !ok {
			return nil, errs.Newf(errs.ErrKindUnsupportedShape,
				"array elements must be objects, first element is %s", describe(root[0]))
		}
		if keys := first.Keys(); len(keys) > 0 {
			if head, _ := first.Get(keys[0]); isArray(head) {
				return MultiTableArray{Elements: root}, nil
			}
		}
		return SingleTable{Name: SingleTableName(opts), Rows: root}, nil

	case *document.Object:
		entries := make([]Entry, 0, root.Len())
		for _, key := range root.Keys() {
			val, _ := root.Get(key)
			entries = append(entries, Entry{Name: key, Value: val})
		}
		return NamedTables{Entries: entries}, nil

	default:
		return nil, errs.Newf(errs.ErrKindUnsupportedShape,
			"root value is %s, expected an object or array", describe(v))
	}
}

func isArray(v any) bool {
	_, ok := v.([]any)
	return ok
}

// describe names the JSON type of v for messages.
func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case json.Number:
		return "a number"
	case string:
		return "a string"
	case []any:
		return "an array"
	case *document.Object:
		return "an object"
	default:
		return "an unknown value"
	}
}
