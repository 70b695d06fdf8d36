package shape

import (
	"fmt"

	"github.com/koustreak/json2sqlite/internal/document"
	"github.com/koustreak/json2sqlite/internal/errs"
)

// TableSpec is a resolved (name, rows) pair ready for materialization.
// Rows is never empty and its first row always has at least one key.
type TableSpec struct {
	Name string
	Rows []*document.Object
}

// Warning reports a table entry that was skipped.
type Warning struct {
	Table  string `json:"table"`
	Reason string `json:"reason"`
}

func (w Warning) String() string {
	return w.Table + ": " + w.Reason
}

// Plan is the ordered work list produced from a Shape.
type Plan struct {
	Kind     Kind
	Tables   []TableSpec
	Warnings []Warning
}

// Resolve converts s into a Plan. Entries that cannot become a table are
// skipped with a Warning. Two tables whose names are equal ignoring ASCII
// case fail the whole plan with DuplicateTableName.
func Resolve(s Shape) (*Plan, error) {
	p := &Plan{Kind: s.Kind()}

	switch v := s.(type) {
	case SingleTable:
		rows, reason := rowSet(v.Rows)
		if reason != "" {
			kind := errs.ErrKindUnsupportedShape
			if len(v.Rows) == 0 || isEmptyObject(v.Rows[0]) {
				kind = errs.ErrKindEmptyInput
			}
			return nil, errs.Newf(kind, "table %q: %s", v.Name, reason)
		}
		p.Tables = append(p.Tables, TableSpec{Name: v.Name, Rows: rows})

	case NamedTables:
		for _, e := range v.Entries {
			p.add(e.Name, e.Value)
		}

	case MultiTableArray:
		for i, el := range v.Elements {
			obj, ok := el.(*document.Object)
			if !ok || obj.Len() != 1 {
				p.warn(fmt.Sprintf("[%d]", i), "element must be an object with exactly one key")
				continue
			}
			name := obj.Keys()[0]
			val, _ := obj.Get(name)
			p.add(name, val)
		}

	default:
		return nil, errs.Newf(errs.ErrKindUnsupportedShape, "unknown shape %T", s)
	}

	if err := p.checkDuplicates(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Plan) add(name string, value any) {
	if name == "" {
		p.warn(name, "table name is empty")
		return
	}
	raw, ok := value.([]any)
	if !ok {
		p.warn(name, fmt.Sprintf("row set is %s, expected an array", describe(value)))
		return
	}
	rows, reason := rowSet(raw)
	if reason != "" {
		p.warn(name, reason)
		return
	}
	p.Tables = append(p.Tables, TableSpec{Name: name, Rows: rows})
}

func (p *Plan) warn(table, reason string) {
	p.Warnings = append(p.Warnings, Warning{Table: table, Reason: reason})
}

func (p *Plan) checkDuplicates() error {
	seen := make(map[string]string, len(p.Tables))
	for _, t := range p.Tables {
		key := foldName(t.Name)
		if prev, ok := seen[key]; ok {
			return errs.Newf(errs.ErrKindDuplicateTable,
				"table name %q is used more than once (conflicts with %q)", t.Name, prev)
		}
		seen[key] = t.Name
	}
	return nil
}

func isEmptyObject(v any) bool {
	obj, ok := v.(*document.Object)
	return ok && obj.Len() == 0
}

// rowSet checks raw is a usable row set and returns it as objects. A
// non-empty reason means the set was rejected.
func rowSet(raw []any) ([]*document.Object, string) {
	if len(raw) == 0 {
		return nil, "row set is empty"
	}
	rows := make([]*document.Object, 0, len(raw))
	for i, r := range raw {
		obj, ok := r.(*document.Object)
		if !ok {
			return nil, fmt.Sprintf("row %d is %s, expected an object", i, describe(r))
		}
		rows = append(rows, obj)
	}
	if rows[0].Len() == 0 {
		return nil, "first row has no columns"
	}
	return rows, ""
}
