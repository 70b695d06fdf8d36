package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/json2sqlite/internal/errs"
)

func TestSelectBuilder(t *testing.T) {
	tests := []struct {
		name     string
		builder  *SelectBuilder
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "star",
			builder: Select("locations"),
			wantSQL: `SELECT * FROM "locations"`,
		},
		{
			name:     "preview limit",
			builder:  Select("locations").Limit(3),
			wantSQL:  `SELECT * FROM "locations" LIMIT ?`,
			wantArgs: []any{3},
		},
		{
			name:     "offset without limit",
			builder:  Select("t").Offset(10),
			wantSQL:  `SELECT * FROM "t" LIMIT ? OFFSET ?`,
			wantArgs: []any{-1, 10},
		},
		{
			name:     "columns quoted",
			builder:  Select(`we"ird`).Columns("id", "first name").Limit(1).Offset(2),
			wantSQL:  `SELECT "id", "first name" FROM "we""ird" LIMIT ? OFFSET ?`,
			wantArgs: []any{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := tt.builder.Build()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestSelectBuilder_Invalid(t *testing.T) {
	for name, b := range map[string]*SelectBuilder{
		"empty table":     Select(""),
		"negative limit":  Select("t").Limit(-1),
		"negative offset": Select("t").Offset(-5),
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := b.Build()
			require.Error(t, err)
			assert.True(t, errs.IsInvalidInput(err))
		})
	}
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"users"`, QuoteIdent("users"))
	assert.Equal(t, `"select"`, QuoteIdent("select"))
	assert.Equal(t, `"a""b"`, QuoteIdent(`a"b`))
}

// fakeRows is an in-memory Rows for scanner tests.
type fakeRows struct {
	cols   []string
	data   [][]any
	pos    int
	closed bool
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	for i, d := range dest {
		*(d.(*any)) = r.data[r.pos-1][i]
	}
	return nil
}

func (r *fakeRows) Columns() ([]string, error) { return r.cols, nil }
func (r *fakeRows) Close()                     { r.closed = true }
func (r *fakeRows) Err() error                 { return nil }

func TestScanRows(t *testing.T) {
	rows := &fakeRows{
		cols: []string{"id", "name", "blob"},
		data: [][]any{
			{int64(1), "Loella", []byte("raw")},
			{int64(2), nil, nil},
		},
	}

	cols, out, err := ScanRows(rows)
	require.NoError(t, err)
	assert.True(t, rows.closed)
	assert.Equal(t, []string{"id", "name", "blob"}, cols)
	require.Len(t, out, 2)

	assert.Equal(t, []string{"id", "name", "blob"}, out[0].Keys())
	blob, _ := out[0].Get("blob")
	assert.Equal(t, "raw", blob)
	name, _ := out[1].Get("name")
	assert.Nil(t, name)
}

func TestScanRows_Empty(t *testing.T) {
	_, out, err := ScanRows(&fakeRows{cols: []string{"id"}})
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
