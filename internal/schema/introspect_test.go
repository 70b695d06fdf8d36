package schema

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/json2sqlite/internal/database"
	"github.com/koustreak/json2sqlite/internal/database/sqlite"
	"github.com/koustreak/json2sqlite/internal/errs"
)

func TestIntrospector(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.New(ctx, database.DefaultConfig(filepath.Join(t.TempDir(), "s.sqlite")))
	require.NoError(t, err)
	defer db.Close()

	for _, tbl := range []Table{
		{Name: "zeta", Columns: []Column{{Name: "b", Type: TypeText}, {Name: "a", Type: TypeInteger}}},
		{Name: "alpha", Columns: []Column{{Name: "x", Type: TypeReal}}},
	} {
		_, err := db.Exec(ctx, CreateTableSQL(tbl))
		require.NoError(t, err)
	}

	var r Reader = NewIntrospector(db)

	tables, err := r.ListTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha"}, tables, "catalog order, not alphabetical")

	ok, err := r.TableExists(ctx, "alpha")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.TableExists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	info, err := r.InspectTable(ctx, "zeta")
	require.NoError(t, err)
	require.Len(t, info.Columns, 2)
	assert.Equal(t, "b", info.Columns[0].Name)
	assert.Equal(t, "TEXT", info.Columns[0].DataType)
	assert.True(t, info.Columns[0].IsNullable)
	assert.False(t, info.Columns[0].IsPrimaryKey)
	assert.Nil(t, info.Columns[0].DefaultValue)

	col, found := info.Column("a")
	require.True(t, found)
	assert.Equal(t, "INTEGER", col.DataType)

	_, err = r.InspectTable(ctx, "missing")
	require.Error(t, err)
	assert.True(t, errs.IsInputNotFound(err))
}
