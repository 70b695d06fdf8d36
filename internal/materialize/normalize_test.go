package materialize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/json2sqlite/internal/document"
)

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"guid", "123e4567-e89b-12d3-a456-426614174000", "123E4567-E89B-12D3-A456-426614174000"},
		{"already upper", "123E4567-E89B-12D3-A456-426614174000", "123E4567-E89B-12D3-A456-426614174000"},
		{"hex without layout", "abcdefabcdefabcdefabcdefabcdefabcdef", "ABCDEFABCDEFABCDEFABCDEFABCDEFABCDEF"},
		{"too short", "123e4567-e89b-12d3-a456-42661417400", "123e4567-e89b-12d3-a456-42661417400"},
		{"non hex letter", "123e4567-e89b-12d3-a456-42661417400g", "123e4567-e89b-12d3-a456-42661417400g"},
		{"plain string", "Hello", "Hello"},
		{"number", json.Number("5"), json.Number("5")},
		{"bool", true, true},
		{"null", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeValue(tt.in))
		})
	}
}

func TestNormalizeRow_DoesNotMutateInput(t *testing.T) {
	in := document.NewObject()
	in.Set("id", json.Number("1"))
	in.Set("guid", "123e4567-e89b-12d3-a456-426614174000")

	out := NormalizeRow(in)

	v, _ := in.Get("guid")
	assert.Equal(t, "123e4567-e89b-12d3-a456-426614174000", v)
	v, _ = out.Get("guid")
	assert.Equal(t, "123E4567-E89B-12D3-A456-426614174000", v)
	assert.Equal(t, []string{"id", "guid"}, out.Keys())
}

func TestBindValue(t *testing.T) {
	nested, err := document.Parse([]byte(`{"b":1,"a":[true,null]}`))
	require.NoError(t, err)

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"null", nil, nil},
		{"true", true, int64(1)},
		{"false", false, int64(0)},
		{"int", json.Number("42"), int64(42)},
		{"integral float", json.Number("5.0"), int64(5)},
		{"exponent", json.Number("1e3"), int64(1000)},
		{"huge integral", json.Number("1e30"), float64(1e30)},
		{"fraction", json.Number("2.5"), float64(2.5)},
		{"string", "x", "x"},
		{"object keeps order", nested, `{"b":1,"a":[true,null]}`},
		{"array", []any{json.Number("1"), "two"}, `[1,"two"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BindValue(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = BindValue(struct{}{})
	assert.Error(t, err)
}
