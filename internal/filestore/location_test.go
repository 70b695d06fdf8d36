package filestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/json2sqlite/internal/errs"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in   string
		want Location
		name string
	}{
		{in: "people.json", want: Location{Provider: ProviderLocal, Key: "people.json"}, name: "people.json"},
		{in: " /tmp/a b.json ", want: Location{Provider: ProviderLocal, Key: "/tmp/a b.json"}, name: "a b.json"},
		{in: "file:///tmp/x.json", want: Location{Provider: ProviderLocal, Key: "/tmp/x.json"}, name: "x.json"},
		{in: "s3://incoming/2024/orders.json", want: Location{Provider: ProviderMinIO, Bucket: "incoming", Key: "2024/orders.json"}, name: "orders.json"},
		{in: "MINIO://b//k.json.xz", want: Location{Provider: ProviderMinIO, Bucket: "b", Key: "k.json.xz"}, name: "k.json.xz"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLocation(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.name, got.Name())
		})
	}
}

func TestParseLocation_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "s3://", "s3://bucket", "s3://bucket/", "s3://bucket/dir/", "ftp://host/x.json", "file://"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseLocation(in)
			require.Error(t, err)
			assert.True(t, errs.IsInvalidInput(err))
		})
	}
}

func TestLocationString(t *testing.T) {
	loc, err := ParseLocation("minio://b/k.json")
	require.NoError(t, err)
	assert.True(t, loc.IsObject())
	assert.Equal(t, "s3://b/k.json", loc.String())

	loc, err = ParseLocation("in.json")
	require.NoError(t, err)
	assert.False(t, loc.IsObject())
	assert.Equal(t, "in.json", loc.String())
}
