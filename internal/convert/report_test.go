package convert

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/koustreak/json2sqlite/internal/filestore"
	"github.com/koustreak/json2sqlite/internal/shape"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name string
		loc  filestore.Location
		dir  string
		want string
	}{
		{"local", filestore.Location{Provider: filestore.ProviderLocal, Key: "/data/people.json"}, "", "/data/people.sqlite"},
		{"relative", filestore.Location{Provider: filestore.ProviderLocal, Key: "people.json"}, "/ignored", "people.sqlite"},
		{"only last extension", filestore.Location{Provider: filestore.ProviderLocal, Key: "a.b.json"}, "", "a.b.sqlite"},
		{"no extension", filestore.Location{Provider: filestore.ProviderLocal, Key: "dump"}, "", "dump.sqlite"},
		{"xz", filestore.Location{Provider: filestore.ProviderLocal, Key: "/d/x.json.xz"}, "", "/d/x.sqlite"},
		{"object", filestore.Location{Provider: filestore.ProviderMinIO, Bucket: "b", Key: "in/2024/orders.json"}, "/out", filepath.Join("/out", "orders.sqlite")},
		{"object default dir", filestore.Location{Provider: filestore.ProviderMinIO, Bucket: "b", Key: "k.json"}, "", "k.sqlite"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputPath(tt.loc, tt.dir))
		})
	}
}

func TestReportMessage(t *testing.T) {
	r := &Report{
		Source: "in.json",
		Output: "in.sqlite",
		Tables: []TableOutcome{
			{Name: "a", Status: StatusCreated, Rows: 2},
		},
		Warnings: []shape.Warning{{Table: "b", Reason: "row set is empty"}},
	}
	assert.True(t, r.OK())
	assert.Equal(t,
		"Converted in.json to in.sqlite (1 created, 1 warned, 0 failed)\n  created a: 2 rows\n  warning b: row set is empty",
		r.Message())

	r.Tables = append(r.Tables, TableOutcome{Name: "c", Status: StatusFailed, Reason: "boom"})
	assert.False(t, r.OK())
	assert.Equal(t, 1, r.Failed())
	assert.Contains(t, r.Message(), "with errors")
	assert.Contains(t, r.Message(), "\n  failed c: boom")

	empty := &Report{Source: "x.json", Warnings: []shape.Warning{{Table: "t", Reason: "r"}}}
	assert.Contains(t, empty.Message(), "No tables written from x.json")
}
