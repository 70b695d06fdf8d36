package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/json2sqlite/internal/convert"
	"github.com/koustreak/json2sqlite/internal/errs"
	"github.com/koustreak/json2sqlite/internal/logger"
)

type fakeConverter struct {
	gotReq   convert.Request
	gotPath  string
	gotLimit int
	err      error
}

func (f *fakeConverter) Convert(_ context.Context, req convert.Request) (*convert.Report, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &convert.Report{ID: "r1", Source: req.Source, Output: "out.sqlite"}, nil
}

func (f *fakeConverter) Preview(_ context.Context, path string, limit int) (*convert.Preview, error) {
	f.gotPath, f.gotLimit = path, limit
	if f.err != nil {
		return nil, f.err
	}
	return &convert.Preview{Path: path, Tables: []string{}}, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func newTestServer(conv Converter) *Server {
	return New(Config{UseFilenameAsTableName: true, CustomTableName: "dflt"}, conv, logger.Nop())
}

func TestHealth(t *testing.T) {
	rec, env := do(t, newTestServer(&fakeConverter{}).Handler(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestConvert_AppliesDefaults(t *testing.T) {
	fc := &fakeConverter{}
	h := newTestServer(fc).Handler()

	rec, env := do(t, h, http.MethodPost, "/v1/convert", `{"source":"in.json"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, convert.Request{Source: "in.json", UseFilenameAsTableName: true, CustomTableName: "dflt"}, fc.gotReq)

	_, _ = do(t, h, http.MethodPost, "/v1/convert",
		`{"source":"in.json","useFilenameAsTableName":false,"customTableName":""}`)
	assert.Equal(t, convert.Request{Source: "in.json"}, fc.gotReq)
}

func TestConvert_BadRequests(t *testing.T) {
	h := newTestServer(&fakeConverter{}).Handler()
	for name, body := range map[string]string{
		"not json":      `{`,
		"no source":     `{}`,
		"blank source":  `{"source":"  "}`,
		"unknown field": `{"source":"a.json","tableName":"x"}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec, env := do(t, h, http.MethodPost, "/v1/convert", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, env.Success)
			assert.Equal(t, "invalid_input", env.Error.Code)
		})
	}
}

func TestConvert_ErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{errs.New(errs.ErrKindInputNotFound, "missing"), http.StatusNotFound, "input_not_found"},
		{errs.New(errs.ErrKindParseFailure, "bad json"), http.StatusUnprocessableEntity, "parse_failure"},
		{errs.New(errs.ErrKindEmptyInput, "empty"), http.StatusUnprocessableEntity, "empty_or_invalid_input"},
		{errs.New(errs.ErrKindUnsupportedShape, "shape"), http.StatusUnprocessableEntity, "unsupported_shape"},
		{errs.New(errs.ErrKindDuplicateTable, "dup"), http.StatusConflict, "duplicate_table_name"},
		{errs.New(errs.ErrKindPermissionDenied, "denied"), http.StatusForbidden, "permission_denied"},
		{errs.New(errs.ErrKindConnectionFailed, "down"), http.StatusInternalServerError, "connection_failed"},
		{assert.AnError, http.StatusInternalServerError, "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			h := newTestServer(&fakeConverter{err: tt.err}).Handler()
			rec, env := do(t, h, http.MethodPost, "/v1/convert", `{"source":"in.json"}`)
			assert.Equal(t, tt.status, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestPreview_Params(t *testing.T) {
	fc := &fakeConverter{}
	h := newTestServer(fc).Handler()

	rec, _ := do(t, h, http.MethodGet, "/v1/preview?path=out.sqlite&limit=5", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "out.sqlite", fc.gotPath)
	assert.Equal(t, 5, fc.gotLimit)

	rec, _ = do(t, h, http.MethodGet, "/v1/preview?path=out.sqlite", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, fc.gotLimit)

	rec, _ = do(t, h, http.MethodGet, "/v1/preview", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/v1/preview?path=x&limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouting(t *testing.T) {
	h := newTestServer(&fakeConverter{}).Handler()

	rec, env := do(t, h, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", env.Error.Code)

	rec, _ = do(t, h, http.MethodGet, "/v1/convert", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestEndToEnd(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "people.json")
	require.NoError(t, os.WriteFile(src, []byte(`[{"id":1,"name":"a"},{"id":2,"name":"b"}]`), 0o644))

	srv := New(Config{UseFilenameAsTableName: true}, convert.New(logger.Nop()), logger.Nop())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/convert", "application/json",
		strings.NewReader(`{"source":`+jsonQuote(src)+`}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env struct {
		Data convert.Report `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, filepath.Join(dir, "people.sqlite"), env.Data.Output)
	require.Len(t, env.Data.Tables, 1)
	assert.Equal(t, "people", env.Data.Tables[0].Name)

	presp, err := http.Get(ts.URL + "/v1/preview?path=" + url.QueryEscape(env.Data.Output))
	require.NoError(t, err)
	defer presp.Body.Close()
	require.Equal(t, http.StatusOK, presp.StatusCode)

	var penv struct {
		Data struct {
			Table string           `json:"table"`
			Rows  []map[string]any `json:"rows"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(presp.Body).Decode(&penv))
	assert.Equal(t, "people", penv.Data.Table)
	assert.Len(t, penv.Data.Rows, 2)
}

func jsonQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
