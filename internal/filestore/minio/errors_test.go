package minio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/json2sqlite/internal/errs"
	"github.com/koustreak/json2sqlite/internal/filestore"
)

var _ filestore.Store = (*Driver)(nil)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errs.ErrKind
	}{
		{"deadline", context.DeadlineExceeded, errs.ErrKindTimeout},
		{"404", miniogo.ErrorResponse{StatusCode: http.StatusNotFound}, errs.ErrKindInputNotFound},
		{"no such key", miniogo.ErrorResponse{Code: "NoSuchKey"}, errs.ErrKindInputNotFound},
		{"403", miniogo.ErrorResponse{StatusCode: http.StatusForbidden}, errs.ErrKindPermissionDenied},
		{"bad bucket name", miniogo.ErrorResponse{Code: "InvalidBucketName"}, errs.ErrKindInvalidInput},
		{"slow down", miniogo.ErrorResponse{Code: "SlowDown"}, errs.ErrKindTimeout},
		{"wrapped", fmt.Errorf("get: %w", miniogo.ErrorResponse{Code: "NoSuchBucket"}), errs.ErrKindInputNotFound},
		{"transport", errors.New("connection refused"), errs.ErrKindConnectionFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err, "op")
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Kind)
		})
	}
	assert.Nil(t, mapError(nil, "op"))
}

func TestNewDriver_Validation(t *testing.T) {
	_, err := newDriver(nil)
	assert.True(t, errs.IsInvalidInput(err))

	_, err = newDriver(&filestore.Config{})
	assert.True(t, errs.IsInvalidInput(err))

	d, err := newDriver(filestore.DefaultConfig("localhost:9000", "k", "s"))
	require.NoError(t, err)
	assert.NoError(t, d.Close())
}
