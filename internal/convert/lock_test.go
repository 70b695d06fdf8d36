package convert

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/json2sqlite/internal/errs"
)

func TestPathLocks(t *testing.T) {
	locks := newPathLocks()
	ctx := context.Background()

	release, err := locks.acquire(ctx, "out/a.sqlite")
	require.NoError(t, err)

	other, err := locks.acquire(ctx, "out/b.sqlite")
	require.NoError(t, err, "different outputs do not block each other")
	other()

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = locks.acquire(waitCtx, "out/../out/a.sqlite")
	require.Error(t, err, "same output under another spelling still blocks")
	assert.True(t, errs.IsTimeout(err))

	release()
	release()
	assert.Equal(t, 0, locks.size())

	again, err := locks.acquire(ctx, "out/a.sqlite")
	require.NoError(t, err)
	again()
}
