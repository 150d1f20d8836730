package snapshot

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAll_WaitsForAllAndIndexesErrors(t *testing.T) {
	var done atomic.Int32
	errs := runAll(context.Background(), 2, 5, func(_ context.Context, i int) error {
		time.Sleep(time.Millisecond)
		done.Add(1)
		if i%2 == 1 {
			return errors.New("odd")
		}
		return nil
	})

	require.Len(t, errs, 5)
	assert.Equal(t, int32(5), done.Load(), "failures must not cancel siblings")
	assert.NoError(t, errs[0])
	assert.Error(t, errs[1])
	assert.NoError(t, errs[2])
	assert.Error(t, errs[3])
	assert.NoError(t, errs[4])
}

func TestRunAll_RespectsLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	runAll(context.Background(), 3, 12, func(context.Context, int) error {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return nil
	})
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestRunAll_RecoversPanics(t *testing.T) {
	errs := runAll(context.Background(), 0, 2, func(_ context.Context, i int) error {
		if i == 0 {
			panic("boom")
		}
		return nil
	})
	require.Error(t, errs[0])
	assert.Contains(t, errs[0].Error(), "boom")
	assert.NoError(t, errs[1])
}

func TestRunAll_Empty(t *testing.T) {
	assert.Empty(t, runAll(context.Background(), 4, 0, nil))
}
