package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("MissOnUnknownKey", func(t *testing.T) {
		c := NewMemoryCache()
		_, err := c.Get(ctx, "books_index_1_10")
		assert.ErrorIs(t, err, ErrMiss)
	})

	t.Run("SetThenGet", func(t *testing.T) {
		c := NewMemoryCache()
		require.NoError(t, c.Set(ctx, "k", []byte(`[{"id":1}]`), time.Minute))

		got, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[{"id":1}]`), got)
	})

	t.Run("StoredValueIsCopied", func(t *testing.T) {
		c := NewMemoryCache()
		payload := []byte("abc")
		require.NoError(t, c.Set(ctx, "k", payload, time.Minute))
		payload[0] = 'x'

		got, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), got)
	})

	t.Run("Expiry", func(t *testing.T) {
		c := NewMemoryCache()
		now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		c.now = func() time.Time { return now }

		require.NoError(t, c.Set(ctx, "k", []byte("v"), 30*time.Minute))

		now = now.Add(29 * time.Minute)
		_, err := c.Get(ctx, "k")
		assert.NoError(t, err)

		now = now.Add(time.Minute)
		_, err = c.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrMiss)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("SweepReclaimsExpiredKeys", func(t *testing.T) {
		c := NewMemoryCache()
		now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		c.now = func() time.Time { return now }

		for i := 0; i < 10000; i++ {
			require.NoError(t, c.Set(ctx, fmt.Sprintf("books_index_%d_10", i), []byte("[]"), time.Millisecond))
		}
		now = now.Add(5 * time.Millisecond)
		require.NoError(t, c.Set(ctx, "books_index_1_5", []byte("[]"), time.Minute))

		assert.Equal(t, 10001, c.Len())
		assert.Equal(t, 10000, c.Sweep())
		assert.Equal(t, 1, c.Len())

		_, err := c.Get(ctx, "books_index_1_5")
		assert.NoError(t, err)
	})

	t.Run("RunSweeperStopsWithContext", func(t *testing.T) {
		c := NewMemoryCache()
		require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Nanosecond))

		sweepCtx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			c.RunSweeper(sweepCtx, time.Millisecond)
			close(done)
		}()

		assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("sweeper did not stop")
		}
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		c := NewMemoryCache()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = c.Set(ctx, "k", []byte("v"), time.Minute)
				_, _ = c.Get(ctx, "k")
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, c.Len())
	})
}
