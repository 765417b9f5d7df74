package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestCache(ttl time.Duration) (*TTL[int], *clock) {
	clk := &clock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[int](ttl, 0)
	c.now = clk.Now
	return c, clk
}

func TestGetSetExpiry(t *testing.T) {
	c, clk := newTestCache(time.Hour)

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Set("a", 42)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	clk.Advance(59 * time.Minute)
	_, ok = c.Get("a")
	assert.True(t, ok)

	clk.Advance(2 * time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok)

	assert.Equal(t, 1, c.Len())
	c.Sweep()
	assert.Equal(t, 0, c.Len())
}

func TestDoCachesSuccess(t *testing.T) {
	c, _ := newTestCache(time.Hour)
	calls := 0
	fn := func() (int, error) {
		calls++
		return 7, nil
	}

	v, hit, err := c.Do("k", fn)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 7, v)

	v, hit, err = c.Do("k", fn)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 7, v)
	assert.Equal(t, 1, calls)
}

func TestDoDoesNotCacheErrors(t *testing.T) {
	c, _ := newTestCache(time.Hour)
	boom := errors.New("boom")

	_, _, err := c.Do("k", func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())
}

func TestDoCollapsesConcurrentMisses(t *testing.T) {
	c, _ := newTestCache(time.Hour)
	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, _, err := c.Do("k", func() (int, error) {
				calls.Add(1)
				<-release
				return 3, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, 3, v)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, calls.Load(), int32(8))
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestNilCacheCallsThrough(t *testing.T) {
	var c *TTL[string]
	v, hit, err := c.Do("k", func() (string, error) { return "x", nil })
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "x", v)

	c.Set("k", "y")
	_, ok := c.Get("k")
	assert.False(t, ok)
	c.Close()
}

func TestCloseStopsSweeper(t *testing.T) {
	c := New[int](time.Millisecond, time.Millisecond)
	c.Set("a", 1)
	c.Close()
	c.Close()
}
