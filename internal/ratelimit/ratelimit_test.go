package ratelimit

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestGate() (*Gate, *fakeClock) {
	clk := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	return NewGate(nil, WithClock(clk.now)), clk
}

func TestGateFirstRequestAdmitted(t *testing.T) {
	g, _ := newTestGate()
	_, err := g.Admit(context.Background(), "a")
	assert.NoError(t, err)
}

func TestGateRejectsInsideWindow(t *testing.T) {
	ctx := context.Background()
	g, clk := newTestGate()

	tk, err := g.Admit(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, tk.Commit(ctx))

	clk.advance(4999 * time.Millisecond)
	_, err = g.Admit(ctx, "a")
	require.ErrorIs(t, err, ErrLimited)
	var le *LimitedError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, time.Millisecond, le.Remaining)

	clk.advance(time.Millisecond)
	_, err = g.Admit(ctx, "a")
	assert.NoError(t, err)
}

func TestGateRejectionDoesNotResetTimer(t *testing.T) {
	ctx := context.Background()
	g, clk := newTestGate()

	tk, err := g.Admit(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, tk.Commit(ctx))

	clk.advance(3 * time.Second)
	_, err = g.Admit(ctx, "a")
	require.ErrorIs(t, err, ErrLimited)

	// 5s after the success, not after the rejection.
	clk.advance(2 * time.Second)
	_, err = g.Admit(ctx, "a")
	assert.NoError(t, err)
}

func TestGateUncommittedTicketDoesNotCount(t *testing.T) {
	ctx := context.Background()
	g, clk := newTestGate()

	_, err := g.Admit(ctx, "a")
	require.NoError(t, err)
	clk.advance(time.Second)
	_, err = g.Admit(ctx, "a")
	assert.NoError(t, err)
}

func TestGateCommitRecordsStartTime(t *testing.T) {
	ctx := context.Background()
	g, clk := newTestGate()

	tk, err := g.Admit(ctx, "a")
	require.NoError(t, err)
	clk.advance(2 * time.Second) // the render takes a while
	require.NoError(t, tk.Commit(ctx))

	clk.advance(3 * time.Second)
	_, err = g.Admit(ctx, "a")
	assert.NoError(t, err, "interval runs from the start of the successful render")
}

func TestGateKeysIndependent(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGate()

	tk, err := g.Admit(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, tk.Commit(ctx))

	_, err = g.Admit(ctx, "b")
	assert.NoError(t, err)
	_, err = g.Admit(ctx, "a")
	assert.ErrorIs(t, err, ErrLimited)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("QRSTUDIO_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("QRSTUDIO_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	store := NewRedisStore(client, "qrstudio:test:", time.Minute)
	key := time.Now().Format(time.RFC3339Nano)

	_, ok, err := store.Last(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	at := time.UnixMilli(time.Now().UnixMilli())
	require.NoError(t, store.Record(ctx, key, at))
	got, ok, err := store.Last(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, at.Equal(got))
}
