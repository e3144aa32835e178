package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLockerSerializesSameKey(t *testing.T) {
	l := NewLocker()
	var inside, maxInside int32

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			release, err := l.Acquire(ctx, "default")
			if err != nil {
				return err
			}
			defer release()
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, int32(1), maxInside)
	assert.Equal(t, 0, l.Len(), "entries are dropped after release")
}

func TestLockerKeysAreIndependent(t *testing.T) {
	l := NewLocker()
	relA, err := l.Acquire(context.Background(), "a")
	require.NoError(t, err)
	defer relA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	relB, err := l.Acquire(ctx, "b")
	require.NoError(t, err)
	relB()
}

func TestLockerAcquireHonorsContext(t *testing.T) {
	l := NewLocker()
	rel, err := l.Acquire(context.Background(), "k")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	rel()
	rel() // second release is a no-op
	assert.Equal(t, 0, l.Len())
}
