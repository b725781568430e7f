package pool

import (
	"sync"
	"testing"
	"time"

	"github.com/mongodb/deadpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestDispatcher(t *testing.T) {
	noop := func() {}

	t.Run("ClaimsInSubmissionOrder", func(t *testing.T) {
		d := newDispatcher()
		for i := 1; i <= 10; i++ {
			seq, err := d.send(noop, trace.SpanContext{})
			require.NoError(t, err)
			assert.Equal(t, i, seq)
		}

		for i := 1; i <= 10; i++ {
			unit, ok := d.claim()
			require.True(t, ok)
			assert.Equal(t, i, unit.seq)
		}

		total, pending, closed := d.stats()
		assert.Equal(t, 10, total)
		assert.Zero(t, pending)
		assert.False(t, closed)
	})
	t.Run("SendAfterCloseFails", func(t *testing.T) {
		d := newDispatcher()
		assert.True(t, d.close())

		_, err := d.send(noop, trace.SpanContext{})
		assert.True(t, deadpool.IsPoolClosedError(err))

		total, _, closed := d.stats()
		assert.Zero(t, total)
		assert.True(t, closed)
	})
	t.Run("CloseIsOneShot", func(t *testing.T) {
		d := newDispatcher()
		assert.True(t, d.close())
		for i := 0; i < 5; i++ {
			assert.False(t, d.close())
		}
	})
	t.Run("ClosedQueueDrainsBeforeReportingClosed", func(t *testing.T) {
		d := newDispatcher()
		for i := 0; i < 3; i++ {
			_, err := d.send(noop, trace.SpanContext{})
			require.NoError(t, err)
		}
		d.close()

		for i := 0; i < 3; i++ {
			_, ok := d.claim()
			assert.True(t, ok)
		}
		_, ok := d.claim()
		assert.False(t, ok)
		_, ok = d.claim()
		assert.False(t, ok)
	})
	t.Run("ClaimBlocksUntilSend", func(t *testing.T) {
		d := newDispatcher()
		claimed := make(chan int)
		go func() {
			unit, ok := d.claim()
			if ok {
				claimed <- unit.seq
			}
			close(claimed)
		}()

		select {
		case <-claimed:
			t.Fatal("claim returned from an empty queue")
		case <-time.After(20 * time.Millisecond):
		}

		_, err := d.send(noop, trace.SpanContext{})
		require.NoError(t, err)

		select {
		case seq := <-claimed:
			assert.Equal(t, 1, seq)
		case <-time.After(time.Second):
			t.Fatal("claim did not observe the sent job")
		}
	})
	t.Run("CloseWakesEveryBlockedClaimer", func(t *testing.T) {
		d := newDispatcher()
		const claimers = 8

		wg := &sync.WaitGroup{}
		results := make(chan bool, claimers)
		for i := 0; i < claimers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, ok := d.claim()
				results <- ok
			}()
		}

		time.Sleep(10 * time.Millisecond)
		d.close()

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("blocked claimers were not woken by close")
		}

		close(results)
		for ok := range results {
			assert.False(t, ok)
		}
	})
	t.Run("ConcurrentClaimersReceiveEachJobOnce", func(t *testing.T) {
		d := newDispatcher()
		const (
			jobs     = 1000
			claimers = 8
		)

		seen := make([]int, jobs+1)
		mu := &sync.Mutex{}
		wg := &sync.WaitGroup{}
		for i := 0; i < claimers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					unit, ok := d.claim()
					if !ok {
						return
					}
					mu.Lock()
					seen[unit.seq]++
					mu.Unlock()
				}
			}()
		}

		for i := 0; i < jobs; i++ {
			_, err := d.send(noop, trace.SpanContext{})
			require.NoError(t, err)
		}
		d.close()
		wg.Wait()

		for seq := 1; seq <= jobs; seq++ {
			assert.Equal(t, 1, seen[seq], "job %d", seq)
		}
	})
}
