package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGet(t *testing.T) {
	store := NewStore()

	t.Run("creates sessions lazily", func(t *testing.T) {
		assert.Equal(t, 0, store.Length())
		sess := store.Get(42)
		require.NotNil(t, sess)
		assert.Equal(t, int64(42), sess.ChatID())
		assert.Equal(t, StateIdle, sess.State())
		assert.Equal(t, 1, store.Length())
	})

	t.Run("returns the same session for the same chat", func(t *testing.T) {
		assert.Same(t, store.Get(42), store.Get(42))
		assert.Equal(t, 1, store.Length())
	})

	t.Run("keeps chats independent", func(t *testing.T) {
		other := store.Get(43)
		other.Lock()
		other.Prompt(StateAwaitingCity, time.Minute, func(int64) {})
		other.Unlock()

		sess := store.Get(42)
		sess.Lock()
		defer sess.Unlock()
		assert.Equal(t, StateIdle, sess.State())

		other.Lock()
		other.Settle()
		other.Unlock()
	})
}

func TestSessionPrompt(t *testing.T) {
	t.Run("arms exactly one timer", func(t *testing.T) {
		sess := NewStore().Get(1)
		sess.Lock()
		defer sess.Unlock()

		sess.Prompt(StateAwaitingIMEI, time.Minute, func(int64) {})
		assert.Equal(t, StateAwaitingIMEI, sess.State())
		assert.True(t, sess.TimerArmed())

		// Re-prompting replaces the timer, it never stacks a second one
		sess.Prompt(StateAwaitingIMEI, time.Minute, func(int64) {})
		assert.True(t, sess.TimerArmed())

		sess.Settle()
	})

	t.Run("replaced prompt never fires its old timeout", func(t *testing.T) {
		sess := NewStore().Get(1)
		fired := make(chan string, 2)

		sess.Lock()
		sess.Prompt(StateAwaitingCity, 20*time.Millisecond, func(int64) { fired <- "old" })
		sess.Prompt(StateAwaitingIMEI, 60*time.Millisecond, func(int64) { fired <- "new" })
		sess.Unlock()

		select {
		case which := <-fired:
			assert.Equal(t, "new", which)
		case <-time.After(time.Second):
			t.Fatal("replacement timeout never fired")
		}

		// Give the old timer ample chance to misfire
		time.Sleep(50 * time.Millisecond)
		assert.Empty(t, fired)
	})
}

func TestSessionSettle(t *testing.T) {
	t.Run("disarms the timer and returns to idle", func(t *testing.T) {
		sess := NewStore().Get(1)
		fired := make(chan int64, 1)

		sess.Lock()
		sess.Prompt(StateAwaitingCity, 20*time.Millisecond, func(id int64) { fired <- id })
		sess.Settle()
		assert.Equal(t, StateIdle, sess.State())
		assert.False(t, sess.TimerArmed())
		sess.Unlock()

		time.Sleep(60 * time.Millisecond)
		assert.Empty(t, fired)
	})

	t.Run("is safe on an idle session", func(t *testing.T) {
		sess := NewStore().Get(1)
		sess.Lock()
		defer sess.Unlock()

		sess.Settle()
		assert.Equal(t, StateIdle, sess.State())
		assert.False(t, sess.TimerArmed())
	})
}

func TestSessionTimeout(t *testing.T) {
	t.Run("fires once and clears the session", func(t *testing.T) {
		sess := NewStore().Get(7)
		fired := make(chan int64, 2)

		sess.Lock()
		sess.Prompt(StateAwaitingIMEI, 20*time.Millisecond, func(id int64) { fired <- id })
		sess.Unlock()

		select {
		case id := <-fired:
			assert.Equal(t, int64(7), id)
		case <-time.After(time.Second):
			t.Fatal("timeout never fired")
		}

		sess.Lock()
		assert.Equal(t, StateIdle, sess.State())
		assert.False(t, sess.TimerArmed())
		sess.Unlock()

		time.Sleep(50 * time.Millisecond)
		assert.Empty(t, fired, "timeout fired more than once")
	})

	t.Run("a fired timer that lost the race to a reply is a no-op", func(t *testing.T) {
		sess := NewStore().Get(7)
		fired := make(chan int64, 1)

		// Hold the session lock across the timer's expiry, the way a handler
		// mid-reply would, then settle before releasing it. The callback has
		// already fired but must notice the session moved on.
		sess.Lock()
		sess.Prompt(StateAwaitingCity, 10*time.Millisecond, func(id int64) { fired <- id })
		time.Sleep(40 * time.Millisecond)
		sess.Settle()
		sess.Unlock()

		time.Sleep(40 * time.Millisecond)
		assert.Empty(t, fired, "stale timeout produced a message")
	})
}

func TestSessionConcurrentChats(t *testing.T) {
	// Hammer independent sessions concurrently; the race detector is the
	// actual assertion here.
	store := NewStore()
	var wg sync.WaitGroup
	for chat := int64(0); chat < 16; chat++ {
		wg.Add(1)
		go func(chat int64) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				sess := store.Get(chat)
				sess.Lock()
				sess.Prompt(StateAwaitingIMEI, time.Millisecond, func(int64) {})
				sess.Settle()
				sess.Unlock()
			}
		}(chat)
	}
	wg.Wait()

	assert.Equal(t, 16, store.Length())
}
