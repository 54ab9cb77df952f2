package form

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()
	assert.False(t, s.InProgress(1))

	sess := s.Begin(1)
	require.NotNil(t, sess)
	assert.True(t, s.InProgress(1))
	assert.Equal(t, 1, s.Count())

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Same(t, sess, got)

	s.End(1)
	assert.False(t, s.InProgress(1))
	_, ok = s.Get(1)
	assert.False(t, ok)

	// ending twice is a no-op
	s.End(1)
}

func TestStoreBeginReplacesSession(t *testing.T) {
	s := NewStore()
	first := s.Begin(7)
	first.Answers.Phone = "+79991234567"

	second := s.Begin(7)
	assert.NotSame(t, first, second)
	assert.Empty(t, second.Answers.Phone)
	assert.Equal(t, 1, s.Count())
}

func TestLockUserSerializesAccess(t *testing.T) {
	s := NewStore()
	sess := s.Begin(42)

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			unlock := s.LockUser(42)
			defer unlock()
			sess.Answers.ToggleCity("mecca")
		}()
	}
	wg.Wait()

	// an even number of toggles leaves the selection empty
	assert.Empty(t, sess.Answers.Cities)
}

func TestLockUserIndependentPerUser(t *testing.T) {
	s := NewStore()
	unlockA := s.LockUser(1)

	done := make(chan struct{})
	go func() {
		unlock := s.LockUser(2)
		unlock()
		close(done)
	}()
	<-done // user 2 must not block on user 1's lock
	unlockA()
}
