package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontrack-app/ontrack/internal/kv"
	"github.com/ontrack-app/ontrack/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := kv.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return store.New(db, nil)
}

func TestRegisterThenLogin(t *testing.T) {
	s := newTestStore(t)

	sess, err := s.Register("alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Username)
	assert.Equal(t, sess, s.Session())

	s.Logout()
	assert.Nil(t, s.Session())

	sess, err = s.Login("alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Username)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Register("alice", "hunter2")
	require.NoError(t, err)

	_, err = s.Register("alice", "different")
	assert.ErrorIs(t, err, store.ErrUserExists)
}

func TestRegisterMissingFields(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Register("", "hunter2")
	assert.ErrorIs(t, err, store.ErrMissingFields)

	_, err = s.Register("alice", "")
	assert.ErrorIs(t, err, store.ErrMissingFields)

	// whitespace-only usernames are empty after trimming
	_, err = s.Register("   ", "hunter2")
	assert.ErrorIs(t, err, store.ErrMissingFields)
}

func TestLoginRequiresExactPair(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Register("alice", "hunter2")
	require.NoError(t, err)
	s.Logout()

	_, err = s.Login("alice", "wrong")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)

	_, err = s.Login("bob", "hunter2")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)

	// usernames are case-sensitive
	_, err = s.Login("Alice", "hunter2")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)
}

func TestLoggedOutOperationsNoOp(t *testing.T) {
	s := newTestStore(t)

	tasks, err := s.Tasks()
	require.NoError(t, err)
	assert.Empty(t, tasks)

	tasks, err = s.AddTask(taskWithTitle("ignored"))
	require.NoError(t, err)
	assert.Empty(t, tasks)

	cols, err := s.Columns()
	require.NoError(t, err)
	assert.Empty(t, cols)

	n, err := s.Completed()
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = s.IncrementCompleted()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSessionsAreIsolatedPerUser(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Register("alice", "pw")
	require.NoError(t, err)
	_, err = s.AddTask(taskWithTitle("alice's task"))
	require.NoError(t, err)
	s.Logout()

	_, err = s.Register("bob", "pw")
	require.NoError(t, err)
	tasks, err := s.Tasks()
	require.NoError(t, err)
	assert.Empty(t, tasks)

	s.Logout()
	_, err = s.Login("alice", "pw")
	require.NoError(t, err)
	tasks, err = s.Tasks()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "alice's task", tasks[0].Title)
}
