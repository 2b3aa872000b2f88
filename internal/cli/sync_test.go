package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncState_AppliesCurrentGeneration(t *testing.T) {
	var s syncState[string]

	gen := s.begin()
	assert.True(t, s.loading)

	require.True(t, s.apply(gen, []string{"a", "b"}, nil))
	assert.False(t, s.loading)
	assert.Equal(t, []string{"a", "b"}, s.items)
	assert.NoError(t, s.err)
}

func TestSyncState_DropsStaleCompletions(t *testing.T) {
	var s syncState[string]

	stale := s.begin()
	fresh := s.begin()

	require.True(t, s.apply(fresh, []string{"fresh"}, nil))

	// The slow fetch that lost the race must not overwrite newer data or
	// resurrect the loading flag.
	assert.False(t, s.apply(stale, []string{"stale"}, nil))
	assert.Equal(t, []string{"fresh"}, s.items)
	assert.False(t, s.loading)
}

func TestSyncState_StaleErrorIsDropped(t *testing.T) {
	var s syncState[string]

	stale := s.begin()
	fresh := s.begin()

	require.True(t, s.apply(fresh, []string{"fresh"}, nil))
	assert.False(t, s.apply(stale, nil, errors.New("late failure")))
	assert.NoError(t, s.err)
	assert.Equal(t, []string{"fresh"}, s.items)
}

func TestSyncState_FailureClearsCollection(t *testing.T) {
	var s syncState[string]

	gen := s.begin()
	require.True(t, s.apply(gen, []string{"a"}, nil))

	gen = s.begin()
	boom := errors.New("store unreachable")
	require.True(t, s.apply(gen, nil, boom))

	assert.Nil(t, s.items, "stale data is never preserved behind an error")
	assert.Equal(t, boom, s.err)
	assert.False(t, s.loading)
}

func TestSyncState_RecoveryClearsError(t *testing.T) {
	var s syncState[string]

	gen := s.begin()
	require.True(t, s.apply(gen, nil, errors.New("boom")))

	gen = s.begin()
	require.True(t, s.apply(gen, []string{"a"}, nil))
	assert.NoError(t, s.err)
	assert.Equal(t, []string{"a"}, s.items)
}
