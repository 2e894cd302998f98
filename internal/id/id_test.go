package id

import (
	"regexp"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uuidV4 = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestSession_Format(t *testing.T) {
	for i := 0; i < 50; i++ {
		s := Session()
		assert.Regexp(t, uuidV4, s)
	}
}

func TestSession_Uniqueness(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		s := Session()
		require.False(t, seen[s], "duplicate session id %s", s)
		seen[s] = true
	}
}

func TestEvent_SortsInCreationOrder(t *testing.T) {
	ids := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		ids = append(ids, Event())
		time.Sleep(time.Millisecond)
	}
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	assert.Equal(t, ids, sorted)
}

func TestEventTime(t *testing.T) {
	before := time.Now().Add(-time.Second)
	ts, ok := EventTime(Event())
	require.True(t, ok)
	assert.True(t, ts.After(before), "event time %v should be after %v", ts, before)

	_, ok = EventTime(Session())
	assert.False(t, ok, "v4 uuid has no embedded time")

	_, ok = EventTime("not-a-uuid")
	assert.False(t, ok)
}

func TestShort(t *testing.T) {
	s := Short()
	assert.Len(t, s, 8)
	assert.Regexp(t, `^[0-9a-f]{8}$`, s)
}
