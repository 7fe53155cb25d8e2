package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetReturnsEmptyStringWhenAbsent(t *testing.T) {
	s := NewStore()
	assert.Equal(t, "", s.Get("missing"))
}

func TestSetOverwritesUnconditionally(t *testing.T) {
	s := NewStore()
	s.Set("1", "first")
	s.Set("1", "second")
	assert.Equal(t, "second", s.Get("1"))

	s.Set("1", "")
	assert.Equal(t, "", s.Get("1"), "empty string is an accepted draft value")
	assert.Equal(t, 1, s.Len(), "an empty draft is still an entry")
}

func TestClearRemovesEntry(t *testing.T) {
	s := NewStore()
	s.Set("1", "text")
	s.Clear("1")
	assert.Equal(t, "", s.Get("1"))
	assert.Zero(t, s.Len())

	// clearing an absent id must not fail
	s.Clear("missing")
}

func TestRetainPrunesExactlyTheDepartedIDs(t *testing.T) {
	s := NewStore()
	s.Set("1", "a")
	s.Set("2", "b")
	s.Set("3", "c")

	s.Retain([]string{"2"})

	assert.Equal(t, "", s.Get("1"))
	assert.Equal(t, "b", s.Get("2"))
	assert.Equal(t, "", s.Get("3"))
	assert.Equal(t, 1, s.Len())
}

func TestResetDiscardsEverything(t *testing.T) {
	s := NewStore()
	s.Set("1", "a")
	s.Set("2", "b")
	s.Reset()
	assert.Zero(t, s.Len())
}
