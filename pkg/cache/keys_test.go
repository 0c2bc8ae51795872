package cache

import (
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventKeysStayUnderEventsPattern(t *testing.T) {
	pattern := PatternEvents()

	keys := []string{
		KeyEvent("4f2c2b1e-9d1a-4e63-8f7a-1f2d3c4b5a69"),
		KeyUpcomingEvents(6),
		KeyUpcomingEvents(12),
	}
	for _, key := range keys {
		matched, err := path.Match(pattern, key)
		assert.NoError(t, err)
		assert.True(t, matched, "key %q should match %q", key, pattern)
	}
}

func TestCatalogKeysStayUnderCatalogPattern(t *testing.T) {
	pattern := PatternCatalog()

	for _, key := range []string{KeyCategories(), KeyPopularLocations()} {
		matched, err := path.Match(pattern, key)
		assert.NoError(t, err)
		assert.True(t, matched, "key %q should match %q", key, pattern)
	}
}

func TestNamespacesDoNotOverlap(t *testing.T) {
	matched, err := path.Match(PatternEvents(), KeyCategories())
	assert.NoError(t, err)
	assert.False(t, matched)

	matched, err = path.Match(PatternCatalog(), KeyUpcomingEvents(6))
	assert.NoError(t, err)
	assert.False(t, matched)
}

func TestUpcomingKeyVariesByLimit(t *testing.T) {
	assert.NotEqual(t, KeyUpcomingEvents(6), KeyUpcomingEvents(12))
}
