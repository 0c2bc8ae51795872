package cache

import "fmt"

// Cache key builders shared by the catalog and events services.
// Keys are namespaced so invalidation can use DeletePattern.

const (
	keyPrefixEvents  = "wq:events"
	keyPrefixCatalog = "wq:catalog"
)

// KeyEvent is the cache key for a single event detail view.
func KeyEvent(eventID string) string {
	return fmt.Sprintf("%s:detail:%s", keyPrefixEvents, eventID)
}

// KeyUpcomingEvents is the cache key for the public upcoming-events list.
func KeyUpcomingEvents(limit int) string {
	return fmt.Sprintf("%s:upcoming:%d", keyPrefixEvents, limit)
}

// PatternEvents matches every cached event read.
func PatternEvents() string {
	return keyPrefixEvents + ":*"
}

// KeyCategories is the cache key for the active category list.
func KeyCategories() string {
	return keyPrefixCatalog + ":categories"
}

// KeyPopularLocations is the cache key for the popular-locations list.
func KeyPopularLocations() string {
	return keyPrefixCatalog + ":locations:popular"
}

// PatternCatalog matches every cached catalog read.
func PatternCatalog() string {
	return keyPrefixCatalog + ":*"
}
