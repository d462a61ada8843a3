package cache

import (
	"fmt"
)

// cache key for the raw listing collection.
func ListingsKey() string {
	return "listings:raw:all"
}

// cache key for a single raw listing.
func PropertyKey(id string) string {
	return fmt.Sprintf("listings:raw:property:%s", id)
}

// cache key for the set of every key written through SetTracked.
func TrackedKeysSetKey() string {
	return "listings:keys"
}
