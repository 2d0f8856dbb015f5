package store

import (
	"fmt"
)

const (
	cacheListing = "listing:%s"
	cacheSearch  = "search:%s"
)

func constructListingKey(listingId string) string {
	return fmt.Sprintf(cacheListing, listingId)
}

func constructSearchKey(key string) string {
	return fmt.Sprintf(cacheSearch, key)
}
