package domain

import "context"

// ListingCache is a read-through cache in front of the listing store.
// Misses are not errors for the caller; the store is the source of truth.
type ListingCache interface {
	PostListing(ctx context.Context, listing *Listing) error
	GetListing(ctx context.Context, id string) (*Listing, error)
	PostSearchResults(ctx context.Context, key string, listings Listings) error
	GetSearchResults(ctx context.Context, key string) (Listings, error)
	InvalidateListing(ctx context.Context, id string) error
	InvalidateSearches(ctx context.Context) error
}
