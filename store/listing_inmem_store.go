package store

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TanmaySingh007/StayFinder/domain"
	appErrors "github.com/TanmaySingh007/StayFinder/errors"
)

// ListingInMemoryStore keeps the catalog in a map. It backs tests and local
// runs without a database; the interface contract matches the Mongo store.
type ListingInMemoryStore struct {
	mu       sync.RWMutex
	listings map[string]*domain.Listing
	order    []string
}

func NewListingInMemoryStore() *ListingInMemoryStore {
	return &ListingInMemoryStore{
		listings: make(map[string]*domain.Listing),
	}
}

func (store *ListingInMemoryStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Listing, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	listing, ok := store.listings[id.Hex()]
	if !ok {
		return nil, appErrors.ErrListingNotFound
	}
	return copyListing(listing), nil
}

// GetAll returns listings in insertion order, the catalog order the filter
// engine must preserve.
func (store *ListingInMemoryStore) GetAll(ctx context.Context) (domain.Listings, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	all := make(domain.Listings, 0, len(store.order))
	for _, id := range store.order {
		all = append(all, copyListing(store.listings[id]))
	}
	return all, nil
}

func (store *ListingInMemoryStore) Insert(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if listing.ID.IsZero() {
		listing.ID = primitive.NewObjectID()
	}
	stored := copyListing(listing)
	if stored.BookedRanges == nil {
		stored.BookedRanges = []domain.DateRange{}
	}
	store.listings[stored.ID.Hex()] = stored
	store.order = append(store.order, stored.ID.Hex())
	return copyListing(stored), nil
}

func (store *ListingInMemoryStore) AppendBookedRange(ctx context.Context, id primitive.ObjectID, booked domain.DateRange) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	listing, ok := store.listings[id.Hex()]
	if !ok {
		return appErrors.ErrListingNotFound
	}
	listing.BookedRanges = append(listing.BookedRanges, booked)
	return nil
}

func (store *ListingInMemoryStore) RemoveBookedRange(ctx context.Context, id primitive.ObjectID, booked domain.DateRange) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	listing, ok := store.listings[id.Hex()]
	if !ok {
		return appErrors.ErrListingNotFound
	}

	kept := listing.BookedRanges[:0]
	for _, r := range listing.BookedRanges {
		if !r.CheckIn.Equal(booked.CheckIn) || !r.CheckOut.Equal(booked.CheckOut) {
			kept = append(kept, r)
		}
	}
	listing.BookedRanges = kept
	return nil
}

func (store *ListingInMemoryStore) Count(ctx context.Context) (int64, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return int64(len(store.listings)), nil
}

func copyListing(listing *domain.Listing) *domain.Listing {
	clone := *listing
	clone.Images = append([]string(nil), listing.Images...)
	clone.Amenities = append([]string(nil), listing.Amenities...)
	clone.BookedRanges = append([]domain.DateRange(nil), listing.BookedRanges...)
	return &clone
}
