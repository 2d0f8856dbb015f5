package store

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TanmaySingh007/StayFinder/domain"
	appErrors "github.com/TanmaySingh007/StayFinder/errors"
)

type BookingInMemoryStore struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking
}

func NewBookingInMemoryStore() *BookingInMemoryStore {
	return &BookingInMemoryStore{
		bookings: make(map[string]*domain.Booking),
	}
}

func (store *BookingInMemoryStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Booking, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	booking, ok := store.bookings[id.Hex()]
	if !ok {
		return nil, appErrors.ErrBookingNotFound
	}
	clone := *booking
	return &clone, nil
}

func (store *BookingInMemoryStore) GetByGuest(ctx context.Context, guestID string) (domain.Bookings, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	var matched domain.Bookings
	for _, booking := range store.bookings {
		if booking.GuestID == guestID {
			clone := *booking
			matched = append(matched, &clone)
		}
	}
	return matched, nil
}

func (store *BookingInMemoryStore) GetByListing(ctx context.Context, listingID primitive.ObjectID) (domain.Bookings, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	var matched domain.Bookings
	for _, booking := range store.bookings {
		if booking.ListingID == listingID {
			clone := *booking
			matched = append(matched, &clone)
		}
	}
	return matched, nil
}

func (store *BookingInMemoryStore) Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	clone := *booking
	store.bookings[clone.ID.Hex()] = &clone
	result := clone
	return &result, nil
}

func (store *BookingInMemoryStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.BookingStatus) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	booking, ok := store.bookings[id.Hex()]
	if !ok {
		return appErrors.ErrBookingNotFound
	}
	booking.Status = status
	return nil
}
