package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (*Booking, error)
	GetByGuest(ctx context.Context, guestID string) (Bookings, error)
	GetByListing(ctx context.Context, listingID primitive.ObjectID) (Bookings, error)
	Insert(ctx context.Context, booking *Booking) (*Booking, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status BookingStatus) error
}
