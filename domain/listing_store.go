package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ListingStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (*Listing, error)
	GetAll(ctx context.Context) (Listings, error)
	Insert(ctx context.Context, listing *Listing) (*Listing, error)
	AppendBookedRange(ctx context.Context, id primitive.ObjectID, booked DateRange) error
	RemoveBookedRange(ctx context.Context, id primitive.ObjectID, booked DateRange) error
	Count(ctx context.Context) (int64, error)
}
