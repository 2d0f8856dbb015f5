package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/TanmaySingh007/StayFinder/domain"
	appErrors "github.com/TanmaySingh007/StayFinder/errors"
)

const (
	DATABASE           = "stayfinder"
	LISTING_COLLECTION = "listings"
)

type ListingMongoDBStore struct {
	listings *mongo.Collection
	tracer   trace.Tracer
}

func NewListingMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.ListingStore {
	listings := client.Database(DATABASE).Collection(LISTING_COLLECTION)
	return &ListingMongoDBStore{
		listings: listings,
		tracer:   tracer,
	}
}

func (store *ListingMongoDBStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Listing, error) {
	ctx, span := store.tracer.Start(ctx, "ListingStore.Get")
	defer span.End()

	filter := bson.M{"_id": id}
	listing, err := store.filterOne(filter)
	if err == mongo.ErrNoDocuments {
		span.SetStatus(codes.Error, err.Error())
		return nil, appErrors.ErrListingNotFound
	}
	return listing, err
}

func (store *ListingMongoDBStore) GetAll(ctx context.Context) (domain.Listings, error) {
	ctx, span := store.tracer.Start(ctx, "ListingStore.GetAll")
	defer span.End()

	filter := bson.D{{}}
	return store.filter(filter)
}

func (store *ListingMongoDBStore) Insert(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	ctx, span := store.tracer.Start(ctx, "ListingStore.Insert")
	defer span.End()

	if listing.ID.IsZero() {
		listing.ID = primitive.NewObjectID()
	}
	if listing.BookedRanges == nil {
		listing.BookedRanges = []domain.DateRange{}
	}
	result, err := store.listings.InsertOne(ctx, listing)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	listing.ID = result.InsertedID.(primitive.ObjectID)
	return listing, nil
}

func (store *ListingMongoDBStore) AppendBookedRange(ctx context.Context, id primitive.ObjectID, booked domain.DateRange) error {
	ctx, span := store.tracer.Start(ctx, "ListingStore.AppendBookedRange")
	defer span.End()

	filter := bson.M{"_id": id}
	update := bson.M{"$push": bson.M{"bookedRanges": booked}}

	result, err := store.listings.UpdateOne(ctx, filter, update)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result.MatchedCount == 0 {
		return appErrors.ErrListingNotFound
	}
	return nil
}

func (store *ListingMongoDBStore) RemoveBookedRange(ctx context.Context, id primitive.ObjectID, booked domain.DateRange) error {
	ctx, span := store.tracer.Start(ctx, "ListingStore.RemoveBookedRange")
	defer span.End()

	filter := bson.M{"_id": id}
	update := bson.M{"$pull": bson.M{"bookedRanges": bson.M{
		"checkIn":  booked.CheckIn,
		"checkOut": booked.CheckOut,
	}}}

	result, err := store.listings.UpdateOne(ctx, filter, update)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result.MatchedCount == 0 {
		return appErrors.ErrListingNotFound
	}
	return nil
}

func (store *ListingMongoDBStore) Count(ctx context.Context) (int64, error) {
	ctx, span := store.tracer.Start(ctx, "ListingStore.Count")
	defer span.End()

	return store.listings.CountDocuments(ctx, bson.D{{}})
}

func (store *ListingMongoDBStore) filter(filter interface{}) (domain.Listings, error) {
	cursor, err := store.listings.Find(context.TODO(), filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(context.TODO())
	return decodeListings(cursor)
}

func (store *ListingMongoDBStore) filterOne(filter interface{}) (listing *domain.Listing, err error) {
	result := store.listings.FindOne(context.TODO(), filter)
	err = result.Decode(&listing)
	return
}

func decodeListings(cursor *mongo.Cursor) (listings domain.Listings, err error) {
	for cursor.Next(context.TODO()) {
		var listing domain.Listing
		err = cursor.Decode(&listing)
		if err != nil {
			return
		}
		listings = append(listings, &listing)
	}
	err = cursor.Err()
	return
}
