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
	BOOKING_COLLECTION = "bookings"
)

type BookingMongoDBStore struct {
	bookings *mongo.Collection
	tracer   trace.Tracer
}

func NewBookingMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.BookingStore {
	bookings := client.Database(DATABASE).Collection(BOOKING_COLLECTION)
	return &BookingMongoDBStore{
		bookings: bookings,
		tracer:   tracer,
	}
}

func (store *BookingMongoDBStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Booking, error) {
	ctx, span := store.tracer.Start(ctx, "BookingStore.Get")
	defer span.End()

	filter := bson.M{"_id": id}
	booking, err := store.filterOne(filter)
	if err == mongo.ErrNoDocuments {
		span.SetStatus(codes.Error, err.Error())
		return nil, appErrors.ErrBookingNotFound
	}
	return booking, err
}

func (store *BookingMongoDBStore) GetByGuest(ctx context.Context, guestID string) (domain.Bookings, error) {
	ctx, span := store.tracer.Start(ctx, "BookingStore.GetByGuest")
	defer span.End()

	filter := bson.M{"guestId": guestID}
	return store.filter(filter)
}

func (store *BookingMongoDBStore) GetByListing(ctx context.Context, listingID primitive.ObjectID) (domain.Bookings, error) {
	ctx, span := store.tracer.Start(ctx, "BookingStore.GetByListing")
	defer span.End()

	filter := bson.M{"listingId": listingID}
	return store.filter(filter)
}

func (store *BookingMongoDBStore) Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	ctx, span := store.tracer.Start(ctx, "BookingStore.Insert")
	defer span.End()

	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	result, err := store.bookings.InsertOne(ctx, booking)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	booking.ID = result.InsertedID.(primitive.ObjectID)
	return booking, nil
}

func (store *BookingMongoDBStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.BookingStatus) error {
	ctx, span := store.tracer.Start(ctx, "BookingStore.UpdateStatus")
	defer span.End()

	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"status": status}}

	result, err := store.bookings.UpdateOne(ctx, filter, update)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result.MatchedCount == 0 {
		return appErrors.ErrBookingNotFound
	}
	return nil
}

func (store *BookingMongoDBStore) filter(filter interface{}) (domain.Bookings, error) {
	cursor, err := store.bookings.Find(context.TODO(), filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(context.TODO())
	return decodeBookings(cursor)
}

func (store *BookingMongoDBStore) filterOne(filter interface{}) (booking *domain.Booking, err error) {
	result := store.bookings.FindOne(context.TODO(), filter)
	err = result.Decode(&booking)
	return
}

func decodeBookings(cursor *mongo.Cursor) (bookings domain.Bookings, err error) {
	for cursor.Next(context.TODO()) {
		var booking domain.Booking
		err = cursor.Decode(&booking)
		if err != nil {
			return
		}
		bookings = append(bookings, &booking)
	}
	err = cursor.Err()
	return
}
