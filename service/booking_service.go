package application

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/TanmaySingh007/StayFinder/domain"
	"github.com/TanmaySingh007/StayFinder/errors"
)

type BookingService struct {
	listings domain.ListingStore
	bookings domain.BookingStore
	cache    domain.ListingCache
	notifier Notifier
	tracer   trace.Tracer
	logger   *logrus.Logger

	// listingLocks serializes check-and-commit per listing. Requests
	// against different listings never contend.
	mu           sync.Mutex
	listingLocks map[string]*sync.Mutex
}

func NewBookingService(listings domain.ListingStore, bookings domain.BookingStore, cache domain.ListingCache, notifier Notifier, tracer trace.Tracer, logger *logrus.Logger) *BookingService {
	return &BookingService{
		listings:     listings,
		bookings:     bookings,
		cache:        cache,
		notifier:     notifier,
		tracer:       tracer,
		logger:       logger,
		listingLocks: make(map[string]*sync.Mutex),
	}
}

func (service *BookingService) lockListing(id primitive.ObjectID) *sync.Mutex {
	service.mu.Lock()
	defer service.mu.Unlock()

	lock, ok := service.listingLocks[id.Hex()]
	if !ok {
		lock = &sync.Mutex{}
		service.listingLocks[id.Hex()] = lock
	}
	return lock
}

// RequestBooking validates a prospective reservation and either confirms it
// or rejects it with a reason. Checks run in a fixed order and the first
// failure wins: authentication, date sanity, capacity, availability.
func (service *BookingService) RequestBooking(ctx context.Context, listingID primitive.ObjectID, guestID string, period domain.DateRange, guests int) (*domain.Booking, error) {
	ctx, span := service.tracer.Start(ctx, "BookingService.RequestBooking")
	defer span.End()

	if guestID == "" {
		span.SetStatus(codes.Error, errors.ErrUnauthenticated.Error())
		return nil, errors.ErrUnauthenticated
	}

	// A stay must cover at least one whole night. Sub-day ranges would
	// quote zero nights and a zero total.
	if !period.IsValid() || period.Nights() < 1 {
		return nil, service.reject(ctx, listingID, guestID, period, guests, errors.ErrInvalidDateRange)
	}

	created, listing, err := service.commit(ctx, listingID, guestID, period, guests)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	service.invalidateCached(ctx, listingID)

	service.logger.Infof("booking %s confirmed for listing %s (%d nights, total %d)",
		created.Reference, listingID.Hex(), period.Nights(), created.Total)

	// The booking is committed and the listing lock released; a slow
	// notification collaborator must not stall other bookings.
	if service.notifier != nil {
		if err := service.notifier.BookingConfirmed(ctx, created, listing); err != nil {
			service.logger.Warnf("confirmation notification failed for booking %s: %v", created.Reference, err)
		}
	}

	return created, nil
}

// commit runs check-and-commit under the listing's lock, so two overlapping
// requests for the same listing can never both confirm.
func (service *BookingService) commit(ctx context.Context, listingID primitive.ObjectID, guestID string, period domain.DateRange, guests int) (*domain.Booking, *domain.Listing, error) {
	ctx, span := service.tracer.Start(ctx, "BookingService.commit")
	defer span.End()

	lock := service.lockListing(listingID)
	lock.Lock()
	defer lock.Unlock()

	listing, err := service.listings.Get(ctx, listingID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, errors.ErrListingNotFound
	}

	if guests < 1 || guests > listing.MaxGuests {
		return nil, nil, service.reject(ctx, listingID, guestID, period, guests, errors.ErrCapacityExceeded)
	}

	if !listing.IsAvailable(period) {
		return nil, nil, service.reject(ctx, listingID, guestID, period, guests, errors.ErrDateRangeUnavailable)
	}

	subtotal, serviceFee, total := domain.Quote(listing.Price, period.Nights())

	booking := &domain.Booking{
		Reference:  uuid.NewString(),
		ListingID:  listingID,
		GuestID:    guestID,
		Period:     period,
		Guests:     guests,
		Subtotal:   subtotal,
		ServiceFee: serviceFee,
		Total:      total,
		Status:     domain.BookingConfirmed,
		CreatedAt:  time.Now(),
	}

	if err := service.listings.AppendBookedRange(ctx, listingID, period); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}

	created, err := service.bookings.Insert(ctx, booking)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		// Roll the ledger back so the dates are not lost for other guests.
		if rollbackErr := service.listings.RemoveBookedRange(ctx, listingID, period); rollbackErr != nil {
			service.logger.Errorf("ledger rollback failed for listing %s: %v", listingID.Hex(), rollbackErr)
		}
		return nil, nil, err
	}

	return created, listing, nil
}

// reject records the failed attempt for audit and returns the reason code.
// The availability ledger is never touched on this path.
func (service *BookingService) reject(ctx context.Context, listingID primitive.ObjectID, guestID string, period domain.DateRange, guests int, reason error) error {
	rejected := &domain.Booking{
		Reference: uuid.NewString(),
		ListingID: listingID,
		GuestID:   guestID,
		Period:    period,
		Guests:    guests,
		Status:    domain.BookingRejected,
		Reason:    reason.Error(),
		CreatedAt: time.Now(),
	}

	if _, err := service.bookings.Insert(ctx, rejected); err != nil {
		service.logger.Warnf("recording rejected booking failed: %v", err)
	}

	service.logger.Infof("booking rejected for listing %s: %v", listingID.Hex(), reason)
	return reason
}

// CancelBooking moves a confirmed booking to Cancelled and frees its dates.
// Only the guest who made the booking may cancel, and only before check-in.
func (service *BookingService) CancelBooking(ctx context.Context, bookingID primitive.ObjectID, guestID string) error {
	ctx, span := service.tracer.Start(ctx, "BookingService.CancelBooking")
	defer span.End()

	if guestID == "" {
		span.SetStatus(codes.Error, errors.ErrUnauthenticated.Error())
		return errors.ErrUnauthenticated
	}

	booking, err := service.bookings.Get(ctx, bookingID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return errors.ErrBookingNotFound
	}

	if booking.GuestID != guestID {
		return errors.ErrNotBookingOwner
	}
	if !time.Now().Before(booking.Period.CheckIn) {
		return errors.ErrNotCancellable
	}

	lock := service.lockListing(booking.ListingID)
	lock.Lock()
	defer lock.Unlock()

	// Re-read under the lock; a concurrent cancel may already have won.
	booking, err = service.bookings.Get(ctx, bookingID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return errors.ErrBookingNotFound
	}
	if booking.Status != domain.BookingConfirmed {
		return errors.ErrNotCancellable
	}

	if err := service.bookings.UpdateStatus(ctx, bookingID, domain.BookingCancelled); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := service.listings.RemoveBookedRange(ctx, booking.ListingID, booking.Period); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	service.invalidateCached(ctx, booking.ListingID)

	service.logger.Infof("booking %s cancelled", booking.Reference)
	return nil
}

func (service *BookingService) GetBookingsByGuest(ctx context.Context, guestID string) (domain.Bookings, error) {
	ctx, span := service.tracer.Start(ctx, "BookingService.GetBookingsByGuest")
	defer span.End()

	return service.bookings.GetByGuest(ctx, guestID)
}

func (service *BookingService) GetBookingsByListing(ctx context.Context, listingID primitive.ObjectID) (domain.Bookings, error) {
	ctx, span := service.tracer.Start(ctx, "BookingService.GetBookingsByListing")
	defer span.End()

	return service.bookings.GetByListing(ctx, listingID)
}

// invalidateCached drops the cached listing and all cached search results
// after the ledger changed. Stale cache entries only ever show availability,
// never grant it, so a failure here is logged and swallowed.
func (service *BookingService) invalidateCached(ctx context.Context, listingID primitive.ObjectID) {
	if service.cache == nil {
		return
	}
	if err := service.cache.InvalidateListing(ctx, listingID.Hex()); err != nil {
		service.logger.Warnf("invalidating cached listing %s failed: %v", listingID.Hex(), err)
	}
	if err := service.cache.InvalidateSearches(ctx); err != nil {
		service.logger.Warnf("invalidating cached searches failed: %v", err)
	}
}
