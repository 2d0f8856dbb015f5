package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/TanmaySingh007/StayFinder/domain"
	appErrors "github.com/TanmaySingh007/StayFinder/errors"
	application "github.com/TanmaySingh007/StayFinder/service"
)

type KeyBooking struct{}

type BookingHandler struct {
	service *application.BookingService
	tracer  trace.Tracer
	logger  *logrus.Logger
}

func NewBookingHandler(service *application.BookingService, tracer trace.Tracer, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		tracer:  tracer,
		logger:  logger,
	}
}

func (handler *BookingHandler) Init(router *mux.Router) {
	postBooking := router.Methods(http.MethodPost).Subrouter()
	postBooking.HandleFunc("/bookings", handler.CreateBooking)
	postBooking.Use(handler.MiddlewareBookingDeserialization)
	getByGuest := router.Methods(http.MethodGet).Subrouter()
	getByGuest.HandleFunc("/bookings/guest", handler.GetBookingsByGuest)
	getByListing := router.Methods(http.MethodGet).Subrouter()
	getByListing.HandleFunc("/bookings/listing/{id}", handler.GetBookingsByListing)
	cancelBooking := router.Methods(http.MethodPatch).Subrouter()
	cancelBooking.HandleFunc("/bookings/cancel/{id}", handler.CancelBooking)
}

func (handler *BookingHandler) CreateBooking(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "BookingHandler.CreateBooking")
	defer span.End()

	request := h.Context().Value(KeyBooking{}).(*domain.BookingRequest)

	listingID, err := primitive.ObjectIDFromHex(request.ListingID)
	if err != nil {
		http.Error(rw, "Invalid listing id", http.StatusBadRequest)
		return
	}

	guestID := extractRequester(h)
	period := domain.DateRange{CheckIn: request.CheckIn, CheckOut: request.CheckOut}

	booking, err := handler.service.RequestBooking(ctx, listingID, guestID, period, request.Guests)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(rw, err.Error(), bookingErrorStatus(err))
		return
	}

	rw.WriteHeader(http.StatusCreated)
	jsonResponse(booking, rw)
}

func (handler *BookingHandler) GetBookingsByGuest(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "BookingHandler.GetBookingsByGuest")
	defer span.End()

	guestID := extractRequester(h)
	if guestID == "" {
		http.Error(rw, appErrors.ErrUnauthenticated.Error(), http.StatusUnauthorized)
		return
	}

	bookings, err := handler.service.GetBookingsByGuest(ctx, guestID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}
	jsonResponse(bookings, rw)
}

func (handler *BookingHandler) GetBookingsByListing(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "BookingHandler.GetBookingsByListing")
	defer span.End()

	vars := mux.Vars(h)
	listingID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(rw, "Invalid listing id", http.StatusBadRequest)
		return
	}

	bookings, err := handler.service.GetBookingsByListing(ctx, listingID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}
	jsonResponse(bookings, rw)
}

func (handler *BookingHandler) CancelBooking(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "BookingHandler.CancelBooking")
	defer span.End()

	vars := mux.Vars(h)
	bookingID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(rw, "Invalid booking id", http.StatusBadRequest)
		return
	}

	guestID := extractRequester(h)
	if err := handler.service.CancelBooking(ctx, bookingID, guestID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(rw, err.Error(), bookingErrorStatus(err))
		return
	}

	rw.WriteHeader(http.StatusOK)
}

var validate = validator.New()

func (handler *BookingHandler) MiddlewareBookingDeserialization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		request := &domain.BookingRequest{}
		err := request.FromJSON(h.Body)
		if err != nil {
			http.Error(rw, appErrors.InvalidRequestFormatError, http.StatusBadRequest)
			handler.logger.Println(err)
			return
		}
		if err := validate.Struct(request); err != nil {
			http.Error(rw, appErrors.InvalidRequestFormatError, http.StatusBadRequest)
			handler.logger.Println(err)
			return
		}
		ctx := context.WithValue(h.Context(), KeyBooking{}, request)
		h = h.WithContext(ctx)
		next.ServeHTTP(rw, h)
	})
}

// bookingErrorStatus translates reason codes to HTTP statuses. Every
// rejection keeps its specific reason in the response body.
func bookingErrorStatus(err error) int {
	switch {
	case errors.Is(err, appErrors.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, appErrors.ErrInvalidDateRange),
		errors.Is(err, appErrors.ErrCapacityExceeded):
		return http.StatusBadRequest
	case errors.Is(err, appErrors.ErrDateRangeUnavailable):
		return http.StatusConflict
	case errors.Is(err, appErrors.ErrListingNotFound),
		errors.Is(err, appErrors.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, appErrors.ErrNotBookingOwner):
		return http.StatusForbidden
	case errors.Is(err, appErrors.ErrNotCancellable):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
