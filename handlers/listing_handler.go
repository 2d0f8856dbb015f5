package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/TanmaySingh007/StayFinder/domain"
	appErrors "github.com/TanmaySingh007/StayFinder/errors"
	application "github.com/TanmaySingh007/StayFinder/service"
)

type KeyProduct struct{}

type ListingHandler struct {
	service *application.SearchService
	tracer  trace.Tracer
	logger  *logrus.Logger
}

func NewListingHandler(service *application.SearchService, tracer trace.Tracer, logger *logrus.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		tracer:  tracer,
		logger:  logger,
	}
}

func (handler *ListingHandler) Init(router *mux.Router) {
	getListings := router.Methods(http.MethodGet).Subrouter()
	getListings.HandleFunc("/", handler.GetAll)
	searchListings := router.Methods(http.MethodGet).Subrouter()
	searchListings.HandleFunc("/search", handler.SearchListings)
	getListingByID := router.Methods(http.MethodGet).Subrouter()
	getListingByID.HandleFunc("/{id}", handler.GetByID)
	postListing := router.Methods(http.MethodPost).Subrouter()
	postListing.HandleFunc("/", handler.CreateListing)
	postListing.Use(handler.MiddlewareListingDeserialization)
}

func (handler *ListingHandler) GetAll(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "ListingHandler.GetAll")
	defer span.End()

	listings, err := handler.service.GetAll(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}
	jsonResponse(listings, rw)
}

func (handler *ListingHandler) GetByID(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "ListingHandler.GetByID")
	defer span.End()

	vars := mux.Vars(h)
	id, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		rw.WriteHeader(http.StatusBadRequest)
		return
	}

	listing, err := handler.service.GetListing(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		rw.WriteHeader(http.StatusNotFound)
		return
	}
	jsonResponse(listing, rw)
}

// SearchListings maps the query string onto a FilterSpec and runs the
// filter engine. Omitted parameters keep their pass-all defaults.
func (handler *ListingHandler) SearchListings(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "ListingHandler.SearchListings")
	defer span.End()

	spec, ranked, err := specFromQuery(h)
	if err != nil {
		handler.logger.Warnf("malformed search request: %v", err)
		http.Error(rw, appErrors.ErrInvalidFilterSpec.Error(), http.StatusBadRequest)
		return
	}

	listings, err := handler.service.Search(ctx, spec, ranked)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if err == appErrors.ErrInvalidFilterSpec {
			http.Error(rw, err.Error(), http.StatusBadRequest)
			return
		}
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}
	jsonResponse(listings, rw)
}

func (handler *ListingHandler) CreateListing(rw http.ResponseWriter, h *http.Request) {
	ctx, span := handler.tracer.Start(h.Context(), "ListingHandler.CreateListing")
	defer span.End()

	listing := h.Context().Value(KeyProduct{}).(*domain.Listing)
	created, err := handler.service.CreateListing(ctx, listing)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Warnf("create listing rejected: %v", err)
		http.Error(rw, err.Error(), http.StatusBadRequest)
		return
	}

	rw.WriteHeader(http.StatusCreated)
	jsonResponse(created, rw)
}

func (handler *ListingHandler) MiddlewareListingDeserialization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		listing := &domain.Listing{}
		err := listing.FromJSON(h.Body)
		if err != nil {
			http.Error(rw, appErrors.InvalidRequestFormatError, http.StatusBadRequest)
			handler.logger.Println(err)
			return
		}
		ctx := context.WithValue(h.Context(), KeyProduct{}, listing)
		h = h.WithContext(ctx)
		next.ServeHTTP(rw, h)
	})
}

func specFromQuery(h *http.Request) (domain.FilterSpec, bool, error) {
	spec := domain.DefaultFilterSpec()
	query := h.URL.Query()

	spec.Location = query.Get("location")
	if raw := query.Get("propertyType"); raw != "" {
		spec.PropertyType = raw
	}
	if raw := query.Get("guests"); raw != "" {
		guests, err := strconv.Atoi(raw)
		if err != nil {
			return spec, false, err
		}
		spec.Guests = guests
	}
	if raw := query.Get("minPrice"); raw != "" {
		minPrice, err := strconv.Atoi(raw)
		if err != nil {
			return spec, false, err
		}
		spec.MinPrice = minPrice
	}
	if raw := query.Get("maxPrice"); raw != "" {
		maxPrice, err := strconv.Atoi(raw)
		if err != nil {
			return spec, false, err
		}
		spec.MaxPrice = maxPrice
	}
	if raw := query.Get("checkIn"); raw != "" {
		checkIn, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return spec, false, err
		}
		spec.CheckIn = &checkIn
	}
	if raw := query.Get("checkOut"); raw != "" {
		checkOut, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return spec, false, err
		}
		spec.CheckOut = &checkOut
	}
	if raw := query.Get("amenities"); raw != "" {
		spec.Amenities = strings.Split(raw, ",")
	}

	ranked := query.Get("sort") == "recommended"
	return spec, ranked, nil
}

func jsonResponse(object interface{}, w http.ResponseWriter) {
	resp, err := json.Marshal(object)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(resp)
}

func ExtractTraceInfoMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
