package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cristalhq/jwt/v4"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"github.com/TanmaySingh007/StayFinder/domain"
	application "github.com/TanmaySingh007/StayFinder/service"
	"github.com/TanmaySingh007/StayFinder/store"
)

// buildTestRouter wires the handlers against in-memory stores and a test
// signing key, the same shape startup gives them in production.
func buildTestRouter(t *testing.T) (*mux.Router, *store.ListingInMemoryStore, domain.Listings) {
	t.Helper()

	jwtKey = []byte("testsecret")
	verifier, _ = jwt.NewVerifierHS(jwt.HS256, jwtKey)

	listings := store.NewListingInMemoryStore()
	bookings := store.NewBookingInMemoryStore()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	tracer := trace.NewNoopTracerProvider().Tracer("test")

	var seeded domain.Listings
	for _, listing := range store.DemoCatalog() {
		created, err := listings.Insert(context.Background(), listing)
		if err != nil {
			t.Fatalf("seeding failed: %v", err)
		}
		seeded = append(seeded, created)
	}

	searchService := application.NewSearchService(listings, nil, tracer, logger)
	bookingService := application.NewBookingService(listings, bookings, nil, nil, tracer, logger)

	router := mux.NewRouter()
	NewBookingHandler(bookingService, tracer, logger).Init(router)
	NewListingHandler(searchService, tracer, logger).Init(router)

	return router, listings, seeded
}

func signTestToken(t *testing.T, userID string) string {
	t.Helper()

	signer, err := jwt.NewSignerHS(jwt.HS256, jwtKey)
	if err != nil {
		t.Fatalf("signer: %v", err)
	}
	token, err := jwt.NewBuilder(signer).Build(map[string]string{"userId": userID})
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return token.String()
}

func bookingBody(listingID string, checkIn, checkOut time.Time, guests int) *bytes.Reader {
	body, _ := json.Marshal(map[string]interface{}{
		"listingId": listingID,
		"checkIn":   checkIn,
		"checkOut":  checkOut,
		"guests":    guests,
	})
	return bytes.NewReader(body)
}

func TestSearchEndpoint(t *testing.T) {
	router, _, _ := buildTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/search?maxPrice=300", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var result domain.Listings
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(result) != 3 {
		t.Errorf("expected 3 listings under 300, got %d", len(result))
	}
	for _, l := range result {
		if l.Price > 300 {
			t.Errorf("listing %q priced %d above the limit", l.Title, l.Price)
		}
	}
}

func TestSearchEndpointInvalidSpec(t *testing.T) {
	router, _, _ := buildTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/search?minPrice=500&maxPrice=100", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for min above max, got %d", resp.Code)
	}
}

func TestCreateBookingEndpoint(t *testing.T) {
	router, _, seeded := buildTestRouter(t)
	villa := seeded[0]

	checkIn := time.Date(2027, 7, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2027, 7, 13, 0, 0, 0, 0, time.UTC)

	req := httptest.NewRequest(http.MethodPost, "/bookings", bookingBody(villa.ID.Hex(), checkIn, checkOut, 4))
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "guest-1"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var booking domain.Booking
	if err := json.NewDecoder(resp.Body).Decode(&booking); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if booking.Status != domain.BookingConfirmed {
		t.Errorf("status = %s, want Confirmed", booking.Status)
	}
	if booking.Total != 1539 {
		t.Errorf("total = %d, want 1539", booking.Total)
	}
}

func TestCreateBookingEndpointUnauthenticated(t *testing.T) {
	router, _, seeded := buildTestRouter(t)
	villa := seeded[0]

	checkIn := time.Date(2027, 7, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2027, 7, 13, 0, 0, 0, 0, time.UTC)

	req := httptest.NewRequest(http.MethodPost, "/bookings", bookingBody(villa.ID.Hex(), checkIn, checkOut, 4))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a token, got %d", resp.Code)
	}
}

func TestCreateBookingEndpointConflict(t *testing.T) {
	router, _, seeded := buildTestRouter(t)
	villa := seeded[0]

	checkIn := time.Date(2027, 7, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2027, 7, 13, 0, 0, 0, 0, time.UTC)

	first := httptest.NewRequest(http.MethodPost, "/bookings", bookingBody(villa.ID.Hex(), checkIn, checkOut, 2))
	first.Header.Set("Authorization", "Bearer "+signTestToken(t, "guest-1"))
	firstResp := httptest.NewRecorder()
	router.ServeHTTP(firstResp, first)
	if firstResp.Code != http.StatusCreated {
		t.Fatalf("first booking: expected 201, got %d", firstResp.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/bookings", bookingBody(villa.ID.Hex(), checkIn, checkOut, 2))
	second.Header.Set("Authorization", "Bearer "+signTestToken(t, "guest-2"))
	secondResp := httptest.NewRecorder()
	router.ServeHTTP(secondResp, second)

	if secondResp.Code != http.StatusConflict {
		t.Errorf("expected 409 for overlapping dates, got %d", secondResp.Code)
	}
}

func TestCreateBookingEndpointZeroGuests(t *testing.T) {
	router, _, seeded := buildTestRouter(t)
	villa := seeded[0]

	checkIn := time.Date(2027, 7, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2027, 7, 13, 0, 0, 0, 0, time.UTC)

	req := httptest.NewRequest(http.MethodPost, "/bookings", bookingBody(villa.ID.Hex(), checkIn, checkOut, 0))
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "guest-1"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for zero guests, got %d", resp.Code)
	}
}

func TestCreateBookingEndpointCapacity(t *testing.T) {
	router, _, seeded := buildTestRouter(t)
	villa := seeded[0] // sleeps 8

	checkIn := time.Date(2027, 7, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2027, 7, 13, 0, 0, 0, 0, time.UTC)

	req := httptest.NewRequest(http.MethodPost, "/bookings", bookingBody(villa.ID.Hex(), checkIn, checkOut, 9))
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "guest-1"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for too many guests, got %d", resp.Code)
	}
}

func TestGetListingEndpoint(t *testing.T) {
	router, _, seeded := buildTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/%s", seeded[2].ID.Hex()), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var listing domain.Listing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if listing.Title != "Cozy Mountain Cabin" {
		t.Errorf("got %q, want the cabin", listing.Title)
	}
}
