package domain_test

import (
	"testing"
	"time"

	"github.com/TanmaySingh007/StayFinder/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateRangeNights(t *testing.T) {
	cases := []struct {
		name  string
		stay  domain.DateRange
		wants int
	}{
		{"one night", domain.DateRange{CheckIn: date(2026, 3, 10), CheckOut: date(2026, 3, 11)}, 1},
		{"three nights", domain.DateRange{CheckIn: date(2026, 3, 10), CheckOut: date(2026, 3, 13)}, 3},
		{"same day", domain.DateRange{CheckIn: date(2026, 3, 10), CheckOut: date(2026, 3, 10)}, 0},
	}

	for _, c := range cases {
		if got := c.stay.Nights(); got != c.wants {
			t.Errorf("%s: Nights() = %d, want %d", c.name, got, c.wants)
		}
	}
}

func TestDateRangeIsValid(t *testing.T) {
	valid := domain.DateRange{CheckIn: date(2026, 3, 10), CheckOut: date(2026, 3, 12)}
	if !valid.IsValid() {
		t.Error("expected valid range to pass")
	}

	sameDay := domain.DateRange{CheckIn: date(2026, 3, 10), CheckOut: date(2026, 3, 10)}
	if sameDay.IsValid() {
		t.Error("check-in equal to check-out must be invalid")
	}

	inverted := domain.DateRange{CheckIn: date(2026, 3, 12), CheckOut: date(2026, 3, 10)}
	if inverted.IsValid() {
		t.Error("check-out before check-in must be invalid")
	}
}

func TestDateRangeOverlaps(t *testing.T) {
	base := domain.DateRange{CheckIn: date(2026, 3, 10), CheckOut: date(2026, 3, 15)}

	cases := []struct {
		name  string
		other domain.DateRange
		wants bool
	}{
		{"identical", base, true},
		{"contained", domain.DateRange{CheckIn: date(2026, 3, 11), CheckOut: date(2026, 3, 13)}, true},
		{"partial front", domain.DateRange{CheckIn: date(2026, 3, 8), CheckOut: date(2026, 3, 11)}, true},
		{"partial back", domain.DateRange{CheckIn: date(2026, 3, 14), CheckOut: date(2026, 3, 18)}, true},
		{"back to back before", domain.DateRange{CheckIn: date(2026, 3, 5), CheckOut: date(2026, 3, 10)}, false},
		{"back to back after", domain.DateRange{CheckIn: date(2026, 3, 15), CheckOut: date(2026, 3, 20)}, false},
		{"disjoint", domain.DateRange{CheckIn: date(2026, 4, 1), CheckOut: date(2026, 4, 5)}, false},
	}

	for _, c := range cases {
		if got := base.Overlaps(c.other); got != c.wants {
			t.Errorf("%s: Overlaps() = %t, want %t", c.name, got, c.wants)
		}
		if got := c.other.Overlaps(base); got != c.wants {
			t.Errorf("%s (reversed): Overlaps() = %t, want %t", c.name, got, c.wants)
		}
	}
}

func TestListingIsAvailable(t *testing.T) {
	listing := &domain.Listing{
		BookedRanges: []domain.DateRange{
			{CheckIn: date(2026, 3, 10), CheckOut: date(2026, 3, 15)},
		},
	}

	if listing.IsAvailable(domain.DateRange{CheckIn: date(2026, 3, 12), CheckOut: date(2026, 3, 14)}) {
		t.Error("overlapping stay must not be available")
	}
	if !listing.IsAvailable(domain.DateRange{CheckIn: date(2026, 3, 15), CheckOut: date(2026, 3, 18)}) {
		t.Error("stay starting on another booking's check-out day must be available")
	}
}

func TestQuote(t *testing.T) {
	cases := []struct {
		name                             string
		price, nights                    int
		subtotal, serviceFee, grandTotal int
	}{
		{"three nights at 450", 450, 3, 1350, 189, 1539},
		{"one night at 195", 195, 1, 195, 27, 222},
		{"five nights at 280", 280, 5, 1400, 196, 1596},
	}

	for _, c := range cases {
		subtotal, serviceFee, total := domain.Quote(c.price, c.nights)
		if subtotal != c.subtotal || serviceFee != c.serviceFee || total != c.grandTotal {
			t.Errorf("%s: Quote(%d, %d) = (%d, %d, %d), want (%d, %d, %d)",
				c.name, c.price, c.nights, subtotal, serviceFee, total,
				c.subtotal, c.serviceFee, c.grandTotal)
		}
	}
}

func TestFilterSpecValidate(t *testing.T) {
	spec := domain.DefaultFilterSpec()
	if err := spec.Validate(); err != nil {
		t.Errorf("default spec should validate, got %v", err)
	}

	spec = domain.DefaultFilterSpec()
	spec.MinPrice = 500
	spec.MaxPrice = 100
	if err := spec.Validate(); err == nil {
		t.Error("min above max must fail validation")
	}

	spec = domain.DefaultFilterSpec()
	spec.Guests = -1
	if err := spec.Validate(); err == nil {
		t.Error("negative guest count must fail validation")
	}

	spec = domain.DefaultFilterSpec()
	checkIn := date(2026, 3, 12)
	checkOut := date(2026, 3, 12)
	spec.CheckIn = &checkIn
	spec.CheckOut = &checkOut
	if err := spec.Validate(); err == nil {
		t.Error("check-in equal to check-out must fail validation")
	}
}
