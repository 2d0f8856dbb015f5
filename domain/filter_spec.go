package domain

import (
	"encoding/json"
	"io"
	"time"

	"github.com/TanmaySingh007/StayFinder/errors"
)

// PropertyTypeAll matches every property type.
const PropertyTypeAll = "all"

// FilterSpec carries one search request. It is transient and never stored.
type FilterSpec struct {
	Location     string     `json:"location"`
	CheckIn      *time.Time `json:"checkIn,omitempty"`
	CheckOut     *time.Time `json:"checkOut,omitempty"`
	Guests       int        `json:"guests"`
	MinPrice     int        `json:"minPrice"`
	MaxPrice     int        `json:"maxPrice"`
	PropertyType string     `json:"propertyType"`
	Amenities    []string   `json:"amenities,omitempty"`
}

// DefaultFilterSpec mirrors the search form's initial state: one guest and
// the price slider at its 0..1000 bounds. Listings priced above the slider
// maximum only match once the caller raises maxPrice explicitly.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		Guests:       1,
		MinPrice:     0,
		MaxPrice:     1000,
		PropertyType: PropertyTypeAll,
	}
}

func (spec *FilterSpec) Validate() error {
	if spec.MinPrice > spec.MaxPrice {
		return errors.ErrInvalidFilterSpec
	}
	if spec.MinPrice < 0 {
		return errors.ErrInvalidFilterSpec
	}
	if spec.Guests < 0 {
		return errors.ErrInvalidFilterSpec
	}
	if spec.CheckIn != nil && spec.CheckOut != nil {
		if !spec.CheckOut.After(*spec.CheckIn) {
			return errors.ErrInvalidFilterSpec
		}
	}
	return nil
}

// HasDates reports whether both travel dates were supplied. The date
// predicate only applies when the guest picked a full stay window.
func (spec *FilterSpec) HasDates() bool {
	return spec.CheckIn != nil && spec.CheckOut != nil
}

func (spec *FilterSpec) StayRange() DateRange {
	return DateRange{CheckIn: *spec.CheckIn, CheckOut: *spec.CheckOut}
}

func (spec *FilterSpec) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(spec)
}

func (spec *FilterSpec) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(spec)
}
