package application

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/TanmaySingh007/StayFinder/domain"
)

// Filter applies the search spec to the catalog and returns the matching
// subset. All predicates are conjunctive and the relative catalog order is
// preserved. The catalog is never mutated.
func Filter(catalog domain.Listings, spec domain.FilterSpec) (domain.Listings, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	matched := domain.Listings{}
	for _, listing := range catalog {
		if !matchesLocation(listing, spec.Location) {
			continue
		}
		if listing.Price < spec.MinPrice || listing.Price > spec.MaxPrice {
			continue
		}
		if !matchesPropertyType(listing, spec.PropertyType) {
			continue
		}
		if listing.MaxGuests < spec.Guests {
			continue
		}
		if !matchesAmenities(listing, spec.Amenities) {
			continue
		}
		if spec.HasDates() && !listing.IsAvailable(spec.StayRange()) {
			continue
		}
		matched = append(matched, listing)
	}

	return matched, nil
}

// Rank orders search results by rating descending, then price ascending.
// The sort is stable, so listings tied on both keys keep catalog order.
func Rank(listings domain.Listings) domain.Listings {
	ranked := make(domain.Listings, len(listings))
	copy(ranked, listings)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Rating != ranked[j].Rating {
			return ranked[i].Rating > ranked[j].Rating
		}
		return ranked[i].Price < ranked[j].Price
	})

	return ranked
}

func matchesLocation(listing *domain.Listing, location string) bool {
	if location == "" {
		return true
	}
	return strings.Contains(strings.ToLower(listing.Location), strings.ToLower(location))
}

func matchesPropertyType(listing *domain.Listing, propertyType string) bool {
	if propertyType == "" || strings.EqualFold(propertyType, domain.PropertyTypeAll) {
		return true
	}
	return strings.EqualFold(listing.PropertyType, propertyType)
}

func matchesAmenities(listing *domain.Listing, wanted []string) bool {
	for _, amenity := range wanted {
		found := false
		for _, have := range listing.Amenities {
			if strings.EqualFold(have, amenity) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// searchKey builds the cache key for one search request. Specs that differ
// in any predicate must land on different keys, so free-text fields are
// escaped before joining.
func searchKey(spec domain.FilterSpec, ranked bool) string {
	checkIn, checkOut := "-", "-"
	if spec.CheckIn != nil {
		checkIn = spec.CheckIn.Format(time.DateOnly)
	}
	if spec.CheckOut != nil {
		checkOut = spec.CheckOut.Format(time.DateOnly)
	}
	amenities := make([]string, len(spec.Amenities))
	for i, amenity := range spec.Amenities {
		amenities[i] = url.QueryEscape(strings.ToLower(amenity))
	}
	return fmt.Sprintf("%s|%s|%s|%d|%d|%d|%s|%s|%t",
		url.QueryEscape(strings.ToLower(spec.Location)), checkIn, checkOut,
		spec.Guests, spec.MinPrice, spec.MaxPrice,
		url.QueryEscape(strings.ToLower(spec.PropertyType)),
		strings.Join(amenities, ","), ranked)
}
