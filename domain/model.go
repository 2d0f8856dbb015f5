package domain

import (
	"encoding/json"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Listing struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title" validate:"required"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Location     string             `bson:"location" json:"location" validate:"required"`
	Coordinates  Coordinates        `bson:"coordinates,omitempty" json:"coordinates"`
	Price        int                `bson:"price" json:"price" validate:"gt=0"`
	Rating       float64            `bson:"rating" json:"rating" validate:"gte=0,lte=5"`
	ReviewCount  int                `bson:"reviewCount" json:"reviewCount" validate:"gte=0"`
	Images       []string           `bson:"images,omitempty" json:"images"`
	Amenities    []string           `bson:"amenities,omitempty" json:"amenities"`
	Host         Host               `bson:"host" json:"host"`
	PropertyType string             `bson:"propertyType" json:"propertyType" validate:"required"`
	MaxGuests    int                `bson:"maxGuests" json:"maxGuests" validate:"gte=1"`
	Bedrooms     int                `bson:"bedrooms" json:"bedrooms"`
	Bathrooms    int                `bson:"bathrooms" json:"bathrooms"`
	// BookedRanges is the availability ledger. Only confirmed bookings
	// may append to it, only cancellations may remove from it.
	BookedRanges []DateRange `bson:"bookedRanges" json:"bookedRanges"`
}

type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

type Host struct {
	Name        string `bson:"name" json:"name"`
	JoinedDate  string `bson:"joinedDate,omitempty" json:"joinedDate,omitempty"`
	IsSuperhost bool   `bson:"isSuperhost" json:"isSuperhost"`
}

// DateRange is a half-open interval [CheckIn, CheckOut).
type DateRange struct {
	CheckIn  time.Time `bson:"checkIn" json:"checkIn"`
	CheckOut time.Time `bson:"checkOut" json:"checkOut"`
}

// Nights is the number of whole days between check-in and check-out.
func (r DateRange) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// Overlaps reports whether two half-open intervals share at least one night.
// A check-out on another booking's check-in day is not an overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

func (r DateRange) IsValid() bool {
	return r.CheckOut.After(r.CheckIn)
}

// IsAvailable checks the requested range against the availability ledger.
func (l *Listing) IsAvailable(requested DateRange) bool {
	for _, booked := range l.BookedRanges {
		if requested.Overlaps(booked) {
			return false
		}
	}
	return true
}

func (l *Listing) ValidateListing() error {
	validate := validator.New()
	return validate.Struct(l)
}

func (l *Listing) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(l)
}

func (l *Listing) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(l)
}

type Listings []*Listing

func (l *Listings) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(l)
}

func (l *Listings) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(l)
}
