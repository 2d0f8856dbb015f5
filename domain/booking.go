package domain

import (
	"encoding/json"
	"io"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingRejected  BookingStatus = "Rejected"
	BookingCancelled BookingStatus = "Cancelled"
)

// ServiceFeeRate is the platform fee charged on top of the nightly subtotal.
const ServiceFeeRate = 0.14

type Booking struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Reference  string             `bson:"reference" json:"reference"`
	ListingID  primitive.ObjectID `bson:"listingId" json:"listingId"`
	GuestID    string             `bson:"guestId" json:"guestId"`
	Period     DateRange          `bson:"period" json:"period"`
	Guests     int                `bson:"guests" json:"guests"`
	Subtotal   int                `bson:"subtotal" json:"subtotal"`
	ServiceFee int                `bson:"serviceFee" json:"serviceFee"`
	Total      int                `bson:"total" json:"total"`
	Status     BookingStatus      `bson:"status" json:"status"`
	Reason     string             `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// Quote computes the price breakdown for a stay. The service fee is
// rounded to the nearest dollar before it is added to the subtotal.
func Quote(nightlyPrice int, nights int) (subtotal, serviceFee, total int) {
	subtotal = nights * nightlyPrice
	serviceFee = int(math.Round(float64(subtotal) * ServiceFeeRate))
	total = subtotal + serviceFee
	return
}

// BookingRequest is the inbound payload for a booking attempt.
type BookingRequest struct {
	ListingID string    `json:"listingId" validate:"required"`
	CheckIn   time.Time `json:"checkIn" validate:"required"`
	CheckOut  time.Time `json:"checkOut" validate:"required"`
	Guests    int       `json:"guests" validate:"gte=1"`
}

func (r *BookingRequest) FromJSON(reader io.Reader) error {
	d := json.NewDecoder(reader)
	return d.Decode(r)
}

func (b *Booking) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(b)
}

func (b *Booking) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(b)
}

type Bookings []*Booking

func (b *Bookings) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(b)
}

func (b *Bookings) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(b)
}
