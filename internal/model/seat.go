package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Seat type values as stored in seats.type.
const (
	SeatRegular = "REGULAR"
	SeatPremium = "PREMIUM"
	SeatVIP     = "VIP"
)

// Seat describes one seat of one showtime.  Seats are identified
// within a showtime by their row label and seat number.  The three
// flags are independent: a seat can be held and disabled at once.
//
// Fields:
//
//	ID         – primary key identifier.
//	Row        – letter or string designating the row.
//	Number     – number of the seat within the row.
//	Price      – price of this seat in rupees, exact as stored in DECIMAL.
//	Type       – REGULAR, PREMIUM or VIP.
//	IsBooked   – whether a confirmed booking owns the seat.
//	IsHeld     – whether a checkout currently holds the seat.
//	HoldExpiry – when the hold lapses (nil when never held).
//	IsDisabled – whether the seat is out of service.
type Seat struct {
	ID         ID              // seats.id
	Row        string          // seats.row
	Number     int             // seats.number
	Price      decimal.Decimal // seats.price
	Type       string          // seats.type
	IsBooked   bool            // seats.is_booked
	IsHeld     bool            // seats.is_held
	HoldExpiry *time.Time      // seats.hold_expiry (nullable)
	IsDisabled bool            // seats.is_disabled
}
