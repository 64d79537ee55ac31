// Package testdata turns sampled showtime, seat and user rows into a
// request body for POST /api/razorpay/verify-payment.
package testdata

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/revticket-testdata/internal/model"
)

// Placeholder gateway values.  They never pass real signature
// verification; the generated request is meant for manual testing.
const (
	MockOrderID   = "order_MockOrder123"
	MockPaymentID = "pay_MockPayment123"
	MockSignature = "mock_signature_for_testing"
)

// Customer fallbacks, applied field by field.
const (
	DefaultCustomerName  = "Test User"
	DefaultCustomerEmail = "test@example.com"
	DefaultCustomerPhone = "9876543210"
)

// MaxSeats is how many seats a generated request books.
const MaxSeats = 2

// ErrNoSeats is returned by Build when no eligible seat was supplied.
var ErrNoSeats = errors.New("no available seats")

// PlaceholderUser stands in when the users table has no customer.
var PlaceholderUser = model.User{
	ID:    model.StringID("test-user-id"),
	Email: DefaultCustomerEmail,
	Name:  DefaultCustomerName,
	Phone: DefaultCustomerPhone,
	Role:  model.RoleUser,
}

// Amount is a rupee total.  It always renders with a fractional part so a
// whole amount reads 400.0 rather than 400.
type Amount float64

func (a Amount) MarshalJSON() ([]byte, error) {
	b := strconv.AppendFloat(nil, float64(a), 'f', -1, 64)
	if bytes.IndexByte(b, '.') >= 0 {
		return b, nil
	}
	return append(b, '.', '0'), nil
}

// Payload is the verify-payment request body.  Field order is the wire
// order.
type Payload struct {
	RazorpayOrderID   string     `json:"razorpayOrderId"`
	RazorpayPaymentID string     `json:"razorpayPaymentId"`
	RazorpaySignature string     `json:"razorpaySignature"`
	ShowtimeID        model.ID   `json:"showtimeId"`
	Seats             []model.ID `json:"seats"`
	SeatLabels        []string   `json:"seatLabels"`
	TotalAmount       Amount     `json:"totalAmount"`
	CustomerName      string     `json:"customerName"`
	CustomerEmail     string     `json:"customerEmail"`
	CustomerPhone     string     `json:"customerPhone"`
}

// SeatLabel formats a seat position the way tickets print it: "A" and 1
// become "A1".
func SeatLabel(row string, number int) string {
	return row + strconv.Itoa(number)
}

// Build assembles the request for showtime, booking the first MaxSeats of
// seats (all of them when fewer are given) for user.  The caller passes the
// placeholder user when none was found.
func Build(showtime model.Showtime, seats []model.Seat, user model.User) (Payload, error) {
	if len(seats) == 0 {
		return Payload{}, ErrNoSeats
	}
	if len(seats) > MaxSeats {
		seats = seats[:MaxSeats]
	}

	p := Payload{
		RazorpayOrderID:   MockOrderID,
		RazorpayPaymentID: MockPaymentID,
		RazorpaySignature: MockSignature,
		ShowtimeID:        showtime.ID,
		Seats:             make([]model.ID, 0, len(seats)),
		SeatLabels:        make([]string, 0, len(seats)),
		CustomerName:      orDefault(user.Name, DefaultCustomerName),
		CustomerEmail:     orDefault(user.Email, DefaultCustomerEmail),
		CustomerPhone:     orDefault(user.Phone, DefaultCustomerPhone),
	}
	total := decimal.Zero
	for _, s := range seats {
		p.Seats = append(p.Seats, s.ID)
		p.SeatLabels = append(p.SeatLabels, SeatLabel(s.Row, s.Number))
		total = total.Add(s.Price)
	}
	// summed exactly, converted once
	p.TotalAmount = Amount(total.InexactFloat64())
	return p, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
