// Package queue defines message payloads exchanged over RabbitMQ and the
// publisher and consumer that move them.
package queue

// Queue names.
const (
	BookingConfirmedQueue = "booking.confirmed"
	TestRequestQueue      = "payment.test-request"
)

// BookingConfirmedEvent is published by verify-mock when a payment is
// accepted.  Ids keep the JSON shape of the request they came from.
type BookingConfirmedEvent struct {
	BookingID         string   `json:"booking_id"`
	TicketNumber      string   `json:"ticket_number"`
	UserID            string   `json:"user_id"`
	ShowtimeID        string   `json:"showtime_id"`
	RazorpayOrderID   string   `json:"razorpay_order_id"`
	RazorpayPaymentID string   `json:"razorpay_payment_id"`
	SeatLabels        []string `json:"seats"`
	TotalAmount       float64  `json:"total_amount"`
	CustomerEmail     string   `json:"customer_email"`
	ConfirmedAt       string   `json:"confirmed_at"`
}
