package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/revticket-testdata/internal/cache"
	"github.com/iliyamo/revticket-testdata/internal/middleware"
	"github.com/iliyamo/revticket-testdata/internal/model"
	"github.com/iliyamo/revticket-testdata/internal/queue"
	"github.com/iliyamo/revticket-testdata/internal/repository"
	"github.com/iliyamo/revticket-testdata/internal/testdata"
	"github.com/iliyamo/revticket-testdata/internal/utils"
)

// Error codes carried in the "error" field of failure responses.
const (
	codeAuthFailed         = "AUTHENTICATION_FAILED"
	codeVerificationFailed = "VERIFICATION_FAILED"
)

// ShowtimeLookup finds a showtime by id.
type ShowtimeLookup interface {
	GetByID(ctx context.Context, id model.ID) (*model.Showtime, error)
}

// SeatLookup lists every seat of a showtime.
type SeatLookup interface {
	ListByShowtime(ctx context.Context, showtimeID model.ID) ([]model.Seat, error)
}

// EventPublisher delivers domain events to a queue.
type EventPublisher interface {
	Publish(ctx context.Context, queue string, v any) error
}

// PaymentHandler serves a stand-in for the payment service's Razorpay
// endpoints.  It never writes to the database; verified orders are
// remembered in Bookings.  Showtimes, Seats and Events are optional.
type PaymentHandler struct {
	KeySecret       string
	AllowMockOrders bool
	Showtimes       ShowtimeLookup
	Seats           SeatLookup
	Bookings        cache.BookingStore
	Events          EventPublisher
	Log             *zap.Logger
	Now             func() time.Time
}

// errVerification carries the message returned to the client.
type errVerification struct{ msg string }

func (e errVerification) Error() string { return e.msg }

func failed(msg string) error { return errVerification{msg: msg} }

func (h *PaymentHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// VerifyPayment checks a verify-payment request and answers with the
// booking it would create.  A repeated order id returns the first booking.
func (h *PaymentHandler) VerifyPayment(c echo.Context) error {
	var req testdata.Payload
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, failure("invalid request body", codeVerificationFailed))
	}
	h.Log.Info("verifying payment",
		zap.String("order_id", req.RazorpayOrderID),
		zap.Stringer("showtime_id", req.ShowtimeID),
		zap.Int("seats", len(req.Seats)))

	userID := middleware.UserID(c)
	if userID == "" {
		h.Log.Warn("failed to resolve userId from headers")
		return c.JSON(http.StatusUnauthorized, failure("Unable to resolve user ID from request headers", codeAuthFailed))
	}

	booking, err := h.verify(c.Request().Context(), userID, req)
	if err != nil {
		var ve errVerification
		if !errors.As(err, &ve) {
			h.Log.Error("payment verification failed", zap.String("order_id", req.RazorpayOrderID), zap.Error(err))
		} else {
			h.Log.Warn("payment verification rejected", zap.String("order_id", req.RazorpayOrderID), zap.Error(err))
		}
		return c.JSON(http.StatusBadRequest, failure(err.Error(), codeVerificationFailed))
	}

	h.Log.Info("payment verified", zap.String("booking_id", booking.ID))
	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"message":      "Payment verified successfully",
		"bookingId":    booking.ID,
		"ticketNumber": booking.TicketNumber,
	})
}

func (h *PaymentHandler) verify(ctx context.Context, userID string, req testdata.Payload) (cache.Booking, error) {
	if err := validate(req); err != nil {
		return cache.Booking{}, err
	}

	if existing, found, err := h.Bookings.Get(ctx, req.RazorpayOrderID); err != nil {
		return cache.Booking{}, fmt.Errorf("look up booking: %w", err)
	} else if found {
		return existing, nil
	}

	if h.testMode(req) {
		h.Log.Info("test mode: skipping signature verification", zap.String("order_id", req.RazorpayOrderID))
	} else if h.KeySecret == "" || !utils.VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, h.KeySecret) {
		return cache.Booking{}, failed("Invalid payment signature")
	}

	if h.Showtimes != nil {
		if _, err := h.Showtimes.GetByID(ctx, req.ShowtimeID); err != nil {
			if errors.Is(err, repository.ErrShowtimeNotFound) {
				return cache.Booking{}, failed(fmt.Sprintf(
					"Showtime verification failed: ID %s not found in system. Please refresh and select seats again.", req.ShowtimeID))
			}
			return cache.Booking{}, fmt.Errorf("look up showtime: %w", err)
		}
	}

	if h.Seats != nil {
		if err := h.checkSeats(ctx, req); err != nil {
			return cache.Booking{}, err
		}
	}

	now := h.now().UTC()
	booking := cache.Booking{
		ID:           uuid.NewString(),
		TicketNumber: "TKT-" + strconv.FormatInt(now.UnixMilli(), 10),
		OrderID:      req.RazorpayOrderID,
		UserID:       userID,
		CreatedAt:    now,
	}
	stored, created, err := h.Bookings.SaveIfAbsent(ctx, req.RazorpayOrderID, booking)
	if err != nil {
		return cache.Booking{}, fmt.Errorf("save booking: %w", err)
	}
	if created && h.Events != nil {
		ev := queue.BookingConfirmedEvent{
			BookingID:         stored.ID,
			TicketNumber:      stored.TicketNumber,
			UserID:            userID,
			ShowtimeID:        req.ShowtimeID.String(),
			RazorpayOrderID:   req.RazorpayOrderID,
			RazorpayPaymentID: req.RazorpayPaymentID,
			SeatLabels:        req.SeatLabels,
			TotalAmount:       float64(req.TotalAmount),
			CustomerEmail:     req.CustomerEmail,
			ConfirmedAt:       now.Format(time.RFC3339),
		}
		if err := h.Events.Publish(ctx, queue.BookingConfirmedQueue, ev); err != nil {
			h.Log.Warn("booking event not published", zap.Error(err))
		}
	}
	return stored, nil
}

// testMode reports whether the request uses Razorpay test identifiers
// that skip signature verification.
func (h *PaymentHandler) testMode(req testdata.Payload) bool {
	if strings.HasPrefix(req.RazorpaySignature, "test_") || strings.HasPrefix(req.RazorpayOrderID, "order_test") {
		return true
	}
	return h.AllowMockOrders && strings.HasPrefix(req.RazorpayOrderID, "order_Mock")
}

func (h *PaymentHandler) checkSeats(ctx context.Context, req testdata.Payload) error {
	seats, err := h.Seats.ListByShowtime(ctx, req.ShowtimeID)
	if err != nil {
		return fmt.Errorf("look up seats: %w", err)
	}
	byID := make(map[string]model.Seat, len(seats))
	for _, s := range seats {
		byID[s.ID.String()] = s
	}
	// held seats pass; only a confirmed booking blocks a seat
	for _, id := range req.Seats {
		s, ok := byID[id.String()]
		if !ok {
			return failed("Seat not found: " + id.String())
		}
		if s.IsBooked {
			return failed("Seat is already booked")
		}
	}
	return nil
}

func validate(req testdata.Payload) error {
	switch {
	case req.RazorpayOrderID == "":
		return failed("razorpayOrderId is required")
	case req.RazorpayPaymentID == "":
		return failed("razorpayPaymentId is required")
	case req.RazorpaySignature == "":
		return failed("razorpaySignature is required")
	case req.ShowtimeID.IsZero():
		return failed("showtimeId is required")
	case len(req.Seats) == 0:
		return failed("at least one seat is required")
	case len(req.Seats) != len(req.SeatLabels):
		return failed("seats and seatLabels must have the same length")
	case req.TotalAmount <= 0:
		return failed("totalAmount must be positive")
	}
	return nil
}

// PaymentFailed acknowledges a failed checkout.
func (h *PaymentHandler) PaymentFailed(c echo.Context) error {
	var req testdata.Payload
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, failure("invalid request body", "PAYMENT_FAILURE_HANDLER_ERROR"))
	}
	h.Log.Info("payment failure recorded",
		zap.String("order_id", req.RazorpayOrderID),
		zap.String("user_id", middleware.UserID(c)))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Payment failure recorded"})
}

func failure(msg, code string) echo.Map {
	return echo.Map{"success": false, "message": msg, "error": code}
}
