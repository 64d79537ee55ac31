package repository // repository defines data access for seats

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives

	"github.com/iliyamo/revticket-testdata/internal/model"
)

// AvailableSeatLimit caps how many seats ListAvailable returns.
const AvailableSeatLimit = 10

// SeatRepo provides methods to read seats from the database.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// ListAvailable returns up to AvailableSeatLimit sellable seats of a
// showtime ordered by row then number.  A seat is sellable when it is not
// booked, not disabled, and either not held or its hold expired before
// NOW().  A held seat with a NULL expiry stays unavailable.
func (r *SeatRepo) ListAvailable(ctx context.Context, showtimeID model.ID) ([]model.Seat, error) {
	const q = "SELECT id, `row`, number, price, type, is_booked, is_held, hold_expiry, is_disabled" + `
	           FROM seats
	           WHERE showtime_id = ?
	             AND is_booked = 0
	             AND is_disabled = 0
	             AND (is_held = 0 OR hold_expiry < NOW())
	           ORDER BY ` + "`row`" + `, number
	           LIMIT ?`
	return r.query(ctx, q, showtimeID, AvailableSeatLimit)
}

// ListByShowtime returns every seat of a showtime regardless of state.
func (r *SeatRepo) ListByShowtime(ctx context.Context, showtimeID model.ID) ([]model.Seat, error) {
	const q = "SELECT id, `row`, number, price, type, is_booked, is_held, hold_expiry, is_disabled" + `
	           FROM seats
	           WHERE showtime_id = ?
	           ORDER BY ` + "`row`" + `, number`
	return r.query(ctx, q, showtimeID)
}

func (r *SeatRepo) query(ctx context.Context, q string, args ...any) ([]model.Seat, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	seats := []model.Seat{}
	for rows.Next() {
		var (
			s      model.Seat
			expiry sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.Row, &s.Number, &s.Price, &s.Type,
			&s.IsBooked, &s.IsHeld, &expiry, &s.IsDisabled); err != nil {
			return nil, err
		}
		if expiry.Valid {
			t := expiry.Time
			s.HoldExpiry = &t
		}
		seats = append(seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}
