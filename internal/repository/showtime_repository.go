package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"

	"github.com/iliyamo/revticket-testdata/internal/model"
)

// ActiveShowtimeLimit caps how many upcoming showtimes ListActive returns.
const ActiveShowtimeLimit = 5

const showtimeColumns = `id, movie_id, theater_id, screen, show_date_time,
       ticket_price, total_seats, available_seats, status`

// ShowtimeRepo reads the showtimes table.
type ShowtimeRepo struct {
	db *sql.DB
}

// NewShowtimeRepo constructs a ShowtimeRepo with the given DB handle.
func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo {
	return &ShowtimeRepo{db: db}
}

// ListActive returns up to ActiveShowtimeLimit showtimes with status
// ACTIVE that start after the database's NOW(), soonest first.  When none
// qualify it returns an empty slice and nil error.
func (r *ShowtimeRepo) ListActive(ctx context.Context) ([]model.Showtime, error) {
	const q = `SELECT ` + showtimeColumns + `
               FROM showtimes
               WHERE status = ?
                 AND show_date_time > NOW()
               ORDER BY show_date_time ASC
               LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, model.ShowtimeActive, ActiveShowtimeLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []model.Showtime{}
	for rows.Next() {
		var s model.Showtime
		if err := scanShowtime(rows, &s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a showtime by its ID.  It returns ErrShowtimeNotFound
// if there is no matching row.
func (r *ShowtimeRepo) GetByID(ctx context.Context, id model.ID) (*model.Showtime, error) {
	const q = `SELECT ` + showtimeColumns + ` FROM showtimes WHERE id = ?`
	var s model.Showtime
	if err := scanShowtime(r.db.QueryRowContext(ctx, q, id), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}
	return &s, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanShowtime(sc scanner, s *model.Showtime) error {
	return sc.Scan(
		&s.ID, &s.MovieID, &s.TheaterID, &s.Screen, &s.ShowDateTime,
		&s.TicketPrice, &s.TotalSeats, &s.AvailableSeats, &s.Status,
	)
}
