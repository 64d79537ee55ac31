// Package generator runs one pass of fetch-testdata: sample rows from the
// database, build the verify-payment request, print it and save it.
package generator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/iliyamo/revticket-testdata/internal/model"
	"github.com/iliyamo/revticket-testdata/internal/report"
	"github.com/iliyamo/revticket-testdata/internal/repository"
	"github.com/iliyamo/revticket-testdata/internal/testdata"
)

// Outcome says how a run ended.
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeGenerated
	OutcomeNoShowtimes
	OutcomeNoSeats
)

func (o Outcome) String() string {
	switch o {
	case OutcomeGenerated:
		return "generated"
	case OutcomeNoShowtimes:
		return "no_showtimes"
	case OutcomeNoSeats:
		return "no_seats"
	}
	return "failed"
}

// ShowtimeSource lists upcoming active showtimes, soonest first.
type ShowtimeSource interface {
	ListActive(ctx context.Context) ([]model.Showtime, error)
}

// SeatSource lists sellable seats of a showtime.
type SeatSource interface {
	ListAvailable(ctx context.Context, showtimeID model.ID) ([]model.Seat, error)
}

// UserSource returns one customer or repository.ErrUserNotFound.
type UserSource interface {
	Sample(ctx context.Context) (model.User, error)
}

// Sink receives the payload after it has been written to disk.
type Sink interface {
	Name() string
	Publish(ctx context.Context, p testdata.Payload) error
}

// TokenFunc mints a bearer token for user.
type TokenFunc func(user model.User) (string, error)

// Runner wires the three sources to the console.  Token and Sinks are
// optional.
type Runner struct {
	Showtimes  ShowtimeSource
	Seats      SeatSource
	Users      UserSource
	Console    *report.Console
	BaseURL    string
	OutputFile string
	Token      TokenFunc
	Sinks      []Sink
	Log        *zap.Logger
}

// Run performs one generation pass.  The caller prints the banner.  Empty showtime or seat results end
// the run early with a nil error and no file written.  Any other failure
// is returned with OutcomeFailed.
func (r *Runner) Run(ctx context.Context) (Outcome, error) {
	c := r.Console
	c.FetchingShowtimes()
	showtimes, err := r.Showtimes.ListActive(ctx)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("fetch active showtimes: %w", err)
	}
	if len(showtimes) == 0 {
		c.NoShowtimes()
		return OutcomeNoShowtimes, nil
	}
	c.ShowtimesFound(len(showtimes))

	showtime := showtimes[0]
	c.SelectedShowtime(showtime)

	c.FetchingSeats(showtime.ID)
	seats, err := r.Seats.ListAvailable(ctx, showtime.ID)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("fetch seats for showtime %s: %w", showtime.ID, err)
	}
	if len(seats) < testdata.MaxSeats {
		c.FewSeats(len(seats))
	}
	if len(seats) == 0 {
		c.NoSeats()
		return OutcomeNoSeats, nil
	}
	c.SeatsSelected(min(len(seats), testdata.MaxSeats))

	c.FetchingUser()
	user, err := r.Users.Sample(ctx)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		user = testdata.PlaceholderUser
		c.UserPlaceholder()
	case err != nil:
		return OutcomeFailed, fmt.Errorf("fetch sample user: %w", err)
	default:
		c.UserFound(user)
	}

	payload, err := testdata.Build(showtime, seats, user)
	if err != nil {
		return OutcomeFailed, err
	}
	if err := c.Payload(payload); err != nil {
		return OutcomeFailed, fmt.Errorf("render payload: %w", err)
	}

	if err := c.Curl(r.BaseURL, r.token(user), payload); err != nil {
		return OutcomeFailed, fmt.Errorf("render curl command: %w", err)
	}

	if err := report.WriteFile(r.OutputFile, payload); err != nil {
		return OutcomeFailed, fmt.Errorf("save %s: %w", r.OutputFile, err)
	}
	c.Saved(r.OutputFile)

	for _, s := range r.Sinks {
		if err := s.Publish(ctx, payload); err != nil {
			r.Log.Warn("sink failed", zap.String("sink", s.Name()), zap.Error(err))
			continue
		}
		r.Log.Info("payload published", zap.String("sink", s.Name()))
	}

	c.Note()
	r.Log.Info("test request generated",
		zap.Stringer("showtime_id", showtime.ID),
		zap.Int("seats", len(payload.Seats)),
		zap.Float64("total_amount", float64(payload.TotalAmount)))
	return OutcomeGenerated, nil
}

// token returns a minted token, or "" so the console prints the
// placeholder.  Minting failures are logged, not fatal.
func (r *Runner) token(user model.User) string {
	if r.Token == nil {
		return ""
	}
	tok, err := r.Token(user)
	if err != nil {
		r.Log.Warn("could not mint bearer token; using placeholder", zap.Error(err))
		return ""
	}
	return tok
}
