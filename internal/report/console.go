// Package report prints the operator-facing output of fetch-testdata and
// persists the generated payload.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/iliyamo/revticket-testdata/internal/model"
	"github.com/iliyamo/revticket-testdata/internal/testdata"
)

// Status markers.
const (
	MarkOK   = "✓"
	MarkWarn = "⚠️ "
	MarkFail = "❌"
)

var rule = strings.Repeat("=", 60)

// Console writes human-readable progress to an io.Writer, normally
// os.Stdout.  Write errors on the console are ignored.
type Console struct {
	w io.Writer
}

// NewConsole returns a Console writing to w.
func NewConsole(w io.Writer) *Console { return &Console{w: w} }

func (c *Console) printf(format string, args ...any) { fmt.Fprintf(c.w, format, args...) }

func (c *Console) heading(title string) {
	c.printf("%s\n%s\n%s\n", rule, title, rule)
}

func (c *Console) Banner() {
	c.heading("Fetching Real Test Data from Database")
	c.printf("\n")
}

func (c *Console) FetchingShowtimes() { c.printf("Fetching active showtimes...\n") }

func (c *Console) NoShowtimes() {
	c.printf("%s No active showtimes found!\n", MarkFail)
	c.printf("   Please create a showtime first.\n")
}

func (c *Console) ShowtimesFound(n int) {
	c.printf("%s Found %d active showtime(s)\n\n", MarkOK, n)
}

// SelectedShowtime prints the summary of the showtime the payload uses.
func (c *Console) SelectedShowtime(s model.Showtime) {
	c.printf("Selected Showtime:\n")
	c.printf("  ID: %s\n", s.ID)
	c.printf("  Show Date/Time: %s\n", s.ShowDateTime.Format("2006-01-02 15:04:05"))
	c.printf("  Ticket Price: ₹%.2f\n", s.TicketPrice)
	c.printf("  Available Seats: %d\n\n", s.AvailableSeats)
}

func (c *Console) FetchingSeats(showtimeID model.ID) {
	c.printf("Fetching available seats for showtime %s...\n", showtimeID)
}

// FewSeats warns that fewer than testdata.MaxSeats seats are available.
func (c *Console) FewSeats(n int) {
	c.printf("%s Only %d available seat(s) found. Need at least %d for testing.\n", MarkWarn, n, testdata.MaxSeats)
	c.printf("   Using all available seats...\n")
}

func (c *Console) NoSeats() { c.printf("%s No available seats found!\n", MarkFail) }

func (c *Console) SeatsSelected(n int) {
	c.printf("%s Found %d available seat(s)\n\n", MarkOK, n)
}

func (c *Console) FetchingUser() { c.printf("Fetching test user...\n") }

func (c *Console) UserFound(u model.User) {
	c.printf("%s Found user: %s (%s)\n\n", MarkOK, u.Name, u.Email)
}

func (c *Console) UserPlaceholder() {
	c.printf("%s No user found. Using default values.\n\n", MarkWarn)
}

// Payload prints the pretty JSON request body.
func (c *Console) Payload(p testdata.Payload) error {
	b, err := Pretty(p)
	if err != nil {
		return err
	}
	c.heading("TEST REQUEST PAYLOAD")
	c.printf("%s\n\n", b)
	return nil
}

// Curl prints the ready-to-run command.  token may be empty.
func (c *Console) Curl(baseURL, token string, p testdata.Payload) error {
	cmd, err := CurlCommand(baseURL, token, p)
	if err != nil {
		return err
	}
	if token == "" {
		c.heading("cURL COMMAND (replace YOUR_TOKEN)")
	} else {
		c.heading("cURL COMMAND")
	}
	c.printf("\n%s\n\n", cmd)
	return nil
}

func (c *Console) Saved(path string) {
	c.printf("%s Request payload saved to: %s\n\n", MarkOK, path)
}

// Note explains why the request will fail verification as generated.
func (c *Console) Note() {
	c.printf("%s NOTE: Signature verification will fail with mock values.\n", MarkWarn)
	c.printf("   For real testing, you need to:\n")
	c.printf("   1. Create a Razorpay order using /api/razorpay/create-order\n")
	c.printf("   2. Complete payment through Razorpay test mode\n")
	c.printf("   3. Use the real order_id, payment_id, and signature from Razorpay\n")
}

func (c *Console) ConnectFailed(err error) {
	c.printf("Error connecting to database: %v\n", err)
}

// Failure reports an unexpected error.  trace may be empty.
func (c *Console) Failure(err error, trace []byte) {
	c.printf("%s Error: %v\n", MarkFail, err)
	if len(trace) > 0 {
		c.printf("%s\n", trace)
	}
}
