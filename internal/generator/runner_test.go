package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/revticket-testdata/internal/model"
	"github.com/iliyamo/revticket-testdata/internal/report"
	"github.com/iliyamo/revticket-testdata/internal/repository"
	"github.com/iliyamo/revticket-testdata/internal/testdata"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) ListActive(ctx context.Context) ([]model.Showtime, error) {
	args := m.Called(ctx)
	showtimes, _ := args.Get(0).([]model.Showtime)
	return showtimes, args.Error(1)
}

func (m *mockStore) ListAvailable(ctx context.Context, showtimeID model.ID) ([]model.Seat, error) {
	args := m.Called(ctx, showtimeID)
	seats, _ := args.Get(0).([]model.Seat)
	return seats, args.Error(1)
}

func (m *mockStore) Sample(ctx context.Context) (model.User, error) {
	args := m.Called(ctx)
	user, _ := args.Get(0).(model.User)
	return user, args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, queue string, v any) error {
	return m.Called(ctx, queue, v).Error(0)
}

var (
	s1 = model.Showtime{
		ID:             model.StringID("S1"),
		Screen:         "Screen 1",
		ShowDateTime:   time.Date(2026, 10, 20, 18, 30, 0, 0, time.UTC),
		TicketPrice:    200,
		AvailableSeats: 2,
		Status:         model.ShowtimeActive,
	}
	seatA1 = model.Seat{ID: model.IntID(1), Row: "A", Number: 1, Price: decimal.NewFromInt(200), Type: model.SeatRegular}
	seatA2 = model.Seat{ID: model.IntID(2), Row: "A", Number: 2, Price: decimal.NewFromInt(200), Type: model.SeatRegular}
)

func newRunner(t *testing.T, store *mockStore) (*Runner, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &Runner{
		Showtimes:  store,
		Seats:      store,
		Users:      store,
		Console:    report.NewConsole(&out),
		BaseURL:    "http://localhost:8080",
		OutputFile: filepath.Join(t.TempDir(), "test_payment_request.json"),
		Log:        zap.NewNop(),
	}, &out
}

func readPayload(t *testing.T, path string) map[string]any {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestRunGeneratesPayload(t *testing.T) {
	store := new(mockStore)
	store.On("ListActive", mock.Anything).Return([]model.Showtime{s1}, nil)
	store.On("ListAvailable", mock.Anything, s1.ID).Return([]model.Seat{seatA1, seatA2}, nil)
	store.On("Sample", mock.Anything).Return(model.User{ID: model.StringID("u-1"), Name: "Asha", Email: "asha@example.com"}, nil)

	r, out := newRunner(t, store)
	outcome, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeGenerated, outcome)

	got := readPayload(t, r.OutputFile)
	assert.Equal(t, []any{1.0, 2.0}, got["seats"])
	assert.Equal(t, []any{"A1", "A2"}, got["seatLabels"])
	assert.Equal(t, 400.0, got["totalAmount"])
	assert.Equal(t, "S1", got["showtimeId"])
	assert.Equal(t, "Asha", got["customerName"])
	assert.Equal(t, testdata.DefaultCustomerPhone, got["customerPhone"])

	assert.Contains(t, out.String(), "Bearer YOUR_TOKEN_HERE")
	assert.NotContains(t, out.String(), "Only ")
	store.AssertExpectations(t)
}

func TestRunNoShowtimes(t *testing.T) {
	store := new(mockStore)
	store.On("ListActive", mock.Anything).Return([]model.Showtime{}, nil)

	r, out := newRunner(t, store)
	outcome, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoShowtimes, outcome)
	assert.Contains(t, out.String(), "No active showtimes found!")
	assert.NoFileExists(t, r.OutputFile)
	store.AssertNotCalled(t, "ListAvailable", mock.Anything, mock.Anything)
}

func TestRunNoSeats(t *testing.T) {
	store := new(mockStore)
	store.On("ListActive", mock.Anything).Return([]model.Showtime{s1}, nil)
	store.On("ListAvailable", mock.Anything, s1.ID).Return([]model.Seat{}, nil)

	r, out := newRunner(t, store)
	outcome, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoSeats, outcome)
	warn := strings.Index(out.String(), "Only 0 available seat(s) found. Need at least 2 for testing.")
	none := strings.Index(out.String(), "No available seats found!")
	require.GreaterOrEqual(t, warn, 0)
	assert.Greater(t, none, warn)
	assert.NoFileExists(t, r.OutputFile)
	store.AssertNotCalled(t, "Sample", mock.Anything)
}

func TestRunSingleSeatWarns(t *testing.T) {
	store := new(mockStore)
	store.On("ListActive", mock.Anything).Return([]model.Showtime{s1}, nil)
	store.On("ListAvailable", mock.Anything, s1.ID).Return([]model.Seat{seatA1}, nil)
	store.On("Sample", mock.Anything).Return(nil, repository.ErrUserNotFound)

	r, out := newRunner(t, store)
	outcome, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeGenerated, outcome)
	assert.Contains(t, out.String(), "Only 1 available seat(s) found.")
	assert.Contains(t, out.String(), "No user found. Using default values.")

	got := readPayload(t, r.OutputFile)
	assert.Equal(t, []any{1.0}, got["seats"])
	assert.Equal(t, testdata.DefaultCustomerName, got["customerName"])
	assert.Equal(t, testdata.DefaultCustomerEmail, got["customerEmail"])
}

func TestRunUsesFirstShowtime(t *testing.T) {
	later := s1
	later.ID = model.StringID("S2")
	later.ShowDateTime = s1.ShowDateTime.Add(2 * time.Hour)

	store := new(mockStore)
	store.On("ListActive", mock.Anything).Return([]model.Showtime{s1, later}, nil)
	store.On("ListAvailable", mock.Anything, s1.ID).Return([]model.Seat{seatA1, seatA2}, nil)
	store.On("Sample", mock.Anything).Return(nil, repository.ErrUserNotFound)

	r, _ := newRunner(t, store)
	_, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "S1", readPayload(t, r.OutputFile)["showtimeId"])
}

func TestRunPropagatesQueryErrors(t *testing.T) {
	boom := errors.New("lost connection")

	store := new(mockStore)
	store.On("ListActive", mock.Anything).Return(nil, boom)
	r, _ := newRunner(t, store)
	outcome, err := r.Run(context.Background())
	assert.Equal(t, OutcomeFailed, outcome)
	assert.ErrorIs(t, err, boom)

	store = new(mockStore)
	store.On("ListActive", mock.Anything).Return([]model.Showtime{s1}, nil)
	store.On("ListAvailable", mock.Anything, s1.ID).Return([]model.Seat{seatA1}, nil)
	store.On("Sample", mock.Anything).Return(nil, boom)
	r, _ = newRunner(t, store)
	outcome, err = r.Run(context.Background())
	assert.Equal(t, OutcomeFailed, outcome)
	assert.ErrorIs(t, err, boom)
	assert.NoFileExists(t, r.OutputFile)
}

func TestRunWriteFailure(t *testing.T) {
	store := new(mockStore)
	store.On("ListActive", mock.Anything).Return([]model.Showtime{s1}, nil)
	store.On("ListAvailable", mock.Anything, s1.ID).Return([]model.Seat{seatA1}, nil)
	store.On("Sample", mock.Anything).Return(nil, repository.ErrUserNotFound)

	r, _ := newRunner(t, store)
	r.OutputFile = filepath.Join(t.TempDir(), "missing-dir", "out.json")
	outcome, err := r.Run(context.Background())
	assert.Equal(t, OutcomeFailed, outcome)
	assert.Error(t, err)
}

func TestRunMintsTokenAndPublishes(t *testing.T) {
	store := new(mockStore)
	store.On("ListActive", mock.Anything).Return([]model.Showtime{s1}, nil)
	store.On("ListAvailable", mock.Anything, s1.ID).Return([]model.Seat{seatA1, seatA2}, nil)
	store.On("Sample", mock.Anything).Return(model.User{ID: model.StringID("u-9"), Name: "Meera"}, nil)

	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, "payment.test-request", mock.AnythingOfType("testdata.Payload")).
		Return(errors.New("broker down")).Once()

	r, out := newRunner(t, store)
	var mintedFor model.ID
	r.Token = func(u model.User) (string, error) {
		mintedFor = u.ID
		return "signed.jwt.token", nil
	}
	r.Sinks = []Sink{QueueSink{Publisher: pub, Queue: "payment.test-request"}}

	outcome, err := r.Run(context.Background())
	require.NoError(t, err, "sink failures must not fail the run")
	assert.Equal(t, OutcomeGenerated, outcome)
	assert.Equal(t, model.StringID("u-9"), mintedFor)
	assert.Contains(t, out.String(), "Bearer signed.jwt.token")
	pub.AssertExpectations(t)
}

func TestRunTokenFailureFallsBackToPlaceholder(t *testing.T) {
	store := new(mockStore)
	store.On("ListActive", mock.Anything).Return([]model.Showtime{s1}, nil)
	store.On("ListAvailable", mock.Anything, s1.ID).Return([]model.Seat{seatA1, seatA2}, nil)
	store.On("Sample", mock.Anything).Return(nil, repository.ErrUserNotFound)

	r, out := newRunner(t, store)
	r.Token = func(model.User) (string, error) { return "", errors.New("no key") }

	_, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Bearer YOUR_TOKEN_HERE")
}

func TestRunIsRepeatable(t *testing.T) {
	store := new(mockStore)
	store.On("ListActive", mock.Anything).Return([]model.Showtime{s1}, nil)
	store.On("ListAvailable", mock.Anything, s1.ID).Return([]model.Seat{seatA1, seatA2}, nil)
	store.On("Sample", mock.Anything).Return(nil, repository.ErrUserNotFound)

	r, _ := newRunner(t, store)
	_, err := r.Run(context.Background())
	require.NoError(t, err)
	first, err := os.ReadFile(r.OutputFile)
	require.NoError(t, err)

	_, err = r.Run(context.Background())
	require.NoError(t, err)
	second, err := os.ReadFile(r.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
