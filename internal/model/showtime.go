package model

import "time"

// ShowtimeActive is the showtimes.status of a bookable screening.
const ShowtimeActive = "ACTIVE"

// Showtime represents a scheduled screening of a movie in a theater
// screen.  It carries the ticket price and the seat inventory counters
// maintained by the booking service.
//
// Fields:
//
//	ID             – primary key identifier.
//	MovieID        – movie being screened.
//	TheaterID      – theater hosting the screening.
//	Screen         – screen label inside the theater.
//	ShowDateTime   – scheduled start.
//	TicketPrice    – default ticket price in rupees.
//	TotalSeats     – seat capacity of the screen.
//	AvailableSeats – seats not yet booked.
//	Status         – ACTIVE, COMPLETED or CANCELLED.
type Showtime struct {
	ID             ID        // showtimes.id
	MovieID        ID        // showtimes.movie_id
	TheaterID      ID        // showtimes.theater_id
	Screen         string    // showtimes.screen
	ShowDateTime   time.Time // showtimes.show_date_time
	TicketPrice    float64   // showtimes.ticket_price
	TotalSeats     int       // showtimes.total_seats
	AvailableSeats int       // showtimes.available_seats
	Status         string    // showtimes.status
}
