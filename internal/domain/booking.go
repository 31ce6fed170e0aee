package domain

import (
	"context"
	"errors"
	"time"
)

// ErrEventNotFound is returned when a booking references an event that does
// not exist at write time.
var ErrEventNotFound = errors.New("referenced event does not exist")

// Booking represents a reservation linking an email address to an event.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBooking returns a new Booking. ID is set by the repository on create.
func NewBooking(eventID, email string, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		EventID:   eventID,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// BookingRepository defines the interface for booking storage
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	ListByEmail(ctx context.Context, email string, params PaginationParams) ([]*Booking, int, error)
}

// BookingService defines booking-facing operations.
type BookingService interface {
	// CreateBooking validates the email, checks that the referenced event
	// exists, and persists the booking.
	CreateBooking(ctx context.Context, eventID, email string) (*Booking, error)
	ListBookingsByEmail(ctx context.Context, email string, params PaginationParams) ([]*Booking, int, error)
}
