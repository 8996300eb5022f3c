package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/luiizaferreirafonseca/rental-engine/internal/domain"
)

// RentalRepository defines the interface for rental contract data operations
type RentalRepository interface {
	// Create persists a new rental contract
	Create(ctx context.Context, rental *domain.Rental) error

	// GetByID retrieves a rental with its accessory links and payments
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Rental, error)

	// Update persists contract fields and replaces accessory links in one transaction
	Update(ctx context.Context, rental *domain.Rental) error

	// AddPayment appends a payment record for a rental
	AddPayment(ctx context.Context, payment *domain.Payment) error

	// FindOverdue lists active rentals whose expected end date is before asOf
	FindOverdue(ctx context.Context, asOf time.Time) ([]*domain.Rental, error)
}

// VehicleRepository defines the interface for vehicle availability operations
type VehicleRepository interface {
	// GetByID retrieves a vehicle
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error)

	// MarkRented flips the vehicle to unavailable; reports false when the
	// vehicle was not available (compare-and-swap on the availability flag)
	MarkRented(ctx context.Context, id uuid.UUID) (bool, error)

	// MarkAvailable flips the vehicle back to available
	MarkAvailable(ctx context.Context, id uuid.UUID) error
}

// AccessoryRepository defines the interface for the accessory catalog
type AccessoryRepository interface {
	// GetByID retrieves an accessory catalog entry
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Accessory, error)
}

// RatingRepository defines the interface for rental rating operations
type RatingRepository interface {
	// Create persists a new rating
	Create(ctx context.Context, rating *domain.Rating) error

	// GetByRentalID retrieves the rating for a rental, if any
	GetByRentalID(ctx context.Context, rentalID uuid.UUID) (*domain.Rating, error)
}
