package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RentalStatusActive    = "active"
	RentalStatusCompleted = "completed"
	RentalStatusCanceled  = "canceled"
)

// Rental represents a rental contract between a user and a vehicle.
// DailyRate is a snapshot of the vehicle's rate at creation time; all
// cost calculations use this snapshot, not the live vehicle price.
type Rental struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          uuid.UUID       `json:"user_id" db:"user_id"`
	VehicleID       uuid.UUID       `json:"vehicle_id" db:"vehicle_id"`
	StartDate       time.Time       `json:"start_date" db:"start_date"`
	ExpectedEndDate time.Time       `json:"expected_end_date" db:"expected_end_date"`
	ActualEndDate   *time.Time      `json:"actual_end_date,omitempty" db:"actual_end_date"`
	DailyRate       decimal.Decimal `json:"daily_rate" db:"daily_rate"`
	TotalAmount     decimal.Decimal `json:"total_amount" db:"total_amount"`
	PenaltyFee      decimal.Decimal `json:"penalty_fee" db:"penalty_fee"`
	Status          string          `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`

	Accessories []*RentalAccessory `json:"accessories,omitempty" db:"-"`
	Payments    []*Payment         `json:"payments,omitempty" db:"-"`
}

// RentalAccessory links an accessory charge to a rental. UnitPrice is the
// accessory daily rate at attach time, TotalPrice the surcharge added to
// the contract total.
type RentalAccessory struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	RentalID    uuid.UUID       `json:"rental_id" db:"rental_id"`
	AccessoryID uuid.UUID       `json:"accessory_id" db:"accessory_id"`
	UnitPrice   decimal.Decimal `json:"unit_price" db:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price" db:"total_price"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// IsTerminal reports whether the rental reached a final status.
func (r *Rental) IsTerminal() bool {
	return r.Status == RentalStatusCompleted || r.Status == RentalStatusCanceled
}

// AccessoryLink returns the link entry for the given accessory, or nil.
func (r *Rental) AccessoryLink(accessoryID uuid.UUID) *RentalAccessory {
	for _, link := range r.Accessories {
		if link.AccessoryID == accessoryID {
			return link
		}
	}
	return nil
}

// TotalPaid sums the amounts of all recorded payments.
func (r *Rental) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range r.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// DTOs for requests and responses

type CreateRentalRequest struct {
	UserID          uuid.UUID `json:"user_id" validate:"required"`
	VehicleID       uuid.UUID `json:"vehicle_id" validate:"required"`
	StartDate       time.Time `json:"start_date"`
	ExpectedEndDate time.Time `json:"expected_end_date" validate:"required"`
}

type ExtendRentalRequest struct {
	NewExpectedEndDate time.Time `json:"new_expected_end_date" validate:"required"`
}

type AttachAccessoryRequest struct {
	AccessoryID uuid.UUID `json:"accessory_id" validate:"required"`
}

type RentalSummaryResponse struct {
	Rental     *Rental         `json:"rental"`
	TotalPaid  decimal.Decimal `json:"total_paid"`
	BalanceDue decimal.Decimal `json:"balance_due"`
}
