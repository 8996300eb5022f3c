package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Vehicle is the rentable asset. Available flips to false while the
// vehicle is held by an active rental.
type Vehicle struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Model     string          `json:"model" db:"model"`
	Plate     string          `json:"plate" db:"plate"`
	DailyRate decimal.Decimal `json:"daily_rate" db:"daily_rate"`
	Available bool            `json:"available" db:"available"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// User is referenced by rentals; the contract does not own it.
type User struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Name  string    `json:"name" db:"name"`
	Email string    `json:"email" db:"email"`
}
