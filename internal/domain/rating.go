package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rating is the single post-completion review a rental may receive.
type Rating struct {
	ID        uuid.UUID `json:"id" db:"id"`
	RentalID  uuid.UUID `json:"rental_id" db:"rental_id"`
	Score     int       `json:"score" db:"score"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type RateRentalRequest struct {
	Score   int    `json:"score" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=500"`
}
