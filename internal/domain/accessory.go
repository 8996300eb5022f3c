package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Accessory is a catalog item that can be attached to a rental for an
// extra daily charge (GPS, child seat, extra insurance, ...).
type Accessory struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	DailyRate decimal.Decimal `json:"daily_rate" db:"daily_rate"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
